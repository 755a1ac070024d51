package config

import (
	"sync"

	"github.com/livp123/houserules/internal/utils/logger"
)

var _ Configurable = (*ConfigManager)(nil)

// ConfigManager handles all configuration-related operations in a centralized manner
// ConfigManager 以集中方式处理所有配置相关操作
type ConfigManager struct {
	configPath string
	mutex      sync.RWMutex
	config     *GlobalConfig
}

// NewConfigManager creates a new configuration manager instance
// NewConfigManager 创建新的配置管理器实例
func NewConfigManager(configPath string) *ConfigManager {
	return &ConfigManager{
		configPath: configPath,
	}
}

// LoadConfig loads the configuration from the specified path
// LoadConfig 从指定路径加载配置
func (cm *ConfigManager) LoadConfig() error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	config, err := LoadGlobalConfig(cm.configPath)
	if err != nil {
		return err
	}

	cm.config = config
	return nil
}

// SaveConfig saves the current configuration to the specified path
// SaveConfig 将当前配置保存到指定路径
func (cm *ConfigManager) SaveConfig() error {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}

	return SaveGlobalConfig(cm.configPath, cm.config)
}

// GetConfig returns a copy of the current configuration
// GetConfig 返回当前配置的副本
func (cm *ConfigManager) GetConfig() *GlobalConfig {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}

	cfgCopy := *cm.config
	return &cfgCopy
}

// UpdateConfig updates the current configuration
// UpdateConfig 更新当前配置
func (cm *ConfigManager) UpdateConfig(newConfig *GlobalConfig) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cm.config = newConfig
}

// GetLoggingConfig returns the logging configuration
// GetLoggingConfig 返回日志配置
func (cm *ConfigManager) GetLoggingConfig() *logger.LoggingConfig {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}

	loggingCfg := cm.config.Logging
	return &loggingCfg
}

// GetEngineConfig returns the engine configuration
// GetEngineConfig 返回引擎配置
func (cm *ConfigManager) GetEngineConfig() *EngineConfig {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}

	engineCfg := cm.config.Engine
	return &engineCfg
}

// GetRulesetsConfig returns the rulesets directory configuration
// GetRulesetsConfig 返回规则集目录配置
func (cm *ConfigManager) GetRulesetsConfig() *RulesetsConfig {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}

	rulesetsCfg := cm.config.Rulesets
	return &rulesetsCfg
}

// GetMetricsConfig returns the metrics configuration
// GetMetricsConfig 返回指标配置
func (cm *ConfigManager) GetMetricsConfig() *MetricsConfig {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}

	metricsCfg := cm.config.Metrics
	return &metricsCfg
}

// SetLoggingConfig updates the logging configuration
// SetLoggingConfig 更新日志配置
func (cm *ConfigManager) SetLoggingConfig(loggingConfig logger.LoggingConfig) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cm.ensure()
	cm.config.Logging = loggingConfig
}

// SetEngineConfig updates the engine configuration
// SetEngineConfig 更新引擎配置
func (cm *ConfigManager) SetEngineConfig(engineConfig EngineConfig) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cm.ensure()
	cm.config.Engine = engineConfig
}

// SetRulesetsConfig updates the rulesets directory configuration
// SetRulesetsConfig 更新规则集目录配置
func (cm *ConfigManager) SetRulesetsConfig(rulesetsConfig RulesetsConfig) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cm.ensure()
	cm.config.Rulesets = rulesetsConfig
}

// SetMetricsConfig updates the metrics configuration
// SetMetricsConfig 更新指标配置
func (cm *ConfigManager) SetMetricsConfig(metricsConfig MetricsConfig) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cm.ensure()
	cm.config.Metrics = metricsConfig
}

// ensure must be called with the write lock held.
func (cm *ConfigManager) ensure() {
	if cm.config == nil {
		cm.config = DefaultConfig()
	}
}

// GetConfigPath returns the configuration file path
// GetConfigPath 返回配置文件路径
func (cm *ConfigManager) GetConfigPath() string {
	return cm.configPath
}

// Validate validates the current configuration
// Validate 验证当前配置
func (cm *ConfigManager) Validate() error {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}
	return cm.config.Validate()
}
