package config

import (
	"github.com/livp123/houserules/internal/runtime"
	"github.com/livp123/houserules/internal/utils/logger"
)

// Configurable represents the interface for configuration management
// Configurable 表示配置管理的接口
type Configurable interface {
	LoadConfig() error
	SaveConfig() error
	GetConfig() *GlobalConfig
	UpdateConfig(*GlobalConfig)

	// Getters for specific configuration sections
	GetLoggingConfig() *logger.LoggingConfig
	GetEngineConfig() *EngineConfig
	GetRulesetsConfig() *RulesetsConfig
	GetMetricsConfig() *MetricsConfig

	// Setters for specific configuration sections
	SetLoggingConfig(logger.LoggingConfig)
	SetEngineConfig(EngineConfig)
	SetRulesetsConfig(RulesetsConfig)
	SetMetricsConfig(MetricsConfig)

	// Utility methods
	GetConfigPath() string
	Validate() error
}

// GetConfigPath returns the configuration file path
// If runtime.ConfigPath is set (e.g., via CLI flag or test), it takes precedence.
// GetConfigPath 返回配置文件路径
// 如果 runtime.ConfigPath 已设置（例如通过 CLI 标志或测试），则优先使用它。
func GetConfigPath() string {
	if runtime.ConfigPath != "" {
		return runtime.ConfigPath
	}
	return DefaultConfigPath
}
