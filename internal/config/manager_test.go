package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/livp123/houserules/internal/runtime"
	errs "github.com/livp123/houserules/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfigManager tests the configuration manager functionality
// TestConfigManager 测试配置管理器功能
func TestConfigManager(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Engine.Ruleset = "Better Sorcerer"
	cfg.Engine.Multiplayer = true
	cfg.Metrics.Enabled = true

	// Save the config using the manager
	// 使用管理器保存配置
	cfgManager := NewConfigManager(path)
	cfgManager.UpdateConfig(cfg)
	require.NoError(t, cfgManager.SaveConfig())

	// Load from file
	// 从文件加载
	require.NoError(t, cfgManager.LoadConfig())
	loaded := cfgManager.GetConfig()
	require.NotNil(t, loaded)
	assert.Equal(t, "Better Sorcerer", loaded.Engine.Ruleset)
	assert.True(t, loaded.Engine.Multiplayer)
	assert.True(t, loaded.Metrics.Enabled)

	// Test individual getters
	// 测试单独的 getter 方法
	assert.Equal(t, cfg.Rulesets.Dir, cfgManager.GetRulesetsConfig().Dir)
	assert.Equal(t, cfg.Metrics.Addr, cfgManager.GetMetricsConfig().Addr)
	assert.Equal(t, cfg.Logging.Level, cfgManager.GetLoggingConfig().Level)

	// Test individual setters
	// 测试单独的 setter 方法
	cfgManager.SetEngineConfig(EngineConfig{Ruleset: "Glass Cannon", Seed: 7})
	assert.Equal(t, "Glass Cannon", cfgManager.GetEngineConfig().Ruleset)
	assert.Equal(t, int64(7), cfgManager.GetEngineConfig().Seed)

	cfgManager.SetMetricsConfig(MetricsConfig{Enabled: true})
	assert.True(t, errors.Is(cfgManager.Validate(), errs.ErrConfigInvalid))

	assert.Equal(t, path, cfgManager.GetConfigPath())
}

// TestConfigManager_Empty tests getters before loading
// TestConfigManager_Empty 测试加载前的 getter
func TestConfigManager_Empty(t *testing.T) {
	cm := NewConfigManager("unused")
	assert.Nil(t, cm.GetConfig())
	assert.Nil(t, cm.GetEngineConfig())
	assert.Nil(t, cm.GetLoggingConfig())
	assert.NoError(t, cm.SaveConfig())
	assert.NoError(t, cm.Validate())

	cm.SetRulesetsConfig(RulesetsConfig{Dir: "/tmp/rules", Watch: true})
	require.NotNil(t, cm.GetConfig())
	assert.Equal(t, DefaultMetricsAddr, cm.GetMetricsConfig().Addr)
}

// TestGetConfigPath tests path resolution
// TestGetConfigPath 测试路径解析
func TestGetConfigPath(t *testing.T) {
	old := runtime.ConfigPath
	defer func() { runtime.ConfigPath = old }()

	runtime.ConfigPath = ""
	assert.Equal(t, DefaultConfigPath, GetConfigPath())

	runtime.ConfigPath = "/tmp/custom.yaml"
	assert.Equal(t, "/tmp/custom.yaml", GetConfigPath())
}

// TestSaveGlobalConfig_Permissions tests the written file mode
// TestSaveGlobalConfig_Permissions 测试写入文件的权限
func TestSaveGlobalConfig_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveGlobalConfig(path, DefaultConfig()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
