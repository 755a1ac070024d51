package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/livp123/houserules/internal/utils/fileutil"
	"github.com/livp123/houserules/internal/utils/logger"
	errs "github.com/livp123/houserules/pkg/errors"
	"gopkg.in/yaml.v3"
)

// GlobalConfig is the root of the configuration file.
// GlobalConfig 是配置文件的根结构。
type GlobalConfig struct {
	Logging  logger.LoggingConfig `yaml:"logging" envPrefix:"LOGGING_"`
	Engine   EngineConfig         `yaml:"engine" envPrefix:"ENGINE_"`
	Rulesets RulesetsConfig       `yaml:"rulesets" envPrefix:"RULESETS_"`
	Metrics  MetricsConfig        `yaml:"metrics" envPrefix:"METRICS_"`
}

// EngineConfig selects the ruleset the engine runs.
// EngineConfig 选择引擎运行的规则集。
type EngineConfig struct {
	// Ruleset is the name of the ruleset selected on start. Empty means none.
	Ruleset string `yaml:"ruleset" env:"RULESET"`
	// Multiplayer restricts selection to multiplayer safe rulesets.
	Multiplayer bool `yaml:"multiplayer" env:"MULTIPLAYER"`
	// Seed makes the simulated host's rolls deterministic.
	Seed int64 `yaml:"seed" env:"SEED"`
}

// RulesetsConfig locates user-defined rulesets.
// RulesetsConfig 指定用户自定义规则集的位置。
type RulesetsConfig struct {
	Dir      string `yaml:"dir" env:"DIR"`
	Watch    bool   `yaml:"watch" env:"WATCH"`
	Builtins bool   `yaml:"builtins" env:"BUILTINS"`
}

// MetricsConfig controls the Prometheus endpoint.
// MetricsConfig 控制 Prometheus 端点。
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	Addr    string `yaml:"addr" env:"ADDR"`
}

// DefaultConfig returns the configuration used when no file exists.
// DefaultConfig 返回不存在配置文件时使用的配置。
func DefaultConfig() *GlobalConfig {
	return &GlobalConfig{
		Logging: logger.LoggingConfig{
			Enabled:    false,
			Level:      "info",
			Path:       "/var/log/houserules/houserules.log",
			MaxSize:    10, // 10MB
			MaxBackups: 3,
			MaxAge:     30, // 30 days
			Compress:   true,
		},
		Engine: EngineConfig{
			Seed: 1,
		},
		Rulesets: RulesetsConfig{
			Dir:      DefaultRulesetsDir,
			Watch:    false,
			Builtins: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    DefaultMetricsAddr,
		},
	}
}

// LoadGlobalConfig loads the configuration from a YAML file and applies environment overrides.
// A missing or empty file yields the defaults.
// LoadGlobalConfig 从 YAML 文件加载配置并应用环境变量覆盖；文件不存在或为空时使用默认值。
func LoadGlobalConfig(path string) (*GlobalConfig, error) {
	cfg := DefaultConfig()

	safePath := filepath.Clean(path) // Sanitize path to prevent directory traversal
	data, err := os.ReadFile(safePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Get(nil).Debugf("[CONFIG] %s not found, using defaults", safePath)
	case err != nil:
		return nil, err
	case len(strings.TrimSpace(string(data))) > 0:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", safePath, err)
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	// Validate configuration / 验证配置
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides configuration fields from HOUSERULES_* environment variables.
// ApplyEnv 使用 HOUSERULES_* 环境变量覆盖配置字段。
func ApplyEnv(cfg *GlobalConfig) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// SaveGlobalConfig writes the configuration atomically.
// SaveGlobalConfig 以原子方式写入配置。
func SaveGlobalConfig(path string, cfg *GlobalConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return fileutil.AtomicWriteFile(path, data, 0600)
}

// Validate checks the configuration for errors.
// Validate 检查配置是否存在错误。
func (c *GlobalConfig) Validate() error {
	if c.Logging.Level != "" {
		switch strings.ToLower(c.Logging.Level) {
		case "debug", "info", "warn", "error", "dpanic", "panic", "fatal":
		default:
			return errs.NewConfigError("logging.level", c.Logging.Level)
		}
	}
	if c.Logging.Enabled && c.Logging.Path == "" {
		return errs.NewConfigError("logging.path", c.Logging.Path)
	}
	if c.Rulesets.Watch && c.Rulesets.Dir == "" {
		return errs.NewConfigError("rulesets.dir", c.Rulesets.Dir)
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return errs.NewConfigError("metrics.addr", c.Metrics.Addr)
	}
	return nil
}
