package config

const (
	// DefaultConfigPath is the standard location for the houserules configuration file.
	// DefaultConfigPath 是 houserules 配置文件的标准位置。
	DefaultConfigPath = "/etc/houserules/config.yaml"

	// DefaultRulesetsDir is the directory scanned for ruleset definitions.
	// DefaultRulesetsDir 是扫描规则集定义的目录。
	DefaultRulesetsDir = "/etc/houserules/rulesets"

	// DefaultMetricsAddr is the listen address of the metrics server.
	DefaultMetricsAddr = "127.0.0.1:11812"

	// EnvPrefix prefixes every environment variable read by the configuration.
	// EnvPrefix 是配置读取的所有环境变量的前缀。
	EnvPrefix = "HOUSERULES_"
)
