package core

import (
	"fmt"
	"strings"
)

// WelcomeMessage builds the summary text shown when a ruleset is activated.
// WelcomeMessage 构建规则集激活时显示的摘要文本。
func WelcomeMessage(rs *Ruleset) string {
	if rs == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", rs.Name(), rs.Description())
	for _, en := range rs.entries {
		fmt.Fprintf(&b, "\n- %s", en.rule.Description())
	}
	return b.String()
}

// RuleConfig is the exported configuration of one rule.
// RuleConfig 是单条规则导出的配置。
type RuleConfig struct {
	Kind        string `yaml:"kind" json:"kind"`
	Description string `yaml:"-" json:"description,omitempty"`
	Config      any    `yaml:"config,omitempty" json:"config,omitempty"`
}

// ExportConfig returns the configuration of every rule in declaration order.
// ExportConfig 按声明顺序返回每条规则的配置。
func ExportConfig(rs *Ruleset) []RuleConfig {
	out := make([]RuleConfig, 0, rs.Len())
	for _, en := range rs.entries {
		out = append(out, RuleConfig{
			Kind:        en.name,
			Description: en.rule.Description(),
			Config:      en.rule.ConfigObject(),
		})
	}
	return out
}
