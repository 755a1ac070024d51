// Package rulesets loads and exports ruleset definitions stored as YAML.
// Package rulesets 加载和导出以 YAML 存储的规则集定义。
package rulesets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/livp123/houserules/internal/core"
	"github.com/livp123/houserules/internal/essentials"
	"github.com/livp123/houserules/internal/utils/fileutil"
	errs "github.com/livp123/houserules/pkg/errors"
	"github.com/livp123/houserules/pkg/sdk"
	"gopkg.in/yaml.v3"
)

// Extensions are the file extensions of ruleset definitions.
var Extensions = []string{".yaml", ".yml"}

// Definition is the on-disk form of a ruleset.
// Definition 是规则集在磁盘上的形式。
type Definition struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description,omitempty"`
	Rules       []RuleDefinition `yaml:"rules"`
}

// RuleDefinition names a rule kind and its raw config.
type RuleDefinition struct {
	Kind   string    `yaml:"kind"`
	Config yaml.Node `yaml:"config,omitempty"`
}

// Parse builds a ruleset from a YAML definition. Source names the input in errors.
// Parse 从 YAML 定义构建规则集；source 用于错误信息。
func Parse(data []byte, source string) (*core.Ruleset, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, errs.NewDefinitionError(source, err.Error())
	}
	return def.Build(source)
}

// Build turns a definition into a ruleset, keeping the rule order.
func (d *Definition) Build(source string) (*core.Ruleset, error) {
	rules := make([]sdk.Rule, 0, len(d.Rules))
	for i := range d.Rules {
		rd := &d.Rules[i]
		if rd.Kind == "" {
			return nil, errs.NewDefinitionError(source, fmt.Sprintf("rule %d has no kind", i))
		}
		r, err := essentials.Build(rd.Kind, &rd.Config)
		if err != nil {
			return nil, fmt.Errorf("%s: rule %d: %w", source, i, err)
		}
		rules = append(rules, r)
	}

	rs, err := core.NewRuleset(d.Name, d.Description, rules...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return rs, nil
}

// LoadFile reads and parses one definition file.
// LoadFile 读取并解析单个定义文件。
func LoadFile(path string) (*core.Ruleset, error) {
	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 // path is cleaned and comes from configuration
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// LoadDir loads every definition in dir in file name order.
// Files that fail to load are skipped and their errors joined into the returned error.
// LoadDir 按文件名顺序加载目录中的所有定义；加载失败的文件会被跳过，错误合并后返回。
func LoadDir(dir string) ([]*core.Ruleset, error) {
	files, err := fileutil.ListByExt(dir, Extensions...)
	if err != nil {
		return nil, err
	}
	var (
		out     []*core.Ruleset
		errList []error
	)
	for _, f := range files {
		rs, err := LoadFile(f)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		out = append(out, rs)
	}
	return out, errors.Join(errList...)
}

// Encode exports a ruleset as a YAML definition that Parse reads back.
// Encode 将规则集导出为可被 Parse 读回的 YAML 定义。
func Encode(rs *core.Ruleset) ([]byte, error) {
	def := Definition{Name: rs.Name(), Description: rs.Description()}
	for _, rc := range core.ExportConfig(rs) {
		rd := RuleDefinition{Kind: rc.Kind}
		if rc.Config != nil {
			if err := rd.Config.Encode(rc.Config); err != nil {
				return nil, fmt.Errorf("encode %s config: %w", rc.Kind, err)
			}
		}
		def.Rules = append(def.Rules, rd)
	}
	return yaml.Marshal(&def)
}
