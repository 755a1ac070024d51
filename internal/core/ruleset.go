package core

import (
	"fmt"
	"strings"

	errs "github.com/livp123/houserules/pkg/errors"
	"github.com/livp123/houserules/pkg/sdk"
)

// entry pairs a rule with the capability flags captured when the ruleset was built.
type entry struct {
	rule sdk.Rule
	name string
	caps sdk.Capabilities
}

// Ruleset is an ordered, named, immutable group of rules activated together.
// Ruleset 是一组有序、命名且不可变的规则，作为整体激活。
type Ruleset struct {
	name        string
	description string
	entries     []entry
}

// NewRuleset builds a ruleset. Rule order is kept exactly as given.
// NewRuleset 构建规则集，规则顺序严格保持传入顺序。
func NewRuleset(name, description string, rules ...sdk.Rule) (*Ruleset, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewConstructionError("ruleset name is empty")
	}
	if len(rules) == 0 {
		return nil, errs.NewConstructionError(fmt.Sprintf("ruleset %q has no rules", name))
	}

	entries := make([]entry, 0, len(rules))
	for i, r := range rules {
		if r == nil {
			return nil, errs.NewConstructionError(fmt.Sprintf("ruleset %q: rule %d is nil", name, i))
		}
		entries = append(entries, entry{rule: r, name: r.Name(), caps: r.Capabilities()})
	}

	return &Ruleset{
		name:        name,
		description: description,
		entries:     entries,
	}, nil
}

// MustRuleset is like NewRuleset but panics on error. Use it for built-in definitions only.
func MustRuleset(name, description string, rules ...sdk.Rule) *Ruleset {
	rs, err := NewRuleset(name, description, rules...)
	if err != nil {
		panic(err)
	}
	return rs
}

func (rs *Ruleset) Name() string        { return rs.name }
func (rs *Ruleset) Description() string { return rs.description }
func (rs *Ruleset) Len() int            { return len(rs.entries) }

// Rules returns the rules in declaration order. The returned slice is a copy.
func (rs *Ruleset) Rules() []sdk.Rule {
	out := make([]sdk.Rule, len(rs.entries))
	for i, e := range rs.entries {
		out[i] = e.rule
	}
	return out
}

// Capabilities returns the flags captured for the rule at index i.
func (rs *Ruleset) Capabilities(i int) sdk.Capabilities {
	return rs.entries[i].caps
}

// MultiplayerSafe reports whether every rule is multiplayer safe.
func (rs *Ruleset) MultiplayerSafe() bool {
	return len(rs.UnsafeRules()) == 0
}

// UnsafeRules returns the names of rules that are not multiplayer safe.
func (rs *Ruleset) UnsafeRules() []string {
	var unsafe []string
	for _, e := range rs.entries {
		if !e.caps.MultiplayerSafe {
			unsafe = append(unsafe, e.name)
		}
	}
	return unsafe
}

// ModifiedSyncables returns the union of the syncable triggers of all rules.
func (rs *Ruleset) ModifiedSyncables() sdk.SyncableTrigger {
	var t sdk.SyncableTrigger
	for _, e := range rs.entries {
		t |= e.caps.ModifiedSyncables
	}
	return t
}
