// Package essentials contains the bundled rules and the catalog that builds them by kind.
// Package essentials 包含内置规则以及按类型构建规则的目录。
package essentials

import (
	"sort"

	"github.com/livp123/houserules/internal/host"
	errs "github.com/livp123/houserules/pkg/errors"
	"github.com/livp123/houserules/pkg/sdk"
	"gopkg.in/yaml.v3"
)

// Rule kinds.
const (
	KindAbilityAoeAdjusted        = "AbilityAoeAdjusted"
	KindAbilityTargetEffects      = "AbilityTargetEffects"
	KindAbilityActionCostAdjusted = "AbilityActionCostAdjusted"
	KindLevelPropertiesModified   = "LevelPropertiesModified"
	KindFreeHealOnHit             = "FreeHealOnHit"
	KindFreeActionPointsOnCrit    = "FreeActionPointsOnCrit"
	KindPieceExtraImmunities      = "PieceExtraImmunities"
	KindTriggeredEffect           = "TriggeredEffect"
)

// Factory builds a rule from its YAML config node. A nil node means an empty config.
// Factory 根据 YAML 配置节点构建规则；nil 节点表示空配置。
type Factory func(node *yaml.Node) (sdk.Rule, error)

var (
	// catalog contains every bundled rule kind.
	// catalog 包含所有内置规则类型。
	catalog = map[string]Factory{
		KindAbilityAoeAdjusted: decoded(KindAbilityAoeAdjusted, func(c map[host.AbilityKey]int) sdk.Rule {
			return NewAbilityAoeAdjusted(c)
		}),
		KindAbilityTargetEffects: decoded(KindAbilityTargetEffects, func(c map[host.AbilityKey][]string) sdk.Rule {
			return NewAbilityTargetEffects(c)
		}),
		KindAbilityActionCostAdjusted: decoded(KindAbilityActionCostAdjusted, func(c map[host.AbilityKey]bool) sdk.Rule {
			return NewAbilityActionCostAdjusted(c)
		}),
		KindLevelPropertiesModified: decoded(KindLevelPropertiesModified, func(c map[string]int) sdk.Rule {
			return NewLevelPropertiesModified(c)
		}),
		KindFreeHealOnHit: decoded(KindFreeHealOnHit, func(c []host.PieceID) sdk.Rule {
			return NewFreeHealOnHit(c)
		}),
		KindFreeActionPointsOnCrit: decoded(KindFreeActionPointsOnCrit, func(c []host.PieceID) sdk.Rule {
			return NewFreeActionPointsOnCrit(c)
		}),
		KindPieceExtraImmunities: decoded(KindPieceExtraImmunities, func(c map[host.PieceID][]host.DamageTag) sdk.Rule {
			return NewPieceExtraImmunities(c)
		}),
		KindTriggeredEffect: decoded(KindTriggeredEffect, func(c TriggeredEffectConfig) sdk.Rule {
			return NewTriggeredEffect(c)
		}),
	}
)

func decoded[T any](kind string, build func(T) sdk.Rule) Factory {
	return func(node *yaml.Node) (sdk.Rule, error) {
		var cfg T
		if node != nil && node.Kind != 0 {
			if err := node.Decode(&cfg); err != nil {
				return nil, errs.NewDefinitionError(kind, err.Error())
			}
		}
		return build(cfg), nil
	}
}

// Lookup returns the factory registered for a rule kind.
// Lookup 返回规则类型对应的工厂。
func Lookup(kind string) (Factory, error) {
	f, ok := catalog[kind]
	if !ok {
		return nil, errs.NewUnknownRuleKindError(kind)
	}
	return f, nil
}

// Build decodes a config node and builds a rule of the given kind.
func Build(kind string, node *yaml.Node) (sdk.Rule, error) {
	f, err := Lookup(kind)
	if err != nil {
		return nil, err
	}
	return f(node)
}

// Kinds returns the sorted list of bundled rule kinds.
func Kinds() []string {
	kinds := make([]string, 0, len(catalog))
	for k := range catalog {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// gameOf extracts the simulated host from a rule context.
func gameOf(rule string, gctx *sdk.GameContext) (*host.Game, error) {
	if gctx == nil {
		return nil, errs.NewConfigurationError(rule, "no game context")
	}
	g, ok := gctx.Host.(*host.Game)
	if !ok || g == nil {
		return nil, errs.NewConfigurationError(rule, "unsupported host %T", gctx.Host)
	}
	return g, nil
}

// patches tracks the interceptions installed by a patchable rule during one activation cycle.
type patches struct {
	set sdk.PatchSet
}

func (p *patches) install(rule string, gctx *sdk.GameContext, target string, kind sdk.InterceptKind, h sdk.Handler) error {
	if gctx == nil || gctx.Patcher == nil {
		return errs.NewPatcherUnavailableError(rule)
	}
	return p.set.Install(gctx.Patcher, target, kind, h)
}

func (p *patches) removeAll(rule string, gctx *sdk.GameContext) error {
	if p.set.Len() == 0 {
		return nil
	}
	if gctx == nil || gctx.Patcher == nil {
		return errs.NewPatcherUnavailableError(rule)
	}
	return p.set.RemoveAll(gctx.Patcher)
}

func containsPiece(list []host.PieceID, id host.PieceID) bool {
	for _, p := range list {
		if p == id {
			return true
		}
	}
	return false
}
