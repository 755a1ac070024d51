package essentials

import (
	"slices"

	"github.com/livp123/houserules/internal/host"
	errs "github.com/livp123/houserules/pkg/errors"
	"github.com/livp123/houserules/pkg/sdk"
)

// abilitiesOf resolves every configured ability before anything is changed,
// so an unknown key leaves the game untouched.
func abilitiesOf[V any](rule string, g *host.Game, cfg map[host.AbilityKey]V) (map[host.AbilityKey]*host.Ability, error) {
	out := make(map[host.AbilityKey]*host.Ability, len(cfg))
	for key := range cfg {
		a, ok := g.Ability(key)
		if !ok {
			return nil, errs.NewConfigurationError(rule, "ability %s does not exist", key)
		}
		out[key] = a
	}
	return out, nil
}

// AbilityAoeAdjusted adds a delta to the area of effect range of abilities.
// Adding 1 to a 3x3 ability makes it 5x5; negative values shrink it.
// AbilityAoeAdjusted 为技能的作用范围增加增量。
type AbilityAoeAdjusted struct {
	sdk.BaseRule
	adjustments map[host.AbilityKey]int
	// originals holds the negated deltas of the last application.
	originals map[host.AbilityKey]int
}

func NewAbilityAoeAdjusted(adjustments map[host.AbilityKey]int) *AbilityAoeAdjusted {
	return &AbilityAoeAdjusted{adjustments: adjustments}
}

func (r *AbilityAoeAdjusted) Name() string        { return KindAbilityAoeAdjusted }
func (r *AbilityAoeAdjusted) Description() string { return "Some ability AOE ranges are adjusted" }
func (r *AbilityAoeAdjusted) ConfigObject() any   { return r.adjustments }

func (r *AbilityAoeAdjusted) Capabilities() sdk.Capabilities {
	return sdk.Capabilities{MultiplayerSafe: true, ModifiedSyncables: sdk.AbilityDataModified}
}

func (r *AbilityAoeAdjusted) OnPreGameCreated(gctx *sdk.GameContext) error {
	if r.originals != nil {
		return nil
	}
	g, err := gameOf(r.Name(), gctx)
	if err != nil {
		return err
	}
	abilities, err := abilitiesOf(r.Name(), g, r.adjustments)
	if err != nil {
		return err
	}
	r.originals = make(map[host.AbilityKey]int, len(abilities))
	for key, a := range abilities {
		delta := r.adjustments[key]
		r.originals[key] = -delta
		a.AreaOfEffectRange += delta
	}
	return nil
}

func (r *AbilityAoeAdjusted) OnDeactivate(gctx *sdk.GameContext) error {
	if r.originals == nil {
		return nil
	}
	g, err := gameOf(r.Name(), gctx)
	if err != nil {
		return err
	}
	for key, delta := range r.originals {
		if a, ok := g.Ability(key); ok {
			a.AreaOfEffectRange += delta
		}
	}
	r.originals = nil
	return nil
}

// AbilityTargetEffects replaces the secondary effects of abilities.
// AbilityTargetEffects 替换技能的附加效果。
type AbilityTargetEffects struct {
	sdk.BaseRule
	adjustments map[host.AbilityKey][]string
	originals   map[host.AbilityKey][]string
}

func NewAbilityTargetEffects(adjustments map[host.AbilityKey][]string) *AbilityTargetEffects {
	return &AbilityTargetEffects{adjustments: adjustments}
}

func (r *AbilityTargetEffects) Name() string        { return KindAbilityTargetEffects }
func (r *AbilityTargetEffects) Description() string { return "Some abilities have added secondary effects" }
func (r *AbilityTargetEffects) ConfigObject() any   { return r.adjustments }

func (r *AbilityTargetEffects) Capabilities() sdk.Capabilities {
	return sdk.Capabilities{MultiplayerSafe: true, ModifiedSyncables: sdk.AbilityDataModified}
}

func (r *AbilityTargetEffects) OnPreGameCreated(gctx *sdk.GameContext) error {
	if r.originals != nil {
		return nil
	}
	g, err := gameOf(r.Name(), gctx)
	if err != nil {
		return err
	}
	abilities, err := abilitiesOf(r.Name(), g, r.adjustments)
	if err != nil {
		return err
	}
	r.originals = make(map[host.AbilityKey][]string, len(abilities))
	for key, a := range abilities {
		r.originals[key] = slices.Clone(a.TargetEffects)
		a.TargetEffects = slices.Clone(r.adjustments[key])
	}
	return nil
}

func (r *AbilityTargetEffects) OnDeactivate(gctx *sdk.GameContext) error {
	if r.originals == nil {
		return nil
	}
	g, err := gameOf(r.Name(), gctx)
	if err != nil {
		return err
	}
	for key, effects := range r.originals {
		if a, ok := g.Ability(key); ok {
			a.TargetEffects = effects
		}
	}
	r.originals = nil
	return nil
}

// AbilityActionCostAdjusted sets whether abilities cost an action point.
// AbilityActionCostAdjusted 设置技能是否消耗行动点。
type AbilityActionCostAdjusted struct {
	sdk.BaseRule
	adjustments map[host.AbilityKey]bool
	originals   map[host.AbilityKey]bool
}

func NewAbilityActionCostAdjusted(adjustments map[host.AbilityKey]bool) *AbilityActionCostAdjusted {
	return &AbilityActionCostAdjusted{adjustments: adjustments}
}

func (r *AbilityActionCostAdjusted) Name() string        { return KindAbilityActionCostAdjusted }
func (r *AbilityActionCostAdjusted) Description() string { return "Some ability action point costs are adjusted" }
func (r *AbilityActionCostAdjusted) ConfigObject() any   { return r.adjustments }

func (r *AbilityActionCostAdjusted) Capabilities() sdk.Capabilities {
	return sdk.Capabilities{MultiplayerSafe: true, ModifiedSyncables: sdk.AbilityDataModified}
}

func (r *AbilityActionCostAdjusted) OnActivate(gctx *sdk.GameContext) error {
	g, err := gameOf(r.Name(), gctx)
	if err != nil {
		return err
	}
	abilities, err := abilitiesOf(r.Name(), g, r.adjustments)
	if err != nil {
		return err
	}
	r.originals = make(map[host.AbilityKey]bool, len(abilities))
	for key, a := range abilities {
		r.originals[key] = a.CostActionPoint
		a.CostActionPoint = r.adjustments[key]
	}
	return nil
}

func (r *AbilityActionCostAdjusted) OnDeactivate(gctx *sdk.GameContext) error {
	if r.originals == nil {
		return nil
	}
	g, err := gameOf(r.Name(), gctx)
	if err != nil {
		return err
	}
	for key, cost := range r.originals {
		if a, ok := g.Ability(key); ok {
			a.CostActionPoint = cost
		}
	}
	r.originals = nil
	return nil
}
