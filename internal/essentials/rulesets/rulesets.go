// Package rulesets contains the built-in rulesets.
// Package rulesets 包含内置规则集。
package rulesets

import (
	"github.com/livp123/houserules/internal/core"
	"github.com/livp123/houserules/internal/essentials"
	"github.com/livp123/houserules/internal/host"
)

// Built-in ruleset names.
const (
	BetterSorcererName   = "Better Sorcerer"
	DemeoRevolutionsName = "Demeo Revolutions"
	GlassCannonName      = "Glass Cannon"
)

// BetterSorcerer makes Zap free and removes elven summoners.
func BetterSorcerer() *core.Ruleset {
	return core.MustRuleset(
		BetterSorcererName,
		"0 Action Cost for Sorcerer's Zap - No other changes.",
		essentials.NewLevelPropertiesModified(map[string]int{
			"FloorOneElvenSummoners":   0,
			"FloorTwoElvenSummoners":   0,
			"FloorThreeElvenSummoners": 0,
		}),
		essentials.NewAbilityActionCostAdjusted(map[host.AbilityKey]bool{
			"Zap": false,
		}),
	)
}

// DemeoRevolutions is the combat subset of the Revolutions overhaul.
func DemeoRevolutions() *core.Ruleset {
	return core.MustRuleset(
		DemeoRevolutionsName,
		"Everything that has a beginning has an end.",
		essentials.NewAbilityAoeAdjusted(map[host.AbilityKey]int{
			"WhirlwindAttack": 1,
			"Net":             1,
		}),
		essentials.NewAbilityTargetEffects(map[host.AbilityKey][]string{
			"Arrow": {"Weaken"},
		}),
		essentials.NewFreeHealOnHit([]host.PieceID{host.HeroRogue}),
		essentials.NewFreeActionPointsOnCrit([]host.PieceID{host.HeroGuardian, host.HeroRogue}),
		essentials.NewPieceExtraImmunities(map[host.PieceID][]host.DamageTag{
			host.HeroBarbarian: {host.TagAcid},
			host.HeroHunter:    {host.TagIce},
			host.HeroGuardian:  {host.TagFire},
			host.HeroSorcerer:  {host.TagElectricity},
		}),
		essentials.NewLevelPropertiesModified(map[string]int{
			"BigGoldPileChance":        30,
			"FloorOneHealingFountains": 1,
			"FloorTwoHealingFountains": 1,
			"FloorThreeLootChests":     3,
		}),
	)
}

// GlassCannon rewards critical hits with action points and frenzy.
func GlassCannon() *core.Ruleset {
	return core.MustRuleset(
		GlassCannonName,
		"Critical hits grant tempo and fury.",
		essentials.NewFreeActionPointsOnCrit([]host.PieceID{
			host.HeroGuardian, host.HeroSorcerer, host.HeroHunter,
			host.HeroRogue, host.HeroBarbarian, host.HeroBard,
		}),
		essentials.NewTriggeredEffect(essentials.TriggeredEffectConfig{
			On:     essentials.TriggerAttack,
			When:   `SourcePlayer && Outcome == "crit"`,
			Effect: "Frenzy",
		}),
		essentials.NewAbilityAoeAdjusted(map[host.AbilityKey]int{
			"Fireball": 1,
		}),
	)
}

// Builtins returns fresh instances of every built-in ruleset.
// Builtins 返回所有内置规则集的新实例。
func Builtins() []*core.Ruleset {
	return []*core.Ruleset{
		BetterSorcerer(),
		DemeoRevolutions(),
		GlassCannon(),
	}
}

// RegisterBuiltins registers every built-in ruleset, stopping at the first error.
// RegisterBuiltins 注册所有内置规则集，遇到第一个错误即停止。
func RegisterBuiltins(reg *core.Registry) error {
	for _, rs := range Builtins() {
		if err := reg.Register(rs); err != nil {
			return err
		}
	}
	return nil
}
