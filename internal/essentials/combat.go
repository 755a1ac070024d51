package essentials

import (
	"github.com/livp123/houserules/internal/host"
	"github.com/livp123/houserules/pkg/sdk"
)

// FreeHealOnHit heals listed heroes when their attack hits.
// A roll above 98 heals twice as much.
// FreeHealOnHit 在列出的英雄攻击命中时为其恢复生命值。
type FreeHealOnHit struct {
	sdk.BaseRule
	pieces  []host.PieceID
	patches patches
}

func NewFreeHealOnHit(pieces []host.PieceID) *FreeHealOnHit {
	return &FreeHealOnHit{pieces: pieces}
}

func (r *FreeHealOnHit) Name() string        { return KindFreeHealOnHit }
func (r *FreeHealOnHit) Description() string { return "Hit restores health" }
func (r *FreeHealOnHit) ConfigObject() any   { return r.pieces }

func (r *FreeHealOnHit) Capabilities() sdk.Capabilities {
	return sdk.Capabilities{MultiplayerSafe: true, Patchable: true}
}

func (r *FreeHealOnHit) OnActivate(gctx *sdk.GameContext) error {
	g, err := gameOf(r.Name(), gctx)
	if err != nil {
		return err
	}
	return r.patches.install(r.Name(), gctx, host.OpGenerateAttackDamage, sdk.InterceptAfter, func(inv *sdk.Invocation) {
		args, ok := inv.Args.(*host.AttackArgs)
		if !ok || args.Outcome != host.OutcomeHit || !args.Source.Player {
			return
		}
		if !containsPiece(r.pieces, args.Source.ID) {
			return
		}
		heal := 1
		if g.Rand().Intn(100)+1 > 98 {
			heal = 2
		}
		args.Source.Heal(heal)
	})
}

func (r *FreeHealOnHit) OnDeactivate(gctx *sdk.GameContext) error {
	return r.patches.removeAll(r.Name(), gctx)
}

// FreeActionPointsOnCrit refunds an action point to listed pieces on a critical hit.
// FreeActionPointsOnCrit 在暴击时为列出的棋子返还一个行动点。
type FreeActionPointsOnCrit struct {
	sdk.BaseRule
	pieces  []host.PieceID
	patches patches
}

func NewFreeActionPointsOnCrit(pieces []host.PieceID) *FreeActionPointsOnCrit {
	return &FreeActionPointsOnCrit{pieces: pieces}
}

func (r *FreeActionPointsOnCrit) Name() string        { return KindFreeActionPointsOnCrit }
func (r *FreeActionPointsOnCrit) Description() string { return "Critical hit restores action points" }
func (r *FreeActionPointsOnCrit) ConfigObject() any   { return r.pieces }

func (r *FreeActionPointsOnCrit) Capabilities() sdk.Capabilities {
	return sdk.Capabilities{MultiplayerSafe: true, Patchable: true}
}

func (r *FreeActionPointsOnCrit) OnActivate(gctx *sdk.GameContext) error {
	return r.patches.install(r.Name(), gctx, host.OpGenerateAttackDamage, sdk.InterceptAfter, func(inv *sdk.Invocation) {
		args, ok := inv.Args.(*host.AttackArgs)
		if !ok || args.Outcome != host.OutcomeCrit {
			return
		}
		if containsPiece(r.pieces, args.Source.ID) {
			args.Source.AddActionPoints(1)
		}
	})
}

func (r *FreeActionPointsOnCrit) OnDeactivate(gctx *sdk.GameContext) error {
	return r.patches.removeAll(r.Name(), gctx)
}

// PieceExtraImmunities makes pieces immune to damage tags. Bosses ignore the immunities.
// PieceExtraImmunities 使棋子免疫指定伤害类型；首领的攻击无视该免疫。
type PieceExtraImmunities struct {
	sdk.BaseRule
	immunities map[host.PieceID][]host.DamageTag
	patches    patches
}

func NewPieceExtraImmunities(immunities map[host.PieceID][]host.DamageTag) *PieceExtraImmunities {
	return &PieceExtraImmunities{immunities: immunities}
}

func (r *PieceExtraImmunities) Name() string        { return KindPieceExtraImmunities }
func (r *PieceExtraImmunities) Description() string { return "Some pieces have extra immunities added" }
func (r *PieceExtraImmunities) ConfigObject() any   { return r.immunities }

func (r *PieceExtraImmunities) Capabilities() sdk.Capabilities {
	return sdk.Capabilities{MultiplayerSafe: true, Patchable: true}
}

func (r *PieceExtraImmunities) OnActivate(gctx *sdk.GameContext) error {
	return r.patches.install(r.Name(), gctx, host.OpDealDamage, sdk.InterceptBefore, func(inv *sdk.Invocation) {
		args, ok := inv.Args.(*host.DamageArgs)
		if !ok || args.Target == nil {
			return
		}
		if args.Attacker != nil && args.Attacker.Boss {
			return
		}
		for _, tag := range r.immunities[args.Target.ID] {
			if args.HasTag(tag) {
				inv.Skip = true
				inv.Result = 0
				return
			}
		}
	})
}

func (r *PieceExtraImmunities) OnDeactivate(gctx *sdk.GameContext) error {
	return r.patches.removeAll(r.Name(), gctx)
}
