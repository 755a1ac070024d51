package essentials

import (
	"errors"
	"testing"

	"github.com/livp123/houserules/internal/host"
	errs "github.com/livp123/houserules/pkg/errors"
	"github.com/livp123/houserules/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFreeHealOnHit tests healing on hit and patch removal
// TestFreeHealOnHit 测试命中回血以及补丁移除
func TestFreeHealOnHit(t *testing.T) {
	g := host.NewGame()
	gctx := newContext(g)
	r := NewFreeHealOnHit([]host.PieceID{host.HeroSorcerer})

	require.NoError(t, r.OnActivate(gctx))
	assert.Equal(t, 1, g.Patcher().Installed(host.OpGenerateAttackDamage))

	sorcerer, _ := g.Spawn(host.HeroSorcerer)
	hunter, _ := g.Spawn(host.HeroHunter)
	goblin, _ := g.Spawn(host.GoblinFighter)
	sorcerer.Health, hunter.Health = 3, 3

	_, err := g.Attack(sorcerer, goblin, "Zap", host.OutcomeHit)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, sorcerer.Health, 4)

	_, err = g.Attack(hunter, goblin, "Arrow", host.OutcomeHit)
	require.NoError(t, err)
	assert.Equal(t, 3, hunter.Health, "unlisted heroes do not heal")

	healed := sorcerer.Health
	_, err = g.Attack(sorcerer, goblin, "Zap", host.OutcomeMiss)
	require.NoError(t, err)
	assert.Equal(t, healed, sorcerer.Health, "misses do not heal")

	require.NoError(t, r.OnDeactivate(gctx))
	assert.Equal(t, 0, g.Patcher().Installed(host.OpGenerateAttackDamage))

	_, err = g.Attack(sorcerer, goblin, "Zap", host.OutcomeHit)
	require.NoError(t, err)
	assert.Equal(t, healed, sorcerer.Health)
}

// TestFreeHealOnHit_NoPatcher tests activation without a patch capability
// TestFreeHealOnHit_NoPatcher 测试缺少补丁能力时的激活
func TestFreeHealOnHit_NoPatcher(t *testing.T) {
	g := host.NewGame()
	r := NewFreeHealOnHit([]host.PieceID{host.HeroSorcerer})

	err := r.OnActivate(&sdk.GameContext{Host: g})
	assert.True(t, errors.Is(err, errs.ErrPatcherUnavailable))
	assert.NoError(t, r.OnDeactivate(&sdk.GameContext{Host: g}))
}

// TestFreeActionPointsOnCrit tests action point refunds
// TestFreeActionPointsOnCrit 测试行动点返还
func TestFreeActionPointsOnCrit(t *testing.T) {
	g := host.NewGame()
	gctx := newContext(g)
	r := NewFreeActionPointsOnCrit([]host.PieceID{host.HeroRogue})
	require.NoError(t, r.OnActivate(gctx))

	rogue, _ := g.Spawn(host.HeroRogue)
	goblin, _ := g.Spawn(host.GoblinFighter)

	_, _ = g.Attack(rogue, goblin, "Strike", host.OutcomeHit)
	assert.Equal(t, 2, rogue.ActionPoints)

	_, _ = g.Attack(rogue, goblin, "Strike", host.OutcomeCrit)
	assert.Equal(t, 3, rogue.ActionPoints)

	require.NoError(t, r.OnDeactivate(gctx))
	_, _ = g.Attack(rogue, goblin, "Strike", host.OutcomeCrit)
	assert.Equal(t, 3, rogue.ActionPoints)
}

// TestPieceExtraImmunities tests damage vetoes
// TestPieceExtraImmunities 测试伤害否决
func TestPieceExtraImmunities(t *testing.T) {
	g := host.NewGame()
	gctx := newContext(g)
	r := NewPieceExtraImmunities(map[host.PieceID][]host.DamageTag{
		host.HeroSorcerer: {host.TagElectricity},
	})
	require.NoError(t, r.OnActivate(gctx))

	sorcerer, _ := g.Spawn(host.HeroSorcerer)
	goblin, _ := g.Spawn(host.GoblinFighter)
	king, _ := g.Spawn(host.RatKing)

	dealt, err := g.Attack(goblin, sorcerer, "Zap", host.OutcomeHit)
	require.NoError(t, err)
	assert.Equal(t, 0, dealt)
	assert.Equal(t, sorcerer.MaxHealth, sorcerer.Health)

	dealt, _ = g.Attack(goblin, sorcerer, "Strike", host.OutcomeHit)
	assert.Equal(t, 3, dealt, "other damage tags still hurt")

	dealt, _ = g.Attack(king, sorcerer, "Zap", host.OutcomeHit)
	assert.Equal(t, 2, dealt, "bosses ignore immunities")

	require.NoError(t, r.OnDeactivate(gctx))
	dealt, _ = g.Attack(goblin, sorcerer, "Zap", host.OutcomeHit)
	assert.Equal(t, 2, dealt)
}
