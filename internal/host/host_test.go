package host

import (
	"errors"
	"testing"

	errs "github.com/livp123/houserules/pkg/errors"
	"github.com/livp123/houserules/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPatcher_InstallRemove tests handle lifecycle
// TestPatcher_InstallRemove 测试句柄生命周期
func TestPatcher_InstallRemove(t *testing.T) {
	p := NewPatcher("op")

	h1, err := p.Install("op", sdk.InterceptAfter, func(*sdk.Invocation) {})
	require.NoError(t, err)
	h2, err := p.Install("op", sdk.InterceptAfter, func(*sdk.Invocation) {})
	require.NoError(t, err)
	assert.NotEqual(t, h1.ID, h2.ID)
	assert.Equal(t, 2, p.Installed("op"), "installs are not deduplicated")

	require.NoError(t, p.Remove(h1))
	require.NoError(t, p.Remove(h1), "removing twice is a no-op")
	assert.Equal(t, 1, p.Installed("op"))

	require.NoError(t, p.Remove(h2))
	assert.Equal(t, 0, p.Installed("op"))
}

// TestPatcher_InstallInvalid tests rejected installs
// TestPatcher_InstallInvalid 测试被拒绝的安装
func TestPatcher_InstallInvalid(t *testing.T) {
	p := NewPatcher("op")

	_, err := p.Install("missing", sdk.InterceptBefore, func(*sdk.Invocation) {})
	assert.True(t, errors.Is(err, errs.ErrInvalidIntercept))

	_, err = p.Install("op", sdk.InterceptBefore, nil)
	assert.True(t, errors.Is(err, errs.ErrInvalidIntercept))

	_, err = p.Install("op", sdk.InterceptKind(42), func(*sdk.Invocation) {})
	assert.True(t, errors.Is(err, errs.ErrInvalidIntercept))
}

// TestPatcher_CallOrder tests before, original and after ordering
// TestPatcher_CallOrder 测试 before、原始调用与 after 的顺序
func TestPatcher_CallOrder(t *testing.T) {
	p := NewPatcher("op")
	var trace []string

	_, _ = p.Install("op", sdk.InterceptAfter, func(*sdk.Invocation) { trace = append(trace, "after") })
	_, _ = p.Install("op", sdk.InterceptBefore, func(*sdk.Invocation) { trace = append(trace, "before") })

	inv := p.Call("op", 3, func(inv *sdk.Invocation) {
		trace = append(trace, "original")
		inv.Result = inv.Args.(int) * 2
	})

	assert.Equal(t, []string{"before", "original", "after"}, trace)
	assert.Equal(t, 6, inv.Result)
}

// TestPatcher_SkipAndReplace tests vetoes and replacements
// TestPatcher_SkipAndReplace 测试否决与替换
func TestPatcher_SkipAndReplace(t *testing.T) {
	p := NewPatcher("op")
	originalRan := false
	original := func(*sdk.Invocation) { originalRan = true }

	replace, _ := p.Install("op", sdk.InterceptReplace, func(inv *sdk.Invocation) { inv.Result = "replaced" })
	inv := p.Call("op", nil, original)
	assert.False(t, originalRan)
	assert.Equal(t, "replaced", inv.Result)
	require.NoError(t, p.Remove(replace))

	afterRan := false
	_, _ = p.Install("op", sdk.InterceptBefore, func(inv *sdk.Invocation) { inv.Skip = true })
	_, _ = p.Install("op", sdk.InterceptAfter, func(*sdk.Invocation) { afterRan = true })
	inv = p.Call("op", nil, original)
	assert.False(t, originalRan)
	assert.True(t, inv.Skip)
	assert.True(t, afterRan, "after handlers run even when the original is skipped")
}

// TestGame_Attack tests unpatched attack resolution
// TestGame_Attack 测试未打补丁时的攻击结算
func TestGame_Attack(t *testing.T) {
	g := NewGame()
	hero, err := g.Spawn(HeroSorcerer)
	require.NoError(t, err)
	goblin, err := g.Spawn(GoblinFighter)
	require.NoError(t, err)

	dealt, err := g.Attack(hero, goblin, "Zap", OutcomeHit)
	require.NoError(t, err)
	assert.Equal(t, 2, dealt)
	assert.Equal(t, 3, goblin.Health)

	dealt, err = g.Attack(hero, goblin, "Zap", OutcomeCrit)
	require.NoError(t, err)
	assert.Equal(t, 4, dealt)
	assert.Equal(t, 0, goblin.Health)

	dealt, err = g.Attack(hero, goblin, "Zap", OutcomeMiss)
	require.NoError(t, err)
	assert.Equal(t, 0, dealt)

	_, err = g.Attack(hero, goblin, "Nope", OutcomeHit)
	assert.Error(t, err)
	_, err = g.Attack(hero, nil, "Zap", OutcomeHit)
	assert.Error(t, err)
}

// TestGame_AttackAppliesTargetEffects tests effect application for zero damage abilities
// TestGame_AttackAppliesTargetEffects 测试零伤害技能的效果施加
func TestGame_AttackAppliesTargetEffects(t *testing.T) {
	g := NewGame()
	hero, _ := g.Spawn(HeroHunter)
	goblin, _ := g.Spawn(GoblinFighter)

	_, err := g.Attack(hero, goblin, "Net", OutcomeHit)
	require.NoError(t, err)
	assert.True(t, goblin.HasEffect("Tangled"))
}

// TestGame_Tables tests data table accessors
// TestGame_Tables 测试数据表访问器
func TestGame_Tables(t *testing.T) {
	g := NewGame(WithSeed(42))

	zap, ok := g.Ability("Zap")
	require.True(t, ok)
	assert.True(t, zap.CostActionPoint)

	v, ok := g.LevelProperty("FloorThreeLootChests")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	g.SetLevelProperty("Custom", 5)
	v, _ = g.LevelProperty("Custom")
	assert.Equal(t, 5, v)
	g.DeleteLevelProperty("Custom")
	_, ok = g.LevelProperty("Custom")
	assert.False(t, ok)

	assert.True(t, g.KnownPiece(RatKing))
	_, err := g.Spawn("Dragon")
	assert.Error(t, err)
}

// TestPiece_Bounds tests health bounds
// TestPiece_Bounds 测试生命值边界
func TestPiece_Bounds(t *testing.T) {
	p := &Piece{Health: 5, MaxHealth: 6}
	p.Heal(10)
	assert.Equal(t, 6, p.Health)
	p.SubtractHealth(10)
	assert.Equal(t, 0, p.Health)
	p.EnableEffect("Frenzy", 1)
	assert.True(t, p.HasEffect("Frenzy"))
}
