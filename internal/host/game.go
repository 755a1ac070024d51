package host

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/livp123/houserules/pkg/sdk"
)

// Intercepted operations of the simulated host.
const (
	OpGenerateAttackDamage = "Ability.GenerateAttackDamage"
	OpDealDamage           = "Damage.DealDamage"
)

// AbilityKey identifies an ability card.
type AbilityKey string

// DamageTag classifies damage.
type DamageTag string

const (
	TagPhysical    DamageTag = "Physical"
	TagFire        DamageTag = "Fire"
	TagIce         DamageTag = "Ice"
	TagElectricity DamageTag = "Electricity"
	TagAcid        DamageTag = "Acid"
)

// Outcome is a dice roll result.
type Outcome string

const (
	OutcomeMiss Outcome = "miss"
	OutcomeHit  Outcome = "hit"
	OutcomeCrit Outcome = "crit"
)

// Ability is the mutable definition of an ability card.
// Ability 是技能卡的可变定义。
type Ability struct {
	Key               AbilityKey
	AreaOfEffectRange int
	CostActionPoint   bool
	TargetEffects     []string
	BaseDamage        int
	Tags              []DamageTag
}

func defaultAbilities() map[AbilityKey]*Ability {
	list := []*Ability{
		{Key: "Zap", AreaOfEffectRange: 0, CostActionPoint: true, BaseDamage: 2, Tags: []DamageTag{TagElectricity}},
		{Key: "Fireball", AreaOfEffectRange: 1, CostActionPoint: true, BaseDamage: 4, Tags: []DamageTag{TagFire}},
		{Key: "Freeze", AreaOfEffectRange: 0, CostActionPoint: true, BaseDamage: 1, Tags: []DamageTag{TagIce}, TargetEffects: []string{"Frozen"}},
		{Key: "Net", AreaOfEffectRange: 1, CostActionPoint: true, TargetEffects: []string{"Tangled"}},
		{Key: "Arrow", AreaOfEffectRange: 0, CostActionPoint: true, BaseDamage: 3, Tags: []DamageTag{TagPhysical}},
		{Key: "WhirlwindAttack", AreaOfEffectRange: 1, CostActionPoint: true, BaseDamage: 3, Tags: []DamageTag{TagPhysical}},
		{Key: "Petrify", AreaOfEffectRange: 0, CostActionPoint: true, TargetEffects: []string{"Petrified"}},
		{Key: "AcidSpit", AreaOfEffectRange: 0, CostActionPoint: true, BaseDamage: 2, Tags: []DamageTag{TagAcid}},
		{Key: "Strike", AreaOfEffectRange: 0, CostActionPoint: true, BaseDamage: 3, Tags: []DamageTag{TagPhysical}},
		{Key: "HealingPotion", AreaOfEffectRange: 0, CostActionPoint: false},
	}
	out := make(map[AbilityKey]*Ability, len(list))
	for _, a := range list {
		out[a.Key] = a
	}
	return out
}

func defaultLevelProperties() map[string]int {
	return map[string]int{
		"FloorOneElvenSummoners":   1,
		"FloorTwoElvenSummoners":   1,
		"FloorThreeElvenSummoners": 2,
		"FloorOneHealingFountains": 1,
		"FloorTwoHealingFountains": 1,
		"FloorThreeLootChests":     2,
		"BigGoldPileChance":        10,
	}
}

// AttackArgs are the arguments of OpGenerateAttackDamage. The result is the damage as int.
type AttackArgs struct {
	Source  *Piece
	Target  *Piece
	Ability AbilityKey
	Outcome Outcome
}

// DamageArgs are the arguments of OpDealDamage. The result is the damage dealt as int.
type DamageArgs struct {
	Target   *Piece
	Attacker *Piece
	Ability  AbilityKey
	Amount   int
	Tags     []DamageTag
}

// HasTag reports whether the damage carries a tag.
func (d *DamageArgs) HasTag(tag DamageTag) bool {
	return slices.Contains(d.Tags, tag)
}

// Game is an in-memory model of the host application that rules modify.
// Game 是规则所修改的宿主应用的内存模型。
type Game struct {
	abilities  map[AbilityKey]*Ability
	levelProps map[string]int
	pieces     map[PieceID]PieceTemplate
	patcher    *Patcher
	rng        *rand.Rand
}

// GameOption configures a Game.
type GameOption func(*Game)

// WithSeed makes random rolls deterministic.
func WithSeed(seed int64) GameOption {
	return func(g *Game) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// NewGame creates a game loaded with the default data tables.
// NewGame 创建加载了默认数据表的游戏。
func NewGame(opts ...GameOption) *Game {
	pieces := make(map[PieceID]PieceTemplate, len(defaultPieces))
	for k, v := range defaultPieces {
		pieces[k] = v
	}
	g := &Game{
		abilities:  defaultAbilities(),
		levelProps: defaultLevelProperties(),
		pieces:     pieces,
		patcher:    NewPatcher(OpGenerateAttackDamage, OpDealDamage),
		rng:        rand.New(rand.NewSource(1)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Patcher returns the interception table of the game.
func (g *Game) Patcher() *Patcher {
	return g.patcher
}

// Rand returns the random source used for rolls.
func (g *Game) Rand() *rand.Rand {
	return g.rng
}

// Ability returns the mutable definition of an ability.
func (g *Game) Ability(key AbilityKey) (*Ability, bool) {
	a, ok := g.abilities[key]
	return a, ok
}

// LevelProperty returns a level property value.
func (g *Game) LevelProperty(name string) (int, bool) {
	v, ok := g.levelProps[name]
	return v, ok
}

// SetLevelProperty overwrites a level property.
func (g *Game) SetLevelProperty(name string, value int) {
	g.levelProps[name] = value
}

// DeleteLevelProperty removes a level property.
func (g *Game) DeleteLevelProperty(name string) {
	delete(g.levelProps, name)
}

// Spawn creates a piece from its template.
func (g *Game) Spawn(id PieceID) (*Piece, error) {
	t, ok := g.pieces[id]
	if !ok {
		return nil, fmt.Errorf("unknown piece %s", id)
	}
	return &Piece{
		ID:           id,
		Player:       t.Player,
		Boss:         t.Boss,
		Health:       t.MaxHealth,
		MaxHealth:    t.MaxHealth,
		ActionPoints: t.ActionPoints,
	}, nil
}

// KnownPiece reports whether a piece kind exists.
func (g *Game) KnownPiece(id PieceID) bool {
	_, ok := g.pieces[id]
	return ok
}

// Attack resolves an attack through the intercepted operations and returns the damage dealt.
// Attack 通过被拦截的操作结算一次攻击，并返回造成的伤害。
func (g *Game) Attack(source, target *Piece, key AbilityKey, outcome Outcome) (int, error) {
	ability, ok := g.abilities[key]
	if !ok {
		return 0, fmt.Errorf("unknown ability %s", key)
	}
	if source == nil || target == nil {
		return 0, fmt.Errorf("attack with %s needs a source and a target", key)
	}

	gen := g.patcher.Call(OpGenerateAttackDamage,
		&AttackArgs{Source: source, Target: target, Ability: key, Outcome: outcome},
		func(inv *sdk.Invocation) {
			switch outcome {
			case OutcomeMiss:
				inv.Result = 0
			case OutcomeCrit:
				inv.Result = ability.BaseDamage * 2
			default:
				inv.Result = ability.BaseDamage
			}
		})
	amount, _ := gen.Result.(int)

	dealtTotal := 0
	if amount > 0 {
		dealt := g.patcher.Call(OpDealDamage,
			&DamageArgs{Target: target, Attacker: source, Ability: key, Amount: amount, Tags: ability.Tags},
			func(inv *sdk.Invocation) {
				args := inv.Args.(*DamageArgs)
				args.Target.SubtractHealth(args.Amount)
				inv.Result = args.Amount
			})
		if dealt.Skip {
			return 0, nil
		}
		dealtTotal, _ = dealt.Result.(int)
	}

	if outcome != OutcomeMiss {
		for _, effect := range ability.TargetEffects {
			target.EnableEffect(effect, 1)
		}
	}
	return dealtTotal, nil
}
