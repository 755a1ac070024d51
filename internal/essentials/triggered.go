package essentials

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/livp123/houserules/internal/host"
	errs "github.com/livp123/houserules/pkg/errors"
	"github.com/livp123/houserules/pkg/sdk"
)

// Trigger points of a TriggeredEffect.
const (
	// TriggerAttack fires after attack damage was generated.
	TriggerAttack = "attack"
	// TriggerDamage fires before damage is dealt and may block it.
	TriggerDamage = "damage"
)

// TriggeredEffectConfig describes a data-driven effect.
// TriggeredEffectConfig 描述数据驱动的效果。
type TriggeredEffectConfig struct {
	// On is the trigger point, attack or damage.
	On string `yaml:"on" json:"on"`
	// When is an expr condition evaluated against TriggerEnv.
	When string `yaml:"when" json:"when"`
	// Apply selects the piece the mutation applies to, source or target. Default: source.
	Apply        string `yaml:"apply,omitempty" json:"apply,omitempty"`
	Heal         int    `yaml:"heal,omitempty" json:"heal,omitempty"`
	ActionPoints int    `yaml:"action_points,omitempty" json:"action_points,omitempty"`
	Effect       string `yaml:"effect,omitempty" json:"effect,omitempty"`
	Duration     int    `yaml:"duration,omitempty" json:"duration,omitempty"`
	// Block vetoes the damage. Only valid with On: damage.
	Block bool `yaml:"block,omitempty" json:"block,omitempty"`
}

// TriggerEnv is the environment conditions are evaluated in.
// TriggerEnv 是条件表达式的求值环境。
type TriggerEnv struct {
	Source          string
	SourcePlayer    bool
	SourceBoss      bool
	SourceHealth    int
	SourceMaxHealth int
	Target          string
	TargetPlayer    bool
	TargetBoss      bool
	TargetHealth    int
	Ability         string
	Outcome         string
	Damage          int
	Tags            []string
}

func pieceID(p *host.Piece) string {
	if p == nil {
		return ""
	}
	return string(p.ID)
}

func newTriggerEnv(source, target *host.Piece, ability host.AbilityKey) TriggerEnv {
	env := TriggerEnv{
		Source:  pieceID(source),
		Target:  pieceID(target),
		Ability: string(ability),
	}
	if source != nil {
		env.SourcePlayer = source.Player
		env.SourceBoss = source.Boss
		env.SourceHealth = source.Health
		env.SourceMaxHealth = source.MaxHealth
	}
	if target != nil {
		env.TargetPlayer = target.Player
		env.TargetBoss = target.Boss
		env.TargetHealth = target.Health
	}
	return env
}

// TriggeredEffect mutates a piece whenever its condition holds at the trigger point.
// TriggeredEffect 在触发点条件成立时修改棋子状态。
type TriggeredEffect struct {
	sdk.BaseRule
	cfg     TriggeredEffectConfig
	program *vm.Program
	patches patches
}

func NewTriggeredEffect(cfg TriggeredEffectConfig) *TriggeredEffect {
	return &TriggeredEffect{cfg: cfg}
}

func (r *TriggeredEffect) Name() string      { return KindTriggeredEffect }
func (r *TriggeredEffect) ConfigObject() any { return r.cfg }

func (r *TriggeredEffect) Description() string {
	return "When " + r.cfg.When + " on " + r.cfg.On
}

func (r *TriggeredEffect) Capabilities() sdk.Capabilities {
	return sdk.Capabilities{MultiplayerSafe: true, Patchable: true}
}

func (r *TriggeredEffect) compile() error {
	switch r.cfg.On {
	case TriggerAttack:
		if r.cfg.Block {
			return errs.NewConfigurationError(r.Name(), "block is only valid on %s", TriggerDamage)
		}
	case TriggerDamage:
	default:
		return errs.NewConfigurationError(r.Name(), "unknown trigger %q", r.cfg.On)
	}
	switch r.cfg.Apply {
	case "", "source", "target":
	default:
		return errs.NewConfigurationError(r.Name(), "unknown apply target %q", r.cfg.Apply)
	}
	if r.cfg.When == "" {
		return errs.NewConfigurationError(r.Name(), "empty condition")
	}

	program, err := expr.Compile(r.cfg.When, expr.Env(TriggerEnv{}), expr.AsBool())
	if err != nil {
		return errs.NewConfigurationError(r.Name(), "compile %q: %v", r.cfg.When, err)
	}
	r.program = program
	return nil
}

func (r *TriggeredEffect) OnActivate(gctx *sdk.GameContext) error {
	if err := r.compile(); err != nil {
		return err
	}
	var logger sdk.Logger
	if gctx != nil {
		logger = gctx.Logger
	}

	if r.cfg.On == TriggerAttack {
		return r.patches.install(r.Name(), gctx, host.OpGenerateAttackDamage, sdk.InterceptAfter, func(inv *sdk.Invocation) {
			args, ok := inv.Args.(*host.AttackArgs)
			if !ok {
				return
			}
			env := newTriggerEnv(args.Source, args.Target, args.Ability)
			env.Outcome = string(args.Outcome)
			env.Damage, _ = inv.Result.(int)
			if r.matches(env, logger) {
				r.apply(args.Source, args.Target)
			}
		})
	}

	return r.patches.install(r.Name(), gctx, host.OpDealDamage, sdk.InterceptBefore, func(inv *sdk.Invocation) {
		args, ok := inv.Args.(*host.DamageArgs)
		if !ok {
			return
		}
		env := newTriggerEnv(args.Attacker, args.Target, args.Ability)
		env.Damage = args.Amount
		for _, tag := range args.Tags {
			env.Tags = append(env.Tags, string(tag))
		}
		if !r.matches(env, logger) {
			return
		}
		r.apply(args.Attacker, args.Target)
		if r.cfg.Block {
			inv.Skip = true
			inv.Result = 0
		}
	})
}

func (r *TriggeredEffect) OnDeactivate(gctx *sdk.GameContext) error {
	r.program = nil
	return r.patches.removeAll(r.Name(), gctx)
}

func (r *TriggeredEffect) matches(env TriggerEnv, logger sdk.Logger) bool {
	program := r.program
	if program == nil {
		return false
	}
	out, err := expr.Run(program, env)
	if err != nil {
		if logger != nil {
			logger.Warnf("[TriggeredEffect] condition %q failed: %v", r.cfg.When, err)
		}
		return false
	}
	matched, _ := out.(bool)
	return matched
}

func (r *TriggeredEffect) apply(source, target *host.Piece) {
	p := source
	if r.cfg.Apply == "target" {
		p = target
	}
	if p == nil {
		return
	}
	if r.cfg.Heal > 0 {
		p.Heal(r.cfg.Heal)
	}
	if r.cfg.ActionPoints != 0 {
		p.AddActionPoints(r.cfg.ActionPoints)
	}
	if r.cfg.Effect != "" {
		duration := r.cfg.Duration
		if duration <= 0 {
			duration = 1
		}
		p.EnableEffect(r.cfg.Effect, duration)
	}
}
