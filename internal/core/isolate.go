package core

import (
	"fmt"

	errs "github.com/livp123/houserules/pkg/errors"
	"github.com/livp123/houserules/pkg/sdk"
)

// Phase names one lifecycle pass.
type Phase string

const (
	PhaseActivate        Phase = "activate"
	PhaseDeactivate      Phase = "deactivate"
	PhasePreGameCreated  Phase = "pre_game_created"
	PhasePostGameCreated Phase = "post_game_created"
)

// callback returns the rule hook for a phase.
func (p Phase) callback(r sdk.Rule) func(*sdk.GameContext) error {
	switch p {
	case PhaseActivate:
		return r.OnActivate
	case PhaseDeactivate:
		return r.OnDeactivate
	case PhasePreGameCreated:
		return r.OnPreGameCreated
	case PhasePostGameCreated:
		return r.OnPostGameCreated
	default:
		return func(*sdk.GameContext) error { return fmt.Errorf("unknown phase %q", p) }
	}
}

// invokeIsolated runs one rule callback. Returned errors and panics are both
// converted into a RuleCallbackFailure so a misbehaving rule never escapes the engine.
// invokeIsolated 运行单个规则回调；返回的错误和 panic 都会被转换为 RuleCallbackFailure。
func invokeIsolated(phase Phase, name string, fn func(*sdk.GameContext) error, gctx *sdk.GameContext) (failure *errs.RuleCallbackFailure) {
	defer func() {
		if rec := recover(); rec != nil {
			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("panic: %v", rec)
			} else {
				err = fmt.Errorf("panic: %w", err)
			}
			failure = errs.NewRuleCallbackFailure(name, string(phase), err)
		}
	}()

	if err := fn(gctx); err != nil {
		return errs.NewRuleCallbackFailure(name, string(phase), err)
	}
	return nil
}
