package errors

import (
	"errors"
	"fmt"
)

var (
	ErrConstruction       = errors.New("invalid ruleset construction")
	ErrDuplicateName      = errors.New("ruleset already registered")
	ErrNotFound           = errors.New("ruleset not registered")
	ErrConfiguration      = errors.New("rule configuration error")
	ErrRuleCallback       = errors.New("rule callback failed")
	ErrNotMultiplayerSafe = errors.New("ruleset is not multiplayer safe")
	ErrInvalidDefinition  = errors.New("invalid ruleset definition")
	ErrUnknownRuleKind    = errors.New("unknown rule kind")
	ErrPatcherUnavailable = errors.New("patch capability unavailable")
	ErrInvalidIntercept   = errors.New("invalid interception")
	ErrConfigInvalid      = errors.New("invalid configuration")
)

func NewConstructionError(reason string) error {
	return fmt.Errorf("%w: %s", ErrConstruction, reason)
}

func NewDuplicateNameError(name string) error {
	return fmt.Errorf("%w: %s", ErrDuplicateName, name)
}

func NewNotFoundError(name string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}

// NewConfigurationError reports a rule that references a host entity which
// does not exist, e.g. an unknown ability key.
// NewConfigurationError 报告规则引用了不存在的宿主实体（例如未知的技能键）。
func NewConfigurationError(rule string, format string, args ...any) error {
	return fmt.Errorf("%w: rule=%s: %s", ErrConfiguration, rule, fmt.Sprintf(format, args...))
}

// RuleCallbackFailure wraps an error or panic raised inside a rule callback.
// RuleCallbackFailure 封装规则回调中发生的错误或 panic。
type RuleCallbackFailure struct {
	Rule  string
	Phase string
	Err   error
}

func (f *RuleCallbackFailure) Error() string {
	return fmt.Sprintf("%v: rule=%s phase=%s: %v", ErrRuleCallback, f.Rule, f.Phase, f.Err)
}

// Is makes errors.Is(f, ErrRuleCallback) hold for every failure.
func (f *RuleCallbackFailure) Is(target error) bool {
	return target == ErrRuleCallback
}

func (f *RuleCallbackFailure) Unwrap() error {
	return f.Err
}

func NewRuleCallbackFailure(rule, phase string, err error) *RuleCallbackFailure {
	return &RuleCallbackFailure{Rule: rule, Phase: phase, Err: err}
}

// NewPatcherUnavailableError reports a patchable rule run without a PatchCapability.
func NewPatcherUnavailableError(rule string) error {
	return fmt.Errorf("%w: rule=%s: %w", ErrConfiguration, rule, ErrPatcherUnavailable)
}

func NewNotMultiplayerSafeError(ruleset string, rules []string) error {
	return fmt.Errorf("%w: ruleset=%s unsafe_rules=%v", ErrNotMultiplayerSafe, ruleset, rules)
}

func NewDefinitionError(source string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidDefinition, source, reason)
}

func NewUnknownRuleKindError(kind string) error {
	return fmt.Errorf("%w: %s", ErrUnknownRuleKind, kind)
}

func NewConfigError(field string, value interface{}) error {
	return fmt.Errorf("%w: field=%s value=%v", ErrConfigInvalid, field, value)
}
