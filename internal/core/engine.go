package core

import (
	"context"

	"github.com/google/uuid"
	"github.com/livp123/houserules/internal/metrics"
	errs "github.com/livp123/houserules/pkg/errors"
	"github.com/livp123/houserules/pkg/sdk"
	"go.uber.org/zap"
)

// State is the engine state.
type State int

const (
	// StateIdle means no ruleset is selected.
	StateIdle State = iota
	// StateSelected means a ruleset is selected but not activated.
	StateSelected
	// StateActive means the selected ruleset is activated.
	StateActive
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelected:
		return "selected"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// Notifier receives the welcome text after a ruleset is activated.
// Notifier 在规则集激活后接收欢迎文本。
type Notifier interface {
	Notify(message string)
}

// CycleReport describes one lifecycle pass.
// Failures are reported here and never returned as errors.
// CycleReport 描述一次生命周期遍历；失败记录在此处，永不作为错误返回。
type CycleReport struct {
	Phase    Phase
	Ruleset  string
	CycleID  string
	Invoked  []string
	Failures []*errs.RuleCallbackFailure
	// Skipped is set when the pass was a no-op, e.g. activating twice.
	Skipped bool
}

// Failed reports whether any rule callback failed during the pass.
func (r *CycleReport) Failed() bool {
	return len(r.Failures) > 0
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithEventBus sets the bus lifecycle events are published on.
func WithEventBus(bus sdk.EventBus) Option {
	return func(e *Engine) {
		e.bus = bus
	}
}

// WithNotifier sets the collaborator that displays the welcome text.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithMultiplayer marks the session as multiplayer. Only multiplayer safe rulesets can then be selected.
// WithMultiplayer 将会话标记为多人模式，此时只能选择多人安全的规则集。
func WithMultiplayer(enabled bool) Option {
	return func(e *Engine) {
		e.multiplayer = enabled
	}
}

// Engine drives the Idle/Selected/Active state machine of a ruleset.
//
// The engine is single-threaded: Select, Activate, Deactivate and the game
// created dispatches must be called from the host's logic thread, one at a time.
// Rule order is never changed; every pass walks the rules in declaration order.
//
// Engine 驱动规则集的 Idle/Selected/Active 状态机。
// 引擎是单线程的：所有操作必须在宿主逻辑线程上逐个调用。规则顺序永不改变。
type Engine struct {
	registry    *Registry
	logger      *zap.SugaredLogger
	bus         sdk.EventBus
	notifier    Notifier
	multiplayer bool

	patchCtx *sdk.GameContext
	plainCtx *sdk.GameContext

	selected *Ruleset
	active   bool
	cycleID  string
}

// NewEngine creates an engine bound to a registry and a host context.
// NewEngine 创建绑定到注册表和宿主上下文的引擎。
func NewEngine(registry *Registry, gctx *sdk.GameContext, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		logger:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(e)
	}

	base := sdk.GameContext{Context: context.Background()}
	if gctx != nil {
		base = *gctx
	}
	if base.Context == nil {
		base.Context = context.Background()
	}
	if base.Logger == nil {
		base.Logger = e.logger
	}
	e.patchCtx = &base
	e.plainCtx = base.WithPatcher(nil)
	metrics.EngineState.Set(float64(StateIdle))
	return e
}

// State returns the current engine state.
func (e *Engine) State() State {
	switch {
	case e.active:
		return StateActive
	case e.selected != nil:
		return StateSelected
	default:
		return StateIdle
	}
}

// Selected returns the selected ruleset or nil.
func (e *Engine) Selected() *Ruleset {
	return e.selected
}

// CycleID returns the id of the current activation cycle, empty when inactive.
func (e *Engine) CycleID() string {
	return e.cycleID
}

// Select makes the named ruleset the selected ruleset.
// An active ruleset is fully deactivated first. On lookup failure the engine is left Idle.
// Select 选择指定名称的规则集；若有激活的规则集，先完整停用。查找失败时引擎处于 Idle。
func (e *Engine) Select(name string) error {
	if e.active {
		e.Deactivate()
	}

	rs, err := e.registry.Lookup(name)
	if err != nil {
		e.selected = nil
		e.syncState()
		e.logger.Warnw("[Engine] Ruleset selection failed", "ruleset", name, "error", err)
		return err
	}

	if e.multiplayer && !rs.MultiplayerSafe() {
		e.selected = nil
		e.syncState()
		err := errs.NewNotMultiplayerSafeError(rs.Name(), rs.UnsafeRules())
		e.logger.Warnw("[Engine] Ruleset selection refused", "ruleset", rs.Name(), "error", err)
		return err
	}

	e.selected = rs
	e.syncState()
	e.logger.Infow("[Engine] Selected ruleset", "ruleset", rs.Name())
	e.publish(sdk.EventTypeRulesetSelected, rs.Name())
	return nil
}

// Activate runs OnActivate on every rule of the selected ruleset, in order.
// A failing rule is logged and skipped; remaining rules are still activated and nothing is rolled back.
// Activate 按顺序对所选规则集的每条规则调用 OnActivate。
// 失败的规则会被记录并跳过，其余规则继续激活，不做回滚。
func (e *Engine) Activate() *CycleReport {
	if e.selected == nil {
		e.logger.Debugw("[Engine] Activate ignored, no ruleset selected")
		return &CycleReport{Phase: PhaseActivate, Skipped: true}
	}
	if e.active {
		e.logger.Warnw("[Engine] Ruleset already active", "ruleset", e.selected.Name(), "cycle", e.cycleID)
		return &CycleReport{Phase: PhaseActivate, Ruleset: e.selected.Name(), CycleID: e.cycleID, Skipped: true}
	}

	e.cycleID = uuid.NewString()
	e.logger.Infow("[Engine] Activating ruleset",
		"ruleset", e.selected.Name(), "rules", e.selected.Len(), "cycle", e.cycleID)

	report := e.dispatch(PhaseActivate)
	e.active = true
	e.syncState()

	e.publishFailures(report)
	e.publish(sdk.EventTypeRulesetActivated, report)
	e.requestSync()
	e.notify(WelcomeMessage(e.selected))
	return report
}

// Deactivate runs OnDeactivate on every rule in the same order used for activation.
// It is a no-op when the engine is not active.
// Deactivate 以与激活相同的顺序对每条规则调用 OnDeactivate；未激活时不做任何事。
func (e *Engine) Deactivate() *CycleReport {
	if !e.active {
		return &CycleReport{Phase: PhaseDeactivate, Skipped: true}
	}

	e.logger.Infow("[Engine] Deactivating ruleset", "ruleset", e.selected.Name(), "cycle", e.cycleID)
	report := e.dispatch(PhaseDeactivate)
	e.active = false
	e.cycleID = ""
	e.syncState()

	e.publishFailures(report)
	e.publish(sdk.EventTypeRulesetDeactivated, report)
	return report
}

// PreGameCreated forwards the host's pre game created signal to the active rules.
// PreGameCreated 将宿主的游戏创建前信号转发给已激活的规则。
func (e *Engine) PreGameCreated() *CycleReport {
	return e.gameCreated(PhasePreGameCreated)
}

// PostGameCreated forwards the host's post game created signal to the active rules.
// PostGameCreated 将宿主的游戏创建后信号转发给已激活的规则。
func (e *Engine) PostGameCreated() *CycleReport {
	return e.gameCreated(PhasePostGameCreated)
}

func (e *Engine) gameCreated(phase Phase) *CycleReport {
	if e.selected == nil {
		return &CycleReport{Phase: phase, Skipped: true}
	}
	if !e.active {
		e.logger.Warnw("[Engine] Game created dispatch ignored, ruleset not active",
			"ruleset", e.selected.Name(), "phase", phase)
		return &CycleReport{Phase: phase, Ruleset: e.selected.Name(), Skipped: true}
	}

	report := e.dispatch(phase)
	e.publishFailures(report)
	e.publish(sdk.EventTypeGameCreated, report)
	if phase == PhasePreGameCreated {
		e.requestSync()
	}
	return report
}

// dispatch walks the selected ruleset in declaration order, isolating each callback.
// It only records failures; callers publish them once the pass is committed.
func (e *Engine) dispatch(phase Phase) *CycleReport {
	rs := e.selected
	report := &CycleReport{
		Phase:   phase,
		Ruleset: rs.Name(),
		CycleID: e.cycleID,
		Invoked: make([]string, 0, rs.Len()),
	}
	metrics.LifecyclePassesTotal.WithLabelValues(string(phase)).Inc()

	for _, en := range rs.entries {
		report.Invoked = append(report.Invoked, en.name)
		metrics.RuleCallbacksTotal.WithLabelValues(string(phase)).Inc()

		var failure *errs.RuleCallbackFailure
		if en.caps.Patchable && e.patchCtx.Patcher == nil {
			failure = errs.NewRuleCallbackFailure(en.name, string(phase),
				errs.NewPatcherUnavailableError(en.name))
		} else {
			failure = invokeIsolated(phase, en.name, phase.callback(en.rule), e.contextFor(rs, en))
		}

		if failure != nil {
			report.Failures = append(report.Failures, failure)
			metrics.RuleFailuresTotal.WithLabelValues(en.name, string(phase)).Inc()
			e.logger.Warnw("[Engine] Rule callback failed",
				"ruleset", rs.Name(), "rule", en.name, "phase", phase, "cycle", e.cycleID, "error", failure.Err)
		}
	}
	return report
}

func (e *Engine) contextFor(rs *Ruleset, en entry) *sdk.GameContext {
	base := e.plainCtx
	if en.caps.Patchable {
		base = e.patchCtx
	}
	gctx := *base
	gctx.Ruleset = rs.Name()
	return &gctx
}

func (e *Engine) requestSync() {
	if !e.multiplayer || e.selected == nil {
		return
	}
	if t := e.selected.ModifiedSyncables(); t != sdk.SyncableNone {
		e.logger.Infow("[Engine] Sync required", "ruleset", e.selected.Name(), "syncables", t.String())
		e.publish(sdk.EventTypeSyncRequired, t)
	}
}

func (e *Engine) publishFailures(report *CycleReport) {
	for _, f := range report.Failures {
		e.publish(sdk.EventTypeRuleFailed, f)
	}
}

// publish delivers an event. A panicking subscriber is logged and never unwinds the engine.
// publish 投递事件；订阅者的 panic 会被记录，不会中断引擎。
func (e *Engine) publish(t sdk.EventType, payload any) {
	if e.bus == nil {
		return
	}
	defer e.recoverCollaborator("event_bus", string(t))
	e.bus.Publish(sdk.NewEvent(t, "engine", payload))
}

func (e *Engine) notify(message string) {
	if e.notifier == nil {
		return
	}
	defer e.recoverCollaborator("notifier", "welcome")
	e.notifier.Notify(message)
}

func (e *Engine) recoverCollaborator(collaborator, event string) {
	if rec := recover(); rec != nil {
		e.logger.Errorw("[Engine] Collaborator panicked",
			"collaborator", collaborator, "event", event, "cycle", e.cycleID, "panic", rec)
	}
}

func (e *Engine) syncState() {
	metrics.EngineState.Set(float64(e.State()))
}
