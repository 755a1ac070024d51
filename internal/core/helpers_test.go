package core

import (
	"errors"

	"github.com/livp123/houserules/pkg/sdk"
)

// traceRule records every callback it receives into a shared trace.
type traceRule struct {
	name  string
	caps  sdk.Capabilities
	trace *[]string
	fail  map[Phase]error
	boom  Phase
	seen  []*sdk.GameContext
}

func newTraceRule(name string, trace *[]string) *traceRule {
	return &traceRule{name: name, trace: trace, caps: sdk.Capabilities{MultiplayerSafe: true}}
}

func (r *traceRule) record(p Phase, gctx *sdk.GameContext) error {
	*r.trace = append(*r.trace, r.name+":"+string(p))
	r.seen = append(r.seen, gctx)
	if r.boom == p {
		panic("boom in " + r.name)
	}
	return r.fail[p]
}

func (r *traceRule) Name() string                   { return r.name }
func (r *traceRule) Description() string            { return "traces " + r.name }
func (r *traceRule) Capabilities() sdk.Capabilities { return r.caps }
func (r *traceRule) ConfigObject() any              { return map[string]string{"name": r.name} }

func (r *traceRule) OnActivate(g *sdk.GameContext) error   { return r.record(PhaseActivate, g) }
func (r *traceRule) OnDeactivate(g *sdk.GameContext) error { return r.record(PhaseDeactivate, g) }
func (r *traceRule) OnPreGameCreated(g *sdk.GameContext) error {
	return r.record(PhasePreGameCreated, g)
}
func (r *traceRule) OnPostGameCreated(g *sdk.GameContext) error {
	return r.record(PhasePostGameCreated, g)
}

// flagRule sets a shared flag on activation and clears it on deactivation.
type flagRule struct {
	sdk.BaseRule
	flag *int
}

func (r *flagRule) Name() string                   { return "FlagRule" }
func (r *flagRule) Description() string            { return "sets the flag" }
func (r *flagRule) Capabilities() sdk.Capabilities { return sdk.Capabilities{MultiplayerSafe: true} }
func (r *flagRule) ConfigObject() any              { return nil }

func (r *flagRule) OnActivate(*sdk.GameContext) error {
	*r.flag = 1
	return nil
}

func (r *flagRule) OnDeactivate(*sdk.GameContext) error {
	*r.flag = 0
	return nil
}

var errRuleBroken = errors.New("rule broken")

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(message string) {
	n.messages = append(n.messages, message)
}

type panickingNotifier struct{}

func (panickingNotifier) Notify(string) { panic("notifier down") }
