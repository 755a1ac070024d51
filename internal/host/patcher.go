package host

import (
	"fmt"
	"sync"

	errs "github.com/livp123/houserules/pkg/errors"
	"github.com/livp123/houserules/pkg/sdk"
)

type installed struct {
	id      uint64
	kind    sdk.InterceptKind
	handler sdk.Handler
}

// Patcher is the interception table of the simulated host. It implements sdk.PatchCapability.
// Patcher 是模拟宿主的拦截表，实现 sdk.PatchCapability。
type Patcher struct {
	mu      sync.Mutex
	next    uint64
	targets map[string]struct{}
	hooks   map[string][]installed
}

// NewPatcher creates a patcher accepting interceptions on the given targets only.
func NewPatcher(targets ...string) *Patcher {
	p := &Patcher{
		targets: make(map[string]struct{}, len(targets)),
		hooks:   make(map[string][]installed),
	}
	for _, t := range targets {
		p.targets[t] = struct{}{}
	}
	return p
}

// Install registers a handler on a target. Installing twice yields two independent handlers.
// Install 在目标上注册处理器；重复安装会得到两个独立的处理器。
func (p *Patcher) Install(target string, kind sdk.InterceptKind, handler sdk.Handler) (sdk.PatchHandle, error) {
	if handler == nil {
		return sdk.PatchHandle{}, fmt.Errorf("%w: nil handler for %s", errs.ErrInvalidIntercept, target)
	}
	if kind < sdk.InterceptBefore || kind > sdk.InterceptReplace {
		return sdk.PatchHandle{}, fmt.Errorf("%w: kind %v", errs.ErrInvalidIntercept, kind)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.targets[target]; !ok {
		return sdk.PatchHandle{}, fmt.Errorf("%w: unknown target %s", errs.ErrInvalidIntercept, target)
	}
	p.next++
	p.hooks[target] = append(p.hooks[target], installed{id: p.next, kind: kind, handler: handler})
	return sdk.PatchHandle{ID: p.next, Target: target, Kind: kind}, nil
}

// Remove uninstalls a handler. Unknown handles are ignored.
// Remove 卸载处理器，忽略未知句柄。
func (p *Patcher) Remove(handle sdk.PatchHandle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	hooks := p.hooks[handle.Target]
	for i, h := range hooks {
		if h.id == handle.ID {
			p.hooks[handle.Target] = append(hooks[:i:i], hooks[i+1:]...)
			return nil
		}
	}
	return nil
}

// Installed returns the number of handlers installed on a target.
func (p *Patcher) Installed(target string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.hooks[target])
}

// Call runs an intercepted operation: before handlers, then the original
// (or the most recently installed replace handler), then after handlers.
// A before handler that sets Skip prevents the original from running; after handlers still run.
// Call 执行被拦截的操作：先运行 before 处理器，再运行原始操作（或最近安装的 replace 处理器），最后运行 after 处理器。
func (p *Patcher) Call(target string, args any, original sdk.Handler) *sdk.Invocation {
	p.mu.Lock()
	hooks := append([]installed(nil), p.hooks[target]...)
	p.mu.Unlock()

	inv := &sdk.Invocation{Target: target, Args: args}

	var replace sdk.Handler
	for _, h := range hooks {
		switch h.kind {
		case sdk.InterceptBefore:
			h.handler(inv)
		case sdk.InterceptReplace:
			replace = h.handler
		}
	}

	if !inv.Skip {
		if replace != nil {
			replace(inv)
		} else if original != nil {
			original(inv)
		}
	}

	for _, h := range hooks {
		if h.kind == sdk.InterceptAfter {
			h.handler(inv)
		}
	}
	return inv
}
