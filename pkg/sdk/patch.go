package sdk

import (
	"errors"
	"fmt"
)

// InterceptKind selects where a handler runs relative to the intercepted call.
// InterceptKind 选择处理器相对于被拦截调用的运行位置。
type InterceptKind int

const (
	// InterceptBefore runs before the original call and may veto it.
	InterceptBefore InterceptKind = iota
	// InterceptAfter runs after the original call and may alter its result.
	InterceptAfter
	// InterceptReplace runs instead of the original call.
	InterceptReplace
)

func (k InterceptKind) String() string {
	switch k {
	case InterceptBefore:
		return "before"
	case InterceptAfter:
		return "after"
	case InterceptReplace:
		return "replace"
	default:
		return fmt.Sprintf("InterceptKind(%d)", int(k))
	}
}

// Invocation is one intercepted host call as seen by a handler.
// Invocation 是处理器看到的一次被拦截的宿主调用。
type Invocation struct {
	// Target names the intercepted host operation.
	Target string
	// Args holds the operation arguments. The concrete type is defined by the host.
	Args any
	// Result holds the operation result once available.
	Result any
	// Skip, set by a before handler, prevents the original call from running.
	Skip bool
}

// Handler is invoked for every call to an intercepted target.
type Handler func(inv *Invocation)

// PatchHandle identifies an installed interception.
// The same handle must be passed to Remove.
// PatchHandle 标识一个已安装的拦截，移除时必须传入同一个句柄。
type PatchHandle struct {
	ID     uint64
	Target string
	Kind   InterceptKind
}

// PatchCapability installs and removes live interceptions of host behavior.
// Installing the same target twice installs two handlers; it does not deduplicate.
// PatchCapability 安装和移除对宿主行为的实时拦截。
// 对同一目标安装两次会得到两个处理器，不会去重。
type PatchCapability interface {
	Install(target string, kind InterceptKind, handler Handler) (PatchHandle, error)
	// Remove uninstalls the interception. Removing an unknown or already removed handle is a no-op.
	Remove(handle PatchHandle) error
}

// PatchSet records the handles a rule installed so they can be removed together.
// PatchSet 记录规则安装的句柄，以便一起移除。
type PatchSet struct {
	handles []PatchHandle
}

// Install installs an interception and records its handle.
func (s *PatchSet) Install(p PatchCapability, target string, kind InterceptKind, h Handler) error {
	handle, err := p.Install(target, kind, h)
	if err != nil {
		return err
	}
	s.handles = append(s.handles, handle)
	return nil
}

// RemoveAll removes every recorded interception in installation order and clears the set.
// All removals are attempted even if some fail.
func (s *PatchSet) RemoveAll(p PatchCapability) error {
	if len(s.handles) == 0 {
		return nil
	}
	var errs []error
	for _, h := range s.handles {
		if err := p.Remove(h); err != nil {
			errs = append(errs, err)
		}
	}
	s.handles = nil
	return errors.Join(errs...)
}

// Len returns the number of recorded interceptions.
func (s *PatchSet) Len() int {
	return len(s.handles)
}
