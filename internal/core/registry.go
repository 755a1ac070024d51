package core

import (
	"sync"

	"github.com/livp123/houserules/internal/metrics"
	errs "github.com/livp123/houserules/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Registry is an append-only catalog of rulesets addressable by name.
// Names are compared case-insensitively.
// Registry 是按名称寻址的只追加规则集目录，名称比较不区分大小写。
type Registry struct {
	mu       sync.RWMutex
	rulesets map[string]*Ruleset
	order    []*Ruleset
	// size is reported on every registration when set.
	size prometheus.Gauge
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry. It is the only registry
// reported by the registered rulesets gauge.
// DefaultRegistry 返回进程级注册表，也是唯一由已注册规则集指标上报的注册表。
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		defaultRegistry.size = metrics.RegisteredRulesets
	})
	return defaultRegistry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rulesets: make(map[string]*Ruleset)}
}

// registryKey normalizes a ruleset name for lookups.
func registryKey(name string) string {
	return cases.Fold().String(norm.NFC.String(name))
}

// Register adds a ruleset. A ruleset with the same name, ignoring case, must not exist.
// Register 添加规则集；不得存在同名（忽略大小写）的规则集。
func (r *Registry) Register(rs *Ruleset) error {
	if rs == nil {
		return errs.NewConstructionError("cannot register a nil ruleset")
	}
	key := registryKey(rs.Name())

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rulesets[key]; exists {
		return errs.NewDuplicateNameError(rs.Name())
	}
	r.rulesets[key] = rs
	r.order = append(r.order, rs)
	if r.size != nil {
		r.size.Set(float64(len(r.order)))
	}
	return nil
}

// Lookup finds a ruleset by exact name, ignoring case.
// Lookup 按名称精确查找规则集（忽略大小写）。
func (r *Registry) Lookup(name string) (*Ruleset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs, ok := r.rulesets[registryKey(name)]
	if !ok {
		return nil, errs.NewNotFoundError(name)
	}
	return rs, nil
}

// List returns the rulesets in registration order.
func (r *Registry) List() []*Ruleset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Ruleset(nil), r.order...)
}

// Len returns the number of registered rulesets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
