package core

import (
	"errors"
	"sync"
	"testing"

	"github.com/livp123/houserules/internal/metrics"
	errs "github.com/livp123/houserules/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTraceRuleset(t *testing.T, name string) *Ruleset {
	t.Helper()
	var trace []string
	rs, err := NewRuleset(name, name+" description", newTraceRule("R", &trace))
	require.NoError(t, err)
	return rs
}

// TestRegistry_RegisterLookup tests that lookup returns the registered instance
// TestRegistry_RegisterLookup 测试查找返回已注册的同一实例
func TestRegistry_RegisterLookup(t *testing.T) {
	reg := NewRegistry()
	rs := mustTraceRuleset(t, "Better Sorcerer")

	require.NoError(t, reg.Register(rs))

	for _, name := range []string{"Better Sorcerer", "better sorcerer", "BETTER SORCERER"} {
		got, err := reg.Lookup(name)
		require.NoError(t, err, name)
		assert.Same(t, rs, got)
	}
}

// TestRegistry_DuplicateName tests that a duplicate name leaves the registry unchanged
// TestRegistry_DuplicateName 测试重名时注册表保持不变
func TestRegistry_DuplicateName(t *testing.T) {
	reg := NewRegistry()
	first := mustTraceRuleset(t, "Alpha")
	require.NoError(t, reg.Register(first))

	err := reg.Register(mustTraceRuleset(t, "ALPHA"))
	assert.True(t, errors.Is(err, errs.ErrDuplicateName))
	assert.Equal(t, 1, reg.Len())

	got, err := reg.Lookup("alpha")
	require.NoError(t, err)
	assert.Same(t, first, got)
}

// TestRegistry_NotFound tests lookup of unknown names
// TestRegistry_NotFound 测试查找未知名称
func TestRegistry_NotFound(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(mustTraceRuleset(t, "Alpha")))

	_, err := reg.Lookup("Alph")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	_, err = reg.Lookup("")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

// TestRegistry_RegisterNil tests that a nil ruleset is rejected
// TestRegistry_RegisterNil 测试拒绝空规则集
func TestRegistry_RegisterNil(t *testing.T) {
	reg := NewRegistry()
	assert.True(t, errors.Is(reg.Register(nil), errs.ErrConstruction))
	assert.Equal(t, 0, reg.Len())
}

// TestRegistry_List tests registration order
// TestRegistry_List 测试注册顺序
func TestRegistry_List(t *testing.T) {
	reg := NewRegistry()
	a, b := mustTraceRuleset(t, "B-first"), mustTraceRuleset(t, "A-second")
	require.NoError(t, reg.Register(a))
	require.NoError(t, reg.Register(b))

	list := reg.List()
	assert.Equal(t, []*Ruleset{a, b}, list)

	list[0] = nil
	assert.Same(t, a, reg.List()[0])
}

// TestRegistry_Concurrent tests concurrent registration and lookup
// TestRegistry_Concurrent 测试并发注册与查找
func TestRegistry_Concurrent(t *testing.T) {
	reg := NewRegistry()
	rs := mustTraceRuleset(t, "Shared")

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if reg.Register(rs) == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
			_, _ = reg.Lookup("shared")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, reg.Len())
}

// TestDefaultRegistry tests the process-wide singleton
// TestDefaultRegistry 测试进程级单例
func TestDefaultRegistry(t *testing.T) {
	assert.Same(t, DefaultRegistry(), DefaultRegistry())

	// Only the default registry drives the gauge
	// 只有默认注册表会更新指标
	before := testutil.ToFloat64(metrics.RegisteredRulesets)
	other := NewRegistry()
	require.NoError(t, other.Register(MustRuleset("Elsewhere", "", &flagRule{flag: new(int)})))
	assert.Equal(t, before, testutil.ToFloat64(metrics.RegisteredRulesets))

	reg := DefaultRegistry()
	require.NoError(t, reg.Register(MustRuleset("Gauged", "", &flagRule{flag: new(int)})))
	assert.Equal(t, float64(reg.Len()), testutil.ToFloat64(metrics.RegisteredRulesets))
}
