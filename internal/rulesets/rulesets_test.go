package rulesets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/livp123/houserules/internal/core"
	builtin "github.com/livp123/houserules/internal/essentials/rulesets"
	errs "github.com/livp123/houserules/pkg/errors"
	"github.com/livp123/houserules/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDefinition = `name: Sample
description: A sample ruleset
rules:
  - kind: AbilityAoeAdjusted
    config:
      Zap: 1
  - kind: FreeHealOnHit
    config: [HeroRogue]
  - kind: LevelPropertiesModified
    config:
      BigGoldPileChance: 50
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestParse tests building a ruleset from YAML
// TestParse 测试从 YAML 构建规则集
func TestParse(t *testing.T) {
	rs, err := Parse([]byte(sampleDefinition), "sample.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Sample", rs.Name())
	assert.Equal(t, "A sample ruleset", rs.Description())

	cfg := core.ExportConfig(rs)
	require.Len(t, cfg, 3)
	assert.Equal(t, "AbilityAoeAdjusted", cfg[0].Kind)
	assert.Equal(t, "FreeHealOnHit", cfg[1].Kind)
	assert.Equal(t, "LevelPropertiesModified", cfg[2].Kind)
	assert.True(t, rs.Capabilities(1).Patchable)
}

// TestParse_Invalid tests invalid definitions
// TestParse_Invalid 测试无效定义
func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"bad yaml", "name: [", errs.ErrInvalidDefinition},
		{"no rules", "name: Empty\nrules: []\n", errs.ErrConstruction},
		{"no name", "rules:\n  - kind: FreeHealOnHit\n", errs.ErrConstruction},
		{"no kind", "name: X\nrules:\n  - config: {}\n", errs.ErrInvalidDefinition},
		{"unknown kind", "name: X\nrules:\n  - kind: Teleport\n", errs.ErrUnknownRuleKind},
		{"bad config", "name: X\nrules:\n  - kind: AbilityAoeAdjusted\n    config: [1, 2]\n", errs.ErrInvalidDefinition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "test.yaml")
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

// TestEncode_RoundTrip tests that exported definitions load back unchanged
// TestEncode_RoundTrip 测试导出的定义可以原样加载回来
func TestEncode_RoundTrip(t *testing.T) {
	for _, rs := range builtin.Builtins() {
		data, err := Encode(rs)
		require.NoError(t, err, rs.Name())

		back, err := Parse(data, rs.Name())
		require.NoError(t, err, string(data))
		assert.Equal(t, rs.Name(), back.Name())
		assert.Equal(t, rs.Description(), back.Description())
		assert.Equal(t, core.ExportConfig(rs), core.ExportConfig(back))
	}
}

// TestLoadDir tests loading a directory in file name order
// TestLoadDir 测试按文件名顺序加载目录
func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", "name: Bravo\nrules:\n  - kind: FreeHealOnHit\n")
	writeFile(t, dir, "a.yml", "name: Alpha\nrules:\n  - kind: FreeActionPointsOnCrit\n")
	writeFile(t, dir, "c.yaml", "name: [")
	writeFile(t, dir, "notes.txt", "ignored")

	loaded, err := LoadDir(dir)
	assert.True(t, errors.Is(err, errs.ErrInvalidDefinition))
	require.Len(t, loaded, 2)
	assert.Equal(t, "Alpha", loaded[0].Name())
	assert.Equal(t, "Bravo", loaded[1].Name())

	_, err = LoadDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

// TestLoadFile_Missing tests a missing file
// TestLoadFile_Missing 测试文件不存在
func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, os.IsNotExist(err))
}

// TestWatcher_Scan tests additive registration
// TestWatcher_Scan 测试追加式注册
func TestWatcher_Scan(t *testing.T) {
	dir := t.TempDir()
	reg := core.NewRegistry()
	require.NoError(t, builtin.RegisterBuiltins(reg))

	writeFile(t, dir, "sample.yaml", sampleDefinition)
	writeFile(t, dir, "dup.yaml", "name: glass cannon\nrules:\n  - kind: FreeHealOnHit\n")

	bus := sdk.NewEventBus()
	var events []string
	bus.Subscribe(sdk.EventTypeRulesetRegistered, func(ev sdk.Event) {
		events = append(events, ev.Payload.(string))
	})

	w := NewWatcher(dir, reg, WithWatcherEventBus(bus))
	assert.Equal(t, []string{"Sample"}, w.Scan())
	assert.Equal(t, []string{"Sample"}, events)
	assert.Equal(t, 4, reg.Len())

	assert.Empty(t, w.Scan(), "a rescan registers nothing new")
	assert.Equal(t, 4, reg.Len())
}

// TestWatcher_Run tests registration of files created while watching
// TestWatcher_Run 测试监听期间创建的文件被注册
func TestWatcher_Run(t *testing.T) {
	dir := t.TempDir()
	reg := core.NewRegistry()
	w := NewWatcher(dir, reg, WithDebounce(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	var runErr error
	go func() {
		defer wg.Done()
		runErr = w.Run(ctx)
	}()

	// Wait for the initial scan, then add a definition
	// 等待首次扫描后再添加定义
	time.Sleep(50 * time.Millisecond)
	writeFile(t, dir, "sample.yaml", sampleDefinition)

	assert.Eventually(t, func() bool {
		_, err := reg.Lookup("sample")
		return err == nil
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	wg.Wait()
	assert.NoError(t, runErr)
}

// TestWatcher_RunMissingDir tests watching a missing directory
// TestWatcher_RunMissingDir 测试监听不存在的目录
func TestWatcher_RunMissingDir(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing"), core.NewRegistry())
	assert.Error(t, w.Run(context.Background()))
}
