package rulesets

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/livp123/houserules/internal/core"
	"github.com/livp123/houserules/internal/utils/fileutil"
	errs "github.com/livp123/houserules/pkg/errors"
	"github.com/livp123/houserules/pkg/sdk"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period before a directory rescan.
const DefaultDebounce = 200 * time.Millisecond

// Watcher registers rulesets that appear in a directory.
// Registration is additive: changed or removed files never unregister a ruleset.
// Watcher 注册目录中新出现的规则集；注册只追加，修改或删除文件不会注销规则集。
type Watcher struct {
	dir      string
	registry *core.Registry
	logger   *zap.SugaredLogger
	bus      sdk.EventBus
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the watcher logger.
func WithWatcherLogger(l *zap.SugaredLogger) WatcherOption {
	return func(w *Watcher) { w.logger = l }
}

// WithWatcherEventBus publishes a ruleset_registered event for every new ruleset.
func WithWatcherEventBus(bus sdk.EventBus) WatcherOption {
	return func(w *Watcher) { w.bus = bus }
}

// WithDebounce sets the quiet period before a rescan.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// NewWatcher creates a watcher for dir that registers into registry.
func NewWatcher(dir string, registry *core.Registry, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		dir:      dir,
		registry: registry,
		logger:   zap.NewNop().Sugar(),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Scan loads the directory once and registers every ruleset not yet known.
// It returns the names registered by this scan.
// Scan 加载目录一次并注册所有未知的规则集，返回本次注册的名称。
func (w *Watcher) Scan() []string {
	loaded, err := LoadDir(w.dir)
	if err != nil {
		w.logger.Warnw("[Rulesets] Some definitions failed to load", "dir", w.dir, "error", err)
	}

	var added []string
	for _, rs := range loaded {
		if _, err := w.registry.Lookup(rs.Name()); err == nil {
			continue
		}
		if err := w.registry.Register(rs); err != nil {
			if errors.Is(err, errs.ErrDuplicateName) {
				w.logger.Warnw("[Rulesets] Duplicate ruleset skipped", "ruleset", rs.Name())
				continue
			}
			w.logger.Errorw("[Rulesets] Register failed", "ruleset", rs.Name(), "error", err)
			continue
		}
		w.logger.Infow("[Rulesets] Registered ruleset", "ruleset", rs.Name(), "rules", rs.Len())
		if w.bus != nil {
			w.bus.Publish(sdk.NewEvent(sdk.EventTypeRulesetRegistered, "watcher", rs.Name()))
		}
		added = append(added, rs.Name())
	}
	return added
}

// Run scans the directory, then rescans after every change until ctx is cancelled.
// Run 先扫描目录，然后在每次变更后重新扫描，直到 ctx 被取消。
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.logger.Infow("[Rulesets] Watching directory", "dir", w.dir, "debounce", w.debounce)
	w.Scan()

	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !fileutil.HasExt(ev.Name, Extensions...) {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debugw("[Rulesets] File event", "path", ev.Name, "op", ev.Op.String())
			w.trigger()
		case err, ok := <-fsw.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Warnw("[Rulesets] Watcher error", "error", err)
		}
	}
}

func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { w.Scan() })
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
