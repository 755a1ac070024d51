package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/livp123/houserules/internal/config"
	"github.com/livp123/houserules/internal/core"
	builtin "github.com/livp123/houserules/internal/essentials/rulesets"
	"github.com/livp123/houserules/internal/rulesets"
	"github.com/livp123/houserules/internal/utils/logger"
	errs "github.com/livp123/houserules/pkg/errors"
	"go.uber.org/zap"
)

// buildRegistry fills reg from the built-in rulesets and the definitions directory.
// Definitions that fail to load or collide with a known name are logged and skipped.
// buildRegistry 由内置规则集和定义目录填充注册表；加载失败或重名的定义会被记录并跳过。
func buildRegistry(ctx context.Context, reg *core.Registry, rc *config.RulesetsConfig) (*core.Registry, error) {
	log := logger.Get(ctx)

	if rc.Builtins {
		if err := registerAll(log, reg, builtin.Builtins()); err != nil {
			return nil, fmt.Errorf("register built-in rulesets: %w", err)
		}
	}

	dir := rc.Dir
	if dir == "" {
		return reg, nil
	}
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		log.Debugf("[CLI] Rulesets directory %s not found, skipping", dir)
		return reg, nil
	}

	loaded, err := rulesets.LoadDir(dir)
	if err != nil {
		log.Warnf("[CLI] Some ruleset definitions failed to load: %v", err)
	}
	if err := registerAll(log, reg, loaded); err != nil {
		return nil, err
	}
	return reg, nil
}

func registerAll(log *zap.SugaredLogger, reg *core.Registry, list []*core.Ruleset) error {
	for _, rs := range list {
		if err := reg.Register(rs); err != nil {
			if errors.Is(err, errs.ErrDuplicateName) {
				log.Debugf("[CLI] Ruleset %s already registered, skipping", rs.Name())
				continue
			}
			return err
		}
	}
	return nil
}

// writerNotifier prints the welcome text to a writer.
// writerNotifier 将欢迎文本输出到 writer。
type writerNotifier struct {
	w io.Writer
}

func (n writerNotifier) Notify(message string) {
	fmt.Fprintf(n.w, "%s\n", message)
}

// printReport writes a one-line summary of a lifecycle pass followed by its failures.
// printReport 输出生命周期遍历的单行摘要及其失败信息。
func printReport(w io.Writer, r *core.CycleReport) {
	if r.Skipped {
		fmt.Fprintf(w, "[%s] skipped\n", r.Phase)
		return
	}
	fmt.Fprintf(w, "[%s] %s: %d rules, %d failed\n", r.Phase, r.Ruleset, len(r.Invoked), len(r.Failures))
	for _, f := range r.Failures {
		fmt.Fprintf(w, "  ! %v\n", f)
	}
}
