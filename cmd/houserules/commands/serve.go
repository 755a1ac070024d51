package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/livp123/houserules/internal/config"
	"github.com/livp123/houserules/internal/core"
	"github.com/livp123/houserules/internal/host"
	"github.com/livp123/houserules/internal/rulesets"
	"github.com/livp123/houserules/internal/utils/logger"
	"github.com/livp123/houserules/pkg/sdk"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the engine until interrupted",
	Long: `Run the engine with the configured ruleset active on a freshly created game, watch the
rulesets directory and expose Prometheus metrics and engine status until SIGINT or SIGTERM is received.
在新创建的游戏上运行引擎并激活配置的规则集，监视规则集目录并暴露 Prometheus 指标和引擎状态，直到收到 SIGINT 或 SIGTERM。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, currentConfig())
	},
}

// startEngine creates the host game and the engine. When a ruleset is configured it is
// selected, activated and told about the game through a full pre/post game created cycle.
// startEngine 创建宿主游戏和引擎；若配置了规则集，则选择并激活它，并完整分发游戏创建前后信号。
func startEngine(ctx context.Context, log *zap.SugaredLogger, reg *core.Registry, ec *config.EngineConfig, bus sdk.EventBus) (*core.Engine, *host.Game, error) {
	game := host.NewGame(host.WithSeed(ec.Seed))
	engine := core.NewEngine(reg,
		&sdk.GameContext{Context: ctx, Host: game, Patcher: game.Patcher(), Logger: log},
		core.WithLogger(log),
		core.WithEventBus(bus),
		core.WithMultiplayer(ec.Multiplayer),
	)
	if ec.Ruleset == "" {
		log.Infof("[Serve] No ruleset configured, engine stays idle")
		return engine, game, nil
	}

	if err := engine.Select(ec.Ruleset); err != nil {
		return nil, nil, err
	}
	for _, pass := range []func() *core.CycleReport{engine.Activate, engine.PreGameCreated, engine.PostGameCreated} {
		if r := pass(); r.Failed() {
			log.Warnf("[Serve] %s pass of %s had %d failed rules", r.Phase, r.Ruleset, len(r.Failures))
		}
	}
	return engine, game, nil
}

func serve(ctx context.Context, cm config.Configurable) error {
	log := logger.Get(ctx)
	rc := cm.GetRulesetsConfig()
	mc := cm.GetMetricsConfig()

	reg, err := buildRegistry(ctx, core.DefaultRegistry(), rc)
	if err != nil {
		return err
	}

	bus := sdk.NewEventBus()
	bus.Subscribe(sdk.EventTypeRuleFailed, func(ev sdk.Event) {
		log.Warnf("[Serve] Rule failure: %v", ev.Payload)
	})
	bus.Subscribe(sdk.EventTypeRulesetRegistered, func(ev sdk.Event) {
		log.Infof("[Serve] Ruleset %v is now available", ev.Payload)
	})

	engine, _, err := startEngine(ctx, log, reg, cm.GetEngineConfig(), bus)
	if err != nil {
		return err
	}
	defer engine.Deactivate()

	g, gctx := errgroup.WithContext(ctx)

	if rc.Watch {
		w := rulesets.NewWatcher(rc.Dir, reg,
			rulesets.WithWatcherLogger(log),
			rulesets.WithWatcherEventBus(bus),
		)
		g.Go(func() error {
			return w.Run(gctx)
		})
	}

	if mc.Enabled {
		srv := &http.Server{Addr: mc.Addr, Handler: newRouter(reg, engine), ReadHeaderTimeout: 5 * time.Second}

		g.Go(func() error {
			log.Infof("[Serve] Metrics and status listening on %s", mc.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	log.Infof("[Serve] Engine running (state: %s)", engine.State())
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})
	err = g.Wait()
	log.Infof("[Serve] Shutting down")
	return err
}
