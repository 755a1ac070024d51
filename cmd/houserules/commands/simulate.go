package commands

import (
	"fmt"
	"io"

	"github.com/livp123/houserules/internal/core"
	"github.com/livp123/houserules/internal/host"
	"github.com/livp123/houserules/internal/utils/logger"
	"github.com/livp123/houserules/pkg/sdk"
	"github.com/spf13/cobra"
)

var (
	simulateSeed        int64
	simulateMultiplayer bool
)

// sampleAttack is one scripted attack of the simulation.
type sampleAttack struct {
	source  host.PieceID
	target  host.PieceID
	ability host.AbilityKey
	outcome host.Outcome
}

var sampleAttacks = []sampleAttack{
	{host.HeroSorcerer, host.GoblinFighter, "Zap", host.OutcomeHit},
	{host.HeroRogue, host.GoblinFighter, "Arrow", host.OutcomeCrit},
	{host.HeroHunter, host.ElvenArcher, "Net", host.OutcomeHit},
	{host.HeroGuardian, host.RatKing, "Strike", host.OutcomeCrit},
	{host.GoblinFighter, host.HeroBarbarian, "AcidSpit", host.OutcomeHit},
	{host.ElvenArcher, host.HeroGuardian, "Fireball", host.OutcomeHit},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <ruleset>",
	Short: "Run a ruleset through a full lifecycle against the simulated host",
	Long: `Select and activate a ruleset, create a game, resolve a few scripted attacks
and deactivate the ruleset again, printing every lifecycle pass.
选择并激活规则集，创建游戏，结算若干预设攻击后停用规则集，并输出每次生命周期遍历的结果。`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cm := currentConfig()
		ec := cm.GetEngineConfig()
		if !cmd.Flags().Changed("seed") {
			simulateSeed = ec.Seed
		}
		if !cmd.Flags().Changed("multiplayer") {
			simulateMultiplayer = ec.Multiplayer
		}

		reg, err := buildRegistry(cmd.Context(), core.NewRegistry(), cm.GetRulesetsConfig())
		if err != nil {
			return err
		}
		return runSimulation(cmd, reg, args[0])
	},
}

func init() {
	simulateCmd.Flags().Int64Var(&simulateSeed, "seed", 1, "Seed for the simulated host's rolls")
	simulateCmd.Flags().BoolVar(&simulateMultiplayer, "multiplayer", false, "Simulate a multiplayer session")
}

func runSimulation(cmd *cobra.Command, reg *core.Registry, name string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	log := logger.Get(ctx)

	game := host.NewGame(host.WithSeed(simulateSeed))
	bus := sdk.NewEventBus()
	unsubscribe := bus.Subscribe(sdk.EventTypeSyncRequired, func(ev sdk.Event) {
		fmt.Fprintf(out, "sync required: %v\n", ev.Payload)
	})
	defer unsubscribe()

	engine := core.NewEngine(reg,
		&sdk.GameContext{Context: ctx, Host: game, Patcher: game.Patcher(), Logger: log},
		core.WithLogger(log),
		core.WithEventBus(bus),
		core.WithNotifier(writerNotifier{w: out}),
		core.WithMultiplayer(simulateMultiplayer),
	)

	if err := engine.Select(name); err != nil {
		return err
	}
	printReport(out, engine.Activate())
	printReport(out, engine.PreGameCreated())
	printReport(out, engine.PostGameCreated())

	if err := playSampleAttacks(out, game); err != nil {
		return err
	}

	printReport(out, engine.Deactivate())
	return nil
}

func playSampleAttacks(out io.Writer, game *host.Game) error {
	for _, a := range sampleAttacks {
		source, err := game.Spawn(a.source)
		if err != nil {
			return err
		}
		target, err := game.Spawn(a.target)
		if err != nil {
			return err
		}
		dealt, err := game.Attack(source, target, a.ability, a.outcome)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s %s (%s): %d damage, health %d/%d, action points %d\n",
			a.source, a.ability, a.target, a.outcome, dealt, target.Health, target.MaxHealth, source.ActionPoints)
	}
	return nil
}
