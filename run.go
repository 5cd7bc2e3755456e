package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/rockfall/config"
	"github.com/pthm-cable/rockfall/game"
)

var (
	flagSeed        int64
	flagMaxTicks    int
	flagOutputDir   string
	flagSnapshotDir string
	flagLogStats    bool
	flagLogEvery    int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a headless simulation",
	Long: `Run the simulation without graphics, with the built-in autopilot
flying the ship. The run ends when the ship is destroyed or --max-ticks
is reached.

Telemetry windows can be logged (--log-stats) or written as CSV
(--output-dir). Bookmarked moments are saved as JSON snapshots when
--snapshot-dir is set.`,
	Args: cobra.NoArgs,
	RunE: runSimulation,
}

func init() {
	runCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = time-based)")
	runCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 0, "Stop after N ticks (0 = until the ship is destroyed)")
	runCmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "Output directory for CSV logs and config snapshot")
	runCmd.Flags().StringVar(&flagSnapshotDir, "snapshot-dir", "", "Directory for snapshot files")
	runCmd.Flags().BoolVar(&flagLogStats, "log-stats", false, "Log stats windows and bookmarks")
	runCmd.Flags().IntVar(&flagLogEvery, "log-every", 0, "Log world state and perf every N ticks (0 = never)")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	if err := config.Init(flagConfig); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g, err := game.New(cfg, game.Options{
		Seed:        seed,
		OutputDir:   flagOutputDir,
		SnapshotDir: flagSnapshotDir,
		LogStats:    flagLogStats,
	})
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	defer func() {
		if err := g.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()

	slog.Info("starting headless simulation",
		"seed", seed,
		"max_ticks", flagMaxTicks,
		"dt", cfg.Derived.DT,
	)

	pilot := game.NewAutopilot()
	start := time.Now()
	for flagMaxTicks <= 0 || int(g.Tick()) < flagMaxTicks {
		if err := g.Step(cfg.Derived.DT, pilot.Next(g)); err != nil {
			if errors.Is(err, game.ErrGameOver) {
				break
			}
			return err
		}
		if flagLogEvery > 0 && int(g.Tick())%flagLogEvery == 0 {
			g.LogWorldState()
			g.LogPerf()
		}
		if g.Over() {
			break
		}
	}

	slog.Info("simulation finished",
		"tick", g.Tick(),
		"sim_time", time.Duration(g.Tick())*cfg.Derived.DT,
		"wall_time", time.Since(start).Round(time.Millisecond),
		"player_destroyed", g.Over(),
		"asteroids", g.AsteroidCount(),
	)
	return nil
}
