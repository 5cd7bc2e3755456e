// Package main provides CMA-ES tuning of asteroid field difficulty: it
// searches for parameters under which the autopilot survives close to a
// target time.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/rockfall/config"
)

var (
	flagConfig     string
	flagMaxTicks   int
	flagSeeds      int
	flagMaxEvals   int
	flagPopulation int
	flagOutputDir  string
	flagTarget     float64
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tune",
	Short: "Tune asteroid field difficulty with CMA-ES",
	Long: `Search asteroid, ship and weapon parameters for a field in which the
autopilot survives close to --target seconds. Every evaluation runs one
headless game per seed; the best config is written to best_config.yaml.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runTune,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Base config YAML file (empty = use defaults)")
	rootCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 36000, "Maximum simulation duration in ticks (cap)")
	rootCmd.Flags().IntVar(&flagSeeds, "seeds", 3, "Number of seeds per evaluation")
	rootCmd.Flags().IntVar(&flagMaxEvals, "max-evals", 200, "Maximum number of evaluations")
	rootCmd.Flags().IntVar(&flagPopulation, "population", 0, "CMA-ES population size (0 = auto)")
	rootCmd.Flags().StringVar(&flagOutputDir, "output", "", "Output directory for results")
	rootCmd.Flags().Float64Var(&flagTarget, "target", 60, "Target survival time in seconds")
	rootCmd.MarkFlagRequired("output")
}

func runTune(cmd *cobra.Command, args []string) error {
	// Per-game logs drown out progress output.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if flagTarget <= 0 {
		return fmt.Errorf("--target must be positive, got %g", flagTarget)
	}
	if err := os.MkdirAll(flagOutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	baseCfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	params := NewParamVector()

	// Generate seeds for evaluation
	evalSeeds := make([]int64, flagSeeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, int32(flagMaxTicks), evalSeeds, baseCfg, flagTarget)

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	logFile, err := os.Create(filepath.Join(flagOutputDir, "tune_log.csv"))
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer logFile.Close()

	evalCount := 0
	headerWritten := false
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			evalCount++

			clamped := params.Clamp(raw)
			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			survival, quality := evaluator.Last()
			rows := []EvalRecord{params.Record(evalCount, fitness, survival, quality, clamped)}
			var werr error
			if headerWritten {
				werr = gocsv.MarshalWithoutHeaders(rows, logFile)
			} else {
				werr = gocsv.Marshal(rows, logFile)
				headerWritten = werr == nil
			}
			if werr != nil {
				slog.Error("failed to write tune log", "error", werr)
			}

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(flagMaxEvals-evalCount) * avgPerEval
			fmt.Printf("Eval %d/%d: survived=%.0fs quality=%.2f fitness=%.4f (best=%.4f) | elapsed: %s, ETA: %s\n",
				evalCount, flagMaxEvals, survival, quality, fitness, bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: flagMaxEvals,
		Concurrent:      0, // Sequential evaluation; seeds already run in parallel
	}

	popSize := flagPopulation
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	fmt.Printf("Starting CMA-ES with %d parameters, population=%d, max_evals=%d, target=%.0fs\n",
		dim, popSize, flagMaxEvals, flagTarget)
	fmt.Printf("Seeds per evaluation: %d, ticks per run: %d\n", flagSeeds, flagMaxTicks)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		return fmt.Errorf("no evaluation completed")
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.4f\n", bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.4f\n", spec.Path, bestParams[i])
	}

	bestCfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("reloading config: %w", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(flagOutputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		return fmt.Errorf("writing best config: %w", err)
	}
	fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	return nil
}
