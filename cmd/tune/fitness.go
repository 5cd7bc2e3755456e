package main

import (
	"errors"
	"math"
	"sync"

	"github.com/pthm-cable/rockfall/config"
	"github.com/pthm-cable/rockfall/game"
	"github.com/pthm-cable/rockfall/telemetry"
)

// FitnessEvaluator runs headless simulations and scores how close the
// autopilot's survival time lands to a target.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config
	targetSec  float64

	mu           sync.Mutex
	lastSurvival float64 // mean survival seconds from the most recent Evaluate call
	lastQuality  float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, targetSec float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
		targetSec:  targetSec,
	}
}

// Last returns mean survival seconds and quality from the most recent evaluation.
func (fe *FitnessEvaluator) Last() (survivalSec, quality float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSurvival, fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int32                   // ticks until the ship was destroyed, or maxTicks
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
	err           error
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Seeds run in parallel; each owns its own game and config copy.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalSurvival, totalQuality float64
	for _, r := range results {
		if r.err != nil {
			return math.Inf(1)
		}
		survival := float64(r.survivalTicks) * fe.baseConfig.Physics.DT
		quality := computeQuality(r.windowStats)
		totalFitness += computeFitness(survival, fe.targetSec, quality)
		totalSurvival += survival
		totalQuality += quality
	}

	n := float64(len(fe.seeds))
	fe.mu.Lock()
	fe.lastSurvival = totalSurvival / n
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes a single headless run until the ship is destroyed
// or maxTicks is reached.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}
	g, err := game.New(cfg, game.Options{
		Seed: seed,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		result.err = err
		return result
	}
	defer g.Close()

	pilot := game.NewAutopilot()
	for g.Tick() < fe.maxTicks && !g.Over() {
		if err := g.Step(cfg.Derived.DT, pilot.Next(g)); err != nil {
			if !errors.Is(err, game.ErrGameOver) {
				result.err = err
			}
			break
		}
	}
	result.survivalTicks = g.Tick()
	return result
}

// copyConfig returns a copy of the base config. Config holds only values,
// so a struct copy is deep enough.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: relErr² - 0.2 × quality, where relErr is the relative miss
// against the target survival time. Quality breaks ties between configs
// that land equally close.
func computeFitness(survivalSec, targetSec, quality float64) float64 {
	relErr := (survivalSec - targetSec) / targetSec
	return relErr*relErr - 0.2*quality
}

// Quality component weights.
const (
	qualityWeightAccuracy     = 0.5
	qualityWeightActivity     = 0.3
	qualityWeightFragments    = 0.2
	qualityTargetAccuracy     = 0.35
	qualityAccuracyWidth      = 0.2
	qualityFragmentsPerWindow = 4.0
)

// computeQuality scores engagement ∈ [0, 1] from window stats: accuracy
// near a target, the share of windows where something was destroyed, and
// fragment churn.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) == 0 {
		return 0
	}

	var accSum, fragSum float64
	var accCount, active int
	for _, w := range windows {
		if w.ShotsFired > 0 {
			d := (w.Accuracy - qualityTargetAccuracy) / qualityAccuracyWidth
			accSum += math.Exp(-d * d)
			accCount++
		}
		if w.AsteroidsDestroyed > 0 {
			active++
		}
		fragSum += float64(w.FragmentsSpawned)
	}

	accuracyScore := 0.0
	if accCount > 0 {
		accuracyScore = accSum / float64(accCount)
	}
	n := float64(len(windows))
	activityScore := float64(active) / n
	fragmentScore := 1 - math.Exp(-fragSum/n/qualityFragmentsPerWindow)

	quality := qualityWeightAccuracy*accuracyScore +
		qualityWeightActivity*activityScore +
		qualityWeightFragments*fragmentScore
	return clamp01(quality)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
