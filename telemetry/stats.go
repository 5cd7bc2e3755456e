package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// State at window end
	AsteroidCount int     `csv:"asteroids"`
	PlayerHealth  float64 `csv:"player_health"`
	PlayerMax     float64 `csv:"player_max"`
	MaxGeneration int     `csv:"max_generation"`

	// Events during window
	ShotsFired         int     `csv:"shots_fired"`
	ShotsHit           int     `csv:"shots_hit"`
	ProjectilesExpired int     `csv:"projectiles_expired"`
	Collisions         int     `csv:"collisions"`
	Resolved           int     `csv:"resolved"`
	AsteroidHits       int     `csv:"asteroid_hits"`
	AsteroidsDestroyed int     `csv:"asteroids_destroyed"`
	FragmentsSpawned   int     `csv:"fragments_spawned"`
	PlayerHits         int     `csv:"player_hits"`
	PlayerDamageTaken  float64 `csv:"player_damage_taken"`
	Accuracy           float64 `csv:"accuracy"`

	// Asteroid health distribution (sampled at window end)
	AsteroidHealthMean float64 `csv:"asteroid_health_mean"`
	AsteroidHealthP10  float64 `csv:"asteroid_health_p10"`
	AsteroidHealthP50  float64 `csv:"asteroid_health_p50"`
	AsteroidHealthP90  float64 `csv:"asteroid_health_p90"`

	// Mean lifespan of asteroids removed during the window
	MeanAsteroidSurvivalSec float64 `csv:"mean_asteroid_survival"`
}

// Percentile returns the p-th quantile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	switch {
	case p <= 0:
		return sorted[0]
	case p >= 1:
		return sorted[len(sorted)-1]
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeHealthStats calculates mean and percentiles from health values.
func ComputeHealthStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("asteroids", s.AsteroidCount),
		slog.Float64("player_health", s.PlayerHealth),
		slog.Int("max_generation", s.MaxGeneration),
		slog.Int("shots_fired", s.ShotsFired),
		slog.Int("shots_hit", s.ShotsHit),
		slog.Int("projectiles_expired", s.ProjectilesExpired),
		slog.Int("collisions", s.Collisions),
		slog.Int("resolved", s.Resolved),
		slog.Int("asteroid_hits", s.AsteroidHits),
		slog.Int("asteroids_destroyed", s.AsteroidsDestroyed),
		slog.Int("fragments_spawned", s.FragmentsSpawned),
		slog.Int("player_hits", s.PlayerHits),
		slog.Float64("player_damage_taken", s.PlayerDamageTaken),
		slog.Float64("accuracy", s.Accuracy),
		slog.Float64("asteroid_health_mean", s.AsteroidHealthMean),
		slog.Float64("asteroid_health_p10", s.AsteroidHealthP10),
		slog.Float64("asteroid_health_p50", s.AsteroidHealthP50),
		slog.Float64("asteroid_health_p90", s.AsteroidHealthP90),
		slog.Float64("mean_asteroid_survival", s.MeanAsteroidSurvivalSec),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"asteroids", s.AsteroidCount,
		"player_health", s.PlayerHealth,
		"max_generation", s.MaxGeneration,
		"shots_fired", s.ShotsFired,
		"shots_hit", s.ShotsHit,
		"accuracy", s.Accuracy,
		"collisions", s.Collisions,
		"asteroids_destroyed", s.AsteroidsDestroyed,
		"fragments_spawned", s.FragmentsSpawned,
		"player_damage_taken", s.PlayerDamageTaken,
		"asteroid_health_p50", s.AsteroidHealthP50,
		"mean_asteroid_survival", s.MeanAsteroidSurvivalSec,
	)
}
