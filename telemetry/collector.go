// Package telemetry collects windowed simulation statistics, detects
// notable moments and writes them out as CSV and JSON.
package telemetry

import "github.com/pthm-cable/rockfall/components"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	shotsFired         int
	shotsHit           int
	projectilesExpired int
	collisions         int
	resolved           int
	asteroidHits       int
	asteroidsDestroyed int
	fragmentsSpawned   int
	playerHits         int
	playerDamageTaken  float64

	survivalSum   float64
	survivalCount int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordShot records a fired projectile.
func (c *Collector) RecordShot() {
	c.shotsFired++
}

// RecordExpiry records a projectile that timed out without hitting anything.
func (c *Collector) RecordExpiry() {
	c.projectilesExpired++
}

// RecordCollision records one detected pair.
func (c *Collector) RecordCollision(resolved, projectile bool) {
	c.collisions++
	if resolved {
		c.resolved++
	}
	if projectile {
		c.shotsHit++
	}
}

// RecordHit records damage applied to an entity of the given class.
func (c *Collector) RecordHit(class components.Class, amount float64) {
	switch class {
	case components.ClassAsteroid:
		c.asteroidHits++
	case components.ClassPlayer:
		c.playerHits++
		c.playerDamageTaken += amount
	}
}

// RecordDestroyed records an asteroid destroyed by damage.
func (c *Collector) RecordDestroyed(class components.Class) {
	if class == components.ClassAsteroid {
		c.asteroidsDestroyed++
	}
}

// RecordFragments records fragments spawned from destroyed asteroids.
func (c *Collector) RecordFragments(n int) {
	c.fragmentsSpawned += n
}

// RecordSurvival records how long a removed asteroid existed.
func (c *Collector) RecordSurvival(sec float64) {
	c.survivalSum += sec
	c.survivalCount++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// WorldSample holds state sampled at the end of a window.
type WorldSample struct {
	AsteroidHealth []float64 // Current health of every asteroid
	MaxGeneration  int
	PlayerHealth   float64
	PlayerMax      float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, sample WorldSample) WindowStats {
	var accuracy float64
	if c.shotsFired > 0 {
		accuracy = float64(c.shotsHit) / float64(c.shotsFired)
	}
	var survival float64
	if c.survivalCount > 0 {
		survival = c.survivalSum / float64(c.survivalCount)
	}

	mean, p10, p50, p90 := ComputeHealthStats(sample.AsteroidHealth)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		AsteroidCount: len(sample.AsteroidHealth),
		PlayerHealth:  sample.PlayerHealth,
		PlayerMax:     sample.PlayerMax,
		MaxGeneration: sample.MaxGeneration,

		ShotsFired:         c.shotsFired,
		ShotsHit:           c.shotsHit,
		ProjectilesExpired: c.projectilesExpired,
		Collisions:         c.collisions,
		Resolved:           c.resolved,
		AsteroidHits:       c.asteroidHits,
		AsteroidsDestroyed: c.asteroidsDestroyed,
		FragmentsSpawned:   c.fragmentsSpawned,
		PlayerHits:         c.playerHits,
		PlayerDamageTaken:  c.playerDamageTaken,
		Accuracy:           accuracy,

		AsteroidHealthMean: mean,
		AsteroidHealthP10:  p10,
		AsteroidHealthP50:  p50,
		AsteroidHealthP90:  p90,

		MeanAsteroidSurvivalSec: survival,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.shotsFired = 0
	c.shotsHit = 0
	c.projectilesExpired = 0
	c.collisions = 0
	c.resolved = 0
	c.asteroidHits = 0
	c.asteroidsDestroyed = 0
	c.fragmentsSpawned = 0
	c.playerHits = 0
	c.playerDamageTaken = 0
	c.survivalSum = 0
	c.survivalCount = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
