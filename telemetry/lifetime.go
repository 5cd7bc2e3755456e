package telemetry

import "github.com/mlange-42/ark/ecs"

// LifetimeStats tracks per-asteroid statistics over its lifetime.
type LifetimeStats struct {
	BirthTick       int32
	SurvivalTimeSec float64
	Generation      int
	Size            float64

	Hits        int     // Times damaged
	DamageTaken float64 // Sum of damage applied
}

// LifetimeTracker manages per-entity lifetime statistics.
type LifetimeTracker struct {
	stats map[ecs.Entity]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[ecs.Entity]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new entity.
func (lt *LifetimeTracker) Register(e ecs.Entity, birthTick int32, generation int, size float64) {
	lt.stats[e] = &LifetimeStats{
		BirthTick:  birthTick,
		Generation: generation,
		Size:       size,
	}
}

// Get returns the lifetime stats for an entity, or nil if not found.
func (lt *LifetimeTracker) Get(e ecs.Entity) *LifetimeStats {
	return lt.stats[e]
}

// Remove removes an entity's stats and returns them with the survival time
// filled in, or nil if the entity was never registered.
func (lt *LifetimeTracker) Remove(e ecs.Entity, currentTick int32, dt float64) *LifetimeStats {
	stats := lt.stats[e]
	if stats == nil {
		return nil
	}
	delete(lt.stats, e)
	stats.SurvivalTimeSec = float64(currentTick-stats.BirthTick) * dt
	return stats
}

// RecordHit adds one application of damage.
func (lt *LifetimeTracker) RecordHit(e ecs.Entity, amount float64) {
	if s := lt.stats[e]; s != nil {
		s.Hits++
		s.DamageTaken += amount
	}
}

// Count returns the number of tracked entities.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// MaxGeneration returns the deepest fragment generation still tracked.
func (lt *LifetimeTracker) MaxGeneration() int {
	maxGen := 0
	for _, s := range lt.stats {
		if s.Generation > maxGen {
			maxGen = s.Generation
		}
	}
	return maxGen
}
