package game

import (
	"log/slog"

	"github.com/pthm-cable/rockfall/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sampleWorld())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// sampleWorld collects the end-of-window state the collector needs.
func (g *Game) sampleWorld() telemetry.WorldSample {
	var sample telemetry.WorldSample

	query := g.asteroidFilter.Query()
	for query.Next() {
		health, _ := query.Get()
		sample.AsteroidHealth = append(sample.AsteroidHealth, health.Current)
	}
	sample.MaxGeneration = g.lifetimeTracker.MaxGeneration()

	pq := g.playerFilter.Query()
	for pq.Next() {
		health, _ := pq.Get()
		sample.PlayerHealth = health.Current
		sample.PlayerMax = health.Max
	}
	return sample
}

// saveSnapshot creates and saves a snapshot to disk.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	path, err := telemetry.SaveSnapshot(g.createSnapshot(bookmark), g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// createSnapshot builds a snapshot from the current views.
func (g *Game) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snapshot := &telemetry.Snapshot{
		Version:     telemetry.SnapshotVersion,
		RNGSeed:     g.seed,
		ArenaWidth:  g.bounds.Width,
		ArenaHeight: g.bounds.Height,
		Tick:        g.tick,
		Bookmark:    bookmark,
	}

	for _, v := range g.Views() {
		snapshot.Entities = append(snapshot.Entities, telemetry.EntityState{
			ID:        uint32(v.Entity.ID()),
			Class:     v.Class.String(),
			X:         v.Position.X,
			Y:         v.Position.Y,
			VelX:      v.Velocity.Translation.X,
			VelY:      v.Velocity.Translation.Y,
			Heading:   v.Heading,
			Radius:    v.Radius,
			Health:    v.Health,
			MaxHealth: v.Max,
			Lifetime:  g.lifetimeTracker.Get(v.Entity).ToJSON(),
		})
	}
	return snapshot
}
