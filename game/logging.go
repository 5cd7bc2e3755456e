package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/pthm-cable/rockfall/components"
	"github.com/pthm-cable/rockfall/systems"
)

// logCollision logs one collision event at debug level.
func (g *Game) logCollision(ev *systems.CollisionEvent) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	slog.Debug("collision",
		"tick", g.tick,
		"a", g.classOf(ev.Entities[0]).String(),
		"b", g.classOf(ev.Entities[1]).String(),
		"penetration", ev.Penetration,
		"resolved", ev.Resolved,
	)
}

// logGameOver logs the end of the run.
func (g *Game) logGameOver() {
	slog.Info("player destroyed",
		"tick", g.tick,
		"asteroids", g.AsteroidCount(),
	)
}

// LogWorldState logs a one-line summary of the world.
func (g *Game) LogWorldState() {
	counts := make(map[string]int)
	for _, v := range g.Views() {
		counts[v.Class.String()]++
	}

	attrs := []any{"tick", g.tick}
	for _, class := range components.ClassNames() {
		if n := counts[class]; n > 0 {
			attrs = append(attrs, class, n)
		}
	}
	if p, ok := g.Player(); ok {
		attrs = append(attrs, "player_health", p.Health)
	}
	slog.Info("world", attrs...)
}

// LogPerf logs average time per phase under its display name.
func (g *Game) LogPerf() {
	stats := g.perfCollector.Stats()
	attrs := []any{
		"tick", g.tick,
		"avg_tick", stats.AvgTickDuration.Round(time.Microsecond),
	}
	for _, id := range g.registry.IDs() {
		if avg, ok := stats.PhaseAvg[id]; ok {
			attrs = append(attrs, g.registry.GetName(id), avg.Round(time.Microsecond))
		}
	}
	slog.Info("perf", attrs...)
}
