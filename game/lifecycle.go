package game

import (
	"github.com/pthm-cable/rockfall/components"
	"github.com/pthm-cable/rockfall/systems"
)

// applyCommands applies the tick's queued structural changes: despawns
// first, then asteroid and projectile spawns.
func (g *Game) applyCommands() {
	for _, e := range g.cmds.Despawns() {
		if !g.world.Alive(e) {
			continue
		}
		if g.playerMap.Has(e) {
			g.over = true
		}
		if stats := g.lifetimeTracker.Remove(e, g.tick, g.cfg.Physics.DT); stats != nil {
			g.collector.RecordSurvival(stats.SurvivalTimeSec)
		}
		g.world.RemoveEntity(e)
	}

	fragments := g.cmds.Asteroids()
	for _, spec := range fragments {
		g.spawnAsteroid(spec)
	}
	if len(fragments) > 0 {
		g.collector.RecordFragments(len(fragments))
	}

	for _, spec := range g.cmds.Projectiles() {
		g.spawnProjectile(spec)
	}
}

// recordCollisions feeds this tick's events to the collector. It runs
// before commands are applied so projectile sides can still be looked up.
func (g *Game) recordCollisions() {
	for i := range g.events {
		ev := &g.events[i]
		projectile := g.projectileMap.Has(ev.Entities[0]) || g.projectileMap.Has(ev.Entities[1])
		g.collector.RecordCollision(ev.Resolved, projectile)
		g.logCollision(ev)
	}
}

// recordNotifications feeds this tick's notifications to telemetry.
func (g *Game) recordNotifications() {
	for _, n := range g.notes {
		switch n.Kind {
		case systems.NotifyFired:
			g.collector.RecordShot()
		case systems.NotifyExpired:
			g.collector.RecordExpiry()
		case systems.NotifyHit:
			g.collector.RecordHit(n.Class, n.Amount)
			if n.Class == components.ClassAsteroid {
				g.lifetimeTracker.RecordHit(n.Entity, n.Amount)
			}
		case systems.NotifyDestroyed:
			g.collector.RecordDestroyed(n.Class)
		}
	}
}
