package game

import (
	"fmt"
	"time"

	"github.com/pthm-cable/rockfall/systems"
)

// Step advances the simulation by one tick of dt using the given input.
// Systems run in a fixed order; spawns and despawns requested during the
// tick are applied after every system has run, so fragments created now
// are first seen by the next tick's collision pass.
func (g *Game) Step(dt time.Duration, in systems.Intent) error {
	if g.over {
		return ErrGameOver
	}
	sec := dt.Seconds()

	g.perfCollector.StartTick()
	defer g.perfCollector.EndTick()

	g.cmds.Reset()

	g.perfCollector.StartPhase(systems.PhaseControl)
	if err := g.control.Update(in, sec, g.cmds); err != nil {
		return fmt.Errorf("tick %d: %w", g.tick, err)
	}

	g.perfCollector.StartPhase(systems.PhaseMovement)
	g.movement.Update(sec)

	g.perfCollector.StartPhase(systems.PhaseDrag)
	g.drag.Update(sec)

	g.perfCollector.StartPhase(systems.PhaseWrap)
	g.wrap.Update()

	g.perfCollector.StartPhase(systems.PhaseCollision)
	g.events = g.collision.Update()
	g.recordCollisions()

	g.perfCollector.StartPhase(systems.PhaseAsteroidHurt)
	g.damage.UpdateAsteroids(g.events, g.cmds)

	g.perfCollector.StartPhase(systems.PhasePlayerHurt)
	g.damage.UpdatePlayer(g.events, g.cmds)

	g.perfCollector.StartPhase(systems.PhaseLifetime)
	g.lifetime.Tick(dt)

	g.perfCollector.StartPhase(systems.PhaseCull)
	g.lifetime.Cull(g.events, g.cmds)

	g.perfCollector.StartPhase(systems.PhaseCommands)
	g.applyCommands()

	g.tick++

	g.perfCollector.StartPhase(systems.PhaseTelemetry)
	g.notes = g.cmds.Notifications()
	g.recordNotifications()
	g.flushTelemetry()

	if g.over {
		g.logGameOver()
	}
	return nil
}
