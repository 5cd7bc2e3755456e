package systems

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/rockfall/components"
	"github.com/pthm-cable/rockfall/config"
)

// ErrPlayerCount is returned when a player operation runs without exactly one player.
var ErrPlayerCount = errors.New("expected exactly one player")

// Intent is one tick of abstract player input.
type Intent struct {
	Forward     bool
	Reverse     bool
	RotateLeft  bool
	RotateRight bool
	Fire        bool // Edge: one projectile per tick that carries it
}

// ControlSystem turns input intents into player motion and projectile spawns.
type ControlSystem struct {
	filter     *ecs.Filter3[components.Transform, components.Velocity, components.Player]
	player     *config.PlayerConfig
	projectile *config.ProjectileConfig
}

// NewControlSystem creates a new control system.
// Fired projectiles are queued as specs; their collision shape and
// lifetime are filled in when the spawn is applied.
func NewControlSystem(w *ecs.World, player *config.PlayerConfig, projectile *config.ProjectileConfig) *ControlSystem {
	return &ControlSystem{
		filter:     ecs.NewFilter3[components.Transform, components.Velocity, components.Player](w),
		player:     player,
		projectile: projectile,
	}
}

// Update applies in to the player over dt seconds.
// It fails without touching anything unless exactly one player exists.
func (s *ControlSystem) Update(in Intent, dt float64, cmds *Commands) error {
	var (
		tr    *components.Transform
		vel   *components.Velocity
		e     ecs.Entity
		count int
	)
	query := s.filter.Query()
	for query.Next() {
		count++
		tr, vel, _ = query.Get()
		e = query.Entity()
	}
	if count != 1 {
		return fmt.Errorf("control: %w: found %d", ErrPlayerCount, count)
	}

	forward := tr.Forward()
	if in.Forward {
		vel.Translation = r2.Add(vel.Translation, r2.Scale(s.player.Thrust*dt, forward))
	}
	if in.Reverse {
		vel.Translation = r2.Sub(vel.Translation, r2.Scale(s.player.Thrust*dt, forward))
	}
	if in.RotateLeft {
		vel.Rotation += s.player.TurnRate * dt
	}
	if in.RotateRight {
		vel.Rotation -= s.player.TurnRate * dt
	}

	if in.Fire {
		cmds.SpawnProjectile(ProjectileSpec{
			Transform: *tr,
			Velocity: components.Velocity{
				Translation: r2.Add(vel.Translation, r2.Scale(s.projectile.MuzzleSpeed, forward)),
			},
		})
		cmds.Notify(Notification{Kind: NotifyFired, Class: components.ClassPlayer, Entity: e, Position: tr.Position})
	}
	return nil
}
