package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/rockfall/components"
	"github.com/pthm-cable/rockfall/config"
)

// DamageSystem applies collision damage, death and knockback.
// Asteroids and the player are handled by separate passes over the same
// event batch; an event may be read by both.
type DamageSystem struct {
	world *ecs.World
	rng   *rand.Rand
	cfg   *config.AsteroidConfig

	healthMap    *ecs.Map[components.Health]
	velMap       *ecs.Map[components.Velocity]
	transformMap *ecs.Map[components.Transform]
	asteroidMap  *ecs.Map[components.Asteroid]
	playerMap    *ecs.Map[components.Player]
}

// NewDamageSystem creates a new damage system. Fragment parameters are
// drawn from rng in a fixed order, so a seeded rng makes runs repeatable.
func NewDamageSystem(w *ecs.World, rng *rand.Rand, cfg *config.AsteroidConfig) *DamageSystem {
	return &DamageSystem{
		world:        w,
		rng:          rng,
		cfg:          cfg,
		healthMap:    ecs.NewMap[components.Health](w),
		velMap:       ecs.NewMap[components.Velocity](w),
		transformMap: ecs.NewMap[components.Transform](w),
		asteroidMap:  ecs.NewMap[components.Asteroid](w),
		playerMap:    ecs.NewMap[components.Player](w),
	}
}

// UpdateAsteroids damages every asteroid side of every event. Destroyed
// asteroids are queued for despawn together with their fragments.
func (s *DamageSystem) UpdateAsteroids(events []CollisionEvent, cmds *Commands) {
	for i := range events {
		ev := &events[i]
		for side := 0; side < 2; side++ {
			e := ev.Entities[side]
			if !s.exists(e, cmds) || !s.asteroidMap.Has(e) {
				continue
			}

			if s.hurt(e, ev, side, components.ClassAsteroid, cmds) {
				tr := s.transformMap.Get(e)
				health := s.healthMap.Get(e)
				gen := s.asteroidMap.Get(e).Generation
				for _, spec := range Fragment(s.rng, tr.Position, *health, gen, s.cfg) {
					cmds.SpawnAsteroid(spec)
				}
				continue
			}
			s.knockback(e, ev, side)
		}
	}
}

// UpdatePlayer damages the player side of every event.
// Only one player exists, so once the player side of an event has been
// handled the other side is not examined.
func (s *DamageSystem) UpdatePlayer(events []CollisionEvent, cmds *Commands) {
	for i := range events {
		ev := &events[i]
		for side := 0; side < 2; side++ {
			e := ev.Entities[side]
			if !s.exists(e, cmds) || !s.playerMap.Has(e) {
				continue
			}

			if !s.hurt(e, ev, side, components.ClassPlayer, cmds) {
				s.knockback(e, ev, side)
			}
			break
		}
	}
}

// exists reports whether e is still in play this tick. An entity already
// queued for despawn by an earlier event is treated as gone.
func (s *DamageSystem) exists(e ecs.Entity, cmds *Commands) bool {
	return s.world.Alive(e) && !cmds.Despawned(e) &&
		s.healthMap.Has(e) && s.transformMap.Has(e)
}

// hurt applies the opposing side's damage to e and reports whether e died.
func (s *DamageSystem) hurt(e ecs.Entity, ev *CollisionEvent, side int, class components.Class, cmds *Commands) bool {
	dmg := ev.Damage[1-side]
	if dmg == nil {
		return false
	}

	health := s.healthMap.Get(e)
	amount := dmg.Value()
	health.Current -= amount

	pos := s.transformMap.Get(e).Position
	cmds.Notify(Notification{Kind: NotifyHit, Class: class, Entity: e, Position: pos, Amount: amount})

	if health.Current > 0 {
		return false
	}
	cmds.Despawn(e)
	cmds.Notify(Notification{Kind: NotifyDestroyed, Class: class, Entity: e, Position: pos})
	return true
}

// knockback pushes the entity on the given side of ev away from the other.
func (s *DamageSystem) knockback(e ecs.Entity, ev *CollisionEvent, side int) {
	if !s.velMap.Has(e) {
		return
	}
	vel := s.velMap.Get(e)
	vel.Translation = r2.Add(vel.Translation, KnockbackImpulse(ev, side))
}

// KnockbackImpulse returns the velocity change for the given side of ev.
// The first entity is pushed against the separation direction by the
// second's magnitude, the second along it by the first's.
func KnockbackImpulse(ev *CollisionEvent, side int) r2.Vec {
	if side == 0 {
		return r2.Scale(-ev.Knockback[1], ev.Direction)
	}
	return r2.Scale(ev.Knockback[0], ev.Direction)
}
