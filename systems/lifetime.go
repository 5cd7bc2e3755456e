package systems

import (
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rockfall/components"
)

// LifetimeSystem ages timed entities and culls projectiles.
type LifetimeSystem struct {
	timers        *ecs.Filter1[components.Lifetime]
	projectiles   *ecs.Filter3[components.Lifetime, components.Projectile, components.Transform]
	projectileMap *ecs.Map[components.Projectile]
	transformMap  *ecs.Map[components.Transform]
}

// NewLifetimeSystem creates a new lifetime system.
func NewLifetimeSystem(w *ecs.World) *LifetimeSystem {
	return &LifetimeSystem{
		timers:        ecs.NewFilter1[components.Lifetime](w),
		projectiles:   ecs.NewFilter3[components.Lifetime, components.Projectile, components.Transform](w),
		projectileMap: ecs.NewMap[components.Projectile](w),
		transformMap:  ecs.NewMap[components.Transform](w),
	}
}

// Tick advances every Lifetime by dt.
func (s *LifetimeSystem) Tick(dt time.Duration) {
	query := s.timers.Query()
	for query.Next() {
		lt := query.Get()
		lt.Tick(dt)
	}
}

// Cull queues expired projectiles for despawn, then any projectile that
// took part in a collision this tick whatever its timer says.
func (s *LifetimeSystem) Cull(events []CollisionEvent, cmds *Commands) {
	query := s.projectiles.Query()
	for query.Next() {
		lt, _, tr := query.Get()
		if !lt.Finished() {
			continue
		}
		e := query.Entity()
		if cmds.Despawned(e) {
			continue
		}
		cmds.Despawn(e)
		cmds.Notify(Notification{Kind: NotifyExpired, Class: components.ClassProjectile, Entity: e, Position: tr.Position})
	}

	for i := range events {
		for _, e := range events[i].Entities {
			if s.projectileMap.Has(e) {
				cmds.Despawn(e)
			}
		}
	}
}
