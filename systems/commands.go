package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/rockfall/components"
)

// AsteroidSpec describes an asteroid waiting to be spawned.
// Radius and Health are Size/2, Damage is Size/3.
type AsteroidSpec struct {
	Position   r2.Vec
	Velocity   components.Velocity
	Size       float64
	Knockback  float64
	Generation int
}

// ProjectileSpec describes a projectile waiting to be spawned.
type ProjectileSpec struct {
	Transform components.Transform
	Velocity  components.Velocity
}

// NotificationKind identifies an abstract cue for presentation or audio layers.
type NotificationKind uint8

const (
	NotifyHit       NotificationKind = iota // Damage applied
	NotifyDestroyed                         // Health reached zero
	NotifyFired                             // Projectile requested
	NotifyExpired                           // Lifetime ran out
)

// String returns the notification name.
func (k NotificationKind) String() string {
	switch k {
	case NotifyHit:
		return "hit"
	case NotifyDestroyed:
		return "destroyed"
	case NotifyFired:
		return "fired"
	case NotifyExpired:
		return "expired"
	}
	return "unknown"
}

// Notification is emitted by systems for layers outside the simulation.
type Notification struct {
	Kind     NotificationKind
	Class    components.Class
	Entity   ecs.Entity
	Position r2.Vec
	Amount   float64 // Damage dealt for hits
}

// Commands collects structural changes requested during a tick.
// Nothing here touches the world; the owner applies the buffer after
// every system has run, so systems never see a half-applied change.
type Commands struct {
	despawn     []ecs.Entity
	pending     map[ecs.Entity]struct{}
	asteroids   []AsteroidSpec
	projectiles []ProjectileSpec
	notes       []Notification
}

// NewCommands creates an empty command buffer.
func NewCommands() *Commands {
	return &Commands{pending: make(map[ecs.Entity]struct{})}
}

// Despawn queues e for removal. Repeated requests are ignored.
func (c *Commands) Despawn(e ecs.Entity) {
	if _, ok := c.pending[e]; ok {
		return
	}
	c.pending[e] = struct{}{}
	c.despawn = append(c.despawn, e)
}

// Despawned reports whether e is already queued for removal this tick.
func (c *Commands) Despawned(e ecs.Entity) bool {
	_, ok := c.pending[e]
	return ok
}

// SpawnAsteroid queues an asteroid.
func (c *Commands) SpawnAsteroid(spec AsteroidSpec) {
	c.asteroids = append(c.asteroids, spec)
}

// SpawnProjectile queues a projectile.
func (c *Commands) SpawnProjectile(spec ProjectileSpec) {
	c.projectiles = append(c.projectiles, spec)
}

// Notify records a notification.
func (c *Commands) Notify(n Notification) {
	c.notes = append(c.notes, n)
}

// Despawns returns queued removals in request order.
func (c *Commands) Despawns() []ecs.Entity { return c.despawn }

// Asteroids returns queued asteroid spawns in request order.
func (c *Commands) Asteroids() []AsteroidSpec { return c.asteroids }

// Projectiles returns queued projectile spawns in request order.
func (c *Commands) Projectiles() []ProjectileSpec { return c.projectiles }

// Notifications returns notifications in emission order.
func (c *Commands) Notifications() []Notification { return c.notes }

// Reset empties the buffer for the next tick.
// Slices handed out earlier stay valid; they are not reused.
func (c *Commands) Reset() {
	c.despawn = nil
	c.asteroids = nil
	c.projectiles = nil
	c.notes = nil
	clear(c.pending)
}
