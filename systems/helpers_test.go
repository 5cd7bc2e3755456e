package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/rockfall/components"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func approxVec(a, b r2.Vec) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y)
}

// body describes a test entity. Zero-valued optional fields are not added.
type body struct {
	pos         r2.Vec
	vel         r2.Vec
	radius      float64
	res         components.Resolution
	affiliation *components.Affiliation
	health      float64
	damage      float64
	knockback   float64
}

func aff(a components.Affiliation) *components.Affiliation {
	return &a
}

// spawnBody creates an entity with Transform, Velocity and CollisionConfig
// plus whatever optional components b asks for.
func spawnBody(w *ecs.World, b body) ecs.Entity {
	tr := components.Transform{Position: b.pos}
	vel := components.Velocity{Translation: b.vel}
	cc := components.CollisionConfig{Radius: b.radius, Resolution: b.res}
	e := ecs.NewMap3[components.Transform, components.Velocity, components.CollisionConfig](w).NewEntity(&tr, &vel, &cc)

	if b.affiliation != nil {
		ecs.NewMap[components.Affiliation](w).Add(e, b.affiliation)
	}
	if b.health > 0 {
		ecs.NewMap[components.Health](w).Add(e, &components.Health{Current: b.health, Max: b.health})
	}
	if b.damage > 0 {
		d := components.BasicDamage(b.damage)
		ecs.NewMap[components.Damage](w).Add(e, &d)
	}
	if b.knockback > 0 {
		ecs.NewMap[components.Knockback](w).Add(e, &components.Knockback{Magnitude: b.knockback})
	}
	return e
}

func markAsteroid(w *ecs.World, e ecs.Entity, gen int) {
	ecs.NewMap[components.Asteroid](w).Add(e, &components.Asteroid{Generation: gen})
}

func markPlayer(w *ecs.World, e ecs.Entity) {
	ecs.NewMap[components.Player](w).Add(e, &components.Player{})
}

func markProjectile(w *ecs.World, e ecs.Entity, lifetime components.Lifetime) {
	ecs.NewMap[components.Projectile](w).Add(e, &components.Projectile{})
	ecs.NewMap[components.Lifetime](w).Add(e, &lifetime)
}

func transformOf(w *ecs.World, e ecs.Entity) *components.Transform {
	return ecs.NewMap[components.Transform](w).Get(e)
}

func velocityOf(w *ecs.World, e ecs.Entity) *components.Velocity {
	return ecs.NewMap[components.Velocity](w).Get(e)
}

func healthOf(w *ecs.World, e ecs.Entity) *components.Health {
	return ecs.NewMap[components.Health](w).Get(e)
}
