package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/rockfall/components"
	"github.com/pthm-cable/rockfall/systems"
)

// spawnPlayer creates the player ship at the arena center.
func (g *Game) spawnPlayer() ecs.Entity {
	pc := &g.cfg.Player

	tr := components.Transform{}
	vel := components.Velocity{}
	col := components.CollisionConfig{Radius: pc.Radius, Resolution: g.res.player}
	aff := components.Friendly
	health := components.Health{Current: pc.Health, Max: pc.Health}
	dmg := components.BasicDamage(pc.Damage)
	player := components.Player{}

	entity := g.playerMapper.NewEntity(&tr, &vel, &col, &aff, &health, &dmg, &player)
	g.dragMap.Add(entity, &components.Drag{
		Translational: pc.DragTranslational,
		Rotational:    pc.DragRotational,
	})
	g.wrapMap.Add(entity, &components.Wrappable{})
	if pc.Knockback > 0 {
		g.knockbackMap.Add(entity, &components.Knockback{Magnitude: pc.Knockback})
	}
	return entity
}

// spawnAsteroid creates an asteroid from a spec. Radius and health are
// half the size, contact damage a third.
func (g *Game) spawnAsteroid(spec systems.AsteroidSpec) ecs.Entity {
	tr := components.Transform{Position: spec.Position}
	vel := spec.Velocity
	col := components.CollisionConfig{Radius: spec.Size / 2, Resolution: g.res.asteroid}
	aff := components.Neutral
	health := components.Health{Current: spec.Size / 2, Max: spec.Size / 2}
	dmg := components.BasicDamage(spec.Size / 3)
	ast := components.Asteroid{Generation: spec.Generation}

	entity := g.asteroidMapper.NewEntity(&tr, &vel, &col, &aff, &health, &dmg, &ast)
	g.wrapMap.Add(entity, &components.Wrappable{})
	if spec.Knockback > 0 {
		g.knockbackMap.Add(entity, &components.Knockback{Magnitude: spec.Knockback})
	}

	g.lifetimeTracker.Register(entity, g.tick, spec.Generation, spec.Size)
	return entity
}

// spawnProjectile creates a projectile from a spec, taking its shape,
// damage and lifetime from config.
func (g *Game) spawnProjectile(spec systems.ProjectileSpec) ecs.Entity {
	pc := &g.cfg.Projectile

	tr := spec.Transform
	vel := spec.Velocity
	col := components.CollisionConfig{Radius: pc.Radius, Resolution: g.res.projectile}
	aff := components.Friendly
	dmg := components.BasicDamage(pc.Damage)
	life := components.NewLifetime(g.cfg.Derived.ProjectileLifetime)
	proj := components.Projectile{}

	entity := g.projectileMapper.NewEntity(&tr, &vel, &col, &aff, &dmg, &life, &proj)
	g.wrapMap.Add(entity, &components.Wrappable{})
	if pc.Knockback > 0 {
		g.knockbackMap.Add(entity, &components.Knockback{Magnitude: pc.Knockback})
	}
	return entity
}

// spawnInitialAsteroids creates the starting field. Each asteroid draws
// size, direction, speed, x, y and spin from the game RNG in that order.
func (g *Game) spawnInitialAsteroids() {
	ac := &g.cfg.Asteroid
	for i := 0; i < ac.InitialCount; i++ {
		size := ac.MinSize + g.rng.Float64()*(ac.MaxSize-ac.MinSize)
		direction := g.rng.Float64() * 2 * math.Pi
		speed := g.rng.Float64() * ac.SpeedFactor / size
		x := (2*g.rng.Float64() - 1) * ac.SpawnExtent
		y := (2*g.rng.Float64() - 1) * ac.SpawnExtent
		spin := (2*g.rng.Float64() - 1) * ac.SpinFactor / size

		g.spawnAsteroid(systems.AsteroidSpec{
			Position: r2.Vec{X: x, Y: y},
			Velocity: components.Velocity{
				Translation: r2.Scale(speed, r2.Vec{X: math.Cos(direction), Y: math.Sin(direction)}),
				Rotation:    spin,
			},
			Size:      size,
			Knockback: size * ac.KnockbackPerSize,
		})
	}
}
