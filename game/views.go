package game

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/rockfall/components"
)

// EntityView is a read-only copy of what a presentation layer needs to
// draw one entity.
type EntityView struct {
	Entity   ecs.Entity
	Class    components.Class
	Position r2.Vec
	Velocity components.Velocity
	Heading  float64
	Radius   float64
	Health   float64 // Zero for entities without Health
	Max      float64
}

// Views returns a view of every collidable entity in query order.
func (g *Game) Views() []EntityView {
	var views []EntityView
	query := g.bodyFilter.Query()
	for query.Next() {
		tr, col := query.Get()
		e := query.Entity()

		v := EntityView{
			Entity:   e,
			Class:    g.classOf(e),
			Position: tr.Position,
			Heading:  tr.Heading,
			Radius:   col.Radius,
		}
		if g.velMap.Has(e) {
			v.Velocity = *g.velMap.Get(e)
		}
		if g.healthMap.Has(e) {
			h := g.healthMap.Get(e)
			v.Health, v.Max = h.Current, h.Max
		}
		views = append(views, v)
	}
	return views
}

// classOf returns the marker class of e.
func (g *Game) classOf(e ecs.Entity) components.Class {
	switch {
	case g.playerMap.Has(e):
		return components.ClassPlayer
	case g.asteroidMap.Has(e):
		return components.ClassAsteroid
	case g.projectileMap.Has(e):
		return components.ClassProjectile
	}
	return components.ClassOther
}

// Player returns a view of the player, or false once it has been destroyed.
func (g *Game) Player() (EntityView, bool) {
	if !g.world.Alive(g.player) {
		return EntityView{}, false
	}
	tr := g.transformMap.Get(g.player)
	h := g.healthMap.Get(g.player)
	return EntityView{
		Entity:   g.player,
		Class:    components.ClassPlayer,
		Position: tr.Position,
		Velocity: *g.velMap.Get(g.player),
		Heading:  tr.Heading,
		Radius:   g.collisionMap.Get(g.player).Radius,
		Health:   h.Current,
		Max:      h.Max,
	}, true
}

// AsteroidCount returns the number of asteroids in the world.
func (g *Game) AsteroidCount() int {
	n := 0
	query := g.asteroidFilter.Query()
	for query.Next() {
		n++
	}
	return n
}
