package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/rockfall/components"
)

// fallbackDirection separates entities whose centers coincide.
var fallbackDirection = r2.Vec{X: 1}

// CollisionEvent records one overlapping pair for a single tick.
type CollisionEvent struct {
	Entities [2]ecs.Entity
	// Damage holds a copy of each side's Damage, nil when the side has none.
	Damage [2]*components.Damage
	// Direction is the unit vector from Entities[0] toward Entities[1].
	Direction r2.Vec
	// Knockback is each side's magnitude, 0 when the side has none.
	Knockback   [2]float64
	Penetration float64
	Resolved    bool
}

// Involves reports whether e is one side of the event.
func (ev *CollisionEvent) Involves(e ecs.Entity) bool {
	return ev.Entities[0] == e || ev.Entities[1] == e
}

// collider caches one entity's collision data for the pairwise pass.
type collider struct {
	entity      ecs.Entity
	tr          *components.Transform
	cfg         *components.CollisionConfig
	affiliation *components.Affiliation
}

// CollisionSystem detects overlapping circles and pushes them apart.
// It compares every pair, which is fine for the low hundreds of entities
// this arena holds.
type CollisionSystem struct {
	filter       *ecs.Filter2[components.Transform, components.CollisionConfig]
	affMap       *ecs.Map[components.Affiliation]
	damageMap    *ecs.Map[components.Damage]
	knockbackMap *ecs.Map[components.Knockback]

	colliders []collider
}

// NewCollisionSystem creates a new collision system.
func NewCollisionSystem(w *ecs.World) *CollisionSystem {
	return &CollisionSystem{
		filter:       ecs.NewFilter2[components.Transform, components.CollisionConfig](w),
		affMap:       ecs.NewMap[components.Affiliation](w),
		damageMap:    ecs.NewMap[components.Damage](w),
		knockbackMap: ecs.NewMap[components.Knockback](w),
	}
}

// Update runs one detection pass and returns this tick's events.
// Overlaps are resolved as they are found, so later pairs see positions
// already moved by earlier ones. With three or more bodies piled up, some
// overlap may remain until the next tick.
func (s *CollisionSystem) Update() []CollisionEvent {
	s.colliders = s.colliders[:0]

	query := s.filter.Query()
	for query.Next() {
		tr, cfg := query.Get()
		c := collider{entity: query.Entity(), tr: tr, cfg: cfg}
		if s.affMap.Has(c.entity) {
			c.affiliation = s.affMap.Get(c.entity)
		}
		s.colliders = append(s.colliders, c)
	}

	var events []CollisionEvent
	for i := 0; i < len(s.colliders); i++ {
		a := &s.colliders[i]
		for j := i + 1; j < len(s.colliders); j++ {
			b := &s.colliders[j]

			if !affiliationsCollide(a.affiliation, b.affiliation) {
				continue
			}
			if !Overlaps(a.tr.Position, b.tr.Position, a.cfg.Radius, b.cfg.Radius) {
				continue
			}

			dir, dist := SeparationDirection(a.tr.Position, b.tr.Position)
			ev := CollisionEvent{
				Entities:    [2]ecs.Entity{a.entity, b.entity},
				Damage:      [2]*components.Damage{s.cloneDamage(a.entity), s.cloneDamage(b.entity)},
				Direction:   dir,
				Knockback:   [2]float64{s.knockback(a.entity), s.knockback(b.entity)},
				Penetration: a.cfg.Radius + b.cfg.Radius - dist,
			}
			ev.Resolved = ResolvePenetration(a.tr, b.tr, a.cfg.Resolution, b.cfg.Resolution, dir, ev.Penetration)
			events = append(events, ev)
		}
	}

	return events
}

// cloneDamage copies e's Damage so the event outlives the entity.
func (s *CollisionSystem) cloneDamage(e ecs.Entity) *components.Damage {
	if !s.damageMap.Has(e) {
		return nil
	}
	d := *s.damageMap.Get(e)
	return &d
}

func (s *CollisionSystem) knockback(e ecs.Entity) float64 {
	if !s.knockbackMap.Has(e) {
		return 0
	}
	return s.knockbackMap.Get(e).Magnitude
}

// affiliationsCollide gates a pair by faction.
// A side without an Affiliation collides with everything.
func affiliationsCollide(a, b *components.Affiliation) bool {
	if a == nil || b == nil {
		return true
	}
	return a.CollidesWith(*b)
}

// Overlaps reports whether two circles intersect. Touching circles do not.
func Overlaps(a, b r2.Vec, ra, rb float64) bool {
	sum := ra + rb
	return distanceSq(a, b) < sum*sum
}

// SeparationDirection returns the unit vector from a toward b and the
// distance between them. Coincident points get a fixed +X axis.
func SeparationDirection(a, b r2.Vec) (r2.Vec, float64) {
	delta := r2.Sub(b, a)
	dist := math.Sqrt(r2.Norm2(delta))
	if dist == 0 {
		return fallbackDirection, 0
	}
	dir := r2.Scale(1/dist, delta)
	if !isFinite(dir) {
		return fallbackDirection, dist
	}
	return dir, dist
}

// ResolvePenetration moves a and b apart along dir by depth according to
// their strategies and reports whether anything moved.
func ResolvePenetration(a, b *components.Transform, ra, rb components.Resolution, dir r2.Vec, depth float64) bool {
	if ra == components.ResolvePrevent || rb == components.ResolvePrevent {
		return false
	}

	yieldA := ra == components.ResolveYield
	yieldB := rb == components.ResolveYield
	switch {
	case yieldA && yieldB:
		half := r2.Scale(depth/2, dir)
		a.Position = r2.Sub(a.Position, half)
		b.Position = r2.Add(b.Position, half)
	case yieldA:
		a.Position = r2.Sub(a.Position, r2.Scale(depth, dir))
	case yieldB:
		b.Position = r2.Add(b.Position, r2.Scale(depth, dir))
	default:
		return false
	}
	return true
}
