package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rockfall/components"
)

// Bounds represents the arena. It is centered on the origin.
type Bounds struct {
	Width, Height float64
}

// Contains reports whether (x, y) lies inside the arena, edges included.
func (b Bounds) Contains(x, y float64) bool {
	return math.Abs(x) <= b.Width/2 && math.Abs(y) <= b.Height/2
}

// WrapSystem reflects wrappable entities that leave the arena to the opposite edge.
type WrapSystem struct {
	filter *ecs.Filter3[components.Transform, components.Velocity, components.Wrappable]
	bounds Bounds
}

// NewWrapSystem creates a new wrap system for the given arena.
func NewWrapSystem(w *ecs.World, bounds Bounds) *WrapSystem {
	return &WrapSystem{
		filter: ecs.NewFilter3[components.Transform, components.Velocity, components.Wrappable](w),
		bounds: bounds,
	}
}

// Bounds returns the arena this system wraps against.
func (s *WrapSystem) Bounds() Bounds {
	return s.bounds
}

// Update wraps every entity that has moved past an edge and is still moving outward.
func (s *WrapSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		tr, vel, _ := query.Get()
		tr.Position.X = WrapAxis(tr.Position.X, vel.Translation.X, s.bounds.Width)
		tr.Position.Y = WrapAxis(tr.Position.Y, vel.Translation.Y, s.bounds.Height)
	}
}

// WrapAxis returns pos negated when it lies beyond extent/2 and vel points
// further outward. It is a one-shot reflection, not a modulo: an entity
// heading back inward is left alone, which keeps it from flickering across
// the edge.
func WrapAxis(pos, vel, extent float64) float64 {
	if math.Abs(pos) > extent/2 && sameSign(pos, vel) {
		return -pos
	}
	return pos
}
