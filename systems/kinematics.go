// Package systems contains ECS systems for the simulation.
package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/rockfall/components"
)

// MovementSystem integrates velocity into transforms.
type MovementSystem struct {
	filter *ecs.Filter2[components.Transform, components.Velocity]
}

// NewMovementSystem creates a new movement system.
func NewMovementSystem(w *ecs.World) *MovementSystem {
	return &MovementSystem{
		filter: ecs.NewFilter2[components.Transform, components.Velocity](w),
	}
}

// Update advances every moving entity by dt seconds.
func (s *MovementSystem) Update(dt float64) {
	query := s.filter.Query()
	for query.Next() {
		tr, vel := query.Get()
		Integrate(tr, vel, dt)
	}
}

// Integrate moves tr by vel over dt seconds.
// Heading rotation is incremental about the entity's own z axis.
func Integrate(tr *components.Transform, vel *components.Velocity, dt float64) {
	tr.Position = r2.Add(tr.Position, r2.Scale(dt, vel.Translation))
	tr.Heading += vel.Rotation * dt
}

// DragSystem damps velocities.
type DragSystem struct {
	filter *ecs.Filter2[components.Velocity, components.Drag]
	clamp  bool
}

// NewDragSystem creates a new drag system.
// With clamp false the factor 1-coeff*dt is applied as is and inverts
// velocity once coeff*dt exceeds 1.
func NewDragSystem(w *ecs.World, clamp bool) *DragSystem {
	return &DragSystem{
		filter: ecs.NewFilter2[components.Velocity, components.Drag](w),
		clamp:  clamp,
	}
}

// Update applies drag for dt seconds. Runs after movement, so this tick's
// drag shows up in next tick's displacement.
func (s *DragSystem) Update(dt float64) {
	query := s.filter.Query()
	for query.Next() {
		vel, drag := query.Get()
		ApplyDrag(vel, drag, dt, s.clamp)
	}
}

// ApplyDrag scales vel by the per-second drag coefficients over dt seconds.
func ApplyDrag(vel *components.Velocity, drag *components.Drag, dt float64, clamp bool) {
	vel.Translation = r2.Scale(dragFactor(drag.Translational, dt, clamp), vel.Translation)
	vel.Rotation *= dragFactor(drag.Rotational, dt, clamp)
}

func dragFactor(coeff, dt float64, clamp bool) float64 {
	f := 1 - coeff*dt
	if clamp && f < 0 {
		return 0
	}
	return f
}
