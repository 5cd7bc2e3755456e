package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/rockfall/components"
	"github.com/pthm-cable/rockfall/systems"
)

// Autopilot is a scripted input source for headless runs. It turns toward
// the nearest asteroid, fires when roughly aligned and closes distance
// when the target is far away.
type Autopilot struct {
	AimTolerance float64 // Radians either side of the target that count as aligned
	FireCooldown int32   // Ticks between shots
	ThrustRange  float64 // Thrust while the target is farther than this
	MaxTurnRate  float64 // Stop adding spin beyond this rotation speed
	lastFire     int32
	haveFired    bool
}

// NewAutopilot returns an autopilot with settings that hold up in the default arena.
func NewAutopilot() *Autopilot {
	return &Autopilot{
		AimTolerance: 0.15,
		FireCooldown: 12,
		ThrustRange:  350,
		MaxTurnRate:  3,
	}
}

// Next returns the intent for the game's upcoming tick.
func (a *Autopilot) Next(g *Game) systems.Intent {
	var in systems.Intent

	player, ok := g.Player()
	if !ok {
		return in
	}
	target, dist, ok := nearest(player.Position, g.Views(), components.ClassAsteroid)
	if !ok {
		return in
	}

	offset := AimOffset(player.Heading, r2.Sub(target, player.Position))
	spin := player.Velocity.Rotation
	switch {
	case offset > a.AimTolerance && spin < a.MaxTurnRate:
		in.RotateLeft = true
	case offset < -a.AimTolerance && spin > -a.MaxTurnRate:
		in.RotateRight = true
	}

	aligned := math.Abs(offset) <= a.AimTolerance
	if aligned && (!a.haveFired || g.Tick()-a.lastFire >= a.FireCooldown) {
		in.Fire = true
		a.lastFire = g.Tick()
		a.haveFired = true
	}
	if aligned && dist > a.ThrustRange {
		in.Forward = true
	}
	return in
}

// AimOffset returns the signed angle from heading to the direction d.
// Positive means the target is to the left, reached by increasing heading.
func AimOffset(heading float64, d r2.Vec) float64 {
	// A heading of zero faces +Y.
	want := math.Atan2(-d.X, d.Y)
	return systems.NormalizeAngle(want - heading)
}

// nearest returns the position of the closest view of the given class.
func nearest(from r2.Vec, views []EntityView, class components.Class) (r2.Vec, float64, bool) {
	best := math.Inf(1)
	var pos r2.Vec
	for _, v := range views {
		if v.Class != class {
			continue
		}
		if d := r2.Norm(r2.Sub(v.Position, from)); d < best {
			best, pos = d, v.Position
		}
	}
	return pos, best, !math.IsInf(best, 1)
}
