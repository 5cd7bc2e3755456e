package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// NormalizeAngle wraps an angle to [-Pi, Pi].
func NormalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// sameSign reports whether a and b share a sign bit.
// Zero counts as positive, negative zero as negative.
func sameSign(a, b float64) bool {
	return math.Signbit(a) == math.Signbit(b)
}

// distanceSq returns the squared distance between two points.
func distanceSq(a, b r2.Vec) float64 {
	return r2.Norm2(r2.Sub(b, a))
}

// randRange draws uniformly from [lo, hi).
func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// randDirection returns a unit vector at a uniformly drawn angle.
func randDirection(rng *rand.Rand) r2.Vec {
	angle := randRange(rng, 0, 2*math.Pi)
	return r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
}

// isFinite reports whether both components are neither NaN nor infinite.
func isFinite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
