package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/rockfall/components"
	"github.com/pthm-cable/rockfall/config"
)

// Divisions draws how many fragments a destroyed asteroid of the given
// size breaks into and the size each fragment gets.
// The count is uniform over [0, min(size/divisionSize, maxDivisions)), so
// an asteroid may vanish without fragments. The range is empty for small
// asteroids and then yields 0 without consuming randomness.
func Divisions(rng *rand.Rand, size float64, cfg *config.AsteroidConfig) (int, float64) {
	maxDiv := 0
	if cfg.DivisionSize > 0 {
		maxDiv = int(math.Min(size/cfg.DivisionSize, float64(cfg.MaxDivisions)))
	}

	divisions := 0
	if maxDiv > 0 {
		divisions = rng.Intn(maxDiv)
	}

	return divisions, size / float64(max(divisions, 2))
}

// Fragment returns spawn specs for the pieces of a destroyed asteroid.
// Mass is not conserved: divisions*newSize only approximates the parent size.
func Fragment(rng *rand.Rand, pos r2.Vec, health components.Health, generation int, cfg *config.AsteroidConfig) []AsteroidSpec {
	size := health.Max * 2
	divisions, newSize := Divisions(rng, size, cfg)
	if divisions == 0 {
		return nil
	}

	specs := make([]AsteroidSpec, 0, divisions)
	for range divisions {
		dir := randDirection(rng)
		speed := randRange(rng, 0, cfg.SpeedFactor/newSize)
		spin := randRange(rng, -cfg.SpinFactor/newSize, cfg.SpinFactor/newSize)

		specs = append(specs, AsteroidSpec{
			Position: pos,
			Velocity: components.Velocity{
				Translation: r2.Scale(speed, dir),
				Rotation:    spin,
			},
			Size:       newSize,
			Knockback:  size * cfg.KnockbackPerSize,
			Generation: generation + 1,
		})
	}
	return specs
}
