// Package components defines ECS components for the simulation.
package components

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// Transform holds an entity's placement in the arena.
type Transform struct {
	Position r2.Vec
	Z        float64 // Draw layer, ignored by the simulation
	Heading  float64 // Radians about the z axis
}

// Forward returns the unit vector the entity faces.
// A heading of zero faces +Y.
func (t *Transform) Forward() r2.Vec {
	s, c := math.Sincos(t.Heading)
	return r2.Vec{X: -s, Y: c}
}

// Velocity holds translational and rotational speed.
type Velocity struct {
	Translation r2.Vec  // Units per second
	Rotation    float64 // Radians per second, positive turns left
}

// Drag holds per-second damping coefficients.
type Drag struct {
	Translational float64
	Rotational    float64
}

// Resolution selects how an entity takes part in overlap resolution.
type Resolution uint8

const (
	ResolveYield   Resolution = iota // Moves to resolve overlap, sharing with the other side if it also yields
	ResolvePrevent                   // Pair is reported but never separated
	ResolveNoYield                   // Detected but never displaced
)

// String returns the config name of the strategy.
func (r Resolution) String() string {
	switch r {
	case ResolveYield:
		return "yield"
	case ResolvePrevent:
		return "prevent"
	case ResolveNoYield:
		return "no_yield"
	}
	return fmt.Sprintf("Resolution(%d)", uint8(r))
}

// ParseResolution converts a config name to a Resolution.
// An empty name selects the default, ResolveYield.
func ParseResolution(s string) (Resolution, error) {
	switch s {
	case "", "yield":
		return ResolveYield, nil
	case "prevent":
		return ResolvePrevent, nil
	case "no_yield":
		return ResolveNoYield, nil
	}
	return ResolveYield, fmt.Errorf("unknown resolution strategy %q", s)
}

// CollisionConfig approximates an entity's shape as a circle.
type CollisionConfig struct {
	Radius     float64
	Resolution Resolution
}

// Affiliation is a coarse faction tag gating which pairs can collide.
type Affiliation uint8

const (
	Friendly Affiliation = iota
	Neutral
	Hostile
)

// String returns the affiliation name.
func (a Affiliation) String() string {
	switch a {
	case Friendly:
		return "friendly"
	case Neutral:
		return "neutral"
	case Hostile:
		return "hostile"
	}
	return fmt.Sprintf("Affiliation(%d)", uint8(a))
}

// CollidesWith reports whether entities of affiliations a and b interact.
// Different factions always do. Friendly and Neutral pass through their own
// kind; hostiles are not coordinated and bump into each other.
func (a Affiliation) CollidesWith(b Affiliation) bool {
	if a != b {
		return true
	}
	switch a {
	case Friendly, Neutral:
		return false
	case Hostile:
		return true
	}
	return false
}

// Health holds hit points. Current may go negative before the despawn is applied.
type Health struct {
	Current float64
	Max     float64
}

// Fraction returns Current/Max, or 0 when Max is zero.
func (h *Health) Fraction() float64 {
	if h.Max == 0 {
		return 0
	}
	return h.Current / h.Max
}

// DamageKind tags the Damage variant.
type DamageKind uint8

const (
	DamageBasic DamageKind = iota // Flat amount per qualifying collision
)

// Damage is what an entity deals to whatever it collides with.
type Damage struct {
	Kind   DamageKind
	Amount float64
}

// BasicDamage returns a flat Damage of the given amount.
func BasicDamage(amount float64) Damage {
	return Damage{Kind: DamageBasic, Amount: amount}
}

// Value returns the hit points removed by one application.
func (d Damage) Value() float64 {
	switch d.Kind {
	case DamageBasic:
		return d.Amount
	}
	return 0
}

// Knockback is the impulse an entity imparts to whatever it collides with.
type Knockback struct {
	Magnitude float64
}

// Lifetime is a countdown after which the entity is culled.
type Lifetime struct {
	Duration time.Duration
	Elapsed  time.Duration
}

// NewLifetime returns a fresh Lifetime of duration d.
func NewLifetime(d time.Duration) Lifetime {
	return Lifetime{Duration: d}
}

// Tick advances the timer.
func (l *Lifetime) Tick(dt time.Duration) {
	l.Elapsed += dt
}

// Finished reports whether the timer has elapsed.
func (l *Lifetime) Finished() bool {
	return l.Elapsed >= l.Duration
}

// Wrappable marks entities that wrap at the arena boundary.
type Wrappable struct{}

// Player marks the player ship. Exactly one exists.
type Player struct{}

// Asteroid marks asteroids.
type Asteroid struct {
	Generation int // 0 for initial asteroids, parent+1 for fragments
}

// Projectile marks fired projectiles.
type Projectile struct{}
