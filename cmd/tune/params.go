package main

import (
	"github.com/pthm-cable/rockfall/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of difficulty parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Asteroid field
			{Name: "initial_count", Path: "asteroid.initial_count", Min: 2, Max: 12, Default: 4},
			{Name: "speed_factor", Path: "asteroid.speed_factor", Min: 1000, Max: 6000, Default: 3000},
			{Name: "spin_factor", Path: "asteroid.spin_factor", Min: 20, Max: 200, Default: 100},
			{Name: "knockback_per_size", Path: "asteroid.knockback_per_size", Min: 0, Max: 5, Default: 2},
			// Ship
			{Name: "player_health", Path: "player.health", Min: 50, Max: 300, Default: 100},
			// Weapon
			{Name: "projectile_damage", Path: "projectile.damage", Min: 2, Max: 20, Default: 5},
			{Name: "muzzle_speed", Path: "projectile.muzzle_speed", Min: 200, Max: 1000, Default: 500},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	cfg.Asteroid.InitialCount = int(c[0] + 0.5)
	cfg.Asteroid.SpeedFactor = c[1]
	cfg.Asteroid.SpinFactor = c[2]
	cfg.Asteroid.KnockbackPerSize = c[3]
	cfg.Player.Health = c[4]
	cfg.Projectile.Damage = c[5]
	cfg.Projectile.MuzzleSpeed = c[6]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		float64(cfg.Asteroid.InitialCount),
		cfg.Asteroid.SpeedFactor,
		cfg.Asteroid.SpinFactor,
		cfg.Asteroid.KnockbackPerSize,
		cfg.Player.Health,
		cfg.Projectile.Damage,
		cfg.Projectile.MuzzleSpeed,
	}
}

// EvalRecord is one row of the tuning log.
type EvalRecord struct {
	Eval        int     `csv:"eval"`
	Fitness     float64 `csv:"fitness"`
	SurvivalSec float64 `csv:"survival_sec"`
	Quality     float64 `csv:"quality"`

	InitialCount     float64 `csv:"initial_count"`
	SpeedFactor      float64 `csv:"speed_factor"`
	SpinFactor       float64 `csv:"spin_factor"`
	KnockbackPerSize float64 `csv:"knockback_per_size"`
	PlayerHealth     float64 `csv:"player_health"`
	ProjectileDamage float64 `csv:"projectile_damage"`
	MuzzleSpeed      float64 `csv:"muzzle_speed"`
}

// Record builds a log row from clamped parameter values.
func (pv *ParamVector) Record(eval int, fitness, survivalSec, quality float64, values []float64) EvalRecord {
	c := pv.Clamp(values)
	return EvalRecord{
		Eval:             eval,
		Fitness:          fitness,
		SurvivalSec:      survivalSec,
		Quality:          quality,
		InitialCount:     c[0],
		SpeedFactor:      c[1],
		SpinFactor:       c[2],
		KnockbackPerSize: c[3],
		PlayerHealth:     c[4],
		ProjectileDamage: c[5],
		MuzzleSpeed:      c[6],
	}
}
