// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Asteroid   AsteroidConfig   `yaml:"asteroid"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Bookmarks  BookmarksConfig  `yaml:"bookmarks"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ArenaConfig holds the wrap-around arena dimensions.
// The arena is centered on the origin.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig holds simulation physics parameters.
type PhysicsConfig struct {
	DT        float64 `yaml:"dt"`         // Seconds per tick
	ClampDrag bool    `yaml:"clamp_drag"` // Clamp the drag factor at zero instead of letting it invert velocity
}

// PlayerConfig holds player ship parameters.
type PlayerConfig struct {
	Radius            float64 `yaml:"radius"`
	Health            float64 `yaml:"health"`
	Damage            float64 `yaml:"damage"`    // Contact damage dealt to whatever the ship hits
	Knockback         float64 `yaml:"knockback"` // Impulse imparted to whatever the ship hits
	DragTranslational float64 `yaml:"drag_translational"`
	DragRotational    float64 `yaml:"drag_rotational"`
	Thrust            float64 `yaml:"thrust"`    // Units per second squared
	TurnRate          float64 `yaml:"turn_rate"` // Radians per second squared
	Resolution        string  `yaml:"resolution"`
}

// ProjectileConfig holds parameters for fired projectiles.
type ProjectileConfig struct {
	Radius      float64 `yaml:"radius"`
	Damage      float64 `yaml:"damage"`
	Knockback   float64 `yaml:"knockback"`
	Lifetime    float64 `yaml:"lifetime"`     // Seconds before the projectile expires
	MuzzleSpeed float64 `yaml:"muzzle_speed"` // Added to the ship's velocity along its heading
	Resolution  string  `yaml:"resolution"`
}

// AsteroidConfig holds asteroid spawn and fragmentation parameters.
type AsteroidConfig struct {
	InitialCount     int     `yaml:"initial_count"`
	MinSize          float64 `yaml:"min_size"`
	MaxSize          float64 `yaml:"max_size"`
	SpawnExtent      float64 `yaml:"spawn_extent"`       // Initial positions are drawn from [-extent, extent)
	SpeedFactor      float64 `yaml:"speed_factor"`       // Speed is drawn from [0, speed_factor/size)
	SpinFactor       float64 `yaml:"spin_factor"`        // Spin is drawn from [-spin_factor/size, spin_factor/size)
	KnockbackPerSize float64 `yaml:"knockback_per_size"` // Knockback = size * this
	DivisionSize     float64 `yaml:"division_size"`      // Size per potential fragment
	MaxDivisions     int     `yaml:"max_divisions"`
	Resolution       string  `yaml:"resolution"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	BookmarkHistorySize int     `yaml:"bookmark_history_size"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	PlayerCriticalFraction float64 `yaml:"player_critical_fraction"` // Trigger when health/max drops below this
	FragmentCascadeMin     int     `yaml:"fragment_cascade_min"`     // Minimum fragments per window for a cascade
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT                 time.Duration // Physics.DT as a duration
	ProjectileLifetime time.Duration // Projectile.Lifetime as a duration
	HalfWidth          float64
	HalfHeight         float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks the values the simulation cannot run without.
func (c *Config) Validate() error {
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("arena size must be positive, got %gx%g", c.Arena.Width, c.Arena.Height)
	}
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %g", c.Physics.DT)
	}
	if c.Player.Radius < 0 || c.Projectile.Radius < 0 {
		return fmt.Errorf("collision radii must not be negative")
	}
	if c.Asteroid.MinSize <= 0 || c.Asteroid.MaxSize <= c.Asteroid.MinSize {
		return fmt.Errorf("asteroid size range [%g, %g) is empty", c.Asteroid.MinSize, c.Asteroid.MaxSize)
	}
	if c.Asteroid.InitialCount < 0 {
		return fmt.Errorf("asteroid.initial_count must not be negative")
	}
	if c.Projectile.Lifetime <= 0 {
		return fmt.Errorf("projectile.lifetime must be positive, got %g", c.Projectile.Lifetime)
	}
	for name, res := range map[string]string{
		"player":     c.Player.Resolution,
		"projectile": c.Projectile.Resolution,
		"asteroid":   c.Asteroid.Resolution,
	} {
		switch res {
		case "", "yield", "no_yield", "prevent":
		default:
			return fmt.Errorf("%s.resolution: unknown strategy %q", name, res)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT = secondsToDuration(c.Physics.DT)
	c.Derived.ProjectileLifetime = secondsToDuration(c.Projectile.Lifetime)
	c.Derived.HalfWidth = c.Arena.Width / 2
	c.Derived.HalfHeight = c.Arena.Height / 2
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := c.MarshalYAMLBytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// MarshalYAMLBytes encodes the configuration as YAML.
func (c *Config) MarshalYAMLBytes() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}
