// Package game wires the ECS world, systems and telemetry into a
// tick-driven simulation.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rockfall/components"
	"github.com/pthm-cable/rockfall/config"
	"github.com/pthm-cable/rockfall/systems"
	"github.com/pthm-cable/rockfall/telemetry"
)

// ErrGameOver is returned by Step once the player has been destroyed.
var ErrGameOver = errors.New("game over")

// resolutions holds the parsed collision strategy per class.
type resolutions struct {
	player     components.Resolution
	projectile components.Resolution
	asteroid   components.Resolution
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	seed  int64
	cfg   *config.Config

	bounds systems.Bounds
	res    resolutions

	// Systems in tick order
	control   *systems.ControlSystem
	movement  *systems.MovementSystem
	drag      *systems.DragSystem
	wrap      *systems.WrapSystem
	collision *systems.CollisionSystem
	damage    *systems.DamageSystem
	lifetime  *systems.LifetimeSystem
	registry  *systems.SystemRegistry

	cmds *systems.Commands

	// Spawn mappers
	playerMapper *ecs.Map7[
		components.Transform,
		components.Velocity,
		components.CollisionConfig,
		components.Affiliation,
		components.Health,
		components.Damage,
		components.Player,
	]
	asteroidMapper *ecs.Map7[
		components.Transform,
		components.Velocity,
		components.CollisionConfig,
		components.Affiliation,
		components.Health,
		components.Damage,
		components.Asteroid,
	]
	projectileMapper *ecs.Map7[
		components.Transform,
		components.Velocity,
		components.CollisionConfig,
		components.Affiliation,
		components.Damage,
		components.Lifetime,
		components.Projectile,
	]

	// Individual component mappers for lookups
	transformMap  *ecs.Map[components.Transform]
	velMap        *ecs.Map[components.Velocity]
	collisionMap  *ecs.Map[components.CollisionConfig]
	healthMap     *ecs.Map[components.Health]
	dragMap       *ecs.Map[components.Drag]
	knockbackMap  *ecs.Map[components.Knockback]
	wrapMap       *ecs.Map[components.Wrappable]
	lifetimeMap   *ecs.Map[components.Lifetime]
	playerMap     *ecs.Map[components.Player]
	asteroidMap   *ecs.Map[components.Asteroid]
	projectileMap *ecs.Map[components.Projectile]

	// Presentation queries
	bodyFilter     *ecs.Filter2[components.Transform, components.CollisionConfig]
	asteroidFilter *ecs.Filter2[components.Health, components.Asteroid]
	playerFilter   *ecs.Filter2[components.Health, components.Player]

	// State
	player ecs.Entity
	tick   int32
	over   bool
	events []systems.CollisionEvent
	notes  []systems.Notification

	// Telemetry
	collector        *telemetry.Collector
	lifetimeTracker  *telemetry.LifetimeTracker
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	perfCollector    *telemetry.PerfCollector
	statsCallback    func(telemetry.WindowStats)
	logStats         bool
	snapshotDir      string
}

// New creates a game from cfg, spawning the player and the initial asteroid field.
func New(cfg *config.Config, opts Options) (*Game, error) {
	var res resolutions
	for _, r := range []struct {
		name string
		src  string
		dst  *components.Resolution
	}{
		{"player", cfg.Player.Resolution, &res.player},
		{"projectile", cfg.Projectile.Resolution, &res.projectile},
		{"asteroid", cfg.Asteroid.Resolution, &res.asteroid},
	} {
		parsed, err := components.ParseResolution(r.src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.name, err)
		}
		*r.dst = parsed
	}

	outputManager, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	if err := outputManager.WriteConfig(cfg); err != nil {
		outputManager.Close()
		return nil, fmt.Errorf("output: %w", err)
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))
	bounds := systems.Bounds{Width: cfg.Arena.Width, Height: cfg.Arena.Height}

	g := &Game{
		world:  world,
		rng:    rng,
		seed:   opts.Seed,
		cfg:    cfg,
		bounds: bounds,
		res:    res,

		control:   systems.NewControlSystem(world, &cfg.Player, &cfg.Projectile),
		movement:  systems.NewMovementSystem(world),
		drag:      systems.NewDragSystem(world, cfg.Physics.ClampDrag),
		wrap:      systems.NewWrapSystem(world, bounds),
		collision: systems.NewCollisionSystem(world),
		damage:    systems.NewDamageSystem(world, rng, &cfg.Asteroid),
		lifetime:  systems.NewLifetimeSystem(world),
		registry:  systems.NewSystemRegistry(),
		cmds:      systems.NewCommands(),

		playerMapper: ecs.NewMap7[
			components.Transform,
			components.Velocity,
			components.CollisionConfig,
			components.Affiliation,
			components.Health,
			components.Damage,
			components.Player,
		](world),
		asteroidMapper: ecs.NewMap7[
			components.Transform,
			components.Velocity,
			components.CollisionConfig,
			components.Affiliation,
			components.Health,
			components.Damage,
			components.Asteroid,
		](world),
		projectileMapper: ecs.NewMap7[
			components.Transform,
			components.Velocity,
			components.CollisionConfig,
			components.Affiliation,
			components.Damage,
			components.Lifetime,
			components.Projectile,
		](world),

		transformMap:  ecs.NewMap[components.Transform](world),
		velMap:        ecs.NewMap[components.Velocity](world),
		collisionMap:  ecs.NewMap[components.CollisionConfig](world),
		healthMap:     ecs.NewMap[components.Health](world),
		dragMap:       ecs.NewMap[components.Drag](world),
		knockbackMap:  ecs.NewMap[components.Knockback](world),
		wrapMap:       ecs.NewMap[components.Wrappable](world),
		lifetimeMap:   ecs.NewMap[components.Lifetime](world),
		playerMap:     ecs.NewMap[components.Player](world),
		asteroidMap:   ecs.NewMap[components.Asteroid](world),
		projectileMap: ecs.NewMap[components.Projectile](world),

		bodyFilter:     ecs.NewFilter2[components.Transform, components.CollisionConfig](world),
		asteroidFilter: ecs.NewFilter2[components.Health, components.Asteroid](world),
		playerFilter:   ecs.NewFilter2[components.Health, components.Player](world),

		collector:        telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Physics.DT),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks),
		outputManager:    outputManager,
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		statsCallback:    opts.StatsCallback,
		logStats:         opts.LogStats,
		snapshotDir:      opts.SnapshotDir,
	}

	g.player = g.spawnPlayer()
	g.spawnInitialAsteroids()

	slog.Info("game created",
		"seed", opts.Seed,
		"arena_width", bounds.Width,
		"arena_height", bounds.Height,
		"asteroids", cfg.Asteroid.InitialCount,
	)

	return g, nil
}

// Tick returns the number of completed steps.
func (g *Game) Tick() int32 {
	return g.tick
}

// Over reports whether the player has been destroyed.
func (g *Game) Over() bool {
	return g.over
}

// Bounds returns the arena.
func (g *Game) Bounds() systems.Bounds {
	return g.bounds
}

// Seed returns the RNG seed the game was created with.
func (g *Game) Seed() int64 {
	return g.seed
}

// Events returns the collision batch produced by the last step.
func (g *Game) Events() []systems.CollisionEvent {
	return g.events
}

// Notifications returns the notifications emitted by the last step.
func (g *Game) Notifications() []systems.Notification {
	return g.notes
}

// Perf returns rolling per-phase timing.
func (g *Game) Perf() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// Registry returns the phase metadata used for perf and log output.
func (g *Game) Registry() *systems.SystemRegistry {
	return g.registry
}

// Close flushes and closes telemetry output.
func (g *Game) Close() error {
	return g.outputManager.Close()
}
