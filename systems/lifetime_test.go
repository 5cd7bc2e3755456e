package systems

import (
	"testing"
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/rockfall/components"
)

func TestLifetimeSystem_ExpiresExactly(t *testing.T) {
	tests := []struct {
		name      string
		dt        time.Duration
		wantTicks int
	}{
		{"60Hz", time.Second / 60, 91}, // 90 ticks of 16.666666ms fall just short
		{"100ms", 100 * time.Millisecond, 15},
		{"uneven 400ms", 400 * time.Millisecond, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := spawnBody(w, body{radius: 13})
			markProjectile(w, e, components.NewLifetime(1500*time.Millisecond))

			sys := NewLifetimeSystem(w)
			var elapsed time.Duration
			for tick := 1; tick <= 200; tick++ {
				sys.Tick(tt.dt)
				elapsed += tt.dt

				cmds := NewCommands()
				sys.Cull(nil, cmds)
				if !cmds.Despawned(e) {
					if elapsed >= 1500*time.Millisecond {
						t.Fatalf("tick %d: elapsed %v but not culled", tick, elapsed)
					}
					continue
				}
				if elapsed < 1500*time.Millisecond {
					t.Fatalf("tick %d: culled early at %v", tick, elapsed)
				}
				if tick != tt.wantTicks {
					t.Errorf("culled on tick %d, want %d", tick, tt.wantTicks)
				}
				if n := cmds.Notifications(); len(n) != 1 || n[0].Kind != NotifyExpired {
					t.Errorf("notifications = %+v, want one expiry", n)
				}
				return
			}
			t.Fatal("projectile never culled")
		})
	}
}

func TestLifetimeSystem_CullsCollidingProjectiles(t *testing.T) {
	w := ecs.NewWorld()
	shot := spawnBody(w, body{radius: 13})
	markProjectile(w, shot, components.NewLifetime(time.Hour))
	rock := spawnBody(w, body{pos: r2.Vec{X: 5}, radius: 20})

	cmds := NewCommands()
	ev := CollisionEvent{Entities: [2]ecs.Entity{rock, shot}}
	NewLifetimeSystem(w).Cull([]CollisionEvent{ev}, cmds)

	if !cmds.Despawned(shot) {
		t.Error("colliding projectile not culled")
	}
	if cmds.Despawned(rock) {
		t.Error("non-projectile culled")
	}
}

func TestLifetimeSystem_TickLeavesUntimedAlone(t *testing.T) {
	w := ecs.NewWorld()
	e := spawnBody(w, body{radius: 1})
	ecs.NewMap[components.Lifetime](w).Add(e, &components.Lifetime{Duration: time.Second})

	sys := NewLifetimeSystem(w)
	sys.Tick(2 * time.Second)

	lt := ecs.NewMap[components.Lifetime](w).Get(e)
	if lt.Elapsed != 2*time.Second {
		t.Errorf("elapsed = %v, want 2s", lt.Elapsed)
	}

	cmds := NewCommands()
	sys.Cull(nil, cmds)
	if cmds.Despawned(e) {
		t.Error("timed non-projectile culled")
	}
}
