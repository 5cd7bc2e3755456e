package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/rockfall/components"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		a, b   r2.Vec
		ra, rb float64
		want   bool
	}{
		{"apart", r2.Vec{}, r2.Vec{X: 20}, 5, 5, false},
		{"touching", r2.Vec{}, r2.Vec{X: 10}, 5, 5, false},
		{"just inside", r2.Vec{}, r2.Vec{X: 9.999}, 5, 5, true},
		{"coincident", r2.Vec{X: 3, Y: 3}, r2.Vec{X: 3, Y: 3}, 5, 5, true},
		{"diagonal", r2.Vec{}, r2.Vec{X: 3, Y: 4}, 2, 3.5, true},
		{"unequal radii", r2.Vec{}, r2.Vec{Y: 60}, 50, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b, tt.ra, tt.rb); got != tt.want {
				t.Errorf("Overlaps(a, b) = %v, want %v", got, tt.want)
			}
			if got := Overlaps(tt.b, tt.a, tt.rb, tt.ra); got != tt.want {
				t.Errorf("Overlaps(b, a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeparationDirection(t *testing.T) {
	dir, dist := SeparationDirection(r2.Vec{X: 1, Y: 1}, r2.Vec{X: 4, Y: 5})
	if !approx(dist, 5) {
		t.Errorf("dist = %f, want 5", dist)
	}
	if !approxVec(dir, r2.Vec{X: 0.6, Y: 0.8}) {
		t.Errorf("dir = %v, want (0.6, 0.8)", dir)
	}

	dir, dist = SeparationDirection(r2.Vec{X: 7}, r2.Vec{X: 7})
	if dist != 0 || dir != fallbackDirection {
		t.Errorf("coincident: dir = %v dist = %f, want fallback and 0", dir, dist)
	}
}

func TestResolvePenetration(t *testing.T) {
	dir := r2.Vec{X: 1}
	tests := []struct {
		name         string
		ra, rb       components.Resolution
		wantA, wantB float64
		wantResolved bool
	}{
		{"both yield split", components.ResolveYield, components.ResolveYield, -2, 12, true},
		{"a yields alone", components.ResolveYield, components.ResolveNoYield, -4, 10, true},
		{"b yields alone", components.ResolveNoYield, components.ResolveYield, 0, 14, true},
		{"neither yields", components.ResolveNoYield, components.ResolveNoYield, 0, 10, false},
		{"prevent on a", components.ResolvePrevent, components.ResolveYield, 0, 10, false},
		{"prevent on b", components.ResolveYield, components.ResolvePrevent, 0, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := components.Transform{}
			b := components.Transform{Position: r2.Vec{X: 10}}
			got := ResolvePenetration(&a, &b, tt.ra, tt.rb, dir, 4)
			if got != tt.wantResolved {
				t.Errorf("resolved = %v, want %v", got, tt.wantResolved)
			}
			if !approx(a.Position.X, tt.wantA) || !approx(b.Position.X, tt.wantB) {
				t.Errorf("positions = (%f, %f), want (%f, %f)", a.Position.X, b.Position.X, tt.wantA, tt.wantB)
			}
		})
	}
}

func TestCollisionSystem_Affiliation(t *testing.T) {
	tests := []struct {
		name  string
		a, b  *components.Affiliation
		count int
	}{
		{"neutral pair never checked", aff(components.Neutral), aff(components.Neutral), 0},
		{"friendly pair never checked", aff(components.Friendly), aff(components.Friendly), 0},
		{"hostile pair always checked", aff(components.Hostile), aff(components.Hostile), 1},
		{"mixed factions", aff(components.Friendly), aff(components.Neutral), 1},
		{"one side unaffiliated", aff(components.Neutral), nil, 1},
		{"both unaffiliated", nil, nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			spawnBody(w, body{radius: 5, affiliation: tt.a})
			spawnBody(w, body{pos: r2.Vec{X: 4}, radius: 5, affiliation: tt.b})

			events := NewCollisionSystem(w).Update()
			if len(events) != tt.count {
				t.Errorf("got %d events, want %d", len(events), tt.count)
			}
		})
	}
}

func TestCollisionSystem_CoincidentHostiles(t *testing.T) {
	w := ecs.NewWorld()
	a := spawnBody(w, body{pos: r2.Vec{X: 2, Y: 2}, radius: 5, affiliation: aff(components.Hostile)})
	b := spawnBody(w, body{pos: r2.Vec{X: 2, Y: 2}, radius: 5, affiliation: aff(components.Hostile)})

	events := NewCollisionSystem(w).Update()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	ev := events[0]
	if ev.Direction != fallbackDirection {
		t.Errorf("direction = %v, want fallback %v", ev.Direction, fallbackDirection)
	}
	if !approx(ev.Penetration, 10) {
		t.Errorf("penetration = %f, want 10", ev.Penetration)
	}

	for _, e := range []ecs.Entity{a, b} {
		p := transformOf(w, e).Position
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Fatalf("NaN position %v", p)
		}
	}
	pa, pb := transformOf(w, a).Position, transformOf(w, b).Position
	if d := r2.Norm(r2.Sub(pb, pa)); !approx(d, 10) {
		t.Errorf("distance after resolution = %f, want 10", d)
	}
}

func TestCollisionSystem_EventPayload(t *testing.T) {
	w := ecs.NewWorld()
	a := spawnBody(w, body{radius: 10, damage: 7, knockback: 3, res: components.ResolveNoYield})
	b := spawnBody(w, body{pos: r2.Vec{Y: 15}, radius: 10})

	events := NewCollisionSystem(w).Update()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]

	if !ev.Involves(a) || !ev.Involves(b) {
		t.Fatalf("event entities = %v", ev.Entities)
	}
	first := 0
	if ev.Entities[1] == a {
		first = 1
	}

	if ev.Damage[first] == nil || ev.Damage[first].Value() != 7 {
		t.Errorf("damage of a = %v, want 7", ev.Damage[first])
	}
	if ev.Damage[1-first] != nil {
		t.Errorf("damage of b = %v, want nil", ev.Damage[1-first])
	}
	if ev.Knockback[first] != 3 || ev.Knockback[1-first] != 0 {
		t.Errorf("knockback = %v", ev.Knockback)
	}
	if !ev.Resolved {
		t.Error("expected pair to be resolved")
	}

	// Only b yields, so b takes the full 5 units of displacement.
	if got := transformOf(w, a).Position; !approxVec(got, r2.Vec{}) {
		t.Errorf("no-yield entity moved to %v", got)
	}
	if got := transformOf(w, b).Position; !approxVec(got, r2.Vec{Y: 20}) {
		t.Errorf("yielding entity at %v, want (0, 20)", got)
	}

	// Mutating the entity's damage afterwards must not leak into the event.
	ecs.NewMap[components.Damage](w).Get(a).Amount = 100
	if ev.Damage[first].Value() != 7 {
		t.Error("event damage aliases the component")
	}
}

func TestCollisionSystem_PreventReportsWithoutMoving(t *testing.T) {
	w := ecs.NewWorld()
	a := spawnBody(w, body{radius: 10, res: components.ResolvePrevent})
	b := spawnBody(w, body{pos: r2.Vec{X: 5}, radius: 10})

	events := NewCollisionSystem(w).Update()
	if len(events) != 1 || events[0].Resolved {
		t.Fatalf("events = %+v, want one unresolved", events)
	}
	if transformOf(w, a).Position != (r2.Vec{}) || transformOf(w, b).Position != (r2.Vec{X: 5}) {
		t.Error("prevent pair was moved")
	}
}

func TestCollisionSystem_FreshBatchPerTick(t *testing.T) {
	w := ecs.NewWorld()
	spawnBody(w, body{radius: 10, res: components.ResolvePrevent})
	spawnBody(w, body{pos: r2.Vec{X: 5}, radius: 10})

	sys := NewCollisionSystem(w)
	first := sys.Update()
	second := sys.Update()
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("got %d and %d events, want 1 each", len(first), len(second))
	}
	second[0].Penetration = -1
	if first[0].Penetration == -1 {
		t.Error("batches share storage")
	}
}
