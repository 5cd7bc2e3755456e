package systems

import "testing"

func TestSystemRegistry(t *testing.T) {
	reg := NewSystemRegistry()

	want := []string{
		PhaseControl, PhaseMovement, PhaseDrag, PhaseWrap, PhaseCollision,
		PhaseAsteroidHurt, PhasePlayerHurt, PhaseLifetime, PhaseCull,
		PhaseCommands, PhaseTelemetry,
	}
	ids := reg.IDs()
	if len(ids) != len(want) {
		t.Fatalf("IDs = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs[%d] = %q, want %q", i, ids[i], want[i])
		}
	}

	if got := reg.GetName(PhaseAsteroidHurt); got != "Asteroid Damage" {
		t.Errorf("GetName = %q", got)
	}
	if got := reg.GetName("missing"); got != "missing" {
		t.Errorf("GetName fallback = %q, want id", got)
	}
	if _, ok := reg.Get("missing"); ok {
		t.Error("Get found an unregistered id")
	}
	if got := len(reg.ByCategory("physics")); got != 4 {
		t.Errorf("physics systems = %d, want 4", got)
	}
	if len(reg.All()) != len(want) {
		t.Errorf("All = %d entries", len(reg.All()))
	}
}
