package components

import (
	"math"
	"testing"
	"time"
)

func TestParseResolution(t *testing.T) {
	tests := []struct {
		in      string
		want    Resolution
		wantErr bool
	}{
		{"", ResolveYield, false},
		{"yield", ResolveYield, false},
		{"prevent", ResolvePrevent, false},
		{"no_yield", ResolveNoYield, false},
		{"bounce", ResolveYield, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseResolution(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseResolution(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseResolution(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestResolutionZeroValueIsYield(t *testing.T) {
	var c CollisionConfig
	if c.Resolution != ResolveYield {
		t.Errorf("zero CollisionConfig resolution = %v, want yield", c.Resolution)
	}
}

func TestForward(t *testing.T) {
	tests := []struct {
		heading float64
		x, y    float64
	}{
		{0, 0, 1},
		{math.Pi / 2, -1, 0},
		{math.Pi, 0, -1},
		{-math.Pi / 2, 1, 0},
	}

	for _, tc := range tests {
		tr := Transform{Heading: tc.heading}
		f := tr.Forward()
		if math.Abs(f.X-tc.x) > 1e-9 || math.Abs(f.Y-tc.y) > 1e-9 {
			t.Errorf("Forward(%v) = (%v, %v), want (%v, %v)", tc.heading, f.X, f.Y, tc.x, tc.y)
		}
	}
}

func TestLifetime(t *testing.T) {
	l := NewLifetime(1500 * time.Millisecond)
	l.Tick(time.Second)
	if l.Finished() {
		t.Fatal("finished after 1s of 1.5s")
	}
	l.Tick(500 * time.Millisecond)
	if !l.Finished() {
		t.Fatal("not finished after exactly 1.5s")
	}
}

func TestDamageValue(t *testing.T) {
	if v := BasicDamage(12.5).Value(); v != 12.5 {
		t.Errorf("BasicDamage(12.5).Value() = %v", v)
	}
}

func TestHealthFraction(t *testing.T) {
	h := Health{Current: 25, Max: 100}
	if f := h.Fraction(); f != 0.25 {
		t.Errorf("Fraction = %v, want 0.25", f)
	}
	var zero Health
	if f := zero.Fraction(); f != 0 {
		t.Errorf("zero Fraction = %v, want 0", f)
	}
}

func TestAffiliationString(t *testing.T) {
	if Friendly.String() != "friendly" || Neutral.String() != "neutral" || Hostile.String() != "hostile" {
		t.Error("unexpected affiliation names")
	}
}

func TestAffiliationCollidesWith(t *testing.T) {
	tests := []struct {
		a, b Affiliation
		want bool
	}{
		{Friendly, Friendly, false},
		{Neutral, Neutral, false},
		{Hostile, Hostile, true},
		{Friendly, Neutral, true},
		{Neutral, Hostile, true},
		{Friendly, Hostile, true},
	}
	for _, tt := range tests {
		if got := tt.a.CollidesWith(tt.b); got != tt.want {
			t.Errorf("%v.CollidesWith(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := tt.b.CollidesWith(tt.a); got != tt.want {
			t.Errorf("%v.CollidesWith(%v) = %v, want %v", tt.b, tt.a, got, tt.want)
		}
	}
}
