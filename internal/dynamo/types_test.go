package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestVec2_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec2
		valid bool
	}{
		{"zero", Vec2{}, true},
		{"normal", Vec2{1.5, -2}, true},
		{"with NaN", Vec2{math.NaN(), 0}, false},
		{"with +Inf", Vec2{0, math.Inf(1)}, false},
		{"with -Inf", Vec2{math.Inf(-1), 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestVec2_Arithmetic(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{4, 6}

	if got := a.Add(b); got != (Vec2{5, 8}) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != (Vec2{3, 4}) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2); got != (Vec2{2, 4}) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := a.Dist(b); math.Abs(got-5) > 1e-12 {
		t.Errorf("Dist = %v, want 5", got)
	}
}

func TestVec2_In(t *testing.T) {
	s := Size{W: 100, H: 50}
	tests := []struct {
		v    Vec2
		want bool
	}{
		{Vec2{50, 25}, true},
		{Vec2{0, 25}, false},
		{Vec2{100, 25}, false},
		{Vec2{-1000, -1000}, false},
	}
	for _, tt := range tests {
		if got := tt.v.In(s); got != tt.want {
			t.Errorf("%v.In(%v) = %v, want %v", tt.v, s, got, tt.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#00d4ff")
	if err != nil {
		t.Fatalf("ParseHex failed: %v", err)
	}
	if c.R != 0 || c.G != 0xd4 || c.B != 0xff || c.A != 1 {
		t.Errorf("unexpected colour %+v", c)
	}
	if c.Hex() != "#00d4ff" {
		t.Errorf("Hex() = %s", c.Hex())
	}

	short, err := ParseHex("#fff")
	if err != nil || short.R != 255 || short.B != 255 {
		t.Errorf("short form failed: %+v %v", short, err)
	}

	if _, err := ParseHex("nope"); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestRGBA_NRGBA(t *testing.T) {
	c := RGBA{R: 10, G: 20, B: 30}.WithAlpha(0.5)
	n := c.NRGBA()
	if n.A != 128 {
		t.Errorf("alpha 0.5 -> %d, want 128", n.A)
	}
	if over := c.WithAlpha(3).NRGBA(); over.A != 255 {
		t.Errorf("alpha should clamp, got %d", over.A)
	}
}

func TestAlphaAt(t *testing.T) {
	stops := []GradientStop{{0, 0.08}, {0.5, 0.03}, {1, 0}}
	tests := []struct {
		t, want float64
	}{
		{-1, 0.08},
		{0, 0.08},
		{0.25, 0.055},
		{0.5, 0.03},
		{0.75, 0.015},
		{1, 0},
		{2, 0},
	}
	for _, tt := range tests {
		if got := AlphaAt(stops, tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("AlphaAt(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
	if AlphaAt(nil, 0.5) != 0 {
		t.Error("empty stops should be transparent")
	}
}

func TestParticleError(t *testing.T) {
	err := &ParticleError{Index: 3, Wrapped: ErrInvalidState}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("ParticleError should unwrap to ErrInvalidState")
	}
	if err.Error() != ErrInvalidState.Error() {
		t.Errorf("Error() = %q", err.Error())
	}
}
