package dynamo

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64  { return v.Sub(o).Len() }
func (v Vec2) String() string       { return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y) }
func (v Vec2) IsValid() bool        { return isFinite(v.X) && isFinite(v.Y) }
func (v Vec2) In(s Size) bool       { return v.X > 0 && v.X < s.W && v.Y > 0 && v.Y < s.H }
func isFinite(f float64) bool       { return !math.IsNaN(f) && !math.IsInf(f, 0) }

type Size struct {
	W, H float64
}

func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// RGBA is a straight (non-premultiplied) colour; A is in [0, 1].
type RGBA struct {
	R, G, B uint8
	A       float64
}

func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = clamp01(a)
	return c
}

func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(clamp01(c.A) * 255))}
}

// Hex renders the colour as #rrggbb, dropping alpha.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex reads #rgb or #rrggbb into an opaque colour.
func ParseHex(s string) (RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGBA{}, fmt.Errorf("%w: colour %q", ErrParameterBounds, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: colour %q", ErrParameterBounds, s)
	}
	return RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 1}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 { return clamp01(v) }

// GradientStop is an alpha at an offset in [0, 1] along a gradient radius.
type GradientStop struct {
	Offset float64 `yaml:"offset"`
	Alpha  float64 `yaml:"alpha"`
}

// AlphaAt linearly interpolates the stops at offset t. Stops must be sorted.
func AlphaAt(stops []GradientStop, t float64) float64 {
	if len(stops) == 0 {
		return 0
	}
	if t <= stops[0].Offset {
		return stops[0].Alpha
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Alpha
			}
			f := (t - a.Offset) / span
			return a.Alpha + (b.Alpha-a.Alpha)*f
		}
	}
	return stops[len(stops)-1].Alpha
}

// Surface is an immediate-mode 2D raster target.
type Surface interface {
	Size() Size
	Resize(s Size)
	Clear()
	StrokeLine(a, b Vec2, width float64, c RGBA)
	FillCircle(center Vec2, r float64, c RGBA)
	// FillRadialGradient fills the disc of the given radius; c.A is ignored
	// and the alpha comes from stops.
	FillRadialGradient(center Vec2, radius float64, c RGBA, stops []GradientStop)
}

// Presenter is implemented by surfaces that buffer drawing until the frame
// is complete.
type Presenter interface {
	Present()
}
