package physics

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/dynamo"
)

type Particle struct {
	X, Y   float64
	VX, VY float64
	R      float64
}

func (p Particle) Pos() dynamo.Vec2 { return dynamo.Vec2{X: p.X, Y: p.Y} }
func (p Particle) Speed() float64   { return math.Hypot(p.VX, p.VY) }

// Connection is a line between particles I and J, drawn from their
// positions before the move.
type Connection struct {
	I, J  int
	A, B  dynamo.Vec2
	Alpha float64
}

// Link is a line from a particle to the pointer.
type Link struct {
	Index int
	From  dynamo.Vec2
	Alpha float64
}

// Frame is what Advance computed and Render draws.
type Frame struct {
	Connections []Connection
	Links       []Link
	Glow        []float64
	Pointer     dynamo.Vec2
	Spotlight   bool
}

// Field is a plexus of drifting particles attracted to a pointer.
type Field struct {
	cfg       config.Field
	color     dynamo.RGBA
	rng       *rand.Rand
	size      dynamo.Size
	particles []Particle
	frame     Frame
}

func NewField(cfg config.Field, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Field{cfg: cfg, color: cfg.Style.RGBA(), rng: rng}
}

func (f *Field) Config() config.Field      { return f.cfg }
func (f *Field) Size() dynamo.Size         { return f.size }
func (f *Field) Particles() []Particle     { return f.particles }
func (f *Field) LastFrame() *Frame         { return &f.frame }
func (f *Field) SetSize(s dynamo.Size)     { f.size = s }
func (f *Field) SetParticles(p []Particle) { f.particles = p }

// Initialize replaces every particle with a fresh random one inside size.
func (f *Field) Initialize(count int, size dynamo.Size) {
	f.size = size
	f.particles = make([]Particle, count)
	span := f.cfg.MaxRadius - f.cfg.MinRadius
	for i := range f.particles {
		f.particles[i] = Particle{
			X:  f.rng.Float64() * size.W,
			Y:  f.rng.Float64() * size.H,
			VX: (f.rng.Float64() - 0.5) * 2 * f.cfg.MaxSpeed,
			VY: (f.rng.Float64() - 0.5) * 2 * f.cfg.MaxSpeed,
			R:  f.rng.Float64()*span + f.cfg.MinRadius,
		}
	}
	f.frame = Frame{}
}

// ConnectionAlpha is the opacity of a line between two particles d apart.
// Distances at or beyond the threshold produce no line.
func ConnectionAlpha(d, threshold, scale float64) (float64, bool) {
	if d >= threshold {
		return 0, false
	}
	return dynamo.Clamp01(1-d/threshold) * scale, true
}

// Advance steps every particle once against the pointer p, given in
// surface coordinates, and records what Render should draw.
func (f *Field) Advance(p dynamo.Vec2) {
	cfg := f.cfg
	n := len(f.particles)

	fr := &f.frame
	fr.Connections = fr.Connections[:0]
	fr.Links = fr.Links[:0]
	if cap(fr.Glow) < n {
		fr.Glow = make([]float64, n)
	}
	fr.Glow = fr.Glow[:n]
	fr.Pointer = p
	fr.Spotlight = p.In(f.size)

	// pairwise, O(n^2), fine for a few hundred points
	for i := 0; i < n; i++ {
		a := f.particles[i].Pos()
		for j := i + 1; j < n; j++ {
			b := f.particles[j].Pos()
			if alpha, ok := ConnectionAlpha(a.Dist(b), cfg.ConnectionDistance, cfg.Style.ConnectionAlpha); ok {
				fr.Connections = append(fr.Connections, Connection{I: i, J: j, A: a, B: b, Alpha: alpha})
			}
		}
	}

	for i := range f.particles {
		pt := &f.particles[i]
		dx, dy := p.X-pt.X, p.Y-pt.Y
		dist := math.Sqrt(dx*dx + dy*dy)

		if dist < cfg.PointerRadius && dist > 0 {
			force := (cfg.PointerRadius - dist) / cfg.PointerRadius * cfg.PointerForce
			pt.VX += dx / dist * force
			pt.VY += dy / dist * force
			fr.Links = append(fr.Links, Link{
				Index: i,
				From:  pt.Pos(),
				Alpha: (1 - dist/cfg.PointerRadius) * cfg.Style.LinkAlpha,
			})
		}

		if dist < cfg.PointerRadius {
			fr.Glow[i] = (1-dist/cfg.PointerRadius)*cfg.Style.GlowRange + cfg.Style.GlowBase
		} else {
			fr.Glow[i] = cfg.Style.GlowIdle
		}

		pt.X += pt.VX
		pt.Y += pt.VY
		pt.VX *= cfg.Damping
		pt.VY *= cfg.Damping

		pt.X = wrap(pt.X, f.size.W)
		pt.Y = wrap(pt.Y, f.size.H)
	}
}

// wrap maps v into [0, max). Values far outside come back by whole spans.
func wrap(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	if v >= 0 && v < max {
		return v
	}
	v = math.Mod(v, max)
	if v < 0 {
		v += max
	}
	if v >= max {
		v = 0
	}
	return v
}

// Render draws the last advanced frame: connections, then each particle's
// pointer link and disk, then the pointer spotlight.
func (f *Field) Render(s dynamo.Surface) {
	cfg := f.cfg.Style
	fr := &f.frame

	s.Clear()

	for _, c := range fr.Connections {
		s.StrokeLine(c.A, c.B, cfg.ConnectionWidth, f.color.WithAlpha(c.Alpha))
	}

	links := fr.Links
	for i, pt := range f.particles {
		for len(links) > 0 && links[0].Index == i {
			s.StrokeLine(links[0].From, fr.Pointer, cfg.LinkWidth, f.color.WithAlpha(links[0].Alpha))
			links = links[1:]
		}
		glow := cfg.GlowIdle
		if i < len(fr.Glow) {
			glow = fr.Glow[i]
		}
		s.FillCircle(pt.Pos(), pt.R, f.color.WithAlpha(glow))
	}

	if fr.Spotlight && len(cfg.Gradient) > 0 {
		s.FillRadialGradient(fr.Pointer, f.cfg.PointerRadius, f.color, cfg.Gradient)
	}
}

// Validate reports the first particle with a non-finite component.
func (f *Field) Validate() error {
	for i, p := range f.particles {
		if !p.Pos().IsValid() || !(dynamo.Vec2{X: p.VX, Y: p.VY}).IsValid() || math.IsNaN(p.R) {
			return &dynamo.ParticleError{
				Index:   i,
				Wrapped: fmt.Errorf("particle %d: %w", i, dynamo.ErrInvalidState),
			}
		}
	}
	return nil
}

// MeanSpeed is the average velocity magnitude over all particles.
func (f *Field) MeanSpeed() float64 {
	if len(f.particles) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range f.particles {
		sum += p.Speed()
	}
	return sum / float64(len(f.particles))
}
