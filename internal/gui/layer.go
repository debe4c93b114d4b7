// Package gui shows the page in a raylib window: each field draws into its
// own render texture, and the textures are composited every frame.
package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/plexus/internal/dynamo"
)

// gradientRings is how many bands approximate a radial gradient.
const gradientRings = 24

// Layer is a dynamo.Surface backed by a RenderTexture2D. Clear opens the
// texture for drawing and Present closes it, so a field's Render runs
// between the two.
type Layer struct {
	size    dynamo.Size
	target  rl.RenderTexture2D
	loaded  bool
	drawing bool
}

func NewLayer(size dynamo.Size) *Layer {
	l := &Layer{}
	l.Resize(size)
	return l
}

func (l *Layer) Size() dynamo.Size { return l.size }

func (l *Layer) Resize(s dynamo.Size) {
	l.size = s
	if l.loaded {
		rl.UnloadRenderTexture(l.target)
		l.loaded = false
	}
	w, h := int32(math.Ceil(s.W)), int32(math.Ceil(s.H))
	if w <= 0 || h <= 0 {
		return
	}
	l.target = rl.LoadRenderTexture(w, h)
	l.loaded = true
}

func (l *Layer) Clear() {
	if !l.loaded {
		return
	}
	if !l.drawing {
		rl.BeginTextureMode(l.target)
		l.drawing = true
	}
	rl.ClearBackground(rl.Blank)
}

func (l *Layer) Present() {
	if l.drawing {
		rl.EndTextureMode()
		l.drawing = false
	}
}

func (l *Layer) StrokeLine(a, b dynamo.Vec2, width float64, c dynamo.RGBA) {
	if !l.drawing {
		return
	}
	rl.DrawLineEx(vec(a), vec(b), float32(width), toColor(c))
}

func (l *Layer) FillCircle(center dynamo.Vec2, r float64, c dynamo.RGBA) {
	if !l.drawing {
		return
	}
	rl.DrawCircleV(vec(center), float32(r), toColor(c))
}

func (l *Layer) FillRadialGradient(center dynamo.Vec2, radius float64, c dynamo.RGBA, stops []dynamo.GradientStop) {
	if !l.drawing {
		return
	}
	for _, band := range rings(radius, stops, gradientRings) {
		if band.alpha <= 0 {
			continue
		}
		rl.DrawRing(vec(center), float32(band.inner), float32(band.outer), 0, 360, 48, toColor(c.WithAlpha(band.alpha)))
	}
}

// DrawAt composites the layer with its top-left corner at pos.
func (l *Layer) DrawAt(pos dynamo.Vec2) {
	if !l.loaded {
		return
	}
	w, h := float32(l.target.Texture.Width), float32(l.target.Texture.Height)
	// render textures are stored upside down
	src := rl.NewRectangle(0, 0, w, -h)
	rl.DrawTextureRec(l.target.Texture, src, vec(pos), rl.White)
}

func (l *Layer) Unload() {
	if l.loaded {
		rl.UnloadRenderTexture(l.target)
		l.loaded = false
	}
}

type band struct {
	inner, outer float64
	alpha        float64
}

// rings splits a gradient into n equal-width annuli, each coloured with
// the alpha at its mid radius.
func rings(radius float64, stops []dynamo.GradientStop, n int) []band {
	if radius <= 0 || n <= 0 {
		return nil
	}
	out := make([]band, n)
	step := radius / float64(n)
	for i := range out {
		inner := float64(i) * step
		out[i] = band{
			inner: inner,
			outer: inner + step,
			alpha: dynamo.AlphaAt(stops, (inner+step/2)/radius),
		}
	}
	return out
}

func vec(p dynamo.Vec2) rl.Vector2 { return rl.NewVector2(float32(p.X), float32(p.Y)) }

func toColor(c dynamo.RGBA) rl.Color {
	n := c.NRGBA()
	return rl.NewColor(n.R, n.G, n.B, n.A)
}
