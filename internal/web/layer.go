// Package web runs the page as an ebiten game. The same code builds for
// desktop and for GOOS=js GOARCH=wasm.
package web

import (
	"fmt"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/plexus/internal/dynamo"
	"github.com/san-kum/plexus/internal/export"
)

// Layer is a dynamo.Surface drawing into an offscreen ebiten image.
type Layer struct {
	size   dynamo.Size
	img    *ebiten.Image
	sprite *ebiten.Image
	key    string
}

func NewLayer(size dynamo.Size) *Layer {
	l := &Layer{}
	l.Resize(size)
	return l
}

func (l *Layer) Size() dynamo.Size    { return l.size }
func (l *Layer) Image() *ebiten.Image { return l.img }

func (l *Layer) Resize(s dynamo.Size) {
	l.size = s
	if l.img != nil {
		l.img.Deallocate()
		l.img = nil
	}
	w, h := int(math.Ceil(s.W)), int(math.Ceil(s.H))
	if w <= 0 || h <= 0 {
		return
	}
	l.img = ebiten.NewImage(w, h)
}

func (l *Layer) Clear() {
	if l.img != nil {
		l.img.Clear()
	}
}

func (l *Layer) StrokeLine(a, b dynamo.Vec2, width float64, c dynamo.RGBA) {
	if l.img == nil {
		return
	}
	vector.StrokeLine(l.img, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), c.NRGBA(), true)
}

func (l *Layer) FillCircle(center dynamo.Vec2, r float64, c dynamo.RGBA) {
	if l.img == nil {
		return
	}
	vector.DrawFilledCircle(l.img, float32(center.X), float32(center.Y), float32(r), c.NRGBA(), true)
}

// FillRadialGradient stamps a cached gradient sprite; the sprite is rebuilt
// only when radius, colour or stops change.
func (l *Layer) FillRadialGradient(center dynamo.Vec2, radius float64, c dynamo.RGBA, stops []dynamo.GradientStop) {
	if l.img == nil || radius <= 0 {
		return
	}
	key := fmt.Sprintf("%.1f|%v|%v", radius, c, stops)
	if key != l.key || l.sprite == nil {
		if l.sprite != nil {
			l.sprite.Deallocate()
		}
		l.sprite = ebiten.NewImageFromImage(GradientImage(radius, c, stops))
		l.key = key
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(center.X-radius, center.Y-radius)
	l.img.DrawImage(l.sprite, op)
}

// GradientImage rasterises a radial gradient centred in a 2r square.
func GradientImage(radius float64, c dynamo.RGBA, stops []dynamo.GradientStop) image.Image {
	d := 2 * radius
	r := export.NewRaster(dynamo.Size{W: d, H: d}, dynamo.RGBA{})
	r.FillRadialGradient(dynamo.Vec2{X: radius, Y: radius}, radius, c, stops)
	return r.Image()
}
