// Package export turns rendered frames into files: PNG and SVG snapshots
// and animated GIFs.
package export

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/san-kum/plexus/internal/dynamo"
)

// circleSegments is the polygon resolution used for disks.
const circleSegments = 24

// Background is the page colour frames are composited over.
var Background = dynamo.RGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 1}

// Raster is a software Surface backed by an image.RGBA.
type Raster struct {
	size dynamo.Size
	bg   color.NRGBA
	img  *image.RGBA
	z    *vector.Rasterizer
}

func NewRaster(size dynamo.Size, bg dynamo.RGBA) *Raster {
	r := &Raster{bg: bg.NRGBA()}
	r.Resize(size)
	return r
}

func (r *Raster) Size() dynamo.Size { return r.size }

func (r *Raster) Resize(s dynamo.Size) {
	r.size = s
	w, h := int(math.Ceil(s.W)), int(math.Ceil(s.H))
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	r.z = vector.NewRasterizer(w, h)
	r.z.DrawOp = draw.Over
	r.Clear()
}

func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.bg), image.Point{}, draw.Src)
}

// StrokeLine fills the quad around segment ab.
func (r *Raster) StrokeLine(a, b dynamo.Vec2, width float64, c dynamo.RGBA) {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 || width <= 0 {
		return
	}
	n := dynamo.Vec2{X: -d.Y / l, Y: d.X / l}.Scale(width / 2)
	r.fill([]dynamo.Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}, image.NewUniform(c.NRGBA()))
}

func (r *Raster) FillCircle(center dynamo.Vec2, radius float64, c dynamo.RGBA) {
	if radius <= 0 {
		return
	}
	r.fill(circle(center, radius, circleSegments), image.NewUniform(c.NRGBA()))
}

func (r *Raster) FillRadialGradient(center dynamo.Vec2, radius float64, c dynamo.RGBA, stops []dynamo.GradientStop) {
	if radius <= 0 {
		return
	}
	src := &radial{center: center, radius: radius, c: c, stops: stops}
	r.fill(circle(center, radius, circleSegments*2), src)
}

func (r *Raster) fill(poly []dynamo.Vec2, src image.Image) {
	b := r.img.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	r.z.DrawOp = draw.Over
	r.z.MoveTo(float32(poly[0].X), float32(poly[0].Y))
	for _, p := range poly[1:] {
		r.z.LineTo(float32(p.X), float32(p.Y))
	}
	r.z.ClosePath()
	r.z.Draw(r.img, b, src, image.Point{})
}

func circle(c dynamo.Vec2, radius float64, n int) []dynamo.Vec2 {
	pts := make([]dynamo.Vec2, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = dynamo.Vec2{X: c.X + radius*math.Cos(a), Y: c.Y + radius*math.Sin(a)}
	}
	return pts
}

// radial is an image source whose alpha follows gradient stops outward
// from center.
type radial struct {
	center dynamo.Vec2
	radius float64
	c      dynamo.RGBA
	stops  []dynamo.GradientStop
}

func (g *radial) ColorModel() color.Model { return color.NRGBAModel }

func (g *radial) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (g *radial) At(x, y int) color.Color {
	p := dynamo.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
	t := p.Dist(g.center) / g.radius
	return g.c.WithAlpha(dynamo.AlphaAt(g.stops, t)).NRGBA()
}

// Scaled returns a copy of the current frame resized to width pixels,
// keeping the aspect ratio.
func (r *Raster) Scaled(width int) *image.RGBA {
	sb := r.img.Bounds()
	if width <= 0 || width == sb.Dx() || sb.Dx() == 0 {
		out := image.NewRGBA(sb)
		draw.Draw(out, sb, r.img, sb.Min, draw.Src)
		return out
	}
	h := int(math.Round(float64(sb.Dy()) * float64(width) / float64(sb.Dx())))
	if h < 1 {
		h = 1
	}
	out := image.NewRGBA(image.Rect(0, 0, width, h))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), r.img, sb, draw.Src, nil)
	return out
}
