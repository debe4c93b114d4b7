// Package scene lays out a page with a full-document background field and
// a hero field, and runs both on one host.
package scene

import (
	"math"

	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/dynamo"
)

// Rect is an axis-aligned box in document coordinates.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Origin() dynamo.Vec2 { return dynamo.Vec2{X: r.X, Y: r.Y} }
func (r Rect) Size() dynamo.Size   { return dynamo.Size{W: r.W, H: r.H} }

// Page is the scrolling document both fields live in.
type Page struct {
	Viewport       dynamo.Size
	ScrollY        float64
	DocumentHeight float64
	Hero           Rect

	heroFraction float64
	docViewports float64
}

// NewPage builds a page from the window settings. The hero spans the full
// width at the top of the document. Without a fixed document height the
// document is three viewports tall and follows viewport resizes.
func NewPage(w config.Window) *Page {
	p := &Page{heroFraction: w.HeroFraction, docViewports: 3}
	if p.heroFraction <= 0 {
		p.heroFraction = config.DefaultHeroFraction
	}
	p.SetViewport(dynamo.Size{W: float64(w.Width), H: float64(w.Height)})
	if w.DocumentHeight > 0 {
		p.SetDocumentHeight(w.DocumentHeight)
	}
	return p
}

// SetViewport resizes the window and relays out the hero.
func (p *Page) SetViewport(s dynamo.Size) {
	p.Viewport = s
	p.Hero = Rect{X: 0, Y: 0, W: s.W, H: math.Round(s.H * p.heroFraction)}
	if p.docViewports > 0 {
		p.DocumentHeight = p.docViewports * s.H
	}
	p.DocumentHeight = math.Max(p.DocumentHeight, s.H)
	p.ScrollTo(p.ScrollY)
}

// SetDocumentHeight fixes the document height, never below the viewport.
func (p *Page) SetDocumentHeight(h float64) {
	p.docViewports = 0
	p.DocumentHeight = math.Max(h, p.Viewport.H)
	p.ScrollTo(p.ScrollY)
}

func (p *Page) MaxScroll() float64 {
	return math.Max(0, p.DocumentHeight-p.Viewport.H)
}

// ScrollTo clamps y to the scrollable range.
func (p *Page) ScrollTo(y float64) {
	p.ScrollY = math.Min(math.Max(y, 0), p.MaxScroll())
}

func (p *Page) ScrollBy(dy float64) { p.ScrollTo(p.ScrollY + dy) }

// HeroOnScreen is the hero's top-left corner in viewport coordinates.
func (p *Page) HeroOnScreen() dynamo.Vec2 {
	return dynamo.Vec2{X: p.Hero.X, Y: p.Hero.Y - p.ScrollY}
}

// BackgroundSize is the size of the document-spanning surface.
func (p *Page) BackgroundSize() dynamo.Size {
	return dynamo.Size{W: p.Viewport.W, H: p.DocumentHeight}
}
