package scene

import (
	"errors"
	"math/rand"

	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/dynamo"
	"github.com/san-kum/plexus/internal/pointer"
	"github.com/san-kum/plexus/internal/sim"
)

// Host is a sim.Host that can also be fed events.
type Host interface {
	sim.Host
	Dispatch(e sim.Event)
}

type Options struct {
	Seed  int64
	Quiet bool
}

// Scene owns the page and the two drivers that render onto it.
type Scene struct {
	Page       *Page
	Background *sim.Driver
	Hero       *sim.Driver
	host       Host
}

// New wires the background driver to a document-sized surface that maps
// the pointer by scroll offset, and the hero driver to its container.
func New(host Host, cfg *config.Config, bg, hero dynamo.Surface, opts Options) *Scene {
	page := NewPage(cfg.Window)
	s := &Scene{Page: page, host: host}

	s.Background = sim.New(host, bg, cfg.Background, sim.Options{
		Mapper:  pointer.ScrollOffset(func() float64 { return page.ScrollY }),
		Measure: page.BackgroundSize,
		Rand:    rand.New(rand.NewSource(opts.Seed)),
		Quiet:   opts.Quiet,
	})
	s.Hero = sim.New(host, hero, cfg.Hero, sim.Options{
		Mapper:  pointer.ContainerOrigin(page.HeroOnScreen),
		Measure: func() dynamo.Size { return page.Hero.Size() },
		Rand:    rand.New(rand.NewSource(opts.Seed + 1)),
		Quiet:   opts.Quiet,
	})
	return s
}

func (s *Scene) Drivers() []*sim.Driver { return []*sim.Driver{s.Background, s.Hero} }

// Start starts both drivers; an already running driver is not an error.
func (s *Scene) Start() error {
	for _, d := range s.Drivers() {
		if err := d.Start(); err != nil && !errors.Is(err, dynamo.ErrAlreadyRunning) {
			return err
		}
	}
	return nil
}

func (s *Scene) Stop() {
	for _, d := range s.Drivers() {
		d.Stop()
	}
}

// PointerMove reports the pointer in viewport coordinates.
func (s *Scene) PointerMove(x, y float64) {
	s.host.Dispatch(sim.Event{Kind: sim.PointerMove, X: x, Y: y})
}

func (s *Scene) Resize(viewport dynamo.Size) {
	if viewport == s.Page.Viewport {
		return
	}
	s.Page.SetViewport(viewport)
	s.host.Dispatch(sim.Event{Kind: sim.Resize})
}

func (s *Scene) ScrollBy(dy float64) {
	before := s.Page.ScrollY
	s.Page.ScrollBy(dy)
	if s.Page.ScrollY != before {
		s.host.Dispatch(sim.Event{Kind: sim.Scroll})
	}
}

// SetDocumentHeight changes the content height; the background follows on
// the next scroll, as a page would notice.
func (s *Scene) SetDocumentHeight(h float64) {
	s.Page.SetDocumentHeight(h)
}

// BackgroundOffset is where the background surface's origin sits in the
// viewport.
func (s *Scene) BackgroundOffset() dynamo.Vec2 {
	return dynamo.Vec2{X: 0, Y: -s.Page.ScrollY}
}
