package sim

import (
	"log"
	"math/rand"
	"time"

	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/dynamo"
	"github.com/san-kum/plexus/internal/physics"
	"github.com/san-kum/plexus/internal/pointer"
	"github.com/san-kum/plexus/internal/viewport"
)

// Observer is notified after every rendered frame.
type Observer interface {
	OnFrame(f *physics.Field, frame int)
}

type Options struct {
	// Mapper converts screen pointer coordinates to surface coordinates.
	// Defaults to pointer.Identity.
	Mapper pointer.Mapper
	// Measure reports the container size. Defaults to the surface size.
	Measure func() dynamo.Size
	Rand    *rand.Rand
	// Quiet suppresses lifecycle logging.
	Quiet bool
}

// Driver runs one particle field on a host: each frame it reads the pointer
// once, advances the field, renders it and asks for the next frame.
type Driver struct {
	cfg       config.Field
	host      Host
	surface   dynamo.Surface
	field     *physics.Field
	tracker   *pointer.Tracker
	viewport  *viewport.Adapter
	mapper    pointer.Mapper
	observers []Observer
	quiet     bool

	running     bool
	initialized bool
	pending     FrameID
	hasPending  bool
	removers    []func()
	frames      int
	lastTS      time.Duration
}

func New(host Host, surface dynamo.Surface, cfg config.Field, opts Options) *Driver {
	if opts.Mapper == nil {
		opts.Mapper = pointer.Identity
	}
	if opts.Measure == nil {
		opts.Measure = surface.Size
	}
	d := &Driver{
		cfg:     cfg,
		host:    host,
		surface: surface,
		field:   physics.NewField(cfg, opts.Rand),
		tracker: pointer.NewTracker(),
		mapper:  opts.Mapper,
		quiet:   opts.Quiet,
	}
	d.viewport = viewport.New(surface, opts.Measure, cfg.TrackScrollHeight, cfg.HeightThreshold)
	d.viewport.OnResize = d.resized
	return d
}

func (d *Driver) Name() string                 { return d.cfg.Name }
func (d *Driver) Field() *physics.Field        { return d.field }
func (d *Driver) Tracker() *pointer.Tracker    { return d.tracker }
func (d *Driver) Viewport() *viewport.Adapter  { return d.viewport }
func (d *Driver) Surface() dynamo.Surface      { return d.surface }
func (d *Driver) Running() bool                { return d.running }
func (d *Driver) Frames() int                  { return d.frames }
func (d *Driver) LastTimestamp() time.Duration { return d.lastTS }
func (d *Driver) AddObserver(o Observer)       { d.observers = append(d.observers, o) }

// Start sizes the surface, seeds the field on first use, registers the
// input listeners and schedules the first frame.
func (d *Driver) Start() error {
	if d.running {
		return dynamo.ErrAlreadyRunning
	}

	d.viewport.Refresh()
	size := d.surface.Size()
	if !d.initialized {
		d.field.Initialize(d.cfg.Count, size)
		d.initialized = true
	} else {
		d.field.SetSize(size)
	}

	d.removers = append(d.removers,
		d.host.AddListener(PointerMove, func(e Event) { d.tracker.Set(e.X, e.Y) }),
		d.host.AddListener(Resize, func(Event) { d.viewport.Refresh() }),
	)
	if d.cfg.TrackScrollHeight {
		d.removers = append(d.removers, d.host.AddListener(Scroll, func(Event) { d.viewport.RefreshHeight() }))
	}

	d.running = true
	d.schedule()
	d.logf("started %d particles on %.0fx%.0f", len(d.field.Particles()), size.W, size.H)
	return nil
}

// Stop removes every listener, cancels the pending frame and forgets the
// pointer, so a restarted driver waits for a fresh event. It is safe to
// call more than once.
func (d *Driver) Stop() {
	if !d.running {
		return
	}
	d.running = false
	for _, remove := range d.removers {
		remove()
	}
	d.removers = nil
	d.tracker.Reset()
	if d.hasPending {
		d.host.CancelFrame(d.pending)
		d.hasPending = false
	}
	d.logf("stopped after %d frames", d.frames)
}

func (d *Driver) schedule() {
	d.pending = d.host.RequestFrame(d.frame)
	d.hasPending = true
}

func (d *Driver) frame(ts time.Duration) {
	d.hasPending = false
	if !d.running {
		return
	}
	d.lastTS = ts

	p := d.mapper(d.tracker.Position())
	d.field.Advance(p)
	d.field.Render(d.surface)
	if pr, ok := d.surface.(dynamo.Presenter); ok {
		pr.Present()
	}

	d.frames++
	for _, o := range d.observers {
		o.OnFrame(d.field, d.frames)
	}

	if d.running {
		d.schedule()
	}
}

func (d *Driver) resized(old, cur dynamo.Size) {
	if d.cfg.RedistributeOnResize && d.initialized {
		d.field.Initialize(d.cfg.Count, cur)
	} else {
		d.field.SetSize(cur)
	}
	if d.initialized {
		d.logf("resized %.0fx%.0f -> %.0fx%.0f", old.W, old.H, cur.W, cur.H)
	}
}

func (d *Driver) logf(format string, args ...any) {
	if d.quiet {
		return
	}
	log.Printf("[Driver:%s] "+format, append([]any{d.cfg.Name}, args...)...)
}
