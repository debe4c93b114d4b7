// Package automation replays scripted input against a field without a
// window, and sweeps field parameters.
package automation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/dynamo"
	"github.com/san-kum/plexus/internal/metrics"
	"github.com/san-kum/plexus/internal/physics"
	"github.com/san-kum/plexus/internal/sim"
)

// ErrUnknownPreset is returned when a scenario names a preset that does
// not exist.
var ErrUnknownPreset = errors.New("automation: unknown preset")

// frameTime is the timestamp spacing of replayed frames.
const frameTime = time.Second / 60

// Scenario defines a scripted run of one field
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Preset      string  `yaml:"preset"`
	Seed        int64   `yaml:"seed"`
	Frames      int     `yaml:"frames"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	// Field overrides the preset entirely when set.
	Field  *config.Field `yaml:"field,omitempty"`
	Events []Event       `yaml:"events"`
}

// Event is delivered just before frame Frame is stepped. Kind is one of
// pointer, resize or scroll; resize and scroll carry the new container
// size in Width and Height.
type Event struct {
	Frame  int     `yaml:"frame"`
	Kind   string  `yaml:"kind"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}

func parseKind(kind string) (sim.EventKind, error) {
	switch kind {
	case "pointer", "pointermove":
		return sim.PointerMove, nil
	case "resize":
		return sim.Resize, nil
	case "scroll":
		return sim.Scroll, nil
	}
	return 0, fmt.Errorf("event kind %q: %w", kind, dynamo.ErrParameterBounds)
}

// FieldConfig resolves the field a scenario runs.
func (s *Scenario) FieldConfig() (config.Field, error) {
	if s.Field != nil {
		return *s.Field, nil
	}
	name := s.Preset
	if name == "" {
		name = "background"
	}
	f := config.GetPreset(name)
	if f == nil {
		return config.Field{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return *f, nil
}

type Options struct {
	// Surface receives every rendered frame; nil renders nowhere.
	Surface   dynamo.Surface
	Metrics   []metrics.Metric
	Observers []sim.Observer
	Quiet     bool
}

type Result struct {
	Name   string
	Frames int
	Series map[string][]float64
	Field  *physics.Field
}

// Replay drives a manual host frame by frame, dispatching each event at
// its frame, and returns the metric series. It stops early with ctx.Err()
// when ctx is cancelled.
func Replay(ctx context.Context, s *Scenario, opts Options) (*Result, error) {
	cfg, err := s.FieldConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	size := dynamo.Size{W: s.Width, H: s.Height}
	if size.Empty() {
		size = dynamo.Size{W: config.DefaultWidth, H: config.DefaultHeight}
	}

	events := make([]Event, len(s.Events))
	copy(events, s.Events)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Frame < events[j].Frame })
	kinds := make([]sim.EventKind, len(events))
	for i, e := range events {
		if kinds[i], err = parseKind(e.Kind); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
	}

	surface := opts.Surface
	if surface == nil {
		surface = &blank{}
	}
	ms := opts.Metrics
	if ms == nil {
		ms = metrics.Standard()
	}

	host := sim.NewManual()
	d := sim.New(host, surface, cfg, sim.Options{
		Measure: func() dynamo.Size { return size },
		Rand:    rand.New(rand.NewSource(s.Seed)),
		Quiet:   opts.Quiet,
	})
	for _, m := range ms {
		d.AddObserver(m)
	}
	for _, o := range opts.Observers {
		d.AddObserver(o)
	}
	if err := d.Start(); err != nil {
		return nil, err
	}
	defer d.Stop()

	next := 0
	for frame := 1; frame <= s.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for ; next < len(events) && events[next].Frame <= frame; next++ {
			e := events[next]
			if kinds[next] != sim.PointerMove && (e.Width > 0 || e.Height > 0) {
				size = dynamo.Size{W: orDefault(e.Width, size.W), H: orDefault(e.Height, size.H)}
			}
			host.Dispatch(sim.Event{Kind: kinds[next], X: e.X, Y: e.Y})
		}
		host.Step(time.Duration(frame) * frameTime)
	}

	res := &Result{
		Name:   s.Name,
		Frames: d.Frames(),
		Series: make(map[string][]float64, len(ms)),
		Field:  d.Field(),
	}
	for _, m := range ms {
		res.Series[m.Name()] = m.Series()
	}
	return res, nil
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

// blank is a surface that only remembers its size.
type blank struct{ size dynamo.Size }

func (b *blank) Size() dynamo.Size                                       { return b.size }
func (b *blank) Resize(s dynamo.Size)                                    { b.size = s }
func (b *blank) Clear()                                                  {}
func (b *blank) StrokeLine(a, c dynamo.Vec2, w float64, col dynamo.RGBA) {}
func (b *blank) FillCircle(p dynamo.Vec2, r float64, col dynamo.RGBA)    {}
func (b *blank) FillRadialGradient(p dynamo.Vec2, r float64, col dynamo.RGBA, st []dynamo.GradientStop) {
}
