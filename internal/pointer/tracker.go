// Package pointer keeps the last pointer position seen by a page and maps
// it into the coordinate space of a particular surface.
package pointer

import (
	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/dynamo"
)

// Sentinel is far outside any plausible surface, so no pointer influence is
// computed before the first real event.
var Sentinel = dynamo.Vec2{X: config.DefaultSentinel, Y: config.DefaultSentinel}

// Tracker holds raw screen coordinates. It does no smoothing.
type Tracker struct {
	pos  dynamo.Vec2
	seen bool
}

func NewTracker() *Tracker {
	return &Tracker{pos: Sentinel}
}

func (t *Tracker) Set(x, y float64) {
	t.pos = dynamo.Vec2{X: x, Y: y}
	t.seen = true
}

func (t *Tracker) Position() dynamo.Vec2 { return t.pos }
func (t *Tracker) Seen() bool            { return t.seen }

func (t *Tracker) Reset() {
	t.pos = Sentinel
	t.seen = false
}

// Mapper converts screen coordinates to surface coordinates. It is called
// once per frame so it may read layout state that changes between frames.
type Mapper func(screen dynamo.Vec2) dynamo.Vec2

func Identity(p dynamo.Vec2) dynamo.Vec2 { return p }

// ScrollOffset maps into a surface that spans the whole document: the
// vertical scroll offset is added.
func ScrollOffset(scrollY func() float64) Mapper {
	return func(p dynamo.Vec2) dynamo.Vec2 {
		return dynamo.Vec2{X: p.X, Y: p.Y + scrollY()}
	}
}

// ContainerOrigin maps into a surface whose container's bounding box
// starts at origin() in screen space.
func ContainerOrigin(origin func() dynamo.Vec2) Mapper {
	return func(p dynamo.Vec2) dynamo.Vec2 {
		return p.Sub(origin())
	}
}
