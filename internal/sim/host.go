package sim

import (
	"fmt"
	"time"
)

type EventKind int

const (
	PointerMove EventKind = iota
	Resize
	Scroll
)

func (k EventKind) String() string {
	switch k {
	case PointerMove:
		return "pointermove"
	case Resize:
		return "resize"
	case Scroll:
		return "scroll"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is an input notification. X and Y carry screen coordinates for
// PointerMove and are unused otherwise.
type Event struct {
	Kind EventKind
	X, Y float64
}

type Listener func(Event)

// FrameFunc receives a monotonic timestamp measured from host start.
type FrameFunc func(ts time.Duration)

type FrameID uint64

// Scheduler is the frame-synchronised callback primitive. A requested
// callback runs once, on the next frame.
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

// EventSource registers listeners; the returned func removes the listener.
type EventSource interface {
	AddListener(kind EventKind, fn Listener) (remove func())
}

// Host is everything a Driver needs from its environment. Implementations
// run every callback on a single thread of control.
type Host interface {
	Scheduler
	EventSource
}

type pendingFrame struct {
	id FrameID
	fn FrameFunc
}

type registered struct {
	id uint64
	fn Listener
}

// callbacks is the bookkeeping shared by hosts. Not safe for concurrent use.
type callbacks struct {
	nextFrame    FrameID
	nextListener uint64
	frames       []pendingFrame
	listeners    map[EventKind][]registered
}

func (c *callbacks) RequestFrame(fn FrameFunc) FrameID {
	c.nextFrame++
	c.frames = append(c.frames, pendingFrame{id: c.nextFrame, fn: fn})
	return c.nextFrame
}

func (c *callbacks) CancelFrame(id FrameID) {
	for i, f := range c.frames {
		if f.id == id {
			c.frames = append(c.frames[:i], c.frames[i+1:]...)
			return
		}
	}
}

func (c *callbacks) AddListener(kind EventKind, fn Listener) func() {
	if c.listeners == nil {
		c.listeners = make(map[EventKind][]registered)
	}
	c.nextListener++
	id := c.nextListener
	c.listeners[kind] = append(c.listeners[kind], registered{id: id, fn: fn})
	return func() {
		ls := c.listeners[kind]
		for i, l := range ls {
			if l.id == id {
				c.listeners[kind] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// fire runs the frames pending at call time; frames requested while
// running wait for the next call.
func (c *callbacks) fire(ts time.Duration) int {
	due := c.frames
	c.frames = nil
	for _, f := range due {
		f.fn(ts)
	}
	return len(due)
}

func (c *callbacks) deliver(e Event) {
	ls := c.listeners[e.Kind]
	// copy so listeners may remove themselves
	snapshot := make([]registered, len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		l.fn(e)
	}
}

func (c *callbacks) Pending() int { return len(c.frames) }

func (c *callbacks) Listeners(kind EventKind) int { return len(c.listeners[kind]) }
