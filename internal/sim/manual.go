package sim

import "time"

// Manual is a host stepped explicitly by its owner. Backends whose own
// render loop is the frame primitive (raylib, ebiten, bubbletea) use it,
// as do tests and scenario replay.
type Manual struct {
	callbacks
}

func NewManual() *Manual {
	return &Manual{}
}

// Dispatch delivers e to the current listeners immediately.
func (m *Manual) Dispatch(e Event) { m.deliver(e) }

// Step runs every frame callback pending before the call and returns how
// many ran.
func (m *Manual) Step(ts time.Duration) int { return m.fire(ts) }
