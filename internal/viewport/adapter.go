// Package viewport keeps a surface sized to the container it is shown in.
package viewport

import (
	"math"

	"github.com/san-kum/plexus/internal/dynamo"
)

// Adapter re-measures a container and resizes a surface to match.
type Adapter struct {
	surface   dynamo.Surface
	measure   func() dynamo.Size
	threshold float64
	trackH    bool

	// OnResize runs after every applied size change.
	OnResize func(old, cur dynamo.Size)
}

// New returns an adapter. When trackHeight is set RefreshHeight follows the
// measured height, ignoring changes of threshold or less.
func New(surface dynamo.Surface, measure func() dynamo.Size, trackHeight bool, threshold float64) *Adapter {
	return &Adapter{
		surface:   surface,
		measure:   measure,
		threshold: threshold,
		trackH:    trackHeight,
	}
}

func (a *Adapter) Size() dynamo.Size { return a.surface.Size() }

// Refresh applies the measured size unconditionally (window resize).
func (a *Adapter) Refresh() bool {
	return a.apply(a.measure())
}

// RefreshHeight follows document height growth or shrinkage (scroll).
// Width is left alone.
func (a *Adapter) RefreshHeight() bool {
	if !a.trackH {
		return false
	}
	cur := a.surface.Size()
	m := a.measure()
	if math.Abs(m.H-cur.H) <= a.threshold {
		return false
	}
	return a.apply(dynamo.Size{W: cur.W, H: m.H})
}

func (a *Adapter) apply(s dynamo.Size) bool {
	old := a.surface.Size()
	if s == old {
		return false
	}
	a.surface.Resize(s)
	if a.OnResize != nil {
		a.OnResize(old, s)
	}
	return true
}
