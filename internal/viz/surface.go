package viz

import (
	"math"

	"github.com/san-kum/plexus/internal/dynamo"
)

const (
	DefaultScale     = 4
	DefaultThreshold = 0.05
)

// Surface adapts a Canvas to dynamo.Surface. Logical coordinates are
// divided by Scale to find the dot.
type Surface struct {
	Canvas    *Canvas
	Scale     float64
	Threshold float64
	size      dynamo.Size
}

func NewSurface(cols, rows int) *Surface {
	s := &Surface{Canvas: NewCanvas(cols, rows), Scale: DefaultScale, Threshold: DefaultThreshold}
	s.size = s.cellsToSize(cols, rows)
	return s
}

func (s *Surface) cellsToSize(cols, rows int) dynamo.Size {
	return dynamo.Size{W: float64(cols*2) * s.Scale, H: float64(rows*4) * s.Scale}
}

// SizeFor is the logical size of a cols x rows canvas.
func (s *Surface) SizeFor(cols, rows int) dynamo.Size { return s.cellsToSize(cols, rows) }

// CellToLogical maps a terminal cell to the logical point at its centre.
func (s *Surface) CellToLogical(col, row int) dynamo.Vec2 {
	return dynamo.Vec2{X: (float64(col*2) + 1) * s.Scale, Y: (float64(row*4) + 2) * s.Scale}
}

func (s *Surface) Size() dynamo.Size { return s.size }

// Resize rounds the logical size down to whole cells.
func (s *Surface) Resize(size dynamo.Size) {
	s.size = size
	cols := int(size.W / (2 * s.Scale))
	rows := int(size.H / (4 * s.Scale))
	s.Canvas.Resize(cols, rows)
}

func (s *Surface) Clear() {
	s.Canvas.Clear()
}

func (s *Surface) dot(p dynamo.Vec2) (int, int) {
	return int(math.Floor(p.X / s.Scale)), int(math.Floor(p.Y / s.Scale))
}

func (s *Surface) StrokeLine(a, b dynamo.Vec2, width float64, c dynamo.RGBA) {
	if c.A < s.Threshold {
		return
	}
	x0, y0 := s.dot(a)
	x1, y1 := s.dot(b)
	s.Canvas.DrawLine(x0, y0, x1, y1)
}

func (s *Surface) FillCircle(center dynamo.Vec2, r float64, c dynamo.RGBA) {
	x, y := s.dot(center)
	s.Canvas.FillDisk(x, y, int(r/s.Scale))
}

// FillRadialGradient cannot shade dots, so it draws a dotted ring at the
// gradient's outer edge.
func (s *Surface) FillRadialGradient(center dynamo.Vec2, radius float64, c dynamo.RGBA, stops []dynamo.GradientStop) {
	r := radius / s.Scale
	n := int(2 * math.Pi * r / 3)
	if n < 8 {
		n = 8
	}
	cx, cy := center.X/s.Scale, center.Y/s.Scale
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		s.Canvas.Set(int(math.Floor(cx+r*math.Cos(a))), int(math.Floor(cy+r*math.Sin(a))))
	}
}

func (s *Surface) String() string { return s.Canvas.String() }
