package metrics

import "github.com/san-kum/plexus/internal/physics"

// Stability records 1 for frames whose particles are all finite and 0
// otherwise; Ratio is the share of healthy frames.
type Stability struct {
	series
	violations int
}

func NewStability() *Stability {
	return &Stability{series: series{name: "stability"}}
}

func (s *Stability) OnFrame(f *physics.Field, frame int) {
	if err := f.Validate(); err != nil {
		s.violations++
		s.add(0)
		return
	}
	s.add(1)
}

func (s *Stability) Ratio() float64 {
	if len(s.values) == 0 {
		return 1
	}
	return 1 - float64(s.violations)/float64(len(s.values))
}

func (s *Stability) Reset() {
	s.series.Reset()
	s.violations = 0
}
