// Package metrics observes a running field frame by frame.
package metrics

import "github.com/san-kum/plexus/internal/physics"

// Metric is a sim.Observer that keeps a per-frame series.
type Metric interface {
	Name() string
	OnFrame(f *physics.Field, frame int)
	Value() float64
	Series() []float64
	Reset()
}

type series struct {
	name   string
	values []float64
}

func (s *series) Name() string { return s.name }

// Value is the latest observation, 0 before the first frame.
func (s *series) Value() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.values[len(s.values)-1]
}

func (s *series) Series() []float64 { return s.values }
func (s *series) Reset()            { s.values = nil }

func (s *series) add(v float64) { s.values = append(s.values, v) }

// Mean averages a series; 0 when empty.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Standard returns the metrics the CLI and scenario replay report.
func Standard() []Metric {
	return []Metric{NewMeanSpeed(), NewLinks(), NewConnections(), NewStability()}
}
