package metrics

import "github.com/san-kum/plexus/internal/physics"

// MeanSpeed records the average particle speed after each frame. Without
// pointer influence it decays by the damping factor every frame.
type MeanSpeed struct {
	series
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{series{name: "mean_speed"}}
}

func (m *MeanSpeed) OnFrame(f *physics.Field, frame int) {
	m.add(f.MeanSpeed())
}
