package metrics

import "github.com/san-kum/plexus/internal/physics"

// Links counts pointer links drawn each frame.
type Links struct {
	series
}

func NewLinks() *Links {
	return &Links{series{name: "links"}}
}

func (l *Links) OnFrame(f *physics.Field, frame int) {
	l.add(float64(len(f.LastFrame().Links)))
}

// Connections counts particle-to-particle lines drawn each frame.
type Connections struct {
	series
}

func NewConnections() *Connections {
	return &Connections{series{name: "connections"}}
}

func (c *Connections) OnFrame(f *physics.Field, frame int) {
	c.add(float64(len(f.LastFrame().Connections)))
}
