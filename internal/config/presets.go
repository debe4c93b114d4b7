package config

import "sort"

// Presets are named single-field configurations.
var Presets = map[string]func() Field{
	"background": DefaultBackground,
	"hero":       DefaultHero,
	"sparse": func() Field {
		f := DefaultBackground()
		f.Name = "sparse"
		f.Count = 40
		f.ConnectionDistance = 180
		return f
	},
	"dense": func() Field {
		f := DefaultHero()
		f.Name = "dense"
		f.Count = 300
		f.ConnectionDistance = 90
		return f
	},
	"calm": func() Field {
		f := DefaultBackground()
		f.Name = "calm"
		f.PointerForce = 0
		f.Damping = 1
		f.MaxSpeed = 0.1
		return f
	},
}

func GetPreset(name string) *Field {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	f := fn()
	return &f
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
