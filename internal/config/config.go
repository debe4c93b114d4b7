package config

import (
	"fmt"
	"os"

	"github.com/san-kum/plexus/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultColor         = "#00d4ff"
	DefaultDamping       = 0.99
	DefaultSentinel      = -1000.0
	DefaultWidth         = 1280
	DefaultHeight        = 720
	DefaultHeroFraction  = 0.6
	DefaultFrameRate     = 60
	DefaultHeightTrigger = 100.0
)

type Config struct {
	Background Field  `yaml:"background"`
	Hero       Field  `yaml:"hero"`
	Window     Window `yaml:"window"`
	Seed       int64  `yaml:"seed"`
}

type Window struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	HeroFraction float64 `yaml:"hero_fraction"`
	FrameRate    int     `yaml:"frame_rate"`
	// DocumentHeight is the scrollable page height; 0 means three viewports.
	DocumentHeight float64 `yaml:"document_height"`
}

// Field parameterises one particle field instance.
type Field struct {
	Name                 string  `yaml:"name"`
	Count                int     `yaml:"count"`
	ConnectionDistance   float64 `yaml:"connection_distance"`
	PointerRadius        float64 `yaml:"pointer_radius"`
	PointerForce         float64 `yaml:"pointer_force"`
	Damping              float64 `yaml:"damping"`
	MaxSpeed             float64 `yaml:"max_speed"`
	MinRadius            float64 `yaml:"min_radius"`
	MaxRadius            float64 `yaml:"max_radius"`
	TrackScrollHeight    bool    `yaml:"track_scroll_height"`
	HeightThreshold      float64 `yaml:"height_threshold"`
	RedistributeOnResize bool    `yaml:"redistribute_on_resize"`
	Style                Style   `yaml:"style"`
}

type Style struct {
	Color           string                `yaml:"color"`
	ConnectionAlpha float64               `yaml:"connection_alpha"`
	ConnectionWidth float64               `yaml:"connection_width"`
	LinkAlpha       float64               `yaml:"link_alpha"`
	LinkWidth       float64               `yaml:"link_width"`
	GlowBase        float64               `yaml:"glow_base"`
	GlowRange       float64               `yaml:"glow_range"`
	GlowIdle        float64               `yaml:"glow_idle"`
	Gradient        []dynamo.GradientStop `yaml:"gradient"`
}

func DefaultBackground() Field {
	return Field{
		Name:               "background",
		Count:              80,
		ConnectionDistance: 150,
		PointerRadius:      200,
		PointerForce:       0.02,
		Damping:            DefaultDamping,
		MaxSpeed:           0.2,
		MinRadius:          1,
		MaxRadius:          3,
		TrackScrollHeight:  true,
		HeightThreshold:    DefaultHeightTrigger,
		Style: Style{
			Color:           DefaultColor,
			ConnectionAlpha: 0.15,
			ConnectionWidth: 0.5,
			LinkAlpha:       0.3,
			LinkWidth:       0.8,
			GlowBase:        0.3,
			GlowRange:       0.5,
			GlowIdle:        0.3,
			Gradient:        []dynamo.GradientStop{{Offset: 0, Alpha: 0.06}, {Offset: 1, Alpha: 0}},
		},
	}
}

func DefaultHero() Field {
	return Field{
		Name:               "hero",
		Count:              160,
		ConnectionDistance: 120,
		PointerRadius:      250,
		PointerForce:       0.03,
		Damping:            DefaultDamping,
		MaxSpeed:           0.3,
		MinRadius:          0.5,
		MaxRadius:          3,
		Style: Style{
			Color:           DefaultColor,
			ConnectionAlpha: 0.2,
			ConnectionWidth: 0.6,
			LinkAlpha:       0.4,
			LinkWidth:       1,
			GlowBase:        0.4,
			GlowRange:       0.6,
			GlowIdle:        0.35,
			Gradient: []dynamo.GradientStop{
				{Offset: 0, Alpha: 0.08},
				{Offset: 0.5, Alpha: 0.03},
				{Offset: 1, Alpha: 0},
			},
		},
	}
}

func DefaultConfig() *Config {
	return &Config{
		Background: DefaultBackground(),
		Hero:       DefaultHero(),
		Window: Window{
			Width:        DefaultWidth,
			Height:       DefaultHeight,
			HeroFraction: DefaultHeroFraction,
			FrameRate:    DefaultFrameRate,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Background.Validate(); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if err := c.Hero.Validate(); err != nil {
		return fmt.Errorf("hero: %w", err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window %dx%d: %w", c.Window.Width, c.Window.Height, dynamo.ErrEmptySurface)
	}
	if c.Window.HeroFraction <= 0 || c.Window.HeroFraction > 1 {
		return fmt.Errorf("hero_fraction %v: %w", c.Window.HeroFraction, dynamo.ErrParameterBounds)
	}
	return nil
}

// Field returns the named instance configuration.
func (c *Config) Field(name string) (Field, bool) {
	switch name {
	case c.Background.Name, "background":
		return c.Background, true
	case c.Hero.Name, "hero":
		return c.Hero, true
	}
	return Field{}, false
}

func (f *Field) Validate() error {
	switch {
	case f.Count < 0:
		return fmt.Errorf("count %d: %w", f.Count, dynamo.ErrParameterBounds)
	case f.ConnectionDistance <= 0:
		return fmt.Errorf("connection_distance %v: %w", f.ConnectionDistance, dynamo.ErrParameterBounds)
	case f.PointerRadius <= 0:
		return fmt.Errorf("pointer_radius %v: %w", f.PointerRadius, dynamo.ErrParameterBounds)
	case f.Damping <= 0 || f.Damping > 1:
		return fmt.Errorf("damping %v: %w", f.Damping, dynamo.ErrParameterBounds)
	case f.MaxSpeed < 0:
		return fmt.Errorf("max_speed %v: %w", f.MaxSpeed, dynamo.ErrParameterBounds)
	case f.MinRadius <= 0 || f.MaxRadius < f.MinRadius:
		return fmt.Errorf("radius range [%v, %v): %w", f.MinRadius, f.MaxRadius, dynamo.ErrParameterBounds)
	case f.HeightThreshold < 0:
		return fmt.Errorf("height_threshold %v: %w", f.HeightThreshold, dynamo.ErrParameterBounds)
	}
	if _, err := dynamo.ParseHex(f.Style.Color); err != nil {
		return err
	}
	for i := 1; i < len(f.Style.Gradient); i++ {
		if f.Style.Gradient[i].Offset < f.Style.Gradient[i-1].Offset {
			return fmt.Errorf("gradient stops out of order: %w", dynamo.ErrParameterBounds)
		}
	}
	return nil
}

// RGBA returns the parsed style colour, falling back to the default.
func (s Style) RGBA() dynamo.RGBA {
	c, err := dynamo.ParseHex(s.Color)
	if err != nil {
		c, _ = dynamo.ParseHex(DefaultColor)
	}
	return c
}
