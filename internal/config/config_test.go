package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/plexus/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Background.Count != 80 {
		t.Errorf("expected 80 background particles, got %d", cfg.Background.Count)
	}
	if cfg.Hero.Count != 160 {
		t.Errorf("expected 160 hero particles, got %d", cfg.Hero.Count)
	}
	if !cfg.Background.TrackScrollHeight || cfg.Hero.TrackScrollHeight {
		t.Error("only the background field tracks document height")
	}
	if cfg.Background.RedistributeOnResize || cfg.Hero.RedistributeOnResize {
		t.Error("neither field should redistribute on resize by default")
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plexus.yaml")
	data := []byte("seed: 7\nhero:\n  count: 42\n  style:\n    color: \"#ff0000\"\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Seed != 7 {
		t.Errorf("expected seed 7, got %d", cfg.Seed)
	}
	if cfg.Hero.Count != 42 {
		t.Errorf("expected hero count 42, got %d", cfg.Hero.Count)
	}
	if cfg.Hero.ConnectionDistance != 120 {
		t.Errorf("omitted keys should keep defaults, got %v", cfg.Hero.ConnectionDistance)
	}
	if c := cfg.Hero.Style.RGBA(); c.R != 255 || c.G != 0 {
		t.Errorf("unexpected colour %+v", c)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Background.Count = 12

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Background.Count != 12 {
		t.Errorf("expected 12, got %d", loaded.Background.Count)
	}
	if len(loaded.Hero.Style.Gradient) != 3 {
		t.Errorf("expected 3 gradient stops, got %d", len(loaded.Hero.Style.Gradient))
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("background:\n  damping: 1.5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFieldValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Field)
	}{
		{"negative count", func(f *Field) { f.Count = -1 }},
		{"zero connection distance", func(f *Field) { f.ConnectionDistance = 0 }},
		{"zero pointer radius", func(f *Field) { f.PointerRadius = 0 }},
		{"zero damping", func(f *Field) { f.Damping = 0 }},
		{"amplifying damping", func(f *Field) { f.Damping = 1.01 }},
		{"inverted radius", func(f *Field) { f.MinRadius, f.MaxRadius = 3, 1 }},
		{"bad colour", func(f *Field) { f.Style.Color = "cyan" }},
		{"unsorted gradient", func(f *Field) {
			f.Style.Gradient = []dynamo.GradientStop{{Offset: 1}, {Offset: 0}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultBackground()
			tt.mutate(&f)
			if err := f.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	f := GetPreset("hero")
	if f == nil {
		t.Fatal("expected preset, got nil")
	}
	if f.PointerRadius != 250 {
		t.Errorf("expected pointer radius 250, got %v", f.PointerRadius)
	}
	f.Count = 1
	if again := GetPreset("hero"); again.Count != 160 {
		t.Error("presets must not share state between calls")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Error("presets should be sorted")
		}
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestConfigField(t *testing.T) {
	cfg := DefaultConfig()
	if f, ok := cfg.Field("hero"); !ok || f.Count != 160 {
		t.Error("expected hero field")
	}
	if _, ok := cfg.Field("nope"); ok {
		t.Error("unexpected field")
	}
}
