package viz

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/dynamo"
)

func TestCanvasSetAndString(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if !c.Get(0, 0) || !c.Get(3, 3) || c.Get(1, 0) {
		t.Error("dot state mismatch")
	}
	if got := c.String(); got != "⠁⢀" {
		t.Errorf("unexpected rendering %q", got)
	}

	c.Clear()
	if c.String() != "⠀⠀" {
		t.Error("clear left dots")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 1, 7, 1)
	for x := 0; x < 8; x++ {
		if !c.Get(x, 1) {
			t.Errorf("dot %d not set", x)
		}
	}
}

func TestSurfaceCoordinates(t *testing.T) {
	s := NewSurface(10, 5)
	if s.Size() != (dynamo.Size{W: 80, H: 80}) {
		t.Fatalf("unexpected size %v", s.Size())
	}
	if p := s.CellToLogical(1, 1); p != (dynamo.Vec2{X: 12, Y: 24}) {
		t.Errorf("unexpected cell centre %v", p)
	}

	s.Resize(dynamo.Size{W: 163, H: 40})
	if s.Canvas.Width != 20 || s.Canvas.Height != 2 {
		t.Errorf("unexpected canvas %dx%d", s.Canvas.Width, s.Canvas.Height)
	}
}

func TestSurfaceThreshold(t *testing.T) {
	s := NewSurface(10, 5)
	c := dynamo.RGBA{R: 255, A: 0.01}
	s.StrokeLine(dynamo.Vec2{X: 0, Y: 0}, dynamo.Vec2{X: 40, Y: 0}, 1, c)
	if strings.ContainsFunc(s.String(), func(r rune) bool { return r > 0x2800 }) {
		t.Error("faint line was drawn")
	}
	s.StrokeLine(dynamo.Vec2{X: 0, Y: 0}, dynamo.Vec2{X: 40, Y: 0}, 1, c.WithAlpha(0.5))
	if !s.Canvas.Get(5, 0) {
		t.Error("visible line was not drawn")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("empty sparkline %q", got)
	}
	if got := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 4); got != "▁▃▅█" {
		t.Errorf("unexpected sparkline %q", got)
	}
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	f := config.DefaultBackground()
	f.Count = 30
	m, err := NewModel(Options{Field: f, Rand: rand.New(rand.NewSource(1))})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t)
	if want := time.Second / config.DefaultFrameRate; m.interval != want {
		t.Errorf("interval = %v, want %v", m.interval, want)
	}
	if m.opts.GIFPath != "plexus.gif" {
		t.Errorf("gif path = %q", m.opts.GIFPath)
	}

	f := config.DefaultBackground()
	m, err := NewModel(Options{Field: f, FrameRate: 20})
	if err != nil {
		t.Fatal(err)
	}
	if m.interval != 50*time.Millisecond {
		t.Errorf("interval = %v, want 50ms", m.interval)
	}
}

func TestModelTicksStepTheDriver(t *testing.T) {
	m := newTestModel(t)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init returned no tick")
	}
	for i := 0; i < 3; i++ {
		if _, cmd := m.Update(TickMsg(time.Now())); cmd == nil {
			t.Fatal("tick did not reschedule")
		}
	}
	if m.Driver().Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", m.Driver().Frames())
	}
	if len(m.speed.Series()) != 3 {
		t.Error("metrics not observed")
	}
	if !strings.Contains(m.View(), "RUNNING") {
		t.Error("status missing from view")
	}
}

func TestModelInput(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	want := m.surface.SizeFor(120-statsWidth-2*padLeft-2, 40-2*padTop)
	if m.Driver().Field().Size() != want {
		t.Errorf("field size %v, want %v", m.Driver().Field().Size(), want)
	}

	m.Update(tea.MouseMsg{X: padLeft + 3, Y: padTop + 2, Action: tea.MouseActionMotion})
	if got := m.Driver().Tracker().Position(); got != m.surface.CellToLogical(3, 2) {
		t.Errorf("pointer at %v", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if m.Driver().Running() {
		t.Fatal("space did not pause")
	}
	m.Update(TickMsg(time.Now()))
	if m.Driver().Frames() != 0 {
		t.Error("paused driver advanced")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view does not show pause")
	}
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if !m.Driver().Running() {
		t.Error("space did not resume")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	if Themes[m.theme].Name != "retro" {
		t.Errorf("theme did not cycle: %s", Themes[m.theme].Name)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil || m.Driver().Running() {
		t.Error("quit did not stop the driver")
	}
}

func TestModelRecording(t *testing.T) {
	m := newTestModel(t)
	m.opts.GIFPath = t.TempDir() + "/out.gif"

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	m.Update(TickMsg(time.Now()))
	m.Update(TickMsg(time.Now()))
	if m.recorder.Frames() != 2 {
		t.Fatalf("expected 2 recorded frames, got %d", m.recorder.Frames())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	if m.recorder != nil || m.lastError != "" {
		t.Errorf("recording not saved: %q", m.lastError)
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("sunset").Name != "sunset" {
		t.Error("sunset not found")
	}
	if GetTheme("nope").Name != "plexus" {
		t.Error("unknown theme should fall back to plexus")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names incomplete")
	}
}
