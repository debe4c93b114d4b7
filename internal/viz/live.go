package viz

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/dynamo"
	"github.com/san-kum/plexus/internal/export"
	"github.com/san-kum/plexus/internal/metrics"
	"github.com/san-kum/plexus/internal/sim"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	historyCapacity = 600
	// canvas padding set by styles.canvas
	padLeft, padTop = 2, 1
)

type TickMsg time.Time

type Options struct {
	Field     config.Field
	Rand      *rand.Rand
	Theme     string
	FrameRate int
	// GIFPath is where the G key saves a recording.
	GIFPath string
}

// Model runs one driver on a manual host and shows it on a Braille canvas.
type Model struct {
	opts      Options
	host      *sim.Manual
	driver    *sim.Driver
	surface   *Surface
	speed     *metrics.MeanSpeed
	links     *metrics.Links
	cols      int
	rows      int
	start     time.Time
	interval  time.Duration
	theme     int
	styles    styles
	showHelp  bool
	recorder  *export.Recorder
	raster    *export.Raster
	lastError string
}

func NewModel(opts Options) (*Model, error) {
	if opts.FrameRate <= 0 {
		opts.FrameRate = config.DefaultFrameRate
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "plexus.gif"
	}
	if err := opts.Field.Validate(); err != nil {
		return nil, err
	}

	m := &Model{
		opts:     opts,
		host:     sim.NewManual(),
		surface:  NewSurface(defaultCols, defaultRows),
		speed:    metrics.NewMeanSpeed(),
		links:    metrics.NewLinks(),
		cols:     defaultCols,
		rows:     defaultRows,
		start:    time.Now(),
		interval: time.Second / time.Duration(opts.FrameRate),
		theme:    themeIndex(opts.Theme),
	}
	m.styles = newStyles(Themes[m.theme])
	m.driver = sim.New(m.host, m.surface, opts.Field, sim.Options{
		Measure: func() dynamo.Size { return m.surface.SizeFor(m.cols, m.rows) },
		Rand:    opts.Rand,
		Quiet:   true,
	})
	m.driver.AddObserver(m.speed)
	m.driver.AddObserver(m.links)
	if err := m.driver.Start(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) Driver() *sim.Driver { return m.driver }

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return tick(m.interval)
}

// Update translates terminal input into host events and steps the host on
// every tick.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.driver.Stop()
			return m, tea.Quit
		case " ":
			m.togglePause()
		case "r":
			m.driver.Field().Initialize(m.opts.Field.Count, m.surface.Size())
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.styles = newStyles(Themes[m.theme])
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
		m.host.Dispatch(sim.Event{Kind: sim.Resize})
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionPress {
			p := m.surface.CellToLogical(msg.X-padLeft, msg.Y-padTop)
			m.host.Dispatch(sim.Event{Kind: sim.PointerMove, X: p.X, Y: p.Y})
		}
	case TickMsg:
		m.host.Step(time.Since(m.start))
		if m.recorder != nil && m.driver.Running() {
			m.driver.Field().Render(m.raster)
			m.recorder.Capture()
		}
		return m, tick(m.interval)
	}
	return m, nil
}

func (m *Model) layout(w, h int) {
	cols := w - statsWidth - 2*padLeft - 2
	rows := h - 2*padTop
	if cols < 10 {
		cols = 10
	}
	if rows < 5 {
		rows = 5
	}
	m.cols, m.rows = cols, rows
}

func (m *Model) togglePause() {
	if m.driver.Running() {
		m.driver.Stop()
		return
	}
	if err := m.driver.Start(); err != nil {
		m.lastError = err.Error()
	}
}

func (m *Model) toggleRecording() {
	if m.recorder == nil {
		m.raster = export.NewRaster(m.surface.Size(), export.Background)
		m.recorder = export.NewRecorder(m.raster, m.opts.Field.Style.RGBA())
		m.recorder.Width = 480
		return
	}
	if err := m.recorder.Save(m.opts.GIFPath); err != nil {
		m.lastError = err.Error()
		log.Printf("[TUI] save gif: %v", err)
	}
	m.recorder, m.raster = nil, nil
}

func (m *Model) View() string {
	canvasView := m.styles.canvas.Render(m.surface.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.stats.Render(m.statsView()))
}

func (m *Model) statsView() string {
	st := m.styles
	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.opts.Field.Name)) + "\n")

	switch {
	case m.recorder != nil:
		s.WriteString(st.recording.Render(fmt.Sprintf("● REC %d", m.recorder.Frames())))
	case m.driver.Running():
		s.WriteString(st.running.Render("RUNNING"))
	default:
		s.WriteString(st.paused.Render("PAUSED"))
	}
	s.WriteString("\n")

	speeds := tail(m.speed.Series(), historyCapacity)
	if len(speeds) > 1 {
		chart := asciigraph.Plot(speeds, asciigraph.Height(4), asciigraph.Width(statsWidth-10), asciigraph.Caption("Mean speed"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	f := m.driver.Field()
	fr := f.LastFrame()
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.driver.Frames()))
	row("Particles", fmt.Sprintf("%d", len(f.Particles())))
	row("Surface", fmt.Sprintf("%.0fx%.0f", f.Size().W, f.Size().H))
	row("Lines", fmt.Sprintf("%d", len(fr.Connections)))
	row("Links", fmt.Sprintf("%.0f", m.links.Value()))
	row("Speed", fmt.Sprintf("%.4f", m.speed.Value()))
	if m.driver.Tracker().Seen() {
		p := m.driver.Tracker().Position()
		row("Pointer", fmt.Sprintf("%.0f,%.0f", p.X, p.Y))
	} else {
		row("Pointer", "-")
	}
	s.WriteString(st.label.Render("") + Sparkline(tail(m.links.Series(), statsWidth-16), statsWidth-16) + "\n")
	row("Theme", Themes[m.theme].Name)

	if m.lastError != "" {
		s.WriteString(st.recording.UnsetBlink().Render(m.lastError) + "\n")
	}

	if m.showHelp {
		s.WriteString(st.help.Render("SP  pause/resume\nR   redistribute\nT   theme\nG   record GIF to " + m.opts.GIFPath + "\n?   help\nQ   quit"))
	} else {
		s.WriteString(st.help.Render("SP:Pause R:Reset T:Theme\nG:Record ?:Help Q:Quit"))
	}
	return s.String()
}

func tail(v []float64, n int) []float64 {
	if len(v) > n {
		return v[len(v)-n:]
	}
	return v
}

// Run shows the field full screen until the user quits.
func Run(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	m.driver.Stop()
	return err
}
