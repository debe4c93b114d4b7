package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	canvas    lipgloss.Style
	stats     lipgloss.Style
	header    lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	graph     lipgloss.Style
	help      lipgloss.Style
	running   lipgloss.Style
	paused    lipgloss.Style
	recording lipgloss.Style
}

const statsWidth = 36

func newStyles(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Padding(1, 2).Foreground(t.Particle),
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(statsWidth),
		header: lipgloss.NewStyle().Foreground(t.Particle).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		graph:  lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0),
		help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),

		running:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88")),
		paused:    lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		recording: lipgloss.NewStyle().Bold(true).Foreground(t.Error).Blink(true),
	}
}

// Sparkline renders the last width values, scaled to their own range.
func Sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	rng := max - min
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - min) / rng * float64(len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return b.String()
}
