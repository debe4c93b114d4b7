package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Particle   lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

var (
	ThemePlexus = Theme{
		Name:       "plexus",
		Particle:   lipgloss.Color("#00d4ff"),
		Accent:     lipgloss.Color("#7b61ff"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666688"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Particle:   lipgloss.Color("#00ff00"), // Green phosphor
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Warning:    lipgloss.Color("#ffff00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Particle:   lipgloss.Color("#ffffff"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Particle:   lipgloss.Color("#ff6b6b"), // Coral
		Accent:     lipgloss.Color("#feca57"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Warning:    lipgloss.Color("#ffc048"),
		Error:      lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{
		ThemePlexus,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the plexus theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemePlexus
}

func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
