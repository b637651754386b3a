package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the chrome around the board. Entity colors are fixed by the board.
type Theme struct {
	Name       string
	Border     lipgloss.Color
	Title      lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
}

var (
	ThemeArcade = Theme{
		Name:       "arcade",
		Border:     lipgloss.Color("#444466"),
		Title:      lipgloss.Color("#00ffff"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666688"),
		Background: lipgloss.Color("#000000"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Border:     lipgloss.Color("#005500"),
		Title:      lipgloss.Color("#00ff00"),
		Text:       lipgloss.Color("#88ff88"),
		Muted:      lipgloss.Color("#007700"),
		Background: lipgloss.Color("#001100"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Border:     lipgloss.Color("#888888"),
		Title:      lipgloss.Color("#ffffff"),
		Text:       lipgloss.Color("#cccccc"),
		Muted:      lipgloss.Color("#888888"),
		Background: lipgloss.Color("#111111"),
	}

	Themes = []Theme{
		ThemeArcade,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeArcade
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// next returns the theme after t in Themes, wrapping around.
func (t Theme) next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
