package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/flingsim/internal/board"
)

// Palette maps entity colors to terminal styles. Black entities are drawn
// against the theme background rather than in literal black.
func Palette(theme Theme) map[board.Color]lipgloss.Style {
	p := make(map[board.Color]lipgloss.Style)
	for _, c := range []board.Color{board.Blue, board.Red, board.Orange, board.Green} {
		p[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
	}
	p[board.Black] = lipgloss.NewStyle().Foreground(theme.Muted)
	return p
}

type styles struct {
	panel  lipgloss.Style
	title  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	status lipgloss.Style
	paused lipgloss.Style
	help   lipgloss.Style
}

func newStyles(theme Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Background(theme.Background),
		title:  lipgloss.NewStyle().Bold(true).Foreground(theme.Title),
		label:  lipgloss.NewStyle().Foreground(theme.Muted).Width(10),
		value:  lipgloss.NewStyle().Foreground(theme.Text),
		status: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88")),
		paused: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00")),
		help:   lipgloss.NewStyle().Foreground(theme.Muted).Italic(true).MarginTop(1),
	}
}
