package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles is the set of lipgloss styles derived from a Theme.
type styles struct {
	canvas     lipgloss.Style
	stats      lipgloss.Style
	header     lipgloss.Style
	subtle     lipgloss.Style
	label      lipgloss.Style
	value      lipgloss.Style
	graph      lipgloss.Style
	help       lipgloss.Style
	edge       lipgloss.Style
	dot        lipgloss.Style
	running    lipgloss.Style
	paused     lipgloss.Style
	failed     lipgloss.Style
	button     lipgloss.Style
	defaultBtn lipgloss.Style
}

func newStyles(t Theme) styles {
	button := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted).
		Foreground(t.Text).
		Padding(0, 2)

	return styles{
		canvas: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(t.Muted),
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 2).
			Width(40),
		header:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		subtle:  lipgloss.NewStyle().Foreground(t.Muted),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(14),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		graph:   lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0),
		help:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		edge:    lipgloss.NewStyle().Foreground(t.Edge),
		dot:     lipgloss.NewStyle().Foreground(t.Dot).Bold(true),
		running: lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		paused:  lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		failed:  lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		button:  button,
		defaultBtn: button.
			BorderForeground(t.Accent).
			Foreground(t.Accent).
			Bold(true),
	}
}

// Separator draws a muted rule of the given width.
func (s styles) Separator(width int) string {
	if width < 7 {
		return s.subtle.Render(strings.Repeat("─", width))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.subtle.Render(left + " ◆ " + right)
}
