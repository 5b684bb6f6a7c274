package display

import "github.com/charmbracelet/lipgloss"

type styles struct {
	red      lipgloss.Style
	black    lipgloss.Style
	header   lipgloss.Style
	cell     lipgloss.Style
	winner   lipgloss.Style
	selected lipgloss.Style
	border   lipgloss.Style
	title    lipgloss.Style
	muted    lipgloss.Style
	err      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		red:      r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		black:    r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true),
		header:   r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Bold(true).Padding(0, 1),
		cell:     r.NewStyle().Padding(0, 1),
		winner:   r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true).Padding(0, 1),
		selected: r.NewStyle().Foreground(lipgloss.Color("#04B575")).Padding(0, 1),
		border:   r.NewStyle().Foreground(lipgloss.Color("#626262")),
		title:    r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		muted:    r.NewStyle().Foreground(lipgloss.Color("#626262")),
		err:      r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
}
