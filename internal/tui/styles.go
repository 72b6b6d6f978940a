package tui

import "github.com/charmbracelet/lipgloss"

// Styles are bound to a renderer so SSH sessions get the client's colours.
type Styles struct {
	Title   lipgloss.Style
	Price   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Line    lipgloss.Style
	Axis    lipgloss.Style
	Spinner lipgloss.Style
	Frame   lipgloss.Style
}

func NewStyles(r *lipgloss.Renderer) Styles {
	accent := lipgloss.Color("#8884d8")
	return Styles{
		Title:   r.NewStyle().Bold(true).Foreground(accent),
		Price:   r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("241")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("#ff5f87")),
		Line:    r.NewStyle().Foreground(accent),
		Axis:    r.NewStyle().Foreground(lipgloss.Color("245")),
		Spinner: r.NewStyle().Foreground(accent),
		Frame:   r.NewStyle().Padding(0, 1),
	}
}
