package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the review screens
type Styles struct {
	Title    lipgloss.Style
	Query    lipgloss.Style
	Command  lipgloss.Style
	Selected lipgloss.Style
	Risk     lipgloss.Style
	Danger   lipgloss.Style
	Help     lipgloss.Style
	Error    lipgloss.Style
	Dim      lipgloss.Style
	Border   lipgloss.Style
}

// NewStyles returns the default style set
func NewStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Query:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("7")),
		Command:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Risk:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Danger:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1),
	}
}
