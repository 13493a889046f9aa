package theme

import "github.com/charmbracelet/lipgloss"

// Dracula palette
// https://draculatheme.com/
var Dracula = Theme{
	Name: "dracula",

	Background: lipgloss.Color("#282A36"),
	Foreground: lipgloss.Color("#F8F8F2"),
	Subtle:     lipgloss.Color("#6272A4"), // comment
	Highlight:  lipgloss.Color("#44475A"), // current line
	Border:     lipgloss.Color("#6272A4"),

	Primary:   lipgloss.Color("#BD93F9"), // purple
	Secondary: lipgloss.Color("#FF79C6"), // pink
	Info:      lipgloss.Color("#8BE9FD"), // cyan

	Success: lipgloss.Color("#50FA7B"),
	Warning: lipgloss.Color("#F1FA8C"),
	Error:   lipgloss.Color("#FF5555"),

	PriorityHigh:   lipgloss.Color("#FF5555"),
	PriorityMedium: lipgloss.Color("#FFB86C"), // orange
	PriorityLow:    lipgloss.Color("#50FA7B"),

	TagBackground: lipgloss.Color("#44475A"),
}
