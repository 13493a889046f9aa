package theme

import "github.com/charmbracelet/lipgloss"

// Nord palette
// https://www.nordtheme.com/
var Nord = Theme{
	Name: "nord",

	Background: lipgloss.Color("#2E3440"), // nord0
	Foreground: lipgloss.Color("#ECEFF4"), // nord6
	Subtle:     lipgloss.Color("#4C566A"), // nord3
	Highlight:  lipgloss.Color("#3B4252"), // nord1
	Border:     lipgloss.Color("#4C566A"),

	Primary:   lipgloss.Color("#88C0D0"), // nord8
	Secondary: lipgloss.Color("#81A1C1"), // nord9
	Info:      lipgloss.Color("#5E81AC"), // nord10

	Success: lipgloss.Color("#A3BE8C"), // nord14
	Warning: lipgloss.Color("#EBCB8B"), // nord13
	Error:   lipgloss.Color("#BF616A"), // nord11

	PriorityHigh:   lipgloss.Color("#BF616A"),
	PriorityMedium: lipgloss.Color("#D08770"), // nord12
	PriorityLow:    lipgloss.Color("#A3BE8C"),

	TagBackground: lipgloss.Color("#434C5E"), // nord2
}
