package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/tsuzuki/internal/model"
)

// Theme defines the color scheme for the UI
type Theme struct {
	Name string

	// Base colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	// Semantic colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color

	// Priority colors, 1 is the most urgent
	PriorityHigh   lipgloss.Color
	PriorityMedium lipgloss.Color
	PriorityLow    lipgloss.Color

	// Category tag background
	TagBackground lipgloss.Color
}

// PriorityColor returns the color for a priority level
func (t Theme) PriorityColor(p model.Priority) lipgloss.Color {
	switch p {
	case model.PriorityHigh:
		return t.PriorityHigh
	case model.PriorityMedium:
		return t.PriorityMedium
	default:
		return t.PriorityLow
	}
}

// Styles holds pre-computed lipgloss styles based on theme
type Styles struct {
	Header   lipgloss.Style
	Greeting lipgloss.Style
	Footer   lipgloss.Style

	// Task rows
	TaskNormal  lipgloss.Style
	TaskCursor  lipgloss.Style
	TaskDone    lipgloss.Style
	TaskOverdue lipgloss.Style

	Label    lipgloss.Style
	Category lipgloss.Style
	DueDate  lipgloss.Style

	// Progress bar
	ProgressFull  lipgloss.Style
	ProgressEmpty lipgloss.Style

	// Edit form
	Panel        lipgloss.Style
	PanelTitle   lipgloss.Style
	Field        lipgloss.Style
	FieldFocused lipgloss.Style
	FieldError   lipgloss.Style

	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style

	Status lipgloss.Style
	Error  lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		Greeting: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		TaskNormal: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		TaskCursor: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.Highlight).
			Bold(true).
			Padding(0, 1),

		TaskDone: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Strikethrough(true).
			Padding(0, 1),

		TaskOverdue: lipgloss.NewStyle().
			Foreground(t.Error).
			Padding(0, 1),

		Label: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Category: lipgloss.NewStyle().
			Foreground(t.Info).
			Background(t.TagBackground).
			Padding(0, 1),

		DueDate: lipgloss.NewStyle().
			Foreground(t.Warning),

		ProgressFull: lipgloss.NewStyle().
			Foreground(t.Success),

		ProgressEmpty: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(1, 2),

		PanelTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			MarginBottom(1),

		Field: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Width(10),

		FieldFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Width(10),

		FieldError: lipgloss.NewStyle().
			Foreground(t.Error).
			PaddingLeft(10),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),

		HelpSeparator: lipgloss.NewStyle().
			Foreground(t.Border),

		Status: lipgloss.NewStyle().
			Foreground(t.Info),

		Error: lipgloss.NewStyle().
			Foreground(t.Error),
	}
}

// Current holds the current active theme and styles
var Current = struct {
	Theme  Theme
	Styles Styles
}{
	Theme:  Nord,
	Styles: NewStyles(Nord),
}

// SetTheme changes the current theme
func SetTheme(t Theme) {
	Current.Theme = t
	Current.Styles = NewStyles(t)
}

// Available returns all available themes
func Available() []Theme {
	return []Theme{Nord, Dracula}
}

// ByName returns a theme by its name
func ByName(name string) (Theme, bool) {
	for _, t := range Available() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Next returns the theme after the current one, wrapping around
func Next() Theme {
	themes := Available()
	for i, t := range themes {
		if t.Name == Current.Theme.Name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
