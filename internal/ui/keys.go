package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Task actions
	Add       key.Binding
	QuickAdd  key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Toggle    key.Binding
	ClearDone key.Binding

	// List controls
	Search       key.Binding
	StatusFilter key.Binding
	CategoryNext key.Binding
	SortKey      key.Binding
	SortOrder    key.Binding

	// Other
	NewCategory key.Binding
	Rename      key.Binding
	ThemeCycle  key.Binding
	Help        key.Binding
	Quit        key.Binding

	// Form and prompts
	NextField key.Binding
	PrevField key.Binding
	Left      key.Binding
	Right     key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	Yes       key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),

		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		QuickAdd: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "quick add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab", " ", "x"),
			key.WithHelp("tab", "toggle done"),
		),
		ClearDone: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear done"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		StatusFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "status"),
		),
		CategoryNext: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "category"),
		),
		SortKey: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		SortOrder: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "order"),
		),

		NewCategory: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new category"),
		),
		Rename: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "your name"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-tab", "prev field"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Toggle, k.Delete, k.Search, k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Add, k.QuickAdd, k.Edit, k.Delete, k.Toggle, k.ClearDone},
		{k.Search, k.StatusFilter, k.CategoryNext, k.SortKey, k.SortOrder},
		{k.NewCategory, k.Rename, k.ThemeCycle, k.Help, k.Quit},
	}
}

// FormHelp lists the bindings active inside the edit form
func (k KeyMap) FormHelp() []key.Binding {
	return []key.Binding{k.NextField, k.PrevField, k.Left, k.Right, k.Confirm, k.Cancel}
}
