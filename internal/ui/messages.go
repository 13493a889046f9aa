package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode is what the keyboard currently drives
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeForm
	ModeConfirmDelete
	ModeConfirmClear
	ModeNewCategory
	ModeRename
	ModeQuickAdd
)

// String returns the label shown in the header
func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeForm:
		return "edit"
	case ModeConfirmDelete, ModeConfirmClear:
		return "confirm"
	case ModeNewCategory:
		return "new category"
	case ModeRename:
		return "name"
	case ModeQuickAdd:
		return "quick add"
	default:
		return "list"
	}
}

// IsInput reports whether keys go to a text field rather than the list
func (m Mode) IsInput() bool {
	switch m {
	case ModeSearch, ModeForm, ModeNewCategory, ModeRename, ModeQuickAdd:
		return true
	}
	return false
}

// Messages for inter-component communication

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}

// clearStatusMsg hides the status line once it has been read
type clearStatusMsg struct {
	seq int
}

// statusTimeout is how long a status message stays up
const statusTimeout = 4 * time.Second

func clearStatusAfter(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// reminderMsg carries the overdue check run at startup
type reminderMsg struct {
	sent bool
	err  error
}
