package ui

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dori/tsuzuki/internal/app"
	"github.com/dori/tsuzuki/internal/debug"
	"github.com/dori/tsuzuki/internal/form"
	"github.com/dori/tsuzuki/internal/model"
	"github.com/dori/tsuzuki/internal/notify"
	"github.com/dori/tsuzuki/internal/quickadd"
	"github.com/dori/tsuzuki/internal/ui/theme"
	"github.com/dori/tsuzuki/internal/view"
)

// RootModel is the task list plus the modal prompts drawn over it
type RootModel struct {
	session  *app.Session
	notifier *notify.Notifier
	keys     KeyMap
	help     help.Model
	width    int
	height   int

	mode    Mode
	query   view.Query
	visible []model.Task
	cursor  int

	editor editor
	input  textinput.Model

	// pendingID is the task a delete confirmation refers to
	pendingID string

	helpVisible bool

	statusMsg string
	errorMsg  string
	statusSeq int

	now func() time.Time
}

// NewRootModel creates the root model over a loaded application
func NewRootModel(a *app.App) (RootModel, error) {
	if name := a.Config.Theme; name != "" {
		t, ok := theme.ByName(name)
		if !ok {
			return RootModel{}, fmt.Errorf("unknown theme %q", name)
		}
		theme.SetTheme(t)
	}

	q, err := a.Config.Query()
	if err != nil {
		return RootModel{}, err
	}

	m := newModel(a.Session, a.Notifier, q, a.Config.DefaultCategory)
	if a.LoadWarning != nil {
		m.errorMsg = fmt.Sprintf("Stored data was unreadable, defaults loaded: %v", a.LoadWarning)
	}
	return m, nil
}

func newModel(s *app.Session, n *notify.Notifier, q view.Query, defaultCategory string) RootModel {
	h := help.New()
	h.ShowAll = false

	ti := textinput.New()
	ti.CharLimit = 256

	if defaultCategory == "" {
		if names := s.CategoryNames(); len(names) > 0 {
			defaultCategory = names[0]
		}
	}

	m := RootModel{
		session:  s,
		notifier: n,
		keys:     DefaultKeyMap(),
		help:     h,
		query:    q,
		editor:   newEditor(s.CategoryNames(), defaultCategory),
		input:    ti,
		now:      time.Now,
	}
	m.refresh("")
	return m
}

// Init sends the overdue and due-today reminders once, if notifications are on
func (m RootModel) Init() tea.Cmd {
	if m.notifier == nil || !m.notifier.IsEnabled() || !m.notifier.Available() {
		return nil
	}
	tasks := m.session.Tasks()
	now := m.now()
	n := m.notifier
	return func() tea.Msg {
		sent, err := n.SendOverdueReminder(tasks, now)
		if err != nil {
			return reminderMsg{err: err}
		}
		for _, t := range notify.DueToday(tasks, now) {
			if err := n.SendDueReminder(t.Name, t.Deadline.Sub(now)); err != nil {
				return reminderMsg{sent: sent, err: err}
			}
			sent = true
		}
		return reminderMsg{sent: sent}
	}
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 12
		return m, nil

	case tea.KeyMsg:
		debug.Logf("ui: key %q in mode %s", msg.String(), m.mode)
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.ThemeCycle) {
			next := theme.Next()
			theme.SetTheme(next)
			return m.setStatus("Theme: " + next.Name)
		}

		m.errorMsg = ""
		switch m.mode {
		case ModeForm:
			return m.updateForm(msg)
		case ModeConfirmDelete, ModeConfirmClear:
			return m.updateConfirm(msg)
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeNewCategory, ModeRename, ModeQuickAdd:
			return m.updatePrompt(msg)
		}
		return m.updateNormal(msg)

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case StatusMsg:
		return m.setStatus(msg.Message)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
		}
		return m, nil

	case reminderMsg:
		if msg.err != nil {
			debug.Logf("ui: reminder failed: %v", msg.err)
		}
		if msg.sent {
			return m.setStatus("Sent reminders for overdue and due-today tasks")
		}
		return m, nil
	}

	if m.mode.IsInput() {
		cmd := m.forwardToInput(msg)
		return m, cmd
	}
	return m, nil
}

func (m RootModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		m.help.ShowAll = m.helpVisible
		return m, nil

	case m.helpVisible && key.Matches(msg, m.keys.Cancel):
		m.helpVisible = false
		m.help.ShowAll = false
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(len(m.visible)-1, 0)

	case key.Matches(msg, m.keys.Add):
		m.mode = ModeForm
		cmd := m.editor.openCreate()
		return m, cmd

	case key.Matches(msg, m.keys.QuickAdd):
		return m.openPrompt(ModeQuickAdd, "Buy milk !2 #Personal due:tomorrow", "")

	case key.Matches(msg, m.keys.Edit):
		task, ok := m.current()
		if !ok {
			return m, nil
		}
		m.mode = ModeForm
		cmd := m.editor.openEdit(task)
		return m, cmd

	case key.Matches(msg, m.keys.Toggle):
		task, ok := m.current()
		if !ok {
			return m, nil
		}
		if _, err := m.session.SetDone(task.ID, !task.IsDone); err != nil {
			return m.fail(err)
		}
		m.refresh(task.ID)
		if task.IsDone {
			return m.setStatus("Reopened: " + task.Name)
		}
		return m.setStatus("Completed: " + task.Name)

	case key.Matches(msg, m.keys.Delete):
		task, ok := m.current()
		if !ok {
			return m, nil
		}
		m.pendingID = task.ID
		m.mode = ModeConfirmDelete

	case key.Matches(msg, m.keys.ClearDone):
		if !slices.ContainsFunc(m.session.Tasks(), func(t model.Task) bool { return t.IsDone }) {
			return m.setStatus("No completed tasks")
		}
		m.mode = ModeConfirmClear

	case key.Matches(msg, m.keys.Search):
		return m.openPrompt(ModeSearch, "Search tasks...", m.query.Search)

	case key.Matches(msg, m.keys.StatusFilter):
		m.query.Status = m.query.Status.Next()
		m.refresh(m.currentID())
	case key.Matches(msg, m.keys.CategoryNext):
		m.query.Category = m.nextCategoryFilter()
		m.refresh(m.currentID())
	case key.Matches(msg, m.keys.SortKey):
		m.query.Sort = m.query.Sort.Next()
		m.refresh(m.currentID())
	case key.Matches(msg, m.keys.SortOrder):
		m.query.Order = m.query.Order.Toggle()
		m.refresh(m.currentID())

	case key.Matches(msg, m.keys.NewCategory):
		return m.openPrompt(ModeNewCategory, "Name icon (icons: "+strings.Join(model.IconTags(), ", ")+")", "")
	case key.Matches(msg, m.keys.Rename):
		return m.openPrompt(ModeRename, "Your name", m.session.UserName())
	}
	return m, nil
}

func (m RootModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := &m.editor
	switch {
	case key.Matches(msg, m.keys.Cancel):
		e.close()
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m.submitForm()

	case key.Matches(msg, m.keys.NextField):
		cmd := e.setFocus(e.focus + 1)
		return m, cmd
	case key.Matches(msg, m.keys.PrevField):
		cmd := e.setFocus(e.focus - 1)
		return m, cmd
	}

	switch e.focus {
	case fieldPriority:
		switch {
		case key.Matches(msg, m.keys.Left):
			e.cyclePriority(-1)
		case key.Matches(msg, m.keys.Right):
			e.cyclePriority(1)
		case msg.String() == "1" || msg.String() == "2" || msg.String() == "3":
			e.form.SetPriority(model.Priority(msg.Runes[0] - '0'))
		}
		return m, nil
	case fieldCategory:
		switch {
		case key.Matches(msg, m.keys.Left):
			e.cycleCategory(-1)
		case key.Matches(msg, m.keys.Right):
			e.cycleCategory(1)
		}
		return m, nil
	}
	cmd := e.updateInput(msg)
	return m, cmd
}

func (m RootModel) submitForm() (tea.Model, tea.Cmd) {
	creating := m.editor.form.State() == form.CreatingNew
	task, err := m.editor.submit(m.session, m.now())

	var verr *form.ValidationError
	switch {
	case errors.As(err, &verr):
		debug.Logf("ui: form rejected: %v", err)
		return m, nil
	case errors.Is(err, form.ErrTaskGone):
		m.mode = ModeNormal
		m.refresh("")
		return m.fail(err)
	case err != nil:
		m.editor.close()
		m.mode = ModeNormal
		return m.fail(err)
	}

	m.mode = ModeNormal
	m.refresh(task.ID)
	if creating {
		return m.setStatus("Added: " + task.Name)
	}
	return m.setStatus("Saved: " + task.Name)
}

func (m RootModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	mode := m.mode
	m.mode = ModeNormal
	if !key.Matches(msg, m.keys.Yes) {
		m.pendingID = ""
		return m, nil
	}

	if mode == ModeConfirmClear {
		n, err := m.session.RemoveCompleted()
		if err != nil {
			return m.fail(err)
		}
		m.refresh(m.currentID())
		return m.setStatus(fmt.Sprintf("Cleared %d completed task(s)", n))
	}

	id := m.pendingID
	m.pendingID = ""
	task, _ := m.session.Task(id)
	found, err := m.session.RemoveTask(id)
	if err != nil {
		return m.fail(err)
	}
	m.refresh("")
	if !found {
		return m, nil
	}
	return m.setStatus("Deleted: " + task.Name)
}

func (m RootModel) openPrompt(mode Mode, placeholder, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return m, textinput.Blink
}

func (m RootModel) closePrompt() RootModel {
	m.mode = ModeNormal
	m.input.Blur()
	m.input.SetValue("")
	return m
}

// updateSearch filters as the user types; esc drops the term
func (m RootModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.query.Search = ""
		m = m.closePrompt()
		m.refresh(m.currentID())
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m = m.closePrompt()
		return m, nil
	}

	cmd := m.forwardToInput(msg)
	m.query.Search = m.input.Value()
	m.refresh(m.currentID())
	return m, cmd
}

func (m RootModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.closePrompt(), nil
	case key.Matches(msg, m.keys.Confirm):
	default:
		cmd := m.forwardToInput(msg)
		return m, cmd
	}

	mode := m.mode
	value := strings.TrimSpace(m.input.Value())
	m = m.closePrompt()

	switch mode {
	case ModeRename:
		if err := m.session.SetUserName(value); err != nil {
			return m.fail(err)
		}
		return m.setStatus("Hello, " + m.session.UserName())

	case ModeNewCategory:
		name, icon := splitCategoryInput(value)
		c, err := m.session.AddCategory(name, icon)
		if err != nil {
			return m.fail(err)
		}
		m.editor.setCategories(m.session.CategoryNames())
		return m.setStatus("Added category " + c.Label())

	case ModeQuickAdd:
		if value == "" {
			return m, nil
		}
		m.mode = ModeForm
		cmd := m.editor.openDraft(quickadd.Parse(value, m.now()))
		next, submitCmd := m.submitForm()
		return next, tea.Batch(cmd, submitCmd)
	}
	return m, nil
}

// splitCategoryInput reads "Name icon"; the last word is the icon tag
// when it is one, otherwise the whole line is the name
func splitCategoryInput(s string) (name, icon string) {
	fields := strings.Fields(s)
	if len(fields) > 1 {
		last := strings.ToLower(fields[len(fields)-1])
		if model.IsKnownIcon(last) {
			return strings.Join(fields[:len(fields)-1], " "), last
		}
	}
	return strings.Join(fields, " "), "star"
}

func (m *RootModel) forwardToInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.mode == ModeForm {
		return m.editor.updateInput(msg)
	}
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// refresh recomputes the visible rows and keeps the cursor on keepID
// when that task is still shown
func (m *RootModel) refresh(keepID string) {
	m.visible = m.query.Apply(m.session.Tasks())
	if keepID != "" {
		if i := slices.IndexFunc(m.visible, func(t model.Task) bool { return t.ID == keepID }); i >= 0 {
			m.cursor = i
			return
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
}

func (m RootModel) current() (model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return model.Task{}, false
	}
	return m.visible[m.cursor], true
}

func (m RootModel) currentID() string {
	if t, ok := m.current(); ok {
		return t.ID
	}
	return ""
}

// nextCategoryFilter steps through "all" followed by each category
func (m RootModel) nextCategoryFilter() string {
	options := append([]string{view.AllCategories}, m.session.CategoryNames()...)
	i := slices.Index(options, m.query.Category)
	return options[(i+1)%len(options)]
}

func (m RootModel) setStatus(s string) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.statusMsg = s
	m.errorMsg = ""
	return m, clearStatusAfter(m.statusSeq)
}

func (m RootModel) fail(err error) (tea.Model, tea.Cmd) {
	debug.Logf("ui: %v", err)
	m.errorMsg = err.Error()
	m.statusMsg = ""
	return m, nil
}
