package ui

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/tsuzuki/internal/form"
	"github.com/dori/tsuzuki/internal/model"
	"github.com/dori/tsuzuki/internal/quickadd"
	"github.com/dori/tsuzuki/internal/ui/theme"
)

type editorField int

const (
	fieldName editorField = iota
	fieldPriority
	fieldDeadline
	fieldCategory
	fieldCount
)

// deadlineLayout is how an existing deadline is shown for editing
const deadlineLayout = "2006-01-02 15:04"

// editor is the modal around form.Form. Text fields live in textinputs
// until submit; priority and category are staged on the form directly.
type editor struct {
	form       *form.Form
	categories []string

	name     textinput.Model
	deadline textinput.Model
	focus    editorField

	// shownDeadline is the text the deadline field was opened with. While
	// it is unchanged the stored deadline is kept as is.
	shownDeadline string

	errs map[string]string
}

func newEditor(categories []string, defaultCategory string) editor {
	name := textinput.New()
	name.Placeholder = "What needs doing?"
	name.CharLimit = form.MaxNameLen * 2

	deadline := textinput.New()
	deadline.Placeholder = "tomorrow, fri, 2025-06-01 18:00 (empty for none)"
	deadline.CharLimit = 64

	return editor{
		form:       form.New(categories, defaultCategory),
		categories: slices.Clone(categories),
		name:       name,
		deadline:   deadline,
	}
}

func (e *editor) setCategories(names []string) {
	e.categories = slices.Clone(names)
	e.form.SetCategories(names)
}

func (e *editor) openCreate() tea.Cmd {
	e.form.OpenCreate()
	e.load("")
	return e.setFocus(fieldName)
}

func (e *editor) openEdit(task model.Task) tea.Cmd {
	e.form.OpenEdit(task)
	shown := ""
	if task.Deadline != nil {
		shown = task.Deadline.Local().Format(deadlineLayout)
	}
	e.load(shown)
	return e.setFocus(fieldName)
}

// openDraft opens a new-task form already filled from a quick-add line
func (e *editor) openDraft(d quickadd.Draft) tea.Cmd {
	e.form.OpenCreate()
	e.form.SetName(d.Name)
	if d.Priority != 0 {
		e.form.SetPriority(d.Priority)
	}
	if d.Category != "" {
		e.form.SetCategory(d.Category)
	}
	e.form.SetDeadline(d.Deadline)

	shown := ""
	if d.Deadline != nil {
		shown = d.Deadline.Format(deadlineLayout)
	}
	e.load(shown)
	return e.setFocus(fieldName)
}

func (e *editor) load(shownDeadline string) {
	e.name.SetValue(e.form.Name())
	e.name.CursorEnd()
	e.deadline.SetValue(shownDeadline)
	e.deadline.CursorEnd()
	e.shownDeadline = shownDeadline
	e.errs = nil
}

func (e *editor) close() {
	_ = e.form.Cancel()
	e.name.Blur()
	e.deadline.Blur()
	e.errs = nil
}

func (e *editor) setFocus(f editorField) tea.Cmd {
	e.focus = (f + fieldCount) % fieldCount
	e.name.Blur()
	e.deadline.Blur()
	switch e.focus {
	case fieldName:
		e.name.Focus()
		return textinput.Blink
	case fieldDeadline:
		e.deadline.Focus()
		return textinput.Blink
	}
	return nil
}

func (e *editor) cyclePriority(delta int) {
	p := int(e.form.Priority()) + delta
	if p < int(model.PriorityHigh) {
		p = int(model.PriorityLow)
	} else if p > int(model.PriorityLow) {
		p = int(model.PriorityHigh)
	}
	e.form.SetPriority(model.Priority(p))
}

func (e *editor) cycleCategory(delta int) {
	if len(e.categories) == 0 {
		return
	}
	i := slices.Index(e.categories, e.form.Category())
	switch {
	case i < 0:
		i = 0
	default:
		i = (i + delta + len(e.categories)) % len(e.categories)
	}
	e.form.SetCategory(e.categories[i])
}

// updateInput routes a key to whichever text field has focus
func (e *editor) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch e.focus {
	case fieldName:
		e.name, cmd = e.name.Update(msg)
	case fieldDeadline:
		e.deadline, cmd = e.deadline.Update(msg)
	}
	return cmd
}

// submit copies the text fields into the form and commits it. A
// *form.ValidationError leaves the editor open with errs filled in.
func (e *editor) submit(c form.Committer, now time.Time) (model.Task, error) {
	e.form.SetName(e.name.Value())

	var deadlineErr error
	if e.deadline.Value() != e.shownDeadline {
		d, err := quickadd.ParseDeadline(e.deadline.Value(), now)
		if err != nil {
			deadlineErr = err
			d = nil
		}
		e.form.SetDeadline(d)
	}

	if deadlineErr != nil {
		problems := map[string]string{form.FieldDeadline: "not a date I understand"}
		var verr *form.ValidationError
		if err := e.form.Validate(); errors.As(err, &verr) {
			for k, v := range verr.Fields {
				if k != form.FieldDeadline {
					problems[k] = v
				}
			}
		}
		e.errs = problems
		return model.Task{}, &form.ValidationError{Fields: problems}
	}

	task, err := e.form.Submit(c)
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		e.errs = verr.Fields
		return model.Task{}, err
	}
	e.errs = nil
	if err != nil {
		return model.Task{}, err
	}
	e.name.Blur()
	e.deadline.Blur()
	return task, nil
}

func (e editor) title() string {
	if task, ok := e.form.Editing(); ok {
		return "Edit task: " + task.Name
	}
	return "New task"
}

func (e editor) view(width int) string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	label := func(f editorField, text string) string {
		if e.focus == f {
			return styles.FieldFocused.Render(text)
		}
		return styles.Field.Render(text)
	}
	fieldErr := func(name string) string {
		if msg, ok := e.errs[name]; ok {
			return "\n" + styles.FieldError.Render(msg)
		}
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render(e.title()))
	b.WriteString("\n")

	b.WriteString(label(fieldName, "Name") + e.name.View())
	b.WriteString(fieldErr(form.FieldName))
	b.WriteString("\n")

	p := e.form.Priority()
	stars := lipgloss.NewStyle().Foreground(t.PriorityColor(p)).Render(p.Stars())
	b.WriteString(label(fieldPriority, "Priority") + fmt.Sprintf("‹ %s %s ›", stars, p))
	b.WriteString(fieldErr(form.FieldPriority))
	b.WriteString("\n")

	b.WriteString(label(fieldDeadline, "Deadline") + e.deadline.View())
	b.WriteString(fieldErr(form.FieldDeadline))
	b.WriteString("\n")

	category := e.form.Category()
	if category == "" {
		category = "(none)"
	}
	b.WriteString(label(fieldCategory, "Category") + "‹ " + category + " ›")
	b.WriteString(fieldErr(form.FieldCategory))

	panelWidth := width - 4
	if panelWidth > 72 {
		panelWidth = 72
	}
	return styles.Panel.Width(panelWidth).Render(b.String())
}
