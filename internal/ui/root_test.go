package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dori/tsuzuki/internal/app"
	"github.com/dori/tsuzuki/internal/db"
	"github.com/dori/tsuzuki/internal/form"
	"github.com/dori/tsuzuki/internal/model"
	"github.com/dori/tsuzuki/internal/persist"
	"github.com/dori/tsuzuki/internal/view"
)

func newTestModel(t *testing.T) RootModel {
	t.Helper()
	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	s := app.NewSession(persist.New(db.NewMemory(), ids), ids)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	m := newModel(s, nil, view.DefaultQuery(), "")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(RootModel)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m RootModel, msgs ...tea.KeyMsg) RootModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(RootModel)
	}
	return m
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	right = tea.KeyMsg{Type: tea.KeyRight}
)

func findByName(tasks []model.Task, name string) (model.Task, bool) {
	for _, task := range tasks {
		if task.Name == name {
			return task, true
		}
	}
	return model.Task{}, false
}

func TestFormAddsTask(t *testing.T) {
	m := newTestModel(t)
	before := len(m.session.Tasks())

	m = press(t, m, runes("a"))
	if m.mode != ModeForm {
		t.Fatalf("mode = %s, want edit", m.mode)
	}

	// name, then priority 1, skip deadline, category one step right of Work
	m = press(t, m, runes("Buy milk"), tab, runes("1"), tab, tab, right, enter)

	if m.mode != ModeNormal {
		t.Fatalf("form still open, errors: %v", m.editor.errs)
	}
	tasks := m.session.Tasks()
	if len(tasks) != before+1 {
		t.Fatalf("task count = %d, want %d", len(tasks), before+1)
	}
	task, ok := findByName(tasks, "Buy milk")
	if !ok {
		t.Fatal("new task not stored")
	}
	if task.Priority != model.PriorityHigh || task.Category != "School" || task.Deadline != nil || task.IsDone {
		t.Errorf("stored task = %+v", task)
	}
	if !strings.HasPrefix(m.statusMsg, "Added") {
		t.Errorf("status = %q", m.statusMsg)
	}
	if cur, _ := m.current(); cur.ID != task.ID {
		t.Errorf("cursor on %q, want the new task", cur.Name)
	}
}

func TestFormShowsValidationErrors(t *testing.T) {
	m := newTestModel(t)
	before := len(m.session.Tasks())

	m = press(t, m, runes("a"), runes("A"), enter)
	if m.mode != ModeForm {
		t.Fatal("form closed on invalid input")
	}
	if _, ok := m.editor.errs[form.FieldName]; !ok {
		t.Errorf("errs = %v, want a name error", m.editor.errs)
	}

	m = press(t, m, tab, tab, runes("someday maybe"), enter)
	if _, ok := m.editor.errs[form.FieldDeadline]; !ok {
		t.Errorf("errs = %v, want a deadline error", m.editor.errs)
	}

	m = press(t, m, esc)
	if m.mode != ModeNormal {
		t.Errorf("esc left mode %s", m.mode)
	}
	if got := len(m.session.Tasks()); got != before {
		t.Errorf("task count = %d, want %d", got, before)
	}
}

func TestToggleAndDelete(t *testing.T) {
	m := newTestModel(t)
	first, _ := m.current()

	m = press(t, m, runes("x"))
	task, _ := m.session.Task(first.ID)
	if task.IsDone == first.IsDone {
		t.Errorf("toggle left IsDone = %v", task.IsDone)
	}

	m = press(t, m, runes("d"), runes("n"))
	if _, ok := m.session.Task(first.ID); !ok {
		t.Fatal("task deleted without confirmation")
	}

	m = press(t, m, runes("d"), runes("y"))
	if _, ok := m.session.Task(first.ID); ok {
		t.Error("task survived confirmed delete")
	}
}

func TestClearCompleted(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("C"), runes("y"))
	for _, task := range m.session.Tasks() {
		if task.IsDone {
			t.Errorf("done task %q survived clear", task.Name)
		}
	}
}

func TestQuickAdd(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("A"), runes("Water plants !1 #Personal"), enter)

	if m.mode != ModeNormal {
		t.Fatalf("mode = %s, errors %v", m.mode, m.editor.errs)
	}
	task, ok := findByName(m.session.Tasks(), "Water plants")
	if !ok {
		t.Fatal("quick-added task missing")
	}
	if task.Priority != model.PriorityHigh || task.Category != "Personal" {
		t.Errorf("task = %+v", task)
	}
}

func TestQuickAddOpensFormOnError(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("A"), runes("x #Nowhere"), enter)

	if m.mode != ModeForm {
		t.Fatalf("mode = %s, want the form with errors", m.mode)
	}
	if _, ok := m.editor.errs[form.FieldCategory]; !ok {
		t.Errorf("errs = %v, want a category error", m.editor.errs)
	}
}

func TestSearchAndFilters(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("/"), runes("ROOM"))
	if len(m.visible) != 1 || m.visible[0].Name != "Clean my room" {
		t.Fatalf("search visible = %v", m.visible)
	}
	m = press(t, m, esc)
	if m.query.Search != "" || len(m.visible) != len(m.session.Tasks()) {
		t.Errorf("esc should clear the search, visible %d", len(m.visible))
	}

	m = press(t, m, runes("f"))
	if m.query.Status != view.StatusActive {
		t.Fatalf("status = %s", m.query.Status)
	}
	for _, task := range m.visible {
		if task.IsDone {
			t.Errorf("active filter shows done task %q", task.Name)
		}
	}

	m = press(t, m, runes("c"))
	if m.query.Category != "Work" {
		t.Errorf("category filter = %q, want Work", m.query.Category)
	}

	m = press(t, m, runes("s"), runes("o"))
	if m.query.Sort != view.SortDeadline || m.query.Order != view.Desc {
		t.Errorf("sort = %s %s", m.query.Sort, m.query.Order)
	}
}

func TestNewCategoryPrompt(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("n"), runes("Errands cart"), enter)

	if m.errorMsg != "" {
		t.Fatalf("error: %s", m.errorMsg)
	}
	names := m.session.CategoryNames()
	if names[len(names)-1] != "Errands" {
		t.Fatalf("categories = %v", names)
	}
	if len(m.editor.categories) != len(names) {
		t.Error("form category list not refreshed")
	}
}

func TestViewShowsGreetingAndTasks(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	for _, want := range []string{"Welcome, Guest!", "Calculus II assignment", "status: all"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSplitCategoryInput(t *testing.T) {
	tests := []struct {
		in, name, icon string
	}{
		{"Errands cart", "Errands", "cart"},
		{"Side Projects code", "Side Projects", "code"},
		{"Reading", "Reading", "star"},
		{"Buy a car", "Buy a car", "star"},
	}
	for _, tt := range tests {
		name, icon := splitCategoryInput(tt.in)
		if name != tt.name || icon != tt.icon {
			t.Errorf("splitCategoryInput(%q) = %q, %q", tt.in, name, icon)
		}
	}
}

func TestEditTitleNamesOriginalTask(t *testing.T) {
	m := newTestModel(t)
	cur, _ := m.current()

	m = press(t, m, runes("e"))
	if m.mode != ModeForm {
		t.Fatalf("mode = %s, want edit", m.mode)
	}
	m = press(t, m, runes(" renamed"))
	if got, want := m.editor.title(), "Edit task: "+cur.Name; got != want {
		t.Errorf("title = %q, want %q", got, want)
	}

	m = press(t, m, esc, runes("a"))
	if got := m.editor.title(); got != "New task" {
		t.Errorf("create title = %q", got)
	}
}
