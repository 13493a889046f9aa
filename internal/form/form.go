// Package form holds the task edit form: the staged values of a task being
// created or edited, their validation, and the commit into the session.
package form

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dori/tsuzuki/internal/model"
)

// Name length limits, in characters after trimming
const (
	MinNameLen = 2
	MaxNameLen = 32
)

// Field names used in ValidationError
const (
	FieldName     = "name"
	FieldPriority = "priority"
	FieldDeadline = "deadline"
	FieldCategory = "category"
)

var (
	ErrNotOpen  = errors.New("form is not open")
	ErrTaskGone = errors.New("task being edited no longer exists")
)

// State is the form's mode
type State int

const (
	Closed State = iota
	CreatingNew
	EditingExisting
)

func (s State) String() string {
	switch s {
	case CreatingNew:
		return "creating"
	case EditingExisting:
		return "editing"
	default:
		return "closed"
	}
}

// ValidationError maps each rejected field to a message
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "invalid task: " + strings.Join(parts, "; ")
}

// Committer applies a validated form to the task list
type Committer interface {
	CreateTask(name string, priority model.Priority, deadline *time.Time, category string) (model.Task, error)
	UpdateTask(task model.Task) (bool, error)
}

// Form stages field values until they are submitted or discarded
type Form struct {
	state    State
	original model.Task

	name     string
	priority model.Priority
	deadline *time.Time
	category string

	categories      []string
	defaultCategory string
	now             func() time.Time
}

// New creates a closed form. categories lists the names a task may refer
// to; defaultCategory is staged when a new task is opened.
func New(categories []string, defaultCategory string) *Form {
	return &Form{
		categories:      slices.Clone(categories),
		defaultCategory: defaultCategory,
		now:             time.Now,
	}
}

// SetCategories replaces the known category names
func (f *Form) SetCategories(names []string) {
	f.categories = slices.Clone(names)
}

func (f *Form) State() State { return f.state }
func (f *Form) IsOpen() bool { return f.state != Closed }

// Editing returns the task being edited while in EditingExisting
func (f *Form) Editing() (model.Task, bool) {
	if f.state != EditingExisting {
		return model.Task{}, false
	}
	return f.original.Clone(), true
}

// OpenCreate stages defaults for a new task
func (f *Form) OpenCreate() {
	f.reset()
	f.state = CreatingNew
	f.priority = model.DefaultPriority
	f.category = f.defaultCategory
}

// OpenEdit stages the fields of an existing task
func (f *Form) OpenEdit(task model.Task) {
	f.reset()
	f.state = EditingExisting
	f.original = task.Clone()
	f.name = task.Name
	f.priority = task.Priority
	f.category = task.Category
	if task.Deadline != nil {
		d := *task.Deadline
		f.deadline = &d
	}
}

// Cancel discards staged values and closes the form
func (f *Form) Cancel() error {
	if f.state == Closed {
		return ErrNotOpen
	}
	f.reset()
	return nil
}

func (f *Form) reset() {
	f.state = Closed
	f.original = model.Task{}
	f.name = ""
	f.priority = 0
	f.deadline = nil
	f.category = ""
}

func (f *Form) Name() string             { return f.name }
func (f *Form) Priority() model.Priority { return f.priority }
func (f *Form) Category() string         { return f.category }

// Deadline returns a copy of the staged deadline
func (f *Form) Deadline() *time.Time {
	if f.deadline == nil {
		return nil
	}
	d := *f.deadline
	return &d
}

// Setters are ignored while the form is closed.

func (f *Form) SetName(name string) {
	if f.IsOpen() {
		f.name = name
	}
}

func (f *Form) SetPriority(p model.Priority) {
	if f.IsOpen() {
		f.priority = p
	}
}

func (f *Form) SetCategory(name string) {
	if f.IsOpen() {
		f.category = name
	}
}

// SetDeadline stages a deadline; nil clears it
func (f *Form) SetDeadline(d *time.Time) {
	if !f.IsOpen() {
		return
	}
	if d == nil {
		f.deadline = nil
		return
	}
	v := *d
	f.deadline = &v
}

// Validate checks the staged values without committing them
func (f *Form) Validate() error {
	if f.state == Closed {
		return ErrNotOpen
	}

	problems := make(map[string]string)

	n := utf8.RuneCountInString(strings.TrimSpace(f.name))
	switch {
	case n == 0:
		problems[FieldName] = "name is required"
	case n < MinNameLen || n > MaxNameLen:
		problems[FieldName] = fmt.Sprintf("name must be %d to %d characters", MinNameLen, MaxNameLen)
	}

	if !f.priority.Valid() {
		problems[FieldPriority] = "priority must be 1, 2 or 3"
	}

	switch {
	case strings.TrimSpace(f.category) == "":
		problems[FieldCategory] = "category is required"
	case len(f.categories) > 0 && !slices.Contains(f.categories, f.category):
		problems[FieldCategory] = fmt.Sprintf("unknown category %q", f.category)
	}

	// Only a new task is held to a future deadline; an existing one may
	// keep a date that has since passed.
	if f.state == CreatingNew && f.deadline != nil && f.deadline.Before(f.now()) {
		problems[FieldDeadline] = "deadline is in the past"
	}

	if len(problems) > 0 {
		return &ValidationError{Fields: problems}
	}
	return nil
}

// Submit validates and commits the staged task. On a validation error the
// form stays open with its values intact.
func (f *Form) Submit(c Committer) (model.Task, error) {
	if err := f.Validate(); err != nil {
		return model.Task{}, err
	}

	name := strings.TrimSpace(f.name)

	switch f.state {
	case CreatingNew:
		task, err := c.CreateTask(name, f.priority, f.Deadline(), f.category)
		if err != nil {
			return model.Task{}, err
		}
		f.reset()
		return task, nil

	case EditingExisting:
		task := f.original.Clone()
		task.Name = name
		task.Priority = f.priority
		task.Deadline = f.Deadline()
		task.Category = f.category

		found, err := c.UpdateTask(task)
		if err != nil {
			return model.Task{}, err
		}
		f.reset()
		if !found {
			return model.Task{}, ErrTaskGone
		}
		return task, nil
	}
	return model.Task{}, ErrNotOpen
}
