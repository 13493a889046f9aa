package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dori/tsuzuki/internal/debug"
	"github.com/dori/tsuzuki/internal/model"
	"github.com/dori/tsuzuki/internal/persist"
	"github.com/dori/tsuzuki/internal/store"
)

// DefaultUserName is shown until the user sets a display name
const DefaultUserName = "Guest"

var ErrNotReady = errors.New("session has not finished loading")

// Storage is the durable side of a session
type Storage interface {
	Load() (persist.Snapshot, error)
	Save(tasks []model.Task, categories []model.Category) error
	LoadUserName() (string, bool, error)
	SaveUserName(name string) error
}

// Session owns the in-memory task list and categories for the single user.
//
// Initialization is load-then-mark-ready: NewSession returns an empty,
// unready session; Load reads storage, installs the result and only then
// marks the session ready. Every mutation made before that fails with
// ErrNotReady and writes nothing, so persisted data can never be
// overwritten with defaults. After each mutation that changed something
// the full state is saved synchronously.
type Session struct {
	storage    Storage
	newID      store.IDGen
	tasks      *store.TaskStore
	categories *store.CategoryRegistry
	userName   string
	ready      bool
}

// NewSession creates an unready session over storage
func NewSession(storage Storage, idgen store.IDGen) *Session {
	if idgen == nil {
		idgen = store.DefaultIDGen
	}
	return &Session{storage: storage, newID: idgen}
}

// Load reads storage and marks the session ready. Seed data that filled
// an absent or empty slot is written back at once so its ids stay fixed
// across runs. A corrupt slot still leaves the session ready with seed
// data in its place, but nothing is written: the unreadable text stays
// in storage until the next mutation, and the *persist.CorruptSlotError
// is returned for the caller to report.
func (s *Session) Load() error {
	snap, loadErr := s.storage.Load()
	var cse *persist.CorruptSlotError
	if loadErr != nil && !errors.As(loadErr, &cse) {
		return fmt.Errorf("failed to load tasks: %w", loadErr)
	}

	tasks, err := store.NewTaskStore(snap.Tasks, s.newID)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	name, ok, err := s.storage.LoadUserName()
	if err != nil {
		return err
	}
	if !ok {
		name = ""
	}

	s.tasks = tasks
	s.categories = store.NewCategoryRegistry(snap.Categories, s.newID)
	s.userName = name
	s.ready = true

	debug.Logf("session ready: %d tasks (seeded=%v), %d categories (seeded=%v)",
		len(snap.Tasks), snap.SeededTasks, len(snap.Categories), snap.SeededCategories)
	if loadErr != nil {
		debug.Logf("load reported corruption: %v", loadErr)
		return loadErr
	}

	if snap.SeededTasks || snap.SeededCategories {
		if err := s.save(); err != nil {
			return fmt.Errorf("failed to store seed data: %w", err)
		}
	}
	return nil
}

// Ready reports whether Load has completed
func (s *Session) Ready() bool { return s.ready }

func (s *Session) save() error {
	if err := s.storage.Save(s.tasks.List(), s.categories.List()); err != nil {
		debug.Logf("save failed: %v", err)
		return err
	}
	return nil
}

// CreateTask appends a new open task and saves
func (s *Session) CreateTask(name string, priority model.Priority, deadline *time.Time, category string) (model.Task, error) {
	if !s.ready {
		return model.Task{}, ErrNotReady
	}
	task, err := s.tasks.Create(name, priority, deadline, category)
	if err != nil {
		return model.Task{}, err
	}
	debug.Logf("created task %s %q", task.ID, task.Name)
	return task, s.save()
}

// UpdateTask replaces the task with the same id. It reports false, and
// saves nothing, when no such task exists.
func (s *Session) UpdateTask(task model.Task) (bool, error) {
	if !s.ready {
		return false, ErrNotReady
	}
	if !s.tasks.Update(task) {
		return false, nil
	}
	return true, s.save()
}

// SetDone marks a task done or open
func (s *Session) SetDone(id string, done bool) (bool, error) {
	if !s.ready {
		return false, ErrNotReady
	}
	if !s.tasks.SetDone(id, done) {
		return false, nil
	}
	return true, s.save()
}

// RemoveTask deletes a task
func (s *Session) RemoveTask(id string) (bool, error) {
	if !s.ready {
		return false, ErrNotReady
	}
	if !s.tasks.Remove(id) {
		return false, nil
	}
	return true, s.save()
}

// RemoveCompleted deletes every done task and returns how many went
func (s *Session) RemoveCompleted() (int, error) {
	if !s.ready {
		return 0, ErrNotReady
	}
	n := s.tasks.RemoveCompleted()
	if n == 0 {
		return 0, nil
	}
	return n, s.save()
}

// AddCategory registers a category and saves
func (s *Session) AddCategory(name, icon string) (model.Category, error) {
	if !s.ready {
		return model.Category{}, ErrNotReady
	}
	c, err := s.categories.Add(name, icon)
	if err != nil {
		return model.Category{}, err
	}
	return c, s.save()
}

// SetUserName stores a new display name
func (s *Session) SetUserName(name string) error {
	if !s.ready {
		return ErrNotReady
	}
	name = strings.TrimSpace(name)
	if err := s.storage.SaveUserName(name); err != nil {
		return err
	}
	s.userName = name
	return nil
}

// Tasks returns a copy of all tasks in stored order
func (s *Session) Tasks() []model.Task {
	if !s.ready {
		return nil
	}
	return s.tasks.List()
}

func (s *Session) Categories() []model.Category {
	if !s.ready {
		return nil
	}
	return s.categories.List()
}

func (s *Session) CategoryNames() []string {
	if !s.ready {
		return nil
	}
	return s.categories.Names()
}

// UserName returns the display name, or DefaultUserName when unset
func (s *Session) UserName() string {
	if s.userName == "" {
		return DefaultUserName
	}
	return s.userName
}

func (s *Session) Task(id string) (model.Task, bool) {
	if !s.ready {
		return model.Task{}, false
	}
	return s.tasks.Get(id)
}

// FindTask resolves a full id or a unique id prefix
func (s *Session) FindTask(prefix string) (model.Task, error) {
	if !s.ready {
		return model.Task{}, ErrNotReady
	}
	return s.tasks.FindByPrefix(prefix)
}
