package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dori/tsuzuki/internal/model"
	"github.com/google/uuid"
)

// maxIDAttempts bounds how often Create asks the generator for a fresh id
const maxIDAttempts = 8

var (
	ErrDuplicateID   = errors.New("duplicate task id")
	ErrAmbiguousID   = errors.New("id prefix matches more than one task")
	ErrTaskNotFound  = errors.New("task not found")
	ErrIDUnavailable = errors.New("could not allocate a unique id")
)

// IDGen produces opaque unique identifiers
type IDGen func() string

// DefaultIDGen returns random UUIDv4 strings
func DefaultIDGen() string {
	return uuid.NewString()
}

// TaskStore owns the canonical in-memory list of tasks.
// It never persists anything itself.
type TaskStore struct {
	tasks []model.Task
	index map[string]int
	newID IDGen
}

// NewTaskStore creates a store seeded with tasks in the given order.
// A starting list with repeated ids is rejected.
func NewTaskStore(tasks []model.Task, idgen IDGen) (*TaskStore, error) {
	if idgen == nil {
		idgen = DefaultIDGen
	}
	s := &TaskStore{
		tasks: make([]model.Task, 0, len(tasks)),
		index: make(map[string]int, len(tasks)),
		newID: idgen,
	}
	for _, t := range tasks {
		if _, ok := s.index[t.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
		}
		s.index[t.ID] = len(s.tasks)
		s.tasks = append(s.tasks, t.Clone())
	}
	return s, nil
}

// Create appends a new open task and returns it.
// The name is expected to have been validated by the caller.
func (s *TaskStore) Create(name string, priority model.Priority, deadline *time.Time, category string) (model.Task, error) {
	id, err := s.freshID()
	if err != nil {
		return model.Task{}, err
	}

	t := model.Task{
		ID:       id,
		Name:     name,
		IsDone:   false,
		Priority: priority,
		Deadline: deadline,
		Category: category,
	}.Clone()

	s.index[id] = len(s.tasks)
	s.tasks = append(s.tasks, t)
	return t.Clone(), nil
}

func (s *TaskStore) freshID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if id == "" {
			continue
		}
		if _, taken := s.index[id]; !taken {
			return id, nil
		}
	}
	return "", ErrIDUnavailable
}

// Update replaces the record whose id matches task.ID.
// Returns false, changing nothing, when no such record exists.
func (s *TaskStore) Update(task model.Task) bool {
	i, ok := s.index[task.ID]
	if !ok {
		return false
	}
	s.tasks[i] = task.Clone()
	return true
}

// SetDone sets only the completion flag of a task
func (s *TaskStore) SetDone(id string, done bool) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.tasks[i].IsDone = done
	return true
}

// Remove deletes a task. Deletion is immediate and unrecoverable.
func (s *TaskStore) Remove(id string) bool {
	if _, ok := s.index[id]; !ok {
		return false
	}
	s.retain(func(t model.Task) bool { return t.ID != id })
	return true
}

// RemoveCompleted deletes every completed task and returns how many went
func (s *TaskStore) RemoveCompleted() int {
	before := len(s.tasks)
	s.retain(func(t model.Task) bool { return !t.IsDone })
	return before - len(s.tasks)
}

// retain keeps tasks for which keep returns true and rebuilds the index
func (s *TaskStore) retain(keep func(model.Task) bool) {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if keep(t) {
			kept = append(kept, t)
		}
	}
	// clear the tail so removed deadlines are not kept alive
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = model.Task{}
	}
	s.tasks = kept

	s.index = make(map[string]int, len(s.tasks))
	for i, t := range s.tasks {
		s.index[t.ID] = i
	}
}

// List returns a copy of all tasks in insertion order
func (s *TaskStore) List() []model.Task {
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Len returns the number of tasks
func (s *TaskStore) Len() int {
	return len(s.tasks)
}

// Get returns a single task by id
func (s *TaskStore) Get(id string) (model.Task, bool) {
	i, ok := s.index[id]
	if !ok {
		return model.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// FindByPrefix resolves a full id or a unique id prefix
func (s *TaskStore) FindByPrefix(prefix string) (model.Task, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return model.Task{}, ErrTaskNotFound
	}
	if t, ok := s.Get(prefix); ok {
		return t, nil
	}

	var match *model.Task
	for i := range s.tasks {
		if !strings.HasPrefix(s.tasks[i].ID, prefix) {
			continue
		}
		if match != nil {
			return model.Task{}, fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
		}
		match = &s.tasks[i]
	}
	if match == nil {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, prefix)
	}
	return match.Clone(), nil
}
