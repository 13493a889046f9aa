package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dori/tsuzuki/internal/model"
	"github.com/dori/tsuzuki/internal/store"
)

// Fixed slot keys in the key-value store
const (
	TasksKey      = "TodoApp"
	CategoriesKey = "TodoAppCategories"
	UserNameKey   = "TodoAppUserName"
)

// KV is the durable key-value facility the adapter writes to
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// CorruptSlotError reports a slot whose stored text could not be decoded.
// Load substitutes seed data for that slot and still returns a snapshot.
type CorruptSlotError struct {
	Key string
	Err error
}

func (e *CorruptSlotError) Error() string {
	return fmt.Sprintf("corrupt data in %q: %v", e.Key, e.Err)
}

func (e *CorruptSlotError) Unwrap() error {
	return e.Err
}

// Snapshot is the state read back from storage
type Snapshot struct {
	Tasks      []model.Task
	Categories []model.Category

	// Set when the slot was empty, absent or corrupt and seed data was used
	SeededTasks      bool
	SeededCategories bool
}

// Adapter serializes the task list and categories to their slots
type Adapter struct {
	kv    KV
	newID store.IDGen
}

// New creates an adapter over kv. idgen supplies ids for seed records.
func New(kv KV, idgen store.IDGen) *Adapter {
	if idgen == nil {
		idgen = store.DefaultIDGen
	}
	return &Adapter{kv: kv, newID: idgen}
}

// Save overwrites both slots with the given collections
func (a *Adapter) Save(tasks []model.Task, categories []model.Category) error {
	taskJSON, err := json.Marshal(TaskRecords(tasks))
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	catJSON, err := json.Marshal(CategoryRecords(categories))
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}

	if err := a.kv.Set(TasksKey, string(taskJSON)); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	if err := a.kv.Set(CategoriesKey, string(catJSON)); err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}
	return nil
}

// Load reads both slots. Absent or empty slots yield seed data. A slot
// holding undecodable text also yields seed data, and the returned error
// is one or more *CorruptSlotError next to a usable snapshot. Any other
// error means storage could not be read and the snapshot is empty.
func (a *Adapter) Load() (Snapshot, error) {
	var snap Snapshot
	var corrupt []error

	tasks, seeded, err := a.loadTasks()
	var cse *CorruptSlotError
	switch {
	case errors.As(err, &cse):
		corrupt = append(corrupt, err)
	case err != nil:
		return Snapshot{}, err
	}
	snap.Tasks, snap.SeededTasks = tasks, seeded

	cats, seeded, err := a.loadCategories()
	switch {
	case errors.As(err, &cse):
		corrupt = append(corrupt, err)
	case err != nil:
		return Snapshot{}, err
	}
	snap.Categories, snap.SeededCategories = cats, seeded

	return snap, errors.Join(corrupt...)
}

func (a *Adapter) loadTasks() ([]model.Task, bool, error) {
	raw, ok, err := a.kv.Get(TasksKey)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read tasks: %w", err)
	}
	if !ok {
		return SeedTasks(a.newID), true, nil
	}

	var records []TaskRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return SeedTasks(a.newID), true, &CorruptSlotError{Key: TasksKey, Err: err}
	}
	if len(records) == 0 {
		return SeedTasks(a.newID), true, nil
	}

	tasks, err := tasksFromRecords(records)
	if err != nil {
		return SeedTasks(a.newID), true, &CorruptSlotError{Key: TasksKey, Err: err}
	}
	return tasks, false, nil
}

func (a *Adapter) loadCategories() ([]model.Category, bool, error) {
	raw, ok, err := a.kv.Get(CategoriesKey)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read categories: %w", err)
	}
	if !ok {
		return SeedCategories(a.newID), true, nil
	}

	var records []CategoryRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return SeedCategories(a.newID), true, &CorruptSlotError{Key: CategoriesKey, Err: err}
	}
	if len(records) == 0 {
		return SeedCategories(a.newID), true, nil
	}

	categories, err := categoriesFromRecords(records)
	if err != nil {
		return SeedCategories(a.newID), true, &CorruptSlotError{Key: CategoriesKey, Err: err}
	}
	return categories, false, nil
}

// LoadUserName reads the display name slot
func (a *Adapter) LoadUserName() (string, bool, error) {
	name, ok, err := a.kv.Get(UserNameKey)
	if err != nil {
		return "", false, fmt.Errorf("failed to read user name: %w", err)
	}
	return name, ok, nil
}

// SaveUserName overwrites the display name slot
func (a *Adapter) SaveUserName(name string) error {
	if err := a.kv.Set(UserNameKey, name); err != nil {
		return fmt.Errorf("failed to save user name: %w", err)
	}
	return nil
}
