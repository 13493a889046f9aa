package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/dori/tsuzuki/internal/config"
	"github.com/dori/tsuzuki/internal/db"
	"github.com/dori/tsuzuki/internal/form"
	"github.com/dori/tsuzuki/internal/model"
	"github.com/dori/tsuzuki/internal/persist"
	"github.com/dori/tsuzuki/internal/view"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// countingKV records writes to a Memory store
type countingKV struct {
	*db.Memory
	sets int
}

func (c *countingKV) Set(key, value string) error {
	c.sets++
	return c.Memory.Set(key, value)
}

func newSession(t *testing.T, kv persist.KV) *Session {
	t.Helper()
	ids := seqIDs()
	return NewSession(persist.New(kv, ids), ids)
}

func TestMutationBeforeLoadWritesNothing(t *testing.T) {
	kv := &countingKV{Memory: db.NewMemory()}
	s := newSession(t, kv)

	if s.Ready() {
		t.Fatal("session should not be ready before Load")
	}
	if _, err := s.CreateTask("Buy milk", 2, nil, "Personal"); !errors.Is(err, ErrNotReady) {
		t.Errorf("CreateTask before Load = %v, want ErrNotReady", err)
	}
	if _, err := s.RemoveCompleted(); !errors.Is(err, ErrNotReady) {
		t.Errorf("RemoveCompleted before Load = %v", err)
	}
	if err := s.SetUserName("Hana"); !errors.Is(err, ErrNotReady) {
		t.Errorf("SetUserName before Load = %v", err)
	}
	if kv.sets != 0 {
		t.Fatalf("storage written %d times before load", kv.sets)
	}
}

func TestLoadStoresSeed(t *testing.T) {
	kv := &countingKV{Memory: db.NewMemory()}
	s := newSession(t, kv)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !s.Ready() {
		t.Fatal("session should be ready after Load")
	}
	if len(s.Tasks()) != 4 || len(s.Categories()) != 3 {
		t.Fatalf("expected seed data, got %d tasks %d categories", len(s.Tasks()), len(s.Categories()))
	}
	if kv.sets == 0 {
		t.Error("seed data was not written back")
	}
	if s.UserName() != DefaultUserName {
		t.Errorf("UserName = %q, want %q", s.UserName(), DefaultUserName)
	}
}

// prefixedSession draws ids that never repeat between sessions
func prefixedSession(kv persist.KV, prefix string) *Session {
	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
	return NewSession(persist.New(kv, ids), ids)
}

func TestSeedIDsSurviveReload(t *testing.T) {
	for name, initial := range map[string]string{"absent": "", "empty": "[]"} {
		t.Run(name, func(t *testing.T) {
			kv := db.NewMemory()
			if initial != "" {
				kv.Set(persist.TasksKey, initial)
			}

			first := prefixedSession(kv, "a")
			if err := first.Load(); err != nil {
				t.Fatalf("first Load failed: %v", err)
			}
			second := prefixedSession(kv, "b")
			if err := second.Load(); err != nil {
				t.Fatalf("second Load failed: %v", err)
			}

			a, b := first.Tasks(), second.Tasks()
			if len(a) != len(b) {
				t.Fatalf("task counts differ: %d vs %d", len(a), len(b))
			}
			for i := range a {
				if a[i].ID != b[i].ID {
					t.Errorf("task %d id changed from %s to %s", i, a[i].ID, b[i].ID)
				}
			}
			ca, cb := first.Categories(), second.Categories()
			for i := range ca {
				if ca[i].ID != cb[i].ID {
					t.Errorf("category %d id changed from %s to %s", i, ca[i].ID, cb[i].ID)
				}
			}
		})
	}
}

func TestCorruptLoadWritesNothing(t *testing.T) {
	kv := &countingKV{Memory: db.NewMemory()}
	kv.Memory.Set(persist.TasksKey, "garbage")
	s := newSession(t, kv)

	if err := s.Load(); err == nil {
		t.Fatal("expected a corruption error")
	}
	if kv.sets != 0 {
		t.Errorf("Load overwrote storage %d times after corruption", kv.sets)
	}
	if raw, _, _ := kv.Get(persist.TasksKey); raw != "garbage" {
		t.Errorf("corrupt slot replaced with %q", raw)
	}
}

// Starting from an empty store: create, complete, clear.
func TestBuyMilkScenario(t *testing.T) {
	kv := db.NewMemory()
	kv.Set(persist.TasksKey, `[{"id":"seed","name":"Placeholder","isDone":true,"priority":3,"deadline":null}]`)
	s := newSession(t, kv)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if n, err := s.RemoveCompleted(); err != nil || n != 1 {
		t.Fatalf("RemoveCompleted = %d, %v", n, err)
	}
	if len(s.Tasks()) != 0 {
		t.Fatalf("store should be empty, has %d", len(s.Tasks()))
	}

	created, err := s.CreateTask("Buy milk", 2, nil, "Personal")
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	tasks := s.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	got := tasks[0]
	if got.Name != "Buy milk" || got.Priority != 2 || got.Deadline != nil || got.Category != "Personal" || got.IsDone {
		t.Fatalf("created task = %+v", got)
	}

	if ok, err := s.SetDone(created.ID, true); err != nil || !ok {
		t.Fatalf("SetDone = %v, %v", ok, err)
	}
	if p := view.ProgressPercent(s.Tasks()); p != 100 {
		t.Errorf("progress = %d, want 100", p)
	}

	if _, err := s.RemoveCompleted(); err != nil {
		t.Fatalf("RemoveCompleted failed: %v", err)
	}
	if len(s.Tasks()) != 0 {
		t.Errorf("list should be empty, has %d", len(s.Tasks()))
	}
}

func TestMutationsPersist(t *testing.T) {
	kv := db.NewMemory()
	s := newSession(t, kv)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	task, err := s.CreateTask("Water plants", model.PriorityLow, nil, "Personal")
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if _, err := s.AddCategory("Errands", "cart"); err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}
	if err := s.SetUserName("  Hana  "); err != nil {
		t.Fatalf("SetUserName failed: %v", err)
	}

	reloaded := newSession(t, kv)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if _, ok := reloaded.Task(task.ID); !ok {
		t.Error("created task not persisted")
	}
	if len(reloaded.Tasks()) != 5 {
		t.Errorf("reloaded %d tasks, want 5", len(reloaded.Tasks()))
	}
	if len(reloaded.Categories()) != 4 {
		t.Errorf("reloaded %d categories, want 4", len(reloaded.Categories()))
	}
	if reloaded.UserName() != "Hana" {
		t.Errorf("UserName = %q", reloaded.UserName())
	}
}

func TestUnknownIDSkipsSave(t *testing.T) {
	kv := &countingKV{Memory: db.NewMemory()}
	s := newSession(t, kv)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	kv.sets = 0

	if ok, err := s.SetDone("missing", true); ok || err != nil {
		t.Errorf("SetDone(missing) = %v, %v", ok, err)
	}
	if ok, err := s.RemoveTask("missing"); ok || err != nil {
		t.Errorf("RemoveTask(missing) = %v, %v", ok, err)
	}
	if ok, err := s.UpdateTask(model.Task{ID: "missing", Name: "x", Priority: 1}); ok || err != nil {
		t.Errorf("UpdateTask(missing) = %v, %v", ok, err)
	}
	if kv.sets != 0 {
		t.Errorf("no-op mutations wrote %d times", kv.sets)
	}
}

func TestCorruptLoadStillReady(t *testing.T) {
	kv := db.NewMemory()
	kv.Set(persist.TasksKey, "garbage")
	s := newSession(t, kv)

	err := s.Load()
	var cse *persist.CorruptSlotError
	if !errors.As(err, &cse) {
		t.Fatalf("Load error = %v, want CorruptSlotError", err)
	}
	if !s.Ready() {
		t.Fatal("corrupt slot should still leave the session ready")
	}
	if len(s.Tasks()) != 4 {
		t.Errorf("expected seed tasks, got %d", len(s.Tasks()))
	}
}

func TestFormCommitsThroughSession(t *testing.T) {
	s := newSession(t, db.NewMemory())
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	before := len(s.Tasks())

	f := form.New(s.CategoryNames(), "Work")
	f.OpenCreate()
	f.SetName("A")
	if _, err := f.Submit(s); err == nil {
		t.Fatal("one-character name should be rejected")
	}
	if len(s.Tasks()) != before {
		t.Fatal("rejected form changed the store")
	}

	f.SetName("Book dentist")
	task, err := f.Submit(s)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, ok := s.Task(task.ID); !ok {
		t.Error("submitted task missing from session")
	}
}

func TestNewAppLocksDataDir(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.DataDir = dir
	cfg.DBPath = filepath.Join(dir, "test.db")
	cfg.Notifications = false

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if !a.Session.Ready() {
		t.Error("app session should be ready")
	}
	if _, err := New(cfg); !errors.Is(err, ErrLocked) {
		t.Errorf("second New = %v, want ErrLocked", err)
	}
}
