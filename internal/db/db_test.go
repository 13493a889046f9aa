package db

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) (*DB, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	return db, dbPath
}

func TestGetAbsentKey(t *testing.T) {
	db, _ := openTestDB(t)
	defer db.Close()

	v, ok, err := db.Get("TodoApp")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok || v != "" {
		t.Fatalf("Get on empty store = (%q, %v), want absent", v, ok)
	}
}

func TestSetOverwrites(t *testing.T) {
	db, _ := openTestDB(t)
	defer db.Close()

	if err := db.Set("k", "first"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := db.Set("k", "second"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, ok, err := db.Get("k")
	if err != nil || !ok {
		t.Fatalf("Get = (%q, %v, %v)", v, ok, err)
	}
	if v != "second" {
		t.Fatalf("Get = %q, want %q", v, "second")
	}

	var rows int
	if err := db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&rows); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("kv has %d rows after upsert, want 1", rows)
	}
}

// TestReopenKeepsData verifies values survive a close/reopen and that
// running the migrations a second time is harmless.
func TestReopenKeepsData(t *testing.T) {
	db, dbPath := openTestDB(t)
	if err := db.Set("TodoAppUserName", "Tanuki"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer reopened.Close()

	v, ok, err := reopened.Get("TodoAppUserName")
	if err != nil || !ok || v != "Tanuki" {
		t.Fatalf("Get after reopen = (%q, %v, %v)", v, ok, err)
	}
}

func TestEmptyValueIsPresent(t *testing.T) {
	db, _ := openTestDB(t)
	defer db.Close()

	if err := db.Set("empty", ""); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	_, ok, err := db.Get("empty")
	if err != nil || !ok {
		t.Fatalf("empty value should be present, got ok=%v err=%v", ok, err)
	}
}

func TestMemoryMatchesContract(t *testing.T) {
	m := NewMemory()
	if _, ok, _ := m.Get("x"); ok {
		t.Fatal("empty memory store reported a value")
	}
	m.Set("b", "2")
	m.Set("a", "1")
	m.Set("a", "3")
	if v, ok, _ := m.Get("a"); !ok || v != "3" {
		t.Fatalf("Get(a) = %q, %v", v, ok)
	}
	if v, ok, _ := m.Get("b"); !ok || v != "2" {
		t.Fatalf("Get(b) = %q, %v", v, ok)
	}
}
