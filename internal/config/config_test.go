package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dori/tsuzuki/internal/view"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if cfg.Theme != DefaultTheme || !cfg.Notifications {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "theme") || !strings.Contains(string(data), "nord") {
		t.Errorf("written config missing theme:\n%s", data)
	}
}

func TestLoadOrCreateReadsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
data_dir = "` + dir + `"
theme = "dracula"
default_status = "active"
default_sort = "deadline"
default_order = "desc"
default_category = "Work"
notifications = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if cfg.Theme != "dracula" || cfg.DefaultCategory != "Work" || cfg.Notifications {
		t.Errorf("config not read: %+v", cfg)
	}
	if cfg.ResolvedDBPath() != filepath.Join(dir, "tsuzuki.db") {
		t.Errorf("ResolvedDBPath = %q", cfg.ResolvedDBPath())
	}

	q, err := cfg.Query()
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if q.Status != view.StatusActive || q.Sort != view.SortDeadline || q.Order != view.Desc {
		t.Errorf("Query = %+v", q)
	}
}

func TestLoadOrCreateRejectsBadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`default_sort = "alphabet"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrCreate(path); err == nil {
		t.Fatal("expected error for unknown sort key")
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvConfigPath, "/etc/tsuzuki.toml")
	if got := ResolvePath("/tmp/flag.toml"); got != "/tmp/flag.toml" {
		t.Errorf("flag should win, got %q", got)
	}
	if got := ResolvePath(""); got != "/etc/tsuzuki.toml" {
		t.Errorf("env should be used, got %q", got)
	}

	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := ResolvePath(""); got != filepath.Join("/xdg", "tsuzuki", "config.toml") {
		t.Errorf("xdg path = %q", got)
	}
}

func TestAbsoluteDBPath(t *testing.T) {
	cfg := Default()
	cfg.DBPath = "/var/lib/tsuzuki.db"
	if got := cfg.ResolvedDBPath(); got != "/var/lib/tsuzuki.db" {
		t.Errorf("ResolvedDBPath = %q", got)
	}
}
