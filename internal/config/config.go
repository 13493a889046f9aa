package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/dori/tsuzuki/internal/db"
	"github.com/dori/tsuzuki/internal/view"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "tsuzuki.db"
	DefaultTheme          = "nord"
	EnvConfigPath         = "TSUZUKI_CONFIG"
)

type Config struct {
	DataDir         string `toml:"data_dir"`
	DBPath          string `toml:"db_path"`
	Theme           string `toml:"theme"`
	DefaultStatus   string `toml:"default_status"`
	DefaultSort     string `toml:"default_sort"`
	DefaultOrder    string `toml:"default_order"`
	DefaultCategory string `toml:"default_category"`
	Notifications   bool   `toml:"notifications"`
}

// ResolvePath picks the config file: the flag value, then $TSUZUKI_CONFIG,
// then the XDG config dir, then ~/.config.
func ResolvePath(flagPath string) string {
	if flagPath != "" {
		return expandHome(flagPath)
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return expandHome(p)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tsuzuki", DefaultConfigFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(home, ".config", "tsuzuki", DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first
// if the file does not exist yet.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = db.DefaultDataDir()
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	return cfg, cfg.Validate()
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	return Config{
		DataDir:       db.DefaultDataDir(),
		DBPath:        DefaultDBName,
		Theme:         DefaultTheme,
		DefaultStatus: "all",
		DefaultSort:   "none",
		DefaultOrder:  "asc",
		Notifications: true,
	}
}

// Validate checks the list defaults parse
func (c Config) Validate() error {
	_, err := c.Query()
	return err
}

// ResolvedDataDir is DataDir with a leading ~ expanded
func (c Config) ResolvedDataDir() string {
	return expandHome(c.DataDir)
}

// ResolvedDBPath places a relative db_path inside the data dir
func (c Config) ResolvedDBPath() string {
	p := expandHome(c.DBPath)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ResolvedDataDir(), p)
}

// Query builds the initial list query from the configured defaults
func (c Config) Query() (view.Query, error) {
	q := view.DefaultQuery()

	status, err := view.ParseStatus(orDefault(c.DefaultStatus, "all"))
	if err != nil {
		return q, fmt.Errorf("config default_status: %w", err)
	}
	sortKey, err := view.ParseSortKey(c.DefaultSort)
	if err != nil {
		return q, fmt.Errorf("config default_sort: %w", err)
	}
	order, err := view.ParseOrder(c.DefaultOrder)
	if err != nil {
		return q, fmt.Errorf("config default_order: %w", err)
	}

	q.Status = status
	q.Sort = sortKey
	q.Order = order
	return q, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
