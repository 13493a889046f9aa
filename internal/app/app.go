package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/dori/tsuzuki/internal/config"
	"github.com/dori/tsuzuki/internal/db"
	"github.com/dori/tsuzuki/internal/debug"
	"github.com/dori/tsuzuki/internal/notify"
	"github.com/dori/tsuzuki/internal/persist"
	"github.com/dori/tsuzuki/internal/store"
)

// ErrLocked is returned when another session holds the data directory
var ErrLocked = errors.New("another tsuzuki session is already running")

// App holds the application state and dependencies
type App struct {
	DB       *db.DB
	Session  *Session
	Notifier *notify.Notifier
	Config   config.Config
	DataDir  string

	// LoadWarning is set when stored data was corrupt and seed data
	// replaced it
	LoadWarning error

	lockFile *flock.Flock
}

// New creates a new application instance and loads the session
func New(cfg config.Config) (*App, error) {
	dataDir := cfg.ResolvedDataDir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	notifier := notify.NewNotifier()
	notifier.SetEnabled(cfg.Notifications)

	app := &App{
		Config:   cfg,
		DataDir:  dataDir,
		Notifier: notifier,
	}

	// Only one session may mutate the store
	if err := app.acquireLock(); err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.ResolvedDBPath())
	if err != nil {
		app.releaseLock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = database

	app.Session = NewSession(persist.New(database, store.DefaultIDGen), store.DefaultIDGen)
	if err := app.Session.Load(); err != nil {
		var cse *persist.CorruptSlotError
		if !errors.As(err, &cse) {
			app.Close()
			return nil, err
		}
		app.LoadWarning = err
	}
	debug.Logf("app started, data dir %s", dataDir)

	return app, nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "tsuzuki.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return ErrLocked
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
		a.DB = nil
	}

	a.releaseLock()

	return errors.Join(errs...)
}
