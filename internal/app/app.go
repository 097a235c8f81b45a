package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/dori/todolist/internal/config"
	"github.com/dori/todolist/internal/db"
	"github.com/dori/todolist/internal/kv"
	"github.com/dori/todolist/internal/model"
	"github.com/dori/todolist/internal/tasklist"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// ErrLocked is returned when another todolist process holds the data directory
var ErrLocked = errors.New("another instance of todolist is already running")

// App holds the application state and dependencies
type App struct {
	Config    config.Config
	Store     kv.Store
	Tasks     *tasklist.Controller
	Logger    *log.Logger
	SessionID string

	db       *db.DB
	logFile  io.Closer
	lockFile *flock.Flock
}

// New creates a new application instance: it takes the data directory lock,
// opens the configured store and loads the task list from it.
func New(cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{
		Config:    cfg,
		SessionID: uuid.New().String(),
	}

	if err := app.acquireLock(); err != nil {
		return nil, err
	}

	if err := app.openLogger(); err != nil {
		app.releaseLock()
		return nil, err
	}

	if err := app.openStore(); err != nil {
		app.Close()
		return nil, err
	}

	filter, _ := model.ParseFilter(cfg.Filter)
	app.Tasks = tasklist.New(app.Store,
		tasklist.WithKey(cfg.StorageKey),
		tasklist.WithLogger(app.Logger),
		tasklist.WithFilter(filter),
	)
	app.Logger.Info("session started", "backend", cfg.Backend, "tasks", len(app.Tasks.Tasks()))

	return app, nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	a.lockFile = flock.New(a.Config.LockPath())

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

func (a *App) openLogger() error {
	level, err := log.ParseLevel(a.Config.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}

	f, err := os.OpenFile(a.Config.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	a.logFile = f

	a.Logger = log.NewWithOptions(f, log.Options{
		Level:           level,
		Prefix:          "todolist",
		ReportTimestamp: true,
	}).With("session", a.SessionID)
	return nil
}

func (a *App) openStore() error {
	switch a.Config.Backend {
	case config.BackendFile:
		store := kv.NewFile(a.Config.StorePath())
		a.Store = store
		a.Logger.Debug("file store opened", "path", store.Path())
	case config.BackendMemory:
		a.Store = kv.NewMemory()
	default:
		database, err := db.Open(a.Config.DBPath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		a.db = database
		a.Store = database

		version, err := database.SchemaVersion(context.Background())
		if err != nil {
			a.Logger.Warn("reading schema version failed", "err", err)
		}
		a.Logger.Debug("database opened", "path", database.Path(), "schema", version)
	}
	return nil
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if a.Logger != nil {
		a.Logger.Info("session ended")
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close log file: %w", err))
		}
	}

	a.releaseLock()

	return errors.Join(errs...)
}
