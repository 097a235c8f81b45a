// Package config loads todolist settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/dori/todolist/internal/db"
	"github.com/dori/todolist/internal/model"
	"github.com/dori/todolist/internal/tasklist"
)

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Environment overrides
const (
	EnvDataDir = "TODOLIST_DATA_DIR"
	EnvBackend = "TODOLIST_BACKEND"
	EnvDebug   = "TODOLIST_DEBUG"
)

// Config holds application configuration
type Config struct {
	DataDir    string `toml:"data_dir"`
	Backend    string `toml:"backend"`
	StorageKey string `toml:"storage_key"`
	Theme      string `toml:"theme"`
	Filter     string `toml:"filter"`
	LogLevel   string `toml:"log_level"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		DataDir:    db.DefaultDataDir(),
		Backend:    BackendSQLite,
		StorageKey: tasklist.DefaultKey,
		Theme:      "nord",
		Filter:     string(model.FilterAll),
		LogLevel:   "info",
	}
}

// DefaultPath returns the default config file location
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "todolist", "config.toml"), nil
}

// Load reads the config file at path on top of the defaults and applies
// environment overrides. A missing file is not an error. The result is not
// validated; callers apply their own overrides and then call Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		_, err := toml.DecodeFile(path, &cfg)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		c.Backend = v
	}
	if os.Getenv(EnvDebug) == "1" {
		c.LogLevel = "debug"
	}
}

// Validate checks enumerated settings
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want sqlite, file or memory)", c.Backend)
	}
	if _, err := model.ParseFilter(c.Filter); err != nil {
		return err
	}
	if c.DataDir == "" {
		return errors.New("data_dir must not be empty")
	}
	return nil
}

// DBPath returns the SQLite database path
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "todolist.db")
}

// StorePath returns the JSON file store path
func (c Config) StorePath() string {
	return filepath.Join(c.DataDir, "store.json")
}

// LogPath returns the log file path
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "todolist.log")
}

// LockPath returns the single-instance lock file path
func (c Config) LockPath() string {
	return filepath.Join(c.DataDir, "todolist.lock")
}
