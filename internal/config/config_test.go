package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvBackend, "")
	t.Setenv(EnvDebug, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvBackend, "")
	t.Setenv(EnvDebug, "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
data_dir = "/tmp/todo-data"
backend = "file"
theme = "gruvbox"
filter = "active"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/todo-data", cfg.DataDir)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, "active", cfg.Filter)
	assert.Equal(t, Default().StorageKey, cfg.StorageKey)
	assert.Equal(t, "/tmp/todo-data/todolist.db", cfg.DBPath())
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`backend = "sqlite"`), 0644))

	t.Setenv(EnvDataDir, "/srv/todo")
	t.Setenv(EnvBackend, "memory")
	t.Setenv(EnvDebug, "1")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/todo", cfg.DataDir)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadSyntax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`backend = `), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Setenv(EnvBackend, "")

	cases := map[string]string{
		"backend": `backend = "postgres"`,
		"filter":  `filter = "done"`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadLeavesBadEnvForOverride(t *testing.T) {
	t.Setenv(EnvBackend, "bogus")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "bogus", cfg.Backend)
	assert.Error(t, cfg.Validate())

	cfg.Backend = BackendMemory
	assert.NoError(t, cfg.Validate())
}
