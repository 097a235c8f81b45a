package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/dori/todolist/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArgs(t *testing.T, args ...string) []string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TODOLIST_DATA_DIR", dir)
	t.Setenv("TODOLIST_BACKEND", "")
	return append([]string{"--config", filepath.Join(dir, "missing.toml"), "--backend", "file"}, args...)
}

func TestRunAddThenList(t *testing.T) {
	args := testArgs(t)

	var out bytes.Buffer
	require.NoError(t, run(append(args, "add", "Buy", "milk"), &out))
	assert.Contains(t, out.String(), "Created: Buy milk")

	out.Reset()
	require.NoError(t, run(append(args, "list"), &out))
	assert.Contains(t, out.String(), "[ ]")
	assert.Contains(t, out.String(), "Buy milk")
	assert.Contains(t, out.String(), "Total tasks: 1 | Active: 1 | Completed: 0")
}

func TestRunVersionAndHelp(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"version"}, &out))
	assert.Equal(t, "todolist v"+version+"\n", out.String())

	out.Reset()
	require.NoError(t, run([]string{"help"}, &out))
	assert.Contains(t, out.String(), "Usage:")
}

func TestRunRejectsBadInput(t *testing.T) {
	args := testArgs(t)

	err := run(append(args, "frobnicate"), &bytes.Buffer{})
	assert.ErrorIs(t, err, cli.ErrUsage)

	err = run([]string{"--no-such-flag"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, cli.ErrUsage)

	err = run(append(args, "--filter", "someday", "list"), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRunFlagOverridesBadEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TODOLIST_DATA_DIR", dir)
	t.Setenv("TODOLIST_BACKEND", "bogus")
	base := []string{"--config", filepath.Join(dir, "missing.toml")}

	var out bytes.Buffer
	require.NoError(t, run(append(base, "--backend", "memory", "list"), &out))
	assert.Contains(t, out.String(), "Total tasks: 0 | Active: 0 | Completed: 0")

	err := run(append(base, "list"), &bytes.Buffer{})
	assert.Error(t, err)
}
