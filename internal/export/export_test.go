package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/dori/todolist/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var sample = []model.Task{
	{ID: 1714564800001, Text: "Walk dog", Completed: false, CreatedAt: "2024-05-01T12:00:00.001Z"},
	{ID: 1714564800000, Text: "Buy milk", Completed: true, CreatedAt: "2024-05-01T12:00:00.000Z"},
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample, "json"))

	var got []model.Task
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sample, got)
	assert.Contains(t, buf.String(), `"createdAt": "2024-05-01T12:00:00.001Z"`)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample, "YAML"))

	var got []model.Task
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sample, got)
}

func TestWriteTOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample, "toml"))
	assert.Contains(t, buf.String(), "[[tasks]]")

	var got document
	_, err := toml.Decode(buf.String(), &got)
	require.NoError(t, err)
	assert.Equal(t, sample, got.Tasks)
}

func TestWriteEmptyJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, "json"))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, sample, "csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
