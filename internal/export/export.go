// Package export writes the task collection in interchange formats.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dori/todolist/internal/model"
	"gopkg.in/yaml.v3"
)

// Supported formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// ErrUnknownFormat is returned for formats other than json, yaml and toml
var ErrUnknownFormat = errors.New("unknown export format")

// document wraps the list for TOML, which has no top-level arrays
type document struct {
	Tasks []model.Task `toml:"tasks"`
}

// Write encodes tasks to w in the given format
func Write(w io.Writer, tasks []model.Task, format string) error {
	if tasks == nil {
		tasks = []model.Task{}
	}

	switch strings.ToLower(format) {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)

	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return err
		}
		return enc.Close()

	case FormatTOML:
		return toml.NewEncoder(w).Encode(document{Tasks: tasks})
	}

	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
