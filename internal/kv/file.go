package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrCorrupt marks a store file that exists but does not hold a JSON object
var ErrCorrupt = errors.New("store file is corrupt")

// File is a Store backed by a single JSON object on disk.
// Every Set rewrites the whole file through a temp file and rename.
type File struct {
	path string
}

// NewFile returns a file store at path. The file is created on first Set.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path
func (f *File) Path() string {
	return f.path
}

// Get returns the value stored under key
func (f *File) Get(key string) (string, bool, error) {
	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key. A corrupt file is replaced; any other read
// failure is returned and the file is left alone.
func (f *File) Set(key, value string) error {
	values, err := f.read()
	if errors.Is(err, ErrCorrupt) {
		values = make(map[string]string)
	} else if err != nil {
		return err
	}
	values[key] = value
	return f.write(values)
}

func (f *File) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse store %s: %w: %w", f.path, ErrCorrupt, err)
	}
	return values, nil
}

func (f *File) write(values map[string]string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}
