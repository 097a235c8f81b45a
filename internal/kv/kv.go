// Package kv defines the string key-value store the task list persists into.
package kv

import "sync"

// Store is a synchronous string key-value store.
// Get reports ok=false for a missing key.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Memory is an in-process Store
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value stored under key
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
