package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/dori/todolist/internal/kv"
)

var _ kv.Store = (*DB)(nil)

// Get returns the value stored under key
func (db *DB) Get(key string) (string, bool, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value
func (db *DB) Set(key, value string) error {
	now := time.Now()
	_, err := db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, now)
	return err
}
