package model

import (
	"strings"
	"time"
)

// TimestampLayout is the ISO-8601 layout used for CreatedAt
// (millisecond precision, UTC, "Z" suffix).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Task represents a todo item
type Task struct {
	ID        int64  `json:"id" yaml:"id" toml:"id"`
	Text      string `json:"text" yaml:"text" toml:"text"`
	Completed bool   `json:"completed" yaml:"completed" toml:"completed"`
	CreatedAt string `json:"createdAt" yaml:"createdAt" toml:"createdAt"`
}

// NewTask builds a pending task created at the given instant
func NewTask(id int64, text string, at time.Time) Task {
	return Task{
		ID:        id,
		Text:      text,
		Completed: false,
		CreatedAt: FormatTimestamp(at),
	}
}

// Created parses CreatedAt
func (t Task) Created() (time.Time, error) {
	return time.Parse(TimestampLayout, t.CreatedAt)
}

// Matches reports whether the task text contains the lower-cased query
func (t Task) Matches(query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Text), query)
}

// FormatTimestamp renders an instant the way CreatedAt stores it
func FormatTimestamp(at time.Time) string {
	return at.UTC().Format(TimestampLayout)
}
