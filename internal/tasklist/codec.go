package tasklist

import (
	"encoding/json"
	"strings"

	"github.com/dori/todolist/internal/model"
)

// Encode serializes the whole collection in stored form
func Encode(tasks []model.Task) (string, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses a stored collection. "null" decodes to an empty collection.
func Decode(value string) ([]model.Task, error) {
	var tasks []model.Task
	if err := json.Unmarshal([]byte(value), &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// Sanitize drops records that cannot be live tasks: empty text and
// repeated ids (the first occurrence wins). It returns the kept tasks
// and the number dropped.
func Sanitize(tasks []model.Task) ([]model.Task, int) {
	kept := make([]model.Task, 0, len(tasks))
	seen := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		if strings.TrimSpace(t.Text) == "" || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		kept = append(kept, t)
	}
	return kept, len(tasks) - len(kept)
}
