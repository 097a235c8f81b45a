// Package tasklist owns the in-memory task collection and keeps it in sync
// with a key-value store and a display surface.
package tasklist

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dori/todolist/internal/kv"
	"github.com/dori/todolist/internal/model"
)

// DefaultKey is the store key holding the serialized collection
const DefaultKey = "todolist-tasks"

// Controller is the single owner of the task collection, the active filter
// and the search query. Every mutation persists the full collection, redraws
// the surface and (except text edits) recomputes the summary.
type Controller struct {
	store   kv.Store
	key     string
	logger  *log.Logger
	surface Surface
	ids     *idSource

	tasks  []model.Task
	filter model.Filter
	query  string
}

// Option configures a Controller
type Option func(*Controller)

// WithKey overrides the store key
func WithKey(key string) Option {
	return func(c *Controller) {
		if key != "" {
			c.key = key
		}
	}
}

// WithClock overrides the time source used for ids and timestamps
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.ids.now = now
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFilter sets the initial filter
func WithFilter(f model.Filter) Option {
	return func(c *Controller) {
		if f.Valid() {
			c.filter = f
		}
	}
}

// New creates a controller and loads the collection from store.
// Absent or malformed stored data yields an empty collection.
func New(store kv.Store, opts ...Option) *Controller {
	c := &Controller{
		store:   store,
		key:     DefaultKey,
		logger:  log.New(io.Discard),
		surface: nopSurface{},
		ids:     newIDSource(time.Now),
		filter:  model.FilterAll,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.tasks = c.load()
	for _, t := range c.tasks {
		c.ids.observe(t.ID)
	}
	return c
}

// Attach sets the display surface and draws the initial frame and summary
func (c *Controller) Attach(s Surface) {
	if s == nil {
		s = nopSurface{}
	}
	c.surface = s
	c.Render()
	c.ComputeStats()
}

func (c *Controller) load() []model.Task {
	value, ok, err := c.store.Get(c.key)
	if err != nil {
		c.logger.Warn("reading stored tasks failed, starting empty", "key", c.key, "err", err)
		return []model.Task{}
	}
	if !ok {
		c.logger.Debug("no stored tasks", "key", c.key)
		return []model.Task{}
	}

	tasks, err := Decode(value)
	if err != nil {
		c.logger.Warn("stored tasks are malformed, starting empty", "key", c.key, "err", err)
		return []model.Task{}
	}
	tasks, dropped := Sanitize(tasks)
	if dropped > 0 {
		c.logger.Warn("dropped invalid stored tasks", "key", c.key, "dropped", dropped)
	}
	c.logger.Debug("loaded tasks", "count", len(tasks))
	return tasks
}

func (c *Controller) save() {
	value, err := Encode(c.tasks)
	if err != nil {
		c.logger.Error("encoding tasks failed", "err", err)
		return
	}
	if err := c.store.Set(c.key, value); err != nil {
		c.logger.Error("persisting tasks failed", "key", c.key, "err", err)
	}
}

// AddTask prepends a new task built from the trimmed text.
// Empty text is ignored and reported with ok=false.
func (c *Controller) AddTask(raw string) (task model.Task, ok bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return model.Task{}, false
	}

	id, at := c.ids.next()
	task = model.NewTask(id, text, at)
	c.tasks = append([]model.Task{task}, c.tasks...)
	c.logger.Debug("task added", "id", task.ID)

	c.save()
	c.Render()
	c.ComputeStats()
	return task, true
}

// ToggleTask flips the completion state of the task with id
func (c *Controller) ToggleTask(id int64) {
	if i := c.indexOf(id); i >= 0 {
		c.tasks[i].Completed = !c.tasks[i].Completed
		c.logger.Debug("task toggled", "id", id, "completed", c.tasks[i].Completed)
	}

	c.save()
	c.Render()
	c.ComputeStats()
}

// DeleteTask removes the task with id
func (c *Controller) DeleteTask(id int64) {
	if i := c.indexOf(id); i >= 0 {
		c.tasks = append(c.tasks[:i:i], c.tasks[i+1:]...)
		c.logger.Debug("task deleted", "id", id)
	}

	c.save()
	c.Render()
	c.ComputeStats()
}

// EditTask replaces the text of the task with id. Text that trims to empty
// deletes the task instead. A text change leaves the summary untouched.
func (c *Controller) EditTask(id int64, newText string) {
	text := strings.TrimSpace(newText)
	if text == "" {
		c.DeleteTask(id)
		return
	}

	if i := c.indexOf(id); i >= 0 {
		c.tasks[i].Text = text
		c.logger.Debug("task edited", "id", id)
	}

	c.save()
	c.Render()
}

// SetFilter selects the active filter. Unknown values select FilterAll.
func (c *Controller) SetFilter(f model.Filter) {
	if !f.Valid() {
		f = model.FilterAll
	}
	c.filter = f
	c.Render()
}

// SetSearchQuery stores the lower-cased query
func (c *Controller) SetSearchQuery(query string) {
	c.query = strings.ToLower(query)
	c.Render()
}

// VisibleTasks applies the filter and then the search query.
// The result is a new slice; controller state is not modified.
func (c *Controller) VisibleTasks() []model.Task {
	visible := make([]model.Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		if !c.filter.Allows(t) {
			continue
		}
		if !t.Matches(c.query) {
			continue
		}
		visible = append(visible, t)
	}
	return visible
}

// Render derives the visible tasks and draws them on the surface
func (c *Controller) Render() Frame {
	visible := c.VisibleTasks()
	frame := Frame{Filter: c.filter, Query: c.query}

	if len(visible) == 0 {
		frame.Empty = emptyMessage(c.filter, c.query)
	} else {
		frame.Rows = make([]Row, len(visible))
		for i, t := range visible {
			frame.Rows[i] = Row{
				ID:        t.ID,
				Text:      EscapeText(t.Text),
				Completed: t.Completed,
			}
		}
	}

	c.surface.Draw(frame)
	return frame
}

// ComputeStats counts the collection and writes the summary to the surface
func (c *Controller) ComputeStats() Stats {
	stats := Stats{Total: len(c.tasks)}
	for _, t := range c.tasks {
		if t.Completed {
			stats.Completed++
		}
	}
	stats.Active = stats.Total - stats.Completed

	c.surface.DrawSummary(stats.String())
	return stats
}

// Tasks returns a copy of the collection, newest first
func (c *Controller) Tasks() []model.Task {
	out := make([]model.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Task looks up a task by id
func (c *Controller) Task(id int64) (model.Task, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.tasks[i], true
	}
	return model.Task{}, false
}

// Filter returns the active filter
func (c *Controller) Filter() model.Filter {
	return c.filter
}

// Query returns the lower-cased search query
func (c *Controller) Query() string {
	return c.query
}

func (c *Controller) indexOf(id int64) int {
	for i, t := range c.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
