package tasklist

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/dori/todolist/internal/model"
)

// Empty-state messages, in priority order
const (
	MsgNoMatches   = "no tasks match the search"
	MsgNoActive    = "no active tasks"
	MsgNoCompleted = "no completed tasks"
	MsgNoTasks     = "no tasks yet, add the first one."
)

// Surface is the display collaborator the controller draws into.
// Draw replaces the container contents; DrawSummary replaces the summary text.
type Surface interface {
	Draw(frame Frame)
	DrawSummary(summary string)
}

// Row is one rendered task
type Row struct {
	ID        int64
	Text      string // escaped for literal display
	Completed bool
}

// Frame is the result of one render pass.
// Exactly one of Rows or Empty is set.
type Frame struct {
	Filter model.Filter
	Query  string
	Rows   []Row
	Empty  string
}

// IsEmpty reports whether the frame shows an empty-state message
func (f Frame) IsEmpty() bool {
	return len(f.Rows) == 0
}

// Stats summarizes the whole collection
type Stats struct {
	Total     int
	Active    int
	Completed int
}

// String formats the summary line
func (s Stats) String() string {
	return fmt.Sprintf("Total tasks: %d | Active: %d | Completed: %d", s.Total, s.Active, s.Completed)
}

func emptyMessage(filter model.Filter, query string) string {
	switch {
	case query != "":
		return MsgNoMatches
	case filter == model.FilterActive:
		return MsgNoActive
	case filter == model.FilterCompleted:
		return MsgNoCompleted
	default:
		return MsgNoTasks
	}
}

// EscapeText makes task text safe to print as literal terminal text:
// escape sequences are stripped and control characters become spaces.
func EscapeText(text string) string {
	stripped := ansi.Strip(text)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, stripped)
}

// nopSurface discards output until a real surface is attached
type nopSurface struct{}

func (nopSurface) Draw(Frame)         {}
func (nopSurface) DrawSummary(string) {}
