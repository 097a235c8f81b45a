// Package cli implements the non-interactive subcommands.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dori/todolist/internal/tasklist"
)

// TextSurface keeps the latest frame and summary and prints them as plain
// text. It satisfies tasklist.Surface.
type TextSurface struct {
	frame   tasklist.Frame
	summary string
}

// Draw replaces the current frame
func (s *TextSurface) Draw(frame tasklist.Frame) {
	s.frame = frame
}

// DrawSummary replaces the summary line
func (s *TextSurface) DrawSummary(summary string) {
	s.summary = summary
}

// Print writes the current frame followed by the summary
func (s *TextSurface) Print(w io.Writer) {
	var b strings.Builder

	if s.frame.Query != "" {
		fmt.Fprintf(&b, "Search: %q\n", s.frame.Query)
	}
	fmt.Fprintf(&b, "Filter: %s\n\n", s.frame.Filter.Label())

	if s.frame.IsEmpty() {
		b.WriteString("  " + s.frame.Empty + "\n")
	} else {
		for _, row := range s.frame.Rows {
			check := "[ ]"
			if row.Completed {
				check = "[x]"
			}
			fmt.Fprintf(&b, "  %s %d  %s\n", check, row.ID, row.Text)
		}
	}

	b.WriteString("\n" + s.summary + "\n")
	io.WriteString(w, b.String())
}
