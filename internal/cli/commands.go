package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dori/todolist/internal/export"
	"github.com/dori/todolist/internal/model"
	"github.com/dori/todolist/internal/tasklist"
)

// ErrUsage marks invalid command-line usage
var ErrUsage = errors.New("usage")

// Commands lists the subcommands handled by Run
var Commands = []string{"add", "list", "ls", "done", "rm", "edit", "export"}

// IsCommand reports whether name is a task subcommand
func IsCommand(name string) bool {
	for _, c := range Commands {
		if c == name {
			return true
		}
	}
	return false
}

// Run executes one subcommand against the controller and prints the result
func Run(tasks *tasklist.Controller, name string, args []string, out io.Writer) error {
	surface := &TextSurface{}
	tasks.Attach(surface)

	switch name {
	case "add":
		return runAdd(tasks, surface, args, out)
	case "list", "ls":
		return runList(tasks, surface, args, out)
	case "done":
		return runWithID(tasks, surface, args, out, "done <id>", func(id int64) string {
			tasks.ToggleTask(id)
			if t, ok := tasks.Task(id); ok && t.Completed {
				return "Completed: " + tasklist.EscapeText(t.Text)
			} else if ok {
				return "Reopened: " + tasklist.EscapeText(t.Text)
			}
			return ""
		})
	case "rm":
		return runWithID(tasks, surface, args, out, "rm <id>", func(id int64) string {
			t, ok := tasks.Task(id)
			tasks.DeleteTask(id)
			if ok {
				return "Deleted: " + tasklist.EscapeText(t.Text)
			}
			return ""
		})
	case "edit":
		return runEdit(tasks, surface, args, out)
	case "export":
		return runExport(tasks, args, out)
	}
	return fmt.Errorf("%w: unknown command %q", ErrUsage, name)
}

func runAdd(tasks *tasklist.Controller, surface *TextSurface, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: todolist add <task>", ErrUsage)
	}

	task, ok := tasks.AddTask(strings.Join(args, " "))
	if !ok {
		fmt.Fprintln(out, "Nothing to add")
		return nil
	}

	fmt.Fprintf(out, "Created: %s (id %d)\n", tasklist.EscapeText(task.Text), task.ID)
	fmt.Fprintln(out, surface.summary)
	return nil
}

func runList(tasks *tasklist.Controller, surface *TextSurface, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	filterFlag := fs.String("filter", string(tasks.Filter()), "all, active or completed")
	searchFlag := fs.String("search", "", "case-insensitive text search")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	filter, err := model.ParseFilter(*filterFlag)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	tasks.SetFilter(filter)
	tasks.SetSearchQuery(*searchFlag)
	surface.Print(out)
	return nil
}

func runWithID(tasks *tasklist.Controller, surface *TextSurface, args []string, out io.Writer, usage string, op func(int64) string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: todolist %s", ErrUsage, usage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if _, ok := tasks.Task(id); !ok {
		fmt.Fprintf(out, "No task with id %d\n", id)
		return nil
	}

	fmt.Fprintln(out, op(id))
	fmt.Fprintln(out, surface.summary)
	return nil
}

func runEdit(tasks *tasklist.Controller, surface *TextSurface, args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: todolist edit <id> <text>", ErrUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if _, ok := tasks.Task(id); !ok {
		fmt.Fprintf(out, "No task with id %d\n", id)
		return nil
	}

	tasks.EditTask(id, strings.Join(args[1:], " "))
	if t, ok := tasks.Task(id); ok {
		fmt.Fprintf(out, "Updated: %s\n", tasklist.EscapeText(t.Text))
	} else {
		fmt.Fprintf(out, "Deleted task %d (empty text)\n", id)
	}
	fmt.Fprintln(out, surface.summary)
	return nil
}

func runExport(tasks *tasklist.Controller, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	format := fs.String("format", export.FormatJSON, "json, yaml or toml")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return export.Write(out, tasks.Tasks(), *format)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid task id %q", ErrUsage, s)
	}
	return id, nil
}
