package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/todolist/internal/app"
	"github.com/dori/todolist/internal/cli"
	"github.com/dori/todolist/internal/config"
	"github.com/dori/todolist/internal/ui"
)

var (
	version = "0.1.0"
)

type options struct {
	configPath string
	backend    string
	theme      string
	filter     string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrUsage) {
			fmt.Fprintln(os.Stderr, "Run 'todolist help' for usage.")
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("todolist", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/todolist/config.toml)")
	fs.StringVar(&opts.backend, "backend", "", "Storage backend (sqlite, file, memory)")
	fs.StringVar(&opts.theme, "theme", "", "Theme name (nord, dracula, gruvbox, catppuccin)")
	fs.StringVar(&opts.filter, "filter", "", "Initial filter (all, active, completed)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printHelp(out)
			return nil
		}
		return fmt.Errorf("%w: %v", cli.ErrUsage, err)
	}

	rest := fs.Args()
	if len(rest) > 0 {
		switch name := rest[0]; {
		case name == "version":
			fmt.Fprintf(out, "todolist v%s\n", version)
			return nil
		case name == "help":
			printHelp(out)
			return nil
		case cli.IsCommand(name):
			return runCommand(opts, name, rest[1:], out)
		default:
			return fmt.Errorf("%w: unknown command %q", cli.ErrUsage, name)
		}
	}

	return runTUI(opts)
}

func loadConfig(opts options) (config.Config, error) {
	path := opts.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return config.Config{}, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	// Flags override file and environment
	if opts.backend != "" {
		cfg.Backend = opts.backend
	}
	if opts.theme != "" {
		cfg.Theme = opts.theme
	}
	if opts.filter != "" {
		cfg.Filter = opts.filter
	}
	return cfg, cfg.Validate()
}

func runCommand(opts options, name string, args []string, out io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	return cli.Run(application.Tasks, name, args, out)
}

func runTUI(opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	p := tea.NewProgram(
		ui.NewRootModel(application),
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}

func printHelp(out io.Writer) {
	help := `todolist - a small to-do list for the terminal

Usage:
  todolist [flags]                     Start the TUI
  todolist [flags] add <text>          Add a task
  todolist [flags] list [--filter f] [--search q]
                                       Print tasks (filter: all, active, completed)
  todolist [flags] done <id>           Toggle a task's completion
  todolist [flags] edit <id> <text>    Replace a task's text (empty text deletes it)
  todolist [flags] rm <id>             Delete a task
  todolist [flags] export [--format f] Print all tasks as json, yaml or toml
  todolist version                     Show version
  todolist help                        Show this help

Flags:
  --config <path>    Config file (default $XDG_CONFIG_HOME/todolist/config.toml)
  --backend <name>   Storage backend: sqlite (default), file, memory
  --theme <name>     Theme: nord, dracula, gruvbox, catppuccin
  --filter <name>    Initial filter: all, active, completed

Keybindings:
  a            Add a task (enter adds, esc leaves the field)
  space / x    Toggle done
  e / enter    Edit in place (enter, esc, tab or moving away saves)
  d            Delete
  1 2 3 / f    Show all, active, completed / next filter
  /            Search (esc in the list clears the search)
  ctrl+t       Cycle theme
  ?            Help
  q            Quit

Environment:
  TODOLIST_DATA_DIR   Data directory (default ~/.local/share/todolist)
  TODOLIST_BACKEND    Storage backend
  TODOLIST_DEBUG=1    Debug logging to <data dir>/todolist.log`

	fmt.Fprintln(out, help)
}
