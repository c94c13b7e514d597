// Package cmd implements the CLI command structure for tsk.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/em-s-h/tsk/internal/config"
	"github.com/em-s-h/tsk/internal/logging"
	"github.com/em-s-h/tsk/internal/tasktree"
	"github.com/em-s-h/tsk/internal/todo"
	"github.com/em-s-h/tsk/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the tsk CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tsk", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand; printing the tree is the default.
	subcommand := "print"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	case "config":
		return configCommand(cws, remainingArgs)
	case "completion":
		return completionCommand(remainingArgs)
	}

	a, err := newApp(cws.Config)
	if err != nil {
		return err
	}

	switch subcommand {
	case "print", "ls":
		return a.printCommand(remainingArgs)
	case "add":
		return a.addCommand(remainingArgs)
	case "do":
		return a.markCommand("do", true, remainingArgs)
	case "undo":
		return a.markCommand("undo", false, remainingArgs)
	case "move":
		return a.moveCommand(remainingArgs)
	case "swap":
		return a.swapCommand(remainingArgs)
	case "append":
		return a.appendCommand(remainingArgs)
	case "edit":
		return a.editCommand(remainingArgs)
	case "delete":
		return a.deleteCommand(remainingArgs)
	case "clear":
		return a.clearCommand(remainingArgs)
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "doctor":
		return a.doctorCommand(remainingArgs)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// app carries what every task command needs once config is loaded.
type app struct {
	cfg     *config.Config
	store   *todo.Store
	logger  *log.Logger
	colored bool
}

func newApp(cfg *config.Config) (*app, error) {
	format, err := todo.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	logger := logging.NewFromConfig(os.Stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)

	store := todo.NewStore(cfg.TaskFile)
	store.Format = format
	store.Lock = cfg.LockFile
	store.Validate = cfg.Validate
	store.SchemaPath = cfg.SchemaFile
	store.Logger = logger

	return &app{
		cfg:     cfg,
		store:   store,
		logger:  logger,
		colored: useColor(cfg.Color, os.Stdout),
	}, nil
}

// useColor resolves the color setting against the output stream.
func useColor(mode string, w io.Writer) bool {
	switch strings.ToLower(mode) {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return ui.IsTTY(w)
}

func addPosition(s string) tasktree.Position {
	pos, ok := tasktree.ParsePosition(strings.ToLower(strings.TrimSpace(s)))
	if !ok {
		return tasktree.Top
	}
	return pos
}

func versionCommand() error {
	fmt.Printf("tsk version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tsk - A tree of tasks and subtasks on the command line")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tsk [options] [command] [sub-options] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  print, ls               Print tasks (default command)")
	fmt.Fprintln(w, "  add <task>              Add a new task")
	fmt.Fprintln(w, "  do <ids>                Mark one or more tasks as done")
	fmt.Fprintln(w, "  undo <ids>              Unmark one or more tasks as done")
	fmt.Fprintln(w, "  move <id> <new_id>      Move a task to a new location")
	fmt.Fprintln(w, "  swap <id> <other_id>    Swap the places of two tasks")
	fmt.Fprintln(w, "  append <id> <text>      Append text to an existing task")
	fmt.Fprintln(w, "  edit <id> <text>        Replace the contents of a task")
	fmt.Fprintln(w, "  delete <ids>            Delete tasks with their subtasks")
	fmt.Fprintln(w, "  clear                   Delete every task marked as done")
	fmt.Fprintln(w, "  tui                     Browse and edit tasks in a terminal UI")
	fmt.Fprintln(w, "  doctor                  Check config and task file validity")
	fmt.Fprintln(w, "  config                  Show effective configuration and sources")
	fmt.Fprintln(w, "  completion <shell>      Print a shell completion script")
	fmt.Fprintln(w, "  version                 Show version information")
	fmt.Fprintln(w, "  help                    Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ids:")
	fmt.Fprintln(w, "  3, 1.2.4                A task, or a subtask by its path")
	fmt.Fprintln(w, "  1,3,5  2.1,3            Several tasks; later items share the first one's parent")
	fmt.Fprintln(w, "  1..3   2.1..3           A range of sibling tasks")
	fmt.Fprintln(w, "  -all                    Every top-level task (do and undo)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options (use with 'add' command):")
	fmt.Fprintln(w, "  -top")
	fmt.Fprintln(w, "        Add the task at the top of its list")
	fmt.Fprintln(w, "  -bot")
	fmt.Fprintln(w, "        Add the task at the bottom of its list")
	fmt.Fprintln(w, "  -sub string")
	fmt.Fprintln(w, "        Add the task as a subtask of this id")
}
