package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/em-s-h/tsk/internal/idarg"
	"github.com/em-s-h/tsk/internal/tasktree"
	"github.com/em-s-h/tsk/internal/ui"
)

var errNoContent = errors.New("please provide the content of the task")

// printTree writes the rendered tree to stdout.
func (a *app) printTree(tree *tasktree.Tree) error {
	if tree.Len() == 0 {
		fmt.Println("No tasks to print")
		return nil
	}
	for _, line := range tree.Render(a.colored) {
		fmt.Println(line)
	}
	return nil
}

func (a *app) printCommand(args []string) error {
	fs := flag.NewFlagSet("tsk print", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	tree, err := a.store.Load()
	if err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}
	return a.printTree(tree)
}

func (a *app) addCommand(args []string) error {
	fs := flag.NewFlagSet("tsk add", flag.ContinueOnError)
	top := fs.Bool("top", false, "Add the task at the top of its list")
	bot := fs.Bool("bot", false, "Add the task at the bottom of its list")
	sub := fs.String("sub", "", "Add the task as a subtask of this id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *top && *bot {
		return fmt.Errorf("add: -top and -bot cannot be used together")
	}
	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" {
		return fmt.Errorf("add: %w", errNoContent)
	}

	pos := addPosition(a.cfg.AddPosition)
	switch {
	case *top:
		pos = tasktree.Top
	case *bot:
		pos = tasktree.Bottom
	}

	var parent tasktree.ID
	tree, err := a.store.Update(func(t *tasktree.Tree) error {
		if *sub != "" {
			id, err := idarg.ParseOne(*sub, t)
			if err != nil {
				return err
			}
			parent = id
		}
		return t.Add(text, pos, parent)
	})
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	a.logger.Info("added task", "position", pos, "parent", parent.String())
	return a.printTree(tree)
}

func (a *app) markCommand(name string, done bool, args []string) error {
	fs := flag.NewFlagSet("tsk "+name, flag.ContinueOnError)
	all := fs.Bool("all", false, "Apply to every top-level task")
	if err := fs.Parse(args); err != nil {
		return err
	}
	idArgs := fs.Args()
	if *all {
		idArgs = append(idArgs, "-all")
	}
	if len(idArgs) == 0 {
		return fmt.Errorf("%s: please provide task ids", name)
	}

	var ids []tasktree.ID
	tree, err := a.store.Update(func(t *tasktree.Tree) error {
		var err error
		if ids, err = parseIDs(idArgs, t); err != nil {
			return err
		}
		return t.Mark(ids, done)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	a.logger.Info("marked tasks", "ids", idarg.String(ids), "done", done)
	return a.printTree(tree)
}

func (a *app) moveCommand(args []string) error {
	from, to, err := twoArgs("move", args)
	if err != nil {
		return err
	}

	tree, err := a.store.Update(func(t *tasktree.Tree) error {
		src, err := idarg.ParseOne(from, t)
		if err != nil {
			return err
		}
		// The destination is a slot and may sit one past the last sibling.
		dst, err := tasktree.ParseID(to)
		if err != nil {
			return err
		}
		return t.Move(src, dst)
	})
	if err != nil {
		return fmt.Errorf("move: %w", err)
	}
	a.logger.Info("moved task", "from", from, "to", to)
	return a.printTree(tree)
}

func (a *app) swapCommand(args []string) error {
	first, second, err := twoArgs("swap", args)
	if err != nil {
		return err
	}

	tree, err := a.store.Update(func(t *tasktree.Tree) error {
		x, err := idarg.ParseOne(first, t)
		if err != nil {
			return err
		}
		y, err := idarg.ParseOne(second, t)
		if err != nil {
			return err
		}
		return t.Swap(x, y)
	})
	if err != nil {
		return fmt.Errorf("swap: %w", err)
	}
	a.logger.Info("swapped tasks", "a", first, "b", second)
	return a.printTree(tree)
}

func (a *app) appendCommand(args []string) error {
	return a.textCommand("append", args, (*tasktree.Tree).Append)
}

func (a *app) editCommand(args []string) error {
	return a.textCommand("edit", args, (*tasktree.Tree).Edit)
}

// textCommand handles the "<id> <text>" commands.
func (a *app) textCommand(name string, args []string, op func(*tasktree.Tree, tasktree.ID, string) error) error {
	fs := flag.NewFlagSet("tsk "+name, flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%s: please provide a task id", name)
	}
	arg := fs.Arg(0)
	text := strings.TrimSpace(strings.Join(fs.Args()[1:], " "))
	if text == "" {
		return fmt.Errorf("%s: %w", name, errNoContent)
	}

	tree, err := a.store.Update(func(t *tasktree.Tree) error {
		id, err := idarg.ParseOne(arg, t)
		if err != nil {
			return err
		}
		return op(t, id, text)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	a.logger.Info("changed task", "command", name, "id", arg)
	return a.printTree(tree)
}

func (a *app) deleteCommand(args []string) error {
	fs := flag.NewFlagSet("tsk delete", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("delete: please provide task ids")
	}

	var ids []tasktree.ID
	var removed int
	tree, err := a.store.Update(func(t *tasktree.Tree) error {
		var err error
		if ids, err = parseIDs(fs.Args(), t); err != nil {
			return err
		}
		removed, err = deleteTasks(t, ids)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	a.logger.Info("deleted tasks", "ids", idarg.String(ids), "removed", plural(removed, "task"))
	return a.printTree(tree)
}

func (a *app) clearCommand(args []string) error {
	fs := flag.NewFlagSet("tsk clear", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	var removed int
	tree, err := a.store.Update(func(t *tasktree.Tree) error {
		removed = t.ClearDone()
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	a.logger.Info("cleared done tasks", "removed", plural(removed, "task"))
	return a.printTree(tree)
}

func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tsk tui", flag.ContinueOnError)
	refresh := fs.Duration("refresh", 2*time.Second, "Reload interval for changes made elsewhere (0 disables)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return ui.RunTUI(ctx, a.store,
		ui.WithRefreshInterval(*refresh),
		ui.WithAddPosition(addPosition(a.cfg.AddPosition)),
		ui.WithTitle("tsk: "+a.store.Path),
	)
}

// parseIDs expands every id argument against t. Each argument is expanded on
// its own, so "2.1 3" names 2.1 and 3.
func parseIDs(args []string, t *tasktree.Tree) ([]tasktree.ID, error) {
	var ids []tasktree.ID
	for _, arg := range args {
		expanded, err := idarg.Parse(arg, t)
		if err != nil {
			return nil, err
		}
		ids = append(ids, expanded...)
	}
	return ids, nil
}

func twoArgs(name string, args []string) (string, string, error) {
	fs := flag.NewFlagSet("tsk "+name, flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return "", "", err
	}
	if fs.NArg() != 2 {
		return "", "", fmt.Errorf("%s: expected two task ids, got %d", name, fs.NArg())
	}
	return fs.Arg(0), fs.Arg(1), nil
}

// deleteTasks removes ids from t and returns how many tasks went away,
// subtasks included.
func deleteTasks(t *tasktree.Tree, ids []tasktree.ID) (int, error) {
	before, _ := t.Stats()
	if err := t.DeleteAll(ids); err != nil {
		return 0, err
	}
	after, _ := t.Stats()
	return before - after, nil
}

// plural formats counts for log messages such as "3 tasks".
func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
