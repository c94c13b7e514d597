package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/em-s-h/tsk/internal/config"
	"github.com/em-s-h/tsk/internal/todo"
)

func (a *app) doctorCommand(args []string) error {
	fs := flag.NewFlagSet("tsk doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fmt.Println("tsk Doctor")
	fmt.Println("==========")
	fmt.Println()

	allOK := true

	// Check config
	fmt.Println("Config:")
	if errs := a.cfg.Validate(); len(errs) > 0 {
		for _, err := range errs {
			fmt.Printf("  ❌ %v\n", err)
		}
		allOK = false
	} else {
		fmt.Printf("  ✅ Color: %s\n", a.cfg.Color)
		fmt.Printf("  ✅ Add position: %s\n", addPosition(a.cfg.AddPosition))
		fmt.Printf("  ✅ Format: %s\n", todo.DetectFormat(a.store.Path, a.store.Format))
		fmt.Printf("  ✅ Log level: %s\n", a.cfg.LogLevel)
	}
	fmt.Println()

	// Check data directory
	dir := filepath.Dir(a.store.Path)
	fmt.Printf("Task directory: %s\n", dir)
	if info, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (will be created on first change)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Println("  ❌ Error: path is not a directory")
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	// Check task file
	if !a.checkTaskFile(*verbose) {
		allOK = false
	}
	fmt.Println()

	// Check schema file
	if a.cfg.SchemaFile != "" {
		fmt.Printf("Schema file: %s\n", a.cfg.SchemaFile)
		if info, err := os.Stat(a.cfg.SchemaFile); err != nil {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		} else if info.IsDir() {
			fmt.Println("  ❌ Error: path is a directory")
			allOK = false
		} else {
			fmt.Println("  ✅ OK")
		}
		fmt.Println()
	}

	if a.cfg.LockFile {
		fmt.Printf("Lock file: %s\n", a.store.LockPath())
		fmt.Println("  ✅ Enabled")
		fmt.Println()
	}

	// Overall status
	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. tsk may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// checkTaskFile reports on the task file and returns false when it is unusable.
func (a *app) checkTaskFile(verbose bool) bool {
	path := a.store.Path
	fmt.Printf("Task file: %s\n", path)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (a placeholder task is shown until the first change)")
			return true
		}
		fmt.Printf("  ❌ Error: %v\n", err)
		return false
	}
	if info.IsDir() {
		fmt.Println("  ❌ Error: path is a directory")
		return false
	}
	fmt.Println("  ✅ OK")

	// Load without the store's own validation so the result below is reported
	// in full rather than as a load error.
	loader := *a.store
	loader.Validate = false
	tree, err := loader.Load()
	if err != nil {
		fmt.Printf("  ❌ Load error: %v\n", err)
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		return false
	}
	if todo.DetectFormat(path, a.store.Format) != todo.FormatJSON {
		if data, err = tree.Serialize(); err != nil {
			fmt.Printf("  ❌ Error: %v\n", err)
			return false
		}
	}

	ok := true
	result := todo.Validate(data, todo.ValidationOptions{SchemaPath: a.cfg.SchemaFile})
	for _, w := range result.Warnings {
		fmt.Printf("  ⚠️  %s\n", w)
	}
	if result.Valid {
		fmt.Printf("  ✅ Valid (schema: %s)\n", result.Schema)
	} else {
		fmt.Println("  ❌ Validation failed:")
		for _, e := range result.Errors {
			fmt.Printf("     - %v\n", e)
		}
		ok = false
	}

	total, done := tree.Stats()
	fmt.Printf("  Tasks: %d (%d done)\n", total, done)
	if verbose {
		for _, line := range tree.Render(false) {
			fmt.Println("    " + line)
		}
	}
	return ok
}

func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("tsk config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *example {
		fmt.Print(config.ExampleConfig())
		return nil
	}

	if len(cws.Files) == 0 {
		fmt.Println("Config files: (none)")
	} else {
		fmt.Println("Config files:")
		for _, f := range cws.Files {
			fmt.Printf("  %s\n", f)
		}
	}
	fmt.Println()
	for _, field := range cws.Fields() {
		fmt.Printf("%-15s = %-30v (%s)\n", field, cws.Value(field), cws.Sources[field])
	}
	return nil
}
