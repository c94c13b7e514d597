package config

import (
	"flag"
	"strings"
)

// parseFlags defines the global flags on fs, parses args, and applies the
// flags that were set. If sources is non-nil, it tracks the source of each
// value.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource, source ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("tsk", flag.ContinueOnError)
	}

	var (
		taskFile, schemaFile, format, color string
		noColor, validate, lock            bool
		logLevel, logFormat                string
		logTimestamps, logCaller           bool
	)
	fs.StringVar(&taskFile, "file", cfg.TaskFile, "Path to task file")
	fs.StringVar(&format, "format", cfg.Format, "Task file format (auto, json, yaml, toml, text)")
	fs.StringVar(&color, "color", cfg.Color, "Color output (auto, always, never)")
	fs.BoolVar(&noColor, "no-color", false, "Disable color output (same as -color never)")
	fs.StringVar(&schemaFile, "schema", cfg.SchemaFile, "JSON Schema file used by -validate and doctor")
	fs.BoolVar(&validate, "validate", cfg.Validate, "Validate the task file on every load")
	fs.BoolVar(&lock, "lock", cfg.LockFile, "Hold an advisory lock while modifying the task file")
	fs.StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&logTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&logCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Map flag names to source field names
	flagToSource := map[string]string{
		"file":           "task_file",
		"format":         "format",
		"color":          "color",
		"no-color":       "color",
		"schema":         "schema_file",
		"validate":       "validate",
		"lock":           "lock_file",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
	}

	fs.Visit(func(f *flag.Flag) {
		field, ok := flagToSource[f.Name]
		if !ok {
			return
		}
		switch f.Name {
		case "file":
			cfg.TaskFile = taskFile
		case "format":
			cfg.Format = format
		case "color":
			cfg.Color = color
		case "no-color":
			if !noColor {
				return
			}
			cfg.Color = ColorNever
		case "schema":
			cfg.SchemaFile = schemaFile
		case "validate":
			cfg.Validate = validate
		case "lock":
			cfg.LockFile = lock
		case "log-level":
			cfg.LogLevel = logLevel
		case "log-format":
			cfg.LogFormat = logFormat
		case "log-timestamps":
			cfg.LogTimestamps = logTimestamps
		case "log-caller":
			cfg.LogCaller = logCaller
		}
		if sources != nil {
			sources[field] = source
		}
	})

	return nil
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
