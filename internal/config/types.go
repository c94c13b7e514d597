package config

import (
	"fmt"
	"strings"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
}

// Default values.
const (
	DefaultColor       = ColorAuto
	DefaultAddPosition = "top"
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the full configuration for tsk.
type Config struct {
	// Paths
	TaskFile   string `toml:"task_file"`
	SchemaFile string `toml:"schema_file"`

	// Format of the task file: json, yaml, toml, text, or auto (by extension).
	Format string `toml:"format"`

	// Output
	Color string `toml:"color"`

	// Storage
	Validate bool `toml:"validate"`
	LockFile bool `toml:"lock_file"`

	// Where "add" puts new tasks when neither -top nor -bot is given.
	AddPosition string `toml:"add_position"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// Validate reports every setting with a value outside its allowed set.
func (c *Config) Validate() []error {
	var errs []error
	check := func(field, value string, allowed ...string) {
		v := strings.ToLower(strings.TrimSpace(value))
		for _, a := range allowed {
			if v == a {
				return
			}
		}
		errs = append(errs, fmt.Errorf("%s: invalid value %q (expected %s)", field, value, strings.Join(allowed, "|")))
	}

	check("color", c.Color, ColorAuto, ColorAlways, ColorNever)
	check("format", c.Format, "", "auto", "json", "yaml", "yml", "toml", "text", "txt")
	check("add_position", c.AddPosition, "top", "bottom", "bot")
	check("log_level", c.LogLevel, "debug", "info", "warn", "warning", "error", "fatal")
	check("log_format", c.LogFormat, "text", "json", "logfmt")
	if strings.TrimSpace(c.TaskFile) == "" {
		errs = append(errs, fmt.Errorf("task_file: must not be empty"))
	}
	return errs
}
