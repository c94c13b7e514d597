package config

import (
	"sort"

	"github.com/em-s-h/tsk/internal/datadir"
)

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TaskFile = datadir.TaskPath()
	cfg.SchemaFile = ""
	cfg.Format = ""
	cfg.Color = DefaultColor
	cfg.Validate = false
	cfg.LockFile = false
	cfg.AddPosition = DefaultAddPosition
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}

// GetConfigFile returns the active config file path (project or user).
func (cws *ConfigWithSources) GetConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}

// Fields returns the tracked setting names in sorted order.
func (cws *ConfigWithSources) Fields() []string {
	fields := make([]string, 0, len(cws.Sources))
	for field := range cws.Sources {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Value returns the effective value of a tracked setting.
func (cws *ConfigWithSources) Value(field string) interface{} {
	c := cws.Config
	switch field {
	case "task_file":
		return c.TaskFile
	case "schema_file":
		return c.SchemaFile
	case "format":
		return c.Format
	case "color":
		return c.Color
	case "validate":
		return c.Validate
	case "lock_file":
		return c.LockFile
	case "add_position":
		return c.AddPosition
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return c.LogTimestamps
	case "log_caller":
		return c.LogCaller
	}
	return nil
}
