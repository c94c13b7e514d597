package config

import "os"

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource, source ConfigSource) {
	setEnv := func(field string) {
		if sources != nil {
			sources[field] = source
		}
	}

	if v := os.Getenv("TSK_FILE"); v != "" {
		cfg.TaskFile = v
		setEnv("task_file")
	}
	if v := os.Getenv("TSK_SCHEMA"); v != "" {
		cfg.SchemaFile = v
		setEnv("schema_file")
	}
	if v := os.Getenv("TSK_FORMAT"); v != "" {
		cfg.Format = v
		setEnv("format")
	}
	if v := os.Getenv("TSK_COLOR"); v != "" {
		cfg.Color = v
		setEnv("color")
	}
	// https://no-color.org: any non-empty value disables color.
	if v := os.Getenv("NO_COLOR"); v != "" {
		cfg.Color = ColorNever
		setEnv("color")
	}
	if v := os.Getenv("TSK_VALIDATE"); v != "" {
		cfg.Validate = boolFromString(v)
		setEnv("validate")
	}
	if v := os.Getenv("TSK_LOCK"); v != "" {
		cfg.LockFile = boolFromString(v)
		setEnv("lock_file")
	}
	if v := os.Getenv("TSK_ADD_POSITION"); v != "" {
		cfg.AddPosition = v
		setEnv("add_position")
	}

	// Logging configuration
	if v := os.Getenv("TSK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		setEnv("log_level")
	}
	if v := os.Getenv("TSK_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		setEnv("log_format")
	}
	if v := os.Getenv("TSK_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		setEnv("log_timestamps")
	}
	if v := os.Getenv("TSK_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		setEnv("log_caller")
	}
}
