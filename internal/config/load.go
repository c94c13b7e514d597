package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.tsk/tsk.toml or OS-specific config dir)
// 3. Project config file (tsk.toml or .tsk.toml in current directory)
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := load(fs, args, nil)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
// Returns ConfigWithSources containing the config and a map of field names to their sources.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}
	return load(fs, args, sources)
}

func load(fs *flag.FlagSet, args []string, sources map[string]ConfigSource) (*ConfigWithSources, error) {
	cfg := &Config{}
	var files []string

	// 1. Set defaults
	setDefaults(cfg)

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
		files = append(files, userConfigFile)
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
		files = append(files, projectConfigFile)
	}

	// 4. Override from environment
	loadFromEnv(cfg, sources, SourceEnv)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, sources, SourceFlag); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return &ConfigWithSources{
		Config:  cfg,
		Sources: sources,
		Files:   files,
	}, nil
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"task_file",
		"schema_file",
		"format",
		"color",
		"validate",
		"lock_file",
		"add_position",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// loadConfigFile decodes a TOML file over cfg. Only keys present in the file
// are applied; when sources is non-nil they are recorded with source.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	fileCfg := *cfg
	md, err := toml.DecodeFile(path, &fileCfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}

	for _, field := range configFields() {
		if !md.IsDefined(field) {
			continue
		}
		switch field {
		case "task_file":
			setSource(&cfg.TaskFile, fileCfg.TaskFile, sources, field, source)
		case "schema_file":
			setSource(&cfg.SchemaFile, fileCfg.SchemaFile, sources, field, source)
		case "format":
			setSource(&cfg.Format, fileCfg.Format, sources, field, source)
		case "color":
			setSource(&cfg.Color, fileCfg.Color, sources, field, source)
		case "validate":
			setSource(&cfg.Validate, fileCfg.Validate, sources, field, source)
		case "lock_file":
			setSource(&cfg.LockFile, fileCfg.LockFile, sources, field, source)
		case "add_position":
			setSource(&cfg.AddPosition, fileCfg.AddPosition, sources, field, source)
		case "log_level":
			setSource(&cfg.LogLevel, fileCfg.LogLevel, sources, field, source)
		case "log_format":
			setSource(&cfg.LogFormat, fileCfg.LogFormat, sources, field, source)
		case "log_timestamps":
			setSource(&cfg.LogTimestamps, fileCfg.LogTimestamps, sources, field, source)
		case "log_caller":
			setSource(&cfg.LogCaller, fileCfg.LogCaller, sources, field, source)
		}
	}
	return nil
}

// setSource assigns value and records where it came from.
func setSource[T any](field *T, value T, sources map[string]ConfigSource, name string, source ConfigSource) {
	*field = value
	if sources != nil {
		sources[name] = source
	}
}

// finalizeConfig computes derived values and validates settings.
func finalizeConfig(cfg *Config) error {
	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	cfg.TaskFile = expandPath(cfg.TaskFile)
	cfg.SchemaFile = expandPath(cfg.SchemaFile)

	// Make paths absolute if they're relative
	if cfg.TaskFile != "" && !filepath.IsAbs(cfg.TaskFile) {
		cfg.TaskFile = filepath.Join(cfg.ProjectRoot, cfg.TaskFile)
	}
	if cfg.SchemaFile != "" && !filepath.IsAbs(cfg.SchemaFile) {
		cfg.SchemaFile = filepath.Join(cfg.ProjectRoot, cfg.SchemaFile)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return errs[0]
	}
	return nil
}
