// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.tsk/tsk.toml or OS-specific config directory)
// 3. Project config file (tsk.toml or .tsk.toml in the current directory)
// 4. Environment variables (TSK_*, NO_COLOR)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.tsk/tsk.toml (preferred)
// - Windows: %APPDATA%\tsk\tsk.toml
// - macOS: ~/Library/Application Support/tsk/tsk.toml
// - Linux/BSD: $XDG_CONFIG_HOME/tsk/tsk.toml or ~/.config/tsk/tsk.toml
//
// Project-level config locations (overrides user config):
// - ./tsk.toml (preferred)
// - ./.tsk.toml
package config
