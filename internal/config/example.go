package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tsk configuration file
# Values can be overridden by environment variables (TSK_*) or CLI flags

# Task file (supports ~ expansion and %VAR% on Windows)
# task_file = "~/.local/share/tsk/tasks.json"

# Task file format: auto (by extension), json, yaml, toml, or text
format = "auto"

# Color output: auto, always, or never (NO_COLOR also disables color)
color = "auto"

# Where "add" puts new tasks by default: top or bottom
add_position = "top"

# Validate the task file against a JSON Schema on every load
validate = false
# schema_file = "tasks.schema.json"

# Hold an advisory lock on <task_file>.lock while modifying the file
lock_file = false

# Logging (written to stderr)
log_level = "warn"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
