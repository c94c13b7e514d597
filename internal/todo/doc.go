// Package todo loads, validates, and saves task files.
//
// A task file holds a tree of tasks. Four on-disk formats are supported:
//
//	json   a bare array of {"contents", "done", "children"} records
//	yaml   {schema_version: 1, tasks: [...]}
//	toml   schema_version = 1 plus [[tasks]] tables
//	text   one "[ ] contents" or "[X] contents" line per task,
//	       indented with one tab per level
//
// The format comes from the configured value, or from the file extension
// when none is configured (".yaml"/".yml", ".toml", ".txt"/".todo").
// Anything else is JSON.
//
// # Missing files
//
// A missing or empty file loads as a single done task reading
// "Create a new task file". It is written out on the first save.
//
// # Validation
//
// JSON files can be checked against the embedded JSON Schema
// (draft 2020-12) or against a schema file given in ValidationOptions.
// Other formats are validated after decoding, on their JSON form.
//
// # Writing
//
// Files are written with 2-space indentation and a trailing newline, to a
// temporary file in the same directory that is then renamed over the
// original. Store.Update can hold an advisory lock on "<path>.lock" for the
// whole load-modify-save cycle.
package todo
