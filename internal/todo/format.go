package todo

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/em-s-h/tsk/internal/tasktree"
)

// Format is an on-disk task file syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatText Format = "text"
)

// SchemaVersion is written into the YAML and TOML formats.
const SchemaVersion = 1

// File is the wrapped document used by the YAML and TOML formats.
type File struct {
	SchemaVersion int             `json:"schema_version" yaml:"schema_version" toml:"schema_version"`
	Tasks         []tasktree.Task `json:"tasks" yaml:"tasks" toml:"tasks"`
}

// ParseFormat normalizes a format name. The empty string and "auto" are
// accepted and mean "decide from the file extension".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return "", nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "text", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown format %q (valid: json, yaml, toml, text)", s)
}

// DetectFormat picks the format for path. A configured format wins over the
// extension.
func DetectFormat(path string, configured Format) Format {
	if configured != "" {
		return configured
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".txt", ".todo":
		return FormatText
	}
	return FormatJSON
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (*tasktree.Tree, error) {
	switch format {
	case FormatYAML:
		var f File
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		return tasktree.New(f.Tasks...), nil
	case FormatTOML:
		var f File
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		return tasktree.New(f.Tasks...), nil
	case FormatText:
		return decodeText(data)
	default:
		return tasktree.Load(data)
	}
}

// Encode renders tree in the given format, ending with a newline.
func Encode(tree *tasktree.Tree, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(File{SchemaVersion: SchemaVersion, Tasks: nonNil(tree.Tasks)}); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.Indent = "  "
		if err := enc.Encode(File{SchemaVersion: SchemaVersion, Tasks: tree.Tasks}); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatText:
		return encodeText(tree)
	default:
		data, err := tree.Serialize()
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

func nonNil(tasks []tasktree.Task) []tasktree.Task {
	if tasks == nil {
		return []tasktree.Task{}
	}
	return tasks
}
