package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/em-s-h/tsk/internal/utils"
)

//go:embed schema.json
var embeddedSchema string

// SchemaURL is the $id of the embedded schema.
const SchemaURL = "https://tsk.local/schema/tasks.schema.json"

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath is the path to a JSON Schema file.
	// If empty, the embedded schema is used.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid    bool
	Errors   []error
	Warnings []string
	// Schema names the schema that was applied.
	Schema string
}

// Validate checks raw JSON task-file data against the schema.
// A schema file that cannot be read or compiled falls back to the embedded
// schema with a warning.
func Validate(data []byte, opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Warnings = append(result.Warnings, "task file is empty")
		return result
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("invalid JSON: %w", err),
		})
		return result
	}

	schema, name := compileSchema(opts.SchemaPath, result)
	if schema == nil {
		return result
	}
	result.Schema = name

	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
	return result
}

func compileSchema(path string, result *ValidationResult) (*jsonschema.Schema, string) {
	if path != "" {
		schema, err := compileSchemaFile(path)
		if err == nil {
			return schema, path
		}
		result.Warnings = append(result.Warnings, err.Error()+", using built-in schema")
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(SchemaURL, strings.NewReader(embeddedSchema)); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("load built-in schema: %w", err))
		return nil, ""
	}
	schema, err := compiler.Compile(SchemaURL)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("compile built-in schema: %w", err))
		return nil, ""
	}
	return schema, "built-in"
}

func compileSchemaFile(path string) (*jsonschema.Schema, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid schema path: %v", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("schema file not found: %s", absPath)
		}
		return nil, fmt.Errorf("failed to read schema file: %v", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Errorf("invalid schema file: %v", err)
	}
	return schema, nil
}

func appendSchemaErrors(result *ValidationResult, err error) {
	if err == nil {
		return
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}

	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
