// Package schemas provides JSON Schema validation for taxonomy files and scoring results.
// The schemas are embedded at compile time.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Embedded schema names
const (
	Taxonomy    = "taxonomy.schema.json"
	MatchResult = "match_result.schema.json"
	Analysis    = "analysis.schema.json"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Get returns the content of an embedded schema.
func Get(name string) (string, error) {
	data, err := schemaFiles.ReadFile(name)
	if err != nil {
		return "", &SchemaLoadError{Path: name, Message: "schema not embedded", Cause: err}
	}
	return string(data), nil
}

// ValidateDocument validates a Go value (marshalled as JSON) against an embedded schema.
func ValidateDocument(name string, doc any) error {
	schema, err := Get(name)
	if err != nil {
		return err
	}
	return validate(name, gojsonschema.NewStringLoader(schema), gojsonschema.NewGoLoader(doc))
}

// ValidateBytes validates raw JSON against an embedded schema.
func ValidateBytes(name string, data []byte) error {
	schema, err := Get(name)
	if err != nil {
		return err
	}
	return validate(name, gojsonschema.NewStringLoader(schema), gojsonschema.NewBytesLoader(data))
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	return validate("(string schema)", gojsonschema.NewStringLoader(schemaContent), gojsonschema.NewStringLoader(jsonContent))
}

func validate(path string, schemaLoader, documentLoader gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    path,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
