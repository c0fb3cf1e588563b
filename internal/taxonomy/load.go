package taxonomy

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-scorer/internal/schemas"
)

// Format is a taxonomy file encoding.
type Format string

// Supported taxonomy formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension. Anything other than
// .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile reads and validates a taxonomy file.
func LoadFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Message: "failed to read file", Cause: err}
	}
	return Parse(data, FormatFromPath(path), path)
}

// Parse validates data against the taxonomy schema and builds the synonym index.
// source is only used in error messages.
func Parse(data []byte, format Format, source string) (*Taxonomy, error) {
	var doc document

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, &LoadError{Source: source, Message: "invalid YAML", Cause: err}
		}
		if err := schemas.ValidateDocument(schemas.Taxonomy, doc); err != nil {
			return nil, &LoadError{Source: source, Message: "schema validation failed", Cause: err}
		}
	case FormatJSON:
		if err := schemas.ValidateBytes(schemas.Taxonomy, data); err != nil {
			return nil, &LoadError{Source: source, Message: "schema validation failed", Cause: err}
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &LoadError{Source: source, Message: "invalid JSON", Cause: err}
		}
	default:
		return nil, &LoadError{Source: source, Message: "unsupported format " + string(format)}
	}

	return build(doc, source)
}

// Marshal encodes the taxonomy in the given format. Output round-trips through Parse.
func (t *Taxonomy) Marshal(format Format) ([]byte, error) {
	doc := document{Version: t.version, Skills: t.Entries(), Roles: t.roles}
	if format == FormatYAML {
		return yaml.Marshal(doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}
