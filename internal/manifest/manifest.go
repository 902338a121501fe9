package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mendersoftware/autoversion/internal/core"
	"github.com/pelletier/go-toml/v2"
)

// Format represents the supported manifest file formats.
type Format string

const (
	// FormatJSON is for JSON files (package.json, composer.json).
	FormatJSON Format = "json"

	// FormatYAML is for YAML files (Chart.yaml, pubspec.yaml).
	FormatYAML Format = "yaml"

	// FormatTOML is for TOML files (Cargo.toml, pyproject.toml).
	FormatTOML Format = "toml"

	// FormatRaw is for plain text files where the entire content is the version.
	FormatRaw Format = "raw"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML, FormatRaw:
		return true
	default:
		return false
	}
}

// Source describes where to read a component's released version from.
type Source struct {
	// Path is the manifest file path.
	Path string

	// Format specifies the file format. Empty means infer from the filename.
	Format Format

	// Field is the dot-notation path to the version field (for structured
	// formats). Empty means infer from the filename.
	Field string
}

// Reader reads component versions out of manifest files.
type Reader struct {
	fs core.FileSystem
}

// NewReader creates a new Reader with the given filesystem.
func NewReader(fs core.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// ReadVersion reads the version string described by src, inferring format
// and field from the filename when they are not set.
func (r *Reader) ReadVersion(ctx context.Context, src Source) (string, error) {
	if src.Path == "" {
		return "", fmt.Errorf("manifest path is required")
	}
	if src.Format == "" {
		src.Format = FormatForFile(src.Path)
	}
	if !src.Format.IsValid() {
		return "", fmt.Errorf("invalid manifest format: %s", src.Format)
	}
	if src.Field == "" && src.Format != FormatRaw {
		src.Field = FieldForFile(src.Path)
	}

	data, err := r.fs.ReadFile(ctx, src.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read manifest %q: %w", src.Path, err)
	}

	switch src.Format {
	case FormatJSON:
		return readStructured(data, src.Path, src.Field, "JSON", json.Unmarshal)
	case FormatYAML:
		return readStructured(data, src.Path, src.Field, "YAML", yaml.Unmarshal)
	case FormatTOML:
		return readStructured(data, src.Path, src.Field, "TOML", toml.Unmarshal)
	default:
		return strings.TrimSpace(string(data)), nil
	}
}

// readStructured extracts the version field from decoded JSON/YAML/TOML data
// using dot notation for the field path.
func readStructured(data []byte, path, field, kind string, unmarshal func([]byte, any) error) (string, error) {
	var obj map[string]any
	if err := unmarshal(data, &obj); err != nil {
		return "", fmt.Errorf("failed to parse %s in %q: %w", kind, path, err)
	}

	value, err := getNestedValue(obj, field)
	if err != nil {
		return "", fmt.Errorf("in file %q: %w", path, err)
	}

	version, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q in %q is not a string", field, path)
	}
	return version, nil
}

// getNestedValue retrieves a value from a nested map using dot notation.
// Example: "package.version" accesses obj["package"]["version"]
func getNestedValue(obj map[string]any, field string) (any, error) {
	if field == "" {
		return nil, fmt.Errorf("field path cannot be empty")
	}

	parts := strings.Split(field, ".")
	current := any(obj)

	for i, part := range parts {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q is not an object at path %q", strings.Join(parts[:i], "."), part)
		}
		value, exists := currentMap[part]
		if !exists {
			return nil, fmt.Errorf("field %q not found", field)
		}
		current = value
	}

	return current, nil
}

// FieldForFile returns the typical version field path for well-known
// manifest filenames.
func FieldForFile(path string) string {
	fields := map[string]string{
		"package.json":   "version",
		"composer.json":  "version",
		"Cargo.toml":     "package.version",
		"pyproject.toml": "project.version",
		"Chart.yaml":     "version",
		"pubspec.yaml":   "version",
	}
	if field, ok := fields[filepath.Base(path)]; ok {
		return field
	}
	return "version"
}

// FormatForFile detects the manifest format based on file extension or name.
func FormatForFile(path string) Format {
	lower := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lower, ".toml"):
		return FormatTOML
	default:
		return FormatRaw
	}
}
