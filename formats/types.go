// Package formats converts todo lists to and from file formats used by
// export and import.
package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/nanotodo/types"
)

// ErrParseUnsupported is returned by Parse on render-only formats.
var ErrParseUnsupported = errors.New("format does not support parsing")

// ListFormat defines how a todo list is rendered and parsed.
type ListFormat struct {
	// Name is the format identifier (alphanumeric, dashes, underscores, lowercase)
	Name string

	// Extension is the file extension including the dot (e.g., ".md")
	Extension string

	// Render writes todos in canonical order.
	Render func(todos []types.Todo) ([]byte, error)

	// Parse reads a document back. Nil for render-only formats.
	Parse func(data []byte) ([]types.Todo, error)
}

// CanParse reports whether the format reads documents.
func (f *ListFormat) CanParse() bool {
	return f.Parse != nil
}

// Decode parses data, or returns ErrParseUnsupported.
func (f *ListFormat) Decode(data []byte) ([]types.Todo, error) {
	if !f.CanParse() {
		return nil, fmt.Errorf("%s: %w", f.Name, ErrParseUnsupported)
	}
	return f.Parse(data)
}

// registry holds all available list formats
var registry = make(map[string]*ListFormat)

// Register adds a new list format to the registry
func Register(format *ListFormat) error {
	if !isValidFormatName(format.Name) {
		return fmt.Errorf("invalid format name %q: must be lowercase alphanumeric with dashes and underscores only", format.Name)
	}
	if format.Render == nil {
		return fmt.Errorf("format %q has no renderer", format.Name)
	}

	if !strings.HasPrefix(format.Extension, ".") {
		format.Extension = "." + format.Extension
	}

	if _, exists := registry[format.Name]; exists {
		return fmt.Errorf("format %q already registered", format.Name)
	}

	registry[format.Name] = format
	return nil
}

// Get returns a list format by name
func Get(name string) (*ListFormat, error) {
	format, exists := registry[strings.ToLower(name)]
	if !exists {
		return nil, fmt.Errorf("unknown format %q (available: %s)", name, strings.Join(List(), ", "))
	}
	return format, nil
}

// List returns all registered format names, sorted
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByExtension returns the format registered for the extension of path.
func ByExtension(path string) (*ListFormat, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, false
	}
	for _, name := range List() {
		if f := registry[name]; f.Extension == ext {
			return f, true
		}
	}
	return nil, false
}

// isValidFormatName checks if a format name is valid
func isValidFormatName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}

func mustRegister(format *ListFormat) {
	if err := Register(format); err != nil {
		panic(fmt.Sprintf("failed to register %s format: %v", format.Name, err))
	}
}
