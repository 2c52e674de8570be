// Package validation checks persisted todo payloads before they are hydrated.
package validation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed todos.schema.json
var todosSchemaJSON string

const todosSchemaURL = "https://github.com/arthur-debert/nanotodo/todos.schema.json"

var (
	compileOnce sync.Once
	todosSchema *jsonschema.Schema
	compileErr  error
)

// Issue is one schema violation.
type Issue struct {
	Path    string // Dotted path into the payload, e.g. "[2].text"
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// SchemaError lists every leaf violation found in a payload.
type SchemaError struct {
	Issues []Issue
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return "invalid todo payload: " + strings.Join(parts, "; ")
}

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if err := compiler.AddResource(todosSchemaURL, strings.NewReader(todosSchemaJSON)); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		todosSchema, compileErr = compiler.Compile(todosSchemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile schema: %w", compileErr)
		}
	})
	return todosSchema, compileErr
}

// ValidateTodos checks raw against the persisted todo list schema.
// Malformed JSON is reported as a plain error; shape mismatches as *SchemaError.
func ValidateTodos(raw []byte) error {
	s, err := schema()
	if err != nil {
		return err
	}

	var payload interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invalid todo payload: %w", err)
	}

	if err := s.Validate(payload); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return err
		}
		result := &SchemaError{}
		collectIssues(result, ve)
		return result
	}
	return nil
}

func collectIssues(result *SchemaError, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Issues = append(result.Issues, Issue{
			Path:    pointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectIssues(result, cause)
	}
}

// pointerToPath turns "/2/text" into "[2].text".
func pointerToPath(ptr string) string {
	if ptr == "" || ptr == "/" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(strings.TrimPrefix(ptr, "/"), "/") {
		part = strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
