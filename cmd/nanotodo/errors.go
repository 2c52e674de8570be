package main

import (
	"errors"
	"fmt"
	"strings"
)

// CLIError represents a user-friendly CLI error with context and suggestions
type CLIError struct {
	Operation   string   // The operation that failed (e.g., "toggle", "import")
	Cause       string   // The underlying cause (e.g., "todo not found")
	Details     string   // Additional technical details
	Suggestions []string // Helpful suggestions for the user
	Underlying  error    // Original error for debugging
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var msg strings.Builder

	if e.Operation != "" {
		msg.WriteString(fmt.Sprintf("Failed to %s", e.Operation))
	} else {
		msg.WriteString("Operation failed")
	}

	if e.Cause != "" {
		msg.WriteString(fmt.Sprintf(": %s", e.Cause))
	}

	if e.Details != "" {
		msg.WriteString(fmt.Sprintf(" (%s)", e.Details))
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return msg.String()
}

// Unwrap returns the underlying error for error chain compatibility
func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// NewValidationError creates an error for invalid user input
func NewValidationError(operation, field, value string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("invalid %s: %q", field, value),
		Suggestions: suggestions,
	}
}

// NewNotFoundError creates an error for ids missing from the list
func NewNotFoundError(operation string, id int, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("todo %d not found", id),
		Suggestions: suggestions,
	}
}

// NewStoreError creates an error for storage and file issues
func NewStoreError(operation string, underlying error, suggestions ...string) *CLIError {
	cause := "storage operation failed"
	details := ""

	if underlying != nil {
		details = underlying.Error()

		errStr := strings.ToLower(underlying.Error())
		switch {
		case strings.Contains(errStr, "no such file"):
			cause = "file not found"
		case strings.Contains(errStr, "permission denied"):
			cause = "insufficient permissions to access the file"
		case strings.Contains(errStr, "acquire lock"), strings.Contains(errStr, "database is locked"):
			cause = "the store is locked by another process"
		case strings.Contains(errStr, "invalid"), strings.Contains(errStr, "parse"):
			cause = "invalid data"
		}
	}

	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Details:     details,
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// WrapError wraps an existing error with CLI-friendly context
func WrapError(operation string, err error, suggestions ...string) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		if cliErr.Operation == "" {
			cliErr.Operation = operation
		}
		return cliErr
	}

	return NewStoreError(operation, err, suggestions...)
}

// Common suggestions
var (
	CommonSuggestions = struct {
		CheckID     string
		CheckStore  string
		CheckConfig string
		CheckPerms  string
		RunHelp     string
	}{
		CheckID:     "Run 'nanotodo list' to see existing ids",
		CheckStore:  "Verify --store points to a writable file",
		CheckConfig: "Check your configuration file or NANOTODO_* environment variables",
		CheckPerms:  "Check file permissions and directory access",
		RunHelp:     "Run command with --help for usage information",
	}
)
