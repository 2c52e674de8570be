// Package storage provides the local key/value persistence used by nanotodo.
// It mirrors the browser localStorage contract: string keys, string values,
// whole-value reads and writes. Backends differ only in where the items live.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Well-known keys.
const (
	// TodosKey holds the JSON array of todo records.
	TodosKey = "todos"

	// NextIDKey holds the decimal id counter stored alongside the list.
	NextIDKey = "todos.nextId"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// LocalStorage is a string-keyed item store.
type LocalStorage interface {
	// GetItem returns the value stored under key.
	// The boolean is false when the key is absent; that is not an error.
	GetItem(key string) (string, bool, error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(key, value string) error

	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(key string) error

	// Close releases any resources held by the storage.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendJSON, BackendSQLite, BackendMemory}

// Open creates the named backend at path. The memory backend ignores path.
func Open(backend, path string) (LocalStorage, error) {
	switch strings.ToLower(backend) {
	case BackendJSON, "":
		if path == "" {
			return nil, fmt.Errorf("json storage requires a file path")
		}
		return NewJSONFile(path), nil
	case BackendSQLite:
		if path == "" {
			return nil, fmt.Errorf("sqlite storage requires a file path")
		}
		return NewSQLite(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownBackend, backend, strings.Join(Backends, ", "))
	}
}
