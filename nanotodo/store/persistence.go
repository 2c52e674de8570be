package store

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/arthur-debert/nanotodo/internal/validation"
	"github.com/arthur-debert/nanotodo/nanotodo/storage"
	"github.com/arthur-debert/nanotodo/types"
)

// Persister writes the canonical list to local storage after every change
// and reads it back on startup. Failures are logged; the in-memory list
// stays authoritative.
type Persister struct {
	storage storage.LocalStorage
	logger  *slog.Logger

	mu       sync.Mutex
	lastErr  error // latest write failure, cleared by a successful write
	firstErr error // first write failure since ResetErr
}

// NewPersister binds a persister to s.
func NewPersister(s storage.LocalStorage, logger *slog.Logger) *Persister {
	return &Persister{storage: s, logger: logger}
}

// Handle is the Change subscriber. It serializes the full list under
// storage.TodosKey and the counter under storage.NextIDKey.
func (p *Persister) Handle(change Change) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lastErr = p.Save(change.Todos, change.NextID)
	if p.lastErr != nil {
		if p.firstErr == nil {
			p.firstErr = p.lastErr
		}
		p.logger.Error("failed to persist todos",
			"op", string(change.Op),
			"count", len(change.Todos),
			"error", p.lastErr)
	}
}

// LastError returns the error of the latest write, or nil.
func (p *Persister) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Err returns the first write failure since the last ResetErr, or nil.
// Later successful writes do not clear it.
func (p *Persister) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.firstErr
}

// ResetErr forgets recorded write failures.
func (p *Persister) ResetErr() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.firstErr = nil
	p.lastErr = nil
}

// Save writes todos and nextID.
func (p *Persister) Save(todos []types.Todo, nextID int) error {
	if todos == nil {
		todos = []types.Todo{}
	}
	payload, err := json.Marshal(todos)
	if err != nil {
		return err
	}
	if err := p.storage.SetItem(storage.TodosKey, string(payload)); err != nil {
		return err
	}
	return p.storage.SetItem(storage.NextIDKey, strconv.Itoa(nextID))
}

// Hydrate loads the persisted list and the next id to assign.
// Absent, unreadable or invalid data yields an empty list; the counter falls
// back to max(id)+1 when missing or behind.
func (p *Persister) Hydrate() ([]types.Todo, int) {
	todos := []types.Todo{}

	raw, found, err := p.storage.GetItem(storage.TodosKey)
	switch {
	case err != nil:
		p.logger.Error("failed to read todos from storage", "error", err)
		return todos, 1
	case !found:
		p.logger.Debug("no stored todos")
	default:
		todos = p.decode(raw)
	}

	nextID := types.MaxID(todos) + 1
	counter, found, err := p.storage.GetItem(storage.NextIDKey)
	if err != nil {
		p.logger.Warn("failed to read id counter", "error", err)
		return todos, nextID
	}
	if found {
		n, err := strconv.Atoi(counter)
		if err != nil {
			p.logger.Warn("ignoring malformed id counter", "value", counter, "error", err)
		} else if n > nextID {
			nextID = n
		}
	}

	p.logger.Debug("hydrated todos", "count", len(todos), "next_id", nextID)
	return todos, nextID
}

func (p *Persister) decode(raw string) []types.Todo {
	if err := validation.ValidateTodos([]byte(raw)); err != nil {
		var schemaErr *validation.SchemaError
		if errors.As(err, &schemaErr) {
			p.logger.Warn("stored todos do not match schema, starting empty", "issues", len(schemaErr.Issues), "error", err)
		} else {
			p.logger.Warn("stored todos are not valid JSON, starting empty", "error", err)
		}
		return []types.Todo{}
	}

	var todos []types.Todo
	if err := json.Unmarshal([]byte(raw), &todos); err != nil {
		p.logger.Warn("failed to decode stored todos, starting empty", "error", err)
		return []types.Todo{}
	}
	if todos == nil {
		todos = []types.Todo{}
	}
	return todos
}
