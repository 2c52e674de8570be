// Package testutil provides fixtures shared by the nanotodo test suites.
package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/arthur-debert/nanotodo/nanotodo/storage"
	"github.com/arthur-debert/nanotodo/nanotodo/store"
	"github.com/arthur-debert/nanotodo/types"
)

// Epoch is the first timestamp handed out by Clock.
var Epoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// Clock returns a time function that starts at Epoch and advances one
// second per call, so createdAt values are deterministic and ordered.
func Clock() func() time.Time {
	var (
		mu   sync.Mutex
		next = Epoch
	)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(time.Second)
		return now
	}
}

// Item describes a record to seed.
type Item struct {
	Text      string
	Completed bool
}

// Active and Done are shorthands for Item.
func Active(text string) Item { return Item{Text: text} }
func Done(text string) Item   { return Item{Text: text, Completed: true} }

// NewStore returns a store persisted to a fresh memory storage, with the
// deterministic clock, seeded with items in order.
func NewStore(t *testing.T, items ...Item) (*store.Store, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	t.Cleanup(func() { _ = mem.Close() })

	s := store.New(store.WithStorage(mem), store.WithTimeFunc(Clock()))
	Seed(s, items...)
	return s, mem
}

// Seed adds items to s through the public API.
func Seed(s *store.Store, items ...Item) []types.Todo {
	out := make([]types.Todo, 0, len(items))
	for _, item := range items {
		todo := s.AddTodo(item.Text)
		if item.Completed {
			s.ToggleTodo(todo.ID)
			todo.Completed = true
		}
		out = append(out, todo)
	}
	return out
}

// ChangeRecorder collects every Change a store emits.
type ChangeRecorder struct {
	mu      sync.Mutex
	changes []store.Change
}

// Record subscribes a new recorder to s.
func Record(t *testing.T, s *store.Store) *ChangeRecorder {
	t.Helper()
	r := &ChangeRecorder{}
	unsubscribe := s.Subscribe(func(c store.Change) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.changes = append(r.changes, c)
	})
	t.Cleanup(unsubscribe)
	return r
}

// Ops returns the recorded operations in order.
func (r *ChangeRecorder) Ops() []store.Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make([]store.Op, len(r.changes))
	for i, c := range r.changes {
		ops[i] = c.Op
	}
	return ops
}

// Last returns the latest change.
func (r *ChangeRecorder) Last() (store.Change, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.changes) == 0 {
		return store.Change{}, false
	}
	return r.changes[len(r.changes)-1], true
}
