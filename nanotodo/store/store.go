// Package store owns the canonical todo list.
//
// A Store holds the ordered list of records, the view state (status filter
// and keyword) and the id counter. Derived views are computed from the
// canonical list on every read and returned as copies, so callers can never
// mutate store state through them.
//
// Mutations are synchronous. Each one that changes the canonical list emits a
// single Change to the store's subscribers once the lock has been released;
// the Persister is one such subscriber. Changes are delivered in mutation
// order even when callers run concurrently. Lookups that miss (unknown ids,
// invalid filter values, out-of-range reorder indices) are silent no-ops.
package store

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/arthur-debert/nanotodo/nanotodo/storage"
	"github.com/arthur-debert/nanotodo/types"
)

// Store is the todo list state container. Create one with New; the zero
// value is not usable.
type Store struct {
	lockManager *storage.LockManager
	timeFunc    func() time.Time
	logger      *slog.Logger

	todos  []types.Todo
	nextID int
	view   types.View

	subscribers    map[int]func(Change)
	nextSubscriber int

	// pending holds changes queued under the write lock. At most one
	// goroutine drains it at a time.
	deliveryMu sync.Mutex
	pending    []delivery
	delivering bool

	storage   storage.LocalStorage
	persister *Persister
}

// New creates a store. With WithStorage the list is hydrated from storage
// and every later mutation is written back.
func New(opts ...Option) *Store {
	s := &Store{
		lockManager: storage.NewLockManager(),
		timeFunc:    time.Now,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		todos:       []types.Todo{},
		nextID:      1,
		view:        types.View{Filter: types.FilterAll},
		subscribers: map[int]func(Change){},
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.storage != nil {
		s.persister = NewPersister(s.storage, s.logger)
		todos, nextID := s.persister.Hydrate()
		s.todos = todos
		if nextID > s.nextID {
			s.nextID = nextID
		}
		s.Subscribe(s.persister.Handle)
	}

	return s
}

// Subscribe registers fn to receive every Change. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	var id int
	_ = s.lockManager.Execute(storage.WriteOperation, func() error {
		id = s.nextSubscriber
		s.nextSubscriber++
		s.subscribers[id] = fn
		return nil
	})
	return func() {
		_ = s.lockManager.Execute(storage.WriteOperation, func() error {
			delete(s.subscribers, id)
			return nil
		})
	}
}

// Persister returns the storage subscriber, or nil for a memory-only store.
func (s *Store) Persister() *Persister {
	return s.persister
}

// read runs fn under the read lock.
func (s *Store) read(fn func()) {
	_ = s.lockManager.Execute(storage.ReadOperation, func() error {
		fn()
		return nil
	})
}

type delivery struct {
	change  Change
	targets []func(Change)
}

// mutate runs fn under the write lock. When fn reports a change, a snapshot
// is queued before the lock is released and subscribers receive it after.
func (s *Store) mutate(op Op, fn func() bool) {
	var changed bool
	_ = s.lockManager.Execute(storage.WriteOperation, func() error {
		changed = fn()
		if !changed {
			return nil
		}
		change := Change{Op: op, Todos: types.Clone(s.todos), NextID: s.nextID}
		s.deliveryMu.Lock()
		s.pending = append(s.pending, delivery{change: change, targets: s.subscriberList()})
		s.deliveryMu.Unlock()
		return nil
	})
	if !changed {
		s.logger.Debug("mutation had no effect", "op", string(op))
		return
	}
	s.deliver()
}

// deliver drains the pending queue in order. When another goroutine is
// already draining, it delivers this change too and deliver returns at once.
func (s *Store) deliver() {
	s.deliveryMu.Lock()
	if s.delivering {
		s.deliveryMu.Unlock()
		return
	}
	s.delivering = true
	for len(s.pending) > 0 {
		d := s.pending[0]
		s.pending = s.pending[1:]
		s.deliveryMu.Unlock()

		s.logger.Debug("todos changed", "op", string(d.change.Op), "count", len(d.change.Todos))
		for _, fn := range d.targets {
			fn(d.change)
		}

		s.deliveryMu.Lock()
	}
	s.delivering = false
	s.deliveryMu.Unlock()
}

// subscriberList returns subscribers in registration order. Callers hold the lock.
func (s *Store) subscriberList() []func(Change) {
	out := make([]func(Change), 0, len(s.subscribers))
	for id := 0; id < s.nextSubscriber; id++ {
		if fn, ok := s.subscribers[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

// indexOf returns the canonical index of the first record with id, or -1.
// Callers hold the lock.
func (s *Store) indexOf(id int) int {
	for i, t := range s.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}
