package store_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/nanotodo/nanotodo/storage"
	"github.com/arthur-debert/nanotodo/nanotodo/store"
	"github.com/arthur-debert/nanotodo/testutil"
	"github.com/arthur-debert/nanotodo/types"
	"github.com/google/go-cmp/cmp"
)

// brokenStorage fails every write.
type brokenStorage struct {
	*storage.Memory
}

func (brokenStorage) SetItem(string, string) error { return errBroken }

// flakyStorage fails the first n writes.
type flakyStorage struct {
	*storage.Memory
	n int
}

func (f *flakyStorage) SetItem(key, value string) error {
	if f.n > 0 {
		f.n--
		return errBroken
	}
	return f.Memory.SetItem(key, value)
}

func cmpTodos(want, got []types.Todo) string {
	return cmp.Diff(want, got)
}

func TestPersistenceRoundTrip(t *testing.T) {
	s, mem := testutil.NewStore(t, testutil.Active("a"), testutil.Done("b"))
	s.EditTodo(s.Todos()[0].ID, "a2")

	reloaded := store.New(store.WithStorage(mem))
	if diff := cmpTodos(s.Todos(), reloaded.Todos()); diff != "" {
		t.Errorf("reloaded list differs (-want +got):\n%s", diff)
	}
}

func TestPersistedLayout(t *testing.T) {
	s, mem := testutil.NewStore(t, testutil.Active("a"))
	s.AddTodo("b")

	raw, found, err := mem.GetItem(storage.TodosKey)
	if err != nil || !found {
		t.Fatalf("expected stored todos, found=%v err=%v", found, err)
	}
	var records []map[string]any
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		t.Fatalf("stored todos are not a JSON array: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, key := range []string{"id", "text", "completed", "createdAt"} {
		if _, ok := records[0][key]; !ok {
			t.Errorf("expected key %q in stored record", key)
		}
	}

	counter, _, _ := mem.GetItem(storage.NextIDKey)
	if counter != "3" {
		t.Errorf("expected counter 3, got %q", counter)
	}
}

func TestHydrate(t *testing.T) {
	t.Run("missing key starts empty", func(t *testing.T) {
		s := store.New(store.WithStorage(storage.NewMemory()))
		testutil.AssertCount(t, s.Todos(), 0)
		if s.NextID() != 1 {
			t.Errorf("expected next id 1, got %d", s.NextID())
		}
	})

	t.Run("malformed JSON starts empty", func(t *testing.T) {
		mem := storage.NewMemory()
		_ = mem.SetItem(storage.TodosKey, "{not json")
		s := store.New(store.WithStorage(mem))
		testutil.AssertCount(t, s.Todos(), 0)
	})

	t.Run("schema violation starts empty", func(t *testing.T) {
		mem := storage.NewMemory()
		_ = mem.SetItem(storage.TodosKey, `[{"id":"one","text":5}]`)
		s := store.New(store.WithStorage(mem))
		testutil.AssertCount(t, s.Todos(), 0)
	})

	t.Run("millisecond timestamps are accepted", func(t *testing.T) {
		mem := storage.NewMemory()
		_ = mem.SetItem(storage.TodosKey, `[{"id":3,"text":"legacy","completed":true,"createdAt":1700000000000}]`)
		s := store.New(store.WithStorage(mem))

		todos := s.Todos()
		testutil.AssertTexts(t, todos, "legacy")
		want := time.UnixMilli(1700000000000).UTC()
		if !todos[0].CreatedAt.Equal(want) {
			t.Errorf("expected createdAt %v, got %v", want, todos[0].CreatedAt)
		}
	})

	t.Run("counter falls back to max id", func(t *testing.T) {
		mem := storage.NewMemory()
		_ = mem.SetItem(storage.TodosKey, `[{"id":9,"text":"a","completed":false}]`)
		s := store.New(store.WithStorage(mem))
		if s.NextID() != 10 {
			t.Errorf("expected next id 10, got %d", s.NextID())
		}
	})

	t.Run("counter survives deleting the highest id", func(t *testing.T) {
		s, mem := testutil.NewStore(t, testutil.Active("a"), testutil.Active("b"))
		s.DeleteTodo(s.Todos()[1].ID)

		reloaded := store.New(store.WithStorage(mem))
		if got := reloaded.AddTodo("c"); got.ID != 3 {
			t.Errorf("expected id 3, got %d", got.ID)
		}
	})

	t.Run("malformed counter is ignored", func(t *testing.T) {
		mem := storage.NewMemory()
		_ = mem.SetItem(storage.TodosKey, `[{"id":2,"text":"a","completed":false}]`)
		_ = mem.SetItem(storage.NextIDKey, "many")
		s := store.New(store.WithStorage(mem))
		if s.NextID() != 3 {
			t.Errorf("expected next id 3, got %d", s.NextID())
		}
	})
}

func TestPersistFailureKeepsMemoryAuthoritative(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	s := store.New(
		store.WithStorage(brokenStorage{storage.NewMemory()}),
		store.WithLogger(logger),
	)

	s.AddTodo("kept")

	testutil.AssertTexts(t, s.Todos(), "kept")
	if err := s.Persister().LastError(); !errors.Is(err, errBroken) {
		t.Errorf("expected last error %v, got %v", errBroken, err)
	}
	if !strings.Contains(logs.String(), "failed to persist todos") {
		t.Errorf("expected failure to be logged, got %q", logs.String())
	}
}

func TestPersistErrIsSticky(t *testing.T) {
	s := store.New(store.WithStorage(&flakyStorage{Memory: storage.NewMemory(), n: 1}))

	first := s.AddTodo("a")
	s.AddTodo("b")

	if err := s.Persister().LastError(); err != nil {
		t.Errorf("expected latest write to succeed, got %v", err)
	}
	if err := s.Persister().Err(); !errors.Is(err, errBroken) {
		t.Errorf("expected first failure %v to be kept, got %v", errBroken, err)
	}

	s.Persister().ResetErr()
	s.ToggleTodo(first.ID)
	if err := s.Persister().Err(); err != nil {
		t.Errorf("expected no failure after reset, got %v", err)
	}
}
