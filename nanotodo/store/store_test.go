package store_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/arthur-debert/nanotodo/nanotodo/store"
	"github.com/arthur-debert/nanotodo/testutil"
	"github.com/arthur-debert/nanotodo/types"
)

func TestAddTodo(t *testing.T) {
	s, _ := testutil.NewStore(t)

	t.Run("assigns increasing ids", func(t *testing.T) {
		a := s.AddTodo("first")
		b := s.AddTodo("second")
		if b.ID <= a.ID {
			t.Errorf("expected id %d to be greater than %d", b.ID, a.ID)
		}
		if s.TodoCount() != 2 {
			t.Errorf("expected 2 todos, got %d", s.TodoCount())
		}
	})

	t.Run("new todos are active and stamped", func(t *testing.T) {
		todo := s.AddTodo("third")
		if todo.Completed {
			t.Error("expected new todo to be active")
		}
		if todo.CreatedAt.IsZero() {
			t.Error("expected createdAt to be set")
		}
	})

	t.Run("empty text is accepted", func(t *testing.T) {
		before := s.TodoCount()
		s.AddTodo("")
		if s.TodoCount() != before+1 {
			t.Errorf("expected count %d, got %d", before+1, s.TodoCount())
		}
	})
}

func TestAddTodos(t *testing.T) {
	s, mem := testutil.NewStore(t, testutil.Active("existing"))
	rec := testutil.Record(t, s)

	added := s.AddTodos([]types.Todo{
		{ID: 99, Text: "imported", Completed: true},
		{ID: 1, Text: "also imported"},
	})

	testutil.AssertIDs(t, added, 2, 3)
	testutil.AssertTexts(t, s.Todos(), "existing", "imported", "also imported")
	if got, _ := s.Todo(2); !got.Completed {
		t.Error("expected completion to be kept")
	}
	if ops := rec.Ops(); len(ops) != 1 || ops[0] != store.OpAdd {
		t.Errorf("expected a single add change, got %v", ops)
	}

	reloaded := store.New(store.WithStorage(mem))
	testutil.AssertTexts(t, reloaded.Todos(), "existing", "imported", "also imported")

	if got := s.AddTodos(nil); len(got) != 0 || len(rec.Ops()) != 1 {
		t.Errorf("expected empty batch to be a no-op, got %v", got)
	}
}

func TestIDsAreNotReused(t *testing.T) {
	s, _ := testutil.NewStore(t, testutil.Active("a"), testutil.Active("b"))
	last := s.Todos()[1]

	s.DeleteTodo(last.ID)
	added := s.AddTodo("c")

	if added.ID <= last.ID {
		t.Errorf("expected id greater than deleted %d, got %d", last.ID, added.ID)
	}
}

func TestEditTodo(t *testing.T) {
	s, _ := testutil.NewStore(t, testutil.Active("draft"))
	id := s.Todos()[0].ID

	s.EditTodo(id, "final")
	testutil.AssertTexts(t, s.Todos(), "final")

	s.EditTodo(id+100, "ignored")
	testutil.AssertTexts(t, s.Todos(), "final")
}

func TestToggleTodo(t *testing.T) {
	s, _ := testutil.NewStore(t, testutil.Active("a"), testutil.Active("b"))
	before := s.Todos()
	id := before[0].ID

	s.ToggleTodo(id)
	if got, _ := s.Todo(id); !got.Completed {
		t.Error("expected todo to be completed after one toggle")
	}

	s.ToggleTodo(id)
	if diff := cmpTodos(before, s.Todos()); diff != "" {
		t.Errorf("double toggle changed the list (-before +after):\n%s", diff)
	}

	s.ToggleTodo(999)
	testutil.AssertCount(t, s.CompletedTodos(), 0, "after unknown id toggle")
}

func TestToggleAll(t *testing.T) {
	s, _ := testutil.NewStore(t, testutil.Active("a"), testutil.Done("b"), testutil.Active("c"))

	s.ToggleAll()
	testutil.AssertTexts(t, s.ActiveTodos(), "b")
	testutil.AssertTexts(t, s.CompletedTodos(), "a", "c")

	t.Run("empty list emits nothing", func(t *testing.T) {
		empty, _ := testutil.NewStore(t)
		rec := testutil.Record(t, empty)
		empty.ToggleAll()
		if ops := rec.Ops(); len(ops) != 0 {
			t.Errorf("expected no changes, got %v", ops)
		}
	})
}

func TestDeleteTodo(t *testing.T) {
	s, _ := testutil.NewStore(t, testutil.Active("a"), testutil.Active("b"), testutil.Active("c"))
	ids := testutil.IDs(s.Todos())

	s.DeleteTodo(ids[1])
	testutil.AssertTexts(t, s.Todos(), "a", "c")

	s.DeleteTodo(ids[1])
	testutil.AssertTexts(t, s.Todos(), "a", "c")
}

func TestDeleteCompletedTodos(t *testing.T) {
	s, _ := testutil.NewStore(t, testutil.Done("a"), testutil.Active("b"), testutil.Done("c"))
	rec := testutil.Record(t, s)

	s.DeleteCompletedTodos()
	testutil.AssertTexts(t, s.Todos(), "b")
	testutil.AssertCount(t, s.CompletedTodos(), 0)

	s.DeleteCompletedTodos()
	if ops := rec.Ops(); len(ops) != 1 || ops[0] != store.OpDeleteCompleted {
		t.Errorf("expected a single delete_completed change, got %v", ops)
	}
}

func TestFilteredTodos(t *testing.T) {
	s, _ := testutil.NewStore(t, testutil.Active("Buy milk"), testutil.Done("Walk dog"))

	tests := []struct {
		name    string
		filter  string
		keyword string
		want    []string
	}{
		{"all", "all", "", []string{"Buy milk", "Walk dog"}},
		{"active", "active", "", []string{"Buy milk"}},
		{"completed", "completed", "", []string{"Walk dog"}},
		{"keyword is case insensitive", "all", "MILK", []string{"Buy milk"}},
		{"keyword is trimmed", "all", "  dog ", []string{"Walk dog"}},
		{"filter and keyword combine", "completed", "milk", nil},
		{"active with keyword", "active", "milk", []string{"Buy milk"}},
		{"active with upper-case keyword", "active", "MILK", []string{"Buy milk"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetFilter(tt.filter)
			s.SetKeyword(tt.keyword)
			testutil.AssertTexts(t, s.FilteredTodos(), tt.want...)
		})
	}
}

func TestSetFilterRejectsUnknownValues(t *testing.T) {
	s, _ := testutil.NewStore(t)
	s.SetFilter("completed")

	s.SetFilter("bogus")
	if s.Filter() != types.FilterCompleted {
		t.Errorf("expected filter to stay %q, got %q", types.FilterCompleted, s.Filter())
	}
}

func TestViewChangesDoNotEmit(t *testing.T) {
	s, _ := testutil.NewStore(t, testutil.Active("a"))
	rec := testutil.Record(t, s)

	s.SetFilter("active")
	s.SetKeyword("a")

	if ops := rec.Ops(); len(ops) != 0 {
		t.Errorf("expected no changes, got %v", ops)
	}
}

func TestDerivedViewsAreCopies(t *testing.T) {
	s, _ := testutil.NewStore(t, testutil.Active("a"))

	got := s.Todos()
	got[0].Text = "changed"
	filtered := s.FilteredTodos()
	filtered[0].Completed = true

	testutil.AssertTexts(t, s.Todos(), "a")
	testutil.AssertCount(t, s.CompletedTodos(), 0)
}

func TestReorderTodos(t *testing.T) {
	t.Run("moves down", func(t *testing.T) {
		s, _ := testutil.NewStore(t, testutil.Active("A"), testutil.Active("B"), testutil.Active("C"))
		s.ReorderTodos(0, 2)
		testutil.AssertTexts(t, s.Todos(), "B", "C", "A")
	})

	t.Run("moves up", func(t *testing.T) {
		s, _ := testutil.NewStore(t, testutil.Active("A"), testutil.Active("B"), testutil.Active("C"))
		s.ReorderTodos(2, 0)
		testutil.AssertTexts(t, s.Todos(), "C", "A", "B")
	})

	t.Run("same index is a no-op", func(t *testing.T) {
		s, _ := testutil.NewStore(t, testutil.Active("A"), testutil.Active("B"), testutil.Active("C"))
		rec := testutil.Record(t, s)
		s.ReorderTodos(1, 1)
		testutil.AssertTexts(t, s.Todos(), "A", "B", "C")
		if len(rec.Ops()) != 0 {
			t.Errorf("expected no change events, got %v", rec.Ops())
		}
	})

	t.Run("out of range is a no-op", func(t *testing.T) {
		s, _ := testutil.NewStore(t, testutil.Active("A"), testutil.Active("B"))
		s.ReorderTodos(0, 5)
		s.ReorderTodos(-1, 0)
		testutil.AssertTexts(t, s.Todos(), "A", "B")
	})

	t.Run("filtered view keeps hidden records in place", func(t *testing.T) {
		s, mem := testutil.NewStore(t,
			testutil.Active("A"), testutil.Done("x"),
			testutil.Active("B"), testutil.Done("y"),
			testutil.Active("C"))
		s.SetFilter("active")

		s.ReorderTodos(0, 2)

		testutil.AssertTexts(t, s.FilteredTodos(), "B", "C", "A")
		testutil.AssertTexts(t, s.Todos(), "x", "B", "y", "C", "A")

		reloaded := store.New(store.WithStorage(mem))
		testutil.AssertTexts(t, reloaded.Todos(), "x", "B", "y", "C", "A")
	})
}

func TestReplace(t *testing.T) {
	s, _ := testutil.NewStore(t, testutil.Active("old"))

	s.Replace([]types.Todo{{ID: 40, Text: "imported"}, {ID: 7, Text: "other"}})
	testutil.AssertIDs(t, s.Todos(), 40, 7)

	added := s.AddTodo("next")
	if added.ID != 41 {
		t.Errorf("expected next id 41, got %d", added.ID)
	}
}

func TestSubscribe(t *testing.T) {
	s := store.New()
	var got []store.Change
	unsubscribe := s.Subscribe(func(c store.Change) { got = append(got, c) })

	s.AddTodo("a")
	unsubscribe()
	s.AddTodo("b")

	if len(got) != 1 {
		t.Fatalf("expected 1 change, got %d", len(got))
	}
	if got[0].Op != store.OpAdd || len(got[0].Todos) != 1 || got[0].NextID != 2 {
		t.Errorf("unexpected change %+v", got[0])
	}
}

func TestSubscriberMayReadStore(t *testing.T) {
	s := store.New()
	var seen int
	s.Subscribe(func(store.Change) { seen = s.TodoCount() })

	s.AddTodo("a")
	if seen != 1 {
		t.Errorf("expected subscriber to observe 1 todo, got %d", seen)
	}
}

func TestConcurrentChangesPersistInOrder(t *testing.T) {
	s, mem := testutil.NewStore(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	var mu sync.Mutex
	var order []int
	s.Subscribe(func(c store.Change) {
		mu.Lock()
		order = append(order, c.NextID)
		mu.Unlock()
		once.Do(func() {
			close(entered)
			<-release
		})
	})

	first := make(chan struct{})
	go func() {
		defer close(first)
		s.AddTodo("first")
	}()
	<-entered

	// The first change is still being delivered; this one must queue behind it.
	s.AddTodo("second")
	close(release)
	<-first

	mu.Lock()
	got := append([]int(nil), order...)
	mu.Unlock()
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("expected changes delivered as [2 3], got %v", got)
	}

	reloaded := store.New(store.WithStorage(mem))
	testutil.AssertTexts(t, reloaded.Todos(), "first", "second")
}

func TestSubscriberMayMutateStore(t *testing.T) {
	s := store.New()
	var ops []store.Op
	s.Subscribe(func(c store.Change) {
		ops = append(ops, c.Op)
		if c.Op == store.OpAdd {
			s.ToggleTodo(c.Todos[len(c.Todos)-1].ID)
		}
	})

	s.AddTodo("a")

	if len(ops) != 2 || ops[0] != store.OpAdd || ops[1] != store.OpToggle {
		t.Errorf("expected [add toggle], got %v", ops)
	}
	if len(s.CompletedTodos()) != 1 {
		t.Errorf("expected 1 completed todo, got %d", len(s.CompletedTodos()))
	}
}

func TestMemoryOnlyStore(t *testing.T) {
	s := store.New()
	if s.Persister() != nil {
		t.Error("expected no persister without storage")
	}
	s.AddTodo("a")
	testutil.AssertTexts(t, s.Todos(), "a")
}

var errBroken = errors.New("quota exceeded")
