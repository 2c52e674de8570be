package store

import (
	"github.com/arthur-debert/nanotodo/nanotodo/storage"
	"github.com/arthur-debert/nanotodo/types"
)

// AddTodo appends a new active record and returns it. Text is not validated.
func (s *Store) AddTodo(text string) types.Todo {
	var created types.Todo
	s.mutate(OpAdd, func() bool {
		created = types.Todo{
			ID:        s.nextID,
			Text:      text,
			Completed: false,
			CreatedAt: s.timeFunc(),
		}
		s.nextID++
		s.todos = append(s.todos, created)
		return true
	})
	return created
}

// AddTodos appends items in order with fresh ids and createdAt, keeping
// their text and completion. The whole batch is a single change.
func (s *Store) AddTodos(items []types.Todo) []types.Todo {
	var created []types.Todo
	s.mutate(OpAdd, func() bool {
		if len(items) == 0 {
			return false
		}
		now := s.timeFunc()
		created = make([]types.Todo, 0, len(items))
		for _, item := range items {
			created = append(created, types.Todo{
				ID:        s.nextID,
				Text:      item.Text,
				Completed: item.Completed,
				CreatedAt: now,
			})
			s.nextID++
		}
		s.todos = append(s.todos, created...)
		return true
	})
	return types.Clone(created)
}

// EditTodo replaces the text of the first record with id.
func (s *Store) EditTodo(id int, text string) {
	s.mutate(OpEdit, func() bool {
		i := s.indexOf(id)
		if i < 0 {
			return false
		}
		s.todos[i].Text = text
		return true
	})
}

// ToggleTodo flips the completed flag of the first record with id.
func (s *Store) ToggleTodo(id int) {
	s.mutate(OpToggle, func() bool {
		i := s.indexOf(id)
		if i < 0 {
			return false
		}
		s.todos[i].Completed = !s.todos[i].Completed
		return true
	})
}

// ToggleAll flips the completed flag of every record.
func (s *Store) ToggleAll() {
	s.mutate(OpToggleAll, func() bool {
		if len(s.todos) == 0 {
			return false
		}
		for i := range s.todos {
			s.todos[i].Completed = !s.todos[i].Completed
		}
		return true
	})
}

// DeleteTodo removes the first record with id.
func (s *Store) DeleteTodo(id int) {
	s.mutate(OpDelete, func() bool {
		i := s.indexOf(id)
		if i < 0 {
			return false
		}
		s.todos = append(s.todos[:i], s.todos[i+1:]...)
		return true
	})
}

// DeleteCompletedTodos keeps only the active records.
func (s *Store) DeleteCompletedTodos() {
	s.mutate(OpDeleteCompleted, func() bool {
		kept := types.View{Filter: types.FilterActive}.Apply(s.todos)
		if len(kept) == len(s.todos) {
			return false
		}
		s.todos = kept
		return true
	})
}

// SetFilter sets the status filter. Values other than all, active and
// completed are ignored.
func (s *Store) SetFilter(value string) {
	f, ok := types.ParseFilter(value)
	if !ok {
		s.logger.Debug("ignoring invalid filter", "value", value)
		return
	}
	_ = s.lockManager.Execute(storage.WriteOperation, func() error {
		s.view.Filter = f
		return nil
	})
}

// SetKeyword sets the free-text keyword used by FilteredTodos.
func (s *Store) SetKeyword(keyword string) {
	_ = s.lockManager.Execute(storage.WriteOperation, func() error {
		s.view.Keyword = keyword
		return nil
	})
}

// ReorderTodos moves the record at filtered-view position fromIndex to
// filtered-view position toIndex. The move is applied to the canonical list;
// records hidden by the current view keep their relative positions.
// Equal or out-of-range indices leave the list untouched.
func (s *Store) ReorderTodos(fromIndex, toIndex int) {
	s.mutate(OpReorder, func() bool {
		reordered, ok := Reorder(s.todos, s.view, fromIndex, toIndex)
		if !ok {
			return false
		}
		s.todos = reordered
		return true
	})
}

// Replace swaps the canonical list for todos, keeping their ids. The id
// counter moves past the highest id so later adds never collide.
func (s *Store) Replace(todos []types.Todo) {
	s.mutate(OpReplace, func() bool {
		s.todos = types.Clone(todos)
		if next := types.MaxID(s.todos) + 1; next > s.nextID {
			s.nextID = next
		}
		return true
	})
}
