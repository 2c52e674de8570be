package store

import "github.com/arthur-debert/nanotodo/types"

// Todos returns a copy of the canonical list.
func (s *Store) Todos() []types.Todo {
	var out []types.Todo
	s.read(func() { out = types.Clone(s.todos) })
	return out
}

// FilteredTodos returns the records visible under the current filter and keyword.
func (s *Store) FilteredTodos() []types.Todo {
	var out []types.Todo
	s.read(func() { out = s.view.Apply(s.todos) })
	return out
}

// ActiveTodos returns the records with completed=false.
func (s *Store) ActiveTodos() []types.Todo {
	var out []types.Todo
	s.read(func() { out = types.View{Filter: types.FilterActive}.Apply(s.todos) })
	return out
}

// CompletedTodos returns the records with completed=true.
func (s *Store) CompletedTodos() []types.Todo {
	var out []types.Todo
	s.read(func() { out = types.View{Filter: types.FilterCompleted}.Apply(s.todos) })
	return out
}

// TodoCount returns the length of the canonical list.
func (s *Store) TodoCount() int {
	var n int
	s.read(func() { n = len(s.todos) })
	return n
}

// Filter returns the current status filter.
func (s *Store) Filter() types.Filter {
	var f types.Filter
	s.read(func() { f = s.view.Filter })
	return f
}

// Keyword returns the current keyword.
func (s *Store) Keyword() string {
	var k string
	s.read(func() { k = s.view.Keyword })
	return k
}

// View returns the current filter and keyword together.
func (s *Store) View() types.View {
	var v types.View
	s.read(func() { v = s.view })
	return v
}

// Todo returns the first record with id.
func (s *Store) Todo(id int) (types.Todo, bool) {
	var (
		todo  types.Todo
		found bool
	)
	s.read(func() {
		if i := s.indexOf(id); i >= 0 {
			todo, found = s.todos[i], true
		}
	})
	return todo, found
}

// NextID returns the id the next AddTodo will assign.
func (s *Store) NextID() int {
	var n int
	s.read(func() { n = s.nextID })
	return n
}
