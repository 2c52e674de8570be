package store

import "github.com/arthur-debert/nanotodo/types"

// CanonicalIndex maps a filtered-view position to its index in todos.
// It returns -1 when position is outside the view.
func CanonicalIndex(todos []types.Todo, view types.View, position int) int {
	indices := view.Indices(todos)
	if position < 0 || position >= len(indices) {
		return -1
	}
	return indices[position]
}

// Reorder returns a new list in which the record at filtered-view position
// from sits at filtered-view position to. Only the moved record changes
// canonical position; every other record keeps its relative order.
//
// The moved record is taken out of the canonical list, then inserted in
// front of the record that will follow it in the view, or right after the
// last visible record when it becomes the last one. The boolean is false,
// and todos is returned unchanged, when from equals to or either position
// lies outside the view.
func Reorder(todos []types.Todo, view types.View, from, to int) ([]types.Todo, bool) {
	indices := view.Indices(todos)
	if from == to || from < 0 || to < 0 || from >= len(indices) || to >= len(indices) {
		return todos, false
	}

	src := indices[from]
	moved := todos[src]

	rest := make([]types.Todo, 0, len(todos))
	rest = append(rest, todos[:src]...)
	rest = append(rest, todos[src+1:]...)

	remaining := view.Indices(rest)
	var at int
	if to < len(remaining) {
		at = remaining[to]
	} else {
		at = remaining[len(remaining)-1] + 1
	}

	out := make([]types.Todo, 0, len(todos))
	out = append(out, rest[:at]...)
	out = append(out, moved)
	out = append(out, rest[at:]...)
	return out, true
}
