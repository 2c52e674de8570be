package store

import "github.com/arthur-debert/nanotodo/types"

// Op names the mutation that produced a Change.
type Op string

const (
	OpAdd             Op = "add"
	OpEdit            Op = "edit"
	OpToggle          Op = "toggle"
	OpToggleAll       Op = "toggle_all"
	OpDelete          Op = "delete"
	OpDeleteCompleted Op = "delete_completed"
	OpReorder         Op = "reorder"
	OpReplace         Op = "replace"
)

// Change is emitted after a mutation altered the canonical list.
// Todos is a snapshot owned by the receiver.
type Change struct {
	Op     Op
	Todos  []types.Todo
	NextID int
}
