// Package dnd tracks a single drag-and-drop gesture over a rendered list and
// turns a completed drop into a reorder call.
//
// A Coordinator is Idle until DragStart records a source row. DragOver
// updates the hovered row while the gesture is live. Drop on a different row
// invokes the caller's ReorderFunc with filtered-view indices and returns to
// Idle; DragEnd cancels the gesture. Every handler ignores events that carry
// no DataTransfer.
package dnd

import (
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/arthur-debert/nanotodo/types"
	"github.com/google/uuid"
)

// NoIndex is the index reported while no row is dragged or hovered.
const NoIndex = -1

// ReorderFunc moves the row at filtered-view index from to index to.
type ReorderFunc func(from, to int)

// Coordinator holds the state of the current drag gesture.
type Coordinator struct {
	mu            sync.Mutex
	logger        *slog.Logger
	newGesture    func() uuid.UUID
	draggedIndex  int
	dragOverIndex int
	draggedItem   *types.Todo
	gesture       uuid.UUID
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger. Defaults to a logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithGestureIDs replaces the generator of gesture ids.
func WithGestureIDs(fn func() uuid.UUID) Option {
	return func(c *Coordinator) {
		if fn != nil {
			c.newGesture = fn
		}
	}
}

// New returns an idle Coordinator.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		newGesture:    uuid.New,
		draggedIndex:  NoIndex,
		dragOverIndex: NoIndex,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DragStart begins a gesture on todo, shown at filtered-view index.
func (c *Coordinator) DragStart(e *Event, todo types.Todo, index int) {
	if !hasTransfer(e) {
		c.logger.Debug("drag start without data transfer")
		return
	}
	if index < 0 {
		c.logger.Debug("drag start without source row", "index", index)
		return
	}

	e.Transfer.SetEffectAllowed(EffectMove)
	e.Transfer.SetData(FormatText, strconv.Itoa(todo.ID))
	e.Transfer.SetDragImage(e.Width/4, e.Height/4)

	c.mu.Lock()
	item := todo
	c.draggedIndex = index
	c.dragOverIndex = NoIndex
	c.draggedItem = &item
	c.gesture = c.newGesture()
	gesture := c.gesture
	c.mu.Unlock()

	c.logger.Debug("drag started", "gesture", gesture.String(), "id", todo.ID, "index", index)
}

// DragEnd finishes the gesture, dropped or not, and returns to Idle.
func (c *Coordinator) DragEnd(e *Event) {
	if e == nil {
		return
	}
	e.PreventDefault()
	if e.Transfer == nil {
		return
	}

	c.mu.Lock()
	gesture := c.gesture
	c.reset()
	c.mu.Unlock()

	if gesture != uuid.Nil {
		c.logger.Debug("drag ended", "gesture", gesture.String())
	}
}

// DragOver records index as the current drop target.
func (c *Coordinator) DragOver(e *Event, index int) {
	if e == nil {
		return
	}
	e.PreventDefault()
	if e.Transfer == nil {
		return
	}
	e.Transfer.SetDropEffect(EffectMove)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragOverIndex = index
}

// DragEnter suppresses default handling so the row accepts drops.
func (c *Coordinator) DragEnter(e *Event) {
	if e != nil {
		e.PreventDefault()
	}
}

// DragLeave suppresses default handling.
func (c *Coordinator) DragLeave(e *Event) {
	if e != nil {
		e.PreventDefault()
	}
}

// Drop completes the gesture on targetIndex. reorder is called with the
// source and target indices unless no gesture is active or the target is
// the source row. It reports whether reorder was called.
func (c *Coordinator) Drop(e *Event, targetIndex int, reorder ReorderFunc) bool {
	if !hasTransfer(e) {
		return false
	}

	c.mu.Lock()
	from := c.draggedIndex
	if from < 0 || targetIndex == from {
		c.mu.Unlock()
		c.logger.Debug("drop ignored", "from", from, "to", targetIndex)
		return false
	}
	c.dragOverIndex = targetIndex
	gesture := c.gesture
	c.mu.Unlock()

	// The callback runs unlocked so it may query the coordinator.
	if reorder != nil {
		reorder(from, targetIndex)
	}

	c.mu.Lock()
	c.reset()
	c.mu.Unlock()

	c.logger.Debug("dropped", "gesture", gesture.String(), "from", from, "to", targetIndex)
	return reorder != nil
}

// DraggedIndex returns the source index, or NoIndex when idle.
func (c *Coordinator) DraggedIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draggedIndex
}

// DragOverIndex returns the hovered index, or NoIndex.
func (c *Coordinator) DragOverIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragOverIndex
}

// DraggedItem returns the record being dragged.
func (c *Coordinator) DraggedItem() (types.Todo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draggedItem == nil {
		return types.Todo{}, false
	}
	return *c.draggedItem, true
}

// Dragging reports whether a gesture is active.
func (c *Coordinator) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draggedIndex >= 0
}

// Gesture returns the id of the active gesture, or uuid.Nil.
func (c *Coordinator) Gesture() uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gesture
}

// reset returns to Idle. Callers hold mu.
func (c *Coordinator) reset() {
	c.draggedIndex = NoIndex
	c.dragOverIndex = NoIndex
	c.draggedItem = nil
	c.gesture = uuid.Nil
}

func hasTransfer(e *Event) bool {
	return e != nil && e.Transfer != nil
}
