package dnd

import "sync"

// Drag effects understood by DataTransfer implementations.
const (
	EffectMove = "move"
	EffectNone = "none"
)

// FormatText is the payload format carrying the dragged record's id.
const FormatText = "text/plain"

// DataTransfer is the platform object that travels with a drag gesture.
type DataTransfer interface {
	SetData(format, data string)
	SetEffectAllowed(effect string)
	SetDropEffect(effect string)
	SetDragImage(offsetX, offsetY int)
}

// Event is a single drag event delivered by the host. Width and Height are
// the size of the element the event targets.
type Event struct {
	Transfer DataTransfer
	Width    int
	Height   int

	defaultPrevented bool
}

// PreventDefault suppresses the host's default handling of the event.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Transfer is an in-memory DataTransfer for hosts without a native one,
// such as a terminal.
type Transfer struct {
	mu             sync.Mutex
	data           map[string]string
	effectAllowed  string
	dropEffect     string
	imageX, imageY int
}

// NewTransfer returns an empty Transfer.
func NewTransfer() *Transfer {
	return &Transfer{data: map[string]string{}, effectAllowed: EffectNone, dropEffect: EffectNone}
}

func (t *Transfer) SetData(format, data string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data[format] = data
}

func (t *Transfer) SetEffectAllowed(effect string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.effectAllowed = effect
}

func (t *Transfer) SetDropEffect(effect string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dropEffect = effect
}

func (t *Transfer) SetDragImage(offsetX, offsetY int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.imageX, t.imageY = offsetX, offsetY
}

// Data returns the payload stored for format.
func (t *Transfer) Data(format string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.data[format]
	return v, ok
}

// EffectAllowed returns the last allowed effect.
func (t *Transfer) EffectAllowed() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.effectAllowed
}

// DropEffect returns the last drop effect.
func (t *Transfer) DropEffect() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dropEffect
}

// DragImage returns the drag image offset.
func (t *Transfer) DragImage() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.imageX, t.imageY
}
