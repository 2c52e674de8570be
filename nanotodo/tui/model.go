// Package tui is the terminal front end: a bubbletea program that renders the
// filtered list and drives the store and the drag coordinator from keys and
// mouse gestures.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/arthur-debert/nanotodo/nanotodo/dnd"
	"github.com/arthur-debert/nanotodo/nanotodo/store"
	"github.com/arthur-debert/nanotodo/types"
)

// listTop is the screen row of the first record: title then filter tabs.
const listTop = 2

// footerLines is the blank spacer plus the two footer lines below the list.
const footerLines = 3

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
	modeSearch
)

// Option configures the model.
type Option func(*Model)

// WithLogger sets the logger handed to the drag coordinator.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithCoordinator replaces the drag coordinator.
func WithCoordinator(c *dnd.Coordinator) Option {
	return func(m *Model) {
		m.drag = c
	}
}

// Model is the bubbletea model.
type Model struct {
	store  *store.Store
	drag   *dnd.Coordinator
	logger *slog.Logger

	// transfer travels with the live mouse gesture.
	transfer *dnd.Transfer
	hover    int

	cursor    int
	offset    int // first filtered index on screen
	mode      mode
	input     textinput.Model
	editingID int
	width     int
	height    int
	status    string
}

// New returns a model over s.
func New(s *store.Store, opts ...Option) *Model {
	ti := textinput.New()
	ti.CharLimit = 500

	m := &Model{
		store:  s,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		input:  ti,
		hover:  dnd.NoIndex,
		width:  80,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.drag == nil {
		m.drag = dnd.New(dnd.WithLogger(m.logger))
	}
	return m
}

// Run starts the program on the alternate screen with mouse tracking and
// blocks until the user quits or ctx is done.
func Run(ctx context.Context, s *store.Store, opts ...Option) error {
	program := tea.NewProgram(New(s, opts...),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	m.scrollToCursor()
	return model, cmd
}

func (m *Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	visible := m.store.FilteredTodos()

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		m.setCursor(m.cursor - 1)
	case key.Matches(msg, keys.down):
		m.setCursor(m.cursor + 1)
	case key.Matches(msg, keys.toggle):
		if todo, ok := m.current(visible); ok {
			m.store.ToggleTodo(todo.ID)
		}
	case key.Matches(msg, keys.add):
		return m, m.startInput(modeAdd, "New: ", "")
	case key.Matches(msg, keys.edit):
		if todo, ok := m.current(visible); ok {
			m.editingID = todo.ID
			return m, m.startInput(modeEdit, "Edit: ", todo.Text)
		}
	case key.Matches(msg, keys.del):
		if todo, ok := m.current(visible); ok {
			m.store.DeleteTodo(todo.ID)
		}
	case key.Matches(msg, keys.toggleAll):
		m.store.ToggleAll()
	case key.Matches(msg, keys.clearDone):
		before := m.store.TodoCount()
		m.store.DeleteCompletedTodos()
		if removed := before - m.store.TodoCount(); removed > 0 {
			m.status = fmt.Sprintf("cleared %d completed", removed)
		}
	case key.Matches(msg, keys.nextFilter):
		m.store.SetFilter(string(m.store.Filter().Next()))
	case key.Matches(msg, keys.search):
		return m, m.startInput(modeSearch, "/", m.store.Keyword())
	case key.Matches(msg, keys.moveUp):
		m.moveCurrent(-1)
	case key.Matches(msg, keys.moveDown):
		m.moveCurrent(1)
	}

	m.setCursor(m.cursor)
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.confirm):
		m.commitInput()
		return m, nil
	case key.Matches(msg, keys.cancel):
		if m.mode == modeSearch {
			m.store.SetKeyword("")
		}
		m.stopInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeSearch {
		m.store.SetKeyword(m.input.Value())
		m.setCursor(m.cursor)
	}
	return m, cmd
}

func (m *Model) startInput(md mode, prompt, value string) tea.Cmd {
	m.mode = md
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) stopInput() {
	m.mode = modeBrowse
	m.editingID = 0
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) commitInput() {
	value := strings.TrimSpace(m.input.Value())
	switch m.mode {
	case modeAdd:
		if value != "" {
			m.store.AddTodo(value)
			m.setCursor(len(m.store.FilteredTodos()) - 1)
		}
	case modeEdit:
		if value == "" {
			m.store.DeleteTodo(m.editingID)
		} else {
			m.store.EditTodo(m.editingID, value)
		}
	case modeSearch:
		m.store.SetKeyword(value)
	}
	m.stopInput()
	m.setCursor(m.cursor)
}

// moveCurrent moves the cursor row by delta through the same drag gesture a
// mouse would produce.
func (m *Model) moveCurrent(delta int) {
	visible := m.store.FilteredTodos()
	todo, ok := m.current(visible)
	if !ok {
		return
	}
	from, to := m.cursor, m.cursor+delta
	if to < 0 || to >= len(visible) {
		return
	}

	e := m.event(dnd.NewTransfer())
	m.drag.DragStart(e, todo, from)
	m.drag.DragOver(e, to)
	if m.drag.Drop(e, to, m.store.ReorderTodos) {
		m.cursor = to
	}
	m.drag.DragEnd(e)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action == tea.MouseActionPress && !m.drag.Dragging() {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.setCursor(m.cursor - 1)
			return
		case tea.MouseButtonWheelDown:
			m.setCursor(m.cursor + 1)
			return
		}
	}
	row := m.rowAt(msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.mode != modeBrowse || row == dnd.NoIndex {
			return
		}
		visible := m.store.FilteredTodos()
		m.cursor = row
		m.transfer = dnd.NewTransfer()
		m.hover = row
		m.drag.DragStart(m.event(m.transfer), visible[row], row)

	case tea.MouseActionMotion:
		if !m.drag.Dragging() {
			return
		}
		e := m.event(m.transfer)
		if row != m.hover {
			m.drag.DragLeave(e)
			m.hover = row
			if row != dnd.NoIndex {
				m.drag.DragEnter(e)
			}
		}
		if row != dnd.NoIndex {
			m.drag.DragOver(e, row)
		}

	case tea.MouseActionRelease:
		if !m.drag.Dragging() {
			return
		}
		e := m.event(m.transfer)
		if row != dnd.NoIndex && m.drag.Drop(e, row, m.store.ReorderTodos) {
			m.cursor = row
		}
		m.drag.DragEnd(e)
		m.transfer = nil
		m.hover = dnd.NoIndex
	}
}

// event wraps t in a drag event sized like one rendered row.
func (m *Model) event(t *dnd.Transfer) *dnd.Event {
	e := &dnd.Event{Width: m.width, Height: 1}
	if t != nil {
		e.Transfer = t
	}
	return e
}

// rowAt maps a screen row to a filtered-view index.
func (m *Model) rowAt(y int) int {
	start, end := m.window(len(m.store.FilteredTodos()))
	i := start + y - listTop
	if y < listTop || i >= end {
		return dnd.NoIndex
	}
	return i
}

// listRows returns how many of n records fit between the filter tabs and
// the footer. Before the first resize every record fits.
func (m *Model) listRows(n int) int {
	if m.height <= 0 {
		return max(n, 1)
	}
	rows := m.height - listTop - footerLines
	if m.mode != modeBrowse {
		rows--
	}
	return max(rows, 1)
}

// window returns the filtered range [start, end) shown on screen.
func (m *Model) window(n int) (start, end int) {
	rows := m.listRows(n)
	start = min(m.offset, max(n-rows, 0))
	start = max(start, 0)
	return start, min(start+rows, n)
}

// scrollToCursor moves the window so the cursor row is on screen.
func (m *Model) scrollToCursor() {
	n := len(m.store.FilteredTodos())
	rows := m.listRows(n)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset, _ = m.window(n)
}

func (m *Model) current(visible []types.Todo) (types.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(visible) {
		return types.Todo{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) setCursor(i int) {
	n := len(m.store.FilteredTodos())
	switch {
	case n == 0:
		m.cursor = 0
	case i >= n:
		m.cursor = n - 1
	case i < 0:
		m.cursor = 0
	default:
		m.cursor = i
	}
}
