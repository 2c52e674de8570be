package tui

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	up         key.Binding
	down       key.Binding
	toggle     key.Binding
	add        key.Binding
	edit       key.Binding
	del        key.Binding
	toggleAll  key.Binding
	clearDone  key.Binding
	nextFilter key.Binding
	search     key.Binding
	moveUp     key.Binding
	moveDown   key.Binding
	quit       key.Binding
	confirm    key.Binding
	cancel     key.Binding
}

func newKeymap() keymap {
	return keymap{
		up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		toggle:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		del:        key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		toggleAll:  key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "toggle all")),
		clearDone:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear completed")),
		nextFilter: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filter")),
		search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		moveUp:     key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		moveDown:   key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		confirm:    key.NewBinding(key.WithKeys("enter")),
		cancel:     key.NewBinding(key.WithKeys("esc")),
	}
}

var keys = newKeymap()

func (k keymap) shortHelp() []key.Binding {
	return []key.Binding{k.add, k.toggle, k.edit, k.del, k.nextFilter, k.search, k.moveUp, k.moveDown, k.quit}
}
