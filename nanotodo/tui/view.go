package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/nanotodo/types"
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("todos"))
	b.WriteString("\n")
	b.WriteString(m.renderFilters())
	b.WriteString("\n")

	visible := m.store.FilteredTodos()
	if len(visible) == 0 {
		b.WriteString(footerStyle.Render("  nothing here"))
		b.WriteString("\n")
	}
	dragged, over := m.drag.DraggedIndex(), m.drag.DragOverIndex()
	start, end := m.window(len(visible))
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(i, visible[i], dragged, over))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.mode != modeBrowse {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderFilters() string {
	parts := make([]string, len(types.Filters))
	current := m.store.Filter()
	for i, f := range types.Filters {
		label := strings.ToUpper(string(f[:1])) + string(f[1:])
		if f == current {
			parts[i] = activeFilterStyle.Render(label)
		} else {
			parts[i] = filterStyle.Render(label)
		}
	}
	line := strings.Join(parts, "  ")
	if kw := m.store.Keyword(); kw != "" && m.mode != modeSearch {
		line += filterStyle.Render(fmt.Sprintf("  /%s", kw))
	}
	return line
}

func (m *Model) renderRow(i int, t types.Todo, dragged, over int) string {
	marker := "  "
	style := rowStyle
	if i == m.cursor {
		marker = "> "
		style = cursorRowStyle
	}

	box := "[ ]"
	text := strings.Join(strings.Fields(t.Text), " ")
	if t.Completed {
		box = "[x]"
		text = doneStyle.Render(text)
	}
	line := fmt.Sprintf("%s%s %s", marker, box, text)

	switch {
	case i == dragged:
		style = draggedStyle
	case i == over && dragged >= 0:
		style = dropStyle
	}
	// Rows must stay one screen line each for mouse hit testing.
	if m.width > 0 {
		style = style.MaxWidth(m.width)
	}
	return style.Render(line)
}

func (m *Model) renderFooter() string {
	left := len(m.store.ActiveTodos())
	noun := "items"
	if left == 1 {
		noun = "item"
	}
	footer := fmt.Sprintf("%d %s left", left, noun)
	if m.status != "" {
		footer = lipgloss.JoinHorizontal(lipgloss.Top, footer, "  ", statusStyle.Render(m.status))
	}

	help := make([]string, 0, len(keys.shortHelp()))
	for _, k := range keys.shortHelp() {
		help = append(help, helpText(k))
	}
	return footerStyle.Render(footer) + "\n" + footerStyle.Render(strings.Join(help, " • "))
}

func helpText(k key.Binding) string {
	h := k.Help()
	return h.Key + " " + h.Desc
}
