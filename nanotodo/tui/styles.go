package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#AF2F2F"))

	filterStyle       = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
	activeFilterStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	rowStyle       = lipgloss.NewStyle()
	cursorRowStyle = lipgloss.NewStyle().Bold(true)
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})
	draggedStyle   = lipgloss.NewStyle().Faint(true).Italic(true)
	dropStyle      = lipgloss.NewStyle().Reverse(true)

	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#B0B7C3"})
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D97706"))
)
