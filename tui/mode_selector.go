package tui

import (
	"github.com/charmbracelet/lipgloss"

	"threatscope/models"
)

// setMode switches the input mode: one toggle active, the placeholder
// follows the mode and any displayed result or error is hidden.
func (m *Model) setMode(mode models.Mode) {
	if !mode.Valid() {
		return
	}
	m.mode = mode
	m.input.Placeholder = mode.Placeholder()
	m.hideResult()
}

// toggleActive reports whether the toggle for mode renders active.
func (m Model) toggleActive(mode models.Mode) bool {
	return m.mode == mode
}

func (m Model) viewModeToggles() string {
	toggles := make([]string, 0, len(models.Modes))
	for _, mode := range models.Modes {
		style := toggleStyle
		if m.toggleActive(mode) {
			style = toggleActiveStyle
		}
		toggles = append(toggles, style.Render(mode.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, toggles...)
}
