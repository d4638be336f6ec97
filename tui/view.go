package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		// no size yet
		return boxStyle.Render(m.mainContent() + "\n\n" + m.viewHelp())
	}

	content := m.viewport.View() + "\n" + m.viewHelp()
	if m.showRightPane && m.rightPaneWidth > 0 {
		return m.renderTwoPaneLayout(content)
	}
	return m.renderSinglePaneLayout(content)
}

// mainContent is the scrollable main column: header, mode toggles, input,
// submit control and the result section.
func (m Model) mainContent() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Threat Analyzer") + "\n")
	s.WriteString(subtitleStyle.Render("Check an email body or a URL for phishing and malware signals") + "\n\n")

	s.WriteString(m.viewModeToggles() + "\n\n")
	s.WriteString(m.input.View() + "\n\n")
	s.WriteString(m.viewSubmitButton())
	if m.statusLine != "" {
		s.WriteString("  " + statusStyle.Render(m.statusLine))
	}
	s.WriteString("\n")

	if result := m.viewResult(); result != "" {
		s.WriteString("\n" + result + "\n")
	}

	return s.String()
}

func (m Model) viewHelp() string {
	if m.analyzing {
		return helpStyle.Render("Esc to cancel • Ctrl+C to quit")
	}
	help := "Tab/Ctrl+E/Ctrl+L mode • Ctrl+S analyze • Esc clear • F2 history • F3 export • Ctrl+C quit"
	if m.logPath != "" {
		help += "\nlog: " + m.logPath
	}
	return helpStyle.Render(help)
}

// renderSinglePaneLayout renders content in single pane mode
func (m Model) renderSinglePaneLayout(content string) string {
	contentWidth := m.width - 2 - 4 // border and padding
	if contentWidth < 40 {
		contentWidth = 40
	}

	return lipgloss.NewStyle().
		Width(contentWidth).
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(secondaryColor).
		Render(content)
}

// renderTwoPaneLayout renders content with left and right panes
func (m Model) renderTwoPaneLayout(content string) string {
	leftWidth := m.leftPaneWidth - 4   // Account for border and padding
	rightWidth := m.rightPaneWidth - 4 // Account for border and padding

	leftPane := lipgloss.NewStyle().
		Width(leftWidth).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(secondaryColor).
		Render(content)

	rightPane := lipgloss.NewStyle().
		Width(rightWidth).
		Height(lipgloss.Height(leftPane) - 2).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(secondaryColor).
		Render(m.renderHistory(rightWidth - 2))

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, " ", rightPane)
}
