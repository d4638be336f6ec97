package tui

import (
	"github.com/charmbracelet/lipgloss"

	"threatscope/render"
)

var (
	// Colors - Professional blue/purple theme
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#3B82F6") // Blue
	successColor   = lipgloss.Color("#10B981") // Green
	warningColor   = lipgloss.Color("#F59E0B") // Amber
	errorColor     = lipgloss.Color("#EF4444") // Red
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	textColor      = lipgloss.Color("#F9FAFB") // Light gray

	// Verdict colors
	maliciousColor = lipgloss.Color("#C62828")
	safeColor      = lipgloss.Color("#2E7D32")

	boxStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Align(lipgloss.Left)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			PaddingBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(textColor)

	// Mode toggles
	toggleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor)

	toggleActiveStyle = toggleStyle.
				Foreground(textColor).
				Background(primaryColor).
				BorderForeground(primaryColor).
				Bold(true)

	// Submit control
	buttonStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(secondaryColor).
			Padding(0, 3).
			Bold(true)

	buttonDisabledStyle = buttonStyle.
				Background(mutedColor).
				Bold(false)

	// Result section
	scoreStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	threatLevelStyle = lipgloss.NewStyle().
				Foreground(textColor).
				Bold(true)

	maliciousStyle = lipgloss.NewStyle().
			Foreground(maliciousColor).
			Bold(true)

	safeStyle = lipgloss.NewStyle().
			Foreground(safeColor).
			Bold(true)

	errorTitleStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	highlightStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// History pane
	historyKeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	historyInputStyle = lipgloss.NewStyle().
				Foreground(textColor)
)

// severityColor is the ring color for a severity class.
func severityColor(s render.Severity) lipgloss.Color {
	switch s {
	case render.SeverityDanger:
		return errorColor
	case render.SeverityWarning:
		return warningColor
	default:
		return successColor
	}
}

func classificationStyle(malicious bool) lipgloss.Style {
	if malicious {
		return maliciousStyle
	}
	return safeStyle
}
