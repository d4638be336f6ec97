package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"threatscope/models"
	"threatscope/render"
	"threatscope/utils"
)

// Palette for one-shot terminal output
var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	sectionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9FAFB")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	maliciousStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C62828")).Bold(true)
	safeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E7D32")).Bold(true)

	severityStyles = map[render.Severity]lipgloss.Style{
		render.SeverityNeutral: lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true),
		render.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true),
		render.SeverityDanger:  lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
	}

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#7C3AED")).
			Padding(0, 2)
)

const barWidth = 40

// PrintBanner displays the application banner
func PrintBanner(w io.Writer, version string) {
	body := titleStyle.Render("ThreatScope "+version) + "\n" +
		labelStyle.Render("Email & URL threat analysis client")
	fmt.Fprintln(w, bannerStyle.Render(body))
}

// PrintSectionHeader prints a formatted section header
func PrintSectionHeader(w io.Writer, title string) {
	header := "─ " + title + " "
	remaining := 48 - lipgloss.Width(header)
	if remaining < 0 {
		remaining = 0
	}
	fmt.Fprintln(w, sectionStyle.Render("┌"+header+strings.Repeat("─", remaining)))
}

// PrintVerdict renders one analysis result.
func PrintVerdict(w io.Writer, v models.Verdict) {
	res := v.Result
	severity := render.SeverityFor(res.SecurityScore)

	PrintSectionHeader(w, v.Mode.Label()+" Analysis")
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Input:"), valueStyle.Render(utils.TruncateString(v.Input, 60)))

	score := severityStyles[severity].Render(fmt.Sprintf("%.0f%%", res.SecurityScore))
	fmt.Fprintf(w, "  %s %s %s\n", labelStyle.Render("Security Score:"), scoreBar(res.SecurityScore, severity), score)
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Threat Level:"), valueStyle.Render(res.ThreatLevel))

	classification := safeStyle
	if res.IsMalicious {
		classification = maliciousStyle
	}
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Classification:"), classification.Render(render.Classification(res.IsMalicious)))

	if v.ElapsedTime > 0 {
		fmt.Fprintln(w, "  "+dimStyle.Render("Answered in "+utils.FormatDuration(v.ElapsedTime)))
	}
}

// PrintError renders a failed analysis with the message the user should see.
func PrintError(w io.Writer, message string) {
	PrintSectionHeader(w, "Analysis Error")
	fmt.Fprintln(w, "  "+errorStyle.Render("⚠ "+message))
}

// PrintSaved reports where a report file was written.
func PrintSaved(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+dimStyle.Render("Report saved to "+path))
}

// scoreBar draws the ring fill as a horizontal bar; the filled share is the
// same fraction the ring stroke covers.
func scoreBar(score float64, severity render.Severity) string {
	fill := render.RingFill(render.StrokeOffset(score))
	filled := int(fill*barWidth + 0.5)
	if filled > barWidth {
		filled = barWidth
	}
	return severityStyles[severity].Render(strings.Repeat("█", filled)) +
		labelStyle.Render(strings.Repeat("░", barWidth-filled))
}
