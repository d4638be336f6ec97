package tui

import (
	"fmt"
	"strings"

	"threatscope/models"
	"threatscope/render"
	"threatscope/utils"
)

// renderHistory lists this session's verdicts, newest first, for the
// right pane.
func (m Model) renderHistory(width int) string {
	var s strings.Builder

	s.WriteString(highlightStyle.Render("Session History") + "\n\n")

	visible := m.height - 8 // borders, padding, title
	if visible < 3 {
		visible = 3
	}
	verdicts := m.history.Recent(visible / 2)

	if len(verdicts) == 0 {
		s.WriteString(helpStyle.Render("No analyses yet.\n\nVerdicts from this session\nwill appear here."))
		return s.String()
	}

	total, malicious := m.history.Stats()
	s.WriteString(historyKeyStyle.Render(fmt.Sprintf("%d analyzed, %d malicious", total, malicious)) + "\n\n")

	for _, v := range verdicts {
		s.WriteString(formatHistoryEntry(v, width) + "\n")
	}
	return s.String()
}

// formatHistoryEntry renders one verdict as two lines: the verdict badge
// with score, then the truncated input.
func formatHistoryEntry(v models.Verdict, width int) string {
	if width < 12 {
		width = 12
	}
	badge := classificationStyle(v.Result.IsMalicious).Render(render.Classification(v.Result.IsMalicious))
	score := historyKeyStyle.Render(fmt.Sprintf(" %s %.0f%% %s", v.Mode.Label(), v.Result.SecurityScore, v.AnalyzedAt.Format("15:04:05")))
	input := historyInputStyle.Render("  " + utils.TruncateString(v.Input, width-2))
	return badge + score + "\n" + input
}
