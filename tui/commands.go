package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"threatscope/models"
)

// AnalysisResultMsg carries the outcome of one submitted analysis.
type AnalysisResultMsg struct {
	ID      int
	Request models.AnalysisRequest
	Result  *models.AnalysisResult
	Err     error
	Elapsed time.Duration
}

// ExportResultMsg reports where the session report was written.
type ExportResultMsg struct {
	Path string
	Err  error
}

// analyzeCmd runs the request off the event loop.
func analyzeCmd(ctx context.Context, analyzer Analyzer, id int, req models.AnalysisRequest) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		result, err := analyzer.Analyze(ctx, req)
		return AnalysisResultMsg{
			ID:      id,
			Request: req,
			Result:  result,
			Err:     err,
			Elapsed: time.Since(start),
		}
	}
}

func (m Model) exportSessionCmd() tea.Cmd {
	verdicts := m.history.Recent(0)
	writer := m.writer
	endpoint := m.cfg.Server.Endpoint
	return func() tea.Msg {
		path, err := writer.WriteSession(endpoint, verdicts)
		return ExportResultMsg{Path: path, Err: err}
	}
}
