package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"threatscope/client"
	"threatscope/models"
	"threatscope/render"
	"threatscope/utils"
)

// submit validates the input and starts one analysis. The busy check comes
// before any side effect so a second trigger while a request is in flight
// does nothing.
func (m Model) submit() (Model, tea.Cmd) {
	if m.analyzing {
		return m, nil
	}

	req := models.NewAnalysisRequest(m.input.Value(), m.mode)
	if req.Empty() {
		m.showError(client.EmptyInputMessage)
		return m, nil
	}
	if m.analyzer == nil {
		m.showError(client.FailureMessage)
		log.Printf("no analyzer configured")
		return m, nil
	}

	m.analyzing = true
	m.buttonLabel = AnalyzingLabel
	m.statusLine = ""
	m.requestID++

	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.Client.Timeout)
	m.cancel = cancel

	return m, tea.Batch(
		analyzeCmd(ctx, m.analyzer, m.requestID, req),
		m.spinner.Tick,
	)
}

// cancelAnalysis aborts the in-flight request. The submit control is
// restored when its result message arrives.
func (m Model) cancelAnalysis() (Model, tea.Cmd) {
	if m.analyzing && m.cancel != nil {
		m.cancel()
		m.statusLine = "Cancelling..."
	}
	return m, nil
}

// handleAnalysisResult is the single exit path of an analysis; it always
// re-enables the submit control first.
func (m Model) handleAnalysisResult(msg AnalysisResultMsg) (Model, tea.Cmd) {
	if msg.ID != m.requestID {
		return m, nil
	}

	m.analyzing = false
	m.buttonLabel = SubmitLabel
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	switch {
	case errors.Is(msg.Err, context.Canceled):
		m.hideResult()
		m.statusLine = "Analysis cancelled"
		return m, nil
	case msg.Err != nil:
		var serverErr *client.ServerError
		if !errors.As(msg.Err, &serverErr) {
			log.Printf("analysis failed after %s: %v", msg.Elapsed, msg.Err)
		}
		m.showError(client.UserMessage(msg.Err))
		return m, nil
	case msg.Result == nil:
		log.Printf("analysis returned no result and no error")
		m.showError(client.FailureMessage)
		return m, nil
	}

	return m.displayResult(msg.Request, *msg.Result, msg.Elapsed)
}

// displayResult fills the result section and starts its animations.
func (m Model) displayResult(req models.AnalysisRequest, result models.AnalysisResult, elapsed time.Duration) (Model, tea.Cmd) {
	_, m.seenBefore = m.history.Lookup(req.InputType, req.InputText)
	m.history.Add(models.Verdict{
		Mode:        req.InputType,
		Input:       req.InputText,
		Result:      result,
		AnalyzedAt:  time.Now(),
		ElapsedTime: elapsed,
	})

	m.resultState = ResultShown
	m.errMsg = ""
	m.result = &result
	m.elapsed = elapsed

	m.ringOffset = render.StrokeOffset(result.SecurityScore)
	m.severity = render.SeverityFor(result.SecurityScore)
	m.ring.FullColor = string(severityColor(m.severity))

	m.scrollToResult = true

	counterCmd := m.startCounter(result.SecurityScore)
	ringCmd := m.ring.SetPercent(render.RingFill(m.ringOffset))
	return m, tea.Batch(counterCmd, ringCmd)
}

// showError is where every error path ends: the message replaces the
// score and threat sections.
func (m *Model) showError(message string) {
	m.stopCounter()
	m.resultState = ResultError
	m.errMsg = message
	m.result = nil
	m.scrollToResult = true
}

func (m *Model) hideResult() {
	m.stopCounter()
	m.resultState = ResultHidden
	m.result = nil
	m.errMsg = ""
	m.seenBefore = false
}

// ScoreText is the counter as currently displayed.
func (m Model) ScoreText() string {
	if m.counter == nil {
		return "0%"
	}
	return fmt.Sprintf("%d%%", m.counter.Percent())
}

func (m Model) viewSubmitButton() string {
	if m.analyzing {
		return buttonDisabledStyle.Render(m.buttonLabel) + " " + m.spinner.View()
	}
	return buttonStyle.Render(m.buttonLabel)
}

func (m Model) viewResult() string {
	switch m.resultState {
	case ResultError:
		return m.viewError()
	case ResultShown:
		return m.viewVerdict()
	default:
		return ""
	}
}

func (m Model) viewError() string {
	var s strings.Builder
	s.WriteString(errorTitleStyle.Render("⚠ Analysis Error") + "\n")
	s.WriteString(errorStyle.Render(m.errMsg))
	return s.String()
}

func (m Model) viewVerdict() string {
	if m.result == nil {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Security Score") + "\n")

	score := scoreStyle.Foreground(severityColor(m.severity)).Render(m.ScoreText())
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, m.ring.View(), " ", score) + "\n")
	s.WriteString(labelStyle.Render(fmt.Sprintf("ring offset %.1f / %d  •  %s", m.ringOffset, render.Circumference, m.severity)) + "\n\n")

	s.WriteString(labelStyle.Render("Threat Level: ") + threatLevelStyle.Render(m.result.ThreatLevel) + "\n")
	s.WriteString(labelStyle.Render("Classification: ") +
		classificationStyle(m.result.IsMalicious).Render(render.Classification(m.result.IsMalicious)) + "\n")

	if m.seenBefore {
		s.WriteString("\n" + helpStyle.Render("This input was already analyzed earlier in this session."))
	} else if m.elapsed > 0 {
		s.WriteString("\n" + helpStyle.Render("Answered in "+utils.FormatDuration(m.elapsed)))
	}

	return s.String()
}
