package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"threatscope/models"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.refreshViewport()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKeyMessage(msg)
	case tea.MouseMsg:
		return m.handleMouseMessage(msg)
	case AnalysisResultMsg:
		return m.handleAnalysisResult(msg)
	case ExportResultMsg:
		return m.handleExportResult(msg)
	case counterTickMsg:
		return m.handleCounterTick(msg)
	case progress.FrameMsg:
		ring, cmd := m.ring.Update(msg)
		m.ring = ring.(progress.Model)
		return m, cmd
	case spinner.TickMsg:
		if !m.analyzing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// cursor blink and other textarea messages
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleWindowSize handles window resize events
func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.layout()
	return m, nil
}

// layout recalculates pane and component sizes from the window size.
func (m *Model) layout() {
	if m.width == 0 {
		return
	}

	if m.showRightPane {
		m.leftPaneWidth = int(float64(m.width) * 0.6)    // 60% for left pane
		m.rightPaneWidth = m.width - m.leftPaneWidth - 1 // 40% for right pane (minus 1 for separator)
	} else {
		m.leftPaneWidth = m.width
		m.rightPaneWidth = 0
	}

	inner := m.leftPaneWidth - 8 // border and padding
	if inner < 20 {
		inner = 20
	}
	m.input.SetWidth(inner)
	m.ring.Width = inner - 8
	if m.ring.Width < 10 {
		m.ring.Width = 10
	}

	m.viewport.Width = inner
	m.viewport.Height = m.height - 6 // border, padding and help line
	if m.viewport.Height < 5 {
		m.viewport.Height = 5
	}
}

// handleKeyMessage handles keyboard input. Control keys are handled here;
// everything else edits the input.
func (m Model) handleKeyMessage(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	case "tab", "shift+tab":
		m.setMode(m.mode.Other())
		return m, nil
	case "ctrl+e":
		m.setMode(models.ModeEmail)
		return m, nil
	case "ctrl+l":
		m.setMode(models.ModeURL)
		return m, nil
	case "ctrl+s":
		return m.submit()
	case "esc":
		if m.analyzing {
			return m.cancelAnalysis()
		}
		m.hideResult()
		m.statusLine = ""
		return m, nil
	case "f2":
		m.showRightPane = !m.showRightPane
		m.layout()
		return m, nil
	case "f3":
		return m, m.exportSessionCmd()
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleMouseMessage handles mouse input
func (m Model) handleMouseMessage(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleExportResult(msg ExportResultMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.statusLine = "Export failed: " + msg.Err.Error()
		return m, nil
	}
	m.statusLine = "Session exported to " + msg.Path
	return m, nil
}

// refreshViewport renders the main column into the viewport and brings a
// newly displayed result into view.
func (m *Model) refreshViewport() {
	if m.height == 0 {
		return
	}
	m.viewport.SetContent(m.mainContent())
	if m.scrollToResult {
		m.viewport.GotoBottom()
		m.scrollToResult = false
	}
}
