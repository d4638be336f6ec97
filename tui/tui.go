package tui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"threatscope/utils"
)

// Run starts the TUI application
func Run(opts Options) error {
	m := NewModel(opts)
	defer m.history.Close()

	// the alt screen owns the terminal, so diagnostics go to a file
	logPath := m.cfg.LogPath()
	if err := utils.EnsureDirectory(filepath.Dir(logPath)); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := tea.LogToFile(logPath, "threatscope")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	m.logPath = logPath

	programOpts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if m.cfg.UI.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(m, programOpts...)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
