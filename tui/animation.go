package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"threatscope/render"
)

// counterTickMsg advances the score counter. gen ties the tick to the
// animation that scheduled it so ticks from a replaced animation are
// dropped.
type counterTickMsg struct {
	gen int
}

func counterTickCmd(gen int) tea.Cmd {
	return tea.Tick(render.CounterInterval, func(time.Time) tea.Msg {
		return counterTickMsg{gen: gen}
	})
}

// startCounter replaces any running counter animation.
func (m *Model) startCounter(target float64) tea.Cmd {
	m.animGen++
	m.counter = render.NewCounter(target)
	return counterTickCmd(m.animGen)
}

// stopCounter invalidates ticks already in flight.
func (m *Model) stopCounter() {
	m.animGen++
	m.counter = nil
}

func (m Model) handleCounterTick(msg counterTickMsg) (Model, tea.Cmd) {
	if msg.gen != m.animGen || m.counter == nil {
		return m, nil
	}
	if m.counter.Step() {
		return m, nil
	}
	return m, counterTickCmd(m.animGen)
}
