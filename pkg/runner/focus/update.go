package focus

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/nova/pkg/timer"
	"tableflip.dev/nova/pkg/timeutil"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		w := msg.Width - 8
		if w > 60 {
			w = 60
		}
		if w < 10 {
			w = 10
		}
		m.bar.Width = w
		return m, nil

	case refreshMsg:
		m.noticeCompletions()
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) noticeCompletions() {
	history := m.timer.History()
	if len(history) > m.seen && len(history) > 0 {
		h := history[0]
		m.status = fmt.Sprintf("%s complete, %s logged", h.Label, timeutil.FormatClock(h.Duration))
	}
	m.seen = len(history)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.SwitchTab):
		if m.tab == tabPomodoro {
			m.tab = tabStopwatch
		} else {
			m.tab = tabPomodoro
		}
		m.status = ""
		return m, nil
	}

	if m.tab == tabStopwatch {
		switch {
		case key.Matches(msg, m.keys.Toggle):
			m.timer.ToggleStopwatch()
		case key.Matches(msg, m.keys.Reset):
			m.timer.ResetStopwatch()
			m.status = ""
		case key.Matches(msg, m.keys.Lap):
			if lap, ok := m.timer.RecordLap(); ok {
				m.status = fmt.Sprintf("lap %d at %s", lap.Number, timeutil.FormatClock(lap.Seconds))
			}
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.timer.TogglePomodoro()
		m.status = ""
	case key.Matches(msg, m.keys.Reset):
		m.timer.ResetPomodoro()
		m.status = ""
	case key.Matches(msg, m.keys.Work):
		m.timer.SelectMode(timer.Work)
	case key.Matches(msg, m.keys.Short):
		m.timer.SelectMode(timer.Short)
	case key.Matches(msg, m.keys.Long):
		m.timer.SelectMode(timer.Long)
	}
	return m, nil
}
