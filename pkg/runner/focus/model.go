// Package focus is the full-screen Pomodoro and stopwatch runner.
package focus

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/nova/pkg/timer"
)

// refresh is how often the screen re-reads the timer. The timer itself is
// driven by its tick source, not by the screen.
const refresh = 250 * time.Millisecond

type tab int

const (
	tabPomodoro tab = iota
	tabStopwatch
)

type refreshMsg time.Time

// Model renders a timer.Store. It never advances the clock itself.
type Model struct {
	timer *timer.Store
	keys  KeyMap
	help  help.Model
	bar   progress.Model

	tab    tab
	width  int
	status string
	// seen is the history length at the last refresh, used to notice
	// completed sessions.
	seen int
}

// New builds the model for t.
func New(t *timer.Store) Model {
	return Model{
		timer: t,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40), progress.WithoutPercentage()),
		seen:  len(t.History()),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refresh, func(t time.Time) tea.Msg { return refreshMsg(t) })
}
