package focus

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/nova/pkg/timer"
	"tableflip.dev/nova/pkg/timeutil"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	tabStyle      = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("241"))
	activeTab     = tabStyle.Copy().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	clockStyle    = lipgloss.NewStyle().Bold(true).Padding(1, 0)
	faintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	frameStyle    = lipgloss.NewStyle().Padding(1, 2)
	modeColors    = map[timer.Mode]string{timer.Work: "#F25D94", timer.Short: "#04B575", timer.Long: "#3C9DD0"}
	selectedStyle = lipgloss.NewStyle().Underline(true)
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("nova focus"))
	b.WriteString("\n\n")
	b.WriteString(m.tabs())
	b.WriteString("\n")
	if m.tab == tabStopwatch {
		b.WriteString(m.stopwatchView())
	} else {
		b.WriteString(m.pomodoroView())
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return frameStyle.Render(b.String())
}

func (m Model) tabs() string {
	p, s := tabStyle, tabStyle
	if m.tab == tabPomodoro {
		p = activeTab
	} else {
		s = activeTab
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, p.Render("Pomodoro"), s.Render("Stopwatch"))
}

func (m Model) pomodoroView() string {
	st := m.timer.Pomodoro()
	modes := make([]string, 0, 3)
	for _, mode := range timer.Modes() {
		label := fmt.Sprintf("%s %dm", mode, st.Settings.Minutes(mode))
		style := faintStyle
		if mode == st.Mode {
			style = selectedStyle.Copy().Foreground(lipgloss.Color(modeColors[mode]))
		}
		modes = append(modes, style.Render(label))
	}

	state := "paused"
	if st.Running {
		state = "running"
	}
	label := st.Label
	if label == "" {
		label = st.Mode.DefaultLabel()
	}

	var b strings.Builder
	b.WriteString(strings.Join(modes, "  "))
	b.WriteString("\n")
	b.WriteString(clockStyle.Foreground(lipgloss.Color(modeColors[st.Mode])).Render(timeutil.FormatClock(st.Remaining)))
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(st.Progress))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render(fmt.Sprintf("%s · %s", label, state)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) stopwatchView() string {
	st := m.timer.Stopwatch()
	state := "stopped"
	if st.Running {
		state = "running"
	}
	var b strings.Builder
	b.WriteString(clockStyle.Render(timeutil.FormatClock(st.Elapsed)))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render(state))
	b.WriteString("\n")
	for i, lap := range st.Laps {
		if i == 5 {
			b.WriteString(faintStyle.Render(fmt.Sprintf("  … %d more", len(st.Laps)-i)) + "\n")
			break
		}
		b.WriteString(fmt.Sprintf("  lap %-3d %s\n", lap.Number, timeutil.FormatClock(lap.Seconds)))
	}
	return b.String()
}
