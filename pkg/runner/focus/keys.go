package focus

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the focus screen bindings.
type KeyMap struct {
	Toggle    key.Binding
	Reset     key.Binding
	Work      key.Binding
	Short     key.Binding
	Long      key.Binding
	SwitchTab key.Binding
	Lap       key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle:    key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "start/pause")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Work:      key.NewBinding(key.WithKeys("1", "w"), key.WithHelp("1", "work")),
		Short:     key.NewBinding(key.WithKeys("2", "s"), key.WithHelp("2", "short break")),
		Long:      key.NewBinding(key.WithKeys("3", "l"), key.WithHelp("3", "long break")),
		SwitchTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "pomodoro/stopwatch")),
		Lap:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "lap")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.SwitchTab, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Lap},
		{k.Work, k.Short, k.Long},
		{k.SwitchTab, k.Help, k.Quit},
	}
}
