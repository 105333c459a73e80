package timer

import (
	"time"

	"tableflip.dev/nova/pkg/timeutil"
)

// Pomodoro is the countdown state machine. It is not safe for concurrent use;
// Store serializes access.
type Pomodoro struct {
	settings  Settings
	mode      Mode
	remaining int
	running   bool

	label     string
	taskID    string
	taskTitle string
}

// NewPomodoro starts paused in work mode with a full countdown.
func NewPomodoro(s Settings) *Pomodoro {
	p := &Pomodoro{settings: s.Normalize(), mode: Work}
	p.remaining = p.settings.Seconds(Work)
	return p
}

func (p *Pomodoro) Mode() Mode         { return p.mode }
func (p *Pomodoro) Remaining() int     { return p.remaining }
func (p *Pomodoro) Running() bool      { return p.running }
func (p *Pomodoro) Settings() Settings { return p.settings }
func (p *Pomodoro) Label() string      { return p.label }

// Total is the configured length of the current mode in seconds.
func (p *Pomodoro) Total() int { return p.settings.Seconds(p.mode) }

// Progress is the elapsed fraction of the current interval, clamped to [0,1].
func (p *Pomodoro) Progress() float64 {
	total := p.Total()
	if total <= 0 {
		return 0
	}
	f := float64(total-p.remaining) / float64(total)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// SelectMode stops the countdown and loads the full duration of m.
func (p *Pomodoro) SelectMode(m Mode) {
	p.mode = m
	p.running = false
	p.remaining = p.settings.Seconds(m)
}

// Toggle flips the running flag. The countdown is left as is.
func (p *Pomodoro) Toggle() bool {
	p.running = !p.running
	return p.running
}

// Reset stops the countdown and restores the full duration of the current mode.
func (p *Pomodoro) Reset() {
	p.running = false
	p.remaining = p.settings.Seconds(p.mode)
}

// SetDuration changes the configured minutes for m without touching the
// countdown in progress.
func (p *Pomodoro) SetDuration(m Mode, minutes int) {
	p.settings = p.settings.With(m, minutes)
}

// ApplySettings replaces the durations, then stops and resets the current mode.
func (p *Pomodoro) ApplySettings(s Settings) {
	p.settings = s.Normalize()
	p.Reset()
}

// SetLabel names the session recorded on completion.
func (p *Pomodoro) SetLabel(label string) { p.label = label }

// SetTask links the session to a note.
func (p *Pomodoro) SetTask(id, title string) {
	p.taskID = id
	p.taskTitle = title
}

// Tick advances one second. It returns the history item when the countdown
// completes on this tick. A running countdown already at zero completes again
// without going negative.
func (p *Pomodoro) Tick(now time.Time, id string) *HistoryItem {
	if !p.running {
		return nil
	}
	if p.remaining > 0 {
		p.remaining--
	}
	if p.remaining > 0 {
		return nil
	}
	p.running = false
	label := p.label
	if label == "" {
		label = p.mode.DefaultLabel()
	}
	return &HistoryItem{
		ID:        id,
		Label:     label,
		TaskID:    p.taskID,
		TaskTitle: p.taskTitle,
		Duration:  p.settings.Seconds(p.mode),
		Mode:      p.mode,
		Timestamp: timeutil.At(now),
	}
}
