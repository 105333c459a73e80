// Package timer implements the Pomodoro countdown and the stopwatch, and the
// session history they feed.
package timer

import (
	"fmt"
	"strings"

	"tableflip.dev/nova/pkg/timeutil"
)

// Mode is a Pomodoro interval kind.
type Mode string

const (
	Work  Mode = "work"
	Short Mode = "short"
	Long  Mode = "long"
)

// Modes lists the interval kinds in display order.
func Modes() []Mode { return []Mode{Work, Short, Long} }

// ParseMode accepts work, short or long in any casing.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Work:
		return Work, nil
	case Short:
		return Short, nil
	case Long:
		return Long, nil
	}
	return "", fmt.Errorf("timer: unknown mode %q", s)
}

// DefaultLabel is used when a session completes without a user label.
func (m Mode) DefaultLabel() string {
	if m == Work {
		return "Work"
	}
	return "Break"
}

func (m Mode) String() string { return string(m) }

// Settings holds interval durations in minutes.
type Settings struct {
	Work  int `json:"work"`
	Short int `json:"short"`
	Long  int `json:"long"`
}

// DefaultSettings is 25/5/15.
func DefaultSettings() Settings {
	return Settings{Work: 25, Short: 5, Long: 15}
}

// Minutes returns the configured minutes for m.
func (s Settings) Minutes(m Mode) int {
	switch m {
	case Short:
		return s.Short
	case Long:
		return s.Long
	default:
		return s.Work
	}
}

// Seconds returns the configured duration for m in seconds.
func (s Settings) Seconds(m Mode) int {
	return s.Minutes(m) * 60
}

// With returns a copy with m set to minutes.
func (s Settings) With(m Mode, minutes int) Settings {
	switch m {
	case Short:
		s.Short = minutes
	case Long:
		s.Long = minutes
	default:
		s.Work = minutes
	}
	return s.Normalize()
}

// Normalize clamps every duration to at least one minute.
func (s Settings) Normalize() Settings {
	if s.Work < 1 {
		s.Work = 1
	}
	if s.Short < 1 {
		s.Short = 1
	}
	if s.Long < 1 {
		s.Long = 1
	}
	return s
}

// HistoryItem records a naturally completed interval.
type HistoryItem struct {
	ID        string             `json:"id"`
	Label     string             `json:"label"`
	TaskID    string             `json:"taskId,omitempty"`
	TaskTitle string             `json:"taskTitle,omitempty"`
	Duration  int                `json:"duration"`
	Mode      Mode               `json:"mode"`
	Timestamp timeutil.Timestamp `json:"timestamp"`
}
