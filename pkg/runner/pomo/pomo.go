// Package pomo provides runners for the Pomodoro history and settings.
package pomo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/nova/pkg/app"
	"tableflip.dev/nova/pkg/printers"
	"tableflip.dev/nova/pkg/timer"
)

// History prints completed sessions since Since.
type History struct {
	App   *app.App
	Since time.Time
	Label string
	JSON  bool
}

func (n *History) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not get history, no app")
	}
	pp := printers.PrettyPrint{}
	items := n.App.Timer.HistorySince(n.Since)
	if n.JSON {
		return pp.JSON(items)
	}
	_, _ = fmt.Fprintln(color.Output, "")
	pp.Title(fmt.Sprintf("Focus sessions · last %s", n.Label))
	pp.History(items)
	return nil
}

// Settings shows the durations, applying any minutes in Set first.
type Settings struct {
	App *app.App
	Set map[timer.Mode]int
}

func (n *Settings) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not change settings, no app")
	}
	if len(n.Set) > 0 {
		s := n.App.Timer.Settings()
		for m, minutes := range n.Set {
			s = s.With(m, minutes)
		}
		n.App.Timer.ApplySettings(s)
	}
	pp := printers.PrettyPrint{}
	pp.Title("Pomodoro")
	pp.Settings(n.App.Timer.Settings())
	return nil
}
