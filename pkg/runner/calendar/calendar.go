// Package calendar provides the month view runner.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/nova/pkg/app"
	"tableflip.dev/nova/pkg/printers"
	"tableflip.dev/nova/pkg/view"
)

// Calendar prints the month around On with days that have notes marked, then
// the notes created on On. Months shifts the month shown and clears the day
// selection.
type Calendar struct {
	App    *app.App
	On     time.Time
	Months int
	ShowID bool
}

func (n *Calendar) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not show calendar, no app")
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	notes := n.App.Notes.All()
	_, _ = fmt.Fprintln(color.Output, "")

	if n.Months != 0 {
		month := n.On
		for i := 0; i < n.Months; i++ {
			month = printers.NextMonth(month)
		}
		for i := 0; i > n.Months; i-- {
			month = printers.PrevMonth(month)
		}
		pp.PrintMonth(month, view.DaysWithNotes(notes, month), 0)
		return nil
	}
	pp.Calendar(n.App.Buckets(), n.On, notes)
	return nil
}
