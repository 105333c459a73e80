package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/nova/pkg/bucket"
	"tableflip.dev/nova/pkg/note"
	"tableflip.dev/nova/pkg/view"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints the month grid with days that have notes in bold and the
// selected day underlined, followed by that day's notes.
func (pp *PrettyPrint) Calendar(buckets bucket.Set, then time.Time, notes []*note.Note) {
	days := view.DaysWithNotes(notes, then)
	pp.PrintMonth(then, days, then.Day())
	pp.Title(then.Format("Monday, Jan 02"))
	pp.Notes(buckets, view.OnDay(notes, then)...)
}

// PrintMonth prints a Sunday-first month grid. Days in marked are bold;
// selected, when inside the month, is underlined.
func (pp *PrettyPrint) PrintMonth(then time.Time, marked map[int]bool, selected int) {
	w := pp.out()
	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))
	_, _ = color.New(color.Faint).Fprintln(w, "Su Mo Tu We Th Fr Sa")

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	out := color.New(color.Faint, color.FgHiBlack)

	for i, day := range view.MonthGrid(then) {
		printer := l1
		switch {
		case day.Month() != then.Month():
			printer = out
		case marked[day.Day()]:
			printer = l2
		}
		if day.Month() == then.Month() && day.Day() == selected {
			printer = color.New(color.Underline, color.Bold)
		}
		_, _ = printer.Fprintf(w, "%2d", day.Day())
		if i%7 == 6 {
			_, _ = fmt.Fprint(w, "\n")
		} else {
			_, _ = fmt.Fprint(w, " ")
		}
	}
	_, _ = fmt.Fprint(w, "\n")
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 0, 0, 0, 0, then.Location())
}

func PrevMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()-1, 1, 0, 0, 0, 0, then.Location())
}
