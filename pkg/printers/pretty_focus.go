package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/nova/pkg/app"
	"tableflip.dev/nova/pkg/profile"
	"tableflip.dev/nova/pkg/timer"
	"tableflip.dev/nova/pkg/timeutil"
)

// History prints Pomodoro sessions, most recent first.
func (pp *PrettyPrint) History(items []timer.HistoryItem) {
	if len(items) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	f := color.New(color.Faint)
	for _, h := range items {
		mode := color.New(color.FgHiMagenta).Sprint(h.Mode)
		if h.Mode == timer.Work {
			mode = color.New(color.FgHiCyan).Sprint(h.Mode)
		}
		task := ""
		if h.TaskTitle != "" {
			task = f.Sprint("-> " + h.TaskTitle)
		}
		tbl.AddRow(h.Timestamp.Format("Jan 02 15:04"), mode, timeutil.FormatClock(h.Duration), h.Label, task)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Settings prints the configured durations.
func (pp *PrettyPrint) Settings(s timer.Settings) {
	tbl := uitable.New()
	for _, m := range timer.Modes() {
		tbl.AddRow(m.String(), fmt.Sprintf("%d min", s.Minutes(m)))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Report prints completed notes per bucket and the focus total.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	w := pp.out()
	f := color.New(color.Faint)
	pp.Title(fmt.Sprintf("%s - %s", r.Since.Format("Jan 02"), r.Until.Format("Jan 02")))
	if r.Total == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(w, " no completed notes")
	}
	for _, s := range r.Sections {
		_, _ = fmt.Fprintf(w, "%s %s\n", BucketLabel(s.Bucket), f.Sprintf("(%d)", len(s.Notes)))
		for _, n := range s.Notes {
			_, _ = fmt.Fprintf(w, "  x %s\n", n.DisplayTitle())
		}
	}
	pp.NewLine()
	_, _ = fmt.Fprintf(w, "%d focus session(s), %s focused\n", len(r.Sessions), timeutil.FormatClock(r.FocusSeconds))
}

// Profile prints the user profile and linked account.
func (pp *PrettyPrint) Profile(p profile.Profile) {
	w := pp.out()
	pp.Title(fmt.Sprintf("(%s) %s", p.Initial(), p.Name))
	if p.Bio != "" {
		_, _ = color.New(color.Italic).Fprintln(w, p.Bio)
	}
	tbl := uitable.New()
	for i, s := range p.Socials {
		tbl.AddRow(fmt.Sprintf("%d.", i), s.Platform, s.URL)
	}
	if len(p.Socials) > 0 {
		_, _ = fmt.Fprintln(w, tbl)
	}
	pp.Account(p.Account)
}

// Account prints the cloud account state.
func (pp *PrettyPrint) Account(a *profile.CloudAccount) {
	w := pp.out()
	f := color.New(color.Faint)
	if a == nil {
		_, _ = f.Fprintln(w, "cloud sync: not linked")
		return
	}
	verified := ""
	if a.Verified {
		verified = " (verified)"
	}
	last := "never"
	if !a.LastSyncedAt.IsZero() {
		last = a.LastSyncedAt.Format("15:04:05")
	}
	_, _ = fmt.Fprintf(w, "cloud sync: %s%s\n", a.Email, verified)
	_, _ = f.Fprintf(w, "last sync %s\n", last)
}
