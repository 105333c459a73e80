package app

import (
	"sort"
	"time"

	"tableflip.dev/nova/pkg/bucket"
	"tableflip.dev/nova/pkg/note"
	"tableflip.dev/nova/pkg/timer"
)

// ReportSection groups the notes completed in a bucket.
type ReportSection struct {
	Bucket bucket.Bucket
	Notes  []*note.Note
}

// ReportResult summarizes completed notes and focus sessions in a window.
type ReportResult struct {
	Since    time.Time
	Until    time.Time
	Sections []ReportSection
	Total    int
	Sessions []timer.HistoryItem
	// FocusSeconds sums work sessions only.
	FocusSeconds int
}

// Report returns notes completed between the bounds, grouped by bucket in
// bucket order, and the Pomodoro sessions finished in the same window. A
// note counts as completed at its last update. Trashed notes are skipped.
func (a *App) Report(since, until time.Time) ReportResult {
	if since.After(until) {
		since, until = until, since
	}
	in := func(t time.Time) bool { return !t.Before(since) && !t.After(until) }

	grouped := make(map[string][]*note.Note)
	total := 0
	for _, n := range a.Notes.All() {
		if !n.IsCompleted || n.Partition() == note.Trash || !in(n.UpdatedAt.Time) {
			continue
		}
		grouped[n.BucketID] = append(grouped[n.BucketID], n)
		total++
	}

	result := ReportResult{Since: since, Until: until, Total: total}
	for _, b := range a.Notes.Buckets() {
		if notes, ok := grouped[b.ID]; ok {
			result.Sections = append(result.Sections, ReportSection{Bucket: b, Notes: notes})
			delete(grouped, b.ID)
		}
	}
	// Notes filed under a bucket that no longer exists.
	orphans := make([]string, 0, len(grouped))
	for id := range grouped {
		orphans = append(orphans, id)
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		result.Sections = append(result.Sections, ReportSection{Bucket: bucket.Bucket{ID: id, Name: id}, Notes: grouped[id]})
	}

	for _, h := range a.Timer.History() {
		if !in(h.Timestamp.Time) {
			continue
		}
		result.Sessions = append(result.Sessions, h)
		if h.Mode == timer.Work {
			result.FocusSeconds += h.Duration
		}
	}
	return result
}
