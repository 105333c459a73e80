// Package view derives what is displayed from the note collection. Everything
// here is a pure function of its inputs; Views adds memoization on top.
package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"tableflip.dev/nova/pkg/note"
)

// Kind selects a partition of the collection.
type Kind string

const (
	// Notes is the active partition.
	Notes Kind = "notes"
	// Vault is archived and not deleted.
	Vault Kind = "archived"
	// Trash is every deleted note, archived or not.
	Trash Kind = "trash"
	// Bucket is the active partition of one bucket.
	Bucket Kind = "bucket"
	// All skips partition selection.
	All Kind = "all"
)

// ParseKind maps user input to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "notes", "active":
		return Notes, nil
	case "archived", "archive", "vault":
		return Vault, nil
	case "trash", "deleted":
		return Trash, nil
	case "bucket":
		return Bucket, nil
	case "all":
		return All, nil
	}
	return "", fmt.Errorf("view: unknown view %q", s)
}

// Query is the full set of inputs to the pipeline.
type Query struct {
	View     Kind
	BucketID string
	Search   string
	// Priority is a priority label or note.PriorityAll. Empty means all.
	Priority string
}

// Key identifies the query for memoization.
func (q Query) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s", q.View, q.BucketID, strings.ToLower(q.Search), q.Priority)
}

// Apply runs partition select, text filter, priority filter and sort.
func Apply(notes []*note.Note, q Query) []*note.Note {
	return Sort(FilterPriority(FilterText(Select(notes, q.View, q.BucketID), q.Search), q.Priority))
}

// Select keeps the notes in view k. A bucket view without a bucket id selects
// nothing in particular and returns every note.
func Select(notes []*note.Note, k Kind, bucketID string) []*note.Note {
	out := make([]*note.Note, 0, len(notes))
	for _, n := range notes {
		if inView(n, k, bucketID) {
			out = append(out, n)
		}
	}
	return out
}

func inView(n *note.Note, k Kind, bucketID string) bool {
	switch k {
	case Notes:
		return n.Partition() == note.Active
	case Vault:
		return n.Partition() == note.Archived
	case Trash:
		return n.Partition() == note.Trash
	case Bucket:
		if bucketID == "" {
			return true
		}
		return n.Partition() == note.Active && n.BucketID == bucketID
	default:
		return true
	}
}

// Matches reports whether search is a case-insensitive substring of the title
// or the content. An empty search matches everything.
func Matches(n *note.Note, search string) bool {
	if search == "" {
		return true
	}
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(n.Title), s) || strings.Contains(strings.ToLower(n.Content), s)
}

// FilterText keeps notes matching search.
func FilterText(notes []*note.Note, search string) []*note.Note {
	if search == "" {
		return notes
	}
	out := make([]*note.Note, 0, len(notes))
	for _, n := range notes {
		if Matches(n, search) {
			out = append(out, n)
		}
	}
	return out
}

// FilterPriority keeps notes with priority p, or everything for "All".
func FilterPriority(notes []*note.Note, p string) []*note.Note {
	if p == "" || p == note.PriorityAll {
		return notes
	}
	out := make([]*note.Note, 0, len(notes))
	for _, n := range notes {
		if string(n.Priority) == p {
			out = append(out, n)
		}
	}
	return out
}

// Sort orders pinned notes first, then by ascending manual order. Ties keep
// their input order. The input slice is not modified.
func Sort(notes []*note.Note) []*note.Note {
	out := append([]*note.Note(nil), notes...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		return a.OrderValue() < b.OrderValue()
	})
	return out
}

// DayGroup is a run of notes created on the same calendar day.
type DayGroup struct {
	Label string
	Notes []*note.Note
}

// GroupByDay clusters notes by creation day. Groups appear in the order their
// first note appears and notes keep their input order within a group.
func GroupByDay(notes []*note.Note) []DayGroup {
	var groups []DayGroup
	index := map[string]int{}
	for _, n := range notes {
		label := n.CreatedAt.DayLabel()
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, DayGroup{Label: label})
		}
		groups[i].Notes = append(groups[i].Notes, n)
	}
	return groups
}

// OnDay returns the active notes created on the local calendar day of day.
func OnDay(notes []*note.Note, day time.Time) []*note.Note {
	var out []*note.Note
	for _, n := range notes {
		if n.Partition() == note.Active && n.CreatedAt.SameDay(day) {
			out = append(out, n)
		}
	}
	return out
}

// DaysWithNotes marks the days of month that have at least one active note.
func DaysWithNotes(notes []*note.Note, month time.Time) map[int]bool {
	y, m, _ := month.Local().Date()
	out := map[int]bool{}
	for _, n := range notes {
		if n.Partition() != note.Active {
			continue
		}
		ny, nm, nd := n.CreatedAt.Local().Date()
		if ny == y && nm == m {
			out[nd] = true
		}
	}
	return out
}

// MonthGrid returns the days shown on a month calendar: full weeks from the
// Sunday on or before the 1st through the Saturday on or after the last day.
func MonthGrid(month time.Time) []time.Time {
	loc := month.Location()
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
