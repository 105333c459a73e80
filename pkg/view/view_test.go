package view

import (
	"testing"
	"time"

	"tableflip.dev/nova/pkg/bucket"
	"tableflip.dev/nova/pkg/note"
	"tableflip.dev/nova/pkg/timeutil"
)

func mk(id string, order int, opts ...func(*note.Note)) *note.Note {
	n := &note.Note{ID: id, BucketID: "work", Priority: note.Medium, Order: note.IntPtr(order)}
	for _, o := range opts {
		o(n)
	}
	return n
}

func pinned(n *note.Note)   { n.IsPinned = true }
func archived(n *note.Note) { n.IsArchived = true }
func deleted(n *note.Note)  { n.IsDeleted = true }

func ids(notes []*note.Note) string {
	s := ""
	for i, n := range notes {
		if i > 0 {
			s += ","
		}
		s += n.ID
	}
	return s
}

func TestPartitionsAreExclusive(t *testing.T) {
	notes := []*note.Note{
		mk("a", 0),
		mk("b", 1, archived),
		mk("c", 2, deleted),
		mk("d", 3, archived, deleted),
		mk("e", 4, pinned, archived),
	}
	for _, n := range notes {
		hits := 0
		for _, k := range []Kind{Notes, Vault, Trash} {
			for _, m := range Select(notes, k, "") {
				if m.ID == n.ID {
					hits++
				}
			}
		}
		if hits != 1 {
			t.Fatalf("note %s appears in %d partitions", n.ID, hits)
		}
	}
	if got := ids(Select(notes, Trash, "")); got != "c,d" {
		t.Fatalf("unexpected trash %s", got)
	}
	if got := ids(Select(notes, Vault, "")); got != "b,e" {
		t.Fatalf("unexpected vault %s", got)
	}
}

func TestSortPinnedFirstThenOrder(t *testing.T) {
	notes := []*note.Note{
		mk("a", 3),
		mk("b", 1, pinned),
		mk("c", 0),
		mk("d", 0, pinned),
		{ID: "e", BucketID: "work"},
		mk("f", 1),
	}
	got := Sort(notes)
	if ids(got) != "d,b,c,e,f,a" {
		t.Fatalf("unexpected order %s", ids(got))
	}
	if ids(Sort(got)) != ids(got) {
		t.Fatalf("sort is not idempotent")
	}
	if ids(notes) != "a,b,c,d,e,f" {
		t.Fatalf("sort mutated its input")
	}
}

func TestSearchSeedForAvocado(t *testing.T) {
	seed := note.Seed(time.Now())
	got := Apply(seed, Query{View: Notes, Search: "avocado", Priority: note.PriorityAll})
	if len(got) != 1 || got[0].Title != "Grocery List" {
		t.Fatalf("expected only the grocery list, got %s", ids(got))
	}
}

func TestSearchMatchesTitleOrContent(t *testing.T) {
	notes := []*note.Note{
		mk("a", 0, func(n *note.Note) { n.Title = "Quarterly PLAN" }),
		mk("b", 1, func(n *note.Note) { n.Content = "plan the trip" }),
		mk("c", 2, func(n *note.Note) { n.Content = "nothing" }),
	}
	if got := ids(FilterText(notes, "Plan")); got != "a,b" {
		t.Fatalf("unexpected matches %s", got)
	}
	if got := ids(FilterText(notes, "")); got != "a,b,c" {
		t.Fatalf("empty search should match all, got %s", got)
	}
}

func TestPriorityFilter(t *testing.T) {
	notes := []*note.Note{
		mk("a", 0, func(n *note.Note) { n.Priority = note.High }),
		mk("b", 1),
	}
	if got := ids(FilterPriority(notes, "High")); got != "a" {
		t.Fatalf("unexpected %s", got)
	}
	if got := ids(FilterPriority(notes, note.PriorityAll)); got != "a,b" {
		t.Fatalf("unexpected %s", got)
	}
}

func TestBucketView(t *testing.T) {
	notes := []*note.Note{
		mk("a", 0),
		mk("b", 1, func(n *note.Note) { n.BucketID = "ideas" }),
		mk("c", 2, archived),
	}
	if got := ids(Apply(notes, Query{View: Bucket, BucketID: "work"})); got != "a" {
		t.Fatalf("unexpected bucket view %s", got)
	}
}

func TestGroupByDayKeepsOrder(t *testing.T) {
	day1 := time.Date(2024, time.January, 5, 9, 0, 0, 0, time.Local)
	day2 := day1.AddDate(0, 0, -1)
	at := func(ts time.Time) func(*note.Note) {
		return func(n *note.Note) { n.CreatedAt = timeutil.At(ts) }
	}
	notes := []*note.Note{
		mk("a", 0, at(day1)),
		mk("b", 1, at(day2)),
		mk("c", 2, at(day1.Add(3*time.Hour))),
	}
	groups := GroupByDay(notes)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Label != "Jan 05, 2024" || ids(groups[0].Notes) != "a,c" {
		t.Fatalf("unexpected first group %s %s", groups[0].Label, ids(groups[0].Notes))
	}
	if groups[1].Label != "Jan 04, 2024" || ids(groups[1].Notes) != "b" {
		t.Fatalf("unexpected second group %s %s", groups[1].Label, ids(groups[1].Notes))
	}

	if got := ids(OnDay(notes, day1)); got != "a,c" {
		t.Fatalf("unexpected day selection %s", got)
	}
	marks := DaysWithNotes(notes, day1)
	if !marks[4] || !marks[5] || marks[6] {
		t.Fatalf("unexpected day marks %v", marks)
	}
}

func TestMonthGridCoversFullWeeks(t *testing.T) {
	days := MonthGrid(time.Date(2024, time.February, 14, 0, 0, 0, 0, time.UTC))
	if len(days)%7 != 0 {
		t.Fatalf("grid is not whole weeks: %d", len(days))
	}
	if days[0].Weekday() != time.Sunday || days[len(days)-1].Weekday() != time.Saturday {
		t.Fatalf("grid does not start on Sunday / end on Saturday")
	}
	// Feb 1 2024 is a Thursday.
	if days[0].Day() != 28 || days[0].Month() != time.January {
		t.Fatalf("unexpected first day %v", days[0])
	}
}

func TestSummaries(t *testing.T) {
	notes := []*note.Note{
		mk("a", 0, func(n *note.Note) { n.IsCompleted = true }),
		mk("b", 1),
		mk("c", 2, deleted, func(n *note.Note) { n.IsCompleted = true }),
	}
	sums := Summaries(notes, bucket.Defaults())
	if sums[0].Bucket.ID != "work" || sums[0].Count != 2 || sums[0].Progress != 50 {
		t.Fatalf("unexpected work summary %+v", sums[0])
	}
	if sums[1].Count != 0 || sums[1].Progress != 0 {
		t.Fatalf("empty bucket should have zero progress: %+v", sums[1])
	}
	c := PartitionCounts(notes)
	if c.Active != 2 || c.Trash != 1 || c.Archived != 0 {
		t.Fatalf("unexpected counts %+v", c)
	}
}

func TestViewsMemoizesPerRevision(t *testing.T) {
	v := NewViews(time.Minute)
	notes := []*note.Note{mk("a", 1), mk("b", 0)}
	q := Query{View: Notes}

	first := v.Apply(1, notes, q)
	// Same revision: the cached result is returned even if the caller passes
	// a different slice.
	again := v.Apply(1, nil, q)
	if ids(first) != "b,a" || ids(again) != "b,a" {
		t.Fatalf("unexpected cached result %s / %s", ids(first), ids(again))
	}
	next := v.Apply(2, notes[:1], q)
	if ids(next) != "a" {
		t.Fatalf("new revision must recompute, got %s", ids(next))
	}
	groups := v.Timeline(2, notes[:1], q)
	if len(groups) != 1 {
		t.Fatalf("unexpected timeline %v", groups)
	}
	if v.Len() != 3 {
		t.Fatalf("expected 3 cached entries, got %d", v.Len())
	}
}
