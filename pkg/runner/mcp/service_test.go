package mcp

import (
	"errors"
	"testing"
	"time"

	"tableflip.dev/nova/pkg/app"
	"tableflip.dev/nova/pkg/runner/complete"
	"tableflip.dev/nova/pkg/store"
	"tableflip.dev/nova/pkg/timer"
	"tableflip.dev/nova/pkg/timeutil"
)

var epoch = time.Date(2024, time.February, 14, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	backend, err := store.NewDiskv(t.TempDir())
	if err != nil {
		t.Fatalf("backend: %v", err)
	}
	a, err := app.New(app.Options{
		Backend:  backend,
		Debounce: time.Hour,
		Now:      func() time.Time { return epoch },
	})
	if err != nil {
		t.Fatalf("app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return NewService(a)
}

func titles(notes []NoteDTO) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Title)
	}
	return out
}

func TestServiceNoApp(t *testing.T) {
	svc := NewService(nil)
	if _, err := svc.ListNotes("notes", "", ""); !errors.Is(err, errNoApp) {
		t.Fatalf("expected errNoApp, got %v", err)
	}
	if _, err := svc.CreateNote(CreateNoteOptions{}); !errors.Is(err, errNoApp) {
		t.Fatalf("expected errNoApp, got %v", err)
	}
}

func TestServiceListNotesFilters(t *testing.T) {
	svc := newTestService(t)

	all, err := svc.ListNotes("notes", "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].Title != "Project Zen Layout" {
		t.Fatalf("unexpected notes %v", titles(all))
	}

	work, err := svc.ListNotes("notes", "Work", "")
	if err != nil {
		t.Fatalf("list by bucket: %v", err)
	}
	if len(work) != 1 || work[0].BucketName != "Work" {
		t.Fatalf("unexpected work notes %v", titles(work))
	}

	low, err := svc.ListNotes("notes", "", "low")
	if err != nil {
		t.Fatalf("list by priority: %v", err)
	}
	if len(low) != 1 || low[0].Title != "Grocery List" {
		t.Fatalf("unexpected low notes %v", titles(low))
	}

	if _, err := svc.ListNotes("notes", "", "urgent"); err == nil {
		t.Fatalf("expected unknown priority error")
	}
	if _, err := svc.ListNotes("notes", "nowhere", ""); err == nil {
		t.Fatalf("expected unknown bucket error")
	}
}

func TestServiceCreateAndUpdate(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.CreateNote(CreateNoteOptions{
		Title:    "  Launch plan ",
		Content:  "ship it",
		Bucket:   "ideas",
		Priority: "high",
		Tags:     []string{"Q3"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Title != "Launch plan" || created.Bucket != "ideas" || created.Priority != "High" {
		t.Fatalf("unexpected note %+v", created)
	}
	if len(created.Tags) != 1 || created.Tags[0] != "Q3" {
		t.Fatalf("unexpected tags %v", created.Tags)
	}

	list, _ := svc.ListNotes("notes", "", "")
	if list[0].ID != created.ID {
		t.Fatalf("new note should be first, got %v", titles(list))
	}

	title := "Launch plan v2"
	bucket := "Study"
	updated, err := svc.UpdateNote(UpdateNoteOptions{
		ID:      created.ID[:8],
		Title:   &title,
		Bucket:  &bucket,
		AddTags: []string{"Q4"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != title || updated.Bucket != "study" || updated.Content != "ship it" {
		t.Fatalf("unexpected update %+v", updated)
	}
	if len(updated.Tags) != 2 {
		t.Fatalf("expected appended tag, got %v", updated.Tags)
	}

	bad := "urgent"
	if _, err := svc.UpdateNote(UpdateNoteOptions{ID: created.ID, Priority: &bad}); err == nil {
		t.Fatalf("expected priority error")
	}
}

func TestServiceToggleAndSearch(t *testing.T) {
	svc := newTestService(t)

	pinned, err := svc.ToggleNote("3", complete.Pinned)
	if err != nil {
		t.Fatalf("pin: %v", err)
	}
	if !pinned.IsPinned {
		t.Fatalf("expected pinned")
	}
	list, _ := svc.ListNotes("notes", "", "")
	if list[0].ID != "3" {
		t.Fatalf("pinned note should lead, got %v", titles(list))
	}

	archived, err := svc.ToggleNote("2", complete.Archived)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if archived.State != "archived" {
		t.Fatalf("expected archived state, got %q", archived.State)
	}
	if _, err := svc.ToggleNote("1", complete.Deleted); err != nil {
		t.Fatalf("trash: %v", err)
	}

	hits, err := svc.SearchNotes("milk", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "2" {
		t.Fatalf("archived notes are searchable, got %v", titles(hits))
	}
	hits, _ = svc.SearchNotes("masonry", 10)
	if len(hits) != 0 {
		t.Fatalf("trashed notes are not searchable, got %v", titles(hits))
	}
	if _, err := svc.SearchNotes("  ", 10); err == nil {
		t.Fatalf("expected empty query error")
	}
}

func TestServiceMoveNote(t *testing.T) {
	svc := newTestService(t)

	list, err := svc.MoveNote("3", "1")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if got := list[0].ID + list[1].ID + list[2].ID; got != "312" {
		t.Fatalf("unexpected order %s", got)
	}
	if _, err := svc.MoveNote("3", "3"); err == nil {
		t.Fatalf("moving onto itself is a no-op error")
	}
}

func TestServiceBucketsAndHistory(t *testing.T) {
	svc := newTestService(t)

	buckets, err := svc.ListBuckets()
	if err != nil {
		t.Fatalf("buckets: %v", err)
	}
	if len(buckets) != 5 || buckets[0].ID != "work" || buckets[0].Count != 1 {
		t.Fatalf("unexpected buckets %+v", buckets)
	}

	svc.App.Timer.Load(svc.App.Timer.Settings(), []timer.HistoryItem{
		{ID: "a", Label: "Deep work", Mode: timer.Work, Duration: 1500, Timestamp: timeutil.At(epoch.Add(-time.Hour))},
		{ID: "b", Label: "Old", Mode: timer.Work, Duration: 1500, Timestamp: timeutil.At(epoch.Add(-10 * 24 * time.Hour))},
	})
	sessions, err := svc.TimerHistory("3d", epoch)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Duration != "25:00" {
		t.Fatalf("unexpected sessions %+v", sessions)
	}
	if _, err := svc.TimerHistory("soon", epoch); err == nil {
		t.Fatalf("expected window error")
	}
}
