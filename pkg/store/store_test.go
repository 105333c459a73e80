package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"tableflip.dev/nova/pkg/errs"
	"tableflip.dev/nova/pkg/note"
	"tableflip.dev/nova/pkg/profile"
	"tableflip.dev/nova/pkg/timer"
	"tableflip.dev/nova/pkg/timeutil"
)

var epoch = time.Date(2024, time.January, 5, 12, 0, 0, 0, time.UTC)

// memoryBackend is an in-memory Backend that can be told to fail.
type memoryBackend struct {
	mu     sync.Mutex
	docs   map[string][]byte
	writes int
	fail   error
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{docs: map[string][]byte{}}
}

func (m *memoryBackend) Read(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

func (m *memoryBackend) Write(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.docs[key] = append([]byte(nil), data...)
	m.writes++
	return nil
}

func (m *memoryBackend) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.docs[key]
	return ok
}

func (m *memoryBackend) Erase(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}

func (m *memoryBackend) Close() error { return nil }

func (m *memoryBackend) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func fullSnapshot() Snapshot {
	s := Defaults(epoch, timer.Settings{Work: 50, Short: 10, Long: 20})
	s.Notes[1].IsArchived = true
	s.Notes[2].IsPinned = true
	s.Notes[2].SubTasks = []note.SubTask{{ID: "s1", Text: "slides", IsCompleted: true}}
	s.Profile.Account = &profile.CloudAccount{ID: "google_1", Email: "jane.doe@gmail.com", Verified: true, LastSyncedAt: timeutil.At(epoch)}
	s.History = []timer.HistoryItem{{ID: "h1", Label: "Work", Duration: 3000, Mode: timer.Work, Timestamp: timeutil.At(epoch)}}
	return s
}

func assertSnapshotsEqual(t *testing.T, want, got Snapshot) {
	t.Helper()
	if len(got.Notes) != len(want.Notes) {
		t.Fatalf("expected %d notes, got %d", len(want.Notes), len(got.Notes))
	}
	for i := range want.Notes {
		w, g := want.Notes[i], got.Notes[i]
		if w.ID != g.ID || w.Title != g.Title || w.OrderValue() != g.OrderValue() ||
			w.IsArchived != g.IsArchived || w.IsPinned != g.IsPinned ||
			!w.CreatedAt.Equal(g.CreatedAt.Time) || len(w.SubTasks) != len(g.SubTasks) {
			t.Fatalf("note %d differs:\nwant %+v\ngot  %+v", i, w, g)
		}
	}
	if len(got.Buckets) != len(want.Buckets) || got.Buckets[0] != want.Buckets[0] {
		t.Fatalf("buckets differ: %+v", got.Buckets)
	}
	if got.Profile.Name != want.Profile.Name || got.Profile.Account == nil ||
		!got.Profile.Account.LastSyncedAt.Equal(want.Profile.Account.LastSyncedAt.Time) {
		t.Fatalf("profile differs: %+v", got.Profile)
	}
	if got.Settings != want.Settings {
		t.Fatalf("settings differ: %+v", got.Settings)
	}
	if len(got.History) != 1 || got.History[0].ID != "h1" || !got.History[0].Timestamp.Equal(want.History[0].Timestamp.Time) {
		t.Fatalf("history differs: %+v", got.History)
	}
}

func TestSnapshotRoundTripBackends(t *testing.T) {
	backends := map[string]func(t *testing.T) Backend{
		"memory": func(t *testing.T) Backend { return newMemoryBackend() },
		"diskv": func(t *testing.T) Backend {
			b, err := NewDiskv(t.TempDir())
			if err != nil {
				t.Fatalf("diskv: %v", err)
			}
			return b
		},
		"sqlite": func(t *testing.T) Backend {
			b, err := Open(&Options{Path: t.TempDir(), StoreDriver: DriverSQLite})
			if err != nil {
				t.Fatalf("sqlite: %v", err)
			}
			t.Cleanup(func() { _ = b.Close() })
			return b
		},
	}
	for name, mk := range backends {
		t.Run(name, func(t *testing.T) {
			b := mk(t)
			want := fullSnapshot()
			if err := Save(b, want); err != nil {
				t.Fatalf("save: %v", err)
			}
			// Saving twice overwrites in place.
			if err := Save(b, want); err != nil {
				t.Fatalf("second save: %v", err)
			}
			got, err := Load(b, Defaults(epoch, timer.DefaultSettings()))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			assertSnapshotsEqual(t, want, got)
		})
	}
}

func TestLoadAssignsMissingOrder(t *testing.T) {
	b := newMemoryBackend()
	b.docs[KeyNotes] = []byte(`[{"id":"a","bucketId":"work"},{"id":"b","bucketId":"work","order":7},{"id":"c","bucketId":"work"}]`)
	got, err := Load(b, Defaults(epoch, timer.DefaultSettings()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	orders := []int{got.Notes[0].OrderValue(), got.Notes[1].OrderValue(), got.Notes[2].OrderValue()}
	if orders[0] != 0 || orders[1] != 7 || orders[2] != 2 {
		t.Fatalf("unexpected orders %v", orders)
	}
}

func TestLoadFirstRunUsesDefaults(t *testing.T) {
	got, err := Load(newMemoryBackend(), Defaults(epoch, timer.DefaultSettings()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Notes) != 3 || len(got.Buckets) != 5 || got.Profile.Name != "Jane Doe" || got.Settings.Work != 25 {
		t.Fatalf("unexpected first-run snapshot %+v", got)
	}
}

func TestLoadCorruptDocumentFallsBack(t *testing.T) {
	b := newMemoryBackend()
	b.docs[KeyNotes] = []byte(`{not json`)
	b.docs[KeySettings] = []byte(`{"work":40,"short":0,"long":10}`)
	got, err := Load(b, Defaults(epoch, timer.DefaultSettings()))
	if !errs.IsStorage(err) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if len(got.Notes) != 3 {
		t.Fatalf("expected seed notes after corrupt document, got %d", len(got.Notes))
	}
	if got.Settings.Work != 40 || got.Settings.Short != 1 {
		t.Fatalf("expected valid settings to load and clamp, got %+v", got.Settings)
	}
}

func TestEmptyNotesDocumentStaysEmpty(t *testing.T) {
	b := newMemoryBackend()
	b.docs[KeyNotes] = []byte(`[]`)
	got, err := Load(b, Defaults(epoch, timer.DefaultSettings()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Notes) != 0 {
		t.Fatalf("an emptied collection must not be reseeded, got %d notes", len(got.Notes))
	}
}

func TestFlusherCoalescesWrites(t *testing.T) {
	b := newMemoryBackend()
	var mu sync.Mutex
	calls := 0
	source := func() Snapshot {
		mu.Lock()
		calls++
		mu.Unlock()
		return fullSnapshot()
	}
	f := NewFlusher(b, source, 30*time.Millisecond)
	for i := 0; i < 20; i++ {
		f.MarkDirty()
	}

	deadline := time.Now().Add(2 * time.Second)
	for f.Dirty() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected one coalesced flush, got %d", calls)
	}
	if b.writeCount() != len(Keys()) {
		t.Fatalf("expected %d document writes, got %d", len(Keys()), b.writeCount())
	}
}

func TestFlusherKeepsDirtyOnFailure(t *testing.T) {
	b := newMemoryBackend()
	b.fail = errors.New("quota exceeded")
	f := NewFlusher(b, fullSnapshot, time.Hour)
	f.MarkDirty()

	err := f.Flush()
	if !errs.IsStorage(err) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if !f.Dirty() || f.LastError() == nil {
		t.Fatalf("failed flush must leave state dirty")
	}

	b.fail = nil
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if f.Dirty() || !b.Has(KeyNotes) {
		t.Fatalf("expected retry on close to persist")
	}
}

func TestDiskvReadsSeeOtherHandles(t *testing.T) {
	dir := t.TempDir()
	mine, err := NewDiskv(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	theirs, err := NewDiskv(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := mine.Write(KeyNotes, []byte(`[]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, err := mine.Read(KeyNotes); err != nil || string(got) != `[]` {
		t.Fatalf("read back %q %v", got, err)
	}
	if err := theirs.Write(KeyNotes, []byte(`[{"id":"x"}]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := mine.Read(KeyNotes)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != `[{"id":"x"}]` {
		t.Fatalf("read served stale bytes %q", got)
	}
}

func TestFlusherQuietSkipsWhenDirty(t *testing.T) {
	f := NewFlusher(newMemoryBackend(), fullSnapshot, time.Hour)
	f.MarkDirty()
	ran, err := f.Quiet(func() error { return nil })
	if ran || err != nil {
		t.Fatalf("quiet must not run while dirty, got %v %v", ran, err)
	}
	if err := f.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	boom := errors.New("boom")
	ran, err = f.Quiet(func() error { return boom })
	if !ran || !errors.Is(err, boom) {
		t.Fatalf("expected quiet to run and pass the error through, got %v %v", ran, err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := &Options{Path: "/tmp/nova"}
	if o.Driver() != DriverDiskv || o.FlushDebounce() != 500*time.Millisecond {
		t.Fatalf("unexpected defaults %v %v", o.Driver(), o.FlushDebounce())
	}
	if o.SQLitePath() != "/tmp/nova/nova.sqlite" || o.LogFile() != "/tmp/nova/logs/nova.log" {
		t.Fatalf("unexpected paths %s %s", o.SQLitePath(), o.LogFile())
	}
	if w, s, l := o.PomodoroMinutes(); w != 25 || s != 5 || l != 15 {
		t.Fatalf("unexpected pomodoro defaults %d/%d/%d", w, s, l)
	}
	if _, err := Open(&Options{Path: "/tmp/nova", StoreDriver: "redis"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
