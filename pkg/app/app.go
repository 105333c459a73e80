// Package app ties the note, profile and timer stores to persistence and the
// external collaborators so the CLI, the focus TUI and the MCP server share
// one set of operations.
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/nova/pkg/bucket"
	"tableflip.dev/nova/pkg/cloud"
	"tableflip.dev/nova/pkg/note"
	"tableflip.dev/nova/pkg/profile"
	"tableflip.dev/nova/pkg/store"
	"tableflip.dev/nova/pkg/suggest"
	"tableflip.dev/nova/pkg/timer"
	"tableflip.dev/nova/pkg/view"
)

// ErrBusy rejects a second export, suggestion or sync while one is pending.
var ErrBusy = errors.New("app: operation already in progress")

// Options wires an App.
type Options struct {
	Backend store.Backend
	// Settings are the Pomodoro durations used when nothing is persisted.
	Settings  timer.Settings
	Debounce  time.Duration
	Interval  time.Duration
	Suggester suggest.Suggester
	Cloud     cloud.Service
	Ticks     timer.TickSource
	Log       *zap.Logger
	Now       func() time.Time
}

// App is the aggregate of everything a user owns. Each store guards its own
// state; App adds persistence, memoized views and the pending flags of the
// asynchronous operations.
type App struct {
	Notes   *NoteStore
	Profile *profile.Store
	Timer   *timer.Store

	backend   store.Backend
	flusher   *store.Flusher
	views     *view.Views
	suggester suggest.Suggester
	cloud     cloud.Service
	log       *zap.Logger
	now       func() time.Time
	defaults  timer.Settings

	mu         sync.Mutex
	exporting  bool
	suggesting bool
	syncing    bool
}

// New loads the persisted snapshot and starts the flusher. A corrupt
// document falls back to its default; the failure is logged and the app
// still starts.
func New(opts Options) (*App, error) {
	if opts.Backend == nil {
		return nil, errors.New("app: no backend configured")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Settings == (timer.Settings{}) {
		opts.Settings = timer.DefaultSettings()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	log := opts.Log.With(zap.String("module", "app"))

	snap, err := store.Load(opts.Backend, store.Defaults(opts.Now(), opts.Settings))
	if err != nil {
		log.Error("load failed, continuing with defaults", zap.Error(err))
	}

	timerOpts := []timer.Option{timer.WithClock(opts.Now), timer.WithLogger(log)}
	if opts.Ticks != nil {
		timerOpts = append(timerOpts, timer.WithTickSource(opts.Ticks))
	}

	a := &App{
		Notes:     NewNoteStore(snap.Notes, snap.Buckets, opts.Now),
		Profile:   profile.NewStore(snap.Profile),
		Timer:     timer.NewStore(snap.Settings, snap.History, timerOpts...),
		backend:   opts.Backend,
		views:     view.NewViews(time.Minute),
		suggester: opts.Suggester,
		cloud:     opts.Cloud,
		log:       log,
		now:       opts.Now,
		defaults:  opts.Settings,
	}
	a.flusher = store.NewFlusher(opts.Backend, a.Snapshot, opts.Debounce,
		store.WithLogger(opts.Log),
		store.WithInterval(opts.Interval),
	)
	a.Notes.OnChange(a.markDirty)
	a.Profile.OnChange(a.markDirty)
	a.Timer.OnChange(a.markDirty)
	return a, nil
}

func (a *App) markDirty() { a.flusher.MarkDirty() }

// Snapshot captures the persisted aggregate.
func (a *App) Snapshot() store.Snapshot {
	return store.Snapshot{
		Notes:    a.Notes.All(),
		Buckets:  a.Notes.Buckets(),
		Profile:  a.Profile.Get(),
		Settings: a.Timer.Settings(),
		History:  a.Timer.History(),
	}
}

// Buckets returns the configured buckets.
func (a *App) Buckets() bucket.Set { return a.Notes.Buckets() }

// Query runs the view pipeline over the current collection.
func (a *App) Query(q view.Query) []*note.Note {
	return a.views.Apply(a.Notes.Revision(), a.Notes.All(), q)
}

// Timeline groups the notes matching q by creation day.
func (a *App) Timeline(q view.Query) []view.DayGroup {
	return a.views.Timeline(a.Notes.Revision(), a.Notes.All(), q)
}

// Summaries reports active note counts and completion per bucket.
func (a *App) Summaries() []view.BucketSummary {
	return view.Summaries(a.Notes.All(), a.Notes.Buckets())
}

// Dirty reports whether changes are waiting to be written.
func (a *App) Dirty() bool { return a.flusher.Dirty() }

// Flush writes pending changes now.
func (a *App) Flush() error { return a.flusher.Flush() }

// Reload replaces in-memory state with what is on disk. It is skipped while
// local changes are unsaved. A store mutated while the snapshot was being
// read keeps its local state, which is already marked dirty and wins on the
// next flush.
func (a *App) Reload() (bool, error) {
	// Revisions are taken before the dirty check. A mutation marks dirty in
	// the same critical section that bumps its store's revision, so it is
	// either seen as dirty here or refused by the conditional replace below.
	notesRev := a.Notes.Revision()
	profileRev := a.Profile.Revision()
	timerRev := a.Timer.Revision()

	applied := false
	ran, err := a.flusher.Quiet(func() error {
		snap, err := store.Load(a.backend, store.Defaults(a.now(), a.defaults))
		if err != nil {
			a.log.Warn("reload found corrupt documents", zap.Error(err))
		}
		n := a.Notes.ReplaceAt(notesRev, snap.Notes, snap.Buckets)
		p := a.Profile.ReplaceAt(profileRev, snap.Profile)
		t := a.Timer.LoadAt(timerRev, snap.Settings, snap.History)
		if !n || !p || !t {
			a.log.Debug("reload kept local changes",
				zap.Bool("notes", !n), zap.Bool("profile", !p), zap.Bool("timer", !t))
		}
		applied = n || p || t
		return err
	})
	if !ran {
		return false, nil
	}
	a.views.Flush()
	return applied, err
}

// Watch reloads whenever another process changes the data directory, until
// ctx is done. onReload, if set, runs after each applied reload.
func (a *App) Watch(ctx context.Context, onReload func()) error {
	events, err := store.Watch(ctx, a.backend, a.log)
	if err != nil {
		return err
	}
	go func() {
		for range events {
			applied, err := a.Reload()
			if err != nil {
				a.log.Warn("reload", zap.Error(err))
			}
			if applied && onReload != nil {
				onReload()
			}
		}
	}()
	return nil
}

// Close stops the timers, writes pending changes and closes the backend.
func (a *App) Close() error {
	a.Timer.Close()
	err := a.flusher.Close()
	if cerr := a.backend.Close(); err == nil {
		err = cerr
	}
	return err
}

// begin sets the pending flag for one async operation. The returned func
// clears it and must run on every completion path.
func (a *App) begin(flag *bool) (func(), error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if *flag {
		return nil, ErrBusy
	}
	*flag = true
	return func() {
		a.mu.Lock()
		*flag = false
		a.mu.Unlock()
	}, nil
}

// Pending reports which asynchronous operations are in flight.
func (a *App) Pending() (exporting, suggesting, syncing bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.exporting, a.suggesting, a.syncing
}
