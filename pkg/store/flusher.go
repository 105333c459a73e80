package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Flusher coalesces mutations into writes. Every mutation calls MarkDirty; a
// debounced flush runs once the mutations go quiet, and an optional periodic
// flush picks up anything a failed write left dirty.
type Flusher struct {
	backend Backend
	source  func() Snapshot
	log     *zap.Logger

	mu       sync.Mutex
	dirty    bool
	flushing sync.Mutex
	lastErr  error
	lastSave time.Time
	onSaved  func()

	debounced func(func())
	cron      *cron.Cron
}

// FlusherOption configures a Flusher.
type FlusherOption func(*Flusher)

// WithInterval enables a periodic dirty check every d.
func WithInterval(d time.Duration) FlusherOption {
	return func(f *Flusher) {
		if d <= 0 {
			return
		}
		f.cron = cron.New()
		if _, err := f.cron.AddFunc(fmt.Sprintf("@every %s", d), func() { _ = f.Flush() }); err != nil {
			f.log.Warn("periodic flush disabled", zap.String("module", "store"), zap.Error(err))
			f.cron = nil
		}
	}
}

// WithLogger sets the logger for flush failures.
func WithLogger(l *zap.Logger) FlusherOption {
	return func(f *Flusher) { f.log = l }
}

// OnSaved registers fn to run after each successful write.
func OnSaved(fn func()) FlusherOption {
	return func(f *Flusher) { f.onSaved = fn }
}

// NewFlusher writes snapshots from source to backend, at most once per quiet
// period of delay.
func NewFlusher(backend Backend, source func() Snapshot, delay time.Duration, opts ...FlusherOption) *Flusher {
	f := &Flusher{
		backend:   backend,
		source:    source,
		log:       zap.NewNop(),
		debounced: debounce.New(delay),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.cron != nil {
		f.cron.Start()
	}
	return f
}

// MarkDirty records a mutation and schedules a flush.
func (f *Flusher) MarkDirty() {
	f.mu.Lock()
	f.dirty = true
	f.mu.Unlock()
	f.debounced(func() { _ = f.Flush() })
}

// Dirty reports whether there are unwritten mutations.
func (f *Flusher) Dirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirty
}

// LastError is the error from the most recent write attempt, if it failed.
func (f *Flusher) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// LastSaved is when the most recent successful write finished.
func (f *Flusher) LastSaved() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastSave
}

// Flush writes the current snapshot if anything is dirty. Failures are logged
// and returned; the state stays dirty so a later flush retries.
func (f *Flusher) Flush() error {
	f.flushing.Lock()
	defer f.flushing.Unlock()

	f.mu.Lock()
	if !f.dirty {
		f.mu.Unlock()
		return nil
	}
	f.dirty = false
	f.mu.Unlock()

	snap := f.source()
	err := Save(f.backend, snap)

	f.mu.Lock()
	f.lastErr = err
	if err != nil {
		f.dirty = true
	} else {
		f.lastSave = time.Now()
	}
	saved := f.onSaved
	f.mu.Unlock()

	if err != nil {
		f.log.Error("flush failed", zap.String("module", "store"), zap.Error(err))
		return err
	}
	f.log.Debug("flushed", zap.String("module", "store"), zap.Int("notes", len(snap.Notes)))
	if saved != nil {
		saved()
	}
	return nil
}

// Quiet runs fn only when nothing is dirty, and keeps any flush from starting
// until fn returns. It reports whether fn ran.
func (f *Flusher) Quiet(fn func() error) (bool, error) {
	f.flushing.Lock()
	defer f.flushing.Unlock()
	if f.Dirty() {
		return false, nil
	}
	return true, fn()
}

// Close stops the periodic flush and writes anything still dirty.
func (f *Flusher) Close() error {
	if f.cron != nil {
		<-f.cron.Stop().Done()
	}
	return f.Flush()
}
