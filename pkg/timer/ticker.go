package timer

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Track names an independent tick source.
type Track string

const (
	TrackPomodoro  Track = "pomodoro"
	TrackStopwatch Track = "stopwatch"
)

// TickSource drives the one-second cadence of each track.
type TickSource interface {
	Start(track Track, fn func()) error
	Stop(track Track)
	Active(track Track) bool
}

// steady fires every period counted from start, so the first tick after a
// resume comes one full period later and not at the next wall-clock second.
type steady struct {
	start  time.Time
	period time.Duration
}

func (s steady) Next(t time.Time) time.Time {
	if t.Before(s.start) {
		return s.start.Add(s.period)
	}
	k := t.Sub(s.start)/s.period + 1
	return s.start.Add(k * s.period)
}

// Ticker is a TickSource on a cron scheduler. Each track owns at most one
// entry; starting a track that is already scheduled replaces its entry.
type Ticker struct {
	cron    *cron.Cron
	mu      sync.Mutex
	entries map[Track]cron.EntryID
	now     func() time.Time
}

// NewTicker starts the underlying scheduler.
func NewTicker() *Ticker {
	t := &Ticker{
		cron:    cron.New(),
		entries: make(map[Track]cron.EntryID),
		now:     time.Now,
	}
	t.cron.Start()
	return t
}

// Start schedules fn on track once per second, the first call one full
// second after Start.
func (t *Ticker) Start(track Track, fn func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.entries[track]; ok {
		t.cron.Remove(id)
		delete(t.entries, track)
	}
	if fn == nil {
		return fmt.Errorf("timer: no tick func for %s", track)
	}
	t.entries[track] = t.cron.Schedule(steady{start: t.now(), period: time.Second}, cron.FuncJob(fn))
	return nil
}

// Stop unschedules track. Stopping an idle track is a no-op.
func (t *Ticker) Stop(track Track) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.entries[track]; ok {
		t.cron.Remove(id)
		delete(t.entries, track)
	}
}

// Active reports whether track is scheduled.
func (t *Ticker) Active(track Track) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.entries[track]
	return ok
}

// Close stops the scheduler and waits for running ticks to return.
func (t *Ticker) Close() {
	t.mu.Lock()
	for track, id := range t.entries {
		t.cron.Remove(id)
		delete(t.entries, track)
	}
	t.mu.Unlock()
	<-t.cron.Stop().Done()
}
