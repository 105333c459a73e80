package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// AllKeys in an Event means the whole snapshot may have changed.
const AllKeys = "*"

// Event is emitted by Watch when another process changes a document.
type Event struct {
	Key string
}

// ErrNotWatchable is returned by Watch for backends without files on disk.
var ErrNotWatchable = errors.New("store: backend cannot be watched")

// Watch streams change events for b until ctx is cancelled. Writes made by
// this process are skipped. Callers should drain the returned channel; events
// are dropped rather than blocking the watcher. The channel is closed once ctx
// is done or the watcher fails.
func Watch(ctx context.Context, b Backend, log *zap.Logger) (<-chan Event, error) {
	w, ok := b.(Watchable)
	if !ok {
		return nil, ErrNotWatchable
	}
	if log == nil {
		log = zap.NewNop()
	}
	dir := w.WatchDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure watch dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	events := make(chan Event, 16)

	var (
		sendMu sync.Mutex
		closed bool
	)

	go func() {
		defer func() {
			sendMu.Lock()
			closed = true
			close(events)
			sendMu.Unlock()
		}()
		defer func() {
			if err := watcher.Close(); err != nil {
				log.Warn("watcher close", zap.String("module", "store"), zap.Error(err))
			}
		}()

		send := func(ev Event) {
			sendMu.Lock()
			defer sendMu.Unlock()
			if closed {
				return
			}
			select {
			case events <- ev:
			default:
				// The consumer reloads everything on the next event anyway.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("watcher error", zap.String("module", "store"), zap.Error(err))
				throttle.Enqueue(Event{Key: AllKeys}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				key := w.KeyForPath(evt.Name)
				if key == "" {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create) != 0 && w.IsOwnWrite(evt.Name) {
					continue
				}
				throttle.Enqueue(Event{Key: key}, send)
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces bursts of file events into one event per key.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	t.pending[ev.Key] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	if _, all := pending[AllKeys]; all {
		send(Event{Key: AllKeys})
		return
	}
	for key := range pending {
		send(Event{Key: key})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
