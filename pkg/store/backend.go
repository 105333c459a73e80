package store

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// ErrNotFound is returned by Backend.Read for a missing document.
var ErrNotFound = errors.New("store: document not found")

// Backend stores whole JSON documents by key.
type Backend interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
	Has(key string) bool
	Erase(key string) error
	Close() error
}

// Watchable is implemented by backends whose writes are visible on disk.
type Watchable interface {
	// WatchDir is the directory to subscribe to.
	WatchDir() string
	// KeyForPath maps a changed path to a document key, or "" when the path
	// does not belong to the backend.
	KeyForPath(path string) string
	// IsOwnWrite reports whether the file at path is unchanged since this
	// process last wrote it.
	IsOwnWrite(path string) bool
}

// writeLog remembers the modification time of files this process wrote.
type writeLog struct {
	mu    sync.Mutex
	times map[string]time.Time
}

func (w *writeLog) record(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.times == nil {
		w.times = make(map[string]time.Time)
	}
	w.times[path] = info.ModTime()
}

func (w *writeLog) own(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	last, ok := w.times[path]
	return ok && !info.ModTime().After(last)
}

// Open builds the backend selected by cfg.
func Open(cfg Config) (Backend, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	switch cfg.Driver() {
	case DriverDiskv, "":
		return NewDiskv(cfg.BasePath())
	case DriverSQLite:
		return NewSQLite(cfg.SQLitePath())
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver())
	}
}
