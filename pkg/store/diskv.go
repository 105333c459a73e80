package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// docsDir keeps documents apart from logs and the sqlite file so the watcher
// only sees document writes.
const docsDir = "docs"

type diskvBackend struct {
	d       *diskv.Diskv
	dir     string
	written writeLog
}

// NewDiskv stores one file per document under base/docs. Other processes
// write the same files, so diskv's read cache stays off.
func NewDiskv(base string) (Backend, error) {
	if base == "" {
		return nil, errors.New("store: base path unknown")
	}
	dir := filepath.Join(base, docsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &diskvBackend{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			Transform:    flatTransform,
			CacheSizeMax: 0,
			TempDir:      filepath.Join(base, ".tmp"),
		}),
		dir: dir,
	}, nil
}

func flatTransform(string) []string { return []string{} }

func (b *diskvBackend) Read(key string) ([]byte, error) {
	if !b.d.Has(key) {
		return nil, ErrNotFound
	}
	rc, err := b.d.ReadStream(key, true)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	defer rc.Close()
	val, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (b *diskvBackend) Write(key string, data []byte) error {
	if err := b.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	b.written.record(filepath.Join(b.dir, key))
	return nil
}

func (b *diskvBackend) Has(key string) bool { return b.d.Has(key) }

func (b *diskvBackend) Erase(key string) error {
	if !b.d.Has(key) {
		return nil
	}
	return b.d.Erase(key)
}

func (b *diskvBackend) Close() error { return nil }

func (b *diskvBackend) WatchDir() string { return b.dir }

func (b *diskvBackend) KeyForPath(path string) string {
	rel, err := filepath.Rel(b.dir, path)
	if err != nil || rel == "." || strings.Contains(rel, string(os.PathSeparator)) {
		return ""
	}
	if strings.HasPrefix(rel, ".") {
		return ""
	}
	return rel
}

func (b *diskvBackend) IsOwnWrite(path string) bool { return b.written.own(path) }
