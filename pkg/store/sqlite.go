package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// document is one row per persisted key.
type document struct {
	Key       string `gorm:"primaryKey;column:doc_key"`
	Data      []byte
	UpdatedAt time.Time
}

type sqliteBackend struct {
	db      *gorm.DB
	path    string
	written writeLog
}

// NewSQLite stores documents in a single sqlite file.
func NewSQLite(dsn string) (Backend, error) {
	if dsn == "" {
		return nil, errors.New("store: sqlite path unknown")
	}
	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	if err := db.AutoMigrate(&document{}); err != nil {
		return nil, fmt.Errorf("store: migrate sqlite: %w", err)
	}
	return &sqliteBackend{db: db, path: dsn}, nil
}

func (b *sqliteBackend) Read(key string) ([]byte, error) {
	var doc document
	err := b.db.Where("doc_key = ?", key).First(&doc).Error
	switch {
	case err == nil:
		return doc.Data, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
}

func (b *sqliteBackend) Write(key string, data []byte) error {
	doc := document{Key: key, Data: data, UpdatedAt: time.Now()}
	err := b.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doc_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	b.written.record(b.path)
	b.written.record(b.path + "-wal")
	return nil
}

func (b *sqliteBackend) Has(key string) bool {
	var count int64
	if err := b.db.Model(&document{}).Where("doc_key = ?", key).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

func (b *sqliteBackend) Erase(key string) error {
	return b.db.Where("doc_key = ?", key).Delete(&document{}).Error
}

func (b *sqliteBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (b *sqliteBackend) WatchDir() string { return filepath.Dir(b.path) }

// KeyForPath reports any change to the database file as a change to every
// document; the caller reloads the whole snapshot anyway.
func (b *sqliteBackend) KeyForPath(path string) string {
	base := filepath.Base(b.path)
	name := filepath.Base(path)
	if name == base || name == base+"-wal" {
		return "*"
	}
	return ""
}

func (b *sqliteBackend) IsOwnWrite(path string) bool { return b.written.own(path) }

// ensureDirForSQLite creates the parent directory of a file DSN.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create db dir %q: %w", dir, err)
	}
	return nil
}
