package app

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/nova/pkg/errs"
)

// Export document names, in archive order.
const (
	ExportNotes   = "notes.json"
	ExportBuckets = "buckets.json"
	ExportProfile = "profile.json"
)

// ExportName is the archive file name for day t.
func ExportName(t time.Time) string {
	return fmt.Sprintf("Nova_Export_%s.zip", t.Format("20060102"))
}

// ExportFile is one document in the archive.
type ExportFile struct {
	Name string
	Data []byte
}

// ExportFiles renders the notes, buckets and profile as indented JSON. The
// output depends only on the current state.
func (a *App) ExportFiles() ([]ExportFile, error) {
	snap := a.Snapshot()
	docs := []struct {
		name string
		v    interface{}
	}{
		{ExportNotes, snap.Notes},
		{ExportBuckets, snap.Buckets},
		{ExportProfile, snap.Profile},
	}
	out := make([]ExportFile, 0, len(docs))
	for _, d := range docs {
		data, err := json.MarshalIndent(d.v, "", "  ")
		if err != nil {
			return nil, errs.Storage("export", err)
		}
		out = append(out, ExportFile{Name: d.name, Data: data})
	}
	return out, nil
}

// WriteExport streams the zip archive to w.
func (a *App) WriteExport(w io.Writer) error {
	files, err := a.ExportFiles()
	if err != nil {
		return err
	}
	modified := a.now()
	zw := zip.NewWriter(w)
	for _, f := range files {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate, Modified: modified})
		if err != nil {
			return errs.Storage("export", err)
		}
		if _, err := fw.Write(f.Data); err != nil {
			return errs.Storage("export", err)
		}
	}
	return errs.Storage("export", zw.Close())
}

// Export writes the archive into dir and returns its path. Only one export
// runs at a time.
func (a *App) Export(ctx context.Context, dir string) (string, error) {
	done, err := a.begin(&a.exporting)
	if err != nil {
		return "", err
	}
	defer done()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, ExportName(a.now()))
	f, err := os.Create(path)
	if err != nil {
		return "", errs.Storage("export", err)
	}
	if err := a.WriteExport(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", errs.Storage("export", err)
	}
	a.log.Info("exported", zap.String("path", path))
	return path, nil
}
