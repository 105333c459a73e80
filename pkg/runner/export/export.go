// Package export provides the runner that writes the backup archive.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/nova/pkg/app"
)

// Export writes notes, buckets and profile as a dated zip into Dir.
type Export struct {
	App *app.App
	Dir string
}

func (n *Export) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not export, no app")
	}
	dir := n.Dir
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			return err
		}
	}
	path, err := n.App.Export(ctx, dir)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "exported to %s\n", color.New(color.Bold).Sprint(path))
	return nil
}
