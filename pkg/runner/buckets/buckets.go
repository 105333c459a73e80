// Package buckets provides the bucket overview runner.
package buckets

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/nova/pkg/app"
	"tableflip.dev/nova/pkg/printers"
	"tableflip.dev/nova/pkg/view"
)

// Buckets prints every bucket with its active count and completion.
type Buckets struct {
	App  *app.App
	JSON bool
}

func (b *Buckets) Do(ctx context.Context) error {
	if b.App == nil {
		return errors.New("can not list buckets, no app")
	}
	pp := printers.PrettyPrint{}
	summaries := b.App.Summaries()
	if b.JSON {
		return pp.JSON(summaries)
	}
	_, _ = fmt.Fprintln(color.Output, "")
	pp.Title("Buckets")
	pp.Buckets(summaries)
	pp.Counts(view.PartitionCounts(b.App.Notes.All()))
	return nil
}
