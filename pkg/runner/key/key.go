// Package key provides CLI helpers to display the list legend.
package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/nova/pkg/bucket"
	"tableflip.dev/nova/pkg/note"
	"tableflip.dev/nova/pkg/printers"
)

// Key prints the markers, priorities and bucket colors used in listings.
type Key struct {
	Buckets bucket.Set
}

// Do renders the legend to stdout.
func (k *Key) Do(ctx context.Context) error {
	bold := color.New(color.Bold)
	_, _ = fmt.Fprintln(color.Output, "")

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Marker"), bold.Sprint("Meaning"))
	tbl.AddRow("*", "pinned, listed first")
	tbl.AddRow("x", "completed")
	tbl.AddRow("[1/3]", "checklist progress")
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(color.Output, tbl)
	_, _ = fmt.Fprintln(color.Output, "")

	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Priority"), bold.Sprint("Meaning"))
	meaning := map[note.Priority]string{
		note.High:    "do first",
		note.Medium:  "the default for new notes",
		note.Low:     "when there is time",
		note.Someday: "parked",
	}
	for _, p := range note.Priorities() {
		tbl.AddRow(printers.PriorityLabel(p), meaning[p])
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(color.Output, tbl)
	_, _ = fmt.Fprintln(color.Output, "")

	buckets := k.Buckets
	if len(buckets) == 0 {
		buckets = bucket.Defaults()
	}
	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Bucket"), bold.Sprint("Meaning"))
	for _, b := range buckets {
		tbl.AddRow(printers.BucketLabel(b), b.Description)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(color.Output, tbl)

	fmt.Println("")
	return nil
}
