// Package add provides the runner that creates a note.
package add

import (
	"context"
	"errors"

	"github.com/fatih/color"

	"tableflip.dev/nova/pkg/app"
	"tableflip.dev/nova/pkg/note"
	"tableflip.dev/nova/pkg/printers"
	"tableflip.dev/nova/pkg/view"
)

// Add creates a note in Bucket, lets Fill populate the draft and saves it.
type Add struct {
	App    *app.App
	Bucket string
	Fill   func(d *note.Draft) error
	// Suggest asks the assistant for category, tags and priority before saving.
	Suggest bool
	ShowID  bool
	JSON    bool
}

func (n *Add) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not add, no app")
	}

	d := n.App.Notes.Create(n.Bucket)
	if n.Fill != nil {
		if err := n.Fill(d); err != nil {
			return err
		}
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	if n.Suggest {
		if _, err := n.App.Suggest(ctx, d); err != nil {
			// The note is still saved; only the suggestion is lost.
			_, _ = color.New(color.FgYellow).Fprintf(color.Output, "no suggestion: %v\n", err)
		}
	}
	saved, err := n.App.Notes.Save(d)
	if err != nil {
		return err
	}
	if n.JSON {
		return pp.JSON(saved)
	}

	buckets := n.App.Buckets()
	b, _ := buckets.Get(saved.BucketID)
	pp.Title(printers.BucketLabel(b))
	pp.Notes(buckets, n.App.Query(view.Query{View: view.Bucket, BucketID: saved.BucketID})...)
	return nil
}
