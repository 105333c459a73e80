// Package get provides the runners that list and show notes.
package get

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/nova/pkg/app"
	"tableflip.dev/nova/pkg/printers"
	"tableflip.dev/nova/pkg/view"
)

// Get lists the notes matching Query.
type Get struct {
	App    *app.App
	Query  view.Query
	ShowID bool
	// Timeline groups the result by creation day with body previews.
	Timeline bool
	JSON     bool
}

func (n *Get) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not get, no app")
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	buckets := n.App.Buckets()

	if n.Timeline {
		groups := n.App.Timeline(n.Query)
		if n.JSON {
			return pp.JSON(groups)
		}
		_, _ = fmt.Fprintln(color.Output, "")
		pp.Timeline(buckets, groups)
		return nil
	}

	notes := n.App.Query(n.Query)
	if n.JSON {
		return pp.JSON(notes)
	}
	_, _ = fmt.Fprintln(color.Output, "")
	pp.TitleWithCount(title(n.Query, n.App), len(notes))
	pp.Notes(buckets, notes...)
	return nil
}

func title(q view.Query, a *app.App) string {
	var t string
	switch q.View {
	case view.Vault:
		t = "Vault"
	case view.Trash:
		t = "Trash"
	case view.All:
		t = "All notes"
	case view.Bucket:
		t = "Bucket"
		if b, ok := a.Buckets().Get(q.BucketID); ok {
			t = b.Name
		}
	default:
		t = "Notes"
	}
	if q.Search != "" {
		t += fmt.Sprintf(" matching %q", q.Search)
	}
	if q.Priority != "" {
		t += " · " + strings.ToLower(q.Priority)
	}
	return t
}

// Show prints one note in full.
type Show struct {
	App  *app.App
	ID   string
	JSON bool
}

func (n *Show) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not show, no app")
	}
	id, err := n.App.Notes.Resolve(n.ID)
	if err != nil {
		return err
	}
	nt, err := n.App.Notes.Get(id)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true}
	if n.JSON {
		return pp.JSON(nt)
	}
	return pp.Note(n.App.Buckets(), nt)
}
