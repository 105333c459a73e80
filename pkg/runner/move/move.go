// Package move provides the runner for manual reordering.
package move

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/nova/pkg/app"
	"tableflip.dev/nova/pkg/printers"
	"tableflip.dev/nova/pkg/view"
)

// Move drops the note with ID onto the position of the note with Onto, the
// same way dragging one card over another does.
type Move struct {
	App    *app.App
	ID     string
	Onto   string
	Query  view.Query
	ShowID bool
}

func (n *Move) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not move, no app")
	}
	dragged, err := n.App.Notes.Resolve(n.ID)
	if err != nil {
		return fmt.Errorf("note: %w", err)
	}
	target, err := n.App.Notes.Resolve(n.Onto)
	if err != nil {
		return fmt.Errorf("onto: %w", err)
	}

	drag := app.NewDragSession(n.App.Notes)
	drag.Start(dragged)
	drag.Over(target)
	drag.End()

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	notes := n.App.Query(n.Query)
	pp.TitleWithCount("Notes", len(notes))
	pp.Notes(n.App.Buckets(), notes...)
	return nil
}
