package add

import (
	"context"
	"errors"

	"tableflip.dev/nova/pkg/app"
	"tableflip.dev/nova/pkg/note"
	"tableflip.dev/nova/pkg/printers"
)

// Edit opens the note with ID as a draft, applies Fill and saves it.
type Edit struct {
	App  *app.App
	ID   string
	Fill func(d *note.Draft) error
	JSON bool
}

func (n *Edit) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not edit, no app")
	}
	id, err := n.App.Notes.Resolve(n.ID)
	if err != nil {
		return err
	}
	d, err := n.App.Notes.Edit(id)
	if err != nil {
		return err
	}
	if n.Fill != nil {
		if err := n.Fill(d); err != nil {
			return err
		}
	}
	saved, err := n.App.Notes.Save(d)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true}
	if n.JSON {
		return pp.JSON(saved)
	}
	return pp.Note(n.App.Buckets(), saved)
}
