// Package remove provides the runners that delete notes for good.
package remove

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/nova/pkg/app"
)

// Remove permanently deletes a note that is already in the trash.
type Remove struct {
	App     *app.App
	ID      string
	Confirm app.Confirmer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not remove, no app")
	}
	id, err := n.App.Notes.Resolve(n.ID)
	if err != nil {
		return err
	}
	nt, err := n.App.Notes.Get(id)
	if err != nil {
		return err
	}
	if err := n.App.Notes.PermanentlyRemove(id, n.Confirm); err != nil {
		if errors.Is(err, app.ErrUserCancelled) {
			_, _ = color.New(color.Faint).Fprintln(color.Output, "kept")
			return nil
		}
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "%s deleted forever\n", color.New(color.Bold).Sprint(nt.DisplayTitle()))
	return nil
}

// EmptyTrash permanently deletes everything in the trash.
type EmptyTrash struct {
	App     *app.App
	Confirm app.Confirmer
}

func (n *EmptyTrash) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not empty trash, no app")
	}
	count, err := n.App.Notes.EmptyTrash(n.Confirm)
	if errors.Is(err, app.ErrUserCancelled) {
		_, _ = color.New(color.Faint).Fprintln(color.Output, "kept")
		return nil
	}
	if err != nil {
		return err
	}
	switch count {
	case 0:
		_, _ = color.New(color.Faint, color.Italic).Fprintln(color.Output, "trash is already empty")
	case 1:
		_, _ = fmt.Fprintln(color.Output, "1 note deleted forever")
	default:
		_, _ = fmt.Fprintf(color.Output, "%d notes deleted forever\n", count)
	}
	return nil
}
