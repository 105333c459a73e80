// Package complete provides the runner for the per-note lifecycle toggles.
package complete

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/nova/pkg/app"
	"tableflip.dev/nova/pkg/note"
	"tableflip.dev/nova/pkg/printers"
)

// Flag names the boolean a Toggle flips.
type Flag string

const (
	Completed Flag = "completed"
	Pinned    Flag = "pinned"
	Archived  Flag = "archived"
	Deleted   Flag = "deleted"
)

// Toggle flips one lifecycle flag on the note with ID.
type Toggle struct {
	App  *app.App
	ID   string
	Flag Flag
	JSON bool
}

// Do executes the toggle and prints the note's new state.
func (n *Toggle) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not toggle, no app")
	}
	id, err := n.App.Notes.Resolve(n.ID)
	if err != nil {
		return err
	}

	var fn func(string) (*note.Note, error)
	switch n.Flag {
	case Completed:
		fn = n.App.Notes.ToggleCompleted
	case Pinned:
		fn = n.App.Notes.TogglePinned
	case Archived:
		fn = n.App.Notes.ToggleArchived
	case Deleted:
		fn = n.App.Notes.ToggleDeleted
	default:
		return fmt.Errorf("unknown flag %q", n.Flag)
	}
	nt, err := fn(id)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	if n.JSON {
		return pp.JSON(nt)
	}
	_, _ = fmt.Fprintf(color.Output, "%s %s\n", color.New(color.Bold).Sprint(nt.DisplayTitle()), describe(n.Flag, nt))
	return nil
}

func describe(f Flag, n *note.Note) string {
	on := map[Flag]bool{
		Completed: n.IsCompleted,
		Pinned:    n.IsPinned,
		Archived:  n.IsArchived,
		Deleted:   n.IsDeleted,
	}[f]
	switch f {
	case Completed:
		if on {
			return "completed"
		}
		return "reopened"
	case Pinned:
		if on {
			return "pinned"
		}
		return "unpinned"
	case Archived:
		if on {
			return "moved to the vault"
		}
		return "restored from the vault"
	default:
		if on {
			return "moved to the trash"
		}
		return "restored from the trash"
	}
}
