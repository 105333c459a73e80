// Package assist provides the runner that applies an AI suggestion to a
// stored note.
package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/nova/pkg/app"
	"tableflip.dev/nova/pkg/printers"
)

// Suggest classifies the note with ID and saves the merged result.
type Suggest struct {
	App *app.App
	ID  string
}

func (n *Suggest) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not suggest, no app")
	}
	id, err := n.App.Notes.Resolve(n.ID)
	if err != nil {
		return err
	}
	nt, applied, err := n.App.SuggestNote(ctx, id)
	if err != nil {
		return err
	}
	if !applied {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(color.Output, "no suggestion, the note body is empty or no api key is configured")
		return nil
	}
	_, _ = fmt.Fprintf(color.Output, "%s  %s  %s  %s\n",
		color.New(color.Bold).Sprint(nt.DisplayTitle()),
		nt.Category,
		printers.PriorityLabel(nt.Priority),
		color.New(color.Faint).Sprint("#"+strings.Join(nt.Tags, " #")),
	)
	return nil
}
