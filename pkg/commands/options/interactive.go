package options

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/app"
	"tableflip.dev/nova/pkg/note"
)

// InteractiveOptions
type InteractiveOptions struct {
	Interactive bool
}

func InteractiveArgs(cmd *cobra.Command, o *InteractiveOptions) {
	cmd.Flags().BoolVarP(&o.Interactive, "interactive", "i", false,
		"Pick a note from the result and choose what to do with it.")
}

// ConfirmOptions gate destructive commands.
type ConfirmOptions struct {
	Yes bool
}

func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Do not ask for confirmation.")
}

var errNotTerminal = errors.New("options: confirmation needs a terminal, pass --yes")

// Confirmer asks on the terminal unless --yes was given.
func (o *ConfirmOptions) Confirmer() app.Confirmer {
	if o.Yes {
		return app.Always
	}
	return app.ConfirmFunc(func(n *note.Note) (bool, error) {
		if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return false, errNotTerminal
		}
		label := "Empty the trash? This cannot be undone"
		if n != nil {
			label = fmt.Sprintf("Permanently delete %q? This cannot be undone", n.DisplayTitle())
		}
		prompt := promptui.Prompt{
			Label:     label,
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			if errors.Is(err, promptui.ErrAbort) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	})
}
