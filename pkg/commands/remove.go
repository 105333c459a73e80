package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/commands/options"
	"tableflip.dev/nova/pkg/runner/remove"
)

func addRemove(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}
	var id string

	cmd := &cobra.Command{
		Use:     "rm <note id>",
		Aliases: []string{"delete"},
		Short:   "Delete a trashed note forever",
		Long: `Delete a note forever. Only notes already in the trash can be removed;
use "nova trash" first. Asks for confirmation unless --yes is given.`,
		Example: `
nova rm 3f2a
nova rm 3f2a --yes
`,
		Args:              requireID(&id),
		ValidArgsFunction: noteCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				r := remove.Remove{
					App:     s.App,
					ID:      id,
					Confirm: co.Confirmer(),
				}
				return r.Do(cmd.Context())
			})
		},
	}

	options.AddConfirmArgs(cmd, co)
	topLevel.AddCommand(cmd)
}

func addEmptyTrash(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "empty-trash",
		Short: "Delete everything in the trash forever",
		Example: `
nova empty-trash
nova empty-trash -y
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				r := remove.EmptyTrash{
					App:     s.App,
					Confirm: co.Confirmer(),
				}
				return r.Do(cmd.Context())
			})
		},
	}

	options.AddConfirmArgs(cmd, co)
	topLevel.AddCommand(cmd)
}
