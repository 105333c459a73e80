package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/commands/options"
	"tableflip.dev/nova/pkg/runner/move"
)

func addMove(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	io := &options.IDOptions{}
	var id, onto string

	cmd := &cobra.Command{
		Use:     "move <note id> --onto <note id>",
		Aliases: []string{"mv"},
		Short:   "Reorder: put a note where another note is",
		Long: `Reorder notes by hand. The note takes the position of the --onto note and
everything in between shifts by one. Pinned notes still list first.`,
		Example: `
nova move 3f2a --onto 91bc
nova move 3f2a --onto 91bc --bucket work --show-id
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a note id")
			}
			if onto == "" {
				return errors.New("requires --onto")
			}
			id = args[0]
			return nil
		},
		ValidArgsFunction: noteCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				q, err := vo.Query(s.App.Buckets())
				if err != nil {
					return err
				}
				r := move.Move{
					App:    s.App,
					ID:     id,
					Onto:   onto,
					Query:  q,
					ShowID: io.ShowID,
				}
				return r.Do(cmd.Context())
			})
		},
	}

	cmd.Flags().StringVar(&onto, "onto", "", "Note whose position to take.")
	options.AddViewArgs(cmd, vo)
	options.AddShowIDArgs(cmd, io)
	_ = cmd.RegisterFlagCompletionFunc("onto", noteCompletions)
	_ = cmd.RegisterFlagCompletionFunc("bucket", bucketCompletions)

	topLevel.AddCommand(cmd)
}
