package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/commands/options"
	"tableflip.dev/nova/pkg/note"
	"tableflip.dev/nova/pkg/runner/add"
	"tableflip.dev/nova/pkg/runner/assist"
	"tableflip.dev/nova/pkg/runner/get"
)

func requireID(id *string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("requires a note id")
		}
		*id = args[0]
		return nil
	}
}

func addEdit(topLevel *cobra.Command) {
	no := &options.NoteOptions{}
	var id string

	cmd := &cobra.Command{
		Use:   "edit <note id>",
		Short: "Change a note",
		Long: `Change a note. Only the flags given are applied; everything else is kept.
The id may be any unique prefix shown by --show-id.`,
		Example: `
nova edit 3f2a --title "Grocery list" --tag Food
nova edit 3f2a --check 1b9c --link https://example.com
nova edit 3f2a --unlink 2 --untag Old
`,
		Args:              requireID(&id),
		ValidArgsFunction: noteCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				r := add.Edit{
					App: s.App,
					ID:  id,
					Fill: func(d *note.Draft) error {
						return no.Apply(cmd, d, s.App.Buckets())
					},
					JSON: output.JSON,
				}
				return r.Do(cmd.Context())
			})
		},
	}

	options.AddNoteArgs(cmd, no)
	options.AddOutputArg(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("bucket", bucketCompletions)
	_ = cmd.RegisterFlagCompletionFunc("priority", priorityCompletions)

	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command) {
	var id string

	cmd := &cobra.Command{
		Use:     "show <note id>",
		Aliases: []string{"cat"},
		Short:   "Print a note in full",
		Example: `
nova show 3f2a
`,
		Args:              requireID(&id),
		ValidArgsFunction: noteCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				r := get.Show{
					App:  s.App,
					ID:   id,
					JSON: output.JSON,
				}
				return r.Do(cmd.Context())
			})
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addSuggest(topLevel *cobra.Command) {
	var id string

	cmd := &cobra.Command{
		Use:   "suggest <note id>",
		Short: "Let the assistant pick a category, tags and priority for a note",
		Long: `Send the note body to the configured model and merge the answer into the
note. Requires suggest.apiKey in .nova.yaml or GEMINI_API_KEY.`,
		Example: `
nova suggest 3f2a
`,
		Args:              requireID(&id),
		ValidArgsFunction: noteCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				r := assist.Suggest{
					App: s.App,
					ID:  id,
				}
				return r.Do(cmd.Context())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
