package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/commands/options"
	"tableflip.dev/nova/pkg/note"
	"tableflip.dev/nova/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	no := &options.NoteOptions{}
	io := &options.IDOptions{}
	suggest := false

	cmd := &cobra.Command{
		Use:     "add [content]",
		Aliases: []string{"new"},
		Short:   "Add a note",
		Example: `
nova add --title "Grocery list" Milk, eggs, bread
nova add -t "Launch plan" --bucket work -p high --tag Q3 --subtask "draft deck"
nova add --suggest Read the paper on transformers before Friday
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				no.SetContent(strings.Join(args, " "))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				r := add.Add{
					App: s.App,
					Fill: func(d *note.Draft) error {
						return no.Apply(cmd, d, s.App.Buckets())
					},
					Suggest: suggest,
					ShowID:  io.ShowID,
					JSON:    output.JSON,
				}
				return r.Do(cmd.Context())
			})
		},
	}

	options.AddNoteArgs(cmd, no)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	cmd.Flags().BoolVar(&suggest, "suggest", false, "Ask the assistant for category, tags and priority before saving.")
	_ = cmd.RegisterFlagCompletionFunc("bucket", bucketCompletions)
	_ = cmd.RegisterFlagCompletionFunc("priority", priorityCompletions)

	topLevel.AddCommand(cmd)
}
