package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/commands/options"
	"tableflip.dev/nova/pkg/runner/complete"
)

type toggleCommand struct {
	use     string
	aliases []string
	short   string
	flag    complete.Flag
}

var toggles = []toggleCommand{
	{use: "complete", aliases: []string{"done", "check"}, short: "Mark a note completed, or active again", flag: complete.Completed},
	{use: "pin", aliases: []string{"unpin"}, short: "Pin a note to the top, or unpin it", flag: complete.Pinned},
	{use: "archive", aliases: []string{"unarchive", "vault"}, short: "Move a note to the vault, or back out of it", flag: complete.Archived},
	{use: "trash", aliases: []string{"restore"}, short: "Move a note to the trash, or restore it", flag: complete.Deleted},
}

func addToggles(topLevel *cobra.Command) {
	for _, t := range toggles {
		addToggle(topLevel, t)
	}
}

func addToggle(topLevel *cobra.Command, t toggleCommand) {
	var id string

	cmd := &cobra.Command{
		Use:     t.use + " <note id>",
		Aliases: t.aliases,
		Short:   t.short,
		Example: `
nova ` + t.use + ` <note id>
`,
		Args:              requireID(&id),
		ValidArgsFunction: noteCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				r := complete.Toggle{
					App:  s.App,
					ID:   id,
					Flag: t.flag,
					JSON: output.JSON,
				}
				return r.Do(cmd.Context())
			})
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
