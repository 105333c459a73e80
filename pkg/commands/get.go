package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/commands/options"
	"tableflip.dev/nova/pkg/runner/get"
	"tableflip.dev/nova/pkg/view"
)

func addList(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	io := &options.IDOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   "List notes, pinned first",
		Example: `
nova list
nova list --bucket work -p high
nova list --view archived
nova list --view trash --show-id
nova list -s milk
nova list -i
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				q, err := vo.Query(s.App.Buckets())
				if err != nil {
					return err
				}
				if i.Interactive {
					return pick(cmd, s, s.App.Query(q))
				}
				r := get.Get{
					App:    s.App,
					Query:  q,
					ShowID: io.ShowID,
					JSON:   output.JSON,
				}
				return r.Do(cmd.Context())
			})
		},
	}

	options.AddViewArgs(cmd, vo)
	options.AddShowIDArgs(cmd, io)
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("bucket", bucketCompletions)
	_ = cmd.RegisterFlagCompletionFunc("priority", priorityCompletions)
	_ = cmd.RegisterFlagCompletionFunc("view", viewCompletions)

	topLevel.AddCommand(cmd)
}

func addTimeline(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	all := false

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Notes grouped by the day they were created",
		Example: `
nova timeline
nova timeline --bucket ideas
nova timeline --all
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				q, err := vo.Query(s.App.Buckets())
				if err != nil {
					return err
				}
				if all {
					q.View = view.All
					q.BucketID = ""
				}
				r := get.Get{
					App:      s.App,
					Query:    q,
					Timeline: true,
					JSON:     output.JSON,
				}
				return r.Do(cmd.Context())
			})
		},
	}

	options.AddViewArgs(cmd, vo)
	options.AddOutputArg(cmd, output)
	cmd.Flags().BoolVar(&all, "all", false, "Include archived and trashed notes.")
	_ = cmd.RegisterFlagCompletionFunc("bucket", bucketCompletions)

	topLevel.AddCommand(cmd)
}
