package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/commands/options"
	"tableflip.dev/nova/pkg/runner/buckets"
)

func addBuckets(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "buckets",
		Aliases: []string{"bucket"},
		Short:   "Buckets with their note counts and progress",
		Example: `
nova buckets
nova buckets --json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				r := buckets.Buckets{
					App:  s.App,
					JSON: output.JSON,
				}
				return r.Do(cmd.Context())
			})
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
