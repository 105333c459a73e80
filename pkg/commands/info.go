package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Where notes are stored and how many there are.",
		Example: `
nova info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				r := info.Info{
					Config: s.Config,
					App:    s.App,
				}
				return r.Do(cmd.Context())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
