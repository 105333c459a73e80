package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Legend for markers, priorities and bucket colors",
		Example: `
nova key
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(func(s *session) error {
				k := key.Key{
					Buckets: s.App.Buckets(),
				}
				return k.Do(cmd.Context())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
