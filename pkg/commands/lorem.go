package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/runner/lorem"
)

func addLorem(topLevel *cobra.Command) {
	count := 10
	days := 30
	var seed int64

	cmd := &cobra.Command{
		Use:    "lorem",
		Short:  "Fill the notebook with generated notes",
		Hidden: true,
		Example: `
nova lorem
nova lorem --count 50 --days 90 --seed 7
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				r := lorem.Lorem{
					App:   s.App,
					Count: count,
					Days:  days,
					Seed:  seed,
				}
				return r.Do(cmd.Context())
			})
		},
	}

	cmd.Flags().IntVar(&count, "count", 10, "Number of notes to create.")
	cmd.Flags().IntVar(&days, "days", 30, "Spread creation times over this many past days.")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for repeatable output; 0 uses the clock.")

	topLevel.AddCommand(cmd)
}
