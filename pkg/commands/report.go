package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/commands/options"
	"tableflip.dev/nova/pkg/runner/report"
)

func addReport(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Notes completed and time focused in a window",
		Example: `
nova report
nova report --last 2w
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			since, until, label, err := wo.Range(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			return withSession(func(s *session) error {
				r := report.Report{
					App:   s.App,
					Since: since,
					Until: until,
					Label: label,
					JSON:  output.JSON,
				}
				return r.Do(cmd.Context())
			})
		},
	}

	options.AddWindowArgs(cmd, wo)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
