package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/commands/options"
	"tableflip.dev/nova/pkg/runner/calendar"
)

func addCalendar(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	io := &options.IDOptions{}
	months := 0

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Month grid of the days notes were created",
		Example: `
nova calendar
nova calendar --on 2/14
nova calendar --months -1
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			on, err := oo.GetOn(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			return withSession(func(s *session) error {
				r := calendar.Calendar{
					App:    s.App,
					On:     on,
					Months: months,
					ShowID: io.ShowID,
				}
				return r.Do(cmd.Context())
			})
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().IntVar(&months, "months", 0, "Print only the grid of the month this far from --on, e.g. -1 for the month before.")

	topLevel.AddCommand(cmd)
}
