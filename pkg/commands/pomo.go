package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/commands/options"
	"tableflip.dev/nova/pkg/runner/pomo"
	"tableflip.dev/nova/pkg/timer"
)

func addPomo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "pomo",
		Aliases: []string{"pomodoro"},
		Short:   "Pomodoro history and settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addPomoHistory(cmd)
	addPomoSettings(cmd)

	topLevel.AddCommand(cmd)
}

func addPomoHistory(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"log"},
		Short:   "Completed sessions, most recent first",
		Example: `
nova pomo history
nova pomo history --last 1w
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			since, _, label, err := wo.Range(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			return withSession(func(s *session) error {
				r := pomo.History{
					App:   s.App,
					Since: since,
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

func addPomoSettings(topLevel *cobra.Command) {
	var work, short, long int

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the interval lengths in minutes",
		Long: `Show or change the interval lengths. Changing a duration resets the
countdown of the current mode.`,
		Example: `
nova pomo settings
nova pomo settings --work 50 --short 10
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			set := map[timer.Mode]int{}
			if cmd.Flags().Changed("work") {
				set[timer.Work] = work
			}
			if cmd.Flags().Changed("short") {
				set[timer.Short] = short
			}
			if cmd.Flags().Changed("long") {
				set[timer.Long] = long
			}
			return withSession(func(s *session) error {
				r := pomo.Settings{
					App: s.App,
					Set: set,
				}
				return r.Do(cmd.Context())
			})
		},
	}

	cmd.Flags().IntVar(&work, "work", 25, "Work interval in minutes.")
	cmd.Flags().IntVar(&short, "short", 5, "Short break in minutes.")
	cmd.Flags().IntVar(&long, "long", 15, "Long break in minutes.")

	topLevel.AddCommand(cmd)
}
