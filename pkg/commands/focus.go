package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/runner/focus"
)

func addFocus(topLevel *cobra.Command) {
	task := ""
	label := ""

	cmd := &cobra.Command{
		Use:     "focus",
		Aliases: []string{"timer", "ui"},
		Short:   "Full screen Pomodoro timer and stopwatch",
		Long: `Open the focus screen. Space starts and pauses, 1/2/3 pick the work, short
and long break modes, tab switches to the stopwatch and ? shows every key.
Completed work intervals are logged to the session history.`,
		Example: `
nova focus
nova focus --task 3f2a --label "Deck review"
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				f := focus.Focus{
					App:   s.App,
					Task:  task,
					Label: label,
				}
				return f.Do(cmd.Context())
			})
		},
	}

	cmd.Flags().StringVar(&task, "task", "", "Note id to attach completed sessions to.")
	cmd.Flags().StringVar(&label, "label", "", "Session label, defaults to the mode name.")
	_ = cmd.RegisterFlagCompletionFunc("task", noteCompletions)

	topLevel.AddCommand(cmd)
}
