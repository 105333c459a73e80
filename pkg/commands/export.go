package commands

import (
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	dir := ""

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every note, bucket and setting to a zip archive",
		Example: `
nova export
nova export --dir ~/backups
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			target, err := homedir.Expand(dir)
			if err != nil {
				return output.HandleError(err)
			}
			return withSession(func(s *session) error {
				r := export.Export{
					App: s.App,
					Dir: target,
				}
				return r.Do(cmd.Context())
			})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory for the archive. Defaults to the working directory.")
	topLevel.AddCommand(cmd)
}
