package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/nova/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "nova",
		Short: base.Wrap80("Notes, buckets and focus sessions on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	// notes
	addAdd(topLevel)
	addEdit(topLevel)
	addShow(topLevel)
	addList(topLevel)
	addTimeline(topLevel)
	addToggles(topLevel)
	addRemove(topLevel)
	addEmptyTrash(topLevel)
	addMove(topLevel)
	addSuggest(topLevel)
	addPick(topLevel)

	// views
	addBuckets(topLevel)
	addCalendar(topLevel)
	addReport(topLevel)
	addKey(topLevel)
	addExport(topLevel)

	// focus
	addFocus(topLevel)
	addPomo(topLevel)

	// you
	addProfile(topLevel)
	addAccount(topLevel)

	// tooling
	addInfo(topLevel)
	addLorem(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
	addUpgrade(topLevel)
}
