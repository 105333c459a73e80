package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/bucket"
	"tableflip.dev/nova/pkg/note"
	"tableflip.dev/nova/pkg/store"
	"tableflip.dev/nova/pkg/view"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(nova completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(nova completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// noteCompletions offers ids of active notes with their titles. It reads the
// documents directly so completing never starts the flusher.
func noteCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	b, err := store.Open(cfg)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer func() { _ = b.Close() }()
	data, err := b.Read(store.KeyNotes)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	notes, err := store.DecodeNotes(data)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, n := range view.Sort(view.Select(notes, view.All, "")) {
		if strings.HasPrefix(n.ID, toComplete) {
			out = append(out, n.ID+"\t"+n.DisplayTitle())
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func bucketCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, b := range bucket.Defaults() {
		if strings.HasPrefix(b.ID, strings.ToLower(toComplete)) {
			out = append(out, b.ID+"\t"+b.Name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func priorityCompletions(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	out := []string{note.PriorityAll}
	for _, p := range note.Priorities() {
		out = append(out, p.String())
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func viewCompletions(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{
		string(view.Notes), string(view.Vault), string(view.Trash), string(view.Bucket), string(view.All),
	}, cobra.ShellCompDirectiveNoFileComp
}
