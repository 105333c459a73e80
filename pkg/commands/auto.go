package commands

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/commands/options"
	"tableflip.dev/nova/pkg/note"
	"tableflip.dev/nova/pkg/runner/assist"
	"tableflip.dev/nova/pkg/runner/complete"
	"tableflip.dev/nova/pkg/runner/focus"
	"tableflip.dev/nova/pkg/runner/get"
	"tableflip.dev/nova/pkg/runner/remove"
)

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// pickAction is something to do with a picked note.
type pickAction struct {
	Name  string
	Short string
	run   func(ctx context.Context, s *session, id string) error
}

func toggleAction(name, short string, f complete.Flag) pickAction {
	return pickAction{Name: name, Short: short, run: func(ctx context.Context, s *session, id string) error {
		r := complete.Toggle{App: s.App, ID: id, Flag: f}
		return r.Do(ctx)
	}}
}

var pickActions = []pickAction{
	{Name: "show", Short: "print it in full", run: func(ctx context.Context, s *session, id string) error {
		r := get.Show{App: s.App, ID: id}
		return r.Do(ctx)
	}},
	toggleAction("complete", "mark completed or active", complete.Completed),
	toggleAction("pin", "pin or unpin", complete.Pinned),
	toggleAction("archive", "move to or from the vault", complete.Archived),
	toggleAction("trash", "move to or from the trash", complete.Deleted),
	{Name: "suggest", Short: "let the assistant classify it", run: func(ctx context.Context, s *session, id string) error {
		r := assist.Suggest{App: s.App, ID: id}
		return r.Do(ctx)
	}},
	{Name: "focus", Short: "start a Pomodoro on it", run: func(ctx context.Context, s *session, id string) error {
		r := focus.Focus{App: s.App, Task: id}
		return r.Do(ctx)
	}},
	{Name: "rm", Short: "delete forever, trashed notes only", run: func(ctx context.Context, s *session, id string) error {
		co := &options.ConfirmOptions{}
		r := remove.Remove{App: s.App, ID: id, Confirm: co.Confirmer()}
		return r.Do(ctx)
	}},
}

func squash(s string) string {
	return strings.Replace(strings.ToLower(s), " ", "", -1)
}

// pickNote shows a searchable list of notes and returns the chosen one.
func pickNote(cmd *cobra.Command, notes []*note.Note) (*note.Note, error) {
	if len(notes) == 0 {
		return nil, errors.New("no notes to pick from")
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .DisplayTitle | bold }} {{ .Priority | green }}",
		Inactive: "   {{ .DisplayTitle }} {{ .Priority | cyan }}",
		Selected: "{{ .DisplayTitle | bold }}",
		Details: `
--------- Details ----------
{{ .Content }}
`,
	}

	searcher := func(input string, index int) bool {
		n := notes[index]
		haystack := squash(n.DisplayTitle() + n.Content + strings.Join(n.Tags, ""))
		return strings.Contains(haystack, squash(input))
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Notes",
		Items:     notes,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopWriteCloser{cmd.OutOrStdout()},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return nil, err
	}
	return notes[i], nil
}

// pickNext asks what to do with the picked note.
func pickNext(cmd *cobra.Command) (pickAction, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Name | bold }} {{ .Short | green }}",
		Inactive: "   {{ .Name }} {{ .Short | cyan }}",
		Selected: "{{ .Name | bold }}",
	}

	searcher := func(input string, index int) bool {
		return strings.Contains(squash(pickActions[index].Name+pickActions[index].Short), squash(input))
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Action",
		Items:     pickActions,
		Templates: templates,
		Size:      len(pickActions),
		Searcher:  searcher,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopWriteCloser{cmd.OutOrStdout()},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return pickAction{}, err
	}
	return pickActions[i], nil
}

// pick runs the note then action prompts over notes.
func pick(cmd *cobra.Command, s *session, notes []*note.Note) error {
	n, err := pickNote(cmd, notes)
	if err != nil {
		return promptError(err)
	}
	a, err := pickNext(cmd)
	if err != nil {
		return promptError(err)
	}
	return a.run(cmd.Context(), s, n.ID)
}

// promptError treats ctrl-c and ctrl-d as a quiet exit.
func promptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return nil
	}
	return err
}

func addPick(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a note from a searchable list, then what to do with it",
		Example: `
nova pick
nova pick --view trash
nova pick --bucket work
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				q, err := vo.Query(s.App.Buckets())
				if err != nil {
					return err
				}
				return pick(cmd, s, s.App.Query(q))
			})
		},
	}

	options.AddViewArgs(cmd, vo)
	_ = cmd.RegisterFlagCompletionFunc("bucket", bucketCompletions)
	_ = cmd.RegisterFlagCompletionFunc("view", viewCompletions)

	topLevel.AddCommand(cmd)
}
