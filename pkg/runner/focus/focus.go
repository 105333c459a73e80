package focus

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/nova/pkg/app"
)

// Focus runs the timer screen until the user quits. A note id attaches the
// session to that note so history records its title.
type Focus struct {
	App   *app.App
	Task  string
	Label string
}

func (f *Focus) Do(ctx context.Context) error {
	if f.App == nil {
		return errors.New("can not focus, no app")
	}
	if f.Task != "" {
		id, err := f.App.Notes.Resolve(f.Task)
		if err != nil {
			return err
		}
		n, err := f.App.Notes.Get(id)
		if err != nil {
			return err
		}
		f.App.Timer.SetTask(n.ID, n.DisplayTitle())
	}
	if f.Label != "" {
		f.App.Timer.SetLabel(f.Label)
	}

	// Notes edited from another shell are picked up while the timer runs.
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := f.App.Watch(watchCtx, nil); err != nil {
		return err
	}

	p := tea.NewProgram(New(f.App.Timer), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
