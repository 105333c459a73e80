package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tableflip.dev/nova/pkg/cloud"
	"tableflip.dev/nova/pkg/note"
	"tableflip.dev/nova/pkg/profile"
)

var errNoCloud = errors.New("app: no cloud service configured")

// Suggest asks the assistant about the draft body and merges the answer into
// d. It reports whether anything was applied. Service failures leave d
// unchanged and are returned for display only.
func (a *App) Suggest(ctx context.Context, d *note.Draft) (bool, error) {
	if a.suggester == nil || d == nil {
		return false, nil
	}
	done, err := a.begin(&a.suggesting)
	if err != nil {
		return false, err
	}
	defer done()

	s, err := a.suggester.Suggest(ctx, d.Content)
	if err != nil {
		a.log.Warn("no suggestion available", zap.Error(err))
		return false, err
	}
	if s == nil {
		return false, nil
	}
	d.ApplySuggestion(s)
	return true, nil
}

// SuggestNote runs Suggest against a stored note and saves the result.
func (a *App) SuggestNote(ctx context.Context, id string) (*note.Note, bool, error) {
	d, err := a.Notes.Edit(id)
	if err != nil {
		return nil, false, err
	}
	applied, err := a.Suggest(ctx, d)
	if err != nil || !applied {
		n, gerr := a.Notes.Get(id)
		if gerr != nil {
			return nil, false, gerr
		}
		return n, false, err
	}
	n, err := a.Notes.Save(d)
	if err != nil {
		return nil, false, err
	}
	return n, true, nil
}

// Login links a cloud account and adopts its display name.
func (a *App) Login(ctx context.Context) (profile.CloudAccount, error) {
	if a.cloud == nil {
		return profile.CloudAccount{}, errNoCloud
	}
	acct, err := a.cloud.Login(ctx)
	if err != nil {
		a.log.Warn("login failed", zap.Error(err))
		return profile.CloudAccount{}, err
	}
	a.Profile.SetName(cloud.DisplayName)
	a.Profile.Link(acct)
	return acct, nil
}

// Logout unlinks the cloud account. It reports false when already logged out.
func (a *App) Logout() bool {
	return a.Profile.Unlink()
}

// Sync pushes to the cloud account and stamps lastSyncedAt on success. It is
// a no-op when logged out. On failure the previous timestamp is kept.
func (a *App) Sync(ctx context.Context) (bool, error) {
	acct := a.Profile.Get().Account
	if acct == nil || a.cloud == nil {
		return false, nil
	}
	done, err := a.begin(&a.syncing)
	if err != nil {
		return false, err
	}
	defer done()

	at, err := a.cloud.Sync(ctx, *acct)
	if err != nil {
		a.log.Warn("sync still pending", zap.Error(err))
		return false, err
	}
	return a.Profile.MarkSynced(at), nil
}
