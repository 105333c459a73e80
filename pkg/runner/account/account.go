// Package account provides runners for the profile and the cloud account.
package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/nova/pkg/app"
	"tableflip.dev/nova/pkg/printers"
)

// Action is one of the account commands.
type Action string

const (
	Status Action = "status"
	Login  Action = "login"
	Logout Action = "logout"
	Sync   Action = "sync"
)

// Account runs Action against the linked cloud account.
type Account struct {
	App    *app.App
	Action Action
}

func (n *Account) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not reach account, no app")
	}
	pp := printers.PrettyPrint{}
	switch n.Action {
	case Login:
		if _, err := n.App.Login(ctx); err != nil {
			return err
		}
	case Logout:
		if !n.App.Logout() {
			_, _ = color.New(color.Faint).Fprintln(color.Output, "not logged in")
			return nil
		}
	case Sync:
		synced, err := n.App.Sync(ctx)
		if err != nil {
			return err
		}
		if !synced && n.App.Profile.Get().Account == nil {
			return errors.New("not logged in, run nova account login")
		}
	case Status, "":
	default:
		return fmt.Errorf("unknown account action %q", n.Action)
	}
	pp.Account(n.App.Profile.Get().Account)
	return nil
}
