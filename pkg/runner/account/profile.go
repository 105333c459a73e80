package account

import (
	"context"
	"errors"

	"tableflip.dev/nova/pkg/app"
	"tableflip.dev/nova/pkg/printers"
)

// Profile prints the profile after applying Edit, if set.
type Profile struct {
	App  *app.App
	Edit func(a *app.App) error
	JSON bool
}

func (n *Profile) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not open profile, no app")
	}
	if n.Edit != nil {
		if err := n.Edit(n.App); err != nil {
			return err
		}
	}
	pp := printers.PrettyPrint{}
	p := n.App.Profile.Get()
	if n.JSON {
		return pp.JSON(p)
	}
	pp.Profile(p)
	return nil
}
