// Package info provides the runner that describes the environment.
package info

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/nova/pkg/app"
	"tableflip.dev/nova/pkg/store"
	"tableflip.dev/nova/pkg/view"
)

type Info struct {
	Config store.Config
	App    *app.App
}

func (n *Info) Do(ctx context.Context) error {
	if override := os.Getenv("NOVA_CONFIG_PATH"); override != "" {
		fmt.Println("NOVA_CONFIG_PATH found on env, using ", override)
	} else {
		fmt.Println("NOVA_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	tbl := uitable.New()
	tbl.AddRow("path", n.Config.BasePath())
	tbl.AddRow("driver", string(n.Config.Driver()))
	if n.Config.Driver() == store.DriverSQLite {
		tbl.AddRow("sqlite", n.Config.SQLitePath())
	}
	tbl.AddRow("flush", fmt.Sprintf("%s debounce, %s interval", n.Config.FlushDebounce(), n.Config.FlushInterval()))
	tbl.AddRow("log", n.Config.LogFile())
	suggest := "disabled, no api key"
	if n.Config.SuggestAPIKey() != "" {
		suggest = n.Config.SuggestModel()
	}
	tbl.AddRow("suggest", suggest)
	_, _ = fmt.Fprintln(color.Output, tbl)

	if n.App == nil {
		return fmt.Errorf("failed to open the note store")
	}
	c := view.PartitionCounts(n.App.Notes.All())
	fmt.Printf("Notes: %d active, %d archived, %d in trash\n", c.Active, c.Archived, c.Trash)
	fmt.Printf("Buckets: %d\n", len(n.App.Buckets()))
	return nil
}
