// Package report provides the runner for the completed-work report.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/nova/pkg/app"
	"tableflip.dev/nova/pkg/printers"
)

// Report prints completed notes and focus sessions between Since and Until.
type Report struct {
	App   *app.App
	Since time.Time
	Until time.Time
	Label string
	JSON  bool
}

func (n *Report) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not report, no app")
	}
	result := n.App.Report(n.Since, n.Until)
	pp := printers.PrettyPrint{}
	if n.JSON {
		return pp.JSON(result)
	}
	_, _ = color.New(color.Faint).Fprintf(color.Output, "\nReport · last %s\n", n.Label)
	pp.Report(result)
	_, _ = fmt.Fprintln(color.Output, "")
	return nil
}
