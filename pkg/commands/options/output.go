package options

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/errs"
)

// OutputOptions selects between the colored tables and JSON, for results and
// for errors alike.
type OutputOptions struct {
	JSON bool
	// Out overrides color.Output.
	Out io.Writer
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

func (o *OutputOptions) out() io.Writer {
	if o.Out == nil {
		return color.Output
	}
	return o.Out
}

// HandleError prints err as {"error": ..., "kind": ...} in JSON mode and
// swallows it, so scripts read one document from stdout. Otherwise err is
// returned to cobra unchanged.
func (o *OutputOptions) HandleError(err error) error {
	if !o.JSON || err == nil {
		return err
	}
	out := map[string]string{
		"error": err.Error(),
	}
	var e *errs.Error
	if errors.As(err, &e) {
		out["kind"] = string(e.Kind)
	}
	b, merr := json.Marshal(out)
	if merr != nil {
		return merr
	}
	_, _ = fmt.Fprintln(o.out(), string(b))
	return nil
}
