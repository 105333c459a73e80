package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/timeutil"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// WindowOptions
type WindowOptions struct {
	Last string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVar(&o.Last, "last", timeutil.DefaultWindow,
		"Time window to include, for example 3d or 1w2d.")
}

// Range returns the window ending at now and its canonical label.
func (o *WindowOptions) Range(now time.Time) (time.Time, time.Time, string, error) {
	d, label, err := timeutil.ParseWindow(o.Last)
	if err != nil {
		return time.Time{}, time.Time{}, "", err
	}
	return now.Add(-d), now, label, nil
}

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2024-2-28" or --on="2/28".`)
}

// GetOn parses --on relative to now. A short date without a year is taken
// from the current year.
func (o *OnOptions) GetOn(now time.Time) (time.Time, error) {
	if o.OnString == "" {
		return now, nil
	}
	t, err := time.ParseInLocation(layoutISO, o.OnString, now.Location())
	if err != nil {
		t, err = time.ParseInLocation(layoutISOShort, o.OnString, now.Location())
		if err != nil {
			return time.Time{}, err
		}
		t = t.AddDate(now.Year(), 0, 0)
	}
	return t, nil
}
