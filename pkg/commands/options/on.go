package options

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/edc-app/edc/pkg/timeutil"
)

const layoutShort = "1/2"

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on=2024-06-18, --on=6/18 or --on=tomorrow.`)
}

// GetOn resolves the flag against now. An empty flag means today.
func (o *OnOptions) GetOn(now time.Time) (time.Time, error) {
	return ParseDay(o.OnString, now)
}

// ParseDay accepts everything timeutil.ParseDate does plus month/day.
func ParseDay(raw string, now time.Time) (time.Time, error) {
	t, err := timeutil.ParseDate(raw, now)
	if err == nil {
		return t, nil
	}
	short, serr := time.ParseInLocation(layoutShort, raw, now.Location())
	if serr != nil {
		return time.Time{}, err
	}
	t = time.Date(now.Year(), short.Month(), short.Day(), 0, 0, 0, 0, now.Location())
	// 1/3 said on 12/5 means next year, not eleven months ago.
	if t.Before(timeutil.StartOfDay(now)) {
		t = t.AddDate(1, 0, 0)
	}
	return t, nil
}
