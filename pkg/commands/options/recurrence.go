package options

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/edc-app/edc/pkg/recurrence"
	"github.com/edc-app/edc/pkg/timeutil"
)

// RuleOptions
type RuleOptions struct {
	Every      string
	Interval   int
	Days       []string
	DayOfMonth int
	Month      int
	Count      int
	Until      string
	Except     []string
}

func AddRuleArgs(cmd *cobra.Command, o *RuleOptions) {
	cmd.Flags().StringVar(&o.Every, "every", "",
		"Frequency, one of daily, weekly, monthly or yearly.")
	cmd.Flags().IntVar(&o.Interval, "interval", 1,
		"Repeat every n periods.")
	cmd.Flags().StringSliceVar(&o.Days, "days", nil,
		"Weekdays for weekly rules, example: --days=mon,wed.")
	cmd.Flags().IntVar(&o.DayOfMonth, "day-of-month", 0,
		"Day of the month for monthly and yearly rules.")
	cmd.Flags().IntVar(&o.Month, "month", 0,
		"Month (1-12) for yearly rules.")
	cmd.Flags().IntVar(&o.Count, "times", 0,
		"End after this many occurrences.")
	cmd.Flags().StringVar(&o.Until, "until", "",
		"End on this date.")
	cmd.Flags().StringSliceVar(&o.Except, "except", nil,
		"Dates to skip.")
}

// Rule parses args as rule text when given, otherwise builds the rule from
// the flags.
func (o *RuleOptions) Rule(args []string, now time.Time) (recurrence.Rule, error) {
	if len(args) > 0 {
		return recurrence.Parse(strings.Join(args, " "))
	}
	if o.Every == "" {
		return recurrence.Rule{}, errors.New("requires a rule or --every")
	}
	freq, err := recurrence.ParseFrequency(o.Every)
	if err != nil {
		return recurrence.Rule{}, err
	}
	r := recurrence.Rule{
		Frequency:   freq,
		Interval:    o.Interval,
		DayOfMonth:  o.DayOfMonth,
		MonthOfYear: time.Month(o.Month),
		End:         recurrence.End{Type: recurrence.EndNever},
	}
	for _, d := range o.Days {
		wd, err := timeutil.ParseWeekday(d)
		if err != nil {
			return r, err
		}
		r.DaysOfWeek = append(r.DaysOfWeek, wd)
	}
	switch {
	case o.Count > 0:
		r.End = recurrence.End{Type: recurrence.EndAfter, Count: o.Count}
	case o.Until != "":
		until, err := ParseDay(o.Until, now)
		if err != nil {
			return r, err
		}
		r.End = recurrence.End{Type: recurrence.EndOn, Until: until}
	}
	for _, raw := range o.Except {
		d, err := ParseDay(raw, now)
		if err != nil {
			return r, err
		}
		r.Exceptions = append(r.Exceptions, timeutil.DateKey(d))
	}
	return r, nil
}
