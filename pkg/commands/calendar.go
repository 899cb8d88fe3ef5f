package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edc-app/edc/pkg/calendar"
	"github.com/edc-app/edc/pkg/commands/options"
	calrunner "github.com/edc-app/edc/pkg/runner/calendar"
)

func addCalendar(topLevel *cobra.Command) {
	co := &options.CalendarOptions{}
	var view calendar.View

	validArgs := make([]string, 0, len(calendar.Views()))
	for _, v := range calendar.Views() {
		validArgs = append(validArgs, string(v))
	}

	cmd := &cobra.Command{
		Use:     "calendar [view]",
		Aliases: []string{"cal"},
		Short:   "Show a calendar view",
		Long:    "Show the calendar as one of: " + strings.Join(validArgs, ", ") + ". Defaults to month.",
		Example: `
edc calendar
edc calendar week --weeks 2
edc cal agenda --on tomorrow --agenda-days 7
edc calendar day -o json
`,
		ValidArgs: validArgs,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("too many views, pick one")
			}
			var err error
			view, err = calendar.ParseView(strings.Join(args, ""))
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			svc.Settings.Calendar.WeeksToShow = co.Weeks
			svc.Settings.Calendar.AgendaDays = co.AgendaDays

			date, err := co.GetOn(svc.Clock())
			if err != nil {
				return output.HandleError(err)
			}
			c := calrunner.Calendar{
				Service: svc,
				Printer: pp,
				View:    view,
				Date:    date,
			}
			err = c.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddCalendarArgs(cmd, co)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
