package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/edc-app/edc/pkg/commands/options"
	"github.com/edc-app/edc/pkg/runner/event"
)

func addEvent(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"events"},
		Short:   "Add or remove calendar events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEventAdd(cmd)
	addEventRemove(cmd)
	topLevel.AddCommand(cmd)
}

func addEventAdd(parent *cobra.Command) {
	eo := &options.EventOptions{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an event",
		Example: `
edc event add dentist --start "2024-06-20 14:00" --location "Main St"
edc event add vacation --start 2024-07-01 --end 2024-07-05
edc event add standup --start "2024-06-17 09:30" --end "2024-06-17 09:45" --repeat "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			in, err := eo.Input(args, svc.Clock())
			if err != nil {
				return output.HandleError(err)
			}
			a := event.Add{Service: svc, Printer: pp, Input: in}
			err = a.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddEventArgs(cmd, eo)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addEventRemove(parent *cobra.Command) {
	var id int64

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete an event",
		Example: `
edc event rm 12
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires exactly one event id")
			}
			var err error
			id, err = parseID(args[0])
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			r := event.Remove{Service: svc, Printer: pp, ID: id}
			err = r.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}
