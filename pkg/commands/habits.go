package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edc-app/edc/pkg/commands/options"
	"github.com/edc-app/edc/pkg/runner/habits"
)

func addHabits(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "habits",
		Aliases: []string{"habit"},
		Short:   "Track habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addHabitsList(cmd)
	addHabitsCheck(cmd)
	addHabitsAdd(cmd)
	topLevel.AddCommand(cmd)
}

func addHabitsList(parent *cobra.Command) {
	days := 7

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show habits with recent completions",
		Example: `
edc habits list
edc habits ls --days 14
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			l := habits.List{Service: svc, Printer: pp, Days: days}
			err = l.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().IntVar(&days, "days", days, "Number of days to show.")
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addHabitsCheck(parent *cobra.Command) {
	on := &options.OnOptions{}
	value := 1.0

	cmd := &cobra.Command{
		Use:     "check <habit>",
		Aliases: []string{"done"},
		Short:   "Record a habit completion",
		Example: `
edc habits check stretch
edc habits check water --value 6
edc habits check 3 --on yesterday
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a habit name or id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			date, err := on.GetOn(svc.Clock())
			if err != nil {
				return output.HandleError(err)
			}
			c := habits.Check{
				Service: svc,
				Printer: pp,
				Ref:     strings.Join(args, " "),
				Date:    date,
				Value:   value,
			}
			err = c.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, on)
	cmd.Flags().Float64Var(&value, "value", value,
		"Amount done, for count and duration habits.")
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addHabitsAdd(parent *cobra.Command) {
	ho := &options.HabitOptions{}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit",
		Example: `
edc habits add stretch
edc habits add water --type count --target 8 --unit glasses
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			in, err := ho.Input(args)
			if err != nil {
				return output.HandleError(err)
			}
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			a := habits.Add{Service: svc, Printer: pp, Input: in}
			err = a.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddHabitArgs(cmd, ho)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}
