package commands

import (
	"context"
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/edc-app/edc/pkg/commands/options"
	"github.com/edc-app/edc/pkg/runner/mood"
)

func addMood(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Log and review moods",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addMoodLog(cmd)
	addMoodList(cmd)
	topLevel.AddCommand(cmd)
}

func addMoodLog(parent *cobra.Command) {
	mo := &options.MoodOptions{}
	var score int

	cmd := &cobra.Command{
		Use:   "log <1-5>",
		Short: "Log a mood from 1 (low) to 5 (great)",
		Example: `
edc mood log 4
edc mood log 2 --energy 1 --tag work,sleep --notes "long day"
edc mood log 3 --on yesterday
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a mood score")
			}
			var err error
			if score, err = strconv.Atoi(args[0]); err != nil {
				return errors.New("mood must be a number from 1 to 5")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			in, err := mo.Input(score, svc.Clock())
			if err != nil {
				return output.HandleError(err)
			}
			l := mood.Log{Service: svc, Printer: pp, Input: in}
			err = l.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddMoodArgs(cmd, mo)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addMoodList(parent *cobra.Command) {
	days := 14

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show recent mood entries",
		Example: `
edc mood list
edc mood ls --days 30 -o json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			l := mood.List{Service: svc, Printer: pp, Days: days}
			err = l.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().IntVar(&days, "days", days, "Number of days to show.")
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}
