package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/edc-app/edc/pkg/commands/options"
	"github.com/edc-app/edc/pkg/runner/analytics"
	"github.com/edc-app/edc/pkg/timeutil"
)

func addAnalytics(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	window := ""

	cmd := &cobra.Command{
		Use:     "analytics",
		Aliases: []string{"stats"},
		Short:   "Summarize productivity over a window",
		Long: base.Wrap80("Completion rate, habit rate, average mood, daily scores and " +
			"habit streaks for the window ending on --on. The server summary is used " +
			"when available, otherwise the numbers are computed locally."),
		Example: `
edc analytics
edc analytics --window 2w
edc stats --window 30d --on 2024-06-30 -o yaml
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			d, _, err := timeutil.ParseWindow(window)
			if err != nil {
				return output.HandleError(err)
			}
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			to, err := on.GetOn(svc.Clock())
			if err != nil {
				return output.HandleError(err)
			}
			a := analytics.Analytics{
				Service: svc,
				Printer: pp,
				To:      to,
				Days:    timeutil.WindowDays(d),
			}
			err = a.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, on)
	cmd.Flags().StringVarP(&window, "window", "w", timeutil.DefaultWindow,
		"How far back to look, example: 3d, 1w or 1w3d.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addScore(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	days := 1

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Show the productivity score of a day",
		Long: base.Wrap80("Score a day from 0 to 100 out of task completion, habit " +
			"completion and mood. Parts without data are left out and the rest " +
			"re-weighted."),
		Example: `
edc score
edc score --on yesterday
edc score --days 7
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			date, err := on.GetOn(svc.Clock())
			if err != nil {
				return output.HandleError(err)
			}
			s := analytics.Score{Service: svc, Printer: pp, Date: date, Days: days}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, on)
	cmd.Flags().IntVar(&days, "days", days, "Score this many days ending on --on.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
