package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/edc-app/edc/pkg/commands/options"
	"github.com/edc-app/edc/pkg/printers"
	"github.com/edc-app/edc/pkg/recurrence"
	recrunner "github.com/edc-app/edc/pkg/runner/recurrence"
)

func addRecurrence(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "recurrence",
		Aliases: []string{"repeat"},
		Short:   "Work with recurrence rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addRecurrencePreview(cmd)
	topLevel.AddCommand(cmd)
}

func addRecurrencePreview(parent *cobra.Command) {
	ro := &options.RuleOptions{}
	start := &options.OnOptions{}
	count := 0

	cmd := &cobra.Command{
		Use:   "preview [rule]",
		Short: "Show the next dates of a recurrence rule",
		Long: base.Wrap80("Show the upcoming occurrences of a rule, given either as " +
			"rule text or built from flags. Exception dates are skipped and still " +
			"count against a COUNT limit."),
		Example: `
edc recurrence preview "FREQ=WEEKLY;BYDAY=MO,WE;COUNT=6"
edc recurrence preview --every monthly --day-of-month 31 --on 2024-01-31
edc repeat preview --every daily --interval 2 --except 2024-06-20 --count 5
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			f, err := output.Format()
			if err != nil {
				return output.HandleError(err)
			}
			now := time.Now()
			rule, err := ro.Rule(args, now)
			if err != nil {
				return output.HandleError(err)
			}
			from, err := start.GetOn(now)
			if err != nil {
				return output.HandleError(err)
			}
			p := recrunner.Preview{
				Printer: &printers.PrettyPrint{Format: f, Now: time.Now},
				Rule:    rule,
				Start:   from,
				Count:   count,
			}
			err = p.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddRuleArgs(cmd, ro)
	options.AddOnArgs(cmd, start)
	cmd.Flags().IntVar(&count, "count", recurrence.PreviewLimit,
		"Number of dates to show, at most 10 or the --times count.")
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}
