package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/edc-app/edc/pkg/commands/options"
)

var (
	output  = &options.OutputOptions{}
	service = &options.ServiceOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "edc",
		Short: base.Wrap80("Tasks, calendar, habits and moods from the terminal."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddServiceArgs(cmd, service)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addCalendar(topLevel)
	addTasks(topLevel)
	addSearch(topLevel)
	addRecurrence(topLevel)
	addEvent(topLevel)
	addHabits(topLevel)
	addMood(topLevel)
	addAnalytics(topLevel)
	addScore(topLevel)
	addTimer(topLevel)
	addRefresh(topLevel)
	addUI(topLevel)
	addKey(topLevel)
	addCompletions(topLevel)
	addUpgrade(topLevel)
	addVersion(topLevel)
}
