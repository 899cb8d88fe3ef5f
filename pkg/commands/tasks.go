package commands

import (
	"context"
	"errors"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/edc-app/edc/pkg/commands/options"
	"github.com/edc-app/edc/pkg/model"
	taskrunner "github.com/edc-app/edc/pkg/runner/tasks"
	"github.com/edc-app/edc/pkg/tasks"
)

func addTasks(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "t"},
		Short:   "Work with tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTasksList(cmd)
	addTasksBoard(cmd)
	addTasksShow(cmd)
	addTasksAdd(cmd)
	addTasksDone(cmd, "done", false)
	addTasksDone(cmd, "reopen", true)
	addTasksMove(cmd)
	addTasksRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addTasksList(parent *cobra.Command) {
	fo := &options.FilterOptions{}
	group := ""

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: base.Wrap80("List tasks matching the filter flags, optionally grouped by " +
			"status, priority, category or due date."),
		Example: `
edc tasks list
edc tasks ls --status todo,doing --priority high
edc tasks ls --overdue --group due
edc tasks ls -q report -o yaml
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			by, err := tasks.ParseGroupKey(group)
			if err != nil {
				return output.HandleError(err)
			}
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			f, err := fo.Filter(svc.Clock())
			if err != nil {
				return output.HandleError(err)
			}
			l := taskrunner.List{
				Service: svc,
				Printer: pp,
				Filter:  f,
				GroupBy: by,
			}
			err = l.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddFilterArgs(cmd, fo)
	cmd.Flags().StringVarP(&group, "group", "g", "",
		"Group by status, priority, category or due.")
	options.AddShowIDArgs(cmd, output)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTasksBoard(parent *cobra.Command) {
	fo := &options.FilterOptions{}

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show tasks as status columns",
		Example: `
edc tasks board
edc tasks board --priority high
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			f, err := fo.Filter(svc.Clock())
			if err != nil {
				return output.HandleError(err)
			}
			b := taskrunner.Board{Service: svc, Printer: pp, Filter: f}
			err = b.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, output)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTasksShow(parent *cobra.Command) {
	var id int64

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task in detail",
		Example: `
edc tasks show 42
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires exactly one task id")
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
			s := taskrunner.Show{Service: svc, Printer: pp, ID: id}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTasksAdd(parent *cobra.Command) {
	to := &options.TaskOptions{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Example: `
edc tasks add write the report --priority high --due tomorrow
edc tasks add water plants --repeat "FREQ=WEEKLY;BYDAY=SA"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a task")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			in, err := to.Input(args, svc.Clock())
			if err != nil {
				return output.HandleError(err)
			}
			a := taskrunner.Add{Service: svc, Printer: pp, Input: in}
			err = a.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddTaskArgs(cmd, to)
	options.AddShowIDArgs(cmd, output)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTasksDone(parent *cobra.Command, use string, reopen bool) {
	var ids []int64

	short, example := "Complete tasks", `
edc tasks done 4 7
`
	if reopen {
		short, example = "Reopen completed tasks", `
edc tasks reopen 4
`
	}

	cmd := &cobra.Command{
		Use:     use + " <id>...",
		Short:   short,
		Example: example,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires at least one task id")
			}
			var err error
			ids, err = parseIDs(args)
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			c := taskrunner.Complete{Service: svc, Printer: pp, IDs: ids, Reopen: reopen}
			err = c.Do(context.Background())
			return output.HandleError(err)
		},
	}
	if !reopen {
		cmd.Aliases = []string{"complete", "x"}
	}

	options.AddShowIDArgs(cmd, output)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTasksMove(parent *cobra.Command) {
	var (
		id     int64
		status model.Status
		index  = math.MaxInt32
	)

	cmd := &cobra.Command{
		Use:   "move <id> <status> [index]",
		Short: "Move a task to another board column",
		Long: base.Wrap80("Move a task to a status column. Without an index the task " +
			"goes to the bottom of the column."),
		Example: `
edc tasks move 4 doing
edc tasks move 4 done 0
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 || len(args) > 3 {
				return errors.New("requires a task id, a status and an optional index")
			}
			var err error
			if id, err = parseID(args[0]); err != nil {
				return err
			}
			if status, err = model.ParseStatus(args[1]); err != nil {
				return err
			}
			if len(args) == 3 {
				if index, err = strconv.Atoi(args[2]); err != nil || index < 0 {
					return errors.New("index must be a non-negative number")
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			m := taskrunner.Move{Service: svc, Printer: pp, ID: id, Status: status, Index: index}
			err = m.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, output)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addTasksRemove(parent *cobra.Command) {
	var ids []int64

	cmd := &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "Delete tasks",
		Example: `
edc tasks rm 4 7
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires at least one task id")
			}
			var err error
			ids, err = parseIDs(args)
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, pp, err := setup()
			if err != nil {
				return output.HandleError(err)
			}
			r := taskrunner.Remove{Service: svc, Printer: pp, IDs: ids}
			err = r.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}
