package options

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/edc-app/edc/pkg/model"
)

// TaskOptions
type TaskOptions struct {
	Description string
	Priority    string
	Status      string
	Due         string
	Category    int64
	Tags        []int64
	Estimate    int
	Repeat      string
}

func AddTaskArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVarP(&o.Description, "description", "D", "",
		"Longer description of the task.")
	cmd.Flags().StringVarP(&o.Priority, "priority", "p", "medium",
		"Priority, one of low, medium or high.")
	cmd.Flags().StringVar(&o.Status, "status", "pending",
		"Initial status.")
	cmd.Flags().StringVar(&o.Due, "due", "",
		"Due date, example: --due=2024-06-18 or --due=tomorrow.")
	cmd.Flags().Int64Var(&o.Category, "category", 0,
		"Category id.")
	cmd.Flags().Int64SliceVar(&o.Tags, "tag", nil,
		"Tag ids.")
	cmd.Flags().IntVar(&o.Estimate, "estimate", 0,
		"Estimated minutes.")
	cmd.Flags().StringVar(&o.Repeat, "repeat", "",
		`Recurrence rule, example: --repeat="FREQ=WEEKLY;BYDAY=MO,WE".`)
}

// Input builds a task from the title words and flags.
func (o *TaskOptions) Input(args []string, now time.Time) (model.TaskInput, error) {
	in := model.TaskInput{
		Title:             strings.Join(args, " "),
		Description:       o.Description,
		TagIDs:            o.Tags,
		EstimatedMinutes:  o.Estimate,
		RecurrencePattern: o.Repeat,
	}
	var err error
	if in.Priority, err = model.ParsePriority(o.Priority); err != nil {
		return in, err
	}
	if in.Status, err = model.ParseStatus(o.Status); err != nil {
		return in, err
	}
	if in.DueDate, err = optionalDate(o.Due, now); err != nil {
		return in, err
	}
	if o.Category > 0 {
		id := o.Category
		in.CategoryID = &id
	}
	return in, nil
}
