package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/edc-app/edc/pkg/model"
	"github.com/edc-app/edc/pkg/tasks"
)

// FilterOptions
type FilterOptions struct {
	Query      string
	Statuses   []string
	Priorities []string
	Categories []int64
	Tags       []int64
	DueFrom    string
	DueTo      string
	Completed  string
	Overdue    bool
	Sort       string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Query, "query", "q", "",
		"Match text in the title or description.")
	cmd.Flags().StringSliceVar(&o.Statuses, "status", nil,
		"Only tasks with these statuses (pending, in_progress, completed, cancelled).")
	cmd.Flags().StringSliceVar(&o.Priorities, "priority", nil,
		"Only tasks with these priorities (low, medium, high).")
	cmd.Flags().Int64SliceVar(&o.Categories, "category", nil,
		"Only tasks in these category ids.")
	cmd.Flags().Int64SliceVar(&o.Tags, "tag", nil,
		"Only tasks carrying one of these tag ids.")
	cmd.Flags().StringVar(&o.DueFrom, "due-from", "",
		"Only tasks due on or after this date.")
	cmd.Flags().StringVar(&o.DueTo, "due-to", "",
		"Only tasks due on or before this date.")
	cmd.Flags().StringVar(&o.Completed, "completed", "",
		"Only completed (yes) or open (no) tasks.")
	cmd.Flags().BoolVar(&o.Overdue, "overdue", false,
		"Only tasks past their due date.")
	cmd.Flags().StringVar(&o.Sort, "sort", "",
		"Sort by position, due, priority, title or created.")
}

// Filter converts the flags into a task filter.
func (o *FilterOptions) Filter(now time.Time) (tasks.Filter, error) {
	f := tasks.Filter{
		Query:       strings.TrimSpace(o.Query),
		CategoryIDs: o.Categories,
		TagIDs:      o.Tags,
		Overdue:     o.Overdue,
		SortBy:      tasks.SortKey(strings.ToLower(o.Sort)),
	}
	for _, raw := range o.Statuses {
		s, err := model.ParseStatus(raw)
		if err != nil {
			return f, err
		}
		f.Statuses = append(f.Statuses, s)
	}
	for _, raw := range o.Priorities {
		p, err := model.ParsePriority(raw)
		if err != nil {
			return f, err
		}
		f.Priorities = append(f.Priorities, p)
	}
	switch f.SortBy {
	case "", tasks.SortPosition, tasks.SortDue, tasks.SortPriority, tasks.SortTitle, tasks.SortCreated:
	default:
		return f, fmt.Errorf("unknown sort %q", o.Sort)
	}

	var err error
	if f.DueFrom, err = optionalDate(o.DueFrom, now); err != nil {
		return f, err
	}
	if f.DueTo, err = optionalDate(o.DueTo, now); err != nil {
		return f, err
	}

	switch strings.ToLower(o.Completed) {
	case "":
	case "yes", "true", "y":
		done := true
		f.Completed = &done
	case "no", "false", "n":
		open := false
		f.Completed = &open
	default:
		return f, fmt.Errorf("--completed must be yes or no, got %q", o.Completed)
	}
	return f, nil
}

func optionalDate(raw string, now time.Time) (*model.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := ParseDay(raw, now)
	if err != nil {
		return nil, err
	}
	d := model.NewDate(t)
	return &d, nil
}
