// Package tasks provides the runners behind the tasks commands.
package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/edc-app/edc/pkg/app"
	"github.com/edc-app/edc/pkg/model"
	"github.com/edc-app/edc/pkg/printers"
	"github.com/edc-app/edc/pkg/tasks"
)

var errNoService = errors.New("tasks: no service")

// List prints the tasks matching Filter, grouped by GroupBy.
type List struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	Filter  tasks.Filter
	GroupBy tasks.GroupKey
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	groups, err := n.Service.Groups(ctx, n.Filter, n.GroupBy)
	if err != nil {
		return err
	}
	return n.Printer.Emit(groups, func() {
		if len(groups) == 1 && groups[0].Key == "all" {
			n.Printer.TitleWithCount("Tasks", len(groups[0].Tasks), "task")
			n.Printer.Tasks(groups[0].Tasks...)
			return
		}
		n.Printer.Groups(groups...)
	})
}

// Board prints the status columns.
type Board struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	Filter  tasks.Filter
}

func (n *Board) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	b, err := n.Service.Board(ctx, n.Filter)
	if err != nil {
		return err
	}
	return n.Printer.Emit(b, func() { n.Printer.Board(b) })
}

// Show prints one task in full.
type Show struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	ID      int64
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	t, err := n.Service.Task(ctx, n.ID)
	if err != nil {
		return err
	}
	return n.Printer.Emit(t, func() { n.Printer.TaskDetail(t) })
}

// Add creates a task. Validation failures are printed inline before the
// error is returned.
type Add struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	Input   model.TaskInput
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	t, err := n.Service.AddTask(ctx, n.Input)
	if err != nil {
		return n.Printer.Rejected(err)
	}
	return n.Printer.Emit(t, func() {
		n.Printer.Title("Added")
		n.Printer.Tasks(t)
	})
}

// Complete marks tasks done, or reopens them when Reopen is set.
type Complete struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	IDs     []int64
	Reopen  bool
}

func (n *Complete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	changed := make([]model.Task, 0, len(n.IDs))
	for _, id := range n.IDs {
		var (
			t   model.Task
			err error
		)
		if n.Reopen {
			t, err = n.Service.ReopenTask(ctx, id)
		} else {
			t, err = n.Service.CompleteTask(ctx, id)
		}
		if err != nil {
			return fmt.Errorf("task %d: %w", id, err)
		}
		changed = append(changed, t)
	}
	return n.Printer.Emit(changed, func() { n.Printer.Tasks(changed...) })
}

// Move puts a task in a status column at an index and prints the board.
type Move struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	ID      int64
	Status  model.Status
	Index   int
}

func (n *Move) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	b, err := n.Service.MoveTask(ctx, n.ID, n.Status, n.Index)
	if err != nil {
		return err
	}
	return n.Printer.Emit(b, func() { n.Printer.Board(b) })
}

// Remove deletes tasks.
type Remove struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	IDs     []int64
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	for _, id := range n.IDs {
		if err := n.Service.DeleteTask(ctx, id); err != nil {
			return fmt.Errorf("task %d: %w", id, err)
		}
	}
	return n.Printer.Emit(map[string][]int64{"deleted": n.IDs}, func() {
		n.Printer.TitleWithCount("Deleted", len(n.IDs), "task")
	})
}
