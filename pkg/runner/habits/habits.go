// Package habits provides the runners for habits and their completions.
package habits

import (
	"context"
	"errors"
	"time"

	"github.com/edc-app/edc/pkg/app"
	"github.com/edc-app/edc/pkg/model"
	"github.com/edc-app/edc/pkg/printers"
	"github.com/edc-app/edc/pkg/timeutil"
)

var errNoService = errors.New("habits: no service")

// List prints every habit with a done/missed mark for each of the last Days.
type List struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	Days    int
}

type listOutput struct {
	Habits      []model.Habit           `json:"habits"`
	Completions []model.HabitCompletion `json:"completions"`
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	days := n.Days
	if days < 1 {
		days = 7
	}
	today := timeutil.StartOfDay(n.Service.Clock())
	from := timeutil.AddDays(today, -(days - 1))

	habits, err := n.Service.Habits(ctx)
	if err != nil {
		return err
	}
	completions, err := n.Service.Completions(ctx, from, today)
	if err != nil {
		return err
	}
	span := make([]time.Time, days)
	for i := range span {
		span[i] = timeutil.AddDays(from, i)
	}
	return n.Printer.Emit(listOutput{Habits: habits, Completions: completions}, func() {
		n.Printer.TitleWithCount("Habits", len(habits), "habit")
		n.Printer.Habits(habits, completions, span)
	})
}

// Check logs Value for the habit named or numbered Ref on Date.
type Check struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	Ref     string
	Date    time.Time
	Value   float64
}

func (n *Check) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	h, err := n.Service.Habit(ctx, n.Ref)
	if err != nil {
		return err
	}
	date := n.Date
	if date.IsZero() {
		date = n.Service.Clock()
	}
	c, err := n.Service.CheckHabit(ctx, h, date, n.Value)
	if err != nil {
		return n.Printer.Rejected(err)
	}
	return n.Printer.Emit(c, func() {
		day := timeutil.StartOfDay(date)
		n.Printer.Habits([]model.Habit{h}, []model.HabitCompletion{c}, []time.Time{day})
	})
}

// Add creates a habit.
type Add struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	Input   model.HabitInput
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	h, err := n.Service.AddHabit(ctx, n.Input)
	if err != nil {
		return n.Printer.Rejected(err)
	}
	return n.Printer.Emit(h, func() {
		n.Printer.Title("Added")
		n.Printer.Habits([]model.Habit{h}, nil, nil)
	})
}
