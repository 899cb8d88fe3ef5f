// Package calendar provides the runner that prints a calendar view.
package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/edc-app/edc/pkg/app"
	"github.com/edc-app/edc/pkg/calendar"
	"github.com/edc-app/edc/pkg/printers"
)

// Calendar prints View around Date.
type Calendar struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	View    calendar.View
	Date    time.Time
}

func (n *Calendar) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("calendar: no service")
	}
	date := n.Date
	if date.IsZero() {
		date = n.Service.Clock()
	}
	grid, err := n.Service.Calendar(ctx, n.View, date)
	if err != nil {
		return err
	}
	if n.Printer.Format != printers.FormatPretty {
		return n.Printer.Emit(grid, nil)
	}
	habits, err := n.Service.Habits(ctx)
	if err != nil {
		return err
	}
	return n.Printer.Emit(grid, func() { n.Printer.Calendar(grid, habits) })
}
