// Package mood provides the runners for the mood log.
package mood

import (
	"context"
	"errors"

	"github.com/edc-app/edc/pkg/app"
	"github.com/edc-app/edc/pkg/model"
	"github.com/edc-app/edc/pkg/printers"
	"github.com/edc-app/edc/pkg/timeutil"
)

var errNoService = errors.New("mood: no service")

type Log struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	Input   model.MoodInput
}

func (n *Log) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	m, err := n.Service.LogMood(ctx, n.Input)
	if err != nil {
		return n.Printer.Rejected(err)
	}
	return n.Printer.Emit(m, func() { n.Printer.Moods([]model.MoodEntry{m}) })
}

// List prints the mood entries of the last Days.
type List struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	Days    int
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	days := n.Days
	if days < 1 {
		days = 14
	}
	today := timeutil.StartOfDay(n.Service.Clock())
	list, err := n.Service.Moods(ctx, timeutil.AddDays(today, -(days-1)), today)
	if err != nil {
		return err
	}
	return n.Printer.Emit(list, func() {
		n.Printer.TitleWithCount("Mood", len(list), "entry")
		n.Printer.Moods(list)
	})
}
