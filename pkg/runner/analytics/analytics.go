// Package analytics provides the runners for the analytics summary and the
// daily productivity score.
package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/edc-app/edc/pkg/app"
	"github.com/edc-app/edc/pkg/printers"
	"github.com/edc-app/edc/pkg/score"
	"github.com/edc-app/edc/pkg/timeutil"
)

var errNoService = errors.New("analytics: no service")

// Analytics prints the summary of the Days ending on To.
type Analytics struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	To      time.Time
	Days    int
}

func (n *Analytics) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	to := n.To
	if to.IsZero() {
		to = n.Service.Clock()
	}
	days := n.Days
	if days < 1 {
		days = 7
	}
	from := timeutil.AddDays(timeutil.StartOfDay(to), -(days - 1))
	a, err := n.Service.Analytics(ctx, from, to)
	if err != nil {
		return err
	}
	return n.Printer.Emit(a, func() { n.Printer.Analytics(a) })
}

// Score prints the productivity score of each of the Days ending on Date.
type Score struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	Date    time.Time
	Days    int
}

type dayScore struct {
	Date  string       `json:"date"`
	Score score.Result `json:"score"`
}

func (n *Score) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	date := n.Date
	if date.IsZero() {
		date = n.Service.Clock()
	}
	days := n.Days
	if days < 1 {
		days = 1
	}

	out := make([]dayScore, 0, days)
	var lines []func()
	for i := days - 1; i >= 0; i-- {
		d, err := n.Service.Day(ctx, timeutil.AddDays(timeutil.StartOfDay(date), -i))
		if err != nil {
			return err
		}
		out = append(out, dayScore{Date: d.Key, Score: d.Score})
		lines = append(lines, func() { n.Printer.Score(d.Date.Format("Mon Jan 2"), d.Score) })
	}
	return n.Printer.Emit(out, func() {
		for _, p := range lines {
			p()
		}
	})
}
