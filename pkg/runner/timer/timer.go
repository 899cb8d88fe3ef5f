// Package timer provides the runners for time tracking.
package timer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/edc-app/edc/pkg/app"
	"github.com/edc-app/edc/pkg/model"
	"github.com/edc-app/edc/pkg/printers"
)

var errNoService = errors.New("timer: no service")

// DefaultPoll is how often Watch asks the API for the running entry.
const DefaultPoll = time.Second

type Status struct {
	Service *app.Service
	Printer *printers.PrettyPrint
}

func (n *Status) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	e, err := n.Service.ActiveTimer(ctx)
	if err != nil {
		return err
	}
	return n.Printer.Emit(e, func() { n.Printer.Timer(e) })
}

type Start struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	Input   model.TimerInput
}

func (n *Start) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	e, err := n.Service.StartTimer(ctx, n.Input)
	if err != nil {
		return err
	}
	return n.Printer.Emit(e, func() { n.Printer.Timer(&e) })
}

type Stop struct {
	Service *app.Service
	Printer *printers.PrettyPrint
}

func (n *Stop) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	e, err := n.Service.StopTimer(ctx)
	if err != nil {
		return err
	}
	return n.Printer.Emit(e, func() {
		desc := e.Description
		if desc == "" {
			desc = "timer"
		}
		n.Printer.Title(fmt.Sprintf("Stopped %s after %s", desc, printers.Clock(e.Elapsed(n.Service.Clock()))))
	})
}

// Watch redraws the running timer every second and re-reads it from the API
// every Poll, one second by default, until ctx is done.
type Watch struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	Poll    time.Duration

	mu     sync.Mutex
	active *model.TimeEntry
}

func (n *Watch) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	if err := n.refresh(ctx); err != nil {
		return err
	}

	poll := n.Poll
	if poll < time.Second {
		poll = DefaultPoll
	}

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %ds", int(poll.Seconds())), func() {
		if err := n.refresh(ctx); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "\ntimer: %v\n", err)
		}
		if poll == time.Second {
			n.draw()
		}
	}); err != nil {
		return err
	}
	if poll > time.Second {
		if _, err := c.AddFunc("@every 1s", n.draw); err != nil {
			return err
		}
	}

	n.draw()
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	n.Printer.NewLine()
	return nil
}

func (n *Watch) refresh(ctx context.Context) error {
	e, err := n.Service.ActiveTimer(ctx)
	if err != nil {
		return err
	}
	n.mu.Lock()
	n.active = e
	n.mu.Unlock()
	return nil
}

func (n *Watch) draw() {
	n.mu.Lock()
	e := n.active
	n.mu.Unlock()
	n.Printer.TimerInline(e)
}
