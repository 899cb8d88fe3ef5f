// Package event provides the runners that add and remove calendar events.
package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/edc-app/edc/pkg/app"
	"github.com/edc-app/edc/pkg/model"
	"github.com/edc-app/edc/pkg/printers"
)

var errNoService = errors.New("event: no service")

type Add struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	Input   model.EventInput
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	e, err := n.Service.AddEvent(ctx, n.Input)
	if err != nil {
		return n.Printer.Rejected(err)
	}
	return n.Printer.Emit(e, func() {
		n.Printer.Title("Added")
		n.Printer.Event(e)
	})
}

type Remove struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	ID      int64
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	if err := n.Service.DeleteEvent(ctx, n.ID); err != nil {
		return err
	}
	return n.Printer.Emit(map[string]int64{"deleted": n.ID}, func() {
		n.Printer.Title(fmt.Sprintf("Deleted event %d", n.ID))
	})
}
