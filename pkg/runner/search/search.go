// Package search provides the runners for saved task searches.
package search

import (
	"context"
	"errors"

	"github.com/edc-app/edc/pkg/app"
	"github.com/edc-app/edc/pkg/printers"
	"github.com/edc-app/edc/pkg/tasks"
)

var errNoService = errors.New("search: no service")

type List struct {
	Service *app.Service
	Printer *printers.PrettyPrint
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	list, err := n.Service.Searches(ctx)
	if err != nil {
		return err
	}
	list = list.Sorted()
	return n.Printer.Emit(list, func() {
		n.Printer.TitleWithCount("Saved searches", len(list), "search")
		n.Printer.Searches(list)
	})
}

// Save stores Filter under Name, replacing a search of the same name.
type Save struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	Name    string
	Filter  tasks.Filter
}

func (n *Save) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	s, err := n.Service.SaveSearch(ctx, n.Name, n.Filter)
	if err != nil {
		return err
	}
	return n.Printer.Emit(s, func() {
		n.Printer.Title("Saved")
		n.Printer.Searches(tasks.Searches{s})
	})
}

// Show runs a saved search and prints its tasks.
type Show struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	Ref     string
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	s, list, err := n.Service.RunSearch(ctx, n.Ref)
	if err != nil {
		return err
	}
	out := struct {
		Search tasks.SavedSearch `json:"search"`
		Tasks  interface{}       `json:"tasks"`
	}{s, list}
	return n.Printer.Emit(out, func() {
		n.Printer.TitleWithCount(s.Name, len(list), "task")
		n.Printer.Tasks(list...)
	})
}

type Remove struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	Ref     string
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errNoService
	}
	if err := n.Service.DeleteSearch(ctx, n.Ref); err != nil {
		return err
	}
	return n.Printer.Emit(map[string]string{"deleted": n.Ref}, func() {
		n.Printer.Title("Deleted " + n.Ref)
	})
}
