// Package key provides CLI helpers to display the glyph legend and the
// calendar navigator shortcuts.
package key

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/edc-app/edc/pkg/glyph"
	teaui "github.com/edc-app/edc/pkg/runner/tea"
)

// Key prints the glyph legend grouped by kind, followed by the UI keys.
type Key struct {
	Out io.Writer
	// Glyphs limits the output to the legend.
	Glyphs bool
}

func (k *Key) out() io.Writer {
	if k.Out != nil {
		return k.Out
	}
	return color.Output
}

func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(k.out(), "")
	for _, kind := range []glyph.Kind{glyph.KindStatus, glyph.KindPriority, glyph.KindRecord} {
		k.Key(ctx, kind, glyph.Of(kind))
		_, _ = fmt.Fprintln(k.out(), "")
	}
	if !k.Glyphs {
		k.Shortcuts(ctx, teaui.DefaultKeyMap())
		_, _ = fmt.Fprintln(k.out(), "")
	}
	return nil
}

// Key renders one glyph table.
func (k *Key) Key(_ context.Context, kind glyph.Kind, glyfs []glyph.Glyph) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprintf("%10s", kind), bold.Sprint("Meaning"))
	for _, v := range glyfs {
		sym := v.Symbol
		if strings.TrimSpace(sym) == "" {
			sym = "(blank)"
		}
		tbl.AddRow(sym, v.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(k.out(), tbl)
}

// Shortcuts renders the key bindings of the calendar navigator.
func (k *Key) Shortcuts(_ context.Context, keys teaui.KeyMap) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprintf("%10s", "Keys"), bold.Sprint("Action"))
	for _, b := range keys.All() {
		tbl.AddRow(strings.Join(b.Keys(), " "), b.Help().Desc)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(k.out(), tbl)
}
