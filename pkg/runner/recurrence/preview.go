// Package recurrence provides the runner that previews a recurrence rule.
package recurrence

import (
	"context"
	"time"

	"github.com/edc-app/edc/pkg/printers"
	"github.com/edc-app/edc/pkg/recurrence"
)

// Preview prints the next Count occurrences of Rule starting at Start. Count
// is capped at Rule.MaxPreview.
type Preview struct {
	Printer *printers.PrettyPrint
	Rule    recurrence.Rule
	Start   time.Time
	Count   int
}

type previewOutput struct {
	Rule        string      `json:"rule"`
	Description string      `json:"description"`
	Occurrences []time.Time `json:"occurrences"`
}

func (n *Preview) Do(_ context.Context) error {
	if err := n.Rule.Validate(); err != nil {
		return err
	}
	count := n.Count
	if count <= 0 {
		count = recurrence.PreviewLimit
	}
	count = min(count, n.Rule.MaxPreview())
	dates := n.Rule.Take(n.Start, count)
	out := previewOutput{Rule: n.Rule.String(), Description: n.Rule.Describe(), Occurrences: dates}
	return n.Printer.Emit(out, func() { n.Printer.Recurrence(n.Rule, dates) })
}
