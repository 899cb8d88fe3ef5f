package recurrence

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/edc-app/edc/pkg/printers"
	"github.com/edc-app/edc/pkg/recurrence"
)

func previewCount(t *testing.T, rule recurrence.Rule, count int) int {
	t.Helper()
	buf := &bytes.Buffer{}
	p := Preview{
		Printer: &printers.PrettyPrint{Out: buf, Format: printers.FormatJSON},
		Rule:    rule,
		Start:   time.Date(2024, 6, 18, 9, 0, 0, 0, time.UTC),
		Count:   count,
	}
	if err := p.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	var out previewOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	return len(out.Occurrences)
}

func TestPreviewCountIsCapped(t *testing.T) {
	tests := map[string]struct {
		rule  recurrence.Rule
		count int
		want  int
	}{
		"default": {
			rule: recurrence.Rule{Frequency: recurrence.Daily, Interval: 1, End: recurrence.End{Type: recurrence.EndNever}},
			want: recurrence.PreviewLimit,
		},
		"fewer": {
			rule:  recurrence.Rule{Frequency: recurrence.Daily, Interval: 1, End: recurrence.End{Type: recurrence.EndNever}},
			count: 4,
			want:  4,
		},
		"never ending": {
			rule:  recurrence.Rule{Frequency: recurrence.Daily, Interval: 1, End: recurrence.End{Type: recurrence.EndNever}},
			count: 50,
			want:  recurrence.PreviewLimit,
		},
		"long series": {
			rule:  recurrence.Rule{Frequency: recurrence.Daily, Interval: 1, End: recurrence.End{Type: recurrence.EndAfter, Count: 30}},
			count: 50,
			want:  30,
		},
		"long series with exception": {
			rule: recurrence.Rule{
				Frequency:  recurrence.Daily,
				Interval:   1,
				End:        recurrence.End{Type: recurrence.EndAfter, Count: 12},
				Exceptions: []string{"2024-06-20"},
			},
			count: 50,
			want:  11,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := previewCount(t, tc.rule, tc.count); got != tc.want {
				t.Fatalf("got %d dates, want %d", got, tc.want)
			}
		})
	}
}
