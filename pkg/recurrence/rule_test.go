package recurrence

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/edc-app/edc/pkg/timeutil"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func keys(ds []time.Time) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = timeutil.DateKey(d)
	}
	return out
}

func TestPreviewDaily(t *testing.T) {
	r := Rule{Frequency: Daily, Interval: 2, End: End{Type: EndNever}}
	got := keys(r.Preview(day(2024, time.June, 19)))
	if len(got) != PreviewLimit {
		t.Fatalf("expected %d dates, got %d", PreviewLimit, len(got))
	}
	if got[0] != "2024-06-19" || got[1] != "2024-06-21" || got[9] != "2024-07-07" {
		t.Fatalf("unexpected daily preview: %v", got)
	}
}

func TestPreviewHonoursCountAndExceptions(t *testing.T) {
	r := Rule{
		Frequency:  Daily,
		Interval:   1,
		End:        End{Type: EndAfter, Count: 4},
		Exceptions: []string{"2024-06-20"},
	}
	got := keys(r.Preview(day(2024, time.June, 19)))
	want := []string{"2024-06-19", "2024-06-21", "2024-06-22"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("preview mismatch (-want +got):\n%s", diff)
	}
}

func TestPreviewNeverExceedsLimitOrIncludesExceptions(t *testing.T) {
	start := day(2024, time.January, 31)
	rules := []Rule{
		{Frequency: Daily, Interval: 1, End: End{Type: EndAfter, Count: 25}},
		{Frequency: Weekly, Interval: 1, DaysOfWeek: []time.Weekday{time.Monday, time.Friday}, End: End{Type: EndAfter, Count: 3}},
		{Frequency: Monthly, Interval: 1, End: End{Type: EndNever}, Exceptions: []string{"2024-03-31", "2024-05-31"}},
		{Frequency: Yearly, Interval: 1, End: End{Type: EndOn, Until: day(2030, time.January, 1)}},
	}
	for _, r := range rules {
		got := r.Preview(start)
		limit := PreviewLimit
		if r.End.Type == EndAfter && r.End.Count > limit {
			limit = r.End.Count
		}
		if len(got) > limit {
			t.Fatalf("%s: %d dates exceeds %d", r, len(got), limit)
		}
		for _, d := range got {
			for _, ex := range r.Exceptions {
				if timeutil.DateKey(d) == ex {
					t.Fatalf("%s: exception %s included", r, ex)
				}
			}
		}
	}
}

func TestPreviewAllExceptedTerminates(t *testing.T) {
	r := Rule{Frequency: Yearly, Interval: 1, End: End{Type: EndAfter, Count: 2},
		Exceptions: []string{"2024-02-29", "2025-02-28"}}
	if got := r.Preview(day(2024, time.February, 29)); len(got) != 0 {
		t.Fatalf("expected no dates, got %v", keys(got))
	}
}

func TestMonthlyClampsMonthEnd(t *testing.T) {
	r := Rule{Frequency: Monthly, Interval: 1, End: End{Type: EndAfter, Count: 4}}
	got := keys(r.Preview(day(2024, time.January, 31)))
	want := []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("monthly mismatch (-want +got):\n%s", diff)
	}
}

func TestWeeklyDaysOfWeek(t *testing.T) {
	r := Rule{
		Frequency:  Weekly,
		Interval:   2,
		DaysOfWeek: []time.Weekday{time.Wednesday, time.Monday},
		End:        End{Type: EndOn, Until: day(2024, time.July, 3)},
	}
	got := keys(r.Preview(day(2024, time.June, 19)))
	want := []string{"2024-06-19", "2024-07-01", "2024-07-03"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("weekly mismatch (-want +got):\n%s", diff)
	}
}

func TestBetween(t *testing.T) {
	r := Rule{Frequency: Weekly, Interval: 1, End: End{Type: EndNever}}
	got := keys(r.Between(day(2024, time.May, 1), day(2024, time.June, 16), day(2024, time.June, 30)))
	want := []string{"2024-06-19", "2024-06-26"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("between mismatch (-want +got):\n%s", diff)
	}
	if got := r.Between(day(2024, time.May, 1), day(2024, time.June, 30), day(2024, time.June, 1)); got != nil {
		t.Fatalf("expected nil for inverted range, got %v", got)
	}
}

func TestInvalidRuleYieldsNothing(t *testing.T) {
	r := Rule{Frequency: Daily, Interval: 0}
	if err := r.Validate(); err != ErrInterval {
		t.Fatalf("expected ErrInterval, got %v", err)
	}
	if got := r.Preview(day(2024, time.June, 19)); len(got) != 0 {
		t.Fatalf("expected no dates for invalid rule, got %v", got)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		rule Rule
		ok   bool
	}{
		{"daily", Rule{Frequency: Daily, Interval: 1}, true},
		{"bad frequency", Rule{Frequency: "hourly", Interval: 1}, false},
		{"zero count", Rule{Frequency: Daily, Interval: 1, End: End{Type: EndAfter}}, false},
		{"missing until", Rule{Frequency: Daily, Interval: 1, End: End{Type: EndOn}}, false},
		{"bad month day", Rule{Frequency: Monthly, Interval: 1, DayOfMonth: 32}, false},
		{"bad exception", Rule{Frequency: Daily, Interval: 1, Exceptions: []string{"June 1"}}, false},
	}
	for _, tc := range cases {
		err := tc.rule.Validate()
		if tc.ok != (err == nil) {
			t.Fatalf("%s: expected ok=%v, got %v", tc.name, tc.ok, err)
		}
	}
}

func TestTakeKeepsTimeOfDay(t *testing.T) {
	r := Rule{Frequency: Daily, Interval: 1, End: End{Type: EndNever}}
	start := time.Date(2024, time.June, 18, 8, 30, 0, 0, time.UTC)
	got := r.Take(start, 2)
	want := []time.Time{start, start.AddDate(0, 0, 1)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("occurrences (-want +got):\n%s", diff)
	}
}

func TestMaxPreview(t *testing.T) {
	tests := map[string]struct {
		end  End
		want int
	}{
		"never":       {end: End{Type: EndNever}, want: PreviewLimit},
		"on":          {end: End{Type: EndOn, Until: day(2030, time.January, 1)}, want: PreviewLimit},
		"short count": {end: End{Type: EndAfter, Count: 3}, want: PreviewLimit},
		"long count":  {end: End{Type: EndAfter, Count: 25}, want: 25},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			r := Rule{Frequency: Daily, Interval: 1, End: tc.end}
			if got := r.MaxPreview(); got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}
