package recurrence

import (
	"testing"
	"time"
)

func TestStringParse(t *testing.T) {
	r := Rule{
		Frequency:  Weekly,
		Interval:   2,
		DaysOfWeek: []time.Weekday{time.Wednesday, time.Monday},
		End:        End{Type: EndAfter, Count: 5},
		Exceptions: []string{"2024-07-01"},
	}
	text := r.String()
	if text != "FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE;COUNT=5;EXDATE=20240701" {
		t.Fatalf("unexpected text: %s", text)
	}
	parsed, err := Parse("RRULE:" + text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.String() != text {
		t.Fatalf("expected %s, got %s", text, parsed.String())
	}
}

func TestParseUntilWithTime(t *testing.T) {
	r, err := Parse("FREQ=DAILY;UNTIL=20240630T235959Z")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r.End.Type != EndOn || r.End.Until.Day() != 30 {
		t.Fatalf("unexpected end: %+v", r.End)
	}
	if r.Interval != 1 {
		t.Fatalf("expected default interval 1, got %d", r.Interval)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "INTERVAL=2", "FREQ=DAILY;INTERVAL=x", "FREQ=DAILY;BYDAY=XX", "FREQ=DAILY;FOO=1", "FREQ"} {
		if _, err := Parse(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}

func TestDescribe(t *testing.T) {
	cases := map[string]Rule{
		"Every day":                      {Frequency: Daily, Interval: 1},
		"Every 2 weeks on Mon, Wed":      {Frequency: Weekly, Interval: 2, DaysOfWeek: []time.Weekday{time.Wednesday, time.Monday}},
		"Every month on day 31, 3 times": {Frequency: Monthly, Interval: 1, DayOfMonth: 31, End: End{Type: EndAfter, Count: 3}},
		"Every year, until Jun 30, 2030": {Frequency: Yearly, Interval: 1, End: End{Type: EndOn, Until: time.Date(2030, time.June, 30, 0, 0, 0, 0, time.UTC)}},
		"Does not repeat":                {},
	}
	for want, r := range cases {
		if got := r.Describe(); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}
