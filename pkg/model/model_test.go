package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestDateAcceptsDateAndTimestamp(t *testing.T) {
	var got struct {
		A Date  `json:"a"`
		B Date  `json:"b"`
		C *Date `json:"c"`
	}
	in := `{"a":"2024-06-19","b":"2024-06-19T23:30:00-07:00","c":null}`
	if err := json.Unmarshal([]byte(in), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.A.Key() != "2024-06-19" || got.B.Key() != "2024-06-19" {
		t.Fatalf("unexpected keys %s %s", got.A.Key(), got.B.Key())
	}
	if got.C != nil {
		t.Fatalf("expected nil date")
	}
	b, err := json.Marshal(got.A)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-06-19"` {
		t.Fatalf("unexpected json %s", b)
	}
}

func TestDateRejectsGarbage(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"June 19"`), &d); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCalendarEventAcceptsBothFieldSpellings(t *testing.T) {
	current := `{"id":1,"title":"Standup","start_datetime":"2024-06-19T09:00:00Z","end_datetime":"2024-06-19T09:15:00Z","is_all_day":false}`
	legacy := `{"id":2,"title":"Offsite","start_time":"2024-06-20","end_time":"2024-06-22","all_day":true}`

	var a, b CalendarEvent
	if err := json.Unmarshal([]byte(current), &a); err != nil {
		t.Fatalf("current: %v", err)
	}
	if err := json.Unmarshal([]byte(legacy), &b); err != nil {
		t.Fatalf("legacy: %v", err)
	}
	if a.Start.IsZero() || a.Duration() != 15*time.Minute || a.AllDay {
		t.Fatalf("unexpected current event: %+v", a)
	}
	if !b.AllDay || b.Start.IsZero() || b.End.IsZero() {
		t.Fatalf("legacy fields not decoded: %+v", b)
	}

	out, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"start_datetime"`) || !strings.Contains(string(out), `"is_all_day":true`) {
		t.Fatalf("expected canonical field names, got %s", out)
	}
}

func TestEventSpanDays(t *testing.T) {
	loc := time.Local
	allDay := CalendarEvent{
		Start: DateTime{Time: time.Date(2024, 6, 20, 0, 0, 0, 0, loc)},
		End:   DateTime{Time: time.Date(2024, 6, 21, 0, 0, 0, 0, loc)},
	}
	first, last := allDay.SpanDays()
	if !first.Equal(last) {
		t.Fatalf("all-day event should cover one day, got %v..%v", first, last)
	}

	multi := CalendarEvent{
		Start: DateTime{Time: time.Date(2024, 6, 20, 18, 0, 0, 0, loc)},
		End:   DateTime{Time: time.Date(2024, 6, 22, 10, 0, 0, 0, loc)},
	}
	first, last = multi.SpanDays()
	if first.Day() != 20 || last.Day() != 22 {
		t.Fatalf("unexpected span %v..%v", first, last)
	}
}

func TestEventOccurrenceKeepsTimeAndDuration(t *testing.T) {
	e := CalendarEvent{
		Start: DateTime{Time: time.Date(2024, 6, 19, 9, 30, 0, 0, time.UTC)},
		End:   DateTime{Time: time.Date(2024, 6, 19, 10, 0, 0, 0, time.UTC)},
	}
	o := e.Occurrence(time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC))
	if o.Start.Day() != 3 || o.Start.Hour() != 9 || o.Start.Minute() != 30 || o.Duration() != 30*time.Minute {
		t.Fatalf("unexpected occurrence %+v", o)
	}
}

func TestTaskInputValidate(t *testing.T) {
	in := TaskInput{Title: "  ", Priority: "urgent", EstimatedMinutes: -5, RecurrencePattern: "FREQ=DAILY"}
	err := in.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	for _, field := range []string{"title", "priority", "estimated_minutes", "due_date"} {
		if len(verrs.For(field)) == 0 {
			t.Fatalf("expected error for %s, got %v", field, verrs)
		}
	}

	due := NewDate(time.Date(2024, 6, 19, 0, 0, 0, 0, time.Local))
	ok2 := TaskInput{Title: "Water plants", Priority: PriorityLow, DueDate: &due, RecurrencePattern: "FREQ=WEEKLY;COUNT=3"}
	if err := ok2.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	early := TaskInput{Title: "x", DueDate: &due, RecurrencePattern: "FREQ=DAILY;UNTIL=20240601"}
	if err := early.Validate(); err == nil {
		t.Fatalf("expected error for rule ending before due date")
	}
}

func TestTaskInputNormalize(t *testing.T) {
	in := TaskInput{Title: " Report ", Completed: true}
	in.Normalize()
	if in.Title != "Report" || in.Priority != PriorityMedium || in.Status != StatusCompleted {
		t.Fatalf("unexpected normalized input %+v", in)
	}
	in = TaskInput{Title: "x", Status: StatusCompleted}
	in.Normalize()
	if !in.Completed {
		t.Fatalf("completed status should set completed flag")
	}
}

func TestTaskOverdue(t *testing.T) {
	now := time.Date(2024, 6, 19, 12, 0, 0, 0, time.Local)
	yesterday := NewDate(now.AddDate(0, 0, -1))
	today := NewDate(now)
	cases := []struct {
		task Task
		want bool
	}{
		{Task{DueDate: &yesterday}, true},
		{Task{DueDate: &today}, false},
		{Task{DueDate: &yesterday, Completed: true}, false},
		{Task{DueDate: &yesterday, Status: StatusCancelled}, false},
		{Task{}, false},
	}
	for i, tc := range cases {
		if got := tc.task.IsOverdue(now); got != tc.want {
			t.Fatalf("case %d: expected %v, got %v", i, tc.want, got)
		}
	}
}

func TestParseStatusAliases(t *testing.T) {
	for in, want := range map[string]Status{"todo": StatusPending, "in-progress": StatusInProgress, "Done": StatusCompleted, "canceled": StatusCancelled} {
		got, err := ParseStatus(in)
		if err != nil || got != want {
			t.Fatalf("%q: expected %s, got %s (%v)", in, want, got, err)
		}
	}
	if _, err := ParseStatus("blocked"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestHabitCompletion(t *testing.T) {
	boolean := Habit{CompletionType: CompletionBoolean}
	if !boolean.IsComplete(1) || boolean.IsComplete(0) {
		t.Fatalf("boolean habit semantics broken")
	}
	count := Habit{CompletionType: CompletionCount, TargetValue: 8}
	if count.IsComplete(7) || !count.IsComplete(8) {
		t.Fatalf("count habit semantics broken")
	}
	if err := (HabitInput{Name: "Read", CompletionType: CompletionDuration}).Validate(); err == nil {
		t.Fatalf("expected target error for duration habit")
	}
}

func TestMoodInput(t *testing.T) {
	now := time.Date(2024, 6, 19, 8, 0, 0, 0, time.Local)
	in := MoodInput{MoodScore: 6, ContextTags: []string{" Work", "work", "", "sleep"}}
	in.Normalize(now)
	if in.EntryDate.Key() != "2024-06-19" {
		t.Fatalf("expected default date, got %s", in.EntryDate.Key())
	}
	if len(in.ContextTags) != 2 || in.ContextTags[0] != "work" {
		t.Fatalf("unexpected tags %v", in.ContextTags)
	}
	if err := in.Validate(); err == nil {
		t.Fatalf("expected mood range error")
	}
	in.MoodScore = 4
	if err := in.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTimeEntryElapsed(t *testing.T) {
	start := time.Date(2024, 6, 19, 9, 0, 0, 0, time.UTC)
	e := TimeEntry{Start: DateTime{Time: start}}
	if !e.Running() || e.Elapsed(start.Add(90*time.Second)) != 90*time.Second {
		t.Fatalf("unexpected running entry %+v", e)
	}
	e.End = &DateTime{Time: start.Add(time.Hour)}
	if e.Running() || e.Elapsed(start.Add(5*time.Hour)) != time.Hour {
		t.Fatalf("unexpected stopped entry %+v", e)
	}
}
