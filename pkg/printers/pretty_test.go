package printers

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/edc-app/edc/pkg/calendar"
	"github.com/edc-app/edc/pkg/model"
	"github.com/edc-app/edc/pkg/recurrence"
	"github.com/edc-app/edc/pkg/score"
	"github.com/edc-app/edc/pkg/tasks"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

var now = time.Date(2024, 6, 18, 10, 0, 0, 0, time.Local)

func newPrinter() (*PrettyPrint, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &PrettyPrint{Out: buf, Now: func() time.Time { return now }}, buf
}

func date(y int, m time.Month, d int) *model.Date {
	v := model.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.Local))
	return &v
}

func TestTaskLine(t *testing.T) {
	pp, buf := newPrinter()
	pp.ShowID = true
	pp.Task(model.Task{
		ID: 42, Title: "File taxes", Priority: model.PriorityHigh, Status: model.StatusPending,
		DueDate:           date(2024, 6, 17),
		RecurrencePattern: "FREQ=YEARLY",
		Subtasks:          []model.Subtask{{Title: "a", Completed: true}, {Title: "b"}},
	})
	got := buf.String()
	for _, want := range []string{"42    ", "! ● File taxes", "due Mon Jun 17", "↻", "[1/2]"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
}

func TestEmptyListPrintsNone(t *testing.T) {
	pp, buf := newPrinter()
	pp.Tasks()
	if got := buf.String(); got != " none\n\n" {
		t.Fatalf("got %q", got)
	}
}

func TestGroupsSkipEmpty(t *testing.T) {
	pp, buf := newPrinter()
	pp.Groups(
		tasks.Group{Key: "high", Label: "High"},
		tasks.Group{Key: "low", Label: "Low", Tasks: []model.Task{{ID: 1, Title: "one", Priority: model.PriorityLow}}},
	)
	got := buf.String()
	if strings.Contains(got, "High") {
		t.Fatalf("empty group printed: %q", got)
	}
	if !strings.Contains(got, "Low - 1 task\n") {
		t.Fatalf("heading missing: %q", got)
	}
}

func TestBoardPrintsEveryColumn(t *testing.T) {
	pp, buf := newPrinter()
	pp.Board(tasks.NewBoard([]model.Task{{ID: 1, Title: "x", Status: model.StatusInProgress}}))
	got := buf.String()
	for _, s := range model.Statuses() {
		if !strings.Contains(got, s.Label()) {
			t.Errorf("column %q missing", s.Label())
		}
	}
	if !strings.Contains(got, "In progress - 1 task") {
		t.Errorf("count missing: %q", got)
	}
}

func TestDescribeFilter(t *testing.T) {
	yes := true
	f := tasks.Filter{
		Query:      "tax",
		Statuses:   []model.Status{model.StatusPending, model.StatusInProgress},
		Priorities: []model.Priority{model.PriorityHigh},
		DueTo:      date(2024, 6, 30),
		Completed:  &yes,
		Overdue:    true,
		SortBy:     tasks.SortDue,
	}
	want := `"tax" status=pending,in_progress priority=high due<=2024-06-30 completed=true overdue sort=due`
	if got := DescribeFilter(f); got != want {
		t.Fatalf("DescribeFilter =\n%s\nwant\n%s", got, want)
	}
	if got := DescribeFilter(tasks.Filter{}); got != "all tasks" {
		t.Fatalf("zero filter = %q", got)
	}
}

func TestMonthGrid(t *testing.T) {
	data := calendar.Data{Tasks: []model.Task{{ID: 1, Title: "due", DueDate: date(2024, 6, 20)}}}
	g := calendar.Build(calendar.Month, now, now, data, calendar.Options{})

	pp, buf := newPrinter()
	pp.MonthGrid(g)
	lines := strings.Split(buf.String(), "\n")
	if got := lines[0]; got != " Su   Mo   Tu   We   Th   Fr   Sa  " {
		t.Fatalf("header = %q", got)
	}
	// June 2024 starts on a Saturday; the first row is May 26 - Jun 1.
	if got := lines[1]; !strings.HasPrefix(got, " 26") || !strings.HasSuffix(got, "  1  ") {
		t.Fatalf("first row = %q", got)
	}
	if !strings.Contains(buf.String(), " 20• ") {
		t.Fatalf("day with a task not marked: %q", buf.String())
	}
	if got := len(lines); got != 1+6+2 {
		t.Fatalf("lines = %d", got)
	}
}

func TestAgendaSkipsEmptyDays(t *testing.T) {
	data := calendar.Data{
		Events: []model.CalendarEvent{{
			ID: 1, Title: "Standup",
			Start:    model.DateTime{Time: time.Date(2024, 6, 19, 9, 0, 0, 0, time.Local)},
			End:      model.DateTime{Time: time.Date(2024, 6, 19, 9, 15, 0, 0, time.Local)},
			Location: "Room 1",
		}},
		Habits:      []model.Habit{{ID: 3, Name: "Read", Active: true, CompletionType: model.CompletionBoolean}},
		Completions: []model.HabitCompletion{{HabitID: 3, Date: *date(2024, 6, 19), Value: 1}},
	}
	g := calendar.Build(calendar.Agenda, now, now, data, calendar.Options{})

	pp, buf := newPrinter()
	pp.Calendar(g, data.Habits)
	got := buf.String()
	if strings.Contains(got, "Tue Jun 18") {
		t.Fatalf("empty day printed: %q", got)
	}
	for _, want := range []string{"Wed Jun 19", "○ 09:00-09:15 Standup  @ Room 1", "✓ Read"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
}

func TestWeekPrintsEveryDay(t *testing.T) {
	g := calendar.Build(calendar.Week, now, now, calendar.Data{}, calendar.Options{})
	pp, buf := newPrinter()
	pp.Calendar(g, nil)
	if got := strings.Count(buf.String(), "nothing planned"); got != 7 {
		t.Fatalf("empty days = %d, want 7", got)
	}
}

func TestRecurrencePreview(t *testing.T) {
	r, err := recurrence.Parse("FREQ=DAILY;COUNT=2")
	if err != nil {
		t.Fatal(err)
	}
	start := time.Date(2024, 6, 18, 8, 0, 0, 0, time.Local)
	pp, buf := newPrinter()
	pp.Recurrence(r, r.Preview(start))
	got := buf.String()
	for _, want := range []string{"Every day", "  1  Tue Jun 18, 2024 08:00", "  2  Wed Jun 19, 2024 08:00"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
}

func TestScoreBar(t *testing.T) {
	pp, buf := newPrinter()
	pp.ScoreBar("Mon Jun 17", 55)
	want := "Mon Jun 17 " + strings.Repeat("█", 11) + strings.Repeat("░", 9) + "  55\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestScoreWithoutData(t *testing.T) {
	pp, buf := newPrinter()
	pp.Score("today", score.Result{})
	if got := buf.String(); got != "today  no data\n" {
		t.Fatalf("got %q", got)
	}
}

func TestTimer(t *testing.T) {
	pp, buf := newPrinter()
	pp.Timer(nil)
	if got := buf.String(); got != "no timer running\n" {
		t.Fatalf("got %q", got)
	}

	buf.Reset()
	pp.Timer(&model.TimeEntry{ID: 1, Description: "deep work", Start: model.DateTime{Time: now.Add(-90*time.Minute - 5*time.Second)}})
	if got := buf.String(); !strings.HasPrefix(got, "⏱ 1:30:05  deep work  since 08:29") {
		t.Fatalf("got %q", got)
	}
}

func TestMoodsNewestFirst(t *testing.T) {
	pp, buf := newPrinter()
	pp.Moods([]model.MoodEntry{
		{ID: 1, EntryDate: *date(2024, 6, 17), MoodScore: 2},
		{ID: 2, EntryDate: *date(2024, 6, 18), MoodScore: 4, ContextTags: []string{"work", "sleep"}},
	})
	lines := strings.Split(buf.String(), "\n")
	if want := "Tue Jun 18 ☺  ■■■■□ 4/5  #work #sleep"; lines[0] != want {
		t.Fatalf("line 0 = %q want %q", lines[0], want)
	}
	if !strings.HasPrefix(lines[1], "Mon Jun 17") {
		t.Fatalf("line 1 = %q", lines[1])
	}
}

func TestClock(t *testing.T) {
	if got := Clock(26*time.Hour + 3*time.Minute + 9500*time.Millisecond); got != "26:03:09" {
		t.Fatalf("Clock = %q", got)
	}
}

func TestEmit(t *testing.T) {
	pp, buf := newPrinter()
	called := false
	if err := pp.Emit(1, func() { called = true }); err != nil || !called {
		t.Fatalf("pretty path: called=%t err=%v", called, err)
	}
	pp.Format = FormatJSON
	called = false
	if err := pp.Emit(map[string]int{"n": 1}, func() { called = true }); err != nil {
		t.Fatal(err)
	}
	if called || !strings.Contains(buf.String(), `"n": 1`) {
		t.Fatalf("json path: called=%t out=%q", called, buf.String())
	}
}
