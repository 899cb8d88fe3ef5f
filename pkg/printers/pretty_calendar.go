package printers

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/edc-app/edc/pkg/calendar"
	"github.com/edc-app/edc/pkg/glyph"
	"github.com/edc-app/edc/pkg/model"
	"github.com/edc-app/edc/pkg/recurrence"
	"github.com/edc-app/edc/pkg/score"
)

// ScoreColor is the colour a score level is drawn in.
func ScoreColor(l score.Level) *color.Color {
	switch l {
	case score.LevelExcellent:
		return color.New(color.FgGreen, color.Bold)
	case score.LevelGood:
		return color.New(color.FgHiGreen)
	case score.LevelFair:
		return color.New(color.FgYellow)
	case score.LevelLow:
		return color.New(color.FgRed)
	}
	return color.New(color.Faint)
}

// Calendar prints grid in the layout of its view. Habit names are looked up
// in habits.
func (pp *PrettyPrint) Calendar(g calendar.Grid, habits []model.Habit) {
	tf := color.New(color.Bold, color.Underline)
	_, _ = tf.Fprintln(pp.out(), g.Title)
	pp.NewLine()

	names := make(map[int64]string, len(habits))
	for _, h := range habits {
		names[h.ID] = h.Name
	}

	switch g.View {
	case calendar.Month:
		pp.MonthGrid(g)
		pp.upcoming(g, names)
	case calendar.Agenda:
		printed := false
		for _, d := range g.Days {
			if d.Empty() {
				continue
			}
			printed = true
			pp.Day(d, names)
		}
		if !printed {
			pp.none()
		}
	default:
		for _, d := range g.Days {
			pp.Day(d, names)
		}
	}
}

// MonthGrid prints the six-week grid. Days outside the month are faint,
// today is underlined, and days with content carry a dot coloured by score.
func (pp *PrettyPrint) MonthGrid(g calendar.Grid) {
	if len(g.Days) == 0 {
		return
	}
	hf := color.New(color.FgWhite, color.Italic)
	first := g.Days[0].Date.Weekday()
	for i := 0; i < 7; i++ {
		name := (first + time.Weekday(i)) % 7
		_, _ = hf.Fprintf(pp.out(), " %-3s ", name.String()[0:2])
	}
	pp.NewLine()

	for _, week := range g.Weeks() {
		for _, d := range week {
			c := color.New()
			switch {
			case !d.InPeriod:
				c = color.New(color.Faint)
			case d.IsToday:
				c = color.New(color.Bold, color.Underline)
			}
			_, _ = c.Fprintf(pp.out(), " %2d", d.Date.Day())

			mark := " "
			if !d.Empty() {
				mark = "•"
			}
			_, _ = ScoreColor(d.Score.Level).Fprint(pp.out(), mark+" ")
		}
		pp.NewLine()
	}
	pp.NewLine()
}

// upcoming lists the non-empty in-month days under a month grid.
func (pp *PrettyPrint) upcoming(g calendar.Grid, names map[int64]string) {
	for _, d := range g.Days {
		if !d.InPeriod || d.Empty() {
			continue
		}
		pp.Day(d, names)
	}
}

// Day prints the heading and every item of one day.
func (pp *PrettyPrint) Day(d calendar.Day, names map[int64]string) {
	h := color.New(color.Bold)
	if d.IsToday {
		h = color.New(color.Bold, color.FgHiCyan)
	}
	_, _ = h.Fprint(pp.out(), d.Date.Format("Mon Jan 2"))
	if d.Score.HasData {
		_, _ = ScoreColor(d.Score.Level).Fprintf(pp.out(), "  %d", d.Score.Value)
	}
	pp.NewLine()

	if d.Empty() {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(pp.out(), "  nothing planned")
		pp.NewLine()
		return
	}

	for _, e := range d.Events {
		_, _ = fmt.Fprintf(pp.out(), "  %s %s %s", glyph.Event, EventTime(e), pp.clip(e.Title))
		if e.RecurrenceRule != "" {
			_, _ = fmt.Fprintf(pp.out(), " %s", glyph.Recurring)
		}
		if e.Location != "" {
			_, _ = color.New(color.Faint).Fprintf(pp.out(), "  @ %s", e.Location)
		}
		pp.NewLine()
	}
	for _, t := range d.Tasks {
		_, _ = fmt.Fprintf(pp.out(), "  %s %s\n", glyph.Task(t), pp.clip(t.Title))
	}
	if len(d.Completions) > 0 {
		done := make([]string, 0, len(d.Completions))
		for _, c := range d.Completions {
			name := names[c.HabitID]
			if name == "" {
				name = fmt.Sprintf("habit %d", c.HabitID)
			}
			done = append(done, name)
		}
		sort.Strings(done)
		_, _ = fmt.Fprintf(pp.out(), "  %s %s\n", glyph.HabitDone, strings.Join(done, ", "))
	}
	if avg, ok := d.MoodAverage(); ok {
		_, _ = fmt.Fprintf(pp.out(), "  %s mood %.1f\n", glyph.Mood, avg)
	}
	pp.NewLine()
}

// Event prints one event with its date and repeat rule.
func (pp *PrettyPrint) Event(e model.CalendarEvent) {
	if pp.ShowID {
		pp.id(e.ID)
	}
	_, _ = fmt.Fprintf(pp.out(), "%s %s  %s  %s\n", glyph.Event, e.Start.Format("Mon Jan 2"), EventTime(e), pp.clip(e.Title))
	if r, ok := e.Recurrence(); ok {
		_, _ = color.New(color.Faint).Fprintf(pp.out(), "  %s %s\n", glyph.Recurring, r.Describe())
	}
}

// EventTime is "all day" or the start-end clock range.
func EventTime(e model.CalendarEvent) string {
	if e.AllDay {
		return "all day    "
	}
	if e.End.IsZero() {
		return e.Start.Format("15:04") + "      "
	}
	return e.Start.Format("15:04") + "-" + e.End.Format("15:04")
}

// Recurrence prints a rule description and its upcoming occurrences.
func (pp *PrettyPrint) Recurrence(r recurrence.Rule, dates []time.Time) {
	pp.Title(r.Describe())
	_, _ = color.New(color.Faint).Fprintln(pp.out(), r.String())
	if len(dates) == 0 {
		pp.none()
		return
	}
	for i, d := range dates {
		_, _ = fmt.Fprintf(pp.out(), "%3d  %s\n", i+1, d.Format("Mon Jan 2, 2006 15:04"))
	}
	pp.NewLine()
}
