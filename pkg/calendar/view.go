// Package calendar builds the day ranges of the calendar views and groups
// tasks, events, habit completions and mood entries into per-day buckets.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/edc-app/edc/pkg/timeutil"
)

// View is a calendar layout.
type View string

const (
	Month    View = "month"
	Week     View = "week"
	TwoWeek  View = "2week"
	ThreeDay View = "3day"
	OneDay   View = "day"
	Agenda   View = "agenda"
)

// MonthGridDays is the fixed size of a month grid: six full weeks.
const MonthGridDays = 42

// DefaultAgendaDays is the agenda window when none is configured.
const DefaultAgendaDays = 14

// Views lists every view in menu order.
func Views() []View {
	return []View{Month, Week, TwoWeek, ThreeDay, OneDay, Agenda}
}

// ParseView accepts view names and a few spellings of them.
func ParseView(raw string) (View, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	v = strings.NewReplacer("-", "", "_", "", " ", "").Replace(v)
	switch v {
	case "", "month", "m":
		return Month, nil
	case "week", "w", "1week":
		return Week, nil
	case "2week", "twoweek", "2weeks", "fortnight":
		return TwoWeek, nil
	case "3day", "threeday", "3days":
		return ThreeDay, nil
	case "day", "d", "today":
		return OneDay, nil
	case "agenda", "a", "list":
		return Agenda, nil
	}
	return "", fmt.Errorf("calendar: unknown view %q", raw)
}

// Options tune range generation.
type Options struct {
	// WeekStart is the first column of week-aligned views.
	WeekStart time.Weekday
	// WeeksToShow applies to the week view; values below 1 mean 1.
	WeeksToShow int
	// AgendaDays applies to the agenda view; values below 1 use the default.
	AgendaDays int
}

func (o Options) weeks() int {
	if o.WeeksToShow < 1 {
		return 1
	}
	return o.WeeksToShow
}

func (o Options) agendaDays() int {
	if o.AgendaDays < 1 {
		return DefaultAgendaDays
	}
	return o.AgendaDays
}

// Length is the number of days the view covers.
func Length(v View, opts Options) int {
	switch v {
	case Month:
		return MonthGridDays
	case Week:
		return 7 * opts.weeks()
	case TwoWeek:
		return 14
	case ThreeDay:
		return 3
	case Agenda:
		return opts.agendaDays()
	}
	return 1
}

// Start is the first day shown by the view for current.
func Start(v View, current time.Time, opts Options) time.Time {
	switch v {
	case Month:
		first := time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, current.Location())
		return timeutil.WeekStart(first, opts.WeekStart)
	case Week, TwoWeek:
		return timeutil.WeekStart(current, opts.WeekStart)
	}
	return timeutil.StartOfDay(current)
}

// Range generates the consecutive days of the view.
func Range(v View, current time.Time, opts Options) []time.Time {
	start := Start(v, current, opts)
	n := Length(v, opts)
	days := make([]time.Time, n)
	for i := range days {
		days[i] = timeutil.AddDays(start, i)
	}
	return days
}

// Step moves current by n periods of the view (negative n goes back).
func Step(v View, current time.Time, n int, opts Options) time.Time {
	switch v {
	case Month:
		first := time.Date(current.Year(), current.Month()+time.Month(n), 1, 0, 0, 0, 0, current.Location())
		day := current.Day()
		if last := timeutil.DaysIn(first); day > last {
			day = last
		}
		return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, current.Location())
	case Week:
		return timeutil.AddDays(current, 7*opts.weeks()*n)
	case TwoWeek:
		return timeutil.AddDays(current, 14*n)
	case ThreeDay:
		return timeutil.AddDays(current, 3*n)
	case Agenda:
		return timeutil.AddDays(current, opts.agendaDays()*n)
	}
	return timeutil.AddDays(current, n)
}

// Title is the heading for the view.
func Title(v View, current time.Time, opts Options) string {
	days := Range(v, current, opts)
	first, last := days[0], days[len(days)-1]
	switch v {
	case Month:
		return current.Format("January 2006")
	case OneDay:
		return current.Format(timeutil.LayoutDay)
	case Agenda:
		return fmt.Sprintf("Agenda · %s – %s", first.Format("Jan 2"), last.Format("Jan 2, 2006"))
	}
	if first.Year() != last.Year() {
		return fmt.Sprintf("%s – %s", first.Format("Jan 2, 2006"), last.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s – %s", first.Format("Jan 2"), last.Format("Jan 2, 2006"))
}
