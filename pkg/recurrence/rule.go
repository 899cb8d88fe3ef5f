// Package recurrence expands user-defined repetition rules (frequency,
// interval and end condition) into concrete calendar days.
package recurrence

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/edc-app/edc/pkg/timeutil"
)

// Frequency is the unit a rule advances by.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// ParseFrequency converts user input to a Frequency.
func ParseFrequency(raw string) (Frequency, error) {
	switch f := Frequency(strings.ToLower(strings.TrimSpace(raw))); f {
	case Daily, Weekly, Monthly, Yearly:
		return f, nil
	case "day":
		return Daily, nil
	case "week":
		return Weekly, nil
	case "month":
		return Monthly, nil
	case "year", "annually":
		return Yearly, nil
	}
	return "", fmt.Errorf("recurrence: unknown frequency %q", raw)
}

// EndType selects how a series terminates.
type EndType string

const (
	EndNever EndType = "never"
	EndAfter EndType = "after"
	EndOn    EndType = "on"
)

// End is the termination condition of a series. Count is used with EndAfter,
// Until (inclusive, compared by calendar day) with EndOn.
type End struct {
	Type  EndType   `json:"type"`
	Count int       `json:"count,omitempty"`
	Until time.Time `json:"until,omitempty"`
}

// Rule describes a repeating series.
type Rule struct {
	Frequency   Frequency      `json:"frequency"`
	Interval    int            `json:"interval"`
	DaysOfWeek  []time.Weekday `json:"days_of_week,omitempty"`
	DayOfMonth  int            `json:"day_of_month,omitempty"`
	MonthOfYear time.Month     `json:"month_of_year,omitempty"`
	End         End            `json:"end"`
	// Exceptions are YYYY-MM-DD days removed from the series.
	Exceptions []string `json:"exceptions,omitempty"`
}

// PreviewLimit is the number of upcoming dates shown for a rule.
const PreviewLimit = 10

// maxSteps bounds how many candidate dates a single expansion may inspect, so
// rules whose every occurrence is an exception still terminate.
const maxSteps = 100000

var (
	ErrInterval   = errors.New("recurrence: interval must be at least 1")
	ErrCount      = errors.New("recurrence: occurrence count must be at least 1")
	ErrUntil      = errors.New("recurrence: end date is required")
	ErrDayOfMonth = errors.New("recurrence: day of month must be between 1 and 31")
	ErrMonth      = errors.New("recurrence: month must be between 1 and 12")
)

// Validate reports the first problem with the rule, if any.
func (r Rule) Validate() error {
	if _, err := ParseFrequency(string(r.Frequency)); err != nil {
		return err
	}
	if r.Interval < 1 {
		return ErrInterval
	}
	for _, d := range r.DaysOfWeek {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("recurrence: invalid weekday %d", d)
		}
	}
	if r.DayOfMonth < 0 || r.DayOfMonth > 31 {
		return ErrDayOfMonth
	}
	if r.MonthOfYear < 0 || r.MonthOfYear > 12 {
		return ErrMonth
	}
	switch r.End.Type {
	case "", EndNever:
	case EndAfter:
		if r.End.Count < 1 {
			return ErrCount
		}
	case EndOn:
		if r.End.Until.IsZero() {
			return ErrUntil
		}
	default:
		return fmt.Errorf("recurrence: unknown end type %q", r.End.Type)
	}
	for _, ex := range r.Exceptions {
		if _, err := time.Parse(timeutil.LayoutDate, ex); err != nil {
			return fmt.Errorf("recurrence: invalid exception date %q", ex)
		}
	}
	return nil
}

// Preview returns the next PreviewLimit occurrences starting at start.
func (r Rule) Preview(start time.Time) []time.Time {
	return r.Take(start, PreviewLimit)
}

// MaxPreview is the most occurrences a preview of r may list: PreviewLimit,
// or the occurrence count of an EndAfter rule when that is larger.
func (r Rule) MaxPreview() int {
	if r.End.Type == EndAfter {
		return max(PreviewLimit, r.End.Count)
	}
	return PreviewLimit
}

// Take returns at most n occurrences of the series anchored at start, in
// order, at the time of day of start. Exception days are skipped but still
// consume an occurrence of an EndAfter count.
func (r Rule) Take(start time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	out := make([]time.Time, 0, n)
	r.expand(start, func(d time.Time) bool {
		out = append(out, atClock(d, start))
		return len(out) < n
	})
	return out
}

func atClock(day, clock time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(), day.Location())
}

// Between returns every occurrence falling on a day in [from, to].
func (r Rule) Between(start, from, to time.Time) []time.Time {
	first := timeutil.StartOfDay(from.In(start.Location()))
	last := timeutil.StartOfDay(to.In(start.Location()))
	if last.Before(first) {
		return nil
	}
	var out []time.Time
	r.expandUntil(start, last, func(d time.Time) bool {
		if !d.Before(first) {
			out = append(out, d)
		}
		return true
	})
	return out
}

func (r Rule) expand(start time.Time, yield func(time.Time) bool) {
	r.expandUntil(start, time.Time{}, yield)
}

// expandUntil walks the series, calling yield for each non-excepted
// occurrence until yield returns false, the end condition is reached or the
// candidate passes horizon (when set).
func (r Rule) expandUntil(start, horizon time.Time, yield func(time.Time) bool) {
	if r.Validate() != nil {
		return
	}
	start = timeutil.StartOfDay(start)
	excluded := make(map[string]struct{}, len(r.Exceptions))
	for _, ex := range r.Exceptions {
		excluded[ex] = struct{}{}
	}
	var until time.Time
	if r.End.Type == EndOn {
		u := r.End.Until
		until = time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, start.Location())
	}

	produced := 0
	r.candidates(start, func(d time.Time) bool {
		if !horizon.IsZero() && d.After(horizon) {
			return false
		}
		if !until.IsZero() && d.After(until) {
			return false
		}
		if r.End.Type == EndAfter && produced >= r.End.Count {
			return false
		}
		produced++
		if _, skip := excluded[timeutil.DateKey(d)]; skip {
			return true
		}
		return yield(d)
	})
}

// candidates yields the raw series (before exceptions and end conditions).
func (r Rule) candidates(start time.Time, yield func(time.Time) bool) {
	loc := start.Location()
	steps := 0
	emit := func(d time.Time) bool {
		steps++
		return steps <= maxSteps && yield(d)
	}
	switch r.Frequency {
	case Daily:
		for k := 0; ; k += r.Interval {
			if !emit(timeutil.AddDays(start, k)) {
				return
			}
		}
	case Weekly:
		days := r.weekdays(start)
		anchor := timeutil.WeekStart(start, time.Sunday)
		for week := 0; ; week += r.Interval {
			for _, wd := range days {
				d := timeutil.AddDays(anchor, week*7+int(wd))
				if d.Before(start) {
					continue
				}
				if !emit(d) {
					return
				}
			}
		}
	case Monthly:
		dom := r.DayOfMonth
		if dom == 0 {
			dom = start.Day()
		}
		for k := 0; ; k += r.Interval {
			d := clampDate(start.Year(), start.Month()+time.Month(k), dom, loc)
			if d.Before(start) {
				steps++
				if steps > maxSteps {
					return
				}
				continue
			}
			if !emit(d) {
				return
			}
		}
	case Yearly:
		month := r.MonthOfYear
		if month == 0 {
			month = start.Month()
		}
		dom := r.DayOfMonth
		if dom == 0 {
			dom = start.Day()
		}
		for k := 0; ; k += r.Interval {
			d := clampDate(start.Year()+k, month, dom, loc)
			if d.Before(start) {
				steps++
				if steps > maxSteps {
					return
				}
				continue
			}
			if !emit(d) {
				return
			}
		}
	}
}

func (r Rule) weekdays(start time.Time) []time.Weekday {
	if len(r.DaysOfWeek) == 0 {
		return []time.Weekday{start.Weekday()}
	}
	seen := make(map[time.Weekday]bool, len(r.DaysOfWeek))
	days := make([]time.Weekday, 0, len(r.DaysOfWeek))
	for _, d := range r.DaysOfWeek {
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// clampDate builds year/month/day, pulling days past the end of the month
// back to its last day (Jan 31 monthly gives Feb 29, Mar 31, Apr 30, ...).
func clampDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	if n := timeutil.DaysIn(first); day > n {
		day = n
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, loc)
}
