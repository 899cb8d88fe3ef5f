package recurrence

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/edc-app/edc/pkg/timeutil"
)

const layoutCompact = "20060102"

var weekdayCodes = []string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// String renders the rule in the RRULE-style text stored on tasks and events,
// e.g. FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE;COUNT=5.
func (r Rule) String() string {
	parts := []string{"FREQ=" + strings.ToUpper(string(r.Frequency))}
	if r.Interval > 1 {
		parts = append(parts, fmt.Sprintf("INTERVAL=%d", r.Interval))
	}
	if len(r.DaysOfWeek) > 0 {
		codes := make([]string, 0, len(r.DaysOfWeek))
		for _, d := range r.weekdays(time.Time{}) {
			codes = append(codes, weekdayCodes[d])
		}
		parts = append(parts, "BYDAY="+strings.Join(codes, ","))
	}
	if r.DayOfMonth > 0 {
		parts = append(parts, fmt.Sprintf("BYMONTHDAY=%d", r.DayOfMonth))
	}
	if r.MonthOfYear > 0 {
		parts = append(parts, fmt.Sprintf("BYMONTH=%d", int(r.MonthOfYear)))
	}
	switch r.End.Type {
	case EndAfter:
		parts = append(parts, fmt.Sprintf("COUNT=%d", r.End.Count))
	case EndOn:
		parts = append(parts, "UNTIL="+r.End.Until.Format(layoutCompact))
	}
	if len(r.Exceptions) > 0 {
		ex := make([]string, 0, len(r.Exceptions))
		for _, e := range r.Exceptions {
			ex = append(ex, strings.ReplaceAll(e, "-", ""))
		}
		sort.Strings(ex)
		parts = append(parts, "EXDATE="+strings.Join(ex, ","))
	}
	return strings.Join(parts, ";")
}

// Parse reads the text produced by String. An optional "RRULE:" prefix is
// accepted, and UNTIL may carry a time part which is ignored.
func Parse(text string) (Rule, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(strings.TrimPrefix(text, "RRULE:"), "rrule:")
	if text == "" {
		return Rule{}, fmt.Errorf("recurrence: empty rule")
	}
	r := Rule{Interval: 1, End: End{Type: EndNever}}
	for _, part := range strings.Split(text, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return Rule{}, fmt.Errorf("recurrence: malformed part %q", part)
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		var err error
		switch key {
		case "FREQ":
			r.Frequency, err = ParseFrequency(value)
		case "INTERVAL":
			r.Interval, err = strconv.Atoi(value)
		case "BYDAY":
			for _, code := range strings.Split(value, ",") {
				d, derr := weekdayFromCode(code)
				if derr != nil {
					return Rule{}, derr
				}
				r.DaysOfWeek = append(r.DaysOfWeek, d)
			}
		case "BYMONTHDAY":
			r.DayOfMonth, err = strconv.Atoi(value)
		case "BYMONTH":
			var m int
			m, err = strconv.Atoi(value)
			r.MonthOfYear = time.Month(m)
		case "COUNT":
			r.End.Type = EndAfter
			r.End.Count, err = strconv.Atoi(value)
		case "UNTIL":
			r.End.Type = EndOn
			r.End.Until, err = parseCompact(value)
		case "EXDATE":
			for _, raw := range strings.Split(value, ",") {
				d, derr := parseCompact(raw)
				if derr != nil {
					return Rule{}, derr
				}
				r.Exceptions = append(r.Exceptions, timeutil.DateKey(d))
			}
		default:
			return Rule{}, fmt.Errorf("recurrence: unsupported part %q", key)
		}
		if err != nil {
			return Rule{}, fmt.Errorf("recurrence: invalid %s %q: %w", key, value, err)
		}
	}
	if r.Frequency == "" {
		return Rule{}, fmt.Errorf("recurrence: FREQ is required")
	}
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

func parseCompact(v string) (time.Time, error) {
	v = strings.ReplaceAll(strings.TrimSpace(v), "-", "")
	if len(v) > 8 {
		v = v[:8]
	}
	return time.ParseInLocation(layoutCompact, v, time.Local)
}

func weekdayFromCode(code string) (time.Weekday, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for i, c := range weekdayCodes {
		if c == code {
			return time.Weekday(i), nil
		}
	}
	return time.Sunday, fmt.Errorf("recurrence: unknown weekday %q", code)
}

// Describe renders the rule as a short English sentence for previews.
func (r Rule) Describe() string {
	unit := map[Frequency]string{Daily: "day", Weekly: "week", Monthly: "month", Yearly: "year"}[r.Frequency]
	if unit == "" {
		return "Does not repeat"
	}
	var b strings.Builder
	if r.Interval > 1 {
		fmt.Fprintf(&b, "Every %d %ss", r.Interval, unit)
	} else {
		b.WriteString("Every " + unit)
	}
	switch r.Frequency {
	case Weekly:
		if len(r.DaysOfWeek) > 0 {
			names := make([]string, 0, len(r.DaysOfWeek))
			for _, d := range r.weekdays(time.Time{}) {
				names = append(names, d.String()[:3])
			}
			b.WriteString(" on " + strings.Join(names, ", "))
		}
	case Monthly:
		if r.DayOfMonth > 0 {
			fmt.Fprintf(&b, " on day %d", r.DayOfMonth)
		}
	case Yearly:
		if r.MonthOfYear > 0 && r.DayOfMonth > 0 {
			fmt.Fprintf(&b, " on %s %d", r.MonthOfYear, r.DayOfMonth)
		}
	}
	switch r.End.Type {
	case EndAfter:
		if r.End.Count == 1 {
			b.WriteString(", once")
		} else {
			fmt.Fprintf(&b, ", %d times", r.End.Count)
		}
	case EndOn:
		b.WriteString(", until " + r.End.Until.Format("Jan 2, 2006"))
	}
	if n := len(r.Exceptions); n > 0 {
		fmt.Fprintf(&b, " (%d skipped)", n)
	}
	return b.String()
}
