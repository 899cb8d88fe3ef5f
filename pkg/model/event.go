package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/edc-app/edc/pkg/recurrence"
	"github.com/edc-app/edc/pkg/timeutil"
)

// CalendarEvent mirrors /calendar/events. The API has served both
// start_datetime/end_datetime/is_all_day and start_time/end_time/all_day;
// both spellings decode, the former is emitted.
type CalendarEvent struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Start          DateTime `json:"start_datetime"`
	End            DateTime `json:"end_datetime"`
	AllDay         bool     `json:"is_all_day"`
	Location       string   `json:"location,omitempty"`
	RecurrenceRule string   `json:"recurrence_rule,omitempty"`
	TaskID         *int64   `json:"task_id,omitempty"`
	Color          string   `json:"color,omitempty"`
}

func (e *CalendarEvent) UnmarshalJSON(b []byte) error {
	type plain CalendarEvent
	aux := struct {
		*plain
		StartTime    *DateTime `json:"start_time"`
		EndTime      *DateTime `json:"end_time"`
		LegacyAllDay *bool     `json:"all_day"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if e.Start.IsZero() && aux.StartTime != nil {
		e.Start = *aux.StartTime
	}
	if e.End.IsZero() && aux.EndTime != nil {
		e.End = *aux.EndTime
	}
	if aux.LegacyAllDay != nil && *aux.LegacyAllDay {
		e.AllDay = true
	}
	return nil
}

// SpanDays returns the first and last calendar day the event covers. An end
// exactly at midnight is exclusive, so an all-day event ending at the next
// midnight covers a single day.
func (e CalendarEvent) SpanDays() (time.Time, time.Time) {
	first := timeutil.StartOfDay(e.Start.Time)
	if e.End.IsZero() || !e.End.After(e.Start.Time) {
		return first, first
	}
	last := timeutil.StartOfDay(e.End.Time)
	if e.End.Equal(last) {
		last = timeutil.AddDays(last, -1)
	}
	if last.Before(first) {
		last = first
	}
	return first, last
}

// Duration of a single occurrence.
func (e CalendarEvent) Duration() time.Duration {
	if e.End.IsZero() || e.End.Before(e.Start.Time) {
		return 0
	}
	return e.End.Sub(e.Start.Time)
}

// Recurrence parses RecurrenceRule.
func (e CalendarEvent) Recurrence() (recurrence.Rule, bool) {
	if strings.TrimSpace(e.RecurrenceRule) == "" {
		return recurrence.Rule{}, false
	}
	r, err := recurrence.Parse(e.RecurrenceRule)
	if err != nil {
		return recurrence.Rule{}, false
	}
	return r, true
}

// Occurrence returns a copy of the event moved to day, keeping its time of
// day and duration.
func (e CalendarEvent) Occurrence(day time.Time) CalendarEvent {
	s := e.Start.Time
	start := time.Date(day.Year(), day.Month(), day.Day(), s.Hour(), s.Minute(), s.Second(), 0, s.Location())
	out := e
	out.Start = DateTime{Time: start}
	if !e.End.IsZero() {
		out.End = DateTime{Time: start.Add(e.Duration())}
	}
	return out
}

// EventInput is the create/update payload for an event.
type EventInput struct {
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Start          DateTime `json:"start_datetime"`
	End            DateTime `json:"end_datetime"`
	AllDay         bool     `json:"is_all_day"`
	Location       string   `json:"location,omitempty"`
	RecurrenceRule string   `json:"recurrence_rule,omitempty"`
	TaskID         *int64   `json:"task_id,omitempty"`
}

// Normalize trims text and snaps all-day events to whole days.
func (in *EventInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	in.RecurrenceRule = strings.TrimSpace(in.RecurrenceRule)
	if in.AllDay && !in.Start.IsZero() {
		in.Start = DateTime{Time: timeutil.StartOfDay(in.Start.Time)}
		end := in.End.Time
		if end.IsZero() || end.Before(in.Start.Time) {
			end = in.Start.Time
		}
		in.End = DateTime{Time: timeutil.AddDays(end, 1)}
	}
	if !in.AllDay && in.End.IsZero() && !in.Start.IsZero() {
		in.End = DateTime{Time: in.Start.Add(time.Hour)}
	}
}

// Validate checks the form rules for an event.
func (in EventInput) Validate() error {
	var errs ValidationErrors
	errs.requireTitle("title", in.Title)
	if in.Start.IsZero() {
		errs.add("start_datetime", "is required")
	}
	if !in.Start.IsZero() && !in.End.IsZero() && in.End.Before(in.Start.Time) {
		errs.add("end_datetime", "must not be before the start")
	}
	if in.RecurrenceRule != "" {
		if _, err := recurrence.Parse(in.RecurrenceRule); err != nil {
			errs.add("recurrence_rule", "%v", err)
		}
	}
	return errs.Err()
}
