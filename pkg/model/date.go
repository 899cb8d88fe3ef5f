// Package model mirrors the records served by the productivity API and the
// validated inputs used to create or update them.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/edc-app/edc/pkg/timeutil"
)

// Date is a calendar day. It accepts YYYY-MM-DD or an RFC3339 timestamp on
// the wire; for timestamps only the literal date part is kept so a due date
// never drifts to a neighbouring day.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day in the local zone.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.Local)}
}

// Key returns the YYYY-MM-DD bucketing key.
func (d Date) Key() string {
	return timeutil.DateKey(d.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", d.Key())), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	if len(raw) > len(timeutil.LayoutDate) {
		raw = raw[:len(timeutil.LayoutDate)]
	}
	t, err := time.ParseInLocation(timeutil.LayoutDate, raw, time.Local)
	if err != nil {
		return fmt.Errorf("model: invalid date %q", raw)
	}
	d.Time = t
	return nil
}

// DateTime is an instant. It accepts RFC3339, a naive "2006-01-02T15:04:05"
// (interpreted as local time) or a bare date, and is exposed in local time.
type DateTime struct {
	time.Time
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	timeutil.LayoutDate,
}

func (t DateTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", t.Format(time.RFC3339))), nil
}

func (t *DateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseDateTime(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// ParseDateTime parses any of the layouts DateTime accepts.
func ParseDateTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if v, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return v.Local(), nil
	}
	for _, layout := range naiveLayouts {
		if v, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return v, nil
		}
	}
	return time.Time{}, fmt.Errorf("model: invalid timestamp %q", raw)
}
