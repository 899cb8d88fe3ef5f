package model

import "time"

// Category groups tasks.
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// TimeEntry is a tracked block of work, open while End is nil.
type TimeEntry struct {
	ID          int64     `json:"id"`
	TaskID      *int64    `json:"task_id,omitempty"`
	Description string    `json:"description,omitempty"`
	Start       DateTime  `json:"start_time"`
	End         *DateTime `json:"end_time,omitempty"`
}

// Running reports whether the entry has not been stopped.
func (e TimeEntry) Running() bool {
	return e.End == nil || e.End.IsZero()
}

// Elapsed is the tracked duration, measured against now while running.
func (e TimeEntry) Elapsed(now time.Time) time.Duration {
	end := now
	if !e.Running() {
		end = e.End.Time
	}
	if end.Before(e.Start.Time) {
		return 0
	}
	return end.Sub(e.Start.Time)
}
