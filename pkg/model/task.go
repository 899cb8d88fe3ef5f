package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/edc-app/edc/pkg/recurrence"
	"github.com/edc-app/edc/pkg/timeutil"
)

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists priorities from most to least urgent.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// Rank orders priorities; higher is more urgent. Unknown values rank lowest.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// ParsePriority converts user input, defaulting empty input to medium.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if p == "" {
		return PriorityMedium, nil
	}
	if p.Rank() == 0 {
		return "", fmt.Errorf("model: unknown priority %q", raw)
	}
	return p, nil
}

// Status of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists statuses in board column order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}
}

// Label is the human column title.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "To do"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Done"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// ParseStatus accepts the wire values plus a few common aliases.
func ParseStatus(raw string) (Status, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	v = strings.NewReplacer("-", "_", " ", "_").Replace(v)
	switch v {
	case "", "pending", "todo":
		return StatusPending, nil
	case "in_progress", "doing", "started":
		return StatusInProgress, nil
	case "completed", "done":
		return StatusCompleted, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	}
	return "", fmt.Errorf("model: unknown status %q", raw)
}

// Subtask is a checklist item nested in a task.
type Subtask struct {
	ID        int64  `json:"id,omitempty"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Task mirrors /tasks.
type Task struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	Priority          Priority  `json:"priority"`
	Status            Status    `json:"status"`
	Completed         bool      `json:"completed"`
	DueDate           *Date     `json:"due_date,omitempty"`
	CategoryID        *int64    `json:"category_id,omitempty"`
	TagIDs            []int64   `json:"tag_ids,omitempty"`
	EstimatedMinutes  int       `json:"estimated_minutes,omitempty"`
	ActualMinutes     int       `json:"actual_minutes,omitempty"`
	RecurrencePattern string    `json:"recurrence_pattern,omitempty"`
	Subtasks          []Subtask `json:"subtasks,omitempty"`
	Position          int       `json:"position"`
	CreatedAt         *DateTime `json:"created_at,omitempty"`
	UpdatedAt         *DateTime `json:"updated_at,omitempty"`
	CompletedAt       *DateTime `json:"completed_at,omitempty"`
}

// Due returns the due day, if any.
func (t Task) Due() (time.Time, bool) {
	if t.DueDate == nil || t.DueDate.IsZero() {
		return time.Time{}, false
	}
	return t.DueDate.Time, true
}

// IsDone reports completion; the API sets either flag depending on the path
// that completed the task.
func (t Task) IsDone() bool {
	return t.Completed || t.Status == StatusCompleted
}

// IsOverdue reports an open task whose due day is before now's day.
func (t Task) IsOverdue(now time.Time) bool {
	due, ok := t.Due()
	if !ok || t.IsDone() || t.Status == StatusCancelled {
		return false
	}
	return timeutil.DateKey(due) < timeutil.DateKey(now)
}

// CompletedOn returns the day the task was completed, falling back to the
// last update when the API does not report a completion timestamp.
func (t Task) CompletedOn() (time.Time, bool) {
	if !t.IsDone() {
		return time.Time{}, false
	}
	if t.CompletedAt != nil && !t.CompletedAt.IsZero() {
		return t.CompletedAt.Time, true
	}
	if t.UpdatedAt != nil && !t.UpdatedAt.IsZero() {
		return t.UpdatedAt.Time, true
	}
	return time.Time{}, false
}

// SubtaskProgress counts completed subtasks.
func (t Task) SubtaskProgress() (done, total int) {
	for _, s := range t.Subtasks {
		if s.Completed {
			done++
		}
	}
	return done, len(t.Subtasks)
}

// Recurrence parses RecurrencePattern.
func (t Task) Recurrence() (recurrence.Rule, bool) {
	if strings.TrimSpace(t.RecurrencePattern) == "" {
		return recurrence.Rule{}, false
	}
	r, err := recurrence.Parse(t.RecurrencePattern)
	if err != nil {
		return recurrence.Rule{}, false
	}
	return r, true
}

// TaskInput is the create/update payload for a task.
type TaskInput struct {
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	Priority          Priority  `json:"priority"`
	Status            Status    `json:"status"`
	Completed         bool      `json:"completed"`
	DueDate           *Date     `json:"due_date,omitempty"`
	CategoryID        *int64    `json:"category_id,omitempty"`
	TagIDs            []int64   `json:"tag_ids,omitempty"`
	EstimatedMinutes  int       `json:"estimated_minutes,omitempty"`
	ActualMinutes     int       `json:"actual_minutes,omitempty"`
	RecurrencePattern string    `json:"recurrence_pattern,omitempty"`
	Subtasks          []Subtask `json:"subtasks,omitempty"`
	Position          int       `json:"position"`
}

// InputFrom copies the editable fields of an existing task.
func InputFrom(t Task) TaskInput {
	return TaskInput{
		Title:             t.Title,
		Description:       t.Description,
		Priority:          t.Priority,
		Status:            t.Status,
		Completed:         t.Completed,
		DueDate:           t.DueDate,
		CategoryID:        t.CategoryID,
		TagIDs:            append([]int64(nil), t.TagIDs...),
		EstimatedMinutes:  t.EstimatedMinutes,
		ActualMinutes:     t.ActualMinutes,
		RecurrencePattern: t.RecurrencePattern,
		Subtasks:          append([]Subtask(nil), t.Subtasks...),
		Position:          t.Position,
	}
}

// Normalize trims text fields, fills defaults and keeps Completed and Status
// consistent with each other.
func (in *TaskInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.RecurrencePattern = strings.TrimSpace(in.RecurrencePattern)
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if in.Status == "" {
		in.Status = StatusPending
	}
	if in.Completed {
		in.Status = StatusCompleted
	}
	if in.Status == StatusCompleted {
		in.Completed = true
	}
}

// Validate checks the form rules for a task.
func (in TaskInput) Validate() error {
	var errs ValidationErrors
	errs.requireTitle("title", in.Title)
	if in.Priority != "" && in.Priority.Rank() == 0 {
		errs.add("priority", "must be one of low, medium, high")
	}
	if in.Status != "" {
		if _, err := ParseStatus(string(in.Status)); err != nil {
			errs.add("status", "is not a known status")
		}
	}
	if in.EstimatedMinutes < 0 {
		errs.add("estimated_minutes", "must not be negative")
	}
	if in.ActualMinutes < 0 {
		errs.add("actual_minutes", "must not be negative")
	}
	if in.RecurrencePattern != "" {
		r, err := recurrence.Parse(in.RecurrencePattern)
		switch {
		case err != nil:
			errs.add("recurrence_pattern", "%v", err)
		case in.DueDate == nil || in.DueDate.IsZero():
			errs.add("due_date", "is required for a recurring task")
		case r.End.Type == recurrence.EndOn && r.End.Until.Before(in.DueDate.Time):
			errs.add("recurrence_pattern", "ends before the due date")
		}
	}
	for i, s := range in.Subtasks {
		if strings.TrimSpace(s.Title) == "" {
			errs.add(fmt.Sprintf("subtasks[%d].title", i), "is required")
		}
	}
	return errs.Err()
}
