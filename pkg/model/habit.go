package model

import (
	"fmt"
	"strings"
)

// CompletionType is how a habit is measured.
type CompletionType string

const (
	CompletionBoolean  CompletionType = "boolean"
	CompletionCount    CompletionType = "count"
	CompletionDuration CompletionType = "duration"
)

// ParseCompletionType defaults empty input to boolean.
func ParseCompletionType(raw string) (CompletionType, error) {
	switch c := CompletionType(strings.ToLower(strings.TrimSpace(raw))); c {
	case "":
		return CompletionBoolean, nil
	case CompletionBoolean, CompletionCount, CompletionDuration:
		return c, nil
	}
	return "", fmt.Errorf("model: unknown completion type %q", raw)
}

// Habit mirrors /habits.
type Habit struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	Active         bool           `json:"active"`
	CompletionType CompletionType `json:"completion_type"`
	TargetValue    float64        `json:"target_value,omitempty"`
	Unit           string         `json:"unit,omitempty"`
	Color          string         `json:"color,omitempty"`
}

// Target is the value a single day must reach to count as done.
func (h Habit) Target() float64 {
	if h.CompletionType == CompletionBoolean || h.TargetValue <= 0 {
		return 1
	}
	return h.TargetValue
}

// IsComplete reports whether a logged value satisfies the habit for a day.
func (h Habit) IsComplete(value float64) bool {
	return value >= h.Target()
}

// HabitCompletion is one logged value for a habit on a day.
type HabitCompletion struct {
	ID      int64   `json:"id,omitempty"`
	HabitID int64   `json:"habit_id"`
	Date    Date    `json:"completion_date"`
	Value   float64 `json:"value"`
}

// HabitInput is the create/update payload for a habit.
type HabitInput struct {
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	Active         bool           `json:"active"`
	CompletionType CompletionType `json:"completion_type"`
	TargetValue    float64        `json:"target_value,omitempty"`
	Unit           string         `json:"unit,omitempty"`
}

// Validate checks the form rules for a habit.
func (in HabitInput) Validate() error {
	var errs ValidationErrors
	errs.requireTitle("name", in.Name)
	ct, err := ParseCompletionType(string(in.CompletionType))
	if err != nil {
		errs.add("completion_type", "must be one of boolean, count, duration")
	}
	if err == nil && ct != CompletionBoolean && in.TargetValue <= 0 {
		errs.add("target_value", "must be greater than zero")
	}
	return errs.Err()
}

// CompletionInput logs a value for a habit on a day.
type CompletionInput struct {
	HabitID int64   `json:"habit_id"`
	Date    Date    `json:"completion_date"`
	Value   float64 `json:"value"`
}

// Validate checks a completion.
func (in CompletionInput) Validate() error {
	var errs ValidationErrors
	if in.HabitID <= 0 {
		errs.add("habit_id", "is required")
	}
	if in.Date.IsZero() {
		errs.add("completion_date", "is required")
	}
	if in.Value < 0 {
		errs.add("value", "must not be negative")
	}
	return errs.Err()
}
