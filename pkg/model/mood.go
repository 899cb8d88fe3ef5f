package model

import (
	"strings"
	"time"
)

const (
	MinMood = 1
	MaxMood = 5
)

// MoodEntry mirrors /mood.
type MoodEntry struct {
	ID          int64    `json:"id"`
	EntryDate   Date     `json:"entry_date"`
	MoodScore   int      `json:"mood_score"`
	EnergyLevel *int     `json:"energy_level,omitempty"`
	ContextTags []string `json:"context_tags,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// MoodInput is the create payload for a mood entry.
type MoodInput struct {
	EntryDate   Date     `json:"entry_date"`
	MoodScore   int      `json:"mood_score"`
	EnergyLevel *int     `json:"energy_level,omitempty"`
	ContextTags []string `json:"context_tags,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// Normalize trims and de-duplicates tags and defaults the date to now.
func (in *MoodInput) Normalize(now time.Time) {
	if in.EntryDate.IsZero() {
		in.EntryDate = NewDate(now)
	}
	seen := make(map[string]bool, len(in.ContextTags))
	tags := make([]string, 0, len(in.ContextTags))
	for _, tag := range in.ContextTags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	in.ContextTags = tags
	in.Notes = strings.TrimSpace(in.Notes)
}

// Validate checks the form rules for a mood entry.
func (in MoodInput) Validate() error {
	var errs ValidationErrors
	if in.MoodScore < MinMood || in.MoodScore > MaxMood {
		errs.add("mood_score", "must be between %d and %d", MinMood, MaxMood)
	}
	if in.EnergyLevel != nil && (*in.EnergyLevel < MinMood || *in.EnergyLevel > MaxMood) {
		errs.add("energy_level", "must be between %d and %d", MinMood, MaxMood)
	}
	if in.EntryDate.IsZero() {
		errs.add("entry_date", "is required")
	}
	return errs.Err()
}
