package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/edc-app/edc/pkg/model"
)

// Habits lists every habit, cached.
func (s *Service) Habits(ctx context.Context) ([]model.Habit, error) {
	return cached(ctx, s, keyHabits, func(ctx context.Context) ([]model.Habit, error) {
		return s.API.ListHabits(ctx)
	})
}

// Habit finds a habit by id or case-insensitive name.
func (s *Service) Habit(ctx context.Context, ref string) (model.Habit, error) {
	habits, err := s.Habits(ctx)
	if err != nil {
		return model.Habit{}, err
	}
	for _, h := range habits {
		if fmt.Sprint(h.ID) == ref || strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}
	return model.Habit{}, fmt.Errorf("%w: habit %q", ErrNotFound, ref)
}

// Completions lists habit completions logged in [from, to], cached.
func (s *Service) Completions(ctx context.Context, from, to time.Time) ([]model.HabitCompletion, error) {
	return cached(ctx, s, rangeKey(keyCompletions, from, to), func(ctx context.Context) ([]model.HabitCompletion, error) {
		return s.API.ListCompletions(ctx, from, to)
	})
}

// AddHabit validates and creates a habit.
func (s *Service) AddHabit(ctx context.Context, in model.HabitInput) (model.Habit, error) {
	if err := s.writable(); err != nil {
		return model.Habit{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.CompletionType == "" {
		in.CompletionType = model.CompletionBoolean
	}
	if err := in.Validate(); err != nil {
		return model.Habit{}, err
	}
	h, err := s.API.CreateHabit(ctx, in)
	if err != nil {
		return model.Habit{}, err
	}
	s.invalidate(ctx, keyHabits, keyAnalytics)
	return h, nil
}

// CheckHabit logs value for habit on date. A zero value on a boolean habit
// counts as done.
func (s *Service) CheckHabit(ctx context.Context, h model.Habit, date time.Time, value float64) (model.HabitCompletion, error) {
	if err := s.writable(); err != nil {
		return model.HabitCompletion{}, err
	}
	if value == 0 && h.CompletionType == model.CompletionBoolean {
		value = 1
	}
	in := model.CompletionInput{HabitID: h.ID, Date: model.NewDate(date), Value: value}
	if err := in.Validate(); err != nil {
		return model.HabitCompletion{}, err
	}
	c, err := s.API.CompleteHabit(ctx, in)
	if err != nil {
		return model.HabitCompletion{}, err
	}
	s.invalidate(ctx, keyCompletions, keyAnalytics)
	return c, nil
}

// Moods lists mood entries in [from, to] by date, cached.
func (s *Service) Moods(ctx context.Context, from, to time.Time) ([]model.MoodEntry, error) {
	list, err := cached(ctx, s, rangeKey(keyMood, from, to), func(ctx context.Context) ([]model.MoodEntry, error) {
		return s.API.ListMood(ctx, from, to)
	})
	if err != nil {
		return nil, err
	}
	out := append([]model.MoodEntry(nil), list...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].EntryDate.Before(out[j].EntryDate.Time) })
	return out, nil
}

// LogMood validates and records a mood entry.
func (s *Service) LogMood(ctx context.Context, in model.MoodInput) (model.MoodEntry, error) {
	if err := s.writable(); err != nil {
		return model.MoodEntry{}, err
	}
	in.Normalize(s.now())
	if err := in.Validate(); err != nil {
		return model.MoodEntry{}, err
	}
	m, err := s.API.CreateMood(ctx, in)
	if err != nil {
		return model.MoodEntry{}, err
	}
	s.invalidate(ctx, keyMood, keyAnalytics)
	return m, nil
}

// ActiveTimer returns the running time entry, or nil. It is never cached.
func (s *Service) ActiveTimer(ctx context.Context) (*model.TimeEntry, error) {
	if s.API == nil {
		return nil, ErrNoAPI
	}
	if s.Settings.Offline {
		return nil, fmt.Errorf("%w: the timer needs the api", ErrOffline)
	}
	return s.API.ActiveTimeEntry(ctx)
}

// StartTimer starts tracking, stopping nothing: the API rejects a second
// running entry.
func (s *Service) StartTimer(ctx context.Context, in model.TimerInput) (model.TimeEntry, error) {
	if err := s.writable(); err != nil {
		return model.TimeEntry{}, err
	}
	in.Description = strings.TrimSpace(in.Description)
	return s.API.StartTimer(ctx, in)
}

// StopTimer stops the running entry.
func (s *Service) StopTimer(ctx context.Context) (model.TimeEntry, error) {
	if err := s.writable(); err != nil {
		return model.TimeEntry{}, err
	}
	active, err := s.API.ActiveTimeEntry(ctx)
	if err != nil {
		return model.TimeEntry{}, err
	}
	if active == nil {
		return model.TimeEntry{}, fmt.Errorf("%w: no running timer", ErrNotFound)
	}
	return s.API.StopTimer(ctx, active.ID)
}
