package app

import (
	"context"
	"time"

	"github.com/edc-app/edc/pkg/calendar"
	"github.com/edc-app/edc/pkg/model"
)

// Calendar fetches everything shown by view around date and builds the grid.
func (s *Service) Calendar(ctx context.Context, view calendar.View, date time.Time) (calendar.Grid, error) {
	days := calendar.Range(view, date, s.Settings.Calendar)
	data, err := s.rangeData(ctx, days[0], days[len(days)-1])
	if err != nil {
		return calendar.Grid{}, err
	}
	return calendar.Build(view, date, s.now(), data, s.Settings.Calendar), nil
}

// Day returns a single day with its productivity score.
func (s *Service) Day(ctx context.Context, date time.Time) (calendar.Day, error) {
	grid, err := s.Calendar(ctx, calendar.OneDay, date)
	if err != nil {
		return calendar.Day{}, err
	}
	return grid.Days[0], nil
}

func (s *Service) rangeData(ctx context.Context, from, to time.Time) (calendar.Data, error) {
	var (
		data calendar.Data
		err  error
	)
	if data.Tasks, err = s.AllTasks(ctx); err != nil {
		return data, err
	}
	if data.Events, err = s.Events(ctx, from, to); err != nil {
		return data, err
	}
	if data.Habits, err = s.Habits(ctx); err != nil {
		return data, err
	}
	if data.Completions, err = s.Completions(ctx, from, to); err != nil {
		return data, err
	}
	if data.Moods, err = s.Moods(ctx, from, to); err != nil {
		return data, err
	}
	return data, nil
}

// Events lists events overlapping [from, to], cached per range.
func (s *Service) Events(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error) {
	return cached(ctx, s, rangeKey(keyEvents, from, to), func(ctx context.Context) ([]model.CalendarEvent, error) {
		return s.API.ListEvents(ctx, from, to)
	})
}

// AddEvent validates and creates an event.
func (s *Service) AddEvent(ctx context.Context, in model.EventInput) (model.CalendarEvent, error) {
	if err := s.writable(); err != nil {
		return model.CalendarEvent{}, err
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return model.CalendarEvent{}, err
	}
	e, err := s.API.CreateEvent(ctx, in)
	if err != nil {
		return model.CalendarEvent{}, err
	}
	s.invalidate(ctx, keyEvents)
	return e, nil
}

// DeleteEvent removes event id.
func (s *Service) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.writable(); err != nil {
		return err
	}
	if err := s.API.DeleteEvent(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, keyEvents)
	return nil
}
