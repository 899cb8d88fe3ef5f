package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/edc-app/edc/pkg/calendar"
	"github.com/edc-app/edc/pkg/client"
	"github.com/edc-app/edc/pkg/model"
	"github.com/edc-app/edc/pkg/store"
	"github.com/edc-app/edc/pkg/tasks"
)

// API is the subset of the REST client the service relies on.
type API interface {
	ListTasks(ctx context.Context, q client.TaskQuery) ([]model.Task, error)
	GetTask(ctx context.Context, id int64) (model.Task, error)
	CreateTask(ctx context.Context, in model.TaskInput) (model.Task, error)
	UpdateTask(ctx context.Context, id int64, in model.TaskInput) (model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	ReorderTasks(ctx context.Context, positions []client.TaskPosition) error

	ListEvents(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error)
	CreateEvent(ctx context.Context, in model.EventInput) (model.CalendarEvent, error)
	DeleteEvent(ctx context.Context, id int64) error

	ListHabits(ctx context.Context) ([]model.Habit, error)
	CreateHabit(ctx context.Context, in model.HabitInput) (model.Habit, error)
	ListCompletions(ctx context.Context, from, to time.Time) ([]model.HabitCompletion, error)
	CompleteHabit(ctx context.Context, in model.CompletionInput) (model.HabitCompletion, error)

	ListMood(ctx context.Context, from, to time.Time) ([]model.MoodEntry, error)
	CreateMood(ctx context.Context, in model.MoodInput) (model.MoodEntry, error)

	ListCategories(ctx context.Context) ([]model.Category, error)

	ActiveTimeEntry(ctx context.Context) (*model.TimeEntry, error)
	StartTimer(ctx context.Context, in model.TimerInput) (model.TimeEntry, error)
	StopTimer(ctx context.Context, id int64) (model.TimeEntry, error)

	AnalyticsSummary(ctx context.Context, from, to time.Time) (model.Analytics, error)
}

// Settings tune the service.
type Settings struct {
	// CacheTTL is how long a cached read is served without refetching.
	CacheTTL time.Duration
	// Offline serves cached reads only and refuses mutations.
	Offline bool
	// Calendar drives week alignment and view lengths.
	Calendar calendar.Options
}

// Service provides the operations shared by the CLI and the TUI. Reads go
// through the local query cache; mutations invalidate it.
type Service struct {
	API         API
	Persistence store.Persistence
	Settings    Settings
	Now         func() time.Time
	Warn        func(format string, args ...interface{})

	group singleflight.Group
}

var (
	ErrNoAPI         = errors.New("app: no api configured")
	ErrNoPersistence = errors.New("app: no persistence configured")
	ErrOffline       = errors.New("app: offline")
	ErrNotFound      = errors.New("app: not found")
)

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Clock returns the current time as seen by the service.
func (s *Service) Clock() time.Time {
	return s.now()
}

func (s *Service) warnf(format string, args ...interface{}) {
	if s.Warn != nil {
		s.Warn(format, args...)
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func (s *Service) writable() error {
	if s.API == nil {
		return ErrNoAPI
	}
	if s.Settings.Offline {
		return fmt.Errorf("%w: changes need the api", ErrOffline)
	}
	return nil
}

// Watch subscribes to local state change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// AllTasks returns every task, cached.
func (s *Service) AllTasks(ctx context.Context) ([]model.Task, error) {
	return cached(ctx, s, keyTasks, func(ctx context.Context) ([]model.Task, error) {
		return s.API.ListTasks(ctx, client.TaskQuery{})
	})
}

// Tasks returns the tasks matching f.
func (s *Service) Tasks(ctx context.Context, f tasks.Filter) ([]model.Task, error) {
	all, err := s.AllTasks(ctx)
	if err != nil {
		return nil, err
	}
	return tasks.Apply(all, f, s.now()), nil
}

// Categories returns the task categories, cached.
func (s *Service) Categories(ctx context.Context) ([]model.Category, error) {
	return cached(ctx, s, keyCategories, func(ctx context.Context) ([]model.Category, error) {
		return s.API.ListCategories(ctx)
	})
}

// Groups returns the tasks matching f split by g. Category names are
// fetched when grouping by category.
func (s *Service) Groups(ctx context.Context, f tasks.Filter, by tasks.GroupKey) ([]tasks.Group, error) {
	list, err := s.Tasks(ctx, f)
	if err != nil {
		return nil, err
	}
	g := tasks.Grouping{By: by, WeekStart: s.Settings.Calendar.WeekStart}
	if by == tasks.GroupCategory {
		if g.Categories, err = s.Categories(ctx); err != nil {
			return nil, err
		}
	}
	return tasks.GroupBy(list, g, s.now()), nil
}

// Board returns the kanban board of the tasks matching f.
func (s *Service) Board(ctx context.Context, f tasks.Filter) (tasks.Board, error) {
	list, err := s.Tasks(ctx, f)
	if err != nil {
		return tasks.Board{}, err
	}
	return tasks.NewBoard(list), nil
}

// Task finds one task by id.
func (s *Service) Task(ctx context.Context, id int64) (model.Task, error) {
	all, err := s.AllTasks(ctx)
	if err != nil {
		return model.Task{}, err
	}
	for _, t := range all {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Task{}, fmt.Errorf("%w: task %d", ErrNotFound, id)
}

// AddTask validates and creates a task.
func (s *Service) AddTask(ctx context.Context, in model.TaskInput) (model.Task, error) {
	if err := s.writable(); err != nil {
		return model.Task{}, err
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return model.Task{}, err
	}
	t, err := s.API.CreateTask(ctx, in)
	if err != nil {
		return model.Task{}, err
	}
	s.invalidate(ctx, keyTasks, keyAnalytics)
	return t, nil
}

// EditTask applies edit to the current state of task id and saves it.
func (s *Service) EditTask(ctx context.Context, id int64, edit func(*model.TaskInput)) (model.Task, error) {
	if err := s.writable(); err != nil {
		return model.Task{}, err
	}
	current, err := s.API.GetTask(ctx, id)
	if err != nil {
		if client.IsNotFound(err) {
			return model.Task{}, fmt.Errorf("%w: task %d", ErrNotFound, id)
		}
		return model.Task{}, err
	}
	in := model.InputFrom(current)
	edit(&in)
	in.Normalize()
	if err := in.Validate(); err != nil {
		return model.Task{}, err
	}
	t, err := s.API.UpdateTask(ctx, id, in)
	if err != nil {
		return model.Task{}, err
	}
	s.invalidate(ctx, keyTasks, keyAnalytics)
	return t, nil
}

// CompleteTask marks task id completed.
func (s *Service) CompleteTask(ctx context.Context, id int64) (model.Task, error) {
	return s.EditTask(ctx, id, func(in *model.TaskInput) {
		in.Completed = true
		in.Status = model.StatusCompleted
	})
}

// ReopenTask clears the completion of task id.
func (s *Service) ReopenTask(ctx context.Context, id int64) (model.Task, error) {
	return s.EditTask(ctx, id, func(in *model.TaskInput) {
		in.Completed = false
		in.Status = model.StatusPending
	})
}

// DeleteTask removes task id.
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	if err := s.writable(); err != nil {
		return err
	}
	if err := s.API.DeleteTask(ctx, id); err != nil {
		if client.IsNotFound(err) {
			return fmt.Errorf("%w: task %d", ErrNotFound, id)
		}
		return err
	}
	s.invalidate(ctx, keyTasks, keyAnalytics)
	return nil
}

// MoveTask drops task id into the board column for status at index and
// sends the resulting positions to the API.
func (s *Service) MoveTask(ctx context.Context, id int64, status model.Status, index int) (tasks.Board, error) {
	if err := s.writable(); err != nil {
		return tasks.Board{}, err
	}
	board, err := s.Board(ctx, tasks.Filter{})
	if err != nil {
		return tasks.Board{}, err
	}
	moved, changes, err := tasks.Move(board, id, status, index)
	if err != nil {
		return tasks.Board{}, err
	}
	if len(changes) == 0 {
		return moved, nil
	}
	positions := make([]client.TaskPosition, 0, len(changes))
	for _, c := range changes {
		positions = append(positions, client.TaskPosition{ID: c.ID, Position: c.Position, Status: c.Status})
	}
	if err := s.API.ReorderTasks(ctx, positions); err != nil {
		return tasks.Board{}, err
	}
	s.invalidate(ctx, keyTasks, keyAnalytics)
	return moved, nil
}

// Searches lists the saved task searches by name.
func (s *Service) Searches(ctx context.Context) (tasks.Searches, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	list, err := s.Persistence.Searches(ctx)
	if err != nil {
		return nil, err
	}
	return list.Sorted(), nil
}

// SaveSearch stores f under name, replacing a search with the same name.
func (s *Service) SaveSearch(ctx context.Context, name string, f tasks.Filter) (tasks.SavedSearch, error) {
	if s.Persistence == nil {
		return tasks.SavedSearch{}, ErrNoPersistence
	}
	return s.Persistence.SaveSearch(ctx, name, f)
}

// DeleteSearch removes the saved search named or identified by ref.
func (s *Service) DeleteSearch(ctx context.Context, ref string) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	return s.Persistence.DeleteSearch(ctx, ref)
}

// RunSearch applies the saved search ref.
func (s *Service) RunSearch(ctx context.Context, ref string) (tasks.SavedSearch, []model.Task, error) {
	list, err := s.Searches(ctx)
	if err != nil {
		return tasks.SavedSearch{}, nil, err
	}
	saved, ok := list.Lookup(ref)
	if !ok {
		return tasks.SavedSearch{}, nil, fmt.Errorf("%w: %q", tasks.ErrNoSearch, ref)
	}
	found, err := s.Tasks(ctx, saved.Filter)
	return saved, found, err
}
