package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/edc-app/edc/pkg/calendar"
	"github.com/edc-app/edc/pkg/client"
	"github.com/edc-app/edc/pkg/model"
	"github.com/edc-app/edc/pkg/store"
	"github.com/edc-app/edc/pkg/tasks"
)

var now = time.Date(2024, time.June, 19, 10, 0, 0, 0, time.Local)

func day(offset int) *model.Date {
	d := model.NewDate(now.AddDate(0, 0, offset))
	return &d
}

// fakeAPI is an in-memory API that counts calls per method.
type fakeAPI struct {
	mu          sync.Mutex
	calls       map[string]int
	fail        error
	gate        chan struct{}
	tasks       []model.Task
	events      []model.CalendarEvent
	habits      []model.Habit
	completions []model.HabitCompletion
	moods       []model.MoodEntry
	categories  []model.Category
	active      *model.TimeEntry
	summary     *model.Analytics
	reordered   []client.TaskPosition
	nextID      int64
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: make(map[string]int), nextID: 100}
}

func (f *fakeAPI) hit(name string) error {
	f.mu.Lock()
	f.calls[name]++
	gate, fail := f.gate, f.fail
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return fail
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) ListTasks(_ context.Context, _ client.TaskQuery) ([]model.Task, error) {
	if err := f.hit("ListTasks"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Task(nil), f.tasks...), nil
}

func (f *fakeAPI) GetTask(_ context.Context, id int64) (model.Task, error) {
	if err := f.hit("GetTask"); err != nil {
		return model.Task{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Task{}, &client.APIError{StatusCode: 404}
}

func (f *fakeAPI) CreateTask(_ context.Context, in model.TaskInput) (model.Task, error) {
	if err := f.hit("CreateTask"); err != nil {
		return model.Task{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t := model.Task{ID: f.nextID, Title: in.Title, Priority: in.Priority, Status: in.Status, Completed: in.Completed, DueDate: in.DueDate}
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *fakeAPI) UpdateTask(_ context.Context, id int64, in model.TaskInput) (model.Task, error) {
	if err := f.hit("UpdateTask"); err != nil {
		return model.Task{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			t.Title, t.Priority, t.Status, t.Completed, t.DueDate = in.Title, in.Priority, in.Status, in.Completed, in.DueDate
			f.tasks[i] = t
			return t, nil
		}
	}
	return model.Task{}, &client.APIError{StatusCode: 404}
}

func (f *fakeAPI) DeleteTask(_ context.Context, id int64) error {
	if err := f.hit("DeleteTask"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return &client.APIError{StatusCode: 404}
}

func (f *fakeAPI) ReorderTasks(_ context.Context, positions []client.TaskPosition) error {
	if err := f.hit("ReorderTasks"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reordered = append(f.reordered, positions...)
	for _, p := range positions {
		for i := range f.tasks {
			if f.tasks[i].ID == p.ID {
				f.tasks[i].Position = p.Position
				f.tasks[i].Status = p.Status
			}
		}
	}
	return nil
}

func (f *fakeAPI) ListEvents(_ context.Context, _, _ time.Time) ([]model.CalendarEvent, error) {
	return f.events, f.hit("ListEvents")
}

func (f *fakeAPI) CreateEvent(_ context.Context, in model.EventInput) (model.CalendarEvent, error) {
	if err := f.hit("CreateEvent"); err != nil {
		return model.CalendarEvent{}, err
	}
	e := model.CalendarEvent{ID: 1, Title: in.Title, Start: in.Start, End: in.End, AllDay: in.AllDay}
	f.mu.Lock()
	f.events = append(f.events, e)
	f.mu.Unlock()
	return e, nil
}

func (f *fakeAPI) DeleteEvent(_ context.Context, _ int64) error { return f.hit("DeleteEvent") }

func (f *fakeAPI) ListHabits(_ context.Context) ([]model.Habit, error) {
	return f.habits, f.hit("ListHabits")
}

func (f *fakeAPI) CreateHabit(_ context.Context, in model.HabitInput) (model.Habit, error) {
	return model.Habit{ID: 9, Name: in.Name, Active: in.Active, CompletionType: in.CompletionType}, f.hit("CreateHabit")
}

func (f *fakeAPI) ListCompletions(_ context.Context, _, _ time.Time) ([]model.HabitCompletion, error) {
	return f.completions, f.hit("ListCompletions")
}

func (f *fakeAPI) CompleteHabit(_ context.Context, in model.CompletionInput) (model.HabitCompletion, error) {
	c := model.HabitCompletion{HabitID: in.HabitID, Date: in.Date, Value: in.Value}
	return c, f.hit("CompleteHabit")
}

func (f *fakeAPI) ListMood(_ context.Context, _, _ time.Time) ([]model.MoodEntry, error) {
	return f.moods, f.hit("ListMood")
}

func (f *fakeAPI) CreateMood(_ context.Context, in model.MoodInput) (model.MoodEntry, error) {
	return model.MoodEntry{ID: 1, EntryDate: in.EntryDate, MoodScore: in.MoodScore, ContextTags: in.ContextTags}, f.hit("CreateMood")
}

func (f *fakeAPI) ListCategories(_ context.Context) ([]model.Category, error) {
	return f.categories, f.hit("ListCategories")
}

func (f *fakeAPI) ActiveTimeEntry(_ context.Context) (*model.TimeEntry, error) {
	return f.active, f.hit("ActiveTimeEntry")
}

func (f *fakeAPI) StartTimer(_ context.Context, in model.TimerInput) (model.TimeEntry, error) {
	e := model.TimeEntry{ID: 5, Description: in.Description, Start: model.DateTime{Time: now}}
	f.active = &e
	return e, f.hit("StartTimer")
}

func (f *fakeAPI) StopTimer(_ context.Context, id int64) (model.TimeEntry, error) {
	end := model.DateTime{Time: now.Add(time.Hour)}
	e := model.TimeEntry{ID: id, Start: model.DateTime{Time: now}, End: &end}
	f.active = nil
	return e, f.hit("StopTimer")
}

func (f *fakeAPI) AnalyticsSummary(_ context.Context, _, _ time.Time) (model.Analytics, error) {
	if err := f.hit("AnalyticsSummary"); err != nil {
		return model.Analytics{}, err
	}
	if f.summary == nil {
		return model.Analytics{}, &client.APIError{StatusCode: 404}
	}
	return *f.summary, nil
}

type testConfig struct{ path string }

func (t testConfig) BasePath() string        { return t.path }
func (t testConfig) APIURL() string          { return "" }
func (t testConfig) APIToken() string        { return "" }
func (t testConfig) CacheTTL() time.Duration { return time.Minute }
func (t testConfig) Timeout() time.Duration  { return time.Second }
func (t testConfig) WeekStart() time.Weekday { return time.Sunday }

type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newService(t *testing.T, api *fakeAPI) (*Service, *clock, *[]string) {
	t.Helper()
	p, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	c := &clock{t: now}
	var warnings []string
	s := &Service{
		API:         api,
		Persistence: p,
		Settings:    Settings{CacheTTL: time.Minute},
		Now:         c.Now,
		Warn:        func(format string, args ...interface{}) { warnings = append(warnings, fmt.Sprintf(format, args...)) },
	}
	return s, c, &warnings
}

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: 1, Title: "Pay rent", Priority: model.PriorityHigh, Status: model.StatusPending, DueDate: day(-1), Position: 0},
		{ID: 2, Title: "Write report", Priority: model.PriorityMedium, Status: model.StatusInProgress, DueDate: day(0), Position: 1},
		{ID: 3, Title: "Stretch", Priority: model.PriorityLow, Status: model.StatusCompleted, Completed: true, DueDate: day(0), Position: 2},
	}
}

func ids(list []model.Task) []int64 {
	out := make([]int64, 0, len(list))
	for _, t := range list {
		out = append(out, t.ID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestTasksAreCachedUntilTTL(t *testing.T) {
	api := newFakeAPI()
	api.tasks = sampleTasks()
	s, c, _ := newService(t, api)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.Tasks(ctx, tasks.Filter{}); err != nil {
			t.Fatal(err)
		}
	}
	if n := api.count("ListTasks"); n != 1 {
		t.Fatalf("expected 1 fetch, got %d", n)
	}
	c.Advance(2 * time.Minute)
	if _, err := s.Tasks(ctx, tasks.Filter{}); err != nil {
		t.Fatal(err)
	}
	if n := api.count("ListTasks"); n != 2 {
		t.Fatalf("expected refetch after ttl, got %d", n)
	}
}

func TestConcurrentReadsShareOneFetch(t *testing.T) {
	api := newFakeAPI()
	api.tasks = sampleTasks()
	api.gate = make(chan struct{})
	s, _, _ := newService(t, api)
	s.Settings.CacheTTL = 0

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AllTasks(context.Background())
			errs <- err
		}()
	}
	// Let the goroutines pile up behind the first fetch.
	time.Sleep(50 * time.Millisecond)
	close(api.gate)
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}
	if n := api.count("ListTasks"); n != 1 {
		t.Fatalf("expected a single shared fetch, got %d", n)
	}
}

func TestStaleCacheServedWhenAPIDown(t *testing.T) {
	api := newFakeAPI()
	api.tasks = sampleTasks()
	s, c, warnings := newService(t, api)
	ctx := context.Background()

	if _, err := s.AllTasks(ctx); err != nil {
		t.Fatal(err)
	}
	c.Advance(time.Hour)
	api.fail = &client.APIError{StatusCode: 503}
	got, err := s.AllTasks(ctx)
	if err != nil {
		t.Fatalf("expected stale data, got %v", err)
	}
	if len(got) != 3 || len(*warnings) != 1 {
		t.Fatalf("expected 3 stale tasks and a warning, got %d tasks, warnings %v", len(got), *warnings)
	}

	api.fail = &client.APIError{StatusCode: 400, Message: "bad"}
	if _, err := s.AllTasks(ctx); err == nil {
		t.Fatalf("client errors must not fall back to the cache")
	}
}

func TestOfflineReadsCacheOnly(t *testing.T) {
	api := newFakeAPI()
	api.tasks = sampleTasks()
	s, c, _ := newService(t, api)
	ctx := context.Background()

	if _, err := s.AllTasks(ctx); err != nil {
		t.Fatal(err)
	}
	c.Advance(24 * time.Hour)
	s.Settings.Offline = true
	if got, err := s.AllTasks(ctx); err != nil || len(got) != 3 {
		t.Fatalf("expected cached tasks offline, got %d %v", len(got), err)
	}
	if _, err := s.Habits(ctx); !errors.Is(err, ErrOffline) {
		t.Fatalf("expected ErrOffline for uncached read, got %v", err)
	}
	if _, err := s.AddTask(ctx, model.TaskInput{Title: "x"}); !errors.Is(err, ErrOffline) {
		t.Fatalf("expected ErrOffline for mutation, got %v", err)
	}
	if n := api.count("ListTasks"); n != 1 {
		t.Fatalf("offline mode must not fetch, got %d fetches", n)
	}
}

func TestAddTaskValidatesAndInvalidates(t *testing.T) {
	api := newFakeAPI()
	api.tasks = sampleTasks()
	s, _, _ := newService(t, api)
	ctx := context.Background()

	if _, err := s.AllTasks(ctx); err != nil {
		t.Fatal(err)
	}
	_, err := s.AddTask(ctx, model.TaskInput{Title: "   "})
	var verr model.ValidationErrors
	if !errors.As(err, &verr) || len(verr.For("title")) == 0 {
		t.Fatalf("expected title validation error, got %v", err)
	}
	if api.count("CreateTask") != 0 {
		t.Fatalf("invalid input must not reach the api")
	}

	created, err := s.AddTask(ctx, model.TaskInput{Title: "  Buy milk ", DueDate: day(1)})
	if err != nil {
		t.Fatal(err)
	}
	if created.Title != "Buy milk" || created.Priority != model.PriorityMedium || created.Status != model.StatusPending {
		t.Fatalf("input not normalised: %+v", created)
	}
	all, err := s.AllTasks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 || api.count("ListTasks") != 2 {
		t.Fatalf("expected refetch after mutation, got %d tasks and %d fetches", len(all), api.count("ListTasks"))
	}
}

func TestCompleteAndDeleteTask(t *testing.T) {
	api := newFakeAPI()
	api.tasks = sampleTasks()
	s, _, _ := newService(t, api)
	ctx := context.Background()

	done, err := s.CompleteTask(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !done.Completed || done.Status != model.StatusCompleted {
		t.Fatalf("expected completed task, got %+v", done)
	}
	reopened, err := s.ReopenTask(ctx, 1)
	if err != nil || reopened.Completed {
		t.Fatalf("expected reopened task, got %+v %v", reopened, err)
	}
	if _, err := s.CompleteTask(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteTask(ctx, 2); err != nil {
		t.Fatal(err)
	}
	all, _ := s.AllTasks(ctx)
	if diff := cmp.Diff([]int64{1, 3}, ids(all)); diff != "" {
		t.Fatalf("tasks after delete (-want +got):\n%s", diff)
	}
}

func TestMoveTaskSendsPositions(t *testing.T) {
	api := newFakeAPI()
	api.tasks = sampleTasks()
	s, _, _ := newService(t, api)
	ctx := context.Background()

	board, err := s.MoveTask(ctx, 1, model.StatusInProgress, 0)
	if err != nil {
		t.Fatal(err)
	}
	col, _ := board.Column(model.StatusInProgress)
	if len(col.Tasks) != 2 || col.Tasks[0].ID != 1 {
		t.Fatalf("unexpected column %+v", col)
	}
	// Task 2 already sits at position 1, so only the moved task changes.
	want := []client.TaskPosition{
		{ID: 1, Position: 0, Status: model.StatusInProgress},
	}
	if diff := cmp.Diff(want, api.reordered); diff != "" {
		t.Fatalf("positions (-want +got):\n%s", diff)
	}
	fresh, err := s.Board(ctx, tasks.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	col, _ = fresh.Column(model.StatusInProgress)
	if len(col.Tasks) != 2 {
		t.Fatalf("expected the move to survive a refetch, got %+v", col)
	}
}

func TestSavedSearchRoundTrip(t *testing.T) {
	api := newFakeAPI()
	api.tasks = sampleTasks()
	s, _, _ := newService(t, api)
	ctx := context.Background()

	f := tasks.Filter{Priorities: []model.Priority{model.PriorityHigh, model.PriorityMedium}, Overdue: false, DueTo: day(0)}
	saved, err := s.SaveSearch(ctx, "Urgent", f)
	if err != nil {
		t.Fatal(err)
	}
	list, err := s.Searches(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(f, list[0].Filter); diff != "" {
		t.Fatalf("reloaded filter (-want +got):\n%s", diff)
	}
	got, found, err := s.RunSearch(ctx, "urgent")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != saved.ID {
		t.Fatalf("expected %s, got %s", saved.ID, got.ID)
	}
	if diff := cmp.Diff([]int64{1, 2}, ids(found)); diff != "" {
		t.Fatalf("search results (-want +got):\n%s", diff)
	}
	if err := s.DeleteSearch(ctx, saved.ID); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.RunSearch(ctx, "urgent"); !errors.Is(err, tasks.ErrNoSearch) {
		t.Fatalf("expected ErrNoSearch, got %v", err)
	}
}

func TestCalendarWeek(t *testing.T) {
	api := newFakeAPI()
	api.tasks = sampleTasks()
	api.habits = []model.Habit{{ID: 1, Name: "Walk", Active: true, CompletionType: model.CompletionBoolean}}
	api.completions = []model.HabitCompletion{{HabitID: 1, Date: *day(0), Value: 1}}
	api.moods = []model.MoodEntry{{ID: 1, EntryDate: *day(0), MoodScore: 3}}
	s, _, _ := newService(t, api)

	grid, err := s.Calendar(context.Background(), calendar.Week, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(grid.Days) != 7 || grid.Days[0].Key != "2024-06-16" || grid.Days[6].Key != "2024-06-22" {
		t.Fatalf("unexpected week %s..%s", grid.Days[0].Key, grid.Days[6].Key)
	}
	today, ok := grid.Find("2024-06-19")
	if !ok || !today.IsToday || len(today.Tasks) != 2 {
		t.Fatalf("unexpected today %+v", today)
	}
	// tasks 1/2 -> 20, habits 1/1 -> 40, mood 3 -> 10: 70 of 100.
	if today.Score.Value != 70 {
		t.Fatalf("expected score 70, got %d", today.Score.Value)
	}
	d, err := s.Day(context.Background(), now)
	if err != nil || d.Score.Value != 70 {
		t.Fatalf("day score mismatch: %+v %v", d.Score, err)
	}
}

func TestLogMoodAndCheckHabit(t *testing.T) {
	api := newFakeAPI()
	s, _, _ := newService(t, api)
	ctx := context.Background()

	m, err := s.LogMood(ctx, model.MoodInput{MoodScore: 4, ContextTags: []string{"Work", "work", " sleep "}})
	if err != nil {
		t.Fatal(err)
	}
	if m.EntryDate.Key() != "2024-06-19" {
		t.Fatalf("expected mood dated today, got %s", m.EntryDate.Key())
	}
	if diff := cmp.Diff([]string{"work", "sleep"}, m.ContextTags); diff != "" {
		t.Fatalf("tags (-want +got):\n%s", diff)
	}
	if _, err := s.LogMood(ctx, model.MoodInput{MoodScore: 9}); err == nil {
		t.Fatalf("expected out of range mood to fail")
	}

	c, err := s.CheckHabit(ctx, model.Habit{ID: 3, CompletionType: model.CompletionBoolean}, now, 0)
	if err != nil || c.Value != 1 {
		t.Fatalf("expected boolean check to log 1, got %+v %v", c, err)
	}
}

func TestTimer(t *testing.T) {
	api := newFakeAPI()
	s, _, _ := newService(t, api)
	ctx := context.Background()

	if _, err := s.StopTimer(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected nothing to stop, got %v", err)
	}
	if _, err := s.StartTimer(ctx, model.TimerInput{Description: " focus "}); err != nil {
		t.Fatal(err)
	}
	active, err := s.ActiveTimer(ctx)
	if err != nil || active == nil || active.Description != "focus" {
		t.Fatalf("expected running timer, got %+v %v", active, err)
	}
	stopped, err := s.StopTimer(ctx)
	if err != nil || stopped.Running() {
		t.Fatalf("expected stopped timer, got %+v %v", stopped, err)
	}
}
