package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/edc-app/edc/pkg/model"
	"github.com/edc-app/edc/pkg/timeutil"
)

// TaskQuery is the server-side filter for /tasks.
type TaskQuery struct {
	Status     model.Status
	Priority   model.Priority
	CategoryID *int64
	Search     string
	DueFrom    time.Time
	DueTo      time.Time
}

// Values encodes the query; zero fields are omitted.
func (q TaskQuery) Values() url.Values {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if q.Priority != "" {
		v.Set("priority", string(q.Priority))
	}
	if q.CategoryID != nil {
		v.Set("category_id", strconv.FormatInt(*q.CategoryID, 10))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if !q.DueFrom.IsZero() {
		v.Set("due_from", timeutil.DateKey(q.DueFrom))
	}
	if !q.DueTo.IsZero() {
		v.Set("due_to", timeutil.DateKey(q.DueTo))
	}
	return v
}

// RangeValues encodes an inclusive day range as start/end query parameters.
func RangeValues(from, to time.Time) url.Values {
	v := url.Values{}
	v.Set("start_date", timeutil.DateKey(from))
	v.Set("end_date", timeutil.DateKey(to))
	return v
}

// TaskPosition is one entry of a reorder request.
type TaskPosition struct {
	ID       int64        `json:"id"`
	Position int          `json:"position"`
	Status   model.Status `json:"status,omitempty"`
}

func (c *Client) ListTasks(ctx context.Context, q TaskQuery) ([]model.Task, error) {
	return getList[model.Task](ctx, c, "/tasks", q.Values())
}

func (c *Client) GetTask(ctx context.Context, id int64) (model.Task, error) {
	return send[model.Task](ctx, c, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil)
}

func (c *Client) CreateTask(ctx context.Context, in model.TaskInput) (model.Task, error) {
	return send[model.Task](ctx, c, http.MethodPost, "/tasks", in)
}

func (c *Client) UpdateTask(ctx context.Context, id int64, in model.TaskInput) (model.Task, error) {
	return send[model.Task](ctx, c, http.MethodPut, fmt.Sprintf("/tasks/%d", id), in)
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil, nil)
}

// ReorderTasks sends new positions (and statuses, for board moves) in bulk.
func (c *Client) ReorderTasks(ctx context.Context, positions []TaskPosition) error {
	body := struct {
		Tasks []TaskPosition `json:"tasks"`
	}{Tasks: positions}
	return c.do(ctx, http.MethodPost, "/tasks/reorder", nil, body, nil)
}

func (c *Client) ListEvents(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error) {
	return getList[model.CalendarEvent](ctx, c, "/calendar/events", RangeValues(from, to))
}

func (c *Client) CreateEvent(ctx context.Context, in model.EventInput) (model.CalendarEvent, error) {
	return send[model.CalendarEvent](ctx, c, http.MethodPost, "/calendar/events", in)
}

func (c *Client) UpdateEvent(ctx context.Context, id int64, in model.EventInput) (model.CalendarEvent, error) {
	return send[model.CalendarEvent](ctx, c, http.MethodPut, fmt.Sprintf("/calendar/events/%d", id), in)
}

func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/calendar/events/%d", id), nil, nil, nil)
}

func (c *Client) ListHabits(ctx context.Context) ([]model.Habit, error) {
	return getList[model.Habit](ctx, c, "/habits", nil)
}

func (c *Client) CreateHabit(ctx context.Context, in model.HabitInput) (model.Habit, error) {
	return send[model.Habit](ctx, c, http.MethodPost, "/habits", in)
}

func (c *Client) ListCompletions(ctx context.Context, from, to time.Time) ([]model.HabitCompletion, error) {
	return getList[model.HabitCompletion](ctx, c, "/habits/completions", RangeValues(from, to))
}

func (c *Client) CompleteHabit(ctx context.Context, in model.CompletionInput) (model.HabitCompletion, error) {
	return send[model.HabitCompletion](ctx, c, http.MethodPost, fmt.Sprintf("/habits/%d/complete", in.HabitID), in)
}

func (c *Client) ListMood(ctx context.Context, from, to time.Time) ([]model.MoodEntry, error) {
	return getList[model.MoodEntry](ctx, c, "/mood", RangeValues(from, to))
}

func (c *Client) CreateMood(ctx context.Context, in model.MoodInput) (model.MoodEntry, error) {
	return send[model.MoodEntry](ctx, c, http.MethodPost, "/mood", in)
}

func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	return getList[model.Category](ctx, c, "/categories", nil)
}

// ActiveTimeEntry returns the running entry, or nil when nothing runs. The
// API answers either 404 or null in that case.
func (c *Client) ActiveTimeEntry(ctx context.Context) (*model.TimeEntry, error) {
	var out one[*model.TimeEntry]
	if err := c.do(ctx, http.MethodGet, "/time-entries/active", nil, nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if out.Item == nil || out.Item.ID == 0 {
		return nil, nil
	}
	return out.Item, nil
}

func (c *Client) StartTimer(ctx context.Context, in model.TimerInput) (model.TimeEntry, error) {
	return send[model.TimeEntry](ctx, c, http.MethodPost, "/time-entries/start", in)
}

func (c *Client) StopTimer(ctx context.Context, id int64) (model.TimeEntry, error) {
	return send[model.TimeEntry](ctx, c, http.MethodPost, fmt.Sprintf("/time-entries/%d/stop", id), nil)
}

// AnalyticsSummary asks the server for aggregates. Servers without the
// endpoint answer 404; check with IsNotFound.
func (c *Client) AnalyticsSummary(ctx context.Context, from, to time.Time) (model.Analytics, error) {
	var out one[model.Analytics]
	if err := c.do(ctx, http.MethodGet, "/analytics/summary", RangeValues(from, to), nil, &out); err != nil {
		return model.Analytics{}, err
	}
	out.Item.Source = "server"
	return out.Item, nil
}
