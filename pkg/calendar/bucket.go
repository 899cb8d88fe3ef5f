package calendar

import (
	"sort"
	"time"

	"github.com/edc-app/edc/pkg/model"
	"github.com/edc-app/edc/pkg/score"
	"github.com/edc-app/edc/pkg/timeutil"
)

// BucketByDate groups items by the YYYY-MM-DD key of the date extracted from
// each one. Items for which date reports false are left out. Input order is
// preserved inside each bucket.
func BucketByDate[T any](items []T, date func(T) (time.Time, bool)) map[string][]T {
	buckets := make(map[string][]T)
	for _, item := range items {
		d, ok := date(item)
		if !ok {
			continue
		}
		key := timeutil.DateKey(d)
		buckets[key] = append(buckets[key], item)
	}
	return buckets
}

// Data is everything a calendar view can show.
type Data struct {
	Tasks       []model.Task
	Events      []model.CalendarEvent
	Habits      []model.Habit
	Completions []model.HabitCompletion
	Moods       []model.MoodEntry
}

// Day is one cell of a calendar view.
type Day struct {
	Date        time.Time               `json:"date"`
	Key         string                  `json:"key"`
	InPeriod    bool                    `json:"in_period"`
	IsToday     bool                    `json:"is_today"`
	Tasks       []model.Task            `json:"tasks,omitempty"`
	Events      []model.CalendarEvent   `json:"events,omitempty"`
	Completions []model.HabitCompletion `json:"completions,omitempty"`
	Moods       []model.MoodEntry       `json:"moods,omitempty"`
	Score       score.Result            `json:"score"`
}

// Empty reports a day with nothing scheduled or logged.
func (d Day) Empty() bool {
	return len(d.Tasks) == 0 && len(d.Events) == 0 && len(d.Completions) == 0 && len(d.Moods) == 0
}

// MoodAverage is the mean mood logged on the day.
func (d Day) MoodAverage() (float64, bool) {
	if len(d.Moods) == 0 {
		return 0, false
	}
	sum := 0
	for _, m := range d.Moods {
		sum += m.MoodScore
	}
	return float64(sum) / float64(len(d.Moods)), true
}

// Grid is a built calendar view.
type Grid struct {
	View    View      `json:"view"`
	Current time.Time `json:"current"`
	Title   string    `json:"title"`
	Days    []Day     `json:"days"`
}

// Weeks splits the days into rows of seven.
func (g Grid) Weeks() [][]Day {
	var rows [][]Day
	for i := 0; i < len(g.Days); i += 7 {
		end := i + 7
		if end > len(g.Days) {
			end = len(g.Days)
		}
		rows = append(rows, g.Days[i:end])
	}
	return rows
}

// Find returns the day with the given key.
func (g Grid) Find(key string) (Day, bool) {
	for _, d := range g.Days {
		if d.Key == key {
			return d, true
		}
	}
	return Day{}, false
}

// First and Last bound the grid.
func (g Grid) First() time.Time { return g.Days[0].Date }
func (g Grid) Last() time.Time  { return g.Days[len(g.Days)-1].Date }

// Build generates the days of view v around current and fills each with the
// items of data that fall on it. now marks today.
func Build(v View, current, now time.Time, data Data, opts Options) Grid {
	days := Range(v, current, opts)
	first, last := days[0], days[len(days)-1]

	tasks := BucketByDate(data.Tasks, model.Task.Due)
	events := bucketEvents(data.Events, first, last)
	completions := BucketByDate(data.Completions, func(c model.HabitCompletion) (time.Time, bool) {
		return c.Date.Time, !c.Date.IsZero()
	})
	moods := BucketByDate(data.Moods, func(m model.MoodEntry) (time.Time, bool) {
		return m.EntryDate.Time, !m.EntryDate.IsZero()
	})

	habits := make(map[int64]model.Habit, len(data.Habits))
	for _, h := range data.Habits {
		if h.Active {
			habits[h.ID] = h
		}
	}

	today := timeutil.DateKey(now)
	grid := Grid{View: v, Current: current, Title: Title(v, current, opts), Days: make([]Day, len(days))}
	for i, d := range days {
		key := timeutil.DateKey(d)
		day := Day{
			Date:        d,
			Key:         key,
			InPeriod:    v != Month || d.Month() == current.Month(),
			IsToday:     key == today,
			Tasks:       sortTasks(tasks[key]),
			Events:      events[key],
			Completions: completions[key],
			Moods:       moods[key],
		}
		// Habits are not yet due on days after now.
		if d.After(now) {
			day.Score = scoreDay(day, nil)
		} else {
			day.Score = scoreDay(day, habits)
		}
		grid.Days[i] = day
	}
	return grid
}

// ScoreInputs derives the productivity inputs for a day. Only habits in
// active count toward the habit ratio.
func ScoreInputs(d Day, active map[int64]model.Habit) score.Inputs {
	in := score.Inputs{HabitsTotal: len(active)}
	for _, t := range d.Tasks {
		if t.Status == model.StatusCancelled {
			continue
		}
		in.TasksTotal++
		if t.IsDone() {
			in.TasksDone++
		}
	}
	done := make(map[int64]bool)
	for _, c := range d.Completions {
		if h, ok := active[c.HabitID]; ok && h.IsComplete(c.Value) {
			done[c.HabitID] = true
		}
	}
	in.HabitsDone = len(done)
	if avg, ok := d.MoodAverage(); ok {
		in.Mood = avg
	}
	return in
}

func scoreDay(d Day, active map[int64]model.Habit) score.Result {
	return score.Compute(ScoreInputs(d, active))
}

// bucketEvents expands recurring events inside [first, last] and places
// every occurrence on each day it spans.
func bucketEvents(events []model.CalendarEvent, first, last time.Time) map[string][]model.CalendarEvent {
	out := make(map[string][]model.CalendarEvent)
	for _, e := range events {
		if e.Start.IsZero() {
			continue
		}
		occurrences := []model.CalendarEvent{e}
		if rule, ok := e.Recurrence(); ok {
			occurrences = occurrences[:0]
			// Look back far enough to catch occurrences that started before
			// the range but are still running inside it.
			span := int(e.Duration().Hours()/24) + 1
			for _, d := range rule.Between(e.Start.Time, timeutil.AddDays(first, -span), last) {
				occurrences = append(occurrences, e.Occurrence(d))
			}
		}
		for _, o := range occurrences {
			from, to := o.SpanDays()
			if from.Before(first) {
				from = first
			}
			for d := from; !d.After(to) && !d.After(last); d = timeutil.AddDays(d, 1) {
				key := timeutil.DateKey(d)
				out[key] = append(out[key], o)
			}
		}
	}
	for key := range out {
		sortEvents(out[key])
	}
	return out
}

func sortEvents(events []model.CalendarEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].AllDay != events[j].AllDay {
			return events[i].AllDay
		}
		return events[i].Start.Before(events[j].Start.Time)
	})
}

func sortTasks(tasks []model.Task) []model.Task {
	if len(tasks) < 2 {
		return tasks
	}
	sorted := append([]model.Task(nil), tasks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.IsDone() != b.IsDone() {
			return !a.IsDone()
		}
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		return a.Position < b.Position
	})
	return sorted
}
