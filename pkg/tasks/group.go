package tasks

import (
	"fmt"
	"strconv"
	"time"

	"github.com/edc-app/edc/pkg/model"
	"github.com/edc-app/edc/pkg/timeutil"
)

// GroupKey selects how tasks are split into groups.
type GroupKey string

const (
	GroupNone     GroupKey = "none"
	GroupStatus   GroupKey = "status"
	GroupPriority GroupKey = "priority"
	GroupCategory GroupKey = "category"
	GroupDue      GroupKey = "due"
)

// ParseGroupKey accepts a group name; empty means no grouping.
func ParseGroupKey(raw string) (GroupKey, error) {
	switch GroupKey(raw) {
	case "", GroupNone:
		return GroupNone, nil
	case GroupStatus, GroupPriority, GroupCategory, GroupDue:
		return GroupKey(raw), nil
	}
	return "", fmt.Errorf("tasks: unknown grouping %q", raw)
}

// Due buckets, in display order.
const (
	DueEarlier  = "earlier"
	DueOverdue  = "overdue"
	DueToday    = "today"
	DueTomorrow = "tomorrow"
	DueThisWeek = "this_week"
	DueLater    = "later"
	DueNone     = "no_date"
)

var dueLabels = map[string]string{
	DueEarlier:  "Earlier",
	DueOverdue:  "Overdue",
	DueToday:    "Today",
	DueTomorrow: "Tomorrow",
	DueThisWeek: "This week",
	DueLater:    "Later",
	DueNone:     "No date",
}

// Group is one column or section of grouped tasks.
type Group struct {
	Key   string       `json:"key"`
	Label string       `json:"label"`
	Tasks []model.Task `json:"tasks"`
}

// Grouping options. Categories supplies names for category groups.
type Grouping struct {
	By         GroupKey
	Categories []model.Category
	WeekStart  time.Weekday
}

// GroupBy splits tasks into groups with a fixed column order. Fixed buckets
// (statuses, priorities, due buckets) are always present, even when empty;
// category groups follow the order of g.Categories with uncategorised last.
func GroupBy(tasks []model.Task, g Grouping, now time.Time) []Group {
	switch g.By {
	case GroupStatus:
		keys := make([]string, 0, 4)
		for _, s := range model.Statuses() {
			keys = append(keys, string(s))
		}
		return collect(tasks, keys, func(t model.Task) string {
			if t.IsDone() {
				return string(model.StatusCompleted)
			}
			if t.Status == "" {
				return string(model.StatusPending)
			}
			return string(t.Status)
		}, func(k string) string { return model.Status(k).Label() })
	case GroupPriority:
		keys := make([]string, 0, 3)
		for _, p := range model.Priorities() {
			keys = append(keys, string(p))
		}
		return collect(tasks, keys, func(t model.Task) string {
			if t.Priority.Rank() == 0 {
				return string(model.PriorityMedium)
			}
			return string(t.Priority)
		}, func(k string) string { return priorityLabel(model.Priority(k)) })
	case GroupCategory:
		names := make(map[string]string, len(g.Categories))
		keys := make([]string, 0, len(g.Categories)+1)
		for _, c := range g.Categories {
			k := strconv.FormatInt(c.ID, 10)
			names[k] = c.Name
			keys = append(keys, k)
		}
		keys = append(keys, "none")
		groups := collect(tasks, keys, func(t model.Task) string {
			if t.CategoryID == nil {
				return "none"
			}
			k := strconv.FormatInt(*t.CategoryID, 10)
			if _, ok := names[k]; !ok {
				return "none"
			}
			return k
		}, func(k string) string {
			if n, ok := names[k]; ok {
				return n
			}
			return "Uncategorised"
		})
		return groups
	case GroupDue:
		keys := []string{DueEarlier, DueOverdue, DueToday, DueTomorrow, DueThisWeek, DueLater, DueNone}
		return collect(tasks, keys, func(t model.Task) string {
			return DueBucket(t, now, g.WeekStart)
		}, func(k string) string { return dueLabels[k] })
	}
	return []Group{{Key: "all", Label: "All tasks", Tasks: tasks}}
}

// DueBucket places a task relative to now. Finished or cancelled tasks with a
// past due day are earlier, not overdue.
func DueBucket(t model.Task, now time.Time, weekStart time.Weekday) string {
	due, ok := t.Due()
	if !ok {
		return DueNone
	}
	key := timeutil.DateKey(due)
	today := timeutil.StartOfDay(now)
	switch {
	case key < timeutil.DateKey(today):
		if t.IsOverdue(now) {
			return DueOverdue
		}
		return DueEarlier
	case key == timeutil.DateKey(today):
		return DueToday
	case key == timeutil.DateKey(timeutil.AddDays(today, 1)):
		return DueTomorrow
	}
	weekEnd := timeutil.AddDays(timeutil.WeekStart(today, weekStart), 6)
	if key <= timeutil.DateKey(weekEnd) {
		return DueThisWeek
	}
	return DueLater
}

func collect(tasks []model.Task, keys []string, keyOf func(model.Task) string, label func(string) string) []Group {
	index := make(map[string]int, len(keys))
	groups := make([]Group, len(keys))
	for i, k := range keys {
		index[k] = i
		groups[i] = Group{Key: k, Label: label(k), Tasks: []model.Task{}}
	}
	for _, t := range tasks {
		i, ok := index[keyOf(t)]
		if !ok {
			continue
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}
	return groups
}

func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "High"
	case model.PriorityMedium:
		return "Medium"
	case model.PriorityLow:
		return "Low"
	}
	return string(p)
}
