// Package tasks filters, sorts, groups and reorders a flat task collection
// for the list and board views.
package tasks

import (
	"sort"
	"strings"
	"time"

	"github.com/edc-app/edc/pkg/model"
	"github.com/edc-app/edc/pkg/timeutil"
)

// Filter narrows a task list. Zero-valued fields do not filter. Multi-valued
// fields match when a task has any of the listed values.
type Filter struct {
	Query       string           `json:"query,omitempty" yaml:"query,omitempty"`
	Statuses    []model.Status   `json:"statuses,omitempty" yaml:"statuses,omitempty"`
	Priorities  []model.Priority `json:"priorities,omitempty" yaml:"priorities,omitempty"`
	CategoryIDs []int64          `json:"category_ids,omitempty" yaml:"category_ids,omitempty"`
	TagIDs      []int64          `json:"tag_ids,omitempty" yaml:"tag_ids,omitempty"`
	DueFrom     *model.Date      `json:"due_from,omitempty" yaml:"due_from,omitempty"`
	DueTo       *model.Date      `json:"due_to,omitempty" yaml:"due_to,omitempty"`
	Completed   *bool            `json:"completed,omitempty" yaml:"completed,omitempty"`
	Overdue     bool             `json:"overdue,omitempty" yaml:"overdue,omitempty"`
	SortBy      SortKey          `json:"sort_by,omitempty" yaml:"sort_by,omitempty"`
}

// IsZero reports a filter that lets everything through.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Query) == "" && len(f.Statuses) == 0 && len(f.Priorities) == 0 &&
		len(f.CategoryIDs) == 0 && len(f.TagIDs) == 0 && f.DueFrom == nil && f.DueTo == nil &&
		f.Completed == nil && !f.Overdue
}

// Match reports whether t passes every criterion of f.
func (f Filter) Match(t model.Task, now time.Time) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(t.Title), q) && !strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	if len(f.Statuses) > 0 && !contains(f.Statuses, t.Status) {
		return false
	}
	if len(f.Priorities) > 0 && !contains(f.Priorities, t.Priority) {
		return false
	}
	if len(f.CategoryIDs) > 0 && (t.CategoryID == nil || !contains(f.CategoryIDs, *t.CategoryID)) {
		return false
	}
	if len(f.TagIDs) > 0 && !overlaps(f.TagIDs, t.TagIDs) {
		return false
	}
	if f.DueFrom != nil || f.DueTo != nil {
		due, ok := t.Due()
		if !ok {
			return false
		}
		key := timeutil.DateKey(due)
		if f.DueFrom != nil && key < f.DueFrom.Key() {
			return false
		}
		if f.DueTo != nil && key > f.DueTo.Key() {
			return false
		}
	}
	if f.Completed != nil && t.IsDone() != *f.Completed {
		return false
	}
	if f.Overdue && !t.IsOverdue(now) {
		return false
	}
	return true
}

// Apply returns the tasks matching f, sorted by f.SortBy. The input slice is
// not modified.
func Apply(tasks []model.Task, f Filter, now time.Time) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t, now) {
			out = append(out, t)
		}
	}
	Sort(out, f.SortBy)
	return out
}

// SortKey selects a task ordering.
type SortKey string

const (
	SortPosition SortKey = "position"
	SortDue      SortKey = "due"
	SortPriority SortKey = "priority"
	SortTitle    SortKey = "title"
	SortCreated  SortKey = "created"
)

// SortKeys lists the supported orderings.
func SortKeys() []SortKey {
	return []SortKey{SortPosition, SortDue, SortPriority, SortTitle, SortCreated}
}

// Sort orders tasks in place. Ties fall back to position then id so the
// result is stable across refreshes.
func Sort(tasks []model.Task, by SortKey) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		switch by {
		case SortDue:
			ad, aok := a.Due()
			bd, bok := b.Due()
			if aok != bok {
				return aok
			}
			if aok && !ad.Equal(bd) {
				return ad.Before(bd)
			}
		case SortPriority:
			if a.Priority.Rank() != b.Priority.Rank() {
				return a.Priority.Rank() > b.Priority.Rank()
			}
		case SortTitle:
			at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
			if at != bt {
				return at < bt
			}
		case SortCreated:
			ac, bc := createdAt(a), createdAt(b)
			if !ac.Equal(bc) {
				return ac.After(bc)
			}
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.ID < b.ID
	})
}

func createdAt(t model.Task) time.Time {
	if t.CreatedAt == nil {
		return time.Time{}
	}
	return t.CreatedAt.Time
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func overlaps[T comparable](a, b []T) bool {
	for _, v := range b {
		if contains(a, v) {
			return true
		}
	}
	return false
}
