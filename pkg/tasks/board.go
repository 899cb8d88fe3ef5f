package tasks

import (
	"errors"
	"fmt"
	"time"

	"github.com/edc-app/edc/pkg/model"
)

// ErrNotFound is returned when a move names a task that is not on the board.
var ErrNotFound = errors.New("tasks: task not on board")

// Board is the kanban view: one column per status, each ordered by position.
type Board struct {
	Columns []Column `json:"columns"`
}

// Column holds the tasks of one status.
type Column struct {
	Status model.Status `json:"status"`
	Label  string       `json:"label"`
	Tasks  []model.Task `json:"tasks"`
}

// NewBoard lays tasks out by status. Tasks flagged completed are placed in
// the completed column whatever their status says.
func NewBoard(tasks []model.Task) Board {
	sorted := append([]model.Task(nil), tasks...)
	Sort(sorted, SortPosition)
	var b Board
	for _, g := range GroupBy(sorted, Grouping{By: GroupStatus}, time.Time{}) {
		b.Columns = append(b.Columns, Column{Status: model.Status(g.Key), Label: g.Label, Tasks: g.Tasks})
	}
	return b
}

// Column returns the column for s.
func (b Board) Column(s model.Status) (Column, bool) {
	for _, c := range b.Columns {
		if c.Status == s {
			return c, true
		}
	}
	return Column{}, false
}

// Find locates a task on the board.
func (b Board) Find(id int64) (col, row int, ok bool) {
	for ci, c := range b.Columns {
		for ri, t := range c.Tasks {
			if t.ID == id {
				return ci, ri, true
			}
		}
	}
	return -1, -1, false
}

// Change is a task whose status or position differs after a move; these are
// the updates to send to the API.
type Change struct {
	ID       int64        `json:"id"`
	Status   model.Status `json:"status"`
	Position int          `json:"position"`
}

// Move drops task id into column to at index (clamped to the column). It
// returns the new board and the tasks whose status or position changed. The
// original board is not modified.
func Move(b Board, id int64, to model.Status, index int) (Board, []Change, error) {
	ci, ri, ok := b.Find(id)
	if !ok {
		return b, nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	ti := -1
	for i, c := range b.Columns {
		if c.Status == to {
			ti = i
		}
	}
	if ti < 0 {
		return b, nil, fmt.Errorf("tasks: unknown column %q", to)
	}

	out := Board{Columns: make([]Column, len(b.Columns))}
	for i, c := range b.Columns {
		c.Tasks = append([]model.Task(nil), c.Tasks...)
		out.Columns[i] = c
	}

	if ci == ti {
		out.Columns[ci].Tasks = Reorder(out.Columns[ci].Tasks, ri, index)
	} else {
		task := out.Columns[ci].Tasks[ri]
		out.Columns[ci].Tasks = append(out.Columns[ci].Tasks[:ri], out.Columns[ci].Tasks[ri+1:]...)
		task.Status = to
		task.Completed = to == model.StatusCompleted
		out.Columns[ti].Tasks = Insert(out.Columns[ti].Tasks, index, task)
	}

	var changes []Change
	touched := []int{ci}
	if ti != ci {
		touched = append(touched, ti)
	}
	for _, i := range touched {
		col := &out.Columns[i]
		for pos := range col.Tasks {
			t := &col.Tasks[pos]
			moved := t.ID == id && ci != ti
			if t.Position == pos && !moved {
				continue
			}
			t.Position = pos
			changes = append(changes, Change{ID: t.ID, Status: col.Status, Position: pos})
		}
	}
	return out, changes, nil
}

// Reorder moves the item at from to index to, shifting the items between.
// Out-of-range indexes are clamped. A new slice is returned.
func Reorder[T any](items []T, from, to int) []T {
	out := append([]T(nil), items...)
	if len(out) == 0 {
		return out
	}
	from = clamp(from, 0, len(out)-1)
	to = clamp(to, 0, len(out)-1)
	if from == to {
		return out
	}
	item := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = item
	return out
}

// Insert places item at index (clamped) and returns the grown slice.
func Insert[T any](items []T, index int, item T) []T {
	index = clamp(index, 0, len(items))
	items = append(items, item)
	copy(items[index+1:], items[index:])
	items[index] = item
	return items
}

// Positions renumbers tasks 0..n-1 in their current order and reports the
// ids whose position changed.
func Positions(tasks []model.Task) ([]model.Task, []int64) {
	out := append([]model.Task(nil), tasks...)
	var changed []int64
	for i := range out {
		if out[i].Position != i {
			out[i].Position = i
			changed = append(changed, out[i].ID)
		}
	}
	return out, changed
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
