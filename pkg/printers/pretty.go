package printers

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"

	"github.com/edc-app/edc/pkg/glyph"
	"github.com/edc-app/edc/pkg/model"
	"github.com/edc-app/edc/pkg/tasks"
)

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out    io.Writer
	ShowID bool
	// Width caps titles; zero means no limit.
	Width int
	// Format switches Emit to JSON or YAML.
	Format Format
	Now    func() time.Time
}

const idWidth = 6

var (
	spacing = strings.Repeat(" ", idWidth)
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) now() time.Time {
	if pp.Now != nil {
		return pp.Now()
	}
	return time.Now()
}

func (pp *PrettyPrint) clip(s string) string {
	if pp.Width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(pp.Width), "…")
}

// Emit encodes v when a structured format is set and calls pretty otherwise.
func (pp *PrettyPrint) Emit(v interface{}, pretty func()) error {
	if pp.Format != FormatPretty {
		return Encode(pp.out(), pp.Format, v)
	}
	pretty()
	return nil
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintf(pp.out(), " %s\n", noun)
	default:
		_, _ = c.Fprintf(pp.out(), " %ss\n", noun)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func (pp *PrettyPrint) id(id int64) {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	s := strconv.FormatInt(id, 10)
	pad := idWidth - len(s)
	if pad < 1 {
		pad = 1
	}
	_, _ = y.Fprint(pp.out(), s+strings.Repeat(" ", pad))
}

// Task prints one task line: signifier, bullet, title and its due date.
func (pp *PrettyPrint) Task(t model.Task) {
	now := pp.now()
	if pp.ShowID {
		pp.id(t.ID)
	}
	title := pp.clip(t.Title)
	switch t.Status {
	case model.StatusCompleted, model.StatusCancelled:
		title = color.New(color.Faint).Sprint(title)
	}
	_, _ = fmt.Fprintf(pp.out(), "%s %s", glyph.Task(t), title)

	if due, ok := t.Due(); ok {
		dc := color.New(color.Faint)
		if t.IsOverdue(now) {
			dc = color.New(color.FgRed)
		}
		_, _ = dc.Fprintf(pp.out(), "  due %s", due.Format("Mon Jan 2"))
	}
	if _, ok := t.Recurrence(); ok {
		_, _ = fmt.Fprintf(pp.out(), " %s", glyph.Recurring)
	}
	if done, total := t.SubtaskProgress(); total > 0 {
		_, _ = color.New(color.Faint).Fprintf(pp.out(), "  [%d/%d]", done, total)
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Tasks(list ...model.Task) {
	if len(list) == 0 {
		pp.none()
		return
	}
	for _, t := range list {
		pp.Task(t)
	}
	pp.NewLine()
}

// Groups prints each group under its own heading, skipping empty groups.
func (pp *PrettyPrint) Groups(groups ...tasks.Group) {
	printed := false
	for _, g := range groups {
		if len(g.Tasks) == 0 {
			continue
		}
		printed = true
		pp.TitleWithCount(g.Label, len(g.Tasks), "task")
		pp.Tasks(g.Tasks...)
	}
	if !printed {
		pp.none()
	}
}

// Board prints the status columns one after another in board order.
func (pp *PrettyPrint) Board(b tasks.Board) {
	for _, c := range b.Columns {
		pp.TitleWithCount(c.Label, len(c.Tasks), "task")
		pp.Tasks(c.Tasks...)
	}
}

// TaskDetail prints every field of a single task.
func (pp *PrettyPrint) TaskDetail(t model.Task) {
	pp.Title(fmt.Sprintf("%s %s", glyph.ForStatus(t.Status), t.Title))
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 72
	tbl.AddRow("ID", t.ID)
	tbl.AddRow("Status", t.Status.Label())
	tbl.AddRow("Priority", string(t.Priority))
	if due, ok := t.Due(); ok {
		tbl.AddRow("Due", due.Format("Mon Jan 2, 2006"))
	}
	if r, ok := t.Recurrence(); ok {
		tbl.AddRow("Repeats", r.Describe())
	}
	if t.EstimatedMinutes > 0 {
		tbl.AddRow("Estimate", fmt.Sprintf("%dm", t.EstimatedMinutes))
	}
	if t.Description != "" {
		tbl.AddRow("Notes", t.Description)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	for _, s := range t.Subtasks {
		mark := glyph.Pending
		if s.Completed {
			mark = glyph.Completed
		}
		_, _ = fmt.Fprintf(pp.out(), "  %s %s\n", mark, s.Title)
	}
	pp.NewLine()
}

// Searches lists saved searches with a summary of their filters.
func (pp *PrettyPrint) Searches(list tasks.Searches) {
	if len(list) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Filter"), bold.Sprint("Saved"))
	for _, s := range list.Sorted() {
		name := s.Name
		if pp.ShowID {
			name = fmt.Sprintf("%s (%s)", s.Name, s.ID)
		}
		tbl.AddRow(name, DescribeFilter(s.Filter), s.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// DescribeFilter renders f as a compact one-line summary.
func DescribeFilter(f tasks.Filter) string {
	if f.IsZero() {
		return "all tasks"
	}
	var parts []string
	if q := strings.TrimSpace(f.Query); q != "" {
		parts = append(parts, fmt.Sprintf("%q", q))
	}
	if len(f.Statuses) > 0 {
		parts = append(parts, "status="+join(f.Statuses))
	}
	if len(f.Priorities) > 0 {
		parts = append(parts, "priority="+join(f.Priorities))
	}
	if len(f.CategoryIDs) > 0 {
		parts = append(parts, "category="+join(f.CategoryIDs))
	}
	if len(f.TagIDs) > 0 {
		parts = append(parts, "tag="+join(f.TagIDs))
	}
	if f.DueFrom != nil {
		parts = append(parts, "due>="+f.DueFrom.Key())
	}
	if f.DueTo != nil {
		parts = append(parts, "due<="+f.DueTo.Key())
	}
	if f.Completed != nil {
		parts = append(parts, fmt.Sprintf("completed=%t", *f.Completed))
	}
	if f.Overdue {
		parts = append(parts, "overdue")
	}
	if f.SortBy != "" {
		parts = append(parts, "sort="+string(f.SortBy))
	}
	return strings.Join(parts, " ")
}

func join[T any](values []T) string {
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = fmt.Sprint(v)
	}
	return strings.Join(s, ",")
}

// Rejected prints the field errors carried by err, if any, and returns err.
func (pp *PrettyPrint) Rejected(err error) error {
	var verrs model.ValidationErrors
	if errors.As(err, &verrs) && pp.Format == FormatPretty {
		pp.Invalid(verrs)
	}
	return err
}

// Invalid prints validation failures field by field.
func (pp *PrettyPrint) Invalid(errs model.ValidationErrors) {
	r := color.New(color.FgRed)
	for _, e := range errs {
		_, _ = r.Fprintf(pp.out(), "  %s: %s\n", e.Field, e.Message)
	}
}
