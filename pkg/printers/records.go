package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"github.com/edc-app/edc/pkg/glyph"
	"github.com/edc-app/edc/pkg/model"
	"github.com/edc-app/edc/pkg/timeutil"
)

// Habits prints the habits with a row of the last days marked done or not.
// days are oldest first.
func (pp *PrettyPrint) Habits(habits []model.Habit, completions []model.HabitCompletion, days []time.Time) {
	if len(habits) == 0 {
		pp.none()
		return
	}
	logged := make(map[int64]map[string]float64, len(habits))
	for _, c := range completions {
		if logged[c.HabitID] == nil {
			logged[c.HabitID] = make(map[string]float64)
		}
		logged[c.HabitID][c.Date.Key()] += c.Value
	}

	bold := color.New(color.Bold)
	ok := color.New(color.FgGreen)
	miss := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := make([]string, 0, len(days))
	for _, d := range days {
		header = append(header, d.Format("Mon")[0:2])
	}
	tbl.AddRow(bold.Sprint("Habit"), bold.Sprint(strings.Join(header, " ")), bold.Sprint("Target"))
	for _, h := range habits {
		marks := make([]string, 0, len(days))
		for _, d := range days {
			if h.IsComplete(logged[h.ID][timeutil.DateKey(d)]) {
				marks = append(marks, ok.Sprint(glyph.HabitDone.String()+" "))
			} else {
				marks = append(marks, miss.Sprint(glyph.HabitMissed.String()+" "))
			}
		}
		name := h.Name
		if pp.ShowID {
			name = fmt.Sprintf("%d %s", h.ID, h.Name)
		}
		if !h.Active {
			name = miss.Sprint(name + " (paused)")
		}
		tbl.AddRow(name, strings.Join(marks, ""), target(h))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func target(h model.Habit) string {
	switch h.CompletionType {
	case model.CompletionCount, model.CompletionDuration:
		t := fmt.Sprintf("%g", h.Target())
		if h.Unit != "" {
			t += " " + h.Unit
		}
		return t
	}
	return "daily"
}

// Moods prints mood entries newest first with their tags and notes.
func (pp *PrettyPrint) Moods(entries []model.MoodEntry) {
	if len(entries) == 0 {
		pp.none()
		return
	}
	faint := color.New(color.Faint)
	for i := len(entries) - 1; i >= 0; i-- {
		m := entries[i]
		if pp.ShowID {
			pp.id(m.ID)
		}
		_, _ = fmt.Fprintf(pp.out(), "%s %s  %s", m.EntryDate.Format("Mon Jan 2"), glyph.Mood, moodBar(m.MoodScore))
		if m.EnergyLevel != nil {
			_, _ = faint.Fprintf(pp.out(), "  energy %d", *m.EnergyLevel)
		}
		if len(m.ContextTags) > 0 {
			_, _ = faint.Fprintf(pp.out(), "  #%s", strings.Join(m.ContextTags, " #"))
		}
		pp.NewLine()
		if m.Notes != "" {
			width := 72
			if pp.Width > 4 {
				width = pp.Width - 4
			}
			for _, line := range strings.Split(wordwrap.String(m.Notes, width), "\n") {
				_, _ = faint.Fprintf(pp.out(), "    %s\n", line)
			}
		}
	}
	pp.NewLine()
}

func moodBar(v int) string {
	if v < model.MinMood {
		v = model.MinMood
	}
	if v > model.MaxMood {
		v = model.MaxMood
	}
	return strings.Repeat("■", v) + strings.Repeat("□", model.MaxMood-v) + fmt.Sprintf(" %d/%d", v, model.MaxMood)
}

// Timer prints the running entry, or that nothing is running.
func (pp *PrettyPrint) Timer(e *model.TimeEntry) {
	_, _ = fmt.Fprintln(pp.out(), pp.timerLine(e))
}

// TimerInline redraws the timer over the current terminal line.
func (pp *PrettyPrint) TimerInline(e *model.TimeEntry) {
	_, _ = fmt.Fprint(pp.out(), "\r\x1b[2K"+pp.timerLine(e))
}

func (pp *PrettyPrint) timerLine(e *model.TimeEntry) string {
	if e == nil || !e.Running() {
		return color.New(color.Faint, color.Italic).Sprint("no timer running")
	}
	desc := e.Description
	if desc == "" && e.TaskID != nil {
		desc = fmt.Sprintf("task %d", *e.TaskID)
	}
	return color.New(color.Bold).Sprintf("%s %s", glyph.Timer, Clock(e.Elapsed(pp.now()))) +
		"  " + pp.clip(desc) +
		color.New(color.Faint).Sprintf("  since %s", e.Start.Format("15:04"))
}

// Clock formats d as h:mm:ss.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
