package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/edc-app/edc/pkg/model"
	"github.com/edc-app/edc/pkg/score"
)

const barWidth = 20

// Analytics prints the summary rates, a score bar per day and the habit
// streaks.
func (pp *PrettyPrint) Analytics(a model.Analytics) {
	pp.Title(fmt.Sprintf("Analytics %s to %s", a.From.Key(), a.To.Key()))

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Tasks completed", percent(a.CompletionRate))
	tbl.AddRow("Habits kept", percent(a.HabitRate))
	if a.AverageMood != nil {
		tbl.AddRow("Average mood", fmt.Sprintf("%.1f / %d", *a.AverageMood, model.MaxMood))
	}
	if a.BestDay != nil {
		tbl.AddRow("Best day", a.BestDay.Format("Mon Jan 2"))
	}
	if a.Source != "" {
		tbl.AddRow("Source", a.Source)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	if len(a.Days) > 0 {
		pp.Title("Daily score")
		for _, d := range a.Days {
			pp.ScoreBar(d.Date.Format("Mon Jan 2"), d.Score)
		}
		pp.NewLine()
	}

	if len(a.Streaks) > 0 {
		bold := color.New(color.Bold)
		st := uitable.New()
		st.Separator = "  "
		st.AddRow(bold.Sprint("Habit"), bold.Sprint("Current"), bold.Sprint("Longest"))
		for _, s := range a.Streaks {
			st.AddRow(s.Name, days(s.Current), days(s.Longest))
		}
		st.RightAlign(1)
		st.RightAlign(2)
		_, _ = fmt.Fprintln(pp.out(), st)
		pp.NewLine()
	}
}

// ScoreBar prints one labelled bar scaled to a 0-100 value.
func (pp *PrettyPrint) ScoreBar(label string, value int) {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	filled := value * barWidth / 100
	c := ScoreColor(score.LevelFor(value))
	if value == 0 {
		c = ScoreColor(score.LevelNone)
	}
	_, _ = fmt.Fprintf(pp.out(), "%-10s ", label)
	_, _ = c.Fprint(pp.out(), strings.Repeat("█", filled))
	_, _ = color.New(color.Faint).Fprint(pp.out(), strings.Repeat("░", barWidth-filled))
	_, _ = c.Fprintf(pp.out(), " %3d\n", value)
}

// Score prints a single day's score with its breakdown.
func (pp *PrettyPrint) Score(label string, r score.Result) {
	if !r.HasData {
		_, _ = color.New(color.Faint, color.Italic).Fprintf(pp.out(), "%s  no data\n", label)
		return
	}
	pp.ScoreBar(label, r.Value)
	_, _ = color.New(color.Faint).Fprintf(pp.out(), "%-10s tasks %s  habits %s  mood %s  (%s)\n",
		"", percent(r.Tasks), percent(r.Habits), percent(r.Mood), r.Level)
}

func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
