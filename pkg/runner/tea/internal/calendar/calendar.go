// Package calendar renders the month grid of the navigator.
package calendar

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/edc-app/edc/pkg/calendar"
	"github.com/edc-app/edc/pkg/runner/tea/internal/theme"
)

// Options controls calendar styling.
type Options struct {
	Theme theme.CalendarTheme
	// Selected is the key of the day under the cursor.
	Selected   string
	ShowHeader bool
}

// Render produces the month grid with one heat coloured cell per day.
func Render(g calendar.Grid, opts Options) string {
	if len(g.Days) == 0 {
		return ""
	}

	var rows []string
	if opts.ShowHeader {
		n := 7
		if len(g.Days) < n {
			n = len(g.Days)
		}
		header := make([]string, 0, n)
		for _, d := range g.Days[:n] {
			header = append(header, opts.Theme.Header.Render(d.Date.Weekday().String()[:2]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, header...))
	}

	for _, week := range g.Weeks() {
		cells := make([]string, 0, len(week))
		for _, d := range week {
			cells = append(cells, renderDay(d, d.Key == opts.Selected, opts.Theme))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderDay(d calendar.Day, selected bool, th theme.CalendarTheme) string {
	text := fmt.Sprintf("%2d", d.Date.Day())

	style := th.Cell
	if c, ok := Heat(d.Score); ok && d.InPeriod {
		style = style.Background(c).Inherit(th.OnHeat)
	}
	if !d.InPeriod {
		style = style.Inherit(th.Outside)
	}
	if d.IsToday {
		style = style.Inherit(th.Today)
	}
	if selected {
		return th.Selected.Render(style.Width(theme.CellWidth - 2).Render(text))
	}
	// Pad unselected cells to the height of the bordered one.
	return lipgloss.NewStyle().Padding(1, 0).Render(style.Render(text))
}
