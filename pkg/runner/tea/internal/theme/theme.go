package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the calendar navigator.
type Theme struct {
	Title    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Calendar CalendarTheme
	Report   ReportTheme
}

// CalendarTheme groups the month grid styles.
type CalendarTheme struct {
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Outside  lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
	// OnHeat is the text colour over a heat coloured cell.
	OnHeat lipgloss.Style
}

// ReportTheme styles the scrolling report overlay.
type ReportTheme struct {
	Frame  lipgloss.Style
	Header lipgloss.Style
	Text   lipgloss.Style
}

// CellWidth is the width of one day in the month grid.
const CellWidth = 5

// Default returns the built-in theme used across the UI.
func Default() Theme {
	accent := lipgloss.Color("212")
	muted := lipgloss.Color("241")

	return Theme{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		Status: lipgloss.NewStyle().Foreground(muted),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Calendar: CalendarTheme{
			Header:   lipgloss.NewStyle().Foreground(muted).Width(CellWidth).Align(lipgloss.Center),
			Cell:     lipgloss.NewStyle().Width(CellWidth).Align(lipgloss.Center),
			Outside:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			Today:    lipgloss.NewStyle().Bold(true).Underline(true),
			Selected: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent),
			OnHeat:   lipgloss.NewStyle().Foreground(lipgloss.Color("0")),
		},
		Report: ReportTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accent).
				Padding(0, 1),
			Header: lipgloss.NewStyle().Bold(true).Foreground(accent),
			Text:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		},
	}
}
