package teaui

import (
	"github.com/charmbracelet/bubbles/v2/key"

	"github.com/edc-app/edc/pkg/calendar"
)

// KeyMap is the shortcut registry of the calendar navigator. The same
// bindings drive key handling, the in-app help and `edc key`.
type KeyMap struct {
	Month    key.Binding
	Week     key.Binding
	TwoWeek  key.Binding
	ThreeDay key.Binding
	Day      key.Binding
	Agenda   key.Binding
	Prev     key.Binding
	Next     key.Binding
	Today    key.Binding
	Refresh  key.Binding
	Report   key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Month:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month view")),
		Week:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week view")),
		TwoWeek:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "two week view")),
		ThreeDay: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "three day view")),
		Day:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "day view")),
		Agenda:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "agenda")),
		Prev:     key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/h", "previous period")),
		Next:     key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→/l", "next period")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "jump to today")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Report:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "period report")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "space"), key.WithHelp("pgdn", "page down")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Today, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Month, k.Week, k.TwoWeek, k.ThreeDay, k.Day, k.Agenda},
		{k.Prev, k.Next, k.Today, k.Refresh},
		{k.Report, k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Help, k.Quit},
	}
}

// All flattens FullHelp in display order.
func (k KeyMap) All() []key.Binding {
	var out []key.Binding
	for _, col := range k.FullHelp() {
		out = append(out, col...)
	}
	return out
}

// views pairs each view switch with its view.
func (k KeyMap) views() []struct {
	binding key.Binding
	view    calendar.View
} {
	return []struct {
		binding key.Binding
		view    calendar.View
	}{
		{k.Month, calendar.Month},
		{k.Week, calendar.Week},
		{k.TwoWeek, calendar.TwoWeek},
		{k.ThreeDay, calendar.ThreeDay},
		{k.Day, calendar.OneDay},
		{k.Agenda, calendar.Agenda},
	}
}
