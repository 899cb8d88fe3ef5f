package teaui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/mattn/go-isatty"

	"github.com/edc-app/edc/pkg/app"
	"github.com/edc-app/edc/pkg/calendar"
	"github.com/edc-app/edc/pkg/printers"
	calview "github.com/edc-app/edc/pkg/runner/tea/internal/calendar"
	"github.com/edc-app/edc/pkg/runner/tea/internal/theme"
	"github.com/edc-app/edc/pkg/runner/tea/internal/views/report"
	"github.com/edc-app/edc/pkg/store"
	"github.com/edc-app/edc/pkg/timeutil"
)

var errNoService = errors.New("no service")

type loadedMsg struct {
	view    calendar.View
	current time.Time
	grid    calendar.Grid
	names   map[int64]string
	err     error
}

type reportMsg struct {
	title string
	body  string
	err   error
}

type watchingMsg struct{ events <-chan store.Event }
type changedMsg struct{}
type errMsg struct{ err error }

// Model is the calendar navigator.
type Model struct {
	svc   *app.Service
	ctx   context.Context
	now   func() time.Time
	keys  KeyMap
	help  help.Model
	theme theme.Theme

	view    calendar.View
	current time.Time
	grid    calendar.Grid
	names   map[int64]string
	loaded  bool
	loading bool
	err     error

	report *report.Model
	events <-chan store.Event

	width  int
	height int
}

func New(svc *app.Service) Model {
	th := theme.Default()
	m := Model{
		svc:    svc,
		ctx:    context.Background(),
		now:    time.Now,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		theme:  th,
		view:   calendar.Month,
		report: report.New(th),
	}
	if svc != nil {
		m.now = svc.Clock
	}
	m.current = timeutil.StartOfDay(m.now())
	m.report.SetViewport(80, 20)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.watch())
}

func (m *Model) opts() calendar.Options {
	if m.svc == nil {
		return calendar.Options{}
	}
	return m.svc.Settings.Calendar
}

func (m *Model) load() tea.Cmd {
	svc, ctx, view, current := m.svc, m.ctx, m.view, m.current
	m.loading = true
	return func() tea.Msg {
		msg := loadedMsg{view: view, current: current}
		if svc == nil {
			msg.err = errNoService
			return msg
		}
		msg.grid, msg.err = svc.Calendar(ctx, view, current)
		if msg.err != nil {
			return msg
		}
		msg.names = map[int64]string{}
		if habits, err := svc.Habits(ctx); err == nil {
			for _, h := range habits {
				msg.names[h.ID] = h.Name
			}
		}
		return msg
	}
}

// loadReport renders the analytics of the days in the visible period.
func (m *Model) loadReport() tea.Cmd {
	svc, ctx, now, width := m.svc, m.ctx, m.now, m.width
	from, to, ok := period(m.grid)
	return func() tea.Msg {
		if svc == nil {
			return reportMsg{err: errNoService}
		}
		if !ok {
			return reportMsg{err: errors.New("nothing loaded yet")}
		}
		a, err := svc.Analytics(ctx, from, to)
		if err != nil {
			return reportMsg{err: err}
		}
		var buf bytes.Buffer
		pp := &printers.PrettyPrint{Out: &buf, Width: width, Now: now}
		pp.Analytics(a)
		title := fmt.Sprintf("Report · %s – %s", from.Format("Jan 2"), to.Format("Jan 2, 2006"))
		return reportMsg{title: title, body: buf.String()}
	}
}

// period bounds the in-period days of the grid.
func period(g calendar.Grid) (from, to time.Time, ok bool) {
	for _, d := range g.Days {
		if !d.InPeriod {
			continue
		}
		if !ok {
			from, ok = d.Date, true
		}
		to = d.Date
	}
	return from, to, ok
}

// refresh drops the cached reads and then reloads the visible period.
func (m *Model) refresh() tea.Cmd {
	svc, ctx, view, current := m.svc, m.ctx, m.view, m.current
	load := m.load()
	if svc == nil || svc.Persistence == nil {
		return load
	}
	return func() tea.Msg {
		if _, err := svc.Refresh(ctx); err != nil {
			return loadedMsg{view: view, current: current, err: err}
		}
		return load()
	}
}

func (m *Model) watch() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	if svc == nil || svc.Persistence == nil {
		return nil
	}
	return func() tea.Msg {
		events, err := svc.Watch(ctx)
		if err != nil {
			return errMsg{err}
		}
		return watchingMsg{events}
	}
}

// waitForChange blocks until the store reports a change worth a reload.
// Cache writes are skipped: loads write them, so reacting would loop.
func waitForChange(events <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		for ev := range events {
			if ev.Type != store.EventCacheChanged {
				return changedMsg{}
			}
		}
		return nil
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.report.SetViewport(msg.Width, msg.Height-6)
	case loadedMsg:
		// Drop responses for a period the user already left.
		if msg.view != m.view || !msg.current.Equal(m.current) {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.grid, m.names, m.loaded = msg.grid, msg.names, true
		}
	case reportMsg:
		m.err = msg.err
		if msg.err == nil {
			m.report.SetContent(msg.title, msg.body)
		}
	case watchingMsg:
		m.events = msg.events
		return m, waitForChange(m.events)
	case changedMsg:
		return m, tea.Batch(m.load(), waitForChange(m.events))
	case errMsg:
		m.err = msg.err
	case tea.KeyPressMsg:
		if m.report.Active() {
			if cmd, handled := m.handleReportKey(msg); handled {
				return m, cmd
			}
		}
		return m.handleKey(msg)
	}
	return m, nil
}

// handleReportKey scrolls or closes the report. Keys it does not use close
// the report and fall through.
func (m *Model) handleReportKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.report.ScrollLines(-1)
	case key.Matches(msg, m.keys.Down):
		m.report.ScrollLines(1)
	case key.Matches(msg, m.keys.PageUp):
		m.report.ScrollPages(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.report.ScrollPages(1)
	case key.Matches(msg, m.keys.Report), msg.String() == "esc":
		m.report.Clear()
	default:
		m.report.Clear()
		return nil, false
	}
	return nil, true
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Report):
		return m, m.loadReport()
	case key.Matches(msg, m.keys.Prev):
		m.current = calendar.Step(m.view, m.current, -1, m.opts())
	case key.Matches(msg, m.keys.Next):
		m.current = calendar.Step(m.view, m.current, 1, m.opts())
	case key.Matches(msg, m.keys.Today):
		m.current = timeutil.StartOfDay(m.now())
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()
	default:
		found := false
		for _, v := range m.keys.views() {
			if key.Matches(msg, v.binding) {
				m.view, found = v.view, true
				break
			}
		}
		if !found {
			return m, nil
		}
	}
	return m, m.load()
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render(calendar.Title(m.view, m.current, m.opts())))
	if m.loading {
		b.WriteString(m.theme.Status.Render("  loading…"))
	}
	b.WriteString("\n\n")

	switch {
	case m.report.Active():
		b.WriteString(m.report.View())
		b.WriteString("\n")
	case m.loaded && m.grid.View == calendar.Month:
		b.WriteString(calview.Render(m.grid, calview.Options{
			Theme:      m.theme.Calendar,
			Selected:   timeutil.DateKey(m.current),
			ShowHeader: true,
		}))
		b.WriteString("\n\n")
		if d, ok := m.grid.Find(timeutil.DateKey(m.current)); ok {
			b.WriteString(m.days([]calendar.Day{d}))
		}
	case m.loaded:
		b.WriteString(m.days(m.grid.Days))
	}

	if m.err != nil {
		b.WriteString(m.theme.Error.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// days renders day lists with the same layout as the CLI.
func (m Model) days(days []calendar.Day) string {
	var buf bytes.Buffer
	pp := &printers.PrettyPrint{Out: &buf, Width: m.width, Now: m.now}
	shown := 0
	for _, d := range days {
		if m.view == calendar.Agenda && d.Empty() {
			continue
		}
		pp.Day(d, m.names)
		shown++
	}
	if shown == 0 {
		return m.theme.Status.Render("nothing planned") + "\n\n"
	}
	return buf.String()
}

// Run starts the navigator on the terminal.
func Run(ctx context.Context, svc *app.Service) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("ui: stdout is not a terminal")
	}
	m := New(svc)
	m.ctx = ctx
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
