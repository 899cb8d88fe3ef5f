package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/edc-app/edc/pkg/runner/tea/internal/theme"
)

// Model renders and scrolls the analytics report overlay.
type Model struct {
	title  string
	lines  []string
	offset int

	viewportWidth  int
	viewportHeight int

	theme theme.Theme
}

// New creates a report overlay model.
func New(th theme.Theme) *Model {
	return &Model{theme: th}
}

// Active reports whether the overlay has content.
func (m *Model) Active() bool {
	return len(m.lines) > 0
}

// Clear removes current report data.
func (m *Model) Clear() {
	m.title = ""
	m.lines = nil
	m.offset = 0
}

// SetViewport configures the usable width/height for rendering.
func (m *Model) SetViewport(totalWidth, availableHeight int) {
	width := totalWidth - 6
	if width < 20 {
		width = 20
	}
	if availableHeight < 3 {
		availableHeight = 3
	}
	m.viewportWidth = width
	m.viewportHeight = availableHeight
	m.ensureBounds()
}

// SetContent stores an already rendered report body under title.
func (m *Model) SetContent(title, body string) {
	m.title = title
	m.lines = append([]string{m.theme.Report.Header.Render(title), ""}, strings.Split(strings.TrimRight(body, "\n"), "\n")...)
	m.offset = 0
	m.ensureBounds()
}

// ScrollLines moves the viewport by delta lines.
func (m *Model) ScrollLines(delta int) {
	if delta == 0 {
		return
	}
	m.offset += delta
	m.ensureBounds()
}

// ScrollPages moves the viewport by page deltas.
func (m *Model) ScrollPages(delta int) {
	if delta == 0 {
		return
	}
	m.offset += delta * m.viewportHeight
	m.ensureBounds()
}

// ScrollHome jumps to the start of the overlay.
func (m *Model) ScrollHome() {
	m.offset = 0
	m.ensureBounds()
}

// ScrollEnd jumps to the end of the overlay.
func (m *Model) ScrollEnd() {
	m.offset = len(m.lines)
	m.ensureBounds()
}

// Offset is the first visible line.
func (m *Model) Offset() int {
	return m.offset
}

// View returns the rendered report overlay.
func (m *Model) View() string {
	if len(m.lines) == 0 || m.viewportHeight == 0 {
		return ""
	}
	m.ensureBounds()
	end := m.offset + m.viewportHeight
	if end > len(m.lines) {
		end = len(m.lines)
	}
	viewport := m.lines[m.offset:end]
	width := m.viewportWidth
	padded := make([]string, len(viewport))
	for i, line := range viewport {
		padded[i] = padRight(line, width)
	}
	frame := m.theme.Report.Frame.Width(width + 4)
	return frame.Render(strings.Join(padded, "\n"))
}

func (m *Model) ensureBounds() {
	if len(m.lines) == 0 {
		m.offset = 0
		return
	}
	height := m.viewportHeight
	if height <= 0 {
		height = 1
	}
	maxOffset := len(m.lines) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
