// Package eventviewer renders a streaming log of component events, newest
// first. Consecutive identical events fold into one row with a repeat count
// so drag-heavy streams stay readable.
package eventviewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/ringo/pkg/tui/theme"
	"tableflip.dev/ringo/pkg/tui/ui"
)

// Level indicates the severity of a logged event.
type Level int

const (
	// LevelInfo is the default severity.
	LevelInfo Level = iota
	// LevelWarn highlights potential issues.
	LevelWarn
	// LevelError highlights failures.
	LevelError
)

// Entry captures one logged event.
type Entry struct {
	Timestamp time.Time
	Source    string
	Summary   string
	Detail    string
	Level     Level
}

// row is a rendered entry plus the number of consecutive repeats folded
// into it.
type row struct {
	Entry
	repeats int
}

// Model renders the event log inside a bordered viewport.
type Model struct {
	viewport viewport.Model
	rows     []row
	total    int

	maxRows int
	follow  bool

	width  int
	height int

	styles theme.LogTheme
}

// New constructs an event viewer that retains at most maxRows folded rows.
func New(maxRows int) *Model {
	if maxRows <= 0 {
		maxRows = 200
	}
	vp := viewport.New(
		viewport.WithWidth(1),
		viewport.WithHeight(1),
	)
	return &Model{
		viewport: vp,
		maxRows:  maxRows,
		follow:   true,
		styles:   theme.Default().Log,
	}
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Component. The viewer only changes when entries are
// appended, so messages pass through untouched.
func (m *Model) Update(tea.Msg) (ui.Component, tea.Cmd) {
	return m, nil
}

// SetSize resizes the viewport while keeping the header and border intact.
func (m *Model) SetSize(width, height int) {
	if width < 4 {
		width = 4
	}
	if height < 3 {
		height = 3
	}
	if m.width == width && m.height == height {
		return
	}
	m.width = width
	m.height = height

	innerWidth := max(1, width-2)
	innerHeight := max(1, height-2)
	headerRows := 1
	m.viewport.SetWidth(innerWidth)
	m.viewport.SetHeight(max(1, innerHeight-headerRows))
	m.refreshContent()
}

// View renders the bordered viewport.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	title := "Events"
	if m.total > 0 {
		title = fmt.Sprintf("Events (%d)", m.total)
	}
	header := m.styles.Header.Render(title)
	body := lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View())
	return m.styles.Frame.Render(body)
}

// Append inserts a new entry at the top of the log. An entry identical to
// the newest row bumps that row's repeat count instead of adding a line.
func (m *Model) Append(entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.Source == "" {
		entry.Source = "ui"
	}
	if entry.Summary == "" {
		entry.Summary = "event"
	}
	m.total++

	if len(m.rows) > 0 && m.rows[0].sameEvent(entry) {
		m.rows[0].repeats++
		m.rows[0].Timestamp = entry.Timestamp
	} else {
		m.rows = append([]row{{Entry: entry, repeats: 1}}, m.rows...)
		if len(m.rows) > m.maxRows {
			m.rows = m.rows[:m.maxRows]
		}
	}
	m.refreshContent()
	if m.follow {
		m.viewport.SetYOffset(0)
	}
}

func (r row) sameEvent(entry Entry) bool {
	return r.Source == entry.Source &&
		r.Summary == entry.Summary &&
		r.Detail == entry.Detail &&
		r.Level == entry.Level
}

// Len reports the number of retained rows after folding.
func (m *Model) Len() int { return len(m.rows) }

// Total reports the number of events appended, including folded repeats.
func (m *Model) Total() int { return m.total }

// Clear drops all logged entries and resets the event counter.
func (m *Model) Clear() {
	m.rows = nil
	m.total = 0
	m.refreshContent()
}

func (m *Model) refreshContent() {
	lines := make([]string, 0, len(m.rows))
	for _, r := range m.rows {
		lines = append(lines, m.renderRow(r))
	}
	content := strings.Join(lines, "\n")
	if content == "" {
		content = m.styles.Timestamp.Render("no events yet")
	}
	m.viewport.SetContent(content)
}

func (m *Model) renderRow(r row) string {
	ts := m.styles.Timestamp.Render(r.Timestamp.Format("15:04:05.000"))
	source := m.styles.Source.Render(fmt.Sprintf("[%s]", r.Source))
	msg := r.Summary
	if r.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, r.Detail)
	}
	switch r.Level {
	case LevelWarn:
		msg = m.styles.Warn.Render(msg)
	case LevelError:
		msg = m.styles.Error.Render(msg)
	default:
		msg = m.styles.Info.Render(msg)
	}
	line := fmt.Sprintf("%s %s %s", ts, source, msg)
	if r.repeats > 1 {
		line += " " + m.styles.Repeat.Render(fmt.Sprintf("(x%d)", r.repeats))
	}
	return line
}
