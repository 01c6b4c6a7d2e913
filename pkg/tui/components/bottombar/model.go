// Package bottombar renders the status and key-help footer.
package bottombar

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/ringo/pkg/tui/theme"
	"tableflip.dev/ringo/pkg/tui/ui"
)

// Model is a passive footer: the root model pushes status and error text into
// it and lays it out under the main content.
type Model struct {
	width  int
	height int

	status string
	err    string
	help   string

	styles theme.FooterTheme
}

// New constructs a footer with the given key help.
func New(help string) *Model {
	return &Model{
		help:   help,
		styles: theme.Default().Footer,
	}
}

// SetStatus replaces the status line and clears any error.
func (m *Model) SetStatus(text string) {
	m.status = text
	m.err = ""
}

// SetError replaces the status line with an error.
func (m *Model) SetError(text string) { m.err = text }

// SetHelp replaces the key help text.
func (m *Model) SetHelp(text string) { m.help = text }

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Component. The footer is passive.
func (m *Model) Update(tea.Msg) (ui.Component, tea.Cmd) { return m, nil }

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Height reports the rows the footer needs at the given width, so the root
// can budget the main content area.
func (m *Model) Height(width int) int {
	if width < 1 {
		width = 1
	}
	rows := 1
	if m.help != "" {
		rows += len(strings.Split(wordwrap.String(m.help, width), "\n"))
	}
	return rows
}

// View implements ui.Component.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}
	line := m.styles.Status.Render(m.status)
	if m.err != "" {
		line = m.styles.Error.Render(m.err)
	}
	if m.help == "" {
		return line
	}
	help := m.styles.Help.Render(wordwrap.String(m.help, m.width))
	return lipgloss.JoinVertical(lipgloss.Left, line, help)
}
