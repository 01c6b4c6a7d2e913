// Package picker lists the contact book so a contact can be chosen for a new
// bubble.
package picker

import (
	"github.com/charmbracelet/bubbles/v2/list"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/ringo/pkg/tui/events"
	"tableflip.dev/ringo/pkg/tui/theme"
	"tableflip.dev/ringo/pkg/tui/ui"
)

// DefaultID identifies the picker in cross-component events.
const DefaultID events.ComponentID = "picker"

// Model wraps a bubbles list over the contact book. Choosing a contact emits
// an add request; the root model owns the actual placement.
type Model struct {
	id   events.ComponentID
	list list.Model

	lastIndex int

	width  int
	height int

	styles theme.PickerTheme
}

// New constructs an empty picker; SetContacts fills it.
func New(id events.ComponentID) *Model {
	if id == "" {
		id = DefaultID
	}
	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	// The root model owns quit; q typed into the picker must not leak out
	// as a program exit.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	return &Model{
		id:     id,
		list:   l,
		styles: theme.Default().Picker,
	}
}

// SetContacts replaces the listed contacts.
func (m *Model) SetContacts(refs []events.ContactRef) {
	items := make([]list.Item, 0, len(refs))
	for _, ref := range refs {
		items = append(items, contactItem{ref: ref})
	}
	m.list.SetItems(items)
	m.list.Select(0)
	m.lastIndex = 0
}

// Filtering reports whether the list is capturing keys for a filter, in
// which case esc clears the filter instead of closing the picker.
func (m *Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		if m.list.FilterState() != list.Filtering && key.String() == "enter" {
			return m, m.choose()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if idx := m.list.Index(); idx != m.lastIndex {
		m.lastIndex = idx
		if ref, ok := m.current(); ok {
			return m, tea.Batch(cmd, events.ContactHighlightCmd(m.id, ref))
		}
	}
	return m, cmd
}

// SetSize implements ui.Component. Width and height include the frame.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	innerWidth := width - 4
	if innerWidth < 1 {
		innerWidth = 1
	}
	innerHeight := height - 4
	if innerHeight < 1 {
		innerHeight = 1
	}
	m.list.SetSize(innerWidth, innerHeight)
}

// View implements ui.Component.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	title := m.styles.Title.Render("Add a contact")
	note := m.styles.Note.Render("enter places a bubble, esc closes, / filters")
	body := lipgloss.JoinVertical(lipgloss.Left, title, m.list.View(), note)
	return m.styles.Frame.Render(body)
}

func (m *Model) choose() tea.Cmd {
	ref, ok := m.current()
	if !ok {
		return nil
	}
	return events.AddBubbleRequestCmd(m.id, ref)
}

func (m *Model) current() (events.ContactRef, bool) {
	it, ok := m.list.SelectedItem().(contactItem)
	if !ok {
		return events.ContactRef{}, false
	}
	return it.ref, true
}

type contactItem struct {
	ref events.ContactRef
}

func (c contactItem) Title() string {
	if c.ref.Placed {
		return c.ref.Label() + " (placed)"
	}
	return c.ref.Label()
}

func (c contactItem) Description() string { return c.ref.Number }

func (c contactItem) FilterValue() string { return c.ref.Name + " " + c.ref.Number }
