package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/ringo/pkg/layout"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// ContactRef captures the metadata required to identify a contact in
// cross-component events.
type ContactRef struct {
	ID     string
	Name   string
	Number string
	Placed bool
}

// Label returns a human-friendly identifier for the contact.
func (r ContactRef) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// BubbleRef identifies a placed bubble within cross-component events.
type BubbleRef struct {
	ID        string
	ContactID string
	Name      string
	Size      float64
}

// Label returns a human-friendly identifier for the bubble.
func (r BubbleRef) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// ChangeType enumerates supported change actions across components.
type ChangeType string

const (
	// ChangeCreate indicates a new resource was created.
	ChangeCreate ChangeType = "create"
	// ChangeUpdate indicates an existing resource changed.
	ChangeUpdate ChangeType = "update"
	// ChangeDelete indicates a resource was removed.
	ChangeDelete ChangeType = "delete"
)

// ContactHighlightMsg is emitted when a contact is highlighted (focused)
// within the picker.
type ContactHighlightMsg struct {
	Component ComponentID
	Contact   ContactRef
}

// Describe renders the highlight in a human-friendly format for logs.
func (m ContactHighlightMsg) Describe() string {
	state := "free"
	if m.Contact.Placed {
		state = "placed"
	}
	return fmt.Sprintf(`contact:%q state:%q`, m.Contact.Label(), state)
}

// ContactHighlightCmd wraps ContactHighlightMsg in a tea.Cmd.
func ContactHighlightCmd(component ComponentID, contact ContactRef) tea.Cmd {
	return func() tea.Msg {
		return ContactHighlightMsg{
			Component: component,
			Contact:   contact,
		}
	}
}

// AddBubbleRequestMsg asks the root model to place a bubble for a contact.
type AddBubbleRequestMsg struct {
	Component ComponentID
	Contact   ContactRef
}

// Describe renders the request for logs.
func (m AddBubbleRequestMsg) Describe() string {
	return fmt.Sprintf(`component:%q contact:%q`, m.Component, m.Contact.Label())
}

// AddBubbleRequestCmd wraps AddBubbleRequestMsg in a tea.Cmd.
func AddBubbleRequestCmd(component ComponentID, contact ContactRef) tea.Cmd {
	return func() tea.Msg {
		return AddBubbleRequestMsg{
			Component: component,
			Contact:   contact,
		}
	}
}

// RemoveBubbleRequestMsg asks the root model to remove a placed bubble.
type RemoveBubbleRequestMsg struct {
	Component ComponentID
	Bubble    BubbleRef
}

// Describe renders the request for logs.
func (m RemoveBubbleRequestMsg) Describe() string {
	return fmt.Sprintf(`component:%q bubble:%q`, m.Component, m.Bubble.Label())
}

// RemoveBubbleRequestCmd wraps RemoveBubbleRequestMsg in a tea.Cmd.
func RemoveBubbleRequestCmd(component ComponentID, bubble BubbleRef) tea.Cmd {
	return func() tea.Msg {
		return RemoveBubbleRequestMsg{
			Component: component,
			Bubble:    bubble,
		}
	}
}

// BubbleHighlightMsg is emitted when the keyboard cursor lands on a bubble.
type BubbleHighlightMsg struct {
	Component ComponentID
	Bubble    BubbleRef
}

// Describe renders the highlight in a human-friendly format for logs.
func (m BubbleHighlightMsg) Describe() string {
	return fmt.Sprintf(`bubble:%q`, m.Bubble.Label())
}

// BubbleHighlightCmd wraps BubbleHighlightMsg in a tea.Cmd.
func BubbleHighlightCmd(component ComponentID, bubble BubbleRef) tea.Cmd {
	return func() tea.Msg {
		return BubbleHighlightMsg{
			Component: component,
			Bubble:    bubble,
		}
	}
}

// BubblePressMsg fires when a press lands on a bubble and a drag begins.
type BubblePressMsg struct {
	Component ComponentID
	Bubble    BubbleRef
	At        layout.Position
}

// Describe renders the press for logs.
func (m BubblePressMsg) Describe() string {
	return fmt.Sprintf(`bubble:%q at:(%.0f, %.0f)`, m.Bubble.Label(), m.At.X, m.At.Y)
}

// BubblePressCmd wraps BubblePressMsg in a tea.Cmd.
func BubblePressCmd(component ComponentID, bubble BubbleRef, at layout.Position) tea.Cmd {
	return func() tea.Msg {
		return BubblePressMsg{
			Component: component,
			Bubble:    bubble,
			At:        at,
		}
	}
}

// BubbleMoveMsg announces the outcome of a completed drag. Blocked counts the
// offers the engine rejected while the bubble held its last admissible spot.
type BubbleMoveMsg struct {
	Component ComponentID
	Bubble    BubbleRef
	From      layout.Position
	To        layout.Position
	Blocked   int
}

// Describe renders the move outcome for logs.
func (m BubbleMoveMsg) Describe() string {
	return fmt.Sprintf(`bubble:%q from:(%.0f, %.0f) to:(%.0f, %.0f) blocked:%d`,
		m.Bubble.Label(), m.From.X, m.From.Y, m.To.X, m.To.Y, m.Blocked)
}

// BubbleMoveCmd wraps BubbleMoveMsg in a tea.Cmd.
func BubbleMoveCmd(component ComponentID, bubble BubbleRef, from, to layout.Position, blocked int) tea.Cmd {
	return func() tea.Msg {
		return BubbleMoveMsg{
			Component: component,
			Bubble:    bubble,
			From:      from,
			To:        to,
			Blocked:   blocked,
		}
	}
}

// BubbleChangeMsg announces lifecycle changes to bubbles (create, resize,
// delete) regardless of their origin (user action, watcher, refresh).
type BubbleChangeMsg struct {
	Component ComponentID
	Action    ChangeType
	Bubble    BubbleRef
	Meta      map[string]string
}

// Describe renders the change in a human-friendly format for logs.
func (m BubbleChangeMsg) Describe() string {
	return fmt.Sprintf(`action:%q bubble:%q size:%.0f`, m.Action, m.Bubble.Label(), m.Bubble.Size)
}

// BubbleChangeCmd wraps BubbleChangeMsg in a tea.Cmd.
func BubbleChangeCmd(component ComponentID, action ChangeType, bubble BubbleRef, meta map[string]string) tea.Cmd {
	return func() tea.Msg {
		return BubbleChangeMsg{
			Component: component,
			Action:    action,
			Bubble:    bubble,
			Meta:      meta,
		}
	}
}

// LayoutSyncMsg announces that the persisted layout was reloaded from disk,
// typically because another process wrote it.
type LayoutSyncMsg struct {
	Component ComponentID
	Bubbles   int
}

// Describe renders the sync for logs.
func (m LayoutSyncMsg) Describe() string {
	return fmt.Sprintf(`component:%q bubbles:%d`, m.Component, m.Bubbles)
}

// FocusMsg indicates a component just gained focus.
type FocusMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m FocusMsg) Describe() string {
	return fmt.Sprintf(`component:%q state:"focus"`, m.Component)
}

// BlurMsg indicates a component just lost focus.
type BlurMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m BlurMsg) Describe() string {
	return fmt.Sprintf(`component:%q state:"blur"`, m.Component)
}

// FocusCmd wraps a FocusMsg in a tea.Cmd helper.
func FocusCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return FocusMsg{Component: component}
	}
}

// BlurCmd wraps a BlurMsg in a tea.Cmd helper.
func BlurCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return BlurMsg{Component: component}
	}
}

// DebugMsg captures optional diagnostic notes emitted by components.
type DebugMsg struct {
	Component ComponentID
	Context   string
	Detail    string
}

// Describe renders the debug message in a human-readable format.
func (m DebugMsg) Describe() string {
	return fmt.Sprintf(`component:%q context:%q detail:%q`, m.Component, m.Context, m.Detail)
}

// DebugCmd wraps DebugMsg creation in a tea.Cmd helper.
func DebugCmd(component ComponentID, context, detail string) tea.Cmd {
	return func() tea.Msg {
		return DebugMsg{Component: component, Context: context, Detail: detail}
	}
}
