// Package canvasui hosts the interactive bubble canvas. It mounts the canvas
// component over a live layout store, a contact picker for placing bubbles,
// an optional event log, and a footer, all sharing one app service.
package canvasui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/ringo/pkg/app"
	"tableflip.dev/ringo/pkg/contact"
	"tableflip.dev/ringo/pkg/layout"
	"tableflip.dev/ringo/pkg/store"
	"tableflip.dev/ringo/pkg/tui/components/bottombar"
	"tableflip.dev/ringo/pkg/tui/components/canvas"
	"tableflip.dev/ringo/pkg/tui/components/eventviewer"
	"tableflip.dev/ringo/pkg/tui/components/picker"
	"tableflip.dev/ringo/pkg/tui/events"
)

const rootID events.ComponentID = "root"

const (
	canvasHelp = "drag with the mouse · a add · tab cycle · h/j/k/l nudge · dd remove · r refresh · e events · q quit"
	pickerHelp = "enter place · / filter · esc close"
)

type layoutLoadedMsg struct {
	store    *layout.Store
	external bool
	err      error
}

type contactsLoadedMsg struct {
	refs []events.ContactRef
	err  error
}

type bubbleAddedMsg struct {
	contact events.ContactRef
	node    *layout.BubbleNode
	notes   []string
	err     error
}

type bubbleRemovedMsg struct {
	bubble  events.BubbleRef
	removed bool
	err     error
}

type refreshDoneMsg struct {
	snap  layout.Snapshot
	notes []string
	err   error
}

type watchStartedMsg struct {
	ch  <-chan store.Event
	err error
}

type watchEventMsg struct {
	event store.Event
	ok    bool
}

// Model is the root Bubble Tea model. It owns persistence and the picker
// lifecycle; every bubble position change still goes through the canvas and
// its gesture so the layout engine stays the single authority.
type Model struct {
	ctx     context.Context
	service *app.Service

	width      int
	height     int
	canvasRows int

	canvas *canvas.Model
	picker *picker.Model
	footer *bottombar.Model

	pickerOpen bool

	eventsOn    bool
	eventViewer *eventviewer.Model

	watch <-chan store.Event
}

// New constructs the root model around the provided service.
func New(service *app.Service) *Model {
	cv := canvas.New(canvas.DefaultID, nil)
	cv.SetFocused(true)
	m := &Model{
		ctx:     context.Background(),
		service: service,
		canvas:  cv,
		picker:  picker.New(picker.DefaultID),
		footer:  bottombar.New(canvasHelp),
	}
	m.footer.SetStatus("ready")
	return m
}

// Run launches the canvas UI in the alternate screen with full mouse
// reporting, which the drag gesture depends on.
func Run(service *app.Service) error {
	p := tea.NewProgram(New(service), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.canvas.Init(), m.picker.Init()}
	if m.service == nil {
		m.footer.SetError("service offline")
		return tea.Batch(cmds...)
	}
	cmds = append(cmds, m.layoutCmd(false), m.startWatch())
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.noteEvent(msg)

	var cmds []tea.Cmd

	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.layoutContent()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg, v.String())

	case tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg:
		if m.pickerOpen {
			return m, nil
		}
		return m, m.forwardCanvas(msg)

	case layoutLoadedMsg:
		if v.err != nil {
			m.footer.SetError(v.err.Error())
			return m, nil
		}
		m.canvas.SetStore(v.store)
		if m.pickerOpen {
			cmds = append(cmds, m.contactsCmd())
		}
		if v.external {
			count := v.store.Len()
			cmds = append(cmds, func() tea.Msg {
				return events.LayoutSyncMsg{Component: rootID, Bubbles: count}
			})
		}
		return m, tea.Batch(cmds...)

	case contactsLoadedMsg:
		return m, m.handleContactsLoaded(v)

	case bubbleAddedMsg:
		m.appendNotes(v.notes)
		if v.err != nil {
			m.footer.SetError(v.err.Error())
			return m, nil
		}
		m.footer.SetStatus(fmt.Sprintf("placed %s", v.contact.Label()))
		cmds = append(cmds, m.layoutCmd(false))
		if v.node != nil {
			cmds = append(cmds, events.BubbleChangeCmd(rootID, events.ChangeCreate, bubbleRef(v.node), nil))
		}
		return m, tea.Batch(cmds...)

	case bubbleRemovedMsg:
		if v.err != nil {
			m.footer.SetError(v.err.Error())
			return m, nil
		}
		if !v.removed {
			m.footer.SetStatus(fmt.Sprintf("no bubble for %s", v.bubble.Label()))
			return m, m.layoutCmd(false)
		}
		m.footer.SetStatus(fmt.Sprintf("removed %s", v.bubble.Label()))
		return m, tea.Batch(
			m.layoutCmd(false),
			events.BubbleChangeCmd(rootID, events.ChangeDelete, v.bubble, nil),
		)

	case refreshDoneMsg:
		m.appendNotes(v.notes)
		if v.err != nil {
			m.footer.SetError(v.err.Error())
			return m, nil
		}
		m.footer.SetStatus("bubble sizes refreshed")
		return m, m.layoutCmd(false)

	case watchStartedMsg:
		if v.err != nil {
			m.appendEntry(eventviewer.LevelWarn, "watch", v.err.Error())
			return m, nil
		}
		if v.ch == nil {
			return m, nil
		}
		m.watch = v.ch
		return m, m.waitChange()

	case watchEventMsg:
		if !v.ok {
			m.watch = nil
			return m, nil
		}
		cmds = append(cmds, m.waitChange())
		if m.canvas.Phase() == layout.Idle {
			cmds = append(cmds, m.reloadIfChanged())
		}
		return m, tea.Batch(cmds...)

	case events.AddBubbleRequestMsg:
		if v.Contact.Placed {
			m.footer.SetStatus(fmt.Sprintf("%s already has a bubble", v.Contact.Label()))
			return m, nil
		}
		m.footer.SetStatus(fmt.Sprintf("placing %s", v.Contact.Label()))
		return m, m.addCmd(v.Contact)

	case events.RemoveBubbleRequestMsg:
		if m.canvas.Phase() != layout.Idle {
			m.footer.SetStatus("finish the drag before removing")
			return m, nil
		}
		m.footer.SetStatus(fmt.Sprintf("removing %s", v.Bubble.Label()))
		return m, m.removeCmd(v.Bubble)

	case events.BubbleMoveMsg:
		return m, m.persistMove(v)

	case events.BubblePressMsg:
		m.footer.SetStatus(fmt.Sprintf("dragging %s", v.Bubble.Label()))
		return m, nil

	case events.BubbleHighlightMsg:
		m.footer.SetStatus(fmt.Sprintf("selected %s", v.Bubble.Label()))
		return m, nil

	case events.LayoutSyncMsg:
		m.footer.SetStatus(fmt.Sprintf("layout reloaded, %d bubbles", v.Bubbles))
		return m, nil

	default:
		// Component-internal messages (settle timers, list ticks) still need
		// to reach their owners.
		cmds = append(cmds, m.forwardCanvas(msg))
		if m.pickerOpen {
			cmds = append(cmds, m.forwardPicker(msg))
		}
		return m, tea.Batch(cmds...)
	}
}

func (m *Model) handleKey(msg tea.Msg, key string) (tea.Model, tea.Cmd) {
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.pickerOpen {
		if key == "esc" && !m.picker.Filtering() {
			return m, m.closePicker()
		}
		return m, m.forwardPicker(msg)
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "a":
		if m.canvas.Phase() != layout.Idle {
			return m, nil
		}
		m.footer.SetStatus("loading contacts")
		return m, m.contactsCmd()
	case "r":
		if m.service == nil {
			return m, nil
		}
		m.footer.SetStatus("refreshing sizes")
		return m, m.refreshCmd()
	case "e":
		m.toggleEvents()
		return m, nil
	}

	cmd := m.forwardCanvas(msg)
	m.noteCanvasState()
	return m, cmd
}

func (m *Model) handleContactsLoaded(v contactsLoadedMsg) tea.Cmd {
	if v.err != nil {
		m.footer.SetError(v.err.Error())
		if m.pickerOpen {
			return m.closePicker()
		}
		return nil
	}
	m.picker.SetContacts(v.refs)
	if m.pickerOpen {
		return nil
	}
	m.pickerOpen = true
	m.canvas.SetFocused(false)
	m.footer.SetHelp(pickerHelp)
	m.footer.SetStatus("pick a contact")
	m.layoutContent()
	return tea.Batch(events.BlurCmd(canvas.DefaultID), events.FocusCmd(picker.DefaultID))
}

func (m *Model) closePicker() tea.Cmd {
	if !m.pickerOpen {
		return nil
	}
	m.pickerOpen = false
	m.canvas.SetFocused(true)
	m.footer.SetHelp(canvasHelp)
	m.footer.SetStatus("ready")
	m.layoutContent()
	return tea.Batch(events.BlurCmd(picker.DefaultID), events.FocusCmd(canvas.DefaultID))
}

// persistMove saves the canvas store after a release or nudge. The store has
// already admitted or held the offer; this only records the outcome.
func (m *Model) persistMove(v events.BubbleMoveMsg) tea.Cmd {
	if ls := m.canvas.Store(); ls != nil && m.service != nil {
		if err := m.service.SaveLayout(ls); err != nil {
			m.footer.SetError(err.Error())
			return nil
		}
	}
	if v.Blocked > 0 && v.From == v.To {
		m.footer.SetStatus(fmt.Sprintf("%s held at (%.0f, %.0f)", v.Bubble.Label(), v.To.X, v.To.Y))
	} else {
		m.footer.SetStatus(fmt.Sprintf("%s now at (%.0f, %.0f)", v.Bubble.Label(), v.To.X, v.To.Y))
	}
	return nil
}

// noteCanvasState mirrors the canvas's armed delete into the footer so the
// second d press is never a surprise.
func (m *Model) noteCanvasState() {
	id, ok := m.canvas.DeleteArmed()
	if !ok {
		return
	}
	name := id
	if ls := m.canvas.Store(); ls != nil {
		if n, found := ls.Node(id); found {
			name = n.ContactName
		}
	}
	m.footer.SetStatus(fmt.Sprintf("press d again to remove %s", name))
}

func (m *Model) toggleEvents() {
	m.eventsOn = !m.eventsOn
	if m.eventsOn {
		if m.eventViewer == nil {
			m.eventViewer = eventviewer.New(200)
		}
		m.appendEntry(eventviewer.LevelInfo, "events", "event log enabled")
		m.footer.SetStatus("event log visible")
	} else {
		m.footer.SetStatus("event log hidden")
	}
	m.layoutContent()
}

func (m *Model) layoutContent() {
	if m.width <= 0 || m.height <= 0 {
		return
	}

	footerRows := m.footer.Height(m.width)
	eventRows := 0
	if m.eventsOn {
		if m.eventViewer == nil {
			m.eventViewer = eventviewer.New(200)
		}
		eventRows = eventHeight(m.height - footerRows)
		if eventRows > 0 {
			m.eventViewer.SetSize(m.width, eventRows)
		}
	}

	rows := m.height - footerRows - eventRows
	if rows < 3 {
		rows = 3
	}
	m.canvasRows = rows
	m.canvas.SetSize(m.width, rows)
	m.canvas.SetOrigin(0, 0)
	m.footer.SetSize(m.width, footerRows)

	pw := min(46, max(24, m.width-8))
	if pw > m.width {
		pw = m.width
	}
	ph := min(14, max(7, rows-4))
	m.picker.SetSize(pw, ph)
}

// eventHeight sizes the docked event log: roughly a third of the space above
// the footer, and nothing at all on short terminals.
func eventHeight(avail int) int {
	if avail < 8 {
		return 0
	}
	return min(10, max(4, avail/3))
}

// View implements tea.Model.
func (m *Model) View() (string, *tea.Cursor) {
	if m.width <= 0 || m.height <= 0 {
		return "measuring terminal", nil
	}

	content := m.canvas.View()
	if m.pickerOpen {
		content = lipgloss.Place(m.width, m.canvasRows, lipgloss.Center, lipgloss.Center, m.picker.View())
	}

	parts := []string{content}
	if m.eventsOn && m.eventViewer != nil {
		parts = append(parts, m.eventViewer.View())
	}
	parts = append(parts, m.footer.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...), nil
}

func (m *Model) forwardCanvas(msg tea.Msg) tea.Cmd {
	next, cmd := m.canvas.Update(msg)
	if cv, ok := next.(*canvas.Model); ok {
		m.canvas = cv
	}
	return cmd
}

func (m *Model) forwardPicker(msg tea.Msg) tea.Cmd {
	next, cmd := m.picker.Update(msg)
	if pk, ok := next.(*picker.Model); ok {
		m.picker = pk
	}
	return cmd
}

// layoutCmd loads a fresh store from persistence. Commands run off the update
// goroutine, so they capture the service rather than touching the model.
func (m *Model) layoutCmd(external bool) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		if svc == nil {
			return layoutLoadedMsg{err: errors.New("service offline")}
		}
		ls, err := svc.LayoutStore()
		return layoutLoadedMsg{store: ls, external: external, err: err}
	}
}

// reloadIfChanged loads the persisted layout and swaps it in only when it
// differs from what the canvas already shows, so the app's own saves do not
// bounce back as reloads.
func (m *Model) reloadIfChanged() tea.Cmd {
	svc := m.service
	var current layout.Snapshot
	var haveCurrent bool
	if ls := m.canvas.Store(); ls != nil {
		current = ls.Snapshot()
		haveCurrent = true
	}
	return func() tea.Msg {
		if svc == nil {
			return nil
		}
		next, err := svc.LayoutStore()
		if err != nil {
			return layoutLoadedMsg{err: err}
		}
		if haveCurrent && equalSnapshot(current, next.Snapshot()) {
			return nil
		}
		return layoutLoadedMsg{store: next, external: true}
	}
}

func (m *Model) contactsCmd() tea.Cmd {
	svc := m.service
	ctx := m.ctx
	placed := map[string]bool{}
	if ls := m.canvas.Store(); ls != nil {
		for _, n := range ls.Nodes() {
			placed[n.ContactID] = true
		}
	}
	return func() tea.Msg {
		if svc == nil {
			return contactsLoadedMsg{err: errors.New("service offline")}
		}
		book, err := svc.Contacts(ctx)
		if err != nil {
			return contactsLoadedMsg{err: err}
		}
		refs := make([]events.ContactRef, 0, len(book))
		for _, c := range book {
			refs = append(refs, events.ContactRef{
				ID:     c.ID,
				Name:   c.Name,
				Number: primaryNumber(c),
				Placed: placed[c.ID],
			})
		}
		return contactsLoadedMsg{refs: refs}
	}
}

func (m *Model) addCmd(ref events.ContactRef) tea.Cmd {
	svc := m.service
	ctx := m.ctx
	return func() tea.Msg {
		n, notes, err := svc.AddBubble(ctx, ref.ID)
		return bubbleAddedMsg{contact: ref, node: n, notes: notes, err: err}
	}
}

func (m *Model) removeCmd(ref events.BubbleRef) tea.Cmd {
	svc := m.service
	ctx := m.ctx
	return func() tea.Msg {
		removed, err := svc.RemoveBubble(ctx, ref.ContactID)
		return bubbleRemovedMsg{bubble: ref, removed: removed, err: err}
	}
}

func (m *Model) refreshCmd() tea.Cmd {
	svc := m.service
	ctx := m.ctx
	return func() tea.Msg {
		snap, notes, err := svc.RefreshBubbles(ctx)
		return refreshDoneMsg{snap: snap, notes: notes, err: err}
	}
}

func (m *Model) startWatch() tea.Cmd {
	svc := m.service
	ctx := m.ctx
	return func() tea.Msg {
		ch, err := svc.Watch(ctx)
		return watchStartedMsg{ch: ch, err: err}
	}
}

func (m *Model) waitChange() tea.Cmd {
	ch := m.watch
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		return watchEventMsg{event: ev, ok: ok}
	}
}

func (m *Model) appendNotes(notes []string) {
	for _, note := range notes {
		m.appendEntry(eventviewer.LevelWarn, "degraded", note)
	}
}

func (m *Model) appendEntry(level eventviewer.Level, summary, detail string) {
	if m.eventViewer == nil {
		m.eventViewer = eventviewer.New(200)
	}
	m.eventViewer.Append(eventviewer.Entry{
		Source:  string(rootID),
		Summary: summary,
		Detail:  detail,
		Level:   level,
	})
}

// noteEvent mirrors interesting messages into the event log while it is
// visible. Pointer motion is skipped; at full reporting it would drown
// everything else.
func (m *Model) noteEvent(msg tea.Msg) {
	if !m.eventsOn || m.eventViewer == nil {
		return
	}
	detail, ok := describeMsg(msg)
	if !ok {
		return
	}
	source := "tea"
	if s, found := eventSource(msg); found && s != "" {
		source = s
	}
	m.eventViewer.Append(eventviewer.Entry{
		Source:  source,
		Summary: fmt.Sprintf("%T", msg),
		Detail:  detail,
		Level:   eventviewer.LevelInfo,
	})
	m.layoutContent()
}

func describeMsg(msg tea.Msg) (string, bool) {
	if d, ok := msg.(interface{ Describe() string }); ok {
		return d.Describe(), true
	}
	switch v := msg.(type) {
	case tea.KeyMsg:
		return fmt.Sprintf("key=%q", v.String()), true
	case tea.WindowSizeMsg:
		return fmt.Sprintf("size=%dx%d", v.Width, v.Height), true
	case tea.MouseClickMsg:
		mo := v.Mouse()
		return fmt.Sprintf("press %v at (%d, %d)", mo.Button, mo.X, mo.Y), true
	case tea.MouseReleaseMsg:
		mo := v.Mouse()
		return fmt.Sprintf("release at (%d, %d)", mo.X, mo.Y), true
	default:
		return "", false
	}
}

func eventSource(msg tea.Msg) (string, bool) {
	switch v := msg.(type) {
	case events.ContactHighlightMsg:
		return string(v.Component), true
	case events.AddBubbleRequestMsg:
		return string(v.Component), true
	case events.RemoveBubbleRequestMsg:
		return string(v.Component), true
	case events.BubbleHighlightMsg:
		return string(v.Component), true
	case events.BubblePressMsg:
		return string(v.Component), true
	case events.BubbleMoveMsg:
		return string(v.Component), true
	case events.BubbleChangeMsg:
		return string(v.Component), true
	case events.LayoutSyncMsg:
		return string(v.Component), true
	case events.FocusMsg:
		return string(v.Component), true
	case events.BlurMsg:
		return string(v.Component), true
	case events.DebugMsg:
		return string(v.Component), true
	default:
		return "", false
	}
}

// equalSnapshot compares two snapshots in stored order. A false negative only
// costs a cosmetic reload, so no normalization is attempted.
func equalSnapshot(a, b layout.Snapshot) bool {
	if len(a.Bubbles) != len(b.Bubbles) || len(a.SelectedContactIDs) != len(b.SelectedContactIDs) {
		return false
	}
	for i, id := range a.SelectedContactIDs {
		if b.SelectedContactIDs[i] != id {
			return false
		}
	}
	for i, n := range a.Bubbles {
		o := b.Bubbles[i]
		if n == nil || o == nil {
			if n != o {
				return false
			}
			continue
		}
		if n.ID != o.ID || n.ContactID != o.ContactID || n.Size != o.Size || n.Position != o.Position {
			return false
		}
	}
	return true
}

func bubbleRef(n *layout.BubbleNode) events.BubbleRef {
	return events.BubbleRef{
		ID:        n.ID,
		ContactID: n.ContactID,
		Name:      n.ContactName,
		Size:      n.Size,
	}
}

func primaryNumber(c contact.Contact) string {
	if len(c.PhoneNumbers) == 0 {
		return ""
	}
	return c.PhoneNumbers[0]
}
