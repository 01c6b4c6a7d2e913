// Package canvas renders the bubble layout and turns pointer and key input
// into position offers against the layout engine.
package canvas

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/ringo/pkg/layout"
	"tableflip.dev/ringo/pkg/timeutil"
	"tableflip.dev/ringo/pkg/tui/events"
	"tableflip.dev/ringo/pkg/tui/theme"
	"tableflip.dev/ringo/pkg/tui/ui"
)

// DefaultID identifies the canvas in cross-component events.
const DefaultID events.ComponentID = "canvas"

const (
	// settleDelay is the cosmetic pause between releasing a bubble and the
	// gesture returning to idle.
	settleDelay = 150 * time.Millisecond

	// deleteWindow is how long a second d press still confirms a delete.
	deleteWindow = 600 * time.Millisecond

	// nudgeStep is the offer distance, in canvas units, for one arrow press.
	nudgeStep = 5.0
)

// settleDoneMsg finishes the cosmetic settle for one release. The token
// guards against a stale timer ending a newer gesture's settle.
type settleDoneMsg struct {
	id    events.ComponentID
	token int
}

// Model projects the layout store onto a cell grid and feeds input back into
// it through the gesture state machine. The store stays authoritative for
// every position; the canvas never moves a bubble except through an offer.
type Model struct {
	id events.ComponentID

	store   *layout.Store
	gesture *layout.Gesture

	width  int
	height int

	// originX, originY locate the frame's top-left cell on screen so pointer
	// coordinates can be mapped into canvas units.
	originX int
	originY int

	focused  bool
	selected string

	dragFrom layout.Position
	blocked  int
	rejected bool

	settleToken int

	awaitingDelete bool
	deleteTarget   string
	lastDeleteAt   time.Time

	styles theme.CanvasTheme
	now    func() time.Time
}

// New constructs a canvas over the provided layout store. A nil store renders
// as loading until SetStore is called.
func New(id events.ComponentID, store *layout.Store) *Model {
	if id == "" {
		id = DefaultID
	}
	m := &Model{
		id:     id,
		styles: theme.Default().Canvas,
		now:    time.Now,
	}
	m.SetStore(store)
	return m
}

// SetStore points the canvas at a freshly loaded layout store. Any live drag
// is abandoned; the selection survives when its bubble still exists.
func (m *Model) SetStore(store *layout.Store) {
	m.store = store
	m.gesture = nil
	if store != nil {
		m.gesture = layout.NewGesture(store)
	}
	m.blocked = 0
	m.rejected = false
	if m.selected != "" && !m.hasNode(m.selected) {
		m.selected = ""
	}
	if m.deleteTarget != "" && !m.hasNode(m.deleteTarget) {
		m.awaitingDelete = false
		m.deleteTarget = ""
	}
}

// Store exposes the live layout engine for the root model to persist.
func (m *Model) Store() *layout.Store { return m.store }

// SetFocused toggles keyboard handling for the canvas.
func (m *Model) SetFocused(v bool) { m.focused = v }

// SetOrigin tells the canvas where its frame's top-left cell sits on screen.
func (m *Model) SetOrigin(x, y int) { m.originX, m.originY = x, y }

// Phase reports the live gesture phase.
func (m *Model) Phase() layout.Phase {
	if m.gesture == nil {
		return layout.Idle
	}
	return m.gesture.Phase()
}

// Selected returns the bubble the keyboard cursor is on.
func (m *Model) Selected() (*layout.BubbleNode, bool) {
	if m.store == nil || m.selected == "" {
		return nil, false
	}
	return m.store.Node(m.selected)
}

// DeleteArmed reports the bubble a second d press would remove.
func (m *Model) DeleteArmed() (string, bool) {
	if !m.awaitingDelete {
		return "", false
	}
	return m.deleteTarget, true
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if !m.focused || m.store == nil {
			return m, nil
		}
		return m, m.handleKey(msg)
	case tea.MouseClickMsg:
		return m, m.handlePress(msg.Mouse())
	case tea.MouseMotionMsg:
		return m, m.handleMotion(msg.Mouse())
	case tea.MouseReleaseMsg:
		return m, m.handleRelease(msg.Mouse())
	case settleDoneMsg:
		if msg.id == m.id && msg.token == m.settleToken && m.gesture != nil {
			m.gesture.FinishSettle()
		}
		return m, nil
	}
	return m, nil
}

// SetSize implements ui.Component. Width and height include the frame.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		return m.cycle(1)
	case "shift+tab":
		return m.cycle(-1)
	case "left", "h":
		return m.nudge(-nudgeStep, 0)
	case "right", "l":
		return m.nudge(nudgeStep, 0)
	case "up", "k":
		return m.nudge(0, -nudgeStep)
	case "down", "j":
		return m.nudge(0, nudgeStep)
	case "d":
		return m.confirmDelete()
	case "esc":
		if m.Phase() == layout.Dragging {
			id, moved := m.gesture.Interrupt()
			return m.endDrag(id, moved)
		}
		if m.awaitingDelete {
			m.awaitingDelete = false
			m.deleteTarget = ""
			return nil
		}
		m.selected = ""
	}
	return nil
}

// cycle moves the keyboard cursor through the bubbles in display order.
func (m *Model) cycle(step int) tea.Cmd {
	nodes := m.store.Nodes()
	if len(nodes) == 0 {
		return nil
	}
	at := -1
	for i, n := range nodes {
		if n.ID == m.selected {
			at = i
			break
		}
	}
	at = (at + step + len(nodes)) % len(nodes)
	m.selected = nodes[at].ID
	return events.BubbleHighlightCmd(m.id, refOf(nodes[at]))
}

// nudge offers the selected bubble a spot one step away. A rejected offer
// leaves the bubble exactly where it was.
func (m *Model) nudge(dx, dy float64) tea.Cmd {
	n, ok := m.Selected()
	if !ok {
		return nil
	}
	from := n.Position
	if !m.store.MoveTo(n.ID, from.X+dx, from.Y+dy) {
		return events.DebugCmd(m.id, "nudge", "offer rejected")
	}
	return events.BubbleMoveCmd(m.id, refOf(n), from, n.Position, 0)
}

func (m *Model) confirmDelete() tea.Cmd {
	n, ok := m.Selected()
	if !ok {
		return nil
	}
	if m.awaitingDelete && m.deleteTarget == n.ID && m.now().Sub(m.lastDeleteAt) < deleteWindow {
		m.awaitingDelete = false
		m.deleteTarget = ""
		return events.RemoveBubbleRequestCmd(m.id, refOf(n))
	}
	m.awaitingDelete = true
	m.deleteTarget = n.ID
	m.lastDeleteAt = m.now()
	return nil
}

func (m *Model) handlePress(mouse tea.Mouse) tea.Cmd {
	if m.store == nil || mouse.Button != tea.MouseLeft {
		return nil
	}
	if !m.inside(mouse.X, mouse.Y) {
		return nil
	}
	p := m.pointAt(mouse.X, mouse.Y)
	n, ok := m.hitTop(p)
	if !ok {
		m.selected = ""
		return nil
	}
	if !m.gesture.Begin(n.ID, p.X, p.Y) {
		return nil
	}
	m.selected = n.ID
	m.dragFrom = n.Position
	m.blocked = 0
	m.rejected = false
	return events.BubblePressCmd(m.id, refOf(n), p)
}

func (m *Model) handleMotion(mouse tea.Mouse) tea.Cmd {
	if m.Phase() != layout.Dragging {
		return nil
	}
	p := m.pointAt(mouse.X, mouse.Y)
	m.rejected = !m.gesture.Drag(p.X, p.Y)
	if m.rejected {
		m.blocked++
	}
	return nil
}

func (m *Model) handleRelease(mouse tea.Mouse) tea.Cmd {
	if m.Phase() != layout.Dragging || mouse.Button != tea.MouseLeft {
		return nil
	}
	p := m.pointAt(mouse.X, mouse.Y)
	id, moved := m.gesture.Release(p.X, p.Y)
	return m.endDrag(id, moved)
}

// endDrag emits the move outcome and schedules the settle timer.
func (m *Model) endDrag(id string, moved bool) tea.Cmd {
	m.settleToken++
	token := m.settleToken
	settle := tea.Tick(settleDelay, func(time.Time) tea.Msg {
		return settleDoneMsg{id: m.id, token: token}
	})

	blocked := m.blocked
	if !moved {
		blocked++
	}
	m.blocked = 0
	m.rejected = false

	n, ok := m.store.Node(id)
	if !ok {
		return settle
	}
	return tea.Batch(settle, events.BubbleMoveCmd(m.id, refOf(n), m.dragFrom, n.Position, blocked))
}

// hitTop resolves the topmost bubble at p. Later bubbles draw over earlier
// ones, so the scan runs back to front.
func (m *Model) hitTop(p layout.Position) (*layout.BubbleNode, bool) {
	nodes := m.store.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i].Hit(p) {
			return nodes[i], true
		}
	}
	return nil, false
}

func (m *Model) hasNode(id string) bool {
	if m.store == nil {
		return false
	}
	_, ok := m.store.Node(id)
	return ok
}

func (m *Model) innerSize() (cols, rows int) {
	cols = m.width - 2
	rows = m.height - 2
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// inside reports whether a screen cell falls on the inner grid.
func (m *Model) inside(x, y int) bool {
	cols, rows := m.innerSize()
	return x > m.originX && x <= m.originX+cols &&
		y > m.originY && y <= m.originY+rows
}

// pointAt maps a screen cell to canvas units through the cell's center.
// Coordinates outside the grid map out of bounds rather than clamping; the
// engine, not the projection, decides what an off-canvas offer means.
func (m *Model) pointAt(x, y int) layout.Position {
	cols, rows := m.innerSize()
	c := m.store.Canvas()
	cx := float64(x-m.originX-1) + 0.5
	cy := float64(y-m.originY-1) + 0.5
	return layout.Position{
		X: cx * c.Width / float64(cols),
		Y: cy * c.Height / float64(rows),
	}
}

// View implements ui.Component.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	cols, rows := m.innerSize()
	frame := m.styles.Frame
	if m.focused {
		frame = m.styles.FrameFocused
	}

	if m.store == nil {
		hint := m.styles.Hint.Render("loading layout")
		return frame.Render(lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, hint))
	}
	if m.store.Len() == 0 {
		hint := m.styles.Hint.Render("no bubbles, press a to add a contact")
		return frame.Render(lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, hint))
	}
	return frame.Render(m.renderGrid(cols, rows))
}

type cellKey struct {
	node  int
	label bool
}

// renderGrid rasterizes the layout: every cell center is hit-tested against
// the bubbles, labels are stamped over their centers, and runs of identical
// styling render as one styled chunk.
func (m *Model) renderGrid(cols, rows int) string {
	nodes := m.store.Nodes()
	c := m.store.Canvas()
	ux := c.Width / float64(cols)
	uy := c.Height / float64(rows)

	keys := make([][]cellKey, rows)
	chars := make([][]rune, rows)
	for cy := 0; cy < rows; cy++ {
		keys[cy] = make([]cellKey, cols)
		chars[cy] = make([]rune, cols)
		for cx := 0; cx < cols; cx++ {
			keys[cy][cx] = cellKey{node: -1}
			chars[cy][cx] = ' '
			p := layout.Position{X: (float64(cx) + 0.5) * ux, Y: (float64(cy) + 0.5) * uy}
			for i := len(nodes) - 1; i >= 0; i-- {
				if nodes[i].Hit(p) {
					keys[cy][cx] = cellKey{node: i}
					chars[cy][cx] = '█'
					break
				}
			}
		}
	}

	for i, n := range nodes {
		m.stampLabels(keys, chars, n, i, cols, rows, ux, uy)
	}

	colors := m.rampColors(nodes)
	var out strings.Builder
	for cy := 0; cy < rows; cy++ {
		if cy > 0 {
			out.WriteByte('\n')
		}
		var run strings.Builder
		cur := cellKey{node: -2}
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur.node < 0 {
				out.WriteString(run.String())
			} else {
				out.WriteString(m.cellStyle(cur, nodes, colors).Render(run.String()))
			}
			run.Reset()
		}
		for cx := 0; cx < cols; cx++ {
			if keys[cy][cx] != cur {
				flush()
				cur = keys[cy][cx]
			}
			run.WriteRune(chars[cy][cx])
		}
		flush()
	}
	return out.String()
}

// stampLabels writes the contact label, and the call time when the disc is
// tall enough, across the bubble's center row. Cells owned by other bubbles
// are left alone so labels never spill past an overlap.
func (m *Model) stampLabels(keys [][]cellKey, chars [][]rune, n *layout.BubbleNode, idx, cols, rows int, ux, uy float64) {
	widthCells := int(n.Size / ux)
	heightCells := int(n.Size / uy)
	ccx := int(n.Position.X / ux)
	ccy := int(n.Position.Y / uy)

	stamp := func(text string, cy int) {
		if cy < 0 || cy >= rows || text == "" {
			return
		}
		runes := []rune(text)
		start := ccx - len(runes)/2
		for i, r := range runes {
			cx := start + i
			if cx < 0 || cx >= cols {
				continue
			}
			if keys[cy][cx].node != idx {
				continue
			}
			keys[cy][cx] = cellKey{node: idx, label: true}
			chars[cy][cx] = r
		}
	}

	stamp(labelFor(n, widthCells), ccy)
	if heightCells >= 4 && n.CallDurationSeconds > 0 {
		stamp(timeutil.FormatSeconds(n.CallDurationSeconds), ccy+1)
	}
}

func (m *Model) cellStyle(k cellKey, nodes []*layout.BubbleNode, colors []lipgloss.Style) lipgloss.Style {
	n := nodes[k.node]
	dragging := m.gesture != nil && m.gesture.ID() == n.ID && m.gesture.Phase() != layout.Idle

	if k.label {
		st := m.styles.Label.Background(theme.DurationRamp(m.intensity(n)))
		if m.awaitingDelete && m.deleteTarget == n.ID {
			st = m.styles.Blocked.Background(theme.DurationRamp(m.intensity(n)))
		} else if n.ID == m.selected {
			st = st.Bold(true)
		}
		return st
	}
	if dragging {
		if m.rejected {
			return m.styles.Blocked
		}
		return m.styles.Dragging.Foreground(theme.DurationRamp(m.intensity(n)))
	}
	return colors[k.node]
}

// rampColors precomputes one foreground style per bubble for the frame.
func (m *Model) rampColors(nodes []*layout.BubbleNode) []lipgloss.Style {
	out := make([]lipgloss.Style, len(nodes))
	for i, n := range nodes {
		out[i] = m.styles.Bubble.Foreground(theme.DurationRamp(m.intensity(n)))
	}
	return out
}

// intensity maps a bubble's diameter onto [0, 1] between the size floor and
// cap, which is also its position on the call-time ramp.
func (m *Model) intensity(n *layout.BubbleNode) float64 {
	w := m.store.Canvas().Width
	lo := layout.MinDiameter(w)
	hi := layout.MaxDiameter(w)
	if hi <= lo {
		return 0
	}
	return (n.Size - lo) / (hi - lo)
}

// labelFor picks the widest label that fits: first name, then initials.
func labelFor(n *layout.BubbleNode, widthCells int) string {
	name := strings.TrimSpace(n.ContactName)
	if name == "" {
		name = n.ContactID
	}
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	first := fields[0]
	if len([]rune(first))+2 <= widthCells {
		return first
	}
	return initials(fields)
}

func initials(fields []string) string {
	var b strings.Builder
	for i, f := range fields {
		if i == 2 {
			break
		}
		r := []rune(f)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}

func refOf(n *layout.BubbleNode) events.BubbleRef {
	return events.BubbleRef{
		ID:        n.ID,
		ContactID: n.ContactID,
		Name:      n.ContactName,
		Size:      n.Size,
	}
}
