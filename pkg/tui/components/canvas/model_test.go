package canvas

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/ringo/pkg/layout"
	"tableflip.dev/ringo/pkg/tui/events"
)

// testStore builds a 400x640 layout with Ada at (100, 100) and Grace at
// (300, 100), both minimum sized. With the canvas at 82x66 the inner grid is
// 80x64 cells, so a cell maps to 5x10 canvas units.
func testStore(t *testing.T) *layout.Store {
	t.Helper()
	ls := layout.NewStore(layout.Canvas{Width: 400, Height: 640})
	ls.Restore(layout.Snapshot{Bubbles: []*layout.BubbleNode{
		{
			Schema:      layout.CurrentSchema,
			ID:          "bubble-c1-1",
			ContactID:   "c1",
			ContactName: "Ada",
			Size:        60,
			Position:    layout.Position{X: 100, Y: 100},
		},
		{
			Schema:              layout.CurrentSchema,
			ID:                  "bubble-c2-1",
			ContactID:           "c2",
			ContactName:         "Grace",
			Size:                60,
			Position:            layout.Position{X: 300, Y: 100},
			CallDurationSeconds: 600,
		},
	}})
	if ls.Len() != 2 {
		t.Fatalf("expected two seeded bubbles, got %d", ls.Len())
	}
	return ls
}

func testCanvas(t *testing.T, ls *layout.Store) *Model {
	t.Helper()
	m := New(DefaultID, ls)
	m.SetFocused(true)
	m.SetOrigin(0, 0)
	m.SetSize(82, 66)
	return m
}

// collect executes a command tree and gathers the produced messages without
// feeding them back.
func collect(cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if msg == nil {
			continue
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, []tea.Cmd(batch)...)
			continue
		}
		out = append(out, msg)
	}
	return out
}

func step(t *testing.T, m *Model, msg tea.Msg) (*Model, []tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	cm, ok := next.(*Model)
	if !ok {
		t.Fatalf("unexpected component type %T", next)
	}
	return cm, collect(cmd)
}

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestPressBeginsDragOnHitBubble(t *testing.T) {
	ls := testStore(t)
	m := testCanvas(t, ls)

	// Screen (20, 10) is grid cell (19, 9), center (97.5, 95): inside Ada.
	m, msgs := step(t, m, tea.MouseClickMsg{X: 20, Y: 10, Button: tea.MouseLeft})
	if m.Phase() != layout.Dragging {
		t.Fatalf("expected dragging phase, got %v", m.Phase())
	}
	var press events.BubblePressMsg
	var seen bool
	for _, msg := range msgs {
		if p, ok := msg.(events.BubblePressMsg); ok {
			press = p
			seen = true
		}
	}
	if !seen {
		t.Fatalf("expected a press event")
	}
	if press.Bubble.ID != "bubble-c1-1" {
		t.Fatalf("expected press on Ada's bubble, got %q", press.Bubble.ID)
	}
	if press.At.X != 97.5 || press.At.Y != 95 {
		t.Fatalf("unexpected press point (%v, %v)", press.At.X, press.At.Y)
	}
}

func TestPressOnEmptySpaceDeselects(t *testing.T) {
	ls := testStore(t)
	m := testCanvas(t, ls)
	m, _ = step(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	if _, ok := m.Selected(); !ok {
		t.Fatalf("expected tab to select a bubble")
	}

	// Screen (41, 60) maps to (202.5, 595): open canvas.
	m, _ = step(t, m, tea.MouseClickMsg{X: 41, Y: 60, Button: tea.MouseLeft})
	if m.Phase() != layout.Idle {
		t.Fatalf("expected idle after empty press, got %v", m.Phase())
	}
	if _, ok := m.Selected(); ok {
		t.Fatalf("expected empty press to clear the selection")
	}
}

func TestDragHoldsLastAdmissibleWhenBlocked(t *testing.T) {
	ls := testStore(t)
	m := testCanvas(t, ls)

	m, _ = step(t, m, tea.MouseClickMsg{X: 20, Y: 10, Button: tea.MouseLeft})

	// Pointer to (147.5, 95) offers (150, 100): clear of Grace, admitted.
	m, _ = step(t, m, tea.MouseMotionMsg{X: 30, Y: 10, Button: tea.MouseLeft})
	n, _ := ls.Node("bubble-c1-1")
	if n.Position.X != 150 || n.Position.Y != 100 {
		t.Fatalf("expected admitted move to (150, 100), got (%v, %v)", n.Position.X, n.Position.Y)
	}

	// Pointer to (247.5, 95) offers (250, 100): overlaps Grace, held.
	m, _ = step(t, m, tea.MouseMotionMsg{X: 50, Y: 10, Button: tea.MouseLeft})
	n, _ = ls.Node("bubble-c1-1")
	if n.Position.X != 150 || n.Position.Y != 100 {
		t.Fatalf("blocked offer must hold last admissible, got (%v, %v)", n.Position.X, n.Position.Y)
	}
	if m.Phase() != layout.Dragging {
		t.Fatalf("blocked offer must not end the drag")
	}
}

func TestReleaseEmitsMoveOutcomeAndSettles(t *testing.T) {
	ls := testStore(t)
	m := testCanvas(t, ls)

	m, _ = step(t, m, tea.MouseClickMsg{X: 20, Y: 10, Button: tea.MouseLeft})
	m, _ = step(t, m, tea.MouseMotionMsg{X: 30, Y: 10, Button: tea.MouseLeft})
	m, _ = step(t, m, tea.MouseMotionMsg{X: 50, Y: 10, Button: tea.MouseLeft})

	// Release over Grace: the final offer is rejected too.
	m, msgs := step(t, m, tea.MouseReleaseMsg{X: 50, Y: 10, Button: tea.MouseLeft})
	if m.Phase() != layout.Settling {
		t.Fatalf("expected settling after release, got %v", m.Phase())
	}

	var move events.BubbleMoveMsg
	var settle tea.Msg
	var seenMove bool
	for _, msg := range msgs {
		switch v := msg.(type) {
		case events.BubbleMoveMsg:
			move = v
			seenMove = true
		case settleDoneMsg:
			settle = v
		}
	}
	if !seenMove {
		t.Fatalf("expected a move outcome event")
	}
	if move.From.X != 100 || move.From.Y != 100 {
		t.Fatalf("expected move from the press position, got (%v, %v)", move.From.X, move.From.Y)
	}
	if move.To.X != 150 || move.To.Y != 100 {
		t.Fatalf("expected move to last admissible, got (%v, %v)", move.To.X, move.To.Y)
	}
	if move.Blocked != 2 {
		t.Fatalf("expected one held motion plus the held release, got blocked=%d", move.Blocked)
	}
	if settle == nil {
		t.Fatalf("expected a settle timer message")
	}

	m, _ = step(t, m, settle)
	if m.Phase() != layout.Idle {
		t.Fatalf("expected idle after settle, got %v", m.Phase())
	}
}

func TestStaleSettleTimerIsIgnored(t *testing.T) {
	ls := testStore(t)
	m := testCanvas(t, ls)

	m, _ = step(t, m, tea.MouseClickMsg{X: 20, Y: 10, Button: tea.MouseLeft})
	m, msgs := step(t, m, tea.MouseReleaseMsg{X: 20, Y: 10, Button: tea.MouseLeft})
	var stale tea.Msg
	for _, msg := range msgs {
		if v, ok := msg.(settleDoneMsg); ok {
			stale = v
		}
	}
	if stale == nil {
		t.Fatalf("expected settle message from first release")
	}

	// A new press during settle starts a fresh gesture; the first gesture's
	// timer must not end it.
	m, _ = step(t, m, tea.MouseClickMsg{X: 20, Y: 10, Button: tea.MouseLeft})
	if m.Phase() != layout.Dragging {
		t.Fatalf("expected fresh drag, got %v", m.Phase())
	}
	m, _ = step(t, m, stale)
	if m.Phase() != layout.Dragging {
		t.Fatalf("stale settle timer must not end a newer gesture")
	}
}

func TestNudgeOffersAndReportsOutcome(t *testing.T) {
	ls := testStore(t)
	m := testCanvas(t, ls)

	m, _ = step(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	n, ok := m.Selected()
	if !ok || n.ID != "bubble-c1-1" {
		t.Fatalf("expected tab to select the first bubble")
	}

	m, msgs := step(t, m, tea.KeyPressMsg{Text: "l", Code: 'l'})
	var seenMove bool
	for _, msg := range msgs {
		if v, ok := msg.(events.BubbleMoveMsg); ok {
			seenMove = true
			if v.To.X != 105 || v.To.Y != 100 {
				t.Fatalf("expected nudge to (105, 100), got (%v, %v)", v.To.X, v.To.Y)
			}
			if v.Blocked != 0 {
				t.Fatalf("admitted nudge must report no holds, got %d", v.Blocked)
			}
		}
	}
	if !seenMove {
		t.Fatalf("expected a move event for the admitted nudge")
	}
}

func TestNudgeAgainstEdgeIsHeld(t *testing.T) {
	ls := layout.NewStore(layout.Canvas{Width: 400, Height: 640})
	ls.Restore(layout.Snapshot{Bubbles: []*layout.BubbleNode{{
		Schema:      layout.CurrentSchema,
		ID:          "bubble-c1-1",
		ContactID:   "c1",
		ContactName: "Ada",
		Size:        60,
		Position:    layout.Position{X: 35, Y: 100},
	}}})
	m := testCanvas(t, ls)
	m, _ = step(t, m, tea.KeyPressMsg{Code: tea.KeyTab})

	// One step left reaches the edge exactly; touching is allowed.
	m, _ = step(t, m, tea.KeyPressMsg{Text: "h", Code: 'h'})
	n, _ := ls.Node("bubble-c1-1")
	if n.Position.X != 30 {
		t.Fatalf("expected edge-touching nudge admitted, got x=%v", n.Position.X)
	}

	// The next step would cross the edge and must be held.
	m, msgs := step(t, m, tea.KeyPressMsg{Text: "h", Code: 'h'})
	n, _ = ls.Node("bubble-c1-1")
	if n.Position.X != 30 {
		t.Fatalf("expected out-of-bounds nudge held, got x=%v", n.Position.X)
	}
	var seenDebug bool
	for _, msg := range msgs {
		if _, ok := msg.(events.DebugMsg); ok {
			seenDebug = true
		}
		if _, ok := msg.(events.BubbleMoveMsg); ok {
			t.Fatalf("held nudge must not report a move")
		}
	}
	if !seenDebug {
		t.Fatalf("expected a debug note for the held nudge")
	}
}

func TestDoubleDRequestsRemoval(t *testing.T) {
	ls := testStore(t)
	m := testCanvas(t, ls)
	base := time.UnixMilli(1700000000000)
	now := base
	m.now = func() time.Time { return now }

	m, _ = step(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m, msgs := step(t, m, tea.KeyPressMsg{Text: "d", Code: 'd'})
	if len(msgs) != 0 {
		t.Fatalf("first d must only arm, got %v", msgs)
	}
	if id, ok := m.DeleteArmed(); !ok || id != "bubble-c1-1" {
		t.Fatalf("expected delete armed for Ada, got %q ok=%v", id, ok)
	}

	now = base.Add(300 * time.Millisecond)
	m, msgs = step(t, m, tea.KeyPressMsg{Text: "d", Code: 'd'})
	var seen bool
	for _, msg := range msgs {
		if v, ok := msg.(events.RemoveBubbleRequestMsg); ok {
			seen = true
			if v.Bubble.ID != "bubble-c1-1" {
				t.Fatalf("expected removal request for Ada, got %q", v.Bubble.ID)
			}
		}
	}
	if !seen {
		t.Fatalf("expected a removal request on the second d")
	}
	if _, ok := m.DeleteArmed(); ok {
		t.Fatalf("expected delete disarmed after confirmation")
	}
}

func TestExpiredDeleteWindowRearms(t *testing.T) {
	ls := testStore(t)
	m := testCanvas(t, ls)
	base := time.UnixMilli(1700000000000)
	now := base
	m.now = func() time.Time { return now }

	m, _ = step(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m, _ = step(t, m, tea.KeyPressMsg{Text: "d", Code: 'd'})

	now = base.Add(700 * time.Millisecond)
	m, msgs := step(t, m, tea.KeyPressMsg{Text: "d", Code: 'd'})
	for _, msg := range msgs {
		if _, ok := msg.(events.RemoveBubbleRequestMsg); ok {
			t.Fatalf("expired window must not confirm the removal")
		}
	}
	if _, ok := m.DeleteArmed(); !ok {
		t.Fatalf("expected the late d to re-arm")
	}
}

func TestEscInterruptsDragInPlace(t *testing.T) {
	ls := testStore(t)
	m := testCanvas(t, ls)

	m, _ = step(t, m, tea.MouseClickMsg{X: 20, Y: 10, Button: tea.MouseLeft})
	m, _ = step(t, m, tea.MouseMotionMsg{X: 30, Y: 10, Button: tea.MouseLeft})
	m, msgs := step(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})

	if m.Phase() != layout.Settling {
		t.Fatalf("expected interrupt to settle, got %v", m.Phase())
	}
	n, _ := ls.Node("bubble-c1-1")
	if n.Position.X != 150 || n.Position.Y != 100 {
		t.Fatalf("interrupt must keep the last admissible position, got (%v, %v)", n.Position.X, n.Position.Y)
	}
	var seenMove bool
	for _, msg := range msgs {
		if _, ok := msg.(events.BubbleMoveMsg); ok {
			seenMove = true
		}
	}
	if !seenMove {
		t.Fatalf("expected interrupt to report the move outcome")
	}
}

func TestViewRendersLabelsAndDurations(t *testing.T) {
	ls := testStore(t)
	m := testCanvas(t, ls)

	view := stripANSI(m.View())
	if !strings.Contains(view, "Ada") {
		t.Fatalf("expected Ada's label; view=%q", view)
	}
	if !strings.Contains(view, "Grace") {
		t.Fatalf("expected Grace's label; view=%q", view)
	}
	if !strings.Contains(view, "10m") {
		t.Fatalf("expected Grace's call time; view=%q", view)
	}
	if !strings.Contains(view, "█") {
		t.Fatalf("expected bubble cells; view=%q", view)
	}
}

func TestViewEmptyStoreShowsHint(t *testing.T) {
	ls := layout.NewStore(layout.Canvas{Width: 400, Height: 640})
	m := testCanvas(t, ls)
	view := stripANSI(m.View())
	if !strings.Contains(view, "no bubbles, press a to add a contact") {
		t.Fatalf("expected empty hint; view=%q", view)
	}

	m = New(DefaultID, nil)
	m.SetSize(40, 12)
	view = stripANSI(m.View())
	if !strings.Contains(view, "loading layout") {
		t.Fatalf("expected loading hint; view=%q", view)
	}
}

func TestSetStoreDropsDanglingSelection(t *testing.T) {
	ls := testStore(t)
	m := testCanvas(t, ls)
	m, _ = step(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	if _, ok := m.Selected(); !ok {
		t.Fatalf("expected a selection")
	}

	replacement := layout.NewStore(layout.Canvas{Width: 400, Height: 640})
	replacement.Restore(layout.Snapshot{Bubbles: []*layout.BubbleNode{{
		Schema:      layout.CurrentSchema,
		ID:          "bubble-c9-1",
		ContactID:   "c9",
		ContactName: "Edsger",
		Size:        60,
		Position:    layout.Position{X: 200, Y: 200},
	}}})
	m.SetStore(replacement)
	if _, ok := m.Selected(); ok {
		t.Fatalf("expected selection cleared when its bubble is gone")
	}
	if m.Phase() != layout.Idle {
		t.Fatalf("expected idle gesture on a fresh store")
	}
}
