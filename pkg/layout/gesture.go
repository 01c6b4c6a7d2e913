package layout

// Phase is where a gesture currently is. Transitions only move forward:
// Idle to Dragging on a press that lands on a bubble, Dragging to Settling
// on release, Settling back to Idle once the cosmetic easing finishes.
type Phase int

const (
	Idle Phase = iota
	Dragging
	Settling
)

func (p Phase) String() string {
	switch p {
	case Dragging:
		return "dragging"
	case Settling:
		return "settling"
	default:
		return "idle"
	}
}

// Mover is the single write path a gesture uses to land a bubble. The layout
// store implements it; moves that the validator rejects return false and
// leave the committed position untouched.
type Mover interface {
	Node(id string) (*BubbleNode, bool)
	MoveTo(id string, x, y float64) bool
}

// Gesture tracks one drag from press to settle. Candidate positions derive
// from the pointer's total offset since the press, applied to the position
// the bubble held when the drag began. Working from the press origin rather
// than frame deltas keeps a fast pointer from accumulating rounding drift,
// and means a bubble stopped by an obstacle snaps back under the pointer the
// moment the pointer returns to admissible space.
type Gesture struct {
	mover Mover

	phase Phase
	id    string

	originX, originY float64 // pointer at press
	baseX, baseY     float64 // committed bubble position at press
	lastX, lastY     float64 // last candidate offered
}

func NewGesture(m Mover) *Gesture {
	return &Gesture{mover: m}
}

func (g *Gesture) Phase() Phase {
	return g.phase
}

// ID names the bubble the current or settling gesture belongs to. Empty when
// idle.
func (g *Gesture) ID() string {
	return g.id
}

// Begin starts a drag on the bubble with the given id at pointer position
// (px, py). A press during settle cancels the easing and starts fresh; the
// settled position was already committed, so nothing is lost. Begin refuses
// unknown bubbles and presses while another drag is live.
func (g *Gesture) Begin(id string, px, py float64) bool {
	if g.phase == Dragging {
		return false
	}
	n, ok := g.mover.Node(id)
	if !ok {
		return false
	}
	g.phase = Dragging
	g.id = id
	g.originX, g.originY = px, py
	g.baseX, g.baseY = n.Position.X, n.Position.Y
	g.lastX, g.lastY = g.baseX, g.baseY
	return true
}

// Drag offers the candidate implied by the pointer now at (px, py). The
// candidate is committed when admissible; otherwise the bubble simply holds
// its last admissible position. Either way the drag continues.
func (g *Gesture) Drag(px, py float64) bool {
	if g.phase != Dragging {
		return false
	}
	g.lastX = g.baseX + (px - g.originX)
	g.lastY = g.baseY + (py - g.originY)
	return g.mover.MoveTo(g.id, g.lastX, g.lastY)
}

// Release ends the drag at pointer position (px, py). The final candidate is
// offered once more, then the gesture enters Settling: whatever is committed
// now is final, and the caller animates the rendered position toward it.
// Returns the bubble id and whether the final offer landed.
func (g *Gesture) Release(px, py float64) (string, bool) {
	if g.phase != Dragging {
		return "", false
	}
	g.lastX = g.baseX + (px - g.originX)
	g.lastY = g.baseY + (py - g.originY)
	moved := g.mover.MoveTo(g.id, g.lastX, g.lastY)
	g.phase = Settling
	return g.id, moved
}

// Interrupt ends a drag cut short by focus loss or similar, treating the
// last offered candidate as the release point. There is no rollback path: a
// forced end behaves exactly like a normal one.
func (g *Gesture) Interrupt() (string, bool) {
	if g.phase != Dragging {
		return "", false
	}
	moved := g.mover.MoveTo(g.id, g.lastX, g.lastY)
	g.phase = Settling
	return g.id, moved
}

// FinishSettle marks the cosmetic easing done and returns the gesture to
// Idle.
func (g *Gesture) FinishSettle() {
	if g.phase != Settling {
		return
	}
	g.phase = Idle
	g.id = ""
}
