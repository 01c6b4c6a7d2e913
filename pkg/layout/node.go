package layout

// CurrentSchema tags bubbles written by this version of the layout codec.
// Older snapshots without a schema are backfilled on restore.
const CurrentSchema = "v1"

// Position is a point in canvas coordinates. Bubble positions are centers.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Canvas is the bounded coordinate space bubbles live in. Renderers scale it
// to whatever surface they draw on; the engine only ever sees these units.
type Canvas struct {
	Width  float64
	Height float64
}

// DefaultCanvas matches the portrait phone screen the layout was designed
// around.
var DefaultCanvas = Canvas{Width: 360, Height: 640}

// Contains reports whether a circle of the given radius centered at p lies
// fully inside the canvas. Touching an edge counts as inside.
func (c Canvas) Contains(p Position, radius float64) bool {
	return p.X-radius >= 0 && p.Y-radius >= 0 &&
		p.X+radius <= c.Width && p.Y+radius <= c.Height
}

// BubbleNode is one placed bubble: a contact, its accumulated call time, and
// where the circle sits on the canvas. Size is the diameter in canvas units.
type BubbleNode struct {
	Schema              string   `json:"schema,omitempty"`
	ID                  string   `json:"id"`
	ContactID           string   `json:"contactId"`
	ContactName         string   `json:"contactName"`
	PhoneNumber         string   `json:"phoneNumber,omitempty"`
	Size                float64  `json:"size"`
	Position            Position `json:"position"`
	CallDurationSeconds float64  `json:"callDurationSeconds"`
}

func (n *BubbleNode) Radius() float64 {
	return n.Size / 2
}

// Hit reports whether p falls on the bubble, edge included. Renderers use it
// to resolve which bubble a press landed on.
func (n *BubbleNode) Hit(p Position) bool {
	dx := p.X - n.Position.X
	dy := p.Y - n.Position.Y
	r := n.Radius()
	return dx*dx+dy*dy <= r*r
}
