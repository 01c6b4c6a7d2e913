package layout

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// MaxBubbles is the hard cap on simultaneously placed bubbles.
const MaxBubbles = 7

// placementAttempts bounds the rejection sampling done for a new bubble. On
// a crowded canvas the final candidate is accepted even if it overlaps; the
// layout tolerates that the same way it tolerates a bubble growing into a
// neighbor on refresh.
const placementAttempts = 64

var (
	ErrLimitReached  = errors.New("layout: bubble limit reached")
	ErrAlreadyPlaced = errors.New("layout: contact already has a bubble")
)

// DurationLookup resolves a contact's current accumulated call time in
// seconds. The second return reports whether the contact was found.
type DurationLookup func(contactID string) (float64, bool)

// Snapshot is the persistable state of a layout: the bubbles in display
// order plus the ids of the contacts they were placed for.
type Snapshot struct {
	Bubbles            []*BubbleNode
	SelectedContactIDs []string
}

// Option configures a Store.
type Option func(*Store)

// WithRand fixes the random source used for initial placement. Tests use it
// to make placement deterministic.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) {
		s.rng = r
	}
}

// WithNow fixes the clock used to mint bubble ids.
func WithNow(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store owns the canonical bubble layout: the ordered index, the selected
// contact set, and the canvas they are laid out on. It is the only writer
// to any of the three, and it is not safe for concurrent use; callers run
// it from a single event loop and hand snapshots across goroutine edges.
type Store struct {
	canvas   Canvas
	index    *SpatialIndex
	selected []string
	chosen   map[string]bool

	rng *rand.Rand
	now func() time.Time
}

func NewStore(canvas Canvas, opts ...Option) *Store {
	if canvas.Width <= 0 || canvas.Height <= 0 {
		canvas = DefaultCanvas
	}
	s := &Store{
		canvas: canvas,
		index:  NewSpatialIndex(),
		chosen: make(map[string]bool),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Canvas() Canvas {
	return s.canvas
}

func (s *Store) Len() int {
	return s.index.Len()
}

// Nodes returns the bubbles in display order. The slice is fresh; the nodes
// are the live ones, so callers that cross goroutines use Snapshot instead.
func (s *Store) Nodes() []*BubbleNode {
	return s.index.Nodes()
}

func (s *Store) Node(id string) (*BubbleNode, bool) {
	return s.index.Get(id)
}

func (s *Store) NodeForContact(contactID string) (*BubbleNode, bool) {
	return s.index.ByContact(contactID)
}

// SelectedContactIDs returns the contacts that currently hold a bubble, in
// the order they were chosen.
func (s *Store) SelectedContactIDs() []string {
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	return out
}

func (s *Store) IsSelected(contactID string) bool {
	return s.chosen[contactID]
}

// Add places a new bubble for the contact, sized from its accumulated call
// time and positioned at a random spot that the validator accepts. The
// refusal cases leave the layout completely untouched: an eighth bubble
// returns ErrLimitReached, a contact that already holds a bubble returns
// ErrAlreadyPlaced.
func (s *Store) Add(contactID, contactName, phoneNumber string, durationSeconds float64) (*BubbleNode, error) {
	if contactID == "" {
		return nil, errors.New("layout: contact id required")
	}
	if s.index.Len() >= MaxBubbles {
		return nil, ErrLimitReached
	}
	if _, ok := s.index.ByContact(contactID); ok {
		return nil, ErrAlreadyPlaced
	}

	size := Diameter(durationSeconds, s.canvas.Width)
	n := &BubbleNode{
		Schema:              CurrentSchema,
		ID:                  nodeID(contactID, s.now()),
		ContactID:           contactID,
		ContactName:         contactName,
		PhoneNumber:         phoneNumber,
		Size:                size,
		Position:            s.place(size / 2),
		CallDurationSeconds: durationSeconds,
	}
	s.index.Insert(n)
	if !s.chosen[contactID] {
		s.chosen[contactID] = true
		s.selected = append(s.selected, contactID)
	}
	return n, nil
}

// Remove drops the contact's bubble and deselects the contact. Removing a
// contact that has no bubble is a no-op; the return reports whether anything
// was removed.
func (s *Store) Remove(contactID string) bool {
	n, ok := s.index.ByContact(contactID)
	if !ok {
		return false
	}
	s.index.Remove(n.ID)
	if s.chosen[contactID] {
		delete(s.chosen, contactID)
		for i, id := range s.selected {
			if id == contactID {
				s.selected = append(s.selected[:i], s.selected[i+1:]...)
				break
			}
		}
	}
	return true
}

// MoveTo commits the bubble to (x, y) if the validator admits it. This is
// the only write path for positions; there is no partial or clamped variant,
// a rejected candidate changes nothing.
func (s *Store) MoveTo(id string, x, y float64) bool {
	v := Validator{Canvas: s.canvas, Index: s.index}
	if !v.CanMoveTo(id, x, y) {
		return false
	}
	n, ok := s.index.Get(id)
	if !ok {
		return false
	}
	n.Position = Position{X: x, Y: y}
	return true
}

// RefreshDurations re-derives every bubble's duration and size from current
// call data. Positions are untouched, and no collision pass runs: a bubble
// growing into a neighbor is tolerated, the user resolves it by dragging.
// Contacts the lookup cannot resolve keep their last known values; refresh
// never removes a bubble.
func (s *Store) RefreshDurations(lookup DurationLookup) {
	if lookup == nil {
		return
	}
	for _, n := range s.index.Nodes() {
		seconds, ok := lookup(n.ContactID)
		if !ok {
			continue
		}
		n.CallDurationSeconds = seconds
		n.Size = Diameter(seconds, s.canvas.Width)
	}
}

// Resize moves the layout onto a new canvas: sizes are re-derived for the
// new width and positions are clamped back into bounds. Like refresh, any
// overlap this causes is tolerated.
func (s *Store) Resize(c Canvas) {
	if c.Width <= 0 || c.Height <= 0 {
		return
	}
	s.canvas = c
	for _, n := range s.index.Nodes() {
		n.Size = Diameter(n.CallDurationSeconds, c.Width)
		n.Position = s.clamp(n.Position, n.Radius())
	}
}

// Clear empties the layout and the selection.
func (s *Store) Clear() {
	s.index = NewSpatialIndex()
	s.selected = nil
	s.chosen = make(map[string]bool)
}

// Snapshot deep-copies the layout for persistence or cross-goroutine reads.
func (s *Store) Snapshot() Snapshot {
	nodes := s.index.Nodes()
	snap := Snapshot{
		Bubbles:            make([]*BubbleNode, 0, len(nodes)),
		SelectedContactIDs: s.SelectedContactIDs(),
	}
	for _, n := range nodes {
		c := *n
		snap.Bubbles = append(snap.Bubbles, &c)
	}
	return snap
}

// Restore replaces the layout with a saved snapshot. Nodes without an id are
// dropped, missing schemas are backfilled, and the selection is reconciled
// so every restored bubble's contact is selected even if the saved selection
// list disagreed. Anything beyond the bubble cap is discarded.
func (s *Store) Restore(snap Snapshot) {
	s.Clear()
	for _, id := range snap.SelectedContactIDs {
		if id == "" || s.chosen[id] {
			continue
		}
		s.chosen[id] = true
		s.selected = append(s.selected, id)
	}
	for _, n := range snap.Bubbles {
		if n == nil || n.ID == "" || n.ContactID == "" {
			continue
		}
		if s.index.Len() >= MaxBubbles {
			break
		}
		if _, dup := s.index.ByContact(n.ContactID); dup {
			continue
		}
		c := *n
		if c.Schema == "" {
			c.Schema = CurrentSchema
		}
		s.index.Insert(&c)
		if !s.chosen[c.ContactID] {
			s.chosen[c.ContactID] = true
			s.selected = append(s.selected, c.ContactID)
		}
	}
}

// place runs rejection sampling for a new bubble: random in-bounds points
// until one fits, falling back to the last candidate when the canvas is too
// crowded to satisfy the validator.
func (s *Store) place(radius float64) Position {
	v := Validator{Canvas: s.canvas, Index: s.index}
	var p Position
	for i := 0; i < placementAttempts; i++ {
		p = s.randomPoint(radius)
		if v.fits(p.X, p.Y, radius, "") {
			return p
		}
	}
	return p
}

func (s *Store) randomPoint(radius float64) Position {
	w := s.canvas.Width - 2*radius
	h := s.canvas.Height - 2*radius
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Position{
		X: radius + s.rng.Float64()*w,
		Y: radius + s.rng.Float64()*h,
	}
}

func (s *Store) clamp(p Position, radius float64) Position {
	if p.X < radius {
		p.X = radius
	}
	if max := s.canvas.Width - radius; p.X > max {
		p.X = max
	}
	if p.Y < radius {
		p.Y = radius
	}
	if max := s.canvas.Height - radius; p.Y > max {
		p.Y = max
	}
	return p
}

func nodeID(contactID string, now time.Time) string {
	return fmt.Sprintf("bubble-%s-%d", contactID, now.UnixMilli())
}
