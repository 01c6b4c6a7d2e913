package layout

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func testStore(t *testing.T, c Canvas) *Store {
	t.Helper()
	return NewStore(c,
		WithRand(rand.New(rand.NewSource(1))),
		WithNow(func() time.Time { return time.UnixMilli(1700000000000) }),
	)
}

func TestAddPlacesWithoutOverlap(t *testing.T) {
	s := testStore(t, Canvas{Width: 400, Height: 400})
	for i, id := range []string{"c1", "c2", "c3", "c4"} {
		if _, err := s.Add(id, "Contact", "", 0); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	nodes := s.Nodes()
	for i, a := range nodes {
		if !s.Canvas().Contains(a.Position, a.Radius()) {
			t.Fatalf("bubble %s placed out of bounds at %+v", a.ID, a.Position)
		}
		for _, b := range nodes[i+1:] {
			dx := a.Position.X - b.Position.X
			dy := a.Position.Y - b.Position.Y
			min := a.Radius() + b.Radius()
			if dx*dx+dy*dy < min*min {
				t.Fatalf("bubbles %s and %s placed overlapping", a.ID, b.ID)
			}
		}
	}
}

func TestAddMintsBubbleID(t *testing.T) {
	s := testStore(t, Canvas{Width: 400, Height: 400})
	n, err := s.Add("c1", "Ada", "555-123-4567", 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.ID != "bubble-c1-1700000000000" {
		t.Fatalf("unexpected bubble id %q", n.ID)
	}
	if n.Schema != CurrentSchema {
		t.Fatalf("new bubbles must carry the current schema, got %q", n.Schema)
	}
	if n.Size != Diameter(90, 400) {
		t.Fatalf("bubble size not derived from call time: %v", n.Size)
	}
}

func TestAddRefusesEighthBubble(t *testing.T) {
	s := testStore(t, Canvas{Width: 400, Height: 640})
	ids := []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7"}
	for _, id := range ids {
		if _, err := s.Add(id, "Contact", "", 0); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}
	if _, err := s.Add("c8", "Contact", "", 0); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
	if s.Len() != MaxBubbles {
		t.Fatalf("refused add must leave the layout unchanged, len=%d", s.Len())
	}
	if s.IsSelected("c8") {
		t.Fatalf("refused add must not select the contact")
	}
}

func TestAddRefusesDuplicateContact(t *testing.T) {
	s := testStore(t, Canvas{Width: 400, Height: 400})
	if _, err := s.Add("c1", "Ada", "", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Add("c1", "Ada", "", 0); !errors.Is(err, ErrAlreadyPlaced) {
		t.Fatalf("expected ErrAlreadyPlaced, got %v", err)
	}
}

func TestAddToleratesCrowdedCanvas(t *testing.T) {
	// Five cap-sized bubbles cannot all fit a 120x120 canvas without
	// overlap. Placement must still succeed rather than spin or fail;
	// the overlap is the user's to resolve.
	s := testStore(t, Canvas{Width: 120, Height: 120})
	long := float64(700 * 60)
	for i, id := range []string{"c1", "c2", "c3", "c4", "c5"} {
		n, err := s.Add(id, "Contact", "", long)
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		if !s.Canvas().Contains(n.Position, n.Radius()) {
			t.Fatalf("fallback placement left bubble %s out of bounds", n.ID)
		}
	}
	if s.Len() != 5 {
		t.Fatalf("expected 5 bubbles, got %d", s.Len())
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := testStore(t, Canvas{Width: 400, Height: 400})
	if _, err := s.Add("c1", "Ada", "", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Remove("c1") {
		t.Fatalf("first remove should report removal")
	}
	if s.Remove("c1") {
		t.Fatalf("second remove must be a silent no-op")
	}
	if s.Len() != 0 || s.IsSelected("c1") {
		t.Fatalf("remove must drop bubble and selection together")
	}
}

func TestMoveToGatedByValidator(t *testing.T) {
	s := testStore(t, Canvas{Width: 400, Height: 400})
	s.Restore(Snapshot{Bubbles: []*BubbleNode{
		{ID: "bubble-a", ContactID: "ca", ContactName: "A", Size: 100, Position: Position{X: 100, Y: 100}},
		{ID: "bubble-b", ContactID: "cb", ContactName: "B", Size: 100, Position: Position{X: 300, Y: 100}},
	}})

	if s.MoveTo("bubble-a", 230, 100) {
		t.Fatalf("move into overlap must be rejected")
	}
	if n, _ := s.Node("bubble-a"); n.Position.X != 100 {
		t.Fatalf("rejected move must not touch the committed position")
	}
	if !s.MoveTo("bubble-a", 100, 300) {
		t.Fatalf("admissible move must commit")
	}
	if n, _ := s.Node("bubble-a"); n.Position.Y != 300 {
		t.Fatalf("committed move lost: %+v", n.Position)
	}
}

func TestRefreshDurationsKeepsPositionsAndToleratesOverlap(t *testing.T) {
	s := testStore(t, Canvas{Width: 400, Height: 400})
	s.Restore(Snapshot{Bubbles: []*BubbleNode{
		{ID: "bubble-a", ContactID: "ca", ContactName: "A", Size: 100, Position: Position{X: 140, Y: 200}, CallDurationSeconds: 0},
		{ID: "bubble-b", ContactID: "cb", ContactName: "B", Size: 100, Position: Position{X: 260, Y: 200}, CallDurationSeconds: 0},
	}})

	s.RefreshDurations(func(contactID string) (float64, bool) {
		if contactID == "ca" {
			return 700 * 60, true // grows to the cap, into its neighbor
		}
		return 0, false // lookup miss: keep last known values
	})

	a, _ := s.Node("bubble-a")
	if a.Size != 200 {
		t.Fatalf("refresh must re-derive size, got %v", a.Size)
	}
	if a.Position.X != 140 || a.Position.Y != 200 {
		t.Fatalf("refresh must not move bubbles: %+v", a.Position)
	}
	b, _ := s.Node("bubble-b")
	if b.Size != 100 || b.CallDurationSeconds != 0 {
		t.Fatalf("lookup miss must keep last known values, got size=%v dur=%v", b.Size, b.CallDurationSeconds)
	}
	if s.Len() != 2 {
		t.Fatalf("refresh must never remove bubbles")
	}
}

func TestResizeRescalesAndClamps(t *testing.T) {
	s := testStore(t, Canvas{Width: 400, Height: 400})
	s.Restore(Snapshot{Bubbles: []*BubbleNode{
		{ID: "bubble-a", ContactID: "ca", Size: 60, Position: Position{X: 390, Y: 390}},
	}})

	s.Resize(Canvas{Width: 200, Height: 200})

	a, _ := s.Node("bubble-a")
	if a.Size != Diameter(0, 200) {
		t.Fatalf("resize must re-derive sizes for the new width, got %v", a.Size)
	}
	if !s.Canvas().Contains(a.Position, a.Radius()) {
		t.Fatalf("resize must clamp positions into the new bounds: %+v", a.Position)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := testStore(t, Canvas{Width: 400, Height: 400})
	if _, err := s.Add("c1", "Ada", "555-123-4567", 90); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Add("c2", "Grace", "", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := s.Snapshot()

	// The snapshot must not alias live nodes.
	snap.Bubbles[0].Position.X = -1
	if n, _ := s.NodeForContact("c1"); n.Position.X == -1 {
		t.Fatalf("snapshot aliases live layout state")
	}
	snap.Bubbles[0].Position.X = 0

	restored := NewStore(Canvas{Width: 400, Height: 400})
	restored.Restore(snap)
	if restored.Len() != 2 {
		t.Fatalf("expected 2 restored bubbles, got %d", restored.Len())
	}
	if ids := restored.SelectedContactIDs(); len(ids) != 2 || ids[0] != "c1" || ids[1] != "c2" {
		t.Fatalf("selection order lost in round trip: %v", ids)
	}
}

func TestRestoreBackfillsSchemaAndEnforcesCap(t *testing.T) {
	nodes := make([]*BubbleNode, 0, 9)
	for _, id := range []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9"} {
		nodes = append(nodes, &BubbleNode{
			ID:        "bubble-" + id,
			ContactID: id,
			Size:      54,
			Position:  Position{X: 100, Y: 100},
		})
	}

	s := NewStore(Canvas{Width: 360, Height: 640})
	s.Restore(Snapshot{Bubbles: nodes})

	if s.Len() != MaxBubbles {
		t.Fatalf("restore must enforce the bubble cap, got %d", s.Len())
	}
	for _, n := range s.Nodes() {
		if n.Schema != CurrentSchema {
			t.Fatalf("restore must backfill missing schema, got %q", n.Schema)
		}
	}
}

func TestRestoreSkipsMalformedNodes(t *testing.T) {
	s := NewStore(Canvas{Width: 360, Height: 640})
	s.Restore(Snapshot{Bubbles: []*BubbleNode{
		nil,
		{ID: "", ContactID: "c1"},
		{ID: "bubble-ok", ContactID: "c2", Size: 54, Position: Position{X: 50, Y: 50}},
	}})
	if s.Len() != 1 {
		t.Fatalf("malformed nodes must be dropped, got %d", s.Len())
	}
}
