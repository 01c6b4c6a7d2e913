package layout

import "testing"

func twoBubbleIndex(ax, ay, bx, by, size float64) *SpatialIndex {
	ix := NewSpatialIndex()
	ix.Insert(&BubbleNode{ID: "a", ContactID: "ca", Size: size, Position: Position{X: ax, Y: ay}})
	ix.Insert(&BubbleNode{ID: "b", ContactID: "cb", Size: size, Position: Position{X: bx, Y: by}})
	return ix
}

func TestCanMoveToRejectsOverlap(t *testing.T) {
	// Two bubbles of diameter 100 need 100 between centers. 80 apart is a
	// strict overlap and must be rejected.
	ix := twoBubbleIndex(100, 100, 300, 300, 100)
	v := Validator{Canvas: Canvas{Width: 400, Height: 400}, Index: ix}

	if v.CanMoveTo("a", 300-80, 300) {
		t.Fatalf("centers 80 apart with combined radius 100 must reject")
	}
	if !v.CanMoveTo("a", 300-120, 300) {
		t.Fatalf("centers 120 apart with combined radius 100 must be allowed")
	}
}

func TestCanMoveToAllowsTangency(t *testing.T) {
	ix := twoBubbleIndex(100, 100, 300, 100, 100)
	v := Validator{Canvas: Canvas{Width: 400, Height: 400}, Index: ix}

	// Exactly touching is not an overlap.
	if !v.CanMoveTo("a", 200, 100) {
		t.Fatalf("tangent circles must be admissible")
	}
}

func TestCanMoveToEnforcesBounds(t *testing.T) {
	ix := NewSpatialIndex()
	ix.Insert(&BubbleNode{ID: "a", ContactID: "ca", Size: 100, Position: Position{X: 200, Y: 200}})
	v := Validator{Canvas: Canvas{Width: 400, Height: 400}, Index: ix}

	if v.CanMoveTo("a", 40, 200) {
		t.Fatalf("a center 40 from the left edge leaves a radius 50 bubble out of bounds")
	}
	if !v.CanMoveTo("a", 50, 200) {
		t.Fatalf("touching the edge is in bounds")
	}
	if v.CanMoveTo("a", 200, 380) {
		t.Fatalf("bubble must not cross the bottom edge")
	}
}

func TestCanMoveToUnknownIDPermissive(t *testing.T) {
	v := Validator{Canvas: Canvas{Width: 400, Height: 400}, Index: NewSpatialIndex()}
	if !v.CanMoveTo("ghost", -5000, -5000) {
		t.Fatalf("an id with no bubble has no circle to constrain and must pass")
	}
}

func TestCanMoveToIgnoresSelf(t *testing.T) {
	ix := NewSpatialIndex()
	ix.Insert(&BubbleNode{ID: "a", ContactID: "ca", Size: 100, Position: Position{X: 200, Y: 200}})
	v := Validator{Canvas: Canvas{Width: 400, Height: 400}, Index: ix}

	// A tiny nudge overlaps the bubble's own current position; the bubble
	// must never collide with itself.
	if !v.CanMoveTo("a", 201, 200) {
		t.Fatalf("bubble must be free to move within its own footprint")
	}
}
