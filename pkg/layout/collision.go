package layout

// Validator answers whether a bubble may occupy a candidate position. It is
// the single admission rule for every position write: gesture moves, initial
// placement, anything that wants a bubble somewhere asks here first.
type Validator struct {
	Canvas Canvas
	Index  *SpatialIndex
}

// CanMoveTo reports whether the bubble with the given id may sit centered at
// (x, y): fully inside the canvas and not overlapping any other bubble.
// Tangent circles are allowed; only strict overlap rejects. An unknown id is
// permitted anywhere, since there is no circle to constrain.
func (v Validator) CanMoveTo(id string, x, y float64) bool {
	n, ok := v.Index.Get(id)
	if !ok {
		return true
	}
	return v.fits(x, y, n.Radius(), id)
}

// fits checks a circle against bounds and every placed bubble except skip.
// Overlap compares squared distances, so no roots are taken on the hot path.
func (v Validator) fits(x, y, radius float64, skip string) bool {
	if !v.Canvas.Contains(Position{X: x, Y: y}, radius) {
		return false
	}
	for _, other := range v.Index.Nodes() {
		if other.ID == skip {
			continue
		}
		dx := x - other.Position.X
		dy := y - other.Position.Y
		min := radius + other.Radius()
		if dx*dx+dy*dy < min*min {
			return false
		}
	}
	return true
}
