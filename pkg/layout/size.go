package layout

// Bubble diameters are fractions of canvas width, so the same layout reads
// the same on any surface the canvas is scaled to.
const (
	minSizeFraction = 0.15
	maxSizeFraction = 0.50

	// growthPerBlock is the width fraction a bubble gains per full block of
	// call time.
	growthPerBlock = 0.005
	blockMinutes   = 10
)

// MinDiameter is the floor every bubble gets, call history or not.
func MinDiameter(canvasWidth float64) float64 {
	return canvasWidth * minSizeFraction
}

// MaxDiameter caps a bubble at half the canvas width.
func MaxDiameter(canvasWidth float64) float64 {
	return canvasWidth * maxSizeFraction
}

// Diameter maps accumulated call time to a bubble diameter. Zero or missing
// call time yields the minimum size; growth is linear in ten-minute blocks
// and saturates at the maximum. The mapping is pure and monotonic, so equal
// inputs always produce equal sizes.
func Diameter(durationSeconds, canvasWidth float64) float64 {
	min := MinDiameter(canvasWidth)
	if durationSeconds <= 0 {
		return min
	}
	minutes := durationSeconds / 60
	d := min + canvasWidth*(minutes/blockMinutes)*growthPerBlock
	if max := MaxDiameter(canvasWidth); d > max {
		return max
	}
	return d
}
