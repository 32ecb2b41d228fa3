package market

import "math"

// GridPrice rounds a price onto the fixed 2-decimal profile grid.
//
// The grid is intentionally NOT derived from the instrument tick size:
// persisted day rows were merged under this contract and a finer or coarser
// grid would re-bucket historical levels. See instruments.go for tick sizes.
func GridPrice(p float64) float64 {
	return math.Round(p*100) / 100
}

// Ticks converts an absolute price distance to a whole number of ticks,
// rounding half away from zero.
func Ticks(a, b, tickSize float64) int {
	if tickSize <= 0 {
		return 0
	}
	return int(math.Round(math.Abs(a-b) / tickSize))
}
