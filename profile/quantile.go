package profile

import (
	"math"
	"sort"
)

// Quantile returns the element at position floor((n-1)*p) of an ascending
// sorted slice, with p clamped into [0,1]. Used for the HVN/LVN thresholds
// (p80/p20) and the p70 ES-equivalent threshold.
func Quantile(sortedAsc []float64, p float64) float64 {
	if len(sortedAsc) == 0 {
		return 0
	}
	p = math.Min(1, math.Max(0, p))
	return sortedAsc[int(math.Floor(float64(len(sortedAsc)-1)*p))]
}

// Rank returns the percentile rank of v on an ascending sorted slice: the
// index of the first element >= v divided by n-1. A slice of one or fewer
// elements ranks 0; a value above every element ranks 1. Always in [0,1].
func Rank(sortedAsc []float64, v float64) float64 {
	n := len(sortedAsc)
	if n <= 1 {
		return 0
	}
	idx := sort.SearchFloat64s(sortedAsc, v)
	if idx >= n {
		idx = n - 1
	}
	return float64(idx) / float64(n-1)
}
