// Package profile builds intraday volume profiles and classifies trade
// entries against them.
package profile

import (
	"sort"

	"github.com/dmkov/vpjournal/market"
)

// Profile is the derived structure of one trading day: price-ascending
// levels, point of control and the 70% value area.
//
// Invariants: VAL <= POC <= VAH, POC carries the maximum level volume, and
// when TotalVolume > 0 the band [VAL,VAH] holds at least 70% of it unless
// pointer exhaustion stopped the expansion early.
type Profile struct {
	Levels      []market.PriceVolumeRow
	POC         float64
	VAL         float64
	VAH         float64
	TotalVolume float64
	LevelCount  int
}

// MergeRows folds raw rows onto the 2-decimal price grid, summing volume and
// aggressor delta per grid price, and returns the levels price-ascending.
func MergeRows(rows []market.PriceVolumeRow) []market.PriceVolumeRow {
	merged := make(map[float64]market.PriceVolumeRow, len(rows))
	for _, r := range rows {
		p := market.GridPrice(r.Price)
		lv := merged[p]
		lv.Price = p
		lv.Volume += r.Volume
		lv.DeltaAgg += r.DeltaAgg
		merged[p] = lv
	}

	out := make([]market.PriceVolumeRow, 0, len(merged))
	for _, lv := range merged {
		out = append(out, lv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out
}

// Build computes the profile for a set of day rows. Input order is
// irrelevant; rows are merged onto the grid first. Empty input yields the
// zero Profile, never an error.
func Build(rows []market.PriceVolumeRow) Profile {
	arr := MergeRows(rows)
	if len(arr) == 0 {
		return Profile{}
	}

	// POC: strictly-greater scan, so ties resolve to the lowest price.
	pocIdx := 0
	total := arr[0].Volume
	for i := 1; i < len(arr); i++ {
		total += arr[i].Volume
		if arr[i].Volume > arr[pocIdx].Volume {
			pocIdx = i
		}
	}

	poc := arr[pocIdx].Price
	target := 0.7 * total

	// Value-area expansion outward from POC. On an exact volume tie the
	// left side is absorbed first; an exhausted side contributes -1 so the
	// other side always wins the comparison. The tie-break order is part of
	// the output contract.
	cum := arr[pocIdx].Volume
	l, r := pocIdx-1, pocIdx+1
	val, vah := poc, poc

	for cum < target && (l >= 0 || r < len(arr)) {
		vl, vr := -1.0, -1.0
		if l >= 0 {
			vl = arr[l].Volume
		}
		if r < len(arr) {
			vr = arr[r].Volume
		}

		if vl > vr {
			cum += vl
			val = arr[l].Price
			l--
		} else if vr > vl {
			cum += vr
			vah = arr[r].Price
			r++
		} else {
			if l >= 0 {
				cum += vl
				val = arr[l].Price
				l--
			}
			if cum >= target {
				break
			}
			if r < len(arr) {
				cum += vr
				vah = arr[r].Price
				r++
			}
		}
	}

	return Profile{
		Levels:      arr,
		POC:         poc,
		VAL:         val,
		VAH:         vah,
		TotalVolume: total,
		LevelCount:  len(arr),
	}
}

// sortedVolumes returns the level volumes ascending, the base sequence for
// every percentile and threshold computation.
func (p Profile) sortedVolumes() []float64 {
	vols := make([]float64, len(p.Levels))
	for i, lv := range p.Levels {
		vols[i] = lv.Volume
	}
	sort.Float64s(vols)
	return vols
}
