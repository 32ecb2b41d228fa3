package profile

import (
	"math"
	"sort"

	"github.com/dmkov/vpjournal/market"
)

// EsEquivalentScale normalizes level volume for cross-instrument comparison
// against ES. Fixed domain constant, not derived from instrument metadata.
const EsEquivalentScale = 0.1

// EnrichedTrade is a trade classified against a day profile.
type EnrichedTrade struct {
	market.Trade

	VolumeAtEntry      float64
	VolumePercentile   float64 // [0,1]
	IsHVN              bool
	IsLVN              bool
	InValueArea        bool
	DistanceToPOCTicks int
	EdgeDistanceTicks  int
	DeltaAgg           float64
	DeltaRank          float64 // [0,1], over absolute deltas
	DeltaOpposesSide   bool
	EdgeSlope          float64
	ThinBehind         bool
	VolumeEsEquivalent float64
	P70Es              float64

	POC float64
	VAL float64
	VAH float64
}

// Enrich classifies a trade's entry price against a profile. The profile's
// merged levels double as the day rows: the store persists rows already
// folded onto the grid.
func Enrich(trade market.Trade, prof Profile, tickSize float64) EnrichedTrade {
	p := market.GridPrice(trade.EntryPrice)

	byPrice := make(map[float64]market.PriceVolumeRow, len(prof.Levels))
	for _, lv := range prof.Levels {
		byPrice[lv.Price] = lv
	}

	row, found := byPrice[p]
	if !found && len(prof.Levels) > 0 {
		// Nearest level by absolute distance; the first row achieving the
		// minimum wins, which on ascending levels is the lower price.
		best := prof.Levels[0]
		bd := math.Abs(best.Price - p)
		for _, lv := range prof.Levels[1:] {
			if d := math.Abs(lv.Price - p); d < bd {
				best = lv
				bd = d
			}
		}
		row = best
	}

	volsSorted := prof.sortedVolumes()
	absDeltas := make([]float64, len(prof.Levels))
	for i, lv := range prof.Levels {
		absDeltas[i] = math.Abs(lv.DeltaAgg)
	}
	sort.Float64s(absDeltas)

	volAt := row.Volume
	deltaAgg := row.DeltaAgg

	volAtGrid := func(price float64) float64 {
		return byPrice[market.GridPrice(price)].Volume
	}

	// Ledge detection: entry volume vs. the busier adjacent level.
	edgeSlope := volAt - math.Max(volAtGrid(p+tickSize), volAtGrid(p-tickSize))

	var median float64
	if len(volsSorted) > 0 {
		median = volsSorted[len(volsSorted)/2]
	}
	var behind float64
	if trade.Side == market.Long {
		behind = volAtGrid(p-tickSize) + volAtGrid(p-2*tickSize)
	} else {
		behind = volAtGrid(p+tickSize) + volAtGrid(p+2*tickSize)
	}
	thinBehind := median > 0 && behind < 0.5*median

	opposes := false
	if trade.Side == market.Long {
		opposes = deltaAgg < 0
	} else {
		opposes = deltaAgg > 0
	}

	return EnrichedTrade{
		Trade: trade,

		VolumeAtEntry:      volAt,
		VolumePercentile:   Rank(volsSorted, volAt),
		IsHVN:              volAt >= Quantile(volsSorted, 0.8),
		IsLVN:              volAt <= Quantile(volsSorted, 0.2),
		InValueArea:        p >= prof.VAL && p <= prof.VAH,
		DistanceToPOCTicks: market.Ticks(p, prof.POC, tickSize),
		EdgeDistanceTicks: minInt(
			market.Ticks(p, prof.VAL, tickSize),
			market.Ticks(prof.VAH, p, tickSize),
		),
		DeltaAgg:           deltaAgg,
		DeltaRank:          Rank(absDeltas, math.Abs(deltaAgg)),
		DeltaOpposesSide:   opposes,
		EdgeSlope:          edgeSlope,
		ThinBehind:         thinBehind,
		VolumeEsEquivalent: volAt * EsEquivalentScale,
		P70Es:              Quantile(volsSorted, 0.7) * EsEquivalentScale,

		POC: prof.POC,
		VAL: prof.VAL,
		VAH: prof.VAH,
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
