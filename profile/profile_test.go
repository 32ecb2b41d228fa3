package profile

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmkov/vpjournal/market"
)

func rows(prs ...[3]float64) []market.PriceVolumeRow {
	out := make([]market.PriceVolumeRow, len(prs))
	for i, p := range prs {
		out[i] = market.PriceVolumeRow{Price: p[0], Volume: p[1], DeltaAgg: p[2]}
	}
	return out
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	p := Build(nil)
	assert.Equal(t, 0.0, p.POC)
	assert.Equal(t, 0.0, p.VAL)
	assert.Equal(t, 0.0, p.VAH)
	assert.Equal(t, 0.0, p.TotalVolume)
	assert.Equal(t, 0, p.LevelCount)
	assert.Empty(t, p.Levels)
}

func TestBuildThreeLevels(t *testing.T) {
	t.Parallel()

	// target = 140, cum starts at 120 (POC), left 50 > right 30 so the
	// value area closes at [100, 100.25].
	p := Build(rows(
		[3]float64{100, 50, 0},
		[3]float64{100.25, 120, 0},
		[3]float64{100.5, 30, 0},
	))

	assert.Equal(t, 100.25, p.POC)
	assert.Equal(t, 100.0, p.VAL)
	assert.Equal(t, 100.25, p.VAH)
	assert.Equal(t, 200.0, p.TotalVolume)
	assert.Equal(t, 3, p.LevelCount)
}

func TestBuildMergesGridPrices(t *testing.T) {
	t.Parallel()

	p := Build(rows(
		[3]float64{100.251, 10, 5},
		[3]float64{100.249, 20, -2},
		[3]float64{100.00, 5, 1},
	))

	assert.Equal(t, 2, p.LevelCount)
	assert.Equal(t, 100.25, p.POC)
	assert.Equal(t, 30.0, p.Levels[1].Volume)
	assert.Equal(t, 3.0, p.Levels[1].DeltaAgg)
}

func TestBuildPOCTieLowestPrice(t *testing.T) {
	t.Parallel()

	p := Build(rows(
		[3]float64{99, 100, 0},
		[3]float64{100, 100, 0},
		[3]float64{101, 10, 0},
	))
	assert.Equal(t, 99.0, p.POC)
}

func TestBuildTieAbsorbsLeftFirst(t *testing.T) {
	t.Parallel()

	// Equal neighbor volumes on both sides of POC: left is absorbed first
	// and the target is reached before the right side is touched.
	p := Build(rows(
		[3]float64{99.75, 40, 0},
		[3]float64{100, 100, 0},
		[3]float64{100.25, 40, 0},
	))

	// target = 126, cum = 100, absorb left 40 -> 140 >= 126, stop.
	assert.Equal(t, 99.75, p.VAL)
	assert.Equal(t, 100.0, p.VAH)
}

func TestBuildExhaustedSide(t *testing.T) {
	t.Parallel()

	// POC at the lowest price: the left sentinel keeps losing and the
	// whole expansion happens to the right.
	p := Build(rows(
		[3]float64{100, 50, 0},
		[3]float64{100.25, 40, 0},
		[3]float64{100.5, 40, 0},
	))

	// target = 91, cum = 50 -> absorb 100.25 (90) -> absorb 100.5 (130).
	assert.Equal(t, 100.0, p.POC)
	assert.Equal(t, 100.0, p.VAL)
	assert.Equal(t, 100.5, p.VAH)
}

func TestBuildOrderIndependent(t *testing.T) {
	t.Parallel()

	base := rows(
		[3]float64{99.5, 30, 2},
		[3]float64{99.75, 80, -4},
		[3]float64{100, 120, 9},
		[3]float64{100.25, 60, -1},
		[3]float64{100.5, 45, 0},
		[3]float64{100.75, 15, 3},
	)
	want := Build(base)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]market.PriceVolumeRow(nil), base...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, Build(shuffled))
	}
}

func TestBuildInvariants(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		n := 1 + rng.Intn(40)
		in := make([]market.PriceVolumeRow, n)
		for j := range in {
			in[j] = market.PriceVolumeRow{
				Price:  100 + 0.25*float64(rng.Intn(80)),
				Volume: float64(rng.Intn(500)),
			}
		}
		p := Build(in)

		assert.LessOrEqual(t, p.VAL, p.POC)
		assert.LessOrEqual(t, p.POC, p.VAH)

		var max, inVA float64
		for _, lv := range p.Levels {
			if lv.Volume > max {
				max = lv.Volume
			}
			if lv.Price >= p.VAL && lv.Price <= p.VAH {
				inVA += lv.Volume
			}
		}
		var pocVol float64
		for _, lv := range p.Levels {
			if lv.Price == p.POC {
				pocVol = lv.Volume
			}
		}
		assert.Equal(t, max, pocVol)
		if p.TotalVolume > 0 {
			assert.GreaterOrEqual(t, inVA, 0.7*p.TotalVolume)
		}
	}
}

func TestQuantile(t *testing.T) {
	t.Parallel()

	s := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 1.0, Quantile(s, 0))
	assert.Equal(t, 5.0, Quantile(s, 1))
	assert.Equal(t, 3.0, Quantile(s, 0.5))
	assert.Equal(t, 4.0, Quantile(s, 0.8))
	assert.Equal(t, 1.0, Quantile(s, -1))
	assert.Equal(t, 5.0, Quantile(s, 2))
	assert.Equal(t, 0.0, Quantile(nil, 0.5))
}

func TestRank(t *testing.T) {
	t.Parallel()

	s := []float64{10, 20, 30, 40, 50}
	assert.Equal(t, 0.0, Rank(s, 10))
	assert.Equal(t, 0.0, Rank(s, 5))
	assert.Equal(t, 0.5, Rank(s, 30))
	assert.Equal(t, 1.0, Rank(s, 50))
	assert.Equal(t, 1.0, Rank(s, 999))
	assert.Equal(t, 0.0, Rank(nil, 10))
	assert.Equal(t, 0.0, Rank([]float64{10}, 10))

	for _, v := range []float64{-5, 0, 10, 25, 50, 1000} {
		r := Rank(s, v)
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, 1.0)
	}
}
