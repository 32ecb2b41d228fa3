package statement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tsp(s string) *time.Time {
	t := ParseDate(s)
	if t == nil {
		panic(s)
	}
	return t
}

func TestGroupSumsAndFirstPips(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{
			OpenOrderID: "A12", CloseOrderID: "C1",
			Size: ptr(1), PnL: ptr(10), Fee: ptr(2), Pips: ptr(5),
			OpenDate:  tsp("02.12.24 09:30"),
			CloseDate: tsp("02.12.24 09:40"), ClosePrice: ptr(100.25),
		},
		{
			OpenOrderID: "A12", CloseOrderID: "C2",
			Size: ptr(1), PnL: ptr(-3), Fee: ptr(2), Pips: nil,
			OpenDate:  tsp("02.12.24 09:29"),
			CloseDate: tsp("02.12.24 09:45"), ClosePrice: ptr(100.50),
		},
	}

	out := Group(rows)
	require.Len(t, out, 1)
	agg := out[0]

	assert.Equal(t, 2.0, *agg.Size)
	assert.Equal(t, 7.0, *agg.PnL)
	assert.Equal(t, 4.0, *agg.Fee)
	// pips: first non-nil, never a sum
	assert.Equal(t, 5.0, *agg.Pips)
	// open = min, close fields from the latest-closing row
	assert.True(t, agg.OpenDate.Equal(*tsp("02.12.24 09:29")))
	assert.True(t, agg.CloseDate.Equal(*tsp("02.12.24 09:45")))
	assert.Equal(t, 100.50, *agg.ClosePrice)
	assert.Equal(t, "C2", agg.CloseOrderID)
	assert.Equal(t, "A12", agg.OpenOrderID)
}

func TestGroupSumEqualsRawSum(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{OpenOrderID: "K", Size: ptr(1), PnL: ptr(2.5), Fee: ptr(1)},
		{OpenOrderID: "K", Size: ptr(2), PnL: ptr(-1.5), Fee: nil},
		{OpenOrderID: "K", Size: nil, PnL: ptr(4), Fee: ptr(0.5)},
	}
	out := Group(rows)
	require.Len(t, out, 1)
	assert.Equal(t, 3.0, *out[0].Size)
	assert.Equal(t, 5.0, *out[0].PnL)
	assert.Equal(t, 1.5, *out[0].Fee)
}

func TestGroupCloseTieFirstSeenWins(t *testing.T) {
	t.Parallel()

	same := tsp("02.12.24 10:00")
	rows := []Row{
		{OpenOrderID: "T", CloseOrderID: "first", CloseDate: same, ClosePrice: ptr(1)},
		{OpenOrderID: "T", CloseOrderID: "second", CloseDate: same, ClosePrice: ptr(2)},
	}
	out := Group(rows)
	require.Len(t, out, 1)
	assert.Equal(t, "first", out[0].CloseOrderID)
	assert.Equal(t, 1.0, *out[0].ClosePrice)
}

func TestGroupNilCloseDateNeverWins(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{OpenOrderID: "N", CloseOrderID: "dated", CloseDate: tsp("02.12.24 10:00")},
		{OpenOrderID: "N", CloseOrderID: "undated", CloseDate: nil},
	}
	out := Group(rows)
	require.Len(t, out, 1)
	assert.Equal(t, "dated", out[0].CloseOrderID)
}

func TestGroupBlankOrderPassthrough(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{OpenOrderID: "", Size: nil, PnL: nil, Pips: ptr(3)},
		{OpenOrderID: "  ", Size: ptr(1), PnL: ptr(2)},
	}
	out := Group(rows)
	require.Len(t, out, 2)

	// passthrough rows keep their nil fields (no sum coercion to zero)
	assert.Nil(t, out[0].Size)
	assert.Equal(t, 3.0, *out[0].Pips)
	assert.Equal(t, 1.0, *out[1].Size)
}

func TestGroupPreservesFirstSeenOrder(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{OpenOrderID: "B", Size: ptr(1)},
		{OpenOrderID: "A", Size: ptr(1)},
		{OpenOrderID: "B", Size: ptr(1)},
		{OpenOrderID: "", Size: ptr(9)},
	}
	out := Group(rows)
	require.Len(t, out, 3)
	assert.Equal(t, "B", out[0].OpenOrderID)
	assert.Equal(t, 2.0, *out[0].Size)
	assert.Equal(t, "A", out[1].OpenOrderID)
	assert.Equal(t, 9.0, *out[2].Size)
}
