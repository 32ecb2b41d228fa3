package statement

import (
	"strings"

	"github.com/dmkov/vpjournal/pkg/id"
)

// Group aggregates raw rows into one round-trip trade per open order id.
//
// Within a group: Size, PnL and Fee are summed; Pips takes the first non-nil
// value in original order (a per-leg price unit, never additive); OpenDate is
// the earliest; CloseDate, ClosePrice and CloseOrderID come from the
// latest-closing row, first seen winning exact ties. Rows without an open
// order id pass through untouched as singleton groups under a synthetic key.
// Output preserves the order in which keys first appear.
func Group(rows []Row) []Row {
	type bucket struct {
		rows        []Row
		passthrough bool
	}

	var order []string
	byKey := make(map[string]*bucket)

	for _, r := range rows {
		key := strings.TrimSpace(r.OpenOrderID)
		if key == "" {
			key = "__noopen__" + id.New()
			byKey[key] = &bucket{rows: []Row{r}, passthrough: true}
			order = append(order, key)
			continue
		}
		b, ok := byKey[key]
		if !ok {
			b = &bucket{}
			byKey[key] = b
			order = append(order, key)
		}
		b.rows = append(b.rows, r)
	}

	out := make([]Row, 0, len(order))
	for _, key := range order {
		b := byKey[key]
		if b.passthrough {
			out = append(out, b.rows[0])
			continue
		}
		out = append(out, aggregate(key, b.rows))
	}
	return out
}

func aggregate(key string, group []Row) Row {
	agg := group[0]
	agg.OpenOrderID = key

	var size, pnl, fee float64
	for _, r := range group {
		size += numOrZero(r.Size)
		pnl += numOrZero(r.PnL)
		fee += numOrZero(r.Fee)
	}
	agg.Size = ptr(size)
	agg.PnL = ptr(pnl)
	agg.Fee = ptr(fee)

	agg.Pips = nil
	for _, r := range group {
		if r.Pips != nil {
			agg.Pips = r.Pips
			break
		}
	}

	for _, r := range group {
		if r.OpenDate != nil && (agg.OpenDate == nil || r.OpenDate.Before(*agg.OpenDate)) {
			agg.OpenDate = r.OpenDate
		}
	}

	// Latest close wins; strict After keeps the first row on exact ties,
	// and rows with unparseable close dates never displace the incumbent.
	latest := group[0]
	for _, r := range group[1:] {
		if r.CloseDate != nil && (latest.CloseDate == nil || r.CloseDate.After(*latest.CloseDate)) {
			latest = r
		}
	}
	agg.CloseDate = latest.CloseDate
	agg.CloseDateRaw = latest.CloseDateRaw
	agg.ClosePrice = latest.ClosePrice
	agg.CloseOrderID = latest.CloseOrderID

	return agg
}
