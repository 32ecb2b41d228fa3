// Package statement parses broker CSV exports into typed rows and aggregates
// them into round-trip trades.
package statement

import "time"

// Row is one normalized statement line. Numeric fields are pointers because
// the distinction between "absent/unparseable" and "zero" drives the import
// reject taxonomy downstream.
type Row struct {
	Symbol string
	Side   string

	Size         *float64
	PnL          *float64
	Fee          *float64
	OpenPrice    *float64
	ClosePrice   *float64
	Pips         *float64
	Drawdown     *float64
	DrawdownCash *float64

	OpenDate  *time.Time
	CloseDate *time.Time

	// Raw date strings survive parsing for diagnostics on unparseable rows.
	OpenDateRaw  string
	CloseDateRaw string

	OpenOrderID  string
	CloseOrderID string
}
