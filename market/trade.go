package market

import "time"

// Trade is the slice of a journaled trade the analytics engines care about.
// The persistence layer owns the full record; this is the read contract.
type Trade struct {
	ID          string
	Side        Side
	EntryPrice  float64
	Instrument  string
	OpenTime    time.Time
	CloseTime   time.Time
	ExternalKey string
	Size        float64
	PnL         float64
	Fee         float64
}
