// journal/journal.go
package journal

import (
	"context"
	"time"

	"github.com/dmkov/vpjournal/market"
)

// TradeRecord is one persisted round-trip trade. Pointer fields are
// nullable: an imported statement may omit prices or auxiliary metrics, and
// updates only overwrite fields that are present.
type TradeRecord struct {
	ID         string
	OwnerID    string
	Instrument string
	Side       market.Side
	Size       float64
	Contracts  float64
	PnL        float64
	Fee        float64

	OpenPrice  *float64
	ClosePrice *float64
	OpenTime   *time.Time
	CloseTime  time.Time
	CreatedAt  time.Time
	IsProfit   bool

	PricePerPoint *float64
	Source        string

	// Dedup keys. ExternalKey is the open order id; older imports stored
	// "open|close" pairs, which FindByOrderKeys still honors.
	ExternalKey  string
	OpenOrderID  string
	CloseOrderID string

	Pips         *float64
	Drawdown     *float64
	DrawdownCash *float64
}

// Trade projects the record onto the analytics read contract.
func (r TradeRecord) Trade() market.Trade {
	var entry float64
	if r.OpenPrice != nil {
		entry = *r.OpenPrice
	}
	var open time.Time
	if r.OpenTime != nil {
		open = *r.OpenTime
	}
	return market.Trade{
		ID:          r.ID,
		Side:        r.Side,
		EntryPrice:  entry,
		Instrument:  r.Instrument,
		OpenTime:    open,
		CloseTime:   r.CloseTime,
		ExternalKey: r.ExternalKey,
		Size:        r.Size,
		PnL:         r.PnL,
		Fee:         r.Fee,
	}
}

// TradeMetrics are the persisted volume-journal metrics and gate result for
// one trade, written as a single field-level patch.
type TradeMetrics struct {
	InValueArea        bool
	EdgeDistanceTicks  int
	IsHVN              bool
	IsLVN              bool
	VolumePercentile   float64
	DeltaAgg           float64
	DeltaRank          float64
	DeltaOpposesSide   bool
	EdgeSlope          float64
	ThinBehind         bool
	VolumeEsEquivalent float64
	P70Es              float64
	POC                float64
	VAL                float64
	VAH                float64
	LevelScore         int
	GateMode           string
	GatePass           bool
	Flags              []string
	CalcDay            string
}

// DayProfile is the wholesale-replaced set of price/volume rows for one
// (owner, instrument, day), with the cached profile summary.
type DayProfile struct {
	OwnerID    string
	Instrument string
	Day        string // YYYY-MM-DD
	TickSize   float64
	Source     string

	Rows []market.PriceVolumeRow

	POC         float64
	VAL         float64
	VAH         float64
	TotalVolume float64
	LevelCount  int

	UpdatedAt time.Time
}

// DaySummary is the listing view of a stored day.
type DaySummary struct {
	Day       string
	RowCount  int
	POC       float64
	VAL       float64
	VAH       float64
	UpdatedAt time.Time
}

// Store is the persisted trade and day-profile contract the engines run
// against.
type Store interface {
	InsertImported(ctx context.Context, rec TradeRecord) (string, error)
	UpdateImported(ctx context.Context, tradeID string, rec TradeRecord) error
	FindByOrderKeys(ctx context.Context, ownerID, externalKey, pairKey, openOrderID string) (TradeRecord, bool, error)
	GetTrade(ctx context.Context, ownerID, tradeID string) (TradeRecord, error)
	ListTradesForDay(ctx context.Context, ownerID, instrument, day string) ([]TradeRecord, error)
	ListTradesClosedBetween(ctx context.Context, ownerID string, start, end time.Time) ([]TradeRecord, error)
	UpdateMetrics(ctx context.Context, ownerID, tradeID string, m TradeMetrics) error

	ReplaceDay(ctx context.Context, dp DayProfile) error
	GetDay(ctx context.Context, ownerID, instrument, day string) (DayProfile, bool, error)
	ListDays(ctx context.Context, ownerID, instrument string) ([]DaySummary, error)

	Close() error
}
