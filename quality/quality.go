// Package quality joins stored trades with stored day profiles: enrich each
// entry against the day's volume profile, run the gate, and persist the
// resulting metrics on the trade.
package quality

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dmkov/vpjournal/gate"
	"github.com/dmkov/vpjournal/journal"
	"github.com/dmkov/vpjournal/market"
	"github.com/dmkov/vpjournal/profile"
)

// Store is the slice of the journal the quality engine needs.
type Store interface {
	GetTrade(ctx context.Context, ownerID, tradeID string) (journal.TradeRecord, error)
	ListTradesForDay(ctx context.Context, ownerID, instrument, day string) ([]journal.TradeRecord, error)
	UpdateMetrics(ctx context.Context, ownerID, tradeID string, m journal.TradeMetrics) error
	GetDay(ctx context.Context, ownerID, instrument, day string) (journal.DayProfile, bool, error)
}

type Engine struct {
	store Store
	log   *zap.Logger
}

func New(store Store, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{store: store, log: log}
}

// ApplyResult summarizes one day-wide metrics run.
type ApplyResult struct {
	Day       string `json:"day"`
	Processed int    `json:"processed"`
	Updated   int    `json:"updated"`
	Skipped   int    `json:"skipped"` // trades without an open price
}

// InspectTrade enriches and gates a single trade against a stored day without
// writing anything back.
func (e *Engine) InspectTrade(ctx context.Context, ownerID, tradeID, day string, mode gate.Mode) (profile.EnrichedTrade, gate.Result, error) {
	rec, err := e.store.GetTrade(ctx, ownerID, tradeID)
	if err != nil {
		return profile.EnrichedTrade{}, gate.Result{}, err
	}
	if rec.OpenPrice == nil {
		return profile.EnrichedTrade{}, gate.Result{}, fmt.Errorf("trade %q has no open price", tradeID)
	}

	prof, tickSize, err := e.dayProfile(ctx, ownerID, rec.Instrument, day)
	if err != nil {
		return profile.EnrichedTrade{}, gate.Result{}, err
	}

	enriched := profile.Enrich(rec.Trade(), prof, tickSize)
	return enriched, gate.Evaluate(enriched, mode), nil
}

// ApplyDay enriches every trade closed on the day against the stored profile
// and persists the metrics. Trades without an open price are skipped, not
// failed: statements frequently omit prices for partial fills.
func (e *Engine) ApplyDay(ctx context.Context, ownerID, instrument, day string, mode gate.Mode) (ApplyResult, error) {
	res := ApplyResult{Day: day}

	prof, tickSize, err := e.dayProfile(ctx, ownerID, instrument, day)
	if err != nil {
		return res, err
	}

	trades, err := e.store.ListTradesForDay(ctx, ownerID, instrument, day)
	if err != nil {
		return res, err
	}

	for _, rec := range trades {
		res.Processed++
		if rec.OpenPrice == nil {
			res.Skipped++
			continue
		}

		enriched := profile.Enrich(rec.Trade(), prof, tickSize)
		gr := gate.Evaluate(enriched, mode)

		m := journal.TradeMetrics{
			InValueArea:        enriched.InValueArea,
			EdgeDistanceTicks:  enriched.EdgeDistanceTicks,
			IsHVN:              enriched.IsHVN,
			IsLVN:              enriched.IsLVN,
			VolumePercentile:   enriched.VolumePercentile,
			DeltaAgg:           enriched.DeltaAgg,
			DeltaRank:          enriched.DeltaRank,
			DeltaOpposesSide:   enriched.DeltaOpposesSide,
			EdgeSlope:          enriched.EdgeSlope,
			ThinBehind:         enriched.ThinBehind,
			VolumeEsEquivalent: enriched.VolumeEsEquivalent,
			P70Es:              enriched.P70Es,
			POC:                enriched.POC,
			VAL:                enriched.VAL,
			VAH:                enriched.VAH,
			LevelScore:         gr.Score,
			GateMode:           string(mode),
			GatePass:           gr.Pass,
			Flags:              gr.Flags,
			CalcDay:            day,
		}
		if err := e.store.UpdateMetrics(ctx, ownerID, rec.ID, m); err != nil {
			return res, fmt.Errorf("apply metrics to %q: %w", rec.ID, err)
		}
		res.Updated++
	}

	e.log.Info("day metrics applied",
		zap.String("instrument", instrument),
		zap.String("day", day),
		zap.String("mode", string(mode)),
		zap.Int("processed", res.Processed),
		zap.Int("updated", res.Updated),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}

// dayProfile loads a stored day and rebuilds its profile. Tick size comes
// from the stored day, falling back to instrument metadata.
func (e *Engine) dayProfile(ctx context.Context, ownerID, instrument, day string) (profile.Profile, float64, error) {
	dp, found, err := e.store.GetDay(ctx, ownerID, instrument, day)
	if err != nil {
		return profile.Profile{}, 0, err
	}
	if !found {
		return profile.Profile{}, 0, fmt.Errorf("no profile stored for %s %s", instrument, day)
	}

	tickSize := dp.TickSize
	if tickSize <= 0 {
		tickSize = market.Instruments[instrument].TickSize
	}
	if tickSize <= 0 {
		return profile.Profile{}, 0, fmt.Errorf("no tick size for %s", instrument)
	}

	return profile.Build(dp.Rows), tickSize, nil
}
