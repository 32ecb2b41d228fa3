// Package reconcile turns aggregated statement rows into journal writes:
// filter, reject with named reasons, dedup in-batch and against the store,
// then insert or update.
package reconcile

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dmkov/vpjournal/journal"
	"github.com/dmkov/vpjournal/market"
	"github.com/dmkov/vpjournal/statement"
)

// TradeStore is the slice of the journal the engine needs.
type TradeStore interface {
	FindByOrderKeys(ctx context.Context, ownerID, externalKey, pairKey, openOrderID string) (journal.TradeRecord, bool, error)
	InsertImported(ctx context.Context, rec journal.TradeRecord) (string, error)
	UpdateImported(ctx context.Context, tradeID string, rec journal.TradeRecord) error
}

// Options configure one import run. The caller owns them; the engine keeps
// no state between runs.
type Options struct {
	OwnerID    string
	Instrument string
	TickSize   float64
	TickValue  float64
	DryRun     bool
	UpdateMode bool
}

// Reasons counts every skipped row by exactly one taxonomy entry.
type Reasons struct {
	FilteredInstrument int `json:"filteredInstrument"`
	BadNumbers         int `json:"badNumbers"`
	ZeroSize           int `json:"zeroSize"`
	NoCloseDate        int `json:"noCloseDate"`
	Duplicate          int `json:"duplicate"`
	DuplicateInFile    int `json:"duplicateInFile"`
}

// Debug carries dry-run diagnostics for unparseable close dates.
type Debug struct {
	BadCloseDateSamples []string `json:"badCloseDateSamples"`
	Hint                string   `json:"hint"`
}

const badDateHint = "close date format not recognized; supported: dd.mm.yy(yy), dd/mm/yy(yy), yyyy-mm-dd (seconds optional)"

// Summary is the outcome of one run. Sample holds up to 3 pre-decision
// candidate records for preview.
type Summary struct {
	OK       bool                  `json:"ok"`
	Imported int                   `json:"imported"`
	Updated  int                   `json:"updated"`
	Skipped  int                   `json:"skipped"`
	Reasons  Reasons               `json:"reasons"`
	Sample   []journal.TradeRecord `json:"sample"`
	Debug    *Debug                `json:"debug,omitempty"`
}

type Engine struct {
	store TradeStore
	log   *zap.Logger
}

func New(store TradeStore, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{store: store, log: log}
}

// Process runs the decision pipeline over aggregated rows. A dry run takes
// every decision, including in-batch dedup, but issues no writes, so its
// counters match what a real run would produce. Store failures abort the run
// but the summary accumulated so far is still returned.
func (e *Engine) Process(ctx context.Context, rows []statement.Row, opts Options) (Summary, error) {
	instrument := strings.ToUpper(strings.TrimSpace(opts.Instrument))
	prefix := instrument + "("

	var pricePerPoint *float64
	if opts.TickSize > 0 && opts.TickValue > 0 {
		ppp := opts.TickValue / opts.TickSize
		pricePerPoint = &ppp
	}

	var sum Summary
	seenInBatch := make(map[string]struct{}, len(rows))
	badDates := make(map[string]struct{})
	var badDateOrder []string

	for _, r := range rows {
		symbol := strings.TrimSpace(r.Symbol)
		if symbol == "" || !strings.HasPrefix(strings.ToUpper(symbol), prefix) {
			sum.Reasons.FilteredInstrument++
			sum.Skipped++
			continue
		}

		if r.CloseDate == nil {
			sum.Reasons.NoCloseDate++
			sum.Skipped++
			if opts.DryRun {
				if s := strings.TrimSpace(r.CloseDateRaw); s != "" {
					if _, ok := badDates[s]; !ok {
						badDates[s] = struct{}{}
						badDateOrder = append(badDateOrder, s)
					}
				}
			}
			continue
		}

		if r.Size == nil || r.PnL == nil {
			sum.Reasons.BadNumbers++
			sum.Skipped++
			continue
		}
		if *r.Size == 0 {
			sum.Reasons.ZeroSize++
			sum.Skipped++
			continue
		}

		side, _ := market.ParseSide(r.Side)

		rec := journal.TradeRecord{
			OwnerID:       opts.OwnerID,
			Instrument:    instrument,
			Side:          side,
			Size:          *r.Size,
			Contracts:     *r.Size,
			PnL:           *r.PnL,
			Fee:           fee(r.Fee),
			OpenPrice:     r.OpenPrice,
			ClosePrice:    r.ClosePrice,
			OpenTime:      r.OpenDate,
			CloseTime:     *r.CloseDate,
			CreatedAt:     *r.CloseDate,
			IsProfit:      *r.PnL >= 0,
			PricePerPoint: pricePerPoint,
			Source:        "volfix",
			ExternalKey:   r.OpenOrderID,
			OpenOrderID:   r.OpenOrderID,
			CloseOrderID:  r.CloseOrderID,
			Pips:          r.Pips,
			Drawdown:      r.Drawdown,
			DrawdownCash:  r.DrawdownCash,
		}

		if len(sum.Sample) < 3 {
			sum.Sample = append(sum.Sample, rec)
		}

		if rec.ExternalKey != "" {
			if _, dup := seenInBatch[rec.ExternalKey]; dup {
				sum.Reasons.DuplicateInFile++
				sum.Skipped++
				continue
			}
			seenInBatch[rec.ExternalKey] = struct{}{}

			var pairKey string
			if r.OpenOrderID != "" || r.CloseOrderID != "" {
				pairKey = r.OpenOrderID + "|" + r.CloseOrderID
			}

			existing, found, err := e.store.FindByOrderKeys(ctx, opts.OwnerID, rec.ExternalKey, pairKey, r.OpenOrderID)
			if err != nil {
				e.log.Error("import aborted", zap.Error(err), zap.String("externalKey", rec.ExternalKey))
				return sum, fmt.Errorf("lookup %q: %w", rec.ExternalKey, err)
			}
			if found {
				if opts.UpdateMode && !opts.DryRun {
					if err := e.store.UpdateImported(ctx, existing.ID, rec); err != nil {
						e.log.Error("import aborted", zap.Error(err), zap.String("tradeID", existing.ID))
						return sum, fmt.Errorf("update %q: %w", existing.ID, err)
					}
					sum.Updated++
					continue
				}
				sum.Reasons.Duplicate++
				sum.Skipped++
				continue
			}
		}

		if !opts.DryRun {
			if _, err := e.store.InsertImported(ctx, rec); err != nil {
				e.log.Error("import aborted", zap.Error(err), zap.String("externalKey", rec.ExternalKey))
				return sum, fmt.Errorf("insert %q: %w", rec.ExternalKey, err)
			}
		}
		sum.Imported++
	}

	if opts.DryRun && len(badDateOrder) > 0 {
		if len(badDateOrder) > 10 {
			badDateOrder = badDateOrder[:10]
		}
		sum.Debug = &Debug{BadCloseDateSamples: badDateOrder, Hint: badDateHint}
	}

	sum.OK = true
	e.log.Info("import processed",
		zap.String("instrument", instrument),
		zap.Bool("dryRun", opts.DryRun),
		zap.Bool("updateMode", opts.UpdateMode),
		zap.Int("imported", sum.Imported),
		zap.Int("updated", sum.Updated),
		zap.Int("skipped", sum.Skipped),
	)
	return sum, nil
}

func fee(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
