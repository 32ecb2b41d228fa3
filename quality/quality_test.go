package quality

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmkov/vpjournal/gate"
	"github.com/dmkov/vpjournal/journal"
	"github.com/dmkov/vpjournal/market"
)

// recordingStore keeps every metrics write so tests can inspect what would
// land on the trade rows.
type recordingStore struct {
	*journal.SQLite
	metrics map[string]journal.TradeMetrics
}

func (r *recordingStore) UpdateMetrics(ctx context.Context, ownerID, tradeID string, m journal.TradeMetrics) error {
	if err := r.SQLite.UpdateMetrics(ctx, ownerID, tradeID, m); err != nil {
		return err
	}
	r.metrics[tradeID] = m
	return nil
}

func newFixture(t *testing.T) *recordingStore {
	t.Helper()
	s, err := journal.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return &recordingStore{SQLite: s, metrics: make(map[string]journal.TradeMetrics)}
}

func fp(f float64) *float64 { return &f }

func seedDay(t *testing.T, s *recordingStore) {
	t.Helper()
	require.NoError(t, s.ReplaceDay(context.Background(), journal.DayProfile{
		OwnerID:    "u1",
		Instrument: "ES",
		Day:        "2024-12-02",
		TickSize:   0.25,
		Source:     "volfix",
		Rows: []market.PriceVolumeRow{
			{Price: 100, Volume: 50, DeltaAgg: -10},
			{Price: 100.25, Volume: 120, DeltaAgg: 30},
			{Price: 100.5, Volume: 30, DeltaAgg: 5},
		},
	}))
}

func seedTrade(t *testing.T, s *recordingStore, key string, open *float64) string {
	t.Helper()
	closeT := time.Date(2024, 12, 2, 10, 0, 0, 0, time.Local)
	id, err := s.InsertImported(context.Background(), journal.TradeRecord{
		OwnerID:     "u1",
		Instrument:  "ES",
		Side:        market.Long,
		Size:        1,
		Contracts:   1,
		PnL:         25,
		OpenPrice:   open,
		CloseTime:   closeT,
		CreatedAt:   closeT,
		IsProfit:    true,
		Source:      "volfix",
		ExternalKey: key,
		OpenOrderID: key,
	})
	require.NoError(t, err)
	return id
}

func TestApplyDayWritesMetrics(t *testing.T) {
	t.Parallel()

	s := newFixture(t)
	seedDay(t, s)
	withPrice := seedTrade(t, s, "A1", fp(100))
	seedTrade(t, s, "A2", nil)

	e := New(s, nil)
	res, err := e.ApplyDay(context.Background(), "u1", "ES", "2024-12-02", gate.Fade)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 1, res.Skipped)

	m, ok := s.metrics[withPrice]
	require.True(t, ok)
	assert.Equal(t, "2024-12-02", m.CalcDay)
	assert.Equal(t, "FADE", m.GateMode)
	assert.Equal(t, 100.25, m.POC)
	assert.Equal(t, 100.0, m.VAL)
	assert.True(t, m.InValueArea)
	assert.Equal(t, 0.5, m.VolumePercentile)
	assert.Equal(t, -10.0, m.DeltaAgg)
	if !m.GatePass {
		assert.Empty(t, m.Flags)
	}
}

func TestApplyDayWithoutStoredProfile(t *testing.T) {
	t.Parallel()

	s := newFixture(t)
	seedTrade(t, s, "A1", fp(100))

	e := New(s, nil)
	_, err := e.ApplyDay(context.Background(), "u1", "ES", "2024-12-02", gate.Fade)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no profile stored")
}

func TestInspectTrade(t *testing.T) {
	t.Parallel()

	s := newFixture(t)
	seedDay(t, s)
	id := seedTrade(t, s, "A1", fp(100))

	e := New(s, nil)
	enriched, gr, err := e.InspectTrade(context.Background(), "u1", id, "2024-12-02", gate.Breakout)
	require.NoError(t, err)

	assert.Equal(t, 100.25, enriched.POC)
	assert.Equal(t, 50.0, enriched.VolumeAtEntry)
	assert.True(t, enriched.InValueArea)
	// in-value-area entries never pass breakout
	assert.False(t, gr.Pass)
	assert.Empty(t, gr.Flags)

	// nothing written during inspection
	assert.Empty(t, s.metrics)
}

func TestInspectTradeWithoutOpenPrice(t *testing.T) {
	t.Parallel()

	s := newFixture(t)
	seedDay(t, s)
	id := seedTrade(t, s, "A1", nil)

	e := New(s, nil)
	_, _, err := e.InspectTrade(context.Background(), "u1", id, "2024-12-02", gate.Fade)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no open price")
}
