package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmkov/vpjournal/market"
)

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	rec := sampleRecord("u1", "A100")
	rec.ID = "trade-12345678-abcd"

	result := FormatTradeOrg(rec)

	assert.Contains(t, result, "** Trade: ES LONG (trade-12)")
	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":TRADE_ID: trade-12345678-abcd")
	assert.Contains(t, result, ":SIDE: LONG")
	assert.Contains(t, result, ":SIZE: 2")
	assert.Contains(t, result, ":OPEN_PRICE: 5000.25")
	assert.Contains(t, result, ":PNL: 125.50")
	assert.Contains(t, result, ":PIPS: 13.0")
	assert.Contains(t, result, ":ORDER: A100")
	assert.Contains(t, result, ":END:")
	assert.Contains(t, result, "*** Thesis")
	assert.Contains(t, result, "*** Execution")
	assert.Contains(t, result, "*** Review")
}

func TestFormatTradeOrgOmitsMissingFields(t *testing.T) {
	t.Parallel()

	rec := TradeRecord{
		ID:         "bare",
		Instrument: "ES",
		Side:       market.Short,
		Size:       1,
		PnL:        -50,
		CloseTime:  time.Date(2024, 12, 2, 10, 0, 0, 0, time.Local),
	}

	result := FormatTradeOrg(rec)

	assert.Contains(t, result, "** Trade: ES SHORT (bare)")
	assert.Contains(t, result, ":PNL: -50.00")
	assert.NotContains(t, result, ":OPEN_PRICE:")
	assert.NotContains(t, result, ":OPEN_TIME:")
	assert.NotContains(t, result, ":PIPS:")
	assert.NotContains(t, result, ":ORDER:")
}

func TestFormatTradesOrg(t *testing.T) {
	t.Parallel()

	a := sampleRecord("u1", "A1")
	a.ID = "trade-001"
	b := sampleRecord("u1", "A2")
	b.ID = "trade-002"

	result := FormatTradesOrg([]TradeRecord{a, b})

	assert.Contains(t, result, "trade-001")
	assert.Contains(t, result, "trade-002")
	parts := strings.Split(result, "\n\n\n")
	assert.Len(t, parts, 2)

	assert.Empty(t, FormatTradesOrg(nil))
}

func TestShortID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "trade-12", shortID("trade-12345678-abcdef"))
	assert.Equal(t, "12345678", shortID("12345678"))
	assert.Equal(t, "short", shortID("short"))
	assert.Equal(t, "", shortID(""))
}
