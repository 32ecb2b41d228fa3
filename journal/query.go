package journal

import (
	"context"
	"fmt"
	"time"
)

// ListTradesClosedBetween returns an owner's trades whose close_time is
// within [start, end), close-time ascending.
func (s *SQLite) ListTradesClosedBetween(ctx context.Context, ownerID string, start, end time.Time) ([]TradeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+tradeCols+`
		FROM trades
		WHERE owner_id = ? AND close_time >= ? AND close_time < ?
		ORDER BY close_time ASC`, ownerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListTradesForDay returns an owner's trades for one instrument closed on a
// local calendar day (YYYY-MM-DD).
func (s *SQLite) ListTradesForDay(ctx context.Context, ownerID, instrument, day string) ([]TradeRecord, error) {
	start, err := time.ParseInLocation("2006-01-02", day, time.Local)
	if err != nil {
		return nil, fmt.Errorf("bad day %q: %w", day, err)
	}
	end := start.AddDate(0, 0, 1)

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+tradeCols+`
		FROM trades
		WHERE owner_id = ? AND instrument = ? AND close_time >= ? AND close_time < ?
		ORDER BY close_time ASC`, ownerID, instrument, start, end)
	if err != nil {
		return nil, fmt.Errorf("list trades for day: %w", err)
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
