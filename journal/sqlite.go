package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dmkov/vpjournal/market"
	"github.com/dmkov/vpjournal/pkg/id"
	"github.com/dmkov/vpjournal/profile"
)

// SQLite is the embedded trade and day-profile store.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

const tradeCols = `id, owner_id, instrument, side, size, contracts, pnl, fee,
	open_price, close_price, open_time, close_time, created_at, is_profit,
	price_per_point, source, external_key, open_order_id, close_order_id,
	pips, drawdown, drawdown_cash`

func (s *SQLite) InsertImported(ctx context.Context, rec TradeRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = id.New()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trades (`+tradeCols+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.OwnerID, rec.Instrument, string(rec.Side),
		rec.Size, rec.Contracts, rec.PnL, rec.Fee,
		rec.OpenPrice, rec.ClosePrice, rec.OpenTime, rec.CloseTime,
		rec.CreatedAt, rec.IsProfit, rec.PricePerPoint, rec.Source,
		rec.ExternalKey, rec.OpenOrderID, rec.CloseOrderID,
		rec.Pips, rec.Drawdown, rec.DrawdownCash,
	)
	if err != nil {
		return "", fmt.Errorf("insert trade: %w", err)
	}
	return rec.ID, nil
}

// UpdateImported overwrites the imported fields of an existing trade.
// Nullable fields are only written when present, and the dedup key migrates
// to the open-order scheme when an open order id is known.
func (s *SQLite) UpdateImported(ctx context.Context, tradeID string, rec TradeRecord) error {
	set := []string{
		"instrument = ?", "side = ?", "size = ?", "contracts = ?",
		"pnl = ?", "fee = ?", "close_time = ?", "created_at = ?",
		"is_profit = ?", "source = ?", "open_order_id = ?", "close_order_id = ?",
	}
	args := []any{
		rec.Instrument, string(rec.Side), rec.Size, rec.Contracts,
		rec.PnL, rec.Fee, rec.CloseTime, rec.CreatedAt,
		rec.IsProfit, rec.Source, rec.OpenOrderID, rec.CloseOrderID,
	}

	addIf := func(col string, p any, present bool) {
		if present {
			set = append(set, col+" = ?")
			args = append(args, p)
		}
	}
	addIf("open_price", rec.OpenPrice, rec.OpenPrice != nil)
	addIf("close_price", rec.ClosePrice, rec.ClosePrice != nil)
	addIf("open_time", rec.OpenTime, rec.OpenTime != nil)
	addIf("price_per_point", rec.PricePerPoint, rec.PricePerPoint != nil)
	addIf("pips", rec.Pips, rec.Pips != nil)
	addIf("drawdown", rec.Drawdown, rec.Drawdown != nil)
	addIf("drawdown_cash", rec.DrawdownCash, rec.DrawdownCash != nil)

	switch {
	case rec.OpenOrderID != "":
		addIf("external_key", rec.OpenOrderID, true)
	case rec.ExternalKey != "":
		addIf("external_key", rec.ExternalKey, true)
	}

	args = append(args, tradeID)
	_, err := s.db.ExecContext(ctx,
		"UPDATE trades SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("update trade %s: %w", tradeID, err)
	}
	return nil
}

// FindByOrderKeys looks up an owner's trade by the current external key, the
// legacy "open|close" pair key, or the raw open order id.
func (s *SQLite) FindByOrderKeys(ctx context.Context, ownerID, externalKey, pairKey, openOrderID string) (TradeRecord, bool, error) {
	if externalKey == "" && pairKey == "" && openOrderID == "" {
		return TradeRecord{}, false, nil
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+tradeCols+`
		FROM trades
		WHERE owner_id = ? AND (
			(? != '' AND external_key = ?) OR
			(? != '' AND external_key = ?) OR
			(? != '' AND open_order_id = ?)
		)
		LIMIT 1`,
		ownerID,
		externalKey, externalKey,
		pairKey, pairKey,
		openOrderID, openOrderID,
	)

	rec, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return TradeRecord{}, false, nil
	}
	if err != nil {
		return TradeRecord{}, false, fmt.Errorf("find trade: %w", err)
	}
	return rec, true, nil
}

func (s *SQLite) GetTrade(ctx context.Context, ownerID, tradeID string) (TradeRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+tradeCols+`
		FROM trades
		WHERE owner_id = ? AND id = ?`, ownerID, tradeID)

	rec, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return TradeRecord{}, fmt.Errorf("trade %q not found", tradeID)
	}
	if err != nil {
		return TradeRecord{}, fmt.Errorf("get trade: %w", err)
	}
	return rec, nil
}

// UpdateMetrics patches the volume-journal metric fields of one trade.
func (s *SQLite) UpdateMetrics(ctx context.Context, ownerID, tradeID string, m TradeMetrics) error {
	flags, err := json.Marshal(m.Flags)
	if err != nil {
		return fmt.Errorf("encode flags: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE trades SET
			in_value_area = ?, va_edge_dist_ticks = ?, is_hvn = ?, is_lvn = ?,
			vol_pctile = ?, delta_agg = ?, delta_rank = ?, delta_opposes = ?,
			edge_slope = ?, thin_behind = ?, vol_es_equiv = ?, p70_es = ?,
			poc = ?, val = ?, vah = ?, level_score = ?,
			gate_mode = ?, gate_pass = ?, flags = ?, calc_day = ?
		WHERE owner_id = ? AND id = ?`,
		m.InValueArea, m.EdgeDistanceTicks, m.IsHVN, m.IsLVN,
		m.VolumePercentile, m.DeltaAgg, m.DeltaRank, m.DeltaOpposesSide,
		m.EdgeSlope, m.ThinBehind, m.VolumeEsEquivalent, m.P70Es,
		m.POC, m.VAL, m.VAH, m.LevelScore,
		m.GateMode, m.GatePass, string(flags), m.CalcDay,
		ownerID, tradeID,
	)
	if err != nil {
		return fmt.Errorf("update metrics %s: %w", tradeID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("trade %q not found", tradeID)
	}
	return nil
}

// ReplaceDay upserts the full row set for one (owner, instrument, day),
// merging rows onto the grid and caching the rebuilt profile summary.
func (s *SQLite) ReplaceDay(ctx context.Context, dp DayProfile) error {
	prof := profile.Build(dp.Rows)

	blob, err := json.Marshal(prof.Levels)
	if err != nil {
		return fmt.Errorf("encode day rows: %w", err)
	}

	updated := dp.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profile_days
			(owner_id, instrument, day, tick_size, source, rows,
			 poc, val, vah, total_volume, level_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id, instrument, day) DO UPDATE SET
			tick_size = excluded.tick_size,
			source = excluded.source,
			rows = excluded.rows,
			poc = excluded.poc,
			val = excluded.val,
			vah = excluded.vah,
			total_volume = excluded.total_volume,
			level_count = excluded.level_count,
			updated_at = excluded.updated_at`,
		dp.OwnerID, dp.Instrument, dp.Day, dp.TickSize, dp.Source, string(blob),
		prof.POC, prof.VAL, prof.VAH, prof.TotalVolume, prof.LevelCount, updated,
	)
	if err != nil {
		return fmt.Errorf("replace day %s/%s: %w", dp.Instrument, dp.Day, err)
	}
	return nil
}

func (s *SQLite) GetDay(ctx context.Context, ownerID, instrument, day string) (DayProfile, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT owner_id, instrument, day, tick_size, source, rows,
		       poc, val, vah, total_volume, level_count, updated_at
		FROM profile_days
		WHERE owner_id = ? AND instrument = ? AND day = ?`,
		ownerID, instrument, day)

	var dp DayProfile
	var blob string
	err := row.Scan(
		&dp.OwnerID, &dp.Instrument, &dp.Day, &dp.TickSize, &dp.Source, &blob,
		&dp.POC, &dp.VAL, &dp.VAH, &dp.TotalVolume, &dp.LevelCount, &dp.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return DayProfile{}, false, nil
	}
	if err != nil {
		return DayProfile{}, false, fmt.Errorf("get day: %w", err)
	}

	var rows []market.PriceVolumeRow
	if err := json.Unmarshal([]byte(blob), &rows); err != nil {
		return DayProfile{}, false, fmt.Errorf("decode day rows: %w", err)
	}
	dp.Rows = rows
	return dp, true, nil
}

func (s *SQLite) ListDays(ctx context.Context, ownerID, instrument string) ([]DaySummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day, level_count, poc, val, vah, updated_at
		FROM profile_days
		WHERE owner_id = ? AND instrument = ?
		ORDER BY day ASC`, ownerID, instrument)
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	defer rows.Close()

	var out []DaySummary
	for rows.Next() {
		var d DaySummary
		if err := rows.Scan(&d.Day, &d.RowCount, &d.POC, &d.VAL, &d.VAH, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrade(row rowScanner) (TradeRecord, error) {
	var rec TradeRecord
	var side string
	err := row.Scan(
		&rec.ID, &rec.OwnerID, &rec.Instrument, &side,
		&rec.Size, &rec.Contracts, &rec.PnL, &rec.Fee,
		&rec.OpenPrice, &rec.ClosePrice, &rec.OpenTime, &rec.CloseTime,
		&rec.CreatedAt, &rec.IsProfit, &rec.PricePerPoint, &rec.Source,
		&rec.ExternalKey, &rec.OpenOrderID, &rec.CloseOrderID,
		&rec.Pips, &rec.Drawdown, &rec.DrawdownCash,
	)
	if err != nil {
		return TradeRecord{}, err
	}
	rec.Side = market.Side(side)
	return rec, nil
}
