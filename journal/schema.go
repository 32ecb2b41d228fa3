// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	owner_id TEXT NOT NULL,
	instrument TEXT NOT NULL,
	side TEXT NOT NULL,
	size REAL NOT NULL,
	contracts REAL NOT NULL,
	pnl REAL NOT NULL,
	fee REAL NOT NULL,
	open_price REAL,
	close_price REAL,
	open_time DATETIME,
	close_time DATETIME NOT NULL,
	created_at DATETIME NOT NULL,
	is_profit INTEGER NOT NULL,
	price_per_point REAL,
	source TEXT NOT NULL DEFAULT '',
	external_key TEXT NOT NULL DEFAULT '',
	open_order_id TEXT NOT NULL DEFAULT '',
	close_order_id TEXT NOT NULL DEFAULT '',
	pips REAL,
	drawdown REAL,
	drawdown_cash REAL,
	in_value_area INTEGER,
	va_edge_dist_ticks INTEGER,
	is_hvn INTEGER,
	is_lvn INTEGER,
	vol_pctile REAL,
	delta_agg REAL,
	delta_rank REAL,
	delta_opposes INTEGER,
	edge_slope REAL,
	thin_behind INTEGER,
	vol_es_equiv REAL,
	p70_es REAL,
	poc REAL,
	val REAL,
	vah REAL,
	level_score INTEGER,
	gate_mode TEXT,
	gate_pass INTEGER,
	flags TEXT,
	calc_day TEXT
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_trades_owner_external
	ON trades(owner_id, external_key) WHERE external_key != '';
CREATE INDEX IF NOT EXISTS idx_trades_owner_close ON trades(owner_id, close_time);
CREATE INDEX IF NOT EXISTS idx_trades_owner_open_order ON trades(owner_id, open_order_id);

CREATE TABLE IF NOT EXISTS profile_days (
	owner_id TEXT NOT NULL,
	instrument TEXT NOT NULL,
	day TEXT NOT NULL,
	tick_size REAL NOT NULL,
	source TEXT NOT NULL DEFAULT '',
	rows TEXT NOT NULL,
	poc REAL NOT NULL,
	val REAL NOT NULL,
	vah REAL NOT NULL,
	total_volume REAL NOT NULL,
	level_count INTEGER NOT NULL,
	updated_at DATETIME NOT NULL,
	PRIMARY KEY (owner_id, instrument, day)
);
`
