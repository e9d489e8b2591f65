package journal

const schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	entry_timestamp DATETIME NOT NULL,
	entry_price REAL NOT NULL,
	exit_timestamp DATETIME NOT NULL,
	exit_price REAL NOT NULL,
	quantity REAL NOT NULL,
	pnl REAL NOT NULL,
	exit_reason TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_exit ON trades(exit_timestamp);

CREATE TABLE IF NOT EXISTS snapshots (
	time DATETIME NOT NULL,
	portfolio_value REAL NOT NULL,
	pnl REAL NOT NULL,
	pnl_pct REAL NOT NULL,
	cash REAL NOT NULL,
	open_positions TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_time ON snapshots(time);
`
