package journal

import (
	"database/sql"
	"encoding/json"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/intraday/internal/id"
)

// SQLite persists trades and snapshots to a SQLite database. Snapshots
// are inserted rather than overwritten so the history is queryable.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, symbol, entry_timestamp, entry_price, exit_timestamp, exit_price, quantity, pnl, exit_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.New(), t.Symbol, t.EntryTime, t.EntryPrice,
		t.ExitTime, t.ExitPrice, t.Quantity, t.PnL, t.Reason,
	)
	return err
}

func (j *SQLite) PublishSnapshot(s Snapshot) error {
	positions, err := json.Marshal(s.OpenPositions)
	if err != nil {
		return err
	}

	_, err = j.db.Exec(`
		INSERT INTO snapshots
		(time, portfolio_value, pnl, pnl_pct, cash, open_positions)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.Time, s.PortfolioValue, s.PnL, s.PnLPct, s.Cash, string(positions),
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
