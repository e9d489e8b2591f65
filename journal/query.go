package journal

import "time"

// ListTrades returns every recorded trade in exit-time order.
func (j *SQLite) ListTrades() ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT symbol, entry_timestamp, entry_price, exit_timestamp, exit_price, quantity, pnl, exit_reason
		FROM trades
		ORDER BY exit_timestamp ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.Symbol,
			&rec.EntryTime,
			&rec.EntryPrice,
			&rec.ExitTime,
			&rec.ExitPrice,
			&rec.Quantity,
			&rec.PnL,
			&rec.Reason,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListTradesClosedBetween returns trades whose exit time is within
// [start, end).
func (j *SQLite) ListTradesClosedBetween(start, end time.Time) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT symbol, entry_timestamp, entry_price, exit_timestamp, exit_price, quantity, pnl, exit_reason
		FROM trades
		WHERE exit_timestamp >= ? AND exit_timestamp < ?
		ORDER BY exit_timestamp ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.Symbol,
			&rec.EntryTime,
			&rec.EntryPrice,
			&rec.ExitTime,
			&rec.ExitPrice,
			&rec.Quantity,
			&rec.PnL,
			&rec.Reason,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
