package optimize

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV exports the result rows, one backtest per line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	header := []string{
		"symbol", "rsi_oversold", "rsi_overbought", "bb_period", "bb_std_dev",
		"net_pnl", "total_return_pct", "total_trades", "win_rate_pct",
		"max_drawdown_pct", "sharpe_ratio",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
	for _, row := range rows {
		rec := []string{
			row.Symbol,
			f(row.Params.RSIOversold),
			f(row.Params.RSIOverbought),
			strconv.Itoa(row.Params.BBPeriod),
			f(row.Params.BBStdDev),
			f(row.Report.NetPnL),
			f(row.Report.TotalReturnPct),
			strconv.Itoa(row.Report.TotalTrades),
			f(row.Report.WinRatePct),
			f(row.Report.MaxDrawdownPct),
			f(row.Report.SharpeRatio),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
