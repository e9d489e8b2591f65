package backtest

import (
	"fmt"
	"io"
)

// PrintReport writes a human-readable performance summary.
func PrintReport(w io.Writer, symbol string, r Report) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, " Backtest Result: %s\n", symbol)
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Initial Capital:  %.2f\n", r.InitialCapital)
	fmt.Fprintf(w, "Final Equity:     %.2f\n", r.FinalEquity)
	fmt.Fprintf(w, "Net P/L:          %.2f\n", r.NetPnL)
	fmt.Fprintf(w, "Return:           %.2f%%\n", r.TotalReturnPct)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Trades:           %d\n", r.TotalTrades)
	fmt.Fprintf(w, "Win Rate:         %.2f%%\n", r.WinRatePct)
	fmt.Fprintf(w, "Max Drawdown:     %.2f%%\n", r.MaxDrawdownPct)
	fmt.Fprintf(w, "Sharpe Ratio:     %.2f\n", r.SharpeRatio)
	fmt.Fprintln(w)
}
