package cmd

import (
	"fmt"

	"github.com/rustyeddy/intraday/config"
	"github.com/rustyeddy/intraday/journal"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "intraday",
	Short: "An intraday position-trading engine for backtesting and live execution",
	Long: `Intraday is a position-trading engine written in Go.

It provides tools for:
  - Backtesting indicator strategies against historical bar data
  - Running a live polling loop with stop-loss / take-profit management
  - Optimizing strategy parameters over a grid of backtests
  - Journaling trades to CSV or SQLite with portfolio snapshots

Complete documentation is available at https://github.com/rustyeddy/intraday`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var cfgFile string

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
}

// loadConfig returns the file config when --config was given, defaults
// otherwise.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgFile)
}

// openJournal builds the trade journal selected by the config.
func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "", "none":
		return journal.Nop{}, nil
	case "csv":
		return journal.NewCSV(jc.TradesFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", jc.Type)
	}
}
