package cmd

import (
	"fmt"

	"github.com/rustyeddy/intraday/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage configuration files for trading runs.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  intraday config init --output trading.yaml
  intraday config validate --file trading.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "trading.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("Created default configuration: %s\n", configInitOutput)
	fmt.Println("\nEdit the file and run with:")
	fmt.Printf("  intraday backtest --config %s --bars <file> --symbol <name>\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("Configuration valid: %s\n", configValidatePath)
	fmt.Printf("  Capital: %.2f\n", cfg.Account.InitialCapital)
	fmt.Printf("  Strategy: %s (RSI %g/%g, BB %d/%g)\n",
		cfg.Strategy.Name, cfg.Strategy.RSIOversold, cfg.Strategy.RSIOverbought,
		cfg.Strategy.BBPeriod, cfg.Strategy.BBStdDev)
	fmt.Printf("  Risk: SL %.1f%% TP %.1f%% (max %d positions, %.0f%% per trade)\n",
		cfg.Risk.StopLossPct, cfg.Risk.TakeProfitPct,
		cfg.Risk.MaxActivePositions, cfg.Risk.CapitalPerTradePct)
	fmt.Printf("  Journal: %s\n", cfg.Journal.Type)
	return nil
}
