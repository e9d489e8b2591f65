package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the intraday CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("intraday version %s\n", version)
		fmt.Println("An intraday position-trading engine for backtesting and live execution")
		fmt.Println("https://github.com/rustyeddy/intraday")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
