package root

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stockpulse",
	Short: "StockPulse CLI",
	Long:  "Command line interface for interacting with the StockPulse API",
}

// GetRoot returns the root command for subcommand registration.
func GetRoot() *cobra.Command {
	return rootCmd
}
