package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "cycletrader",
	Short: "Macro cycle classification and deterministic backtesting",
	Long: `Cycletrader labels economic periods with business-cycle stages and
backtests stage-aware mean-reversion strategies over daily bars.

It provides tools for:
  - Classifying macro series into Expansion/Peak/Contraction/Recovery
  - Backtesting band, channel and squeeze entries with layered exits
  - Comparing strategies against buy-and-hold on the same bars
  - Journaling runs to CSV or SQLite for later review

Complete documentation is available at https://github.com/mwhitlock/cycletrader`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
