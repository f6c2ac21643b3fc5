package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhitlock/cycletrader/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate run files",
	Long: `Manage run files for backtests.

Subcommands:
  init     - Generate a default run file
  validate - Validate an existing run file

Examples:
  cycletrader config init --output run.yaml
  cycletrader config validate --file run.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default run file",
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a run file",
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

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "run.yaml", "output run file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to run file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("Created default run file: %s\n", configInitOutput)
	fmt.Println("\nSet data.bars (and data.macro for stage filters), then run:")
	fmt.Printf("  cycletrader backtest --config %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("Run file valid: %s\n", configValidatePath)
	fmt.Printf("  Data:     %s (%s)\n", cfg.Data.Bars, cfg.Data.Frequency)
	fmt.Printf("  Strategy: %s / %s ($%.2f)\n", cfg.Strategy.Entry, cfg.Strategy.Exit, cfg.Strategy.InitialCapital)
	fmt.Printf("  Journal:  %s\n", journalKind(cfg.Journal))
	return nil
}

func journalKind(jc config.JournalConfig) string {
	if jc.Type == "" {
		return "none"
	}
	return jc.Type
}
