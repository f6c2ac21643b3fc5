package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwhitlock/cycletrader/config"
	"github.com/mwhitlock/cycletrader/cycle"
	"github.com/mwhitlock/cycletrader/dataset"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Label a macro series with cycle stages",
	Long: `Classify reads a macro CSV (growth, unemployment, inflation, yield
spread) and labels each period with a business-cycle stage. Rules are
checked in a fixed order: Contraction, Peak, Recovery, Expansion; the
first match wins and unclassifiable periods keep the prior stage.

Example:
  cycletrader classify --macro data/us_macro.csv`,
	RunE: runClassify,
}

var (
	clMacroPath  string
	clConfigPath string
	clFrom       string
	clTo         string
)

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVarP(&clMacroPath, "macro", "m", "", "path to macro CSV (required)")
	classifyCmd.Flags().StringVarP(&clConfigPath, "config", "c", "", "run file with classifier thresholds (optional)")
	classifyCmd.Flags().StringVar(&clFrom, "from", "", "start of range (RFC3339 or YYYY-MM-DD)")
	classifyCmd.Flags().StringVar(&clTo, "to", "", "end of range, exclusive")
	classifyCmd.MarkFlagRequired("macro")
}

func runClassify(cmd *cobra.Command, args []string) error {
	rules := cycle.DefaultConfig()
	if clConfigPath != "" {
		cfg, err := config.LoadFromFile(clConfigPath)
		if err != nil {
			return err
		}
		rules = cfg.Classifier
	}

	from, err := parseBound(clFrom)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := parseBound(clTo)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	macro, err := dataset.LoadMacro(clMacroPath, from, to)
	if err != nil {
		return fmt.Errorf("load macro: %w", err)
	}

	timeline, err := cycle.Classify(macro, rules)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}

	fmt.Println("==================================================")
	fmt.Println(" Cycle Classification")
	fmt.Println("==================================================")
	fmt.Printf("Source:        %s\n", clMacroPath)
	stage, _ := timeline.Current()
	fmt.Printf("Periods:       %d\n", len(timeline.Entries))
	fmt.Printf("Current Stage: %s\n", stage)

	fmt.Println()
	fmt.Println("Stage Distribution")
	fmt.Println("--------------------------------------------------")
	printDistribution(os.Stdout, timeline)

	fmt.Println()
	fmt.Println("Transitions")
	fmt.Println("--------------------------------------------------")
	printTransitions(os.Stdout, timeline)

	if timeline.CarriedForward > 0 || timeline.SkippedLeading > 0 {
		fmt.Println()
		fmt.Printf("%d periods carried forward, %d leading periods skipped.\n",
			timeline.CarriedForward, timeline.SkippedLeading)
	}
	return nil
}

func parseBound(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad time %q", s)
	}
	return t, nil
}
