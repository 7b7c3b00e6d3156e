package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Hyperpolymath/My-newsroom/internal/belief"
	"github.com/Hyperpolymath/My-newsroom/internal/model"
	"github.com/Hyperpolymath/My-newsroom/internal/pipeline"
	"github.com/Hyperpolymath/My-newsroom/internal/scenario"
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <scenario.yaml>",
	Short: "Fuse a scenario under all three rules side by side",
	Long: `Compare runs the same scenario through Dempster, Yager, and
Dubois-Prade and prints the results side by side. The comparison makes the
character of each rule visible: Dempster renormalizes conflict away (and
refuses at total conflict), Yager moves it to total ignorance, Dubois-Prade
preserves it on unions.

Example:
  newsroom compare contested.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

var compareRules = []belief.Rule{belief.Dempster, belief.Yager, belief.DuboisPrade}

func runCompare(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx := context.Background()

	scn, err := scenario.Load(path)
	if err != nil {
		return err
	}

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false // Three rule variants would thrash the digest cache
	cfg.Output.Verbose = verbose
	p := pipeline.NewPipeline(cfg)

	reports := make(map[belief.Rule]*model.Report, len(compareRules))
	failures := make(map[belief.Rule]error, len(compareRules))

	for _, rule := range compareRules {
		scn.Rule = rule
		report, err := p.Analyze(ctx, scn)
		if err != nil {
			failures[rule] = err
			continue
		}
		reports[rule] = report
	}

	if len(reports) == 0 {
		return fmt.Errorf("all rules failed; first error: %w", failures[compareRules[0]])
	}

	printComparison(scn, reports, failures)
	return nil
}

func printComparison(scn *scenario.Scenario, reports map[belief.Rule]*model.Report, failures map[belief.Rule]error) {
	fmt.Printf("\n%s  (%d sources)\n\n", scn.Subject, len(scn.Sources))

	// Any surviving report carries the shared conflict matrix
	for _, report := range reports {
		if report.Result.Conflict > 0 {
			fmt.Printf("Max pairwise conflict: K=%.3f\n\n", report.Result.Conflict)
		}
		break
	}

	fmt.Printf("%-24s", "Hypothesis")
	for _, rule := range compareRules {
		fmt.Printf("  %-18s", rule)
	}
	fmt.Println()

	for _, name := range scn.Frame.Elements() {
		fmt.Printf("%-24s", name)
		for _, rule := range compareRules {
			report, ok := reports[rule]
			if !ok {
				fmt.Printf("  %-18s", "-")
				continue
			}
			iv := report.Result.Intervals[name]
			fmt.Printf("  [%.3f, %.3f]    ", iv.Belief, iv.Plausibility)
		}
		fmt.Println()
	}

	fmt.Printf("\n%-24s", "Verdict")
	for _, rule := range compareRules {
		report, ok := reports[rule]
		if !ok {
			fmt.Printf("  %-18s", "failed")
			continue
		}
		fmt.Printf("  %-18s", report.Verdict.Decision)
	}
	fmt.Println()

	for rule, err := range failures {
		fmt.Fprintf(os.Stderr, "\n✗ %s: %v\n", rule, err)
	}
	fmt.Println()
}
