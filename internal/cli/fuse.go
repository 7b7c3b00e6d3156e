package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Hyperpolymath/My-newsroom/internal/belief"
	"github.com/Hyperpolymath/My-newsroom/internal/model"
	"github.com/Hyperpolymath/My-newsroom/internal/pipeline"
	"github.com/Hyperpolymath/My-newsroom/internal/scenario"
)

var (
	outJSON     string
	outMD       string
	ruleFlag    string
	timeout     time.Duration
	noCache     bool
	noFooter    bool
	publishAt   float64
	rejectAt    float64
	llmEnabled  bool
	llmProvider string
	llmModel    string
	httpProxy   string
	httpsProxy  string
)

// fuseCmd represents the fuse command
var fuseCmd = &cobra.Command{
	Use:   "fuse <scenario.yaml>",
	Short: "Fuse the sources of a scenario and generate a report",
	Long: `Fuse loads a scenario file, combines its evidence sources with the
selected rule, and generates a transparent report:
- Pairwise conflict between every source pair
- Fused belief masses over the frame of discernment
- Belief/plausibility intervals for each hypothesis
- A publish/hold/reject verdict with diagnostic signals

Example:
  newsroom fuse laksa.yaml
  newsroom fuse laksa.yaml --rule yager --json report.json --md report.md
  newsroom fuse laksa.yaml --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runFuse,
}

func init() {
	rootCmd.AddCommand(fuseCmd)

	// Output flags
	fuseCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	fuseCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// Fusion flags
	fuseCmd.Flags().StringVar(&ruleFlag, "rule", "", "combination rule override (dempster, yager, dubois-prade)")
	fuseCmd.Flags().Float64Var(&publishAt, "publish-threshold", 0.85, "belief required to publish")
	fuseCmd.Flags().Float64Var(&rejectAt, "reject-threshold", 0.15, "plausibility below which to reject")
	fuseCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout (matters only with LLM summaries)")
	fuseCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable report cache (force recomputation)")
	fuseCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	fuseCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	fuseCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	fuseCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	fuseCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL for LLM calls (overrides HTTP_PROXY env var)")
	fuseCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL for LLM calls (overrides HTTPS_PROXY env var)")
}

func runFuse(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Fusing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg)

	var report *model.Report
	if ruleFlag != "" {
		// A rule override changes the semantics of the run, so bypass the
		// digest-keyed cache and fuse the loaded scenario directly.
		rule, err := belief.ParseRule(ruleFlag)
		if err != nil {
			return err
		}
		scn, err := scenario.Load(path)
		if err != nil {
			return err
		}
		scn.Rule = rule
		report, err = p.Analyze(ctx, scn)
		if err != nil {
			return fmt.Errorf("fuse failed: %w", err)
		}
	} else {
		report, err = p.AnalyzeFile(ctx, path)
		if err != nil {
			return fmt.Errorf("fuse failed: %w", err)
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Fused %d sources under %s\n", len(report.Sources), report.Rule)
		fmt.Fprintf(os.Stderr, "✓ Verdict: %s\n", report.Verdict.Decision)
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM summary using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	// Render outputs
	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfig assembles the effective configuration from defaults and flags
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter
	cfg.Verdict.PublishThreshold = publishAt
	cfg.Verdict.RejectThreshold = rejectAt

	// Configure LLM if enabled
	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		cfg.LLM.StrictVocabulary = true // Always enforce
		cfg.LLM.HTTPProxy = httpProxy
		cfg.LLM.HTTPSProxy = httpsProxy

		// Get API key from environment
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			baseURL := os.Getenv("OLLAMA_BASE_URL")
			if baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}
