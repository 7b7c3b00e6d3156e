package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Hyperpolymath/My-newsroom/internal/pipeline"
	"github.com/Hyperpolymath/My-newsroom/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	// noCache, noFooter, and the LLM flags are defined in fuse.go and shared here
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <input>",
	Short: "Fuse multiple scenarios in parallel",
	Long: `Batch processes multiple scenario files concurrently:
- A directory is walked for *.yaml and *.yml scenarios
- A .txt file is read as a list of scenario paths (one per line)
- Scenarios are fused in parallel with a configurable worker count
- Each scenario gets its own JSON and Markdown report

Example:
  newsroom batch ./scenarios
  newsroom batch scenarios.txt --concurrency 10 --output-dir ./reports
  newsroom batch ./scenarios --llm ollama --llm-model llama3.1`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./newsroom-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable report cache (force recomputation)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().Float64Var(&publishAt, "publish-threshold", 0.85, "belief required to publish")
	batchCmd.Flags().Float64Var(&rejectAt, "reject-threshold", 0.15, "plausibility below which to reject")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL for LLM calls (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL for LLM calls (overrides HTTPS_PROXY env var)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Newsroom Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:        %s\n", input)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	if llmEnabled {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", llmProvider, llmModel)
	}

	// Create output directory
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Create pipeline and batch processor
	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, concurrency)

	fmt.Fprintf(os.Stderr, "⚙️  Resolving scenarios...\n")
	paths, err := worker.ResolveScenarioPaths(input)
	if err != nil {
		return fmt.Errorf("resolve scenarios: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Found %d scenarios\n", len(paths))
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "⚙️  Fusing with %d workers...\n", concurrency)
	fmt.Fprintf(os.Stderr, "\n")

	results := processor.ProcessPaths(ctx, paths)

	// Process results
	successCount := 0
	failureCount := 0

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		successCount++

		// Generate output file names
		slug := sanitizeFilename(result.Report.Subject)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Path, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s: %s (%s)\n", result.Report.Subject, result.Report.Verdict.Decision, result.Report.Verdict.Confidence)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d scenarios\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// sanitizeFilename sanitizes a subject for use as a filename
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(strings.TrimSpace(s))

	// Limit length
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "report"
	}

	return s
}
