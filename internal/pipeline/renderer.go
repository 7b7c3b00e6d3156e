package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Hyperpolymath/My-newsroom/internal/model"
)

// Renderer writes fusion reports as JSON, markdown, and terminal summaries
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as a human-readable markdown document
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Fusion Report: %s\n\n", report.Subject))
	sb.WriteString(fmt.Sprintf("- **Rule**: %s\n", report.Rule))
	sb.WriteString(fmt.Sprintf("- **Frame**: {%s}\n", strings.Join(report.Frame, ", ")))
	sb.WriteString(fmt.Sprintf("- **Sources**: %d\n", len(report.Sources)))
	sb.WriteString(fmt.Sprintf("- **Fused At**: %s\n\n", report.FusedAt.Format("2006-01-02 15:04:05 UTC")))

	sb.WriteString("## Verdict\n\n")
	sb.WriteString(fmt.Sprintf("**%s** (confidence: %s)\n\n", strings.ToUpper(string(report.Verdict.Decision)), report.Verdict.Confidence))
	if report.Verdict.Hypothesis != "" {
		sb.WriteString(fmt.Sprintf("Leading hypothesis: **%s** with belief %.3f\n\n", report.Verdict.Hypothesis, report.Verdict.Belief))
	}

	sb.WriteString("## Belief Intervals\n\n")
	sb.WriteString("| Hypothesis | Belief | Plausibility | Uncertainty |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, name := range report.Frame {
		iv := report.Result.Intervals[name]
		sb.WriteString(fmt.Sprintf("| %s | %.3f | %.3f | %.3f |\n", name, iv.Belief, iv.Plausibility, iv.Width()))
	}
	sb.WriteString("\n")

	sb.WriteString("## Fused Masses\n\n")
	sb.WriteString("| Focal Element | Mass |\n")
	sb.WriteString("|---|---|\n")
	for _, key := range sortedKeys(report.Result.Masses) {
		sb.WriteString(fmt.Sprintf("| %s | %.4f |\n", key, report.Result.Masses[key]))
	}
	sb.WriteString("\n")

	if len(report.Conflicts) > 0 {
		sb.WriteString("## Source Conflicts\n\n")
		sb.WriteString("| Source A | Source B | K |\n")
		sb.WriteString("|---|---|---|\n")
		for _, c := range report.Conflicts {
			sb.WriteString(fmt.Sprintf("| %s | %s | %.3f |\n", c.Left, c.Right, c.K))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Sources\n\n")
	for _, src := range report.Sources {
		sb.WriteString(fmt.Sprintf("### %s\n\n", src.Name))
		sb.WriteString(fmt.Sprintf("- Credibility: %.2f\n", src.Credibility))
		for _, key := range sortedKeys(src.Masses) {
			sb.WriteString(fmt.Sprintf("- m(%s) = %.4f\n", key, src.Masses[key]))
		}
		if len(src.Discounted) > 0 {
			sb.WriteString("- After discounting:\n")
			for _, key := range sortedKeys(src.Discounted) {
				sb.WriteString(fmt.Sprintf("  - m(%s) = %.4f\n", key, src.Discounted[key]))
			}
		}
		sb.WriteString("\n")
	}

	if len(report.Verdict.Signals) > 0 {
		sb.WriteString("## Signals\n\n")
		for _, sig := range report.Verdict.Signals {
			sb.WriteString(fmt.Sprintf("- **%s** [%s]: %s\n", sig.Type, sig.Severity, sig.Description))
		}
		sb.WriteString("\n")
	}

	if r.includeFooter {
		sb.WriteString("---\n\n")
		sb.WriteString("_Belief and plausibility bound evidential support for each hypothesis; they never assert truth. ")
		sb.WriteString("All numbers derive from the declared sources via the stated combination rule._\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderLLMMarkdown writes the pre-rendered LLM narrative to its own file,
// kept separate from the report proper
func (r *Renderer) RenderLLMMarkdown(markdown string, path string) error {
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write LLM markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a short report summary to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\n%s\n", report.Subject)
	fmt.Printf("  Rule:     %s\n", report.Rule)
	fmt.Printf("  Verdict:  %s (confidence: %s)\n", report.Verdict.Decision, report.Verdict.Confidence)
	if report.Verdict.Hypothesis != "" {
		iv := report.Result.Intervals[report.Verdict.Hypothesis]
		fmt.Printf("  Leading:  %s  Bel=%.3f  Pl=%.3f\n", report.Verdict.Hypothesis, iv.Belief, iv.Plausibility)
	}
	if report.Result.Conflict > 0 {
		fmt.Printf("  Conflict: K=%.3f\n", report.Result.Conflict)
	}
	for _, sig := range report.Verdict.Signals {
		if sig.Severity != model.SeverityInfo {
			fmt.Printf("  ! %s: %s\n", sig.Type, sig.Description)
		}
	}
}

func sortedKeys(m model.Masses) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
