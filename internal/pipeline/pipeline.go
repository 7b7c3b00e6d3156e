// Package pipeline orchestrates a full scenario analysis: pairwise conflict
// measurement, fusion, verdict assessment, report assembly, caching, and the
// optional LLM narrative. The core belief operations stay in internal/belief;
// this package only sequences them.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Hyperpolymath/My-newsroom/internal/belief"
	"github.com/Hyperpolymath/My-newsroom/internal/cache"
	"github.com/Hyperpolymath/My-newsroom/internal/llm"
	"github.com/Hyperpolymath/My-newsroom/internal/model"
	"github.com/Hyperpolymath/My-newsroom/internal/scenario"
	"github.com/Hyperpolymath/My-newsroom/internal/verdict"
	"github.com/Hyperpolymath/My-newsroom/internal/worker"
)

// Pipeline orchestrates the complete analysis of a scenario
type Pipeline struct {
	assessor   *verdict.Assessor
	renderer   *Renderer
	summarizer *llm.Summarizer // Optional LLM summarizer (nil if disabled)
	cache      cache.Cache     // Optional report cache (nil if disabled)
	limiter    *worker.Limiter // Paces LLM API calls
	config     *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	// Create LLM summarizer if configured
	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		llmConfig := llm.ConfigFromModel(cfg.LLM)
		s, err := llm.NewSummarizer(llmConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	var reportCache cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			if home, err := os.UserHomeDir(); err == nil {
				dir = filepath.Join(home, ".newsroom", "cache")
			}
		}
		reportCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		assessor:   verdict.NewAssessor(cfg.Verdict),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		summarizer: summarizer,
		cache:      reportCache,
		limiter:    worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize),
		config:     cfg,
	}
}

// Analyze fuses a loaded scenario and generates a complete report
func (p *Pipeline) Analyze(ctx context.Context, scn *scenario.Scenario) (*model.Report, error) {
	frame := scn.Frame
	masses := scn.Masses()

	// 1. Pairwise conflict matrix (upper triangle). Measured on the inputs
	// the fusion actually consumes, i.e. after discounting.
	var conflicts []model.ConflictPair
	for i := 0; i < len(scn.Sources); i++ {
		for j := i + 1; j < len(scn.Sources); j++ {
			k, err := belief.Conflict(masses[i], masses[j])
			if err != nil {
				return nil, fmt.Errorf("conflict %s/%s: %w", scn.Sources[i].Name, scn.Sources[j].Name, err)
			}
			conflicts = append(conflicts, model.ConflictPair{
				Left:  scn.Sources[i].Name,
				Right: scn.Sources[j].Name,
				K:     k,
			})
		}
	}

	// 2. Fuse all sources in declaration order
	fused, advisories, err := belief.FuseAll(masses, scn.Rule)
	if err != nil {
		return nil, fmt.Errorf("fuse: %w", err)
	}

	// 3. Derive per-hypothesis intervals and render the fused assignment
	result := model.FusedResult{
		Masses:    renderMasses(fused),
		Intervals: make(map[string]model.Interval, frame.Size()),
	}
	for _, name := range frame.Elements() {
		fs := frame.MustSet(name)
		bel, pl := fused.UncertaintyInterval(fs)
		result.Intervals[name] = model.Interval{Belief: bel, Plausibility: pl}
	}
	for _, c := range conflicts {
		if c.K > result.Conflict {
			result.Conflict = c.K
		}
	}

	// 4. Assess the verdict
	vd := p.assessor.Assess(fused, conflicts, len(scn.Sources))

	// 5. Fold-level advisories and discounting become signals alongside the
	// assessor's own
	for _, adv := range advisories {
		vd.Signals = append(vd.Signals, model.Signal{
			Type:        model.SignalHighConflict,
			Severity:    model.SeverityWarning,
			Description: fmt.Sprintf("Fold step under %s: %s", adv.Rule, adv.Message),
			Data: map[string]interface{}{
				"rule": adv.Rule.String(),
				"k":    adv.K,
			},
		})
	}
	if names := discountedSources(scn); len(names) > 0 {
		vd.Signals = append(vd.Signals, model.Signal{
			Type:        model.SignalDiscounting,
			Severity:    model.SeverityInfo,
			Description: fmt.Sprintf("Credibility discounting applied to %d source(s)", len(names)),
			Data: map[string]interface{}{
				"sources": names,
			},
		})
	}

	// 6. Build report (without LLM summary yet)
	report := &model.Report{
		Subject:    scn.Subject,
		Scenario:   scn.Path,
		FusedAt:    time.Now().UTC(),
		Frame:      frame.Elements(),
		Rule:       scn.Rule.String(),
		Sources:    summarizeSources(scn),
		Conflicts:  conflicts,
		Result:     result,
		Verdict:    vd,
		Principles: model.DefaultPrinciples(),
	}

	// 7. Generate LLM summary if enabled (AFTER the verdict, never affects it)
	if p.summarizer != nil && p.summarizer.IsEnabled() {
		if err := p.limiter.Wait(ctx, p.summarizer.ProviderName()); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
		llmSummary, err := p.summarizer.GenerateSummary(ctx, *report)
		if err != nil {
			// Don't fail the entire analysis, just warn
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		} else if llmSummary != nil {
			report.LLM = llmSummary
		}
	}

	return report, nil
}

// AnalyzeFile loads, fuses, and caches a scenario file. Cached reports are
// keyed by the scenario content digest, so edits invalidate naturally. The
// cache is bypassed when the LLM narrative is enabled: narratives are not
// reproducible and a stale one would misrepresent the run.
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (*model.Report, error) {
	scn, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}

	useCache := p.cache != nil && (p.summarizer == nil || !p.summarizer.IsEnabled())
	key := cache.Key(scn.Digest())

	if useCache {
		if data, ok := p.cache.Get(key); ok {
			var report model.Report
			if err := json.Unmarshal(data, &report); err == nil {
				report.Scenario = path
				return &report, nil
			}
			// Corrupt entry: fall through and recompute
			_ = p.cache.Delete(key)
		}
	}

	report, err := p.Analyze(ctx, scn)
	if err != nil {
		return nil, err
	}

	if useCache {
		if data, err := json.Marshal(report); err == nil {
			_ = p.cache.Set(key, data, p.config.Cache.MemoryTTL)
		}
	}

	return report, nil
}

// RenderReport renders the report to the specified outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string, verbose bool) error {
	// Render JSON
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	// Render Markdown
	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	// Render LLM summary to separate file if present
	if report.LLM != nil && report.LLM.Enabled && mdPath != "" {
		llmMdPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
		llmMarkdown := llm.RenderSeparateMarkdown(report.LLM)
		if err := p.renderer.RenderLLMMarkdown(llmMarkdown, llmMdPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to write LLM summary: %v\n", err)
		} else if verbose {
			fmt.Printf("✓ Wrote LLM Summary: %s\n", llmMdPath)
		}
	}

	// Print summary to stdout
	p.renderer.RenderSummary(report)

	return nil
}

// renderMasses converts a fused assignment into its serializable form.
func renderMasses(m *belief.BeliefMass) model.Masses {
	frame := m.Frame()
	out := make(model.Masses, len(m.FocalSets()))
	for _, fs := range m.FocalSets() {
		out[fs.String(frame)] = m.MassOf(fs)
	}
	return out
}

func summarizeSources(scn *scenario.Scenario) []model.SourceSummary {
	out := make([]model.SourceSummary, len(scn.Sources))
	for i := range scn.Sources {
		src := &scn.Sources[i]
		summary := model.SourceSummary{
			Name:        src.Name,
			Credibility: src.Credibility,
			Masses:      src.Raw,
		}
		if src.Discounted {
			summary.Discounted = renderMasses(src.Mass)
		}
		out[i] = summary
	}
	return out
}

func discountedSources(scn *scenario.Scenario) []string {
	var names []string
	for i := range scn.Sources {
		if scn.Sources[i].Discounted {
			names = append(names, scn.Sources[i].Name)
		}
	}
	return names
}
