package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/Hyperpolymath/My-newsroom/internal/model"
)

// Summarizer generates optional LLM narratives for fusion reports. The
// narrative never affects the fused result or the verdict; failures degrade
// to warnings instead of failing the analysis.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer from configuration. An empty provider
// name yields a disabled summarizer, not an error.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// ProviderName returns the configured provider name, or "" when disabled.
func (s *Summarizer) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary produces an LLM narrative for the report. The vocabulary
// allowlist is the report's frame of discernment.
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.Report) (*model.LLMSummary, error) {
	if s.provider == nil {
		return nil, nil
	}

	if !s.provider.IsAvailable(ctx) {
		return &model.LLMSummary{
			Enabled:          false,
			Provider:         s.provider.Name(),
			StrictVocabulary: s.config.StrictVocabulary,
			Warnings: []string{
				fmt.Sprintf("LLM provider %s is not available - summary skipped", s.provider.Name()),
			},
		}, nil
	}

	req := SummarizeRequest{
		Report:     report,
		Vocabulary: report.Frame,
		Model:      s.config.Model,
		MaxTokens:  s.config.MaxTokens,
	}

	resp, err := s.provider.Summarize(ctx, req)
	if err != nil {
		// Graceful degradation: the fused result stands on its own
		return &model.LLMSummary{
			Enabled:          true,
			Provider:         s.provider.Name(),
			Model:            s.config.Model,
			StrictVocabulary: s.config.StrictVocabulary,
			Warnings: []string{
				fmt.Sprintf("LLM summary generation failed: %v", err),
			},
		}, nil
	}

	summary := &model.LLMSummary{
		Enabled:          true,
		Provider:         s.provider.Name(),
		Model:            resp.Model,
		StrictVocabulary: s.config.StrictVocabulary,
		SummaryMD:        resp.Summary,
		Warnings: []string{
			fmt.Sprintf("Tokens used: %d", resp.TokensUsed),
			fmt.Sprintf("Verified %d hypothesis mentions against the frame", len(resp.Mentioned)),
		},
	}

	return summary, nil
}

// RenderSeparateMarkdown renders the LLM summary as a clearly separated
// markdown section. Returns "" when no summary was generated.
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	if summary == nil || !summary.Enabled {
		return ""
	}

	var sb strings.Builder

	sb.WriteString("# LLM Summary\n\n")
	sb.WriteString("> **GENERATED CONTENT**: This narrative was produced by a language model.\n")
	sb.WriteString("> The fused masses, intervals, and verdict above were determined independently\n")
	sb.WriteString("> by the combination rules and are not affected by this section.\n\n")

	sb.WriteString(fmt.Sprintf("- **Provider**: %s\n", summary.Provider))
	if summary.Model != "" {
		sb.WriteString(fmt.Sprintf("- **Model**: %s\n", summary.Model))
	}
	sb.WriteString(fmt.Sprintf("- **Strict Vocabulary Mode**: %t\n\n", summary.StrictVocabulary))

	if summary.SummaryMD != "" {
		sb.WriteString(summary.SummaryMD)
		sb.WriteString("\n")
	} else {
		sb.WriteString("_No summary generated._\n")
	}

	if len(summary.Warnings) > 0 {
		sb.WriteString("\n## Notes\n\n")
		for _, warning := range summary.Warnings {
			sb.WriteString(fmt.Sprintf("- %s\n", warning))
		}
	}

	return sb.String()
}
