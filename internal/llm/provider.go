package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Hyperpolymath/My-newsroom/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a narrative summary of the fusion report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Report is the fusion report to summarize
	Report model.Report

	// Vocabulary is the STRICT allowlist of hypothesis names the LLM can
	// discuss. This keeps the narrative anchored to the frame of discernment -
	// the LLM cannot introduce hypotheses the sources never assigned mass to.
	Vocabulary []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated summary text
	Summary string

	// Mentioned are the frame hypotheses the LLM actually discussed
	// (for verification)
	Mentioned []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// StrictVocabulary enforces the frame-hypothesis allowlist
	StrictVocabulary bool

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:         "", // Disabled by default
		Model:            "",
		Timeout:          30,
		StrictVocabulary: true,
		MaxTokens:        1000,
	}
}

// BuildPrompt constructs the default prompt for summarization. The narrative
// describes evidential support, never truth: belief and plausibility are
// bounds on support, and the verdict is a recommendation, not a fact claim.
func BuildPrompt(report model.Report, vocabulary []string) string {
	prompt := fmt.Sprintf(`You are summarizing a belief-fusion report. The system combines evidence sources with Dempster-Shafer theory - it measures how well hypotheses are SUPPORTED, it NEVER asserts truth.

CRITICAL RULES:
1. You MUST ONLY discuss hypotheses from this allowed list:
%s

2. DO NOT introduce hypotheses, sources, or facts beyond the report.
3. If support is weak or ambiguous, state that explicitly.
4. Focus on SUPPORT, not truth. Use phrases like:
   - "Belief in X reaches..."
   - "The sources conflict on..."
   - "Uncertainty remains wide for..."
5. Never say "X is true" or "X is false" - only describe evidential support.

Report Summary:
- Subject: %s
- Fusion Rule: %s
- Sources Combined: %d
- Conflict: %.3f
- Verdict: %s (confidence: %s)
`, joinVocabulary(vocabulary), report.Subject, report.Rule, len(report.Sources), report.Result.Conflict, report.Verdict.Decision, report.Verdict.Confidence)

	if report.Verdict.Hypothesis != "" {
		prompt += fmt.Sprintf("- Leading Hypothesis: %s (belief %.3f)\n", report.Verdict.Hypothesis, report.Verdict.Belief)
	}

	if len(report.Result.Intervals) > 0 {
		prompt += "\nBelief/Plausibility Intervals:\n"
		hypotheses := make([]string, 0, len(report.Result.Intervals))
		for h := range report.Result.Intervals {
			hypotheses = append(hypotheses, h)
		}
		sort.Strings(hypotheses)
		for _, h := range hypotheses {
			iv := report.Result.Intervals[h]
			prompt += fmt.Sprintf("- %s: [%.3f, %.3f]\n", h, iv.Belief, iv.Plausibility)
		}
	}

	// Add top 3 signals
	if len(report.Verdict.Signals) > 0 {
		prompt += "\nKey Signals:\n"
		for i, signal := range report.Verdict.Signals {
			if i >= 3 {
				break
			}
			prompt += fmt.Sprintf("- %s: %s\n", signal.Type, signal.Description)
		}
	}

	prompt += "\nProvide a 3-4 sentence summary focusing on support and conflict, not truth."

	return prompt
}

// Helper functions

func joinVocabulary(hypotheses []string) string {
	if len(hypotheses) == 0 {
		return "(No hypotheses available)"
	}
	result := ""
	for _, h := range hypotheses {
		result += fmt.Sprintf("\n- %s", h)
	}
	return result
}

// mentionedHypotheses returns the allowed hypotheses that appear in the
// summary text, case-insensitively.
func mentionedHypotheses(summary string, vocabulary []string) []string {
	lower := strings.ToLower(summary)
	var mentioned []string
	for _, h := range vocabulary {
		if strings.Contains(lower, strings.ToLower(h)) {
			mentioned = append(mentioned, h)
		}
	}
	return mentioned
}

// verifyVocabulary enforces strict vocabulary mode: a narrative that names
// none of the frame hypotheses has drifted off the frame and is rejected.
func verifyVocabulary(summary string, vocabulary []string) ([]string, error) {
	mentioned := mentionedHypotheses(summary, vocabulary)
	if len(vocabulary) > 0 && len(mentioned) == 0 {
		return nil, fmt.Errorf("VOCABULARY DRIFT: summary names none of the frame hypotheses")
	}
	return mentioned, nil
}
