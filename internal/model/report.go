package model

import "time"

// Report is the complete fusion analysis for one scenario: the sources, the
// pairwise conflict structure, the fused assignment, and the editorial
// verdict derived from it.
type Report struct {
	Subject  string    `json:"subject"`            // What the scenario is about (e.g., "Laksa Origin")
	Scenario string    `json:"scenario,omitempty"` // Path of the scenario file, if loaded from disk
	FusedAt  time.Time `json:"fused_at"`           // When the analysis ran

	Frame []string `json:"frame"` // Hypotheses in the frame of discernment
	Rule  string   `json:"rule"`  // Fusion rule applied

	Sources   []SourceSummary `json:"sources"`             // Per-source inputs
	Conflicts []ConflictPair  `json:"conflicts,omitempty"` // Pairwise conflict matrix (upper triangle)

	Result  FusedResult `json:"result"`  // Fused assignment and derived measures
	Verdict Verdict     `json:"verdict"` // Editorial assessment

	Principles Principles `json:"principles"` // Core principles applied

	LLM *LLMSummary `json:"llm,omitempty"` // Optional LLM narrative (never affects the result)
}

// SourceSummary records one evidence source as supplied and as fused
// (after credibility discounting).
type SourceSummary struct {
	Name        string  `json:"name"`
	Credibility float64 `json:"credibility"` // 1.0 = taken at face value
	Masses      Masses  `json:"masses"`      // Focal element rendering -> mass
	Discounted  Masses  `json:"discounted,omitempty"` // After credibility discounting, if applied
}

// ConflictPair records the conflict mass K between two sources.
type ConflictPair struct {
	Left  string  `json:"left"`
	Right string  `json:"right"`
	K     float64 `json:"k"`
}

// FusedResult holds the fused assignment and the derived measures for each
// hypothesis, computed once by the pipeline from the core operations.
type FusedResult struct {
	Masses    Masses               `json:"masses"`    // Fused focal elements
	Intervals map[string]Interval  `json:"intervals"` // Per-hypothesis [Bel, Pl]
	Conflict  float64              `json:"conflict"`  // Maximum pairwise conflict between sources
}

// Masses maps a rendered focal element (e.g. "{true}") to its mass.
type Masses map[string]float64

// Interval is a [belief, plausibility] uncertainty interval.
type Interval struct {
	Belief       float64 `json:"belief"`
	Plausibility float64 `json:"plausibility"`
}

// Width returns the evidential ambiguity about the proposition.
func (i Interval) Width() float64 {
	return i.Plausibility - i.Belief
}

// Verdict is the transparent editorial assessment of the fused evidence.
type Verdict struct {
	Decision   Decision `json:"decision"`             // publish, hold, reject
	Hypothesis string   `json:"hypothesis,omitempty"` // Leading hypothesis, if any
	Belief     float64  `json:"belief"`               // Belief in the leading hypothesis
	Confidence string   `json:"confidence"`           // "low", "medium", "high"
	Signals    []Signal `json:"signals"`              // Diagnostic signals with transparent data
}

// Decision is the recommendation derived from the fused belief.
type Decision string

const (
	DecisionPublish Decision = "publish" // Belief exceeds the publish threshold
	DecisionHold    Decision = "hold"    // Evidence insufficient or ambiguous
	DecisionReject  Decision = "reject"  // Plausibility of the hypothesis is below the reject threshold
)

// Signal is a diagnostic with transparent data: every signal carries the
// inputs and formula behind it so reports are explainable.
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// SignalType classifies the diagnostic signal.
type SignalType string

const (
	SignalHighConflict      SignalType = "high_conflict"      // Pairwise or fold conflict above threshold
	SignalTotalConflict     SignalType = "total_conflict"     // Irreconcilable sources (K = 1)
	SignalWideUncertainty   SignalType = "wide_uncertainty"   // Large Bel/Pl gap on the leading hypothesis
	SignalDominantIgnorance SignalType = "dominant_ignorance" // Most fused mass on Θ
	SignalSingleSource      SignalType = "single_source"      // Verdict rests on one source
	SignalDiscounting       SignalType = "discounting"        // Credibility discounting was applied
)

// SignalSeverity indicates the importance of the signal.
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)

// Principles documents the analysis principles applied to every report.
type Principles struct {
	NonNormative bool `json:"non_normative"` // Measures evidential support, not truth
	Transparent  bool `json:"transparent"`   // All derived numbers are explainable
	Symmetric    bool `json:"symmetric"`     // Same combination rules for all sources
}

// DefaultPrinciples returns the standard principles.
func DefaultPrinciples() Principles {
	return Principles{
		NonNormative: true,
		Transparent:  true,
		Symmetric:    true,
	}
}

// LLMSummary contains an optional LLM-generated narrative.
// CRITICAL: this never affects the fused result and is clearly separated.
type LLMSummary struct {
	Enabled          bool     `json:"enabled"`
	Provider         string   `json:"provider,omitempty"`
	Model            string   `json:"model,omitempty"`
	StrictVocabulary bool     `json:"strict_vocabulary"`    // Whether frame-vocabulary enforcement was enabled
	SummaryMD        string   `json:"summary_md,omitempty"` // Markdown narrative
	Warnings         []string `json:"warnings,omitempty"`   // Any issues (e.g., vocabulary leaks detected)
}
