// Package verdict turns a fused belief assignment into a transparent
// editorial assessment: a publish/hold/reject decision for the leading
// hypothesis plus diagnostic signals carrying the inputs behind every number.
// It consumes the core belief operations and never re-derives them.
package verdict

import (
	"fmt"

	"github.com/Hyperpolymath/My-newsroom/internal/belief"
	"github.com/Hyperpolymath/My-newsroom/internal/model"
)

// Assessor derives verdicts from fused evidence.
type Assessor struct {
	publishThreshold float64
	rejectThreshold  float64
	wideIntervalWarn float64
}

// NewAssessor creates an assessor with the given thresholds.
func NewAssessor(cfg model.VerdictConfig) *Assessor {
	publish := cfg.PublishThreshold
	if publish <= 0 || publish > 1 {
		publish = 0.85
	}
	reject := cfg.RejectThreshold
	if reject < 0 || reject >= publish {
		reject = 0.15
	}
	wide := cfg.WideIntervalWarn
	if wide <= 0 || wide > 1 {
		wide = 0.4
	}
	return &Assessor{
		publishThreshold: publish,
		rejectThreshold:  reject,
		wideIntervalWarn: wide,
	}
}

// Assess evaluates the fused mass. The leading hypothesis is the single
// frame element with the highest belief; conflicts and source count feed the
// diagnostic signals.
func (a *Assessor) Assess(fused *belief.BeliefMass, conflicts []model.ConflictPair, sourceCount int) model.Verdict {
	frame := fused.Frame()

	leading, bel, pl := a.leadingHypothesis(fused)

	var signals []model.Signal

	// 1. Conflict profile across source pairs.
	if sig, ok := a.conflictSignal(conflicts); ok {
		signals = append(signals, sig)
	}

	// 2. Uncertainty interval width on the leading hypothesis.
	if width := pl - bel; width > a.wideIntervalWarn {
		signals = append(signals, model.Signal{
			Type:        model.SignalWideUncertainty,
			Severity:    model.SeverityWarning,
			Description: fmt.Sprintf("Wide uncertainty interval on %q: [%.2f, %.2f]", leading, bel, pl),
			Data: map[string]interface{}{
				"hypothesis":   leading,
				"belief":       bel,
				"plausibility": pl,
				"width":        width,
				"threshold":    a.wideIntervalWarn,
			},
		})
	}

	// 3. Ignorance check: most fused mass sitting on Θ means the evidence
	// says very little.
	if thetaMass := fused.MassOf(frame.Theta()); thetaMass > 0.5 {
		signals = append(signals, model.Signal{
			Type:        model.SignalDominantIgnorance,
			Severity:    model.SeverityWarning,
			Description: fmt.Sprintf("%.0f%% of fused mass on total ignorance", thetaMass*100),
			Data: map[string]interface{}{
				"theta_mass": thetaMass,
			},
		})
	}

	// 4. Single-source verdicts carry no corroboration.
	if sourceCount < 2 {
		signals = append(signals, model.Signal{
			Type:        model.SignalSingleSource,
			Severity:    model.SeverityWarning,
			Description: "Verdict rests on a single source; no corroboration possible",
			Data: map[string]interface{}{
				"sources": sourceCount,
			},
		})
	}

	decision := a.decide(bel, pl)
	confidence := a.confidence(bel, pl, sourceCount, signals)

	return model.Verdict{
		Decision:   decision,
		Hypothesis: leading,
		Belief:     bel,
		Confidence: confidence,
		Signals:    signals,
	}
}

// leadingHypothesis returns the frame element with the highest belief, with
// its uncertainty interval. Elements are scanned in canonical order so ties
// resolve deterministically.
func (a *Assessor) leadingHypothesis(fused *belief.BeliefMass) (string, float64, float64) {
	frame := fused.Frame()

	var leading string
	bestBel, bestPl := -1.0, 0.0
	for _, name := range frame.Elements() {
		fs := frame.MustSet(name)
		bel, pl := fused.UncertaintyInterval(fs)
		if bel > bestBel {
			leading, bestBel, bestPl = name, bel, pl
		}
	}
	return leading, bestBel, bestPl
}

// conflictSignal summarizes the pairwise conflict matrix.
func (a *Assessor) conflictSignal(conflicts []model.ConflictPair) (model.Signal, bool) {
	if len(conflicts) == 0 {
		return model.Signal{}, false
	}

	maxK := 0.0
	var worst model.ConflictPair
	for _, c := range conflicts {
		if c.K > maxK {
			maxK = c.K
			worst = c
		}
	}

	switch {
	case maxK >= 1-belief.MassTolerance:
		return model.Signal{
			Type:        model.SignalTotalConflict,
			Severity:    model.SeverityCritical,
			Description: fmt.Sprintf("Sources %q and %q are irreconcilable (K=1)", worst.Left, worst.Right),
			Data: map[string]interface{}{
				"left":  worst.Left,
				"right": worst.Right,
				"k":     maxK,
			},
		}, true
	case maxK > belief.HighConflictThreshold:
		return model.Signal{
			Type:        model.SignalHighConflict,
			Severity:    model.SeverityWarning,
			Description: fmt.Sprintf("High conflict between %q and %q (K=%.2f)", worst.Left, worst.Right, maxK),
			Data: map[string]interface{}{
				"left":      worst.Left,
				"right":     worst.Right,
				"k":         maxK,
				"threshold": belief.HighConflictThreshold,
			},
		}, true
	}
	return model.Signal{}, false
}

// decide applies the publish/reject thresholds to the leading hypothesis.
func (a *Assessor) decide(bel, pl float64) model.Decision {
	switch {
	case bel >= a.publishThreshold:
		return model.DecisionPublish
	case pl < a.rejectThreshold:
		return model.DecisionReject
	default:
		return model.DecisionHold
	}
}

// confidence grades the verdict. Any critical signal caps it at low;
// corroborated, tight evidence grades high.
func (a *Assessor) confidence(bel, pl float64, sourceCount int, signals []model.Signal) string {
	for _, s := range signals {
		if s.Severity == model.SeverityCritical {
			return "low"
		}
	}

	if sourceCount < 2 {
		return "low"
	}

	width := pl - bel
	switch {
	case bel >= a.publishThreshold && width <= 0.1:
		return "high"
	case bel >= 0.6:
		return "medium"
	default:
		return "low"
	}
}
