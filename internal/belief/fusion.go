package belief

import (
	"fmt"
	"strings"
)

// Rule selects how fused conflict mass is redistributed.
type Rule int

const (
	// Dempster discards conflicting mass and normalizes the remainder by
	// (1-K). Strengthens agreement; undefined at total conflict.
	Dempster Rule = iota
	// Yager moves conflicting mass to total ignorance (Θ). Conservative;
	// always defined, degrades to the vacuous mass at K = 1.
	Yager
	// DuboisPrade routes each conflicting product to the union of the two
	// clashing focal elements, preserving which hypotheses disagreed.
	DuboisPrade
)

// HighConflictThreshold is the K above which Yager fusion attaches an
// advisory: reassigning that much mass to ignorance may mask informative
// disagreement.
const HighConflictThreshold = 0.9

// dempsterEpsilon guards the (1-K) division. K at or above 1-epsilon is
// treated as total conflict.
const dempsterEpsilon = 1e-9

func (r Rule) String() string {
	switch r {
	case Dempster:
		return "dempster"
	case Yager:
		return "yager"
	case DuboisPrade:
		return "dubois-prade"
	default:
		return fmt.Sprintf("rule(%d)", int(r))
	}
}

// ParseRule resolves a rule name as used in scenario files and CLI flags.
func ParseRule(name string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dempster", "":
		return Dempster, nil
	case "yager":
		return Yager, nil
	case "dubois-prade", "dubois_prade", "duboisprade", "dp":
		return DuboisPrade, nil
	default:
		return 0, fmt.Errorf("unknown fusion rule: %q (supported: dempster, yager, dubois-prade)", name)
	}
}

// Advisory is a non-fatal diagnostic attached to a fusion result. It is data,
// not a side effect: it never alters the fused mass and callers decide
// whether to surface it.
type Advisory struct {
	Rule    Rule
	K       float64
	Message string
}

// Fusion is the outcome of combining two belief masses: the fused assignment,
// the conflict between the inputs, and an optional advisory.
type Fusion struct {
	Mass     *BeliefMass
	Conflict float64
	Advisory *Advisory
}

// Fuse combines two belief masses over the same frame using the given rule.
// Inputs are never mutated. Dempster fails with a ConflictError at total or
// near-total conflict; Yager and Dubois-Prade always succeed. The returned
// mass satisfies the construction invariants: the engine renormalizes and
// revalidates rather than trusting the arithmetic.
func Fuse(m1, m2 *BeliefMass, rule Rule) (*Fusion, error) {
	if !m1.frame.Equal(m2.frame) {
		return nil, frameMismatch(m1.frame, m2.frame)
	}

	frame := m1.frame
	raw := make(map[FocalSet]float64, len(m1.masses)*len(m2.masses))

	// Phase 1: raw combination. Every product lands on the intersection;
	// what accumulates on ∅ is the conflict K. Dubois-Prade reroutes the
	// conflicting products to unions instead, conserving mass up front.
	k := 0.0
	for a, ma := range m1.masses {
		for b, mb := range m2.masses {
			p := ma * mb
			inter := a.Intersect(b)
			if inter.IsEmpty() {
				k += p
				if rule == DuboisPrade {
					raw[a.Union(b)] += p
				}
			} else {
				raw[inter] += p
			}
		}
	}
	if k > 1 {
		k = 1
	}

	// Phase 2: rule-specific redistribution of the conflict mass.
	var advisory *Advisory
	switch rule {
	case Dempster:
		if k >= 1-dempsterEpsilon {
			return nil, &ConflictError{K: k}
		}
		norm := 1 - k
		for fs := range raw {
			raw[fs] /= norm
		}
	case Yager:
		if k > 0 {
			raw[frame.Theta()] += k
		}
		if k > HighConflictThreshold {
			advisory = &Advisory{
				Rule:    Yager,
				K:       k,
				Message: fmt.Sprintf("conflict K=%.4f exceeds %.2f: most fused mass moved to total ignorance", k, HighConflictThreshold),
			}
		}
	case DuboisPrade:
		// Conflicting products were already routed to unions in phase 1.
	default:
		return nil, fmt.Errorf("unknown fusion rule: %v", rule)
	}

	fused, err := New(frame, raw)
	if err != nil {
		return nil, fmt.Errorf("fusion produced invalid mass: %w", err)
	}

	return &Fusion{Mass: fused, Conflict: k, Advisory: advisory}, nil
}

// FuseAll folds Fuse over the sources strictly left to right and returns the
// accumulated mass with the advisories gathered along the way. At least one
// source is required; a single source is returned unchanged. Dempster is
// associative so its result is order-independent; Yager and Dubois-Prade are
// commutative pairwise but not associative, and the left-to-right order is
// part of this function's defined semantics.
func FuseAll(sources []*BeliefMass, rule Rule) (*BeliefMass, []Advisory, error) {
	if len(sources) == 0 {
		return nil, nil, &ValidationError{Reason: "at least one source is required"}
	}

	for _, s := range sources[1:] {
		if !s.frame.Equal(sources[0].frame) {
			return nil, nil, frameMismatch(sources[0].frame, s.frame)
		}
	}

	acc := sources[0]
	var advisories []Advisory
	for _, s := range sources[1:] {
		result, err := Fuse(acc, s, rule)
		if err != nil {
			return nil, advisories, err
		}
		if result.Advisory != nil {
			advisories = append(advisories, *result.Advisory)
		}
		acc = result.Mass
	}
	return acc, advisories, nil
}
