package belief

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// MassTolerance is the permitted floating-point drift for the total mass.
const MassTolerance = 1e-6

// BeliefMass is a basic probability assignment over a frame of discernment:
// a mapping from focal elements (non-empty subsets of the frame) to mass in
// (0, 1], summing to 1. Instances are immutable after construction and safe
// for concurrent use.
type BeliefMass struct {
	frame  *Frame
	masses map[FocalSet]float64
}

// New constructs a belief mass from the given assignment, validating eagerly.
// Construction fails with a ValidationError if any mass is negative, any
// focal element is empty or outside the frame, or the masses do not sum to 1
// within MassTolerance. Zero-mass entries are dropped; totals within
// tolerance are renormalized to exactly 1.
func New(frame *Frame, masses map[FocalSet]float64) (*BeliefMass, error) {
	if frame == nil {
		return nil, &ValidationError{Reason: "frame is required"}
	}
	if len(masses) == 0 {
		return nil, &ValidationError{Reason: "at least one focal element is required"}
	}

	theta := frame.Theta()
	total := 0.0
	copied := make(map[FocalSet]float64, len(masses))
	for fs, m := range masses {
		if m < 0 {
			return nil, &ValidationError{Reason: fmt.Sprintf("negative mass %g on %s", m, fs.String(frame))}
		}
		if m == 0 {
			continue
		}
		if fs.IsEmpty() {
			return nil, &ValidationError{Reason: "mass assigned to the empty set"}
		}
		if !fs.IsSubsetOf(theta) {
			return nil, &ValidationError{Reason: fmt.Sprintf("focal element %#x is outside the frame", uint64(fs))}
		}
		copied[fs] = m
		total += m
	}

	if len(copied) == 0 {
		return nil, &ValidationError{Reason: "all masses are zero"}
	}
	if math.Abs(total-1.0) > MassTolerance {
		return nil, &ValidationError{Reason: fmt.Sprintf("masses sum to %g, expected 1", total)}
	}

	// Renormalize drift within tolerance so downstream sums stay exact.
	if total != 1.0 {
		for fs := range copied {
			copied[fs] /= total
		}
	}

	return &BeliefMass{frame: frame, masses: copied}, nil
}

// NewFromElements constructs a belief mass from focal elements named by their
// hypotheses, e.g. {{"true"}: 0.85, {"true","false"}: 0.15}. The frame
// defaults to the union of all named elements when nil.
func NewFromElements(frame *Frame, assignment []ElementMass) (*BeliefMass, error) {
	if len(assignment) == 0 {
		return nil, &ValidationError{Reason: "at least one focal element is required"}
	}

	if frame == nil {
		var all []string
		for _, em := range assignment {
			all = append(all, em.Elements...)
		}
		var err error
		frame, err = NewFrame(all...)
		if err != nil {
			return nil, err
		}
	}

	masses := make(map[FocalSet]float64, len(assignment))
	for _, em := range assignment {
		if len(em.Elements) == 0 {
			return nil, &ValidationError{Reason: "mass assigned to the empty set"}
		}
		fs, err := frame.Set(em.Elements...)
		if err != nil {
			return nil, err
		}
		masses[fs] += em.Mass
	}

	return New(frame, masses)
}

// ElementMass names one focal element by its hypotheses and the mass on it.
type ElementMass struct {
	Elements []string
	Mass     float64
}

// Vacuous returns the vacuous belief mass: all mass on Θ, total ignorance.
func Vacuous(frame *Frame) *BeliefMass {
	return &BeliefMass{
		frame:  frame,
		masses: map[FocalSet]float64{frame.Theta(): 1.0},
	}
}

// Frame returns the frame of discernment the mass is defined over.
func (m *BeliefMass) Frame() *Frame {
	return m.frame
}

// MassOf returns the mass directly assigned to the given subset, 0 if the
// subset is not a focal element.
func (m *BeliefMass) MassOf(subset FocalSet) float64 {
	return m.masses[subset]
}

// FocalSets returns the focal elements in ascending bitmask order.
func (m *BeliefMass) FocalSets() []FocalSet {
	out := make([]FocalSet, 0, len(m.masses))
	for fs := range m.masses {
		out = append(out, fs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Belief returns the lower probability bound for the subset: the total mass
// of focal elements entirely contained in it. Bel(Θ) = 1, Bel(∅) = 0.
func (m *BeliefMass) Belief(subset FocalSet) float64 {
	if subset.IsEmpty() {
		return 0
	}
	total := 0.0
	for fs, mass := range m.masses {
		if fs.IsSubsetOf(subset) {
			total += mass
		}
	}
	return total
}

// Plausibility returns the upper probability bound for the subset: the total
// mass of focal elements overlapping it. Equals 1 - Bel(complement).
func (m *BeliefMass) Plausibility(subset FocalSet) float64 {
	total := 0.0
	for fs, mass := range m.masses {
		if !fs.Intersect(subset).IsEmpty() {
			total += mass
		}
	}
	return total
}

// UncertaintyInterval returns (Bel(subset), Pl(subset)). Belief never exceeds
// plausibility; the interval width measures evidential ambiguity.
func (m *BeliefMass) UncertaintyInterval(subset FocalSet) (float64, float64) {
	return m.Belief(subset), m.Plausibility(subset)
}

// IsValid re-checks the construction invariants. Derived masses (post-fusion)
// use it to catch numeric drift.
func (m *BeliefMass) IsValid() bool {
	if m.frame == nil || len(m.masses) == 0 {
		return false
	}
	theta := m.frame.Theta()
	total := 0.0
	for fs, mass := range m.masses {
		if mass < 0 || fs.IsEmpty() || !fs.IsSubsetOf(theta) {
			return false
		}
		total += mass
	}
	return math.Abs(total-1.0) <= MassTolerance
}

// String renders the assignment in canonical order, e.g.
// {true}:0.850 {true,false}:0.150.
func (m *BeliefMass) String() string {
	parts := make([]string, 0, len(m.masses))
	for _, fs := range m.FocalSets() {
		parts = append(parts, fmt.Sprintf("%s:%.3f", fs.String(m.frame), m.masses[fs]))
	}
	return strings.Join(parts, " ")
}
