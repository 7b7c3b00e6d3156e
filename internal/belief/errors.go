package belief

import "fmt"

// ValidationError reports malformed belief mass input: negative mass, an
// empty focal element, a focal element outside the frame, or masses that do
// not sum to 1 within tolerance.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid belief mass: " + e.Reason
}

// FrameMismatchError reports an operation over belief masses built on
// different frames. Fusing or comparing across frames is meaningless.
type FrameMismatchError struct {
	Left  []string
	Right []string
}

func (e *FrameMismatchError) Error() string {
	return fmt.Sprintf("frame mismatch: %v vs %v", e.Left, e.Right)
}

// ConflictError reports total or near-total conflict under Dempster's rule,
// where normalization by (1-K) is undefined.
type ConflictError struct {
	K float64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("total conflict (K=%.6f): Dempster normalization undefined; consider Yager or Dubois-Prade", e.K)
}

func frameMismatch(a, b *Frame) *FrameMismatchError {
	return &FrameMismatchError{Left: a.Elements(), Right: b.Elements()}
}
