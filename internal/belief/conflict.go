package belief

import "sort"

// Conflict computes the pairwise conflict mass K between two sources: the
// total product mass falling on empty intersections. K = 0 means the sources
// agree on at least some overlap everywhere; K = 1 means every pair of focal
// elements is disjoint. The products are summed in sorted order so that
// Conflict(m1, m2) and Conflict(m2, m1) are exactly equal.
func Conflict(m1, m2 *BeliefMass) (float64, error) {
	if !m1.frame.Equal(m2.frame) {
		return 0, frameMismatch(m1.frame, m2.frame)
	}

	var terms []float64
	for a, ma := range m1.masses {
		for b, mb := range m2.masses {
			if a.Intersect(b).IsEmpty() {
				terms = append(terms, ma*mb)
			}
		}
	}

	sort.Float64s(terms)
	k := 0.0
	for _, p := range terms {
		k += p
	}

	// Clamp float drift at the boundaries.
	if k < 0 {
		k = 0
	}
	if k > 1 {
		k = 1
	}
	return k, nil
}
