package belief

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"
)

// MaxFrameSize is the largest supported frame of discernment. Focal sets are
// single machine words, so the frame cannot exceed the word width.
const MaxFrameSize = 64

// Frame is an immutable frame of discernment: the finite set of mutually
// exclusive, exhaustive hypotheses under consideration. Two belief masses are
// comparable only when built over the same frame.
type Frame struct {
	elements []string
	index    map[string]int
}

// NewFrame creates a frame from the given hypothesis names. Names are
// deduplicated and sorted so that frames built from the same elements in any
// order are equal.
func NewFrame(elements ...string) (*Frame, error) {
	if len(elements) == 0 {
		return nil, &ValidationError{Reason: "frame must contain at least one element"}
	}

	seen := make(map[string]bool, len(elements))
	unique := make([]string, 0, len(elements))
	for _, e := range elements {
		e = strings.TrimSpace(e)
		if e == "" {
			return nil, &ValidationError{Reason: "frame element name must not be empty"}
		}
		if !seen[e] {
			seen[e] = true
			unique = append(unique, e)
		}
	}

	if len(unique) > MaxFrameSize {
		return nil, &ValidationError{
			Reason: fmt.Sprintf("frame has %d elements, maximum is %d", len(unique), MaxFrameSize),
		}
	}

	sort.Strings(unique)

	index := make(map[string]int, len(unique))
	for i, e := range unique {
		index[e] = i
	}

	return &Frame{elements: unique, index: index}, nil
}

// Size returns the number of hypotheses in the frame.
func (f *Frame) Size() int {
	return len(f.elements)
}

// Elements returns the hypothesis names in canonical (sorted) order.
func (f *Frame) Elements() []string {
	out := make([]string, len(f.elements))
	copy(out, f.elements)
	return out
}

// Equal reports whether two frames contain the same hypotheses.
func (f *Frame) Equal(other *Frame) bool {
	if f == other {
		return true
	}
	if other == nil || len(f.elements) != len(other.elements) {
		return false
	}
	for i, e := range f.elements {
		if other.elements[i] != e {
			return false
		}
	}
	return true
}

// Theta returns the focal set covering the whole frame (total ignorance).
func (f *Frame) Theta() FocalSet {
	if len(f.elements) == MaxFrameSize {
		return FocalSet(^uint64(0))
	}
	return FocalSet(uint64(1)<<uint(len(f.elements)) - 1)
}

// Set builds the focal set containing the named hypotheses. Unknown names
// return a ValidationError.
func (f *Frame) Set(names ...string) (FocalSet, error) {
	var s FocalSet
	for _, n := range names {
		i, ok := f.index[strings.TrimSpace(n)]
		if !ok {
			return 0, &ValidationError{Reason: fmt.Sprintf("element %q is not in the frame", n)}
		}
		s |= FocalSet(uint64(1) << uint(i))
	}
	return s, nil
}

// MustSet is Set for static element names; it panics on unknown names.
// Intended for tests and fixed demo scenarios.
func (f *Frame) MustSet(names ...string) FocalSet {
	s, err := f.Set(names...)
	if err != nil {
		panic(err)
	}
	return s
}

// FocalSet is a subset of a frame encoded as a bitmask, one bit per frame
// element in canonical order. Set algebra is single-word arithmetic and a
// focal set hashes as an integer.
type FocalSet uint64

// Intersect returns the intersection of two focal sets.
func (s FocalSet) Intersect(other FocalSet) FocalSet {
	return s & other
}

// Union returns the union of two focal sets.
func (s FocalSet) Union(other FocalSet) FocalSet {
	return s | other
}

// IsEmpty reports whether the focal set contains no elements.
func (s FocalSet) IsEmpty() bool {
	return s == 0
}

// IsSubsetOf reports whether every element of s is also in other.
func (s FocalSet) IsSubsetOf(other FocalSet) bool {
	return s&^other == 0
}

// Count returns the number of elements in the focal set.
func (s FocalSet) Count() int {
	return bits.OnesCount64(uint64(s))
}

// Complement returns the focal set of frame elements not in s.
func (s FocalSet) Complement(frame *Frame) FocalSet {
	return frame.Theta() &^ s
}

// Elements returns the hypothesis names contained in the focal set.
func (s FocalSet) Elements(frame *Frame) []string {
	var out []string
	for i, e := range frame.elements {
		if s&FocalSet(uint64(1)<<uint(i)) != 0 {
			out = append(out, e)
		}
	}
	return out
}

// String renders the focal set as {a,b}. The whole frame renders as Θ.
func (s FocalSet) String(frame *Frame) string {
	if s == frame.Theta() {
		return "Θ"
	}
	if s.IsEmpty() {
		return "∅"
	}
	return "{" + strings.Join(s.Elements(frame), ",") + "}"
}
