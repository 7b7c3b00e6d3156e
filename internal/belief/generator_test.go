package belief

import (
	"fmt"
	"math/rand"
	"testing"
)

// massGenerator produces arbitrary valid belief masses over small frames,
// mirroring the strategy used by the property-test oracle: 2-4 frame
// elements, 1-3 focal elements, masses normalized to sum to 1.
type massGenerator struct {
	rng *rand.Rand
}

func newMassGenerator(seed int64) *massGenerator {
	return &massGenerator{rng: rand.New(rand.NewSource(seed))}
}

// nextFrame generates a random small frame.
func (g *massGenerator) nextFrame(t *testing.T) *Frame {
	t.Helper()
	n := 2 + g.rng.Intn(3)
	elements := make([]string, n)
	for i := range elements {
		elements[i] = fmt.Sprintf("elem%d", i)
	}
	f, err := NewFrame(elements...)
	if err != nil {
		t.Fatalf("generator frame: %v", err)
	}
	return f
}

// next generates a valid belief mass over a fresh random frame.
func (g *massGenerator) next(t *testing.T) *BeliefMass {
	t.Helper()
	return g.nextOver(t, g.nextFrame(t))
}

// nextOver generates a valid belief mass over the given frame.
func (g *massGenerator) nextOver(t *testing.T, frame *Frame) *BeliefMass {
	t.Helper()

	nFocal := 1 + g.rng.Intn(3)
	masses := make(map[FocalSet]float64, nFocal)
	total := 0.0
	for i := 0; i < nFocal; i++ {
		// Random non-empty subset of the frame.
		fs := FocalSet(uint64(g.rng.Intn(int(frame.Theta()))) + 1)
		w := 0.01 + g.rng.Float64()*0.97
		masses[fs] += w
		total += w
	}
	for fs := range masses {
		masses[fs] /= total
	}

	m, err := New(frame, masses)
	if err != nil {
		t.Fatalf("generator mass: %v", err)
	}
	return m
}

// nextPair generates two valid belief masses over a shared frame.
func (g *massGenerator) nextPair(t *testing.T) (*BeliefMass, *BeliefMass) {
	t.Helper()
	frame := g.nextFrame(t)
	return g.nextOver(t, frame), g.nextOver(t, frame)
}
