// Package scenario loads fusion scenarios: YAML documents declaring a frame
// of discernment and a set of evidence sources, each assigning belief mass to
// focal elements. Scenarios are the only input medium of the toolkit; the
// loader validates them eagerly and converts them into core belief masses.
package scenario

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Hyperpolymath/My-newsroom/internal/belief"
)

// File is the YAML shape of a scenario document.
type File struct {
	Subject string       `yaml:"subject"`
	Frame   []string     `yaml:"frame"`
	Rule    string       `yaml:"rule,omitempty"`
	Sources []SourceFile `yaml:"sources"`
}

// SourceFile is one evidence source in a scenario document. Mass keys are
// comma-separated element lists; "theta" or "*" names the whole frame.
type SourceFile struct {
	Name        string             `yaml:"name"`
	Credibility float64            `yaml:"credibility,omitempty"`
	Masses      map[string]float64 `yaml:"masses"`
}

// Scenario is a loaded, validated scenario ready for fusion.
type Scenario struct {
	Subject string
	Path    string
	Frame   *belief.Frame
	Rule    belief.Rule
	Sources []Source
}

// Source is one validated evidence source. Mass is the assignment actually
// fused: when Credibility < 1 it is the discounted mass, with the withheld
// share moved to Θ.
type Source struct {
	Name        string
	Credibility float64
	Raw         map[string]float64 // As declared in the file
	Mass        *belief.BeliefMass
	Discounted  bool
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// Parse validates a scenario document and converts every source into a
// belief mass over the shared frame.
func Parse(data []byte) (*Scenario, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	if strings.TrimSpace(f.Subject) == "" {
		return nil, fmt.Errorf("subject is required")
	}
	if len(f.Sources) == 0 {
		return nil, fmt.Errorf("at least one source is required")
	}

	frame, err := belief.NewFrame(f.Frame...)
	if err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}

	rule, err := belief.ParseRule(f.Rule)
	if err != nil {
		return nil, err
	}

	scenario := &Scenario{
		Subject: f.Subject,
		Frame:   frame,
		Rule:    rule,
	}

	for i, sf := range f.Sources {
		src, err := buildSource(frame, sf)
		if err != nil {
			return nil, fmt.Errorf("source %d (%s): %w", i+1, sf.Name, err)
		}
		scenario.Sources = append(scenario.Sources, *src)
	}

	return scenario, nil
}

func buildSource(frame *belief.Frame, sf SourceFile) (*Source, error) {
	if strings.TrimSpace(sf.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}

	credibility := sf.Credibility
	if credibility == 0 {
		credibility = 1.0
	}
	if credibility < 0 || credibility > 1 {
		return nil, fmt.Errorf("credibility %g out of (0, 1]", credibility)
	}

	masses := make(map[belief.FocalSet]float64, len(sf.Masses))
	for key, m := range sf.Masses {
		fs, err := parseFocalKey(frame, key)
		if err != nil {
			return nil, err
		}
		masses[fs] += m
	}

	// Discount toward Θ before validation: scale every mass by the source
	// credibility and move the withheld share to total ignorance.
	discounted := credibility < 1
	if discounted {
		for fs := range masses {
			masses[fs] *= credibility
		}
		masses[frame.Theta()] += 1 - credibility
	}

	mass, err := belief.New(frame, masses)
	if err != nil {
		return nil, err
	}

	return &Source{
		Name:        sf.Name,
		Credibility: credibility,
		Raw:         sf.Masses,
		Mass:        mass,
		Discounted:  discounted,
	}, nil
}

// parseFocalKey resolves a mass key: "theta" or "*" is the whole frame,
// otherwise a comma-separated element list like "malaysia,indonesia".
func parseFocalKey(frame *belief.Frame, key string) (belief.FocalSet, error) {
	trimmed := strings.TrimSpace(key)
	switch strings.ToLower(trimmed) {
	case "theta", "*":
		return frame.Theta(), nil
	case "":
		return 0, fmt.Errorf("empty focal element key")
	}
	return frame.Set(strings.Split(trimmed, ",")...)
}

// Masses returns the belief masses of all sources in declaration order.
func (s *Scenario) Masses() []*belief.BeliefMass {
	out := make([]*belief.BeliefMass, len(s.Sources))
	for i := range s.Sources {
		out[i] = s.Sources[i].Mass
	}
	return out
}

// Digest returns a stable content digest of the scenario and its rule, used
// as the report cache key. Sources are folded in declaration order because
// fold order is part of the semantics for the non-associative rules; mass
// keys are sorted so map iteration order cannot change the digest.
func (s *Scenario) Digest() string {
	h := sha256.New()
	fmt.Fprintf(h, "subject=%s\nrule=%s\nframe=%s\n", s.Subject, s.Rule, strings.Join(s.Frame.Elements(), ","))

	for i := range s.Sources {
		src := &s.Sources[i]
		fmt.Fprintf(h, "source=%s cred=%.9f\n", src.Name, src.Credibility)
		keys := make([]string, 0, len(src.Raw))
		for k := range src.Raw {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(h, "  %s=%.9f\n", k, src.Raw[k])
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
