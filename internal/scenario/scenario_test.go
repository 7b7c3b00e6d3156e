package scenario

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Hyperpolymath/My-newsroom/internal/belief"
)

const sampleScenario = `
subject: "Climate Claim"
frame: ["true", "false"]
rule: dempster
sources:
  - name: IPCC
    masses:
      "true": 0.95
      theta: 0.05
  - name: Social Media
    credibility: 0.5
    masses:
      "true": 0.55
      "false": 0.20
      theta: 0.25
`

func TestParse_Valid(t *testing.T) {
	s, err := Parse([]byte(sampleScenario))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if s.Subject != "Climate Claim" {
		t.Errorf("subject: got %q", s.Subject)
	}
	if s.Rule != belief.Dempster {
		t.Errorf("rule: expected dempster, got %v", s.Rule)
	}
	if s.Frame.Size() != 2 {
		t.Errorf("frame: expected 2 elements, got %v", s.Frame.Elements())
	}
	if len(s.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(s.Sources))
	}

	ipcc := s.Sources[0]
	if ipcc.Discounted {
		t.Error("full-credibility source should not be discounted")
	}
	truth := s.Frame.MustSet("true")
	if got := ipcc.Mass.MassOf(truth); math.Abs(got-0.95) > belief.MassTolerance {
		t.Errorf("IPCC mass on {true}: expected 0.95, got %g", got)
	}
}

func TestParse_CredibilityDiscounting(t *testing.T) {
	s, err := Parse([]byte(sampleScenario))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	social := s.Sources[1]
	if !social.Discounted {
		t.Fatal("expected source with credibility 0.5 to be discounted")
	}

	truth := s.Frame.MustSet("true")
	theta := s.Frame.Theta()

	// 0.55 scaled by 0.5; Θ keeps its scaled share plus the withheld half.
	if got := social.Mass.MassOf(truth); math.Abs(got-0.275) > belief.MassTolerance {
		t.Errorf("discounted mass on {true}: expected 0.275, got %g", got)
	}
	if got := social.Mass.MassOf(theta); math.Abs(got-0.625) > belief.MassTolerance {
		t.Errorf("discounted mass on Θ: expected 0.625, got %g", got)
	}
	if !social.Mass.IsValid() {
		t.Errorf("discounted mass invalid: %s", social.Mass)
	}
}

func TestParse_FocalKeys(t *testing.T) {
	doc := `
subject: "Origin"
frame: [malaysia, indonesia, thailand]
sources:
  - name: Survey
    masses:
      "malaysia,indonesia": 0.6
      "*": 0.4
`
	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	pair := s.Frame.MustSet("malaysia", "indonesia")
	if got := s.Sources[0].Mass.MassOf(pair); math.Abs(got-0.6) > belief.MassTolerance {
		t.Errorf("mass on {malaysia,indonesia}: expected 0.6, got %g", got)
	}
	if got := s.Sources[0].Mass.MassOf(s.Frame.Theta()); math.Abs(got-0.4) > belief.MassTolerance {
		t.Errorf("mass on Θ via *: expected 0.4, got %g", got)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"missing subject", `
frame: ["true", "false"]
sources:
  - name: A
    masses: {"true": 1.0}
`},
		{"no sources", `
subject: X
frame: ["true", "false"]
sources: []
`},
		{"unknown rule", `
subject: X
frame: ["true", "false"]
rule: bayes
sources:
  - name: A
    masses: {"true": 1.0}
`},
		{"unknown element", `
subject: X
frame: ["true", "false"]
sources:
  - name: A
    masses: {"maybe": 1.0}
`},
		{"masses not summing", `
subject: X
frame: ["true", "false"]
sources:
  - name: A
    masses: {"true": 0.5}
`},
		{"credibility out of range", `
subject: X
frame: ["true", "false"]
sources:
  - name: A
    credibility: 1.5
    masses: {"true": 1.0}
`},
		{"unnamed source", `
subject: X
frame: ["true", "false"]
sources:
  - masses: {"true": 1.0}
`},
		{"not yaml", `{{{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "claim.yaml")
	if err := os.WriteFile(path, []byte(sampleScenario), 0644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Path != path {
		t.Errorf("expected path %s, got %s", path, s.Path)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDigest_StableAndOrderSensitive(t *testing.T) {
	s1, err := Parse([]byte(sampleScenario))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s2, err := Parse([]byte(sampleScenario))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if s1.Digest() != s2.Digest() {
		t.Error("identical scenarios should share a digest")
	}

	// Source order is part of the semantics (left-to-right fold), so
	// reordering must change the digest.
	reordered := `
subject: "Climate Claim"
frame: ["true", "false"]
rule: dempster
sources:
  - name: Social Media
    credibility: 0.5
    masses:
      "true": 0.55
      "false": 0.20
      theta: 0.25
  - name: IPCC
    masses:
      "true": 0.95
      theta: 0.05
`
	s3, err := Parse([]byte(reordered))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s1.Digest() == s3.Digest() {
		t.Error("reordered sources should produce a different digest")
	}
}
