// Demo program showing how the three combination rules handle conflict
// This contrasts Dempster, Yager, and Dubois-Prade on the same evidence
package main

import (
	"fmt"
	"strings"

	"github.com/Hyperpolymath/My-newsroom/internal/belief"
)

func main() {
	fmt.Println("=== Conflict Handling Across Combination Rules ===")
	fmt.Println()

	frame, err := belief.NewFrame("ukraine", "russia", "poland")
	if err != nil {
		panic(err)
	}

	// Two sources in heavy disagreement about the origin of borscht
	historian, err := belief.NewFromElements(frame, []belief.ElementMass{
		{Elements: []string{"ukraine"}, Mass: 0.9},
		{Elements: []string{"ukraine", "russia", "poland"}, Mass: 0.1},
	})
	if err != nil {
		panic(err)
	}

	encyclopedia, err := belief.NewFromElements(frame, []belief.ElementMass{
		{Elements: []string{"russia"}, Mass: 0.6},
		{Elements: []string{"poland"}, Mass: 0.3},
		{Elements: []string{"ukraine", "russia", "poland"}, Mass: 0.1},
	})
	if err != nil {
		panic(err)
	}

	k, err := belief.Conflict(historian, encyclopedia)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Pairwise conflict: K=%.3f\n\n", k)

	rules := []belief.Rule{belief.Dempster, belief.Yager, belief.DuboisPrade}
	for _, rule := range rules {
		fmt.Printf("%s\n", rule)
		fmt.Println(strings.Repeat("-", 60))

		result, err := belief.Fuse(historian, encyclopedia, rule)
		if err != nil {
			fmt.Printf("  ✗ fusion refused: %v\n\n", err)
			continue
		}

		for _, fs := range result.Mass.FocalSets() {
			fmt.Printf("  m(%s) = %.4f\n", fs.String(frame), result.Mass.MassOf(fs))
		}
		if result.Advisory != nil {
			fmt.Printf("  ⚠️  %s\n", result.Advisory.Message)
		}

		for _, name := range frame.Elements() {
			bel, pl := result.Mass.UncertaintyInterval(frame.MustSet(name))
			fmt.Printf("  %-10s Bel=%.3f  Pl=%.3f\n", name, bel, pl)
		}
		fmt.Println()
	}

	fmt.Println("Note: Dempster renormalizes conflict away and sharpens beliefs;")
	fmt.Println("Yager moves conflicting mass to total ignorance; Dubois-Prade")
	fmt.Println("keeps it on the union of the disagreeing hypotheses.")
}
