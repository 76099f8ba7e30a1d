// SPDX-License-Identifier: MIT

package ejr_test

import (
	"fmt"

	"github.com/katalvlaran/lvpb/ejr"
	"github.com/katalvlaran/lvpb/election"
)

// ExampleStrongViolations flags a project whose supporters got nothing.
func ExampleStrongViolations() {
	inst, _ := election.NewInstance([]election.Project{
		election.NewProject("Library", 5),
		election.NewProject("Pool", 5),
	}, []float64{10})
	pool, _ := election.NewBallot(inst, "Pool")
	prof, _ := election.NewProfile(inst, pool, pool)

	outcome, _ := election.AllocationOf(inst, "Library")
	rep, _ := ejr.StrongViolations(inst, prof, outcome)
	fmt.Println(rep)

	// Output:
	// 1 violation(s) [Pool]
}
