// SPDX-License-Identifier: MIT

package rules_test

import (
	"fmt"

	"github.com/katalvlaran/lvpb/election"
	"github.com/katalvlaran/lvpb/rules"
)

// ExampleGreedy funds projects by approval count while they fit.
func ExampleGreedy() {
	// 1) One resource, budget 30:
	inst, _ := election.NewInstance([]election.Project{
		election.NewProject("A", 10),
		election.NewProject("B", 20),
	}, []float64{30})

	// 2) A is approved twice, B once:
	b1, _ := election.NewBallot(inst, "A")
	b2, _ := election.NewBallot(inst, "A", "B")
	prof, _ := election.NewProfile(inst, b1, b2)

	// 3) Run the rule, printing every decision:
	alloc, _ := rules.Greedy(inst, prof, rules.WithOnFund(func(s rules.Step) {
		fmt.Printf("%s (%v approvals)\n", s.Name, s.Score)
	}))
	fmt.Println("funded:", alloc)

	// Output:
	// A (2 approvals)
	// B (1 approvals)
	// funded: [A B]
}

// ExampleEqualShares splits a project evenly among its supporters.
func ExampleEqualShares() {
	inst, _ := election.NewInstance([]election.Project{election.NewProject("Park", 9)}, []float64{9})
	ballot, _ := election.NewBallot(inst, "Park")
	prof, _ := election.NewProfile(inst, ballot, ballot, ballot)

	alloc, _ := rules.EqualShares(inst, prof, rules.WithOnFund(func(s rules.Step) {
		fmt.Printf("%s rho=%.4f\n", s.Name, s.Score)
	}))
	fmt.Println("funded:", alloc)

	// Output:
	// Park rho=0.3333
	// funded: [Park]
}

// ExampleExchangeRates lets supporters convert surplus between two resources.
func ExampleExchangeRates() {
	inst, _ := election.NewInstance([]election.Project{
		election.NewProject("P", 2, 6),
		election.NewProject("Q", 5, 1),
	}, []float64{8, 8})
	bp, _ := election.NewBallot(inst, "P")
	bq, _ := election.NewBallot(inst, "Q")
	prof, _ := election.NewProfile(inst, bp, bq)

	alloc, _ := rules.ExchangeRates(inst, prof, rules.WithCompletion(false))
	fmt.Println("funded:", alloc)
	fmt.Println("spent:", inst.TotalCost(alloc.Set()))

	// Output:
	// funded: [P Q]
	// spent: [7 7]
}
