// SPDX-License-Identifier: MIT

package election

import (
	"fmt"
	"math/rand/v2"
)

// RandomInstance generates n projects named "Project 0".."Project n-1"
// whose cost in dimension r is a uniform integer in [minCost[r], maxCost[r]].
// The same seed always yields the same instance.
//
// Errors:
//   - ErrBadDimensions if minCost or maxCost length differs from budget.
//   - ErrInvalidAmount if some minCost[r] > maxCost[r] or minCost[r] < 0.
func RandomInstance(n int, minCost, maxCost []int, budget []float64, seed uint64, opts ...InstanceOption) (*Instance, error) {
	if len(minCost) != len(budget) || len(maxCost) != len(budget) {
		return nil, ErrBadDimensions
	}
	for r := range budget {
		if minCost[r] < 0 || minCost[r] > maxCost[r] {
			return nil, fmt.Errorf("%w: cost range [%d,%d] in dimension %d", ErrInvalidAmount, minCost[r], maxCost[r], r)
		}
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	projects := make([]Project, n)
	for i := 0; i < n; i++ {
		cost := make([]float64, len(budget))
		for r := range cost {
			cost[r] = float64(minCost[r] + rng.IntN(maxCost[r]-minCost[r]+1))
		}
		projects[i] = Project{Name: fmt.Sprintf("Project %d", i), Cost: cost}
	}

	return NewInstance(projects, budget, append([]InstanceOption{WithName("Random Instance")}, opts...)...)
}
