// SPDX-License-Identifier: MIT

package rules

import (
	"math"

	"github.com/katalvlaran/lvpb/afford"
	"github.com/katalvlaran/lvpb/election"
)

// EqualShares runs the multi-resource Method of Equal Shares.
//
// Steps:
//  1. Every voter receives budget[r]/n in each dimension r.
//  2. Each active project is scored by its aggregated rho-affordability
//     against its supporters' remaining budgets.
//  3. The lowest score wins (lowest ProjectID on ties). If it is +Inf no
//     project is affordable and the loop ends.
//  4. Each supporter v pays min(b[v][r], cost[r]·rho[r]) per dimension; the
//     cost leaves the budget limit and the project leaves the instance.
//
// Greedy completion follows unless disabled.
//
// Errors: ErrNilInstance, ErrNilProfile, ErrProfileMismatch, ErrNoVoters.
//
// Complexity: O(P² · R · s log s) for P projects and s supporters per project.
func EqualShares(inst *election.Instance, prof *election.Profile, opts ...Option) (election.Allocation, error) {
	r, err := newRunner(inst, prof, opts)
	if err != nil {
		return election.Allocation{}, err
	}
	if err = r.splitBudget(); err != nil {
		return election.Allocation{}, err
	}
	r.equalShares()
	r.complete()

	return r.funded, nil
}

// equalShares runs the primary loop over the split voter budgets.
func (r *runner) equalShares() {
	for r.inst.Len() > 0 {
		best := election.ProjectID(-1)
		var bestRes afford.Result
		bestScore := math.Inf(1)
		for _, id := range r.inst.IDs() {
			res := afford.Rho(r.inst.Cost(id), r.supporters[id], r.budgets, r.opts.Aggregator)
			if res.Aggregate < bestScore {
				best, bestRes, bestScore = id, res, res.Aggregate
			}
		}
		if best < 0 {
			break
		}

		cost := r.inst.Cost(best)
		for _, v := range r.supporters[best] {
			for d, c := range cost {
				r.budgets.Sub(v, d, math.Min(r.budgets.At(v, d), c*bestRes.PerDimension[d]))
			}
		}
		r.fund(best, Primary, bestScore)
	}
}
