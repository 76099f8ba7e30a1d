// SPDX-License-Identifier: MIT

package rules

import (
	"errors"
	"math"
	"slices"

	"github.com/katalvlaran/lvpb/afford"
	"github.com/katalvlaran/lvpb/election"
)

// errStalled marks a project whose supporters ran dry before it was paid.
var errStalled = errors.New("rules: supporters exhausted before project was funded")

// ExchangeRates runs the two-resource exchange-rate mechanism.
//
// Steps, repeated while projects remain:
//  1. Drop projects that do not fit the current budget limit.
//  2. Derive the exchange rates from the current limit (B per A = b[1]/b[0]).
//  3. Score each project by rho·(1+epsilon) using afford.RhoEpsilon; the
//     lowest score wins (lowest ProjectID on ties). Stop if its rho is +Inf.
//  4. Fund it in rounds: each round the active supporters owe an equal
//     share of the remaining cost; a supporter short in one dimension
//     converts surplus from the other, a supporter short in both pays all
//     they have and leaves.
//
// If the supporters run dry before the cost is covered, their budgets are
// restored, the project is excluded without being funded and an error is
// logged; the mechanism carries on. If a dimension of the budget limit is
// exhausted the rates are undefined and the primary loop ends. Greedy
// completion follows unless disabled.
//
// Errors: ErrNilInstance, ErrNilProfile, ErrProfileMismatch,
// ErrNotTwoResources, ErrNoVoters.
func ExchangeRates(inst *election.Instance, prof *election.Profile, opts ...Option) (election.Allocation, error) {
	if inst != nil && inst.Resources() != 2 {
		return election.Allocation{}, ErrNotTwoResources
	}
	r, err := newRunner(inst, prof, opts)
	if err != nil {
		return election.Allocation{}, err
	}
	if err = r.splitBudget(); err != nil {
		return election.Allocation{}, err
	}
	log := r.opts.Logger.WithName("exchange-rates")

	for r.inst.Len() > 0 {
		r.inst.RemoveUnaffordable()
		if r.inst.Len() == 0 {
			break
		}

		limit := r.inst.Budget()
		if limit[0] <= r.opts.Tolerance || limit[1] <= r.opts.Tolerance {
			log.V(1).Info("budget dimension exhausted, stopping", "budget", limit)
			break
		}
		aToB := limit[1] / limit[0]
		bToA := limit[0] / limit[1]

		best := election.ProjectID(-1)
		bestRho, bestScore := math.Inf(1), math.Inf(1)
		for _, id := range r.inst.IDs() {
			rho, eps, err := afford.RhoEpsilon(r.inst.Cost(id), limit, r.supporters[id], r.budgets, r.opts.EpsilonMode)
			if err != nil {
				return election.Allocation{}, err
			}
			if score := rho * (1 + eps); score < bestScore {
				best, bestRho, bestScore = id, rho, score
			}
		}
		if best < 0 || math.IsInf(bestRho, 1) {
			break
		}

		remaining, err := r.payConverting(best, aToB, bToA)
		if err != nil {
			log.Error(err, "excluding project",
				"project", r.inst.ProjectName(best), "rho", bestRho, "remaining", remaining)
			r.inst.Remove(best)
			continue
		}
		r.fund(best, Primary, bestScore)
	}

	r.complete()

	return r.funded, nil
}

// payConverting charges the supporters of id round by round.
//
// aToB converts one unit of dimension 0 into dimension 1, bToA the reverse.
// On errStalled every supporter's budget is rolled back and the unpaid
// remainder is returned for diagnostics.
func (r *runner) payConverting(id election.ProjectID, aToB, bToA float64) ([]float64, error) {
	cost := r.inst.Cost(id)
	remaining := slices.Clone(cost)
	all := r.supporters[id]
	saved := r.budgets.Save(all)
	voters := slices.Clone(all)
	maxRounds := 2*len(all) + 4

	for round := 0; !r.paid(remaining, cost); round++ {
		voters = slices.DeleteFunc(voters, func(v int) bool { return r.budgets.MaxOf(v) <= 0 })
		if len(voters) == 0 || round >= maxRounds {
			r.budgets.Restore(all, saved)

			return remaining, errStalled
		}

		n := float64(len(voters))
		t0, t1 := remaining[0]/n, remaining[1]/n
		for _, v := range voters {
			b := r.budgets.Row(v)
			s0, s1 := b[0]-t0, b[1]-t1

			switch {
			case s0 >= 0 && s1 >= 0:
				b[0] -= t0
				b[1] -= t1
				remaining[0] -= t0
				remaining[1] -= t1

			case s0 < 0 && s1 >= 0:
				// Short in A: buy the missing A with surplus B.
				need := -s0 * aToB
				if need <= s1 {
					remaining[0] -= t0
					remaining[1] -= t1
					b[1] -= t1 + need
					b[0] = 0
				} else {
					remaining[0] -= b[0] + s1*bToA
					remaining[1] -= t1
					r.budgets.Zero(v)
				}

			case s1 < 0 && s0 >= 0:
				// Short in B: buy the missing B with surplus A.
				need := -s1 * bToA
				if need <= s0 {
					remaining[0] -= t0
					remaining[1] -= t1
					b[0] -= t0 + need
					b[1] = 0
				} else {
					remaining[0] -= t0
					remaining[1] -= b[1] + s0*aToB
					r.budgets.Zero(v)
				}

			default:
				remaining[0] -= b[0]
				remaining[1] -= b[1]
				r.budgets.Zero(v)
			}
		}

		if r.paid(remaining, cost) {
			remaining[0], remaining[1] = 0, 0
		}
	}

	return remaining, nil
}

// paid reports whether every remaining component is within tolerance of
// zero, scaled by the component's cost when that exceeds one.
func (r *runner) paid(remaining, cost []float64) bool {
	for d, x := range remaining {
		if x > r.opts.Tolerance*math.Max(1, cost[d]) {
			return false
		}
	}

	return true
}
