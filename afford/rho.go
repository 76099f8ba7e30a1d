// SPDX-License-Identifier: MIT

package afford

import (
	"math"
	"slices"

	"github.com/katalvlaran/lvpb/election"
)

// waterFill shares price equally among the payers holding amounts.
//
// Payers are visited in ascending order of amount; anyone below the current
// equal share pays everything and leaves. It returns the price still owed
// by the remaining payers and how many of them there are. payers == 0 means
// the amounts cannot cover price.
//
// Complexity: O(n log n).
func waterFill(price float64, amounts []float64) (left float64, payers int) {
	slices.Sort(amounts)
	left, payers = price, len(amounts)
	for _, a := range amounts {
		if a < left/float64(payers) {
			left -= a
			payers--
			if payers == 0 {
				break
			}
			continue
		}
		break
	}

	return left, payers
}

// Rho returns the rho-affordability of a project costing cost, supported by
// the voters in supporters whose remaining budgets are held in budgets.
//
// Each dimension is water-filled independently. The per-dimension values
// are folded with agg (nil means Max); if any dimension is +Inf the
// aggregate is +Inf regardless of agg.
//
// Complexity: O(R · s log s) for s supporters.
func Rho(cost []float64, supporters []int, budgets *election.BudgetMatrix, agg Aggregator) Result {
	if agg == nil {
		agg = Max
	}

	per := make([]float64, len(cost))
	amounts := make([]float64, len(supporters))
	unaffordable := false
	for r, c := range cost {
		if c == 0 {
			per[r] = 0
			continue
		}
		if len(supporters) == 0 {
			per[r] = math.Inf(1)
			unaffordable = true
			continue
		}
		for i, v := range supporters {
			amounts[i] = budgets.At(v, r)
		}
		left, payers := waterFill(c, amounts)
		if payers == 0 {
			per[r] = math.Inf(1)
			unaffordable = true
			continue
		}
		per[r] = left / (float64(payers) * c)
	}

	if len(supporters) == 0 {
		// Nobody can justify anything, even for zero-cost dimensions.
		for r := range per {
			per[r] = math.Inf(1)
		}
		unaffordable = true
	}
	if unaffordable {
		return Result{Aggregate: math.Inf(1), PerDimension: per}
	}

	return Result{Aggregate: agg.Aggregate(per), PerDimension: per}
}

// RhoEpsilon returns the (rho, epsilon) converted affordability of a
// two-resource project.
//
// Every amount is expressed in units of dimension 0 using the current rate
// budget[0]/budget[1]; a single water-filling pass over the converted
// supporter budgets gives rho. epsilon measures conversion friction as
// selected by mode (see EpsilonMode).
//
// With no supporters, or when budget[1] is zero so that the rate is
// undefined, rho is +Inf and epsilon is 0.
//
// Errors: ErrNotTwoResources if cost, budget or budgets is not 2-D.
func RhoEpsilon(cost, budget []float64, supporters []int, budgets *election.BudgetMatrix, mode EpsilonMode) (rho, epsilon float64, err error) {
	if len(cost) != 2 || len(budget) != 2 || budgets.Resources() != 2 {
		return 0, 0, ErrNotTwoResources
	}

	n := len(supporters)
	rate := budget[0] / budget[1]
	if n == 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
		return math.Inf(1), 0, nil
	}

	projectCost := cost[0] + cost[1]*rate
	converted := make([]float64, n)
	for i, v := range supporters {
		converted[i] = budgets.At(v, 0) + budgets.At(v, 1)*rate
	}

	switch {
	case projectCost == 0:
		rho = 0
	default:
		left, payers := waterFill(projectCost, converted)
		if payers == 0 {
			rho = math.Inf(1)
		} else {
			rho = left / (float64(payers) * projectCost)
		}
	}

	share0 := cost[0] / float64(n)
	share1 := cost[1] / float64(n)
	switch mode {
	case Count:
		for _, v := range supporters {
			short0 := budgets.At(v, 0) < share0
			short1 := budgets.At(v, 1) < share1
			if short0 != short1 {
				epsilon++
			}
		}
	default:
		for _, v := range supporters {
			epsilon += math.Max(0, share0-budgets.At(v, 0)) + rate*math.Max(0, share1-budgets.At(v, 1))
		}
		if mode != Absolute {
			if projectCost == 0 {
				epsilon = 0
			} else {
				epsilon /= projectCost
			}
		}
	}

	return rho, epsilon, nil
}

// AlphaRho enumerates, per dimension, the fractions alpha of the cost that
// become fundable as the per-supporter payment cap rises through the
// supporters' own budgets, and pairs each with the rho it requires.
//
// For a cap m, alpha = min(cost, Σ min(b, m)) / cost and rho = m / cost;
// once alpha reaches 1 rho is the exact water-filling value instead. The
// preferred pair of a dimension minimizes rho/alpha. The first result is
// the dimension whose preferred pair has the smallest alpha (lowest index
// on ties); the second holds every dimension's preferred pair.
//
// Dimensions with zero cost report {1, 0}; dimensions where nothing can be
// funded report {0, +Inf}.
func AlphaRho(cost []float64, supporters []int, budgets *election.BudgetMatrix) (Pair, []Pair) {
	pairs := make([]Pair, len(cost))
	amounts := make([]float64, len(supporters))
	for r, c := range cost {
		if c == 0 {
			pairs[r] = Pair{Alpha: 1, Rho: 0}
			continue
		}
		for i, v := range supporters {
			amounts[i] = budgets.At(v, r)
		}
		slices.Sort(amounts)

		best := Pair{Alpha: 0, Rho: math.Inf(1)}
		bestRatio := math.Inf(1)
		seen := make(map[float64]struct{}, len(amounts))
		for _, m := range amounts {
			var total float64
			for _, b := range amounts {
				total += math.Min(b, m)
			}
			alpha := math.Min(c, total) / c
			if alpha == 0 {
				continue
			}
			if _, dup := seen[alpha]; dup {
				continue
			}
			seen[alpha] = struct{}{}

			rho := m / c
			if alpha >= 1 {
				left, payers := waterFill(c, slices.Clone(amounts))
				if payers > 0 {
					rho = left / (float64(payers) * c)
				}
			}
			if ratio := rho / alpha; ratio < bestRatio {
				best, bestRatio = Pair{Alpha: alpha, Rho: rho}, ratio
			}
			if alpha >= 1 {
				break
			}
		}
		pairs[r] = best
	}

	if len(pairs) == 0 {
		return Pair{Alpha: 0, Rho: math.Inf(1)}, pairs
	}
	low := pairs[0]
	for _, p := range pairs[1:] {
		if p.Alpha < low.Alpha {
			low = p
		}
	}

	return low, pairs
}
