// SPDX-License-Identifier: MIT

package reduce

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvpb/election"
)

// Sentinel errors returned by the reductions.
var (
	// ErrDimensionOutOfRange indicates a dimension index outside [0, R).
	ErrDimensionOutOfRange = errors.New("reduce: dimension out of range")

	// ErrZeroBudget indicates a zero budget component, for which no exchange
	// rate exists.
	ErrZeroBudget = errors.New("reduce: zero budget component has no exchange rate")

	// ErrNilInstance indicates that a nil *election.Instance was passed.
	ErrNilInstance = errors.New("reduce: instance is nil")

	// ErrNilProfile indicates that a nil *election.Profile was passed.
	ErrNilProfile = errors.New("reduce: profile is nil")

	// ErrMismatch indicates a profile that does not belong to the instance.
	ErrMismatch = errors.New("reduce: profile does not belong to instance")
)

// Restrict returns the single-dimension election keeping only dimension
// dim of every cost and of the budget limit. Only active projects are kept.
//
// Errors: ErrNilInstance, ErrNilProfile, ErrDimensionOutOfRange, ErrMismatch.
func Restrict(inst *election.Instance, prof *election.Profile, dim int) (*election.Instance, *election.Profile, error) {
	if err := checkInputs(inst, prof); err != nil {
		return nil, nil, err
	}
	if dim < 0 || dim >= inst.Resources() {
		return nil, nil, fmt.Errorf("%w: %d not in [0,%d)", ErrDimensionOutOfRange, dim, inst.Resources())
	}

	return rebuild(inst, prof, []float64{inst.Budget()[dim]}, func(cost []float64) float64 { return cost[dim] })
}

// ExchangeRates returns rate_i = budget[0]/budget[i] for every dimension.
//
// Errors: ErrZeroBudget if some budget[i] is zero.
func ExchangeRates(budget []float64) ([]float64, error) {
	rates := make([]float64, len(budget))
	for i, b := range budget {
		if b == 0 {
			return nil, fmt.Errorf("%w: dimension %d", ErrZeroBudget, i)
		}
		rates[i] = budget[0] / b
	}

	return rates, nil
}

// Convert returns the single-dimension election in which every amount is
// expressed in units of dimension 0 and summed: cost' = Σ cost_i·rate_i and
// budget' = Σ budget_i·rate_i.
//
// Errors: ErrNilInstance, ErrNilProfile, ErrZeroBudget, ErrMismatch.
func Convert(inst *election.Instance, prof *election.Profile) (*election.Instance, *election.Profile, error) {
	if err := checkInputs(inst, prof); err != nil {
		return nil, nil, err
	}
	budget := inst.Budget()
	rates, err := ExchangeRates(budget)
	if err != nil {
		return nil, nil, err
	}

	var total float64
	for i, b := range budget {
		total += b * rates[i]
	}

	return rebuild(inst, prof, []float64{total}, func(cost []float64) float64 {
		var s float64
		for i, c := range cost {
			s += c * rates[i]
		}

		return s
	})
}

// MapAllocation re-binds alloc, computed on from, to the catalog of to by
// project name.
//
// Errors: election.ErrCatalogMismatch if alloc does not belong to from;
// election.ErrUnknownProject if a funded name is missing from to.
func MapAllocation(alloc election.Allocation, from, to *election.Instance) (election.Allocation, error) {
	if !alloc.BoundTo(from) && alloc.Len() > 0 {
		return election.Allocation{}, election.ErrCatalogMismatch
	}

	return election.AllocationOf(to, alloc.Names()...)
}

func checkInputs(inst *election.Instance, prof *election.Profile) error {
	if inst == nil {
		return ErrNilInstance
	}
	if prof == nil {
		return ErrNilProfile
	}

	return nil
}

// rebuild projects every active project through scalar and rebinds the ballots.
func rebuild(inst *election.Instance, prof *election.Profile, budget []float64, scalar func([]float64) float64) (*election.Instance, *election.Profile, error) {
	if !prof.BoundTo(inst) {
		return nil, nil, ErrMismatch
	}

	ids := inst.IDs()
	projects := make([]election.Project, 0, len(ids))
	for _, id := range ids {
		p, _ := inst.Project(id)
		p.Cost = []float64{scalar(p.Cost)}
		projects = append(projects, p)
	}

	out, err := election.NewInstance(projects, budget,
		election.WithName(inst.Name()),
		election.WithCategories(inst.Categories()...),
		election.WithTargets(inst.Targets()...),
		election.WithLogger(inst.Logger()),
	)
	if err != nil {
		return nil, nil, err
	}

	ballots := make([]election.Ballot, prof.Len())
	for v := range ballots {
		var mapped []election.ProjectID
		for _, id := range prof.Ballot(v).IDs() {
			if nid, ok := out.Lookup(inst.ProjectName(id)); ok {
				mapped = append(mapped, nid)
			}
		}
		ballots[v] = election.BallotOf(mapped...)
	}
	outProf, err := election.NewProfile(out, ballots...)
	if err != nil {
		return nil, nil, err
	}

	return out, outProf, nil
}
