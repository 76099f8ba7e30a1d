// SPDX-License-Identifier: MIT

package rules

import (
	"github.com/katalvlaran/lvpb/election"
)

// runner holds the mutable state of a single rule invocation.
type runner struct {
	inst       *election.Instance     // private working copy
	prof       *election.Profile      // read-only
	supporters [][]int                // ProjectID → approving voter indices
	budgets    *election.BudgetMatrix // nil for Greedy
	funded     election.Allocation
	opts       Options
}

// newRunner validates inputs and clones inst.
func newRunner(inst *election.Instance, prof *election.Profile, opts []Option) (*runner, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}
	if prof == nil {
		return nil, ErrNilProfile
	}
	if !prof.BoundTo(inst) {
		return nil, ErrProfileMismatch
	}

	work := inst.Clone()
	supporters := make([][]int, work.CatalogSize())
	for v := 0; v < prof.Len(); v++ {
		for _, id := range prof.Ballot(v).IDs() {
			supporters[id] = append(supporters[id], v)
		}
	}

	return &runner{
		inst:       work,
		prof:       prof,
		supporters: supporters,
		funded:     election.NewAllocation(work),
		opts:       gather(opts),
	}, nil
}

// splitBudget gives every voter budget[r]/n in each dimension.
func (r *runner) splitBudget() error {
	if r.prof.Len() == 0 {
		return ErrNoVoters
	}
	r.budgets = election.EqualSplit(r.inst.Budget(), r.prof.Len())

	return nil
}

// fund commits id: spends its cost, removes it and records it.
func (r *runner) fund(id election.ProjectID, phase Phase, score float64) {
	r.inst.Spend(r.inst.Cost(id))
	r.inst.Remove(id)
	r.funded.Add(id)
	if r.opts.OnFund != nil {
		r.opts.OnFund(Step{Project: id, Name: r.inst.ProjectName(id), Phase: phase, Score: score})
	}
}

// complete runs the Greedy pass over whatever is left, if enabled.
func (r *runner) complete() {
	if r.opts.Completion {
		r.greedy(Completion)
	}
}
