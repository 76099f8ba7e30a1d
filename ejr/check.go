// SPDX-License-Identifier: MIT

package ejr

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvpb/election"
)

// Report is the outcome of a violation check.
//
// Violations is expressed over the catalog of the instance that was passed
// in; Names lists the same projects in ID (name) order.
type Report struct {
	Count      int
	Violations election.ProjectSet
	Names      []string
}

// StrongViolations returns every active project outside outcome that
// violates strong EJR+.
//
// Errors: ErrNilInstance, ErrNilProfile, ErrNoVoters, ErrMismatch.
func StrongViolations(inst *election.Instance, prof *election.Profile, outcome election.Allocation, opts ...Option) (Report, error) {
	if err := checkInputs(inst, prof); err != nil {
		return Report{}, err
	}
	if !prof.BoundTo(inst) || (outcome.Len() > 0 && !outcome.BoundTo(inst)) {
		return Report{}, ErrMismatch
	}
	if prof.Len() == 0 {
		return Report{}, ErrNoVoters
	}

	ch := newChecker(inst, prof, gather(opts))
	var rep Report
	funded := outcome.Set()
	for _, c := range inst.IDs() {
		if funded.Has(c) {
			continue
		}
		if ch.violates(funded, c) {
			rep.Violations.Add(c)
			ch.opts.Logger.V(1).Info("strong EJR+ violation", "project", inst.ProjectName(c))
		}
	}
	rep.fill(inst)

	return rep, nil
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

func (r *Report) fill(inst *election.Instance) {
	r.Count = r.Violations.Len()
	r.Names = r.Names[:0]
	for _, id := range r.Violations.IDs() {
		r.Names = append(r.Names, inst.ProjectName(id))
	}
}

// String renders the count and the violating names.
func (r Report) String() string {
	return fmt.Sprintf("%d violation(s) %v", r.Count, r.Names)
}

// checker holds the per-call utility tables.
type checker struct {
	util      []float64              // utility per catalog id
	cost      []float64              // scalar cost per catalog id
	approved  [][]election.ProjectID // per voter, projects with positive utility
	threshold float64
	opts      Options
}

func newChecker(inst *election.Instance, prof *election.Profile, opts Options) *checker {
	n := inst.CatalogSize()
	ch := &checker{
		util:      make([]float64, n),
		cost:      make([]float64, n),
		approved:  make([][]election.ProjectID, prof.Len()),
		threshold: inst.TotalBudget() / float64(prof.Len()),
		opts:      opts,
	}
	for id := election.ProjectID(0); int(id) < n; id++ {
		ch.util[id] = opts.Satisfaction.Utility(inst, id)
		for _, c := range inst.Cost(id) {
			ch.cost[id] += c
		}
	}
	for v := range ch.approved {
		for _, id := range prof.Ballot(v).IDs() {
			if ch.util[id] > 0 {
				ch.approved[v] = append(ch.approved[v], id)
			}
		}
	}

	return ch
}

// violates runs the coalition-shrinking sweeps for candidate c.
func (ch *checker) violates(outcome election.ProjectSet, c election.ProjectID) bool {
	ext := outcome.Clone()
	ext.Add(c)

	sat := make(map[election.ProjectID]float64, ext.Len())
	members := make([][]election.ProjectID, len(ch.approved))
	var active []int
	for v, ids := range ch.approved {
		for _, p := range ids {
			if ext.Has(p) {
				members[v] = append(members[v], p)
				sat[p] += ch.util[p]
			}
		}
		if len(members[v]) > 0 {
			active = append(active, v)
		}
	}

	tol := ch.opts.Tolerance
	for len(active) > 0 && sat[c] > tol {
		capC := ch.cost[c] / sat[c]

		var kept, leaving []int
		for _, v := range active {
			var realized float64
			for _, p := range members[v] {
				if p == c && ch.opts.UpToOne {
					continue
				}
				if sat[p] <= tol {
					continue
				}
				realized += ch.util[p] * math.Min(ch.cost[p]/sat[p], capC)
			}
			if realized > ch.threshold {
				leaving = append(leaving, v)
			} else {
				kept = append(kept, v)
			}
		}
		if len(leaving) == 0 {
			return true
		}
		for _, v := range leaving {
			for _, p := range members[v] {
				sat[p] -= ch.util[p]
			}
		}
		active = kept
	}

	return false
}
