// SPDX-License-Identifier: MIT

package ejr

import (
	"fmt"

	"github.com/katalvlaran/lvpb/election"
	"github.com/katalvlaran/lvpb/reduce"
)

// Restricted checks every resource dimension on its own and reports a
// project if it violates strong EJR+ in any of them.
//
// Errors: those of StrongViolations and reduce.Restrict.
func Restricted(inst *election.Instance, prof *election.Profile, outcome election.Allocation, opts ...Option) (Report, error) {
	if err := checkInputs(inst, prof); err != nil {
		return Report{}, err
	}
	var rep Report
	for d := 0; d < inst.Resources(); d++ {
		ri, rp, err := reduce.Restrict(inst, prof, d)
		if err != nil {
			return Report{}, fmt.Errorf("ejr: restrict dimension %d: %w", d, err)
		}
		sub, err := checkReduced(inst, outcome, ri, rp, opts)
		if err != nil {
			return Report{}, fmt.Errorf("ejr: dimension %d: %w", d, err)
		}
		rep.Violations = rep.Violations.Union(sub)
	}
	rep.fill(inst)

	return rep, nil
}

// Converted checks the single-dimension instance obtained by converting
// every dimension into units of dimension 0.
//
// Errors: those of StrongViolations and reduce.Convert.
func Converted(inst *election.Instance, prof *election.Profile, outcome election.Allocation, opts ...Option) (Report, error) {
	if err := checkInputs(inst, prof); err != nil {
		return Report{}, err
	}
	ci, cp, err := reduce.Convert(inst, prof)
	if err != nil {
		return Report{}, fmt.Errorf("ejr: convert: %w", err)
	}
	var rep Report
	if rep.Violations, err = checkReduced(inst, outcome, ci, cp, opts); err != nil {
		return Report{}, err
	}
	rep.fill(inst)

	return rep, nil
}

// checkReduced runs the check on a reduced election and maps the violating
// projects back to inst's catalog.
func checkReduced(inst *election.Instance, outcome election.Allocation, ri *election.Instance, rp *election.Profile, opts []Option) (election.ProjectSet, error) {
	ro, err := reduce.MapAllocation(outcome, inst, ri)
	if err != nil {
		return election.ProjectSet{}, err
	}
	sub, err := StrongViolations(ri, rp, ro, opts...)
	if err != nil {
		return election.ProjectSet{}, err
	}

	var out election.ProjectSet
	for _, name := range sub.Names {
		if id, ok := inst.Lookup(name); ok {
			out.Add(id)
		}
	}

	return out, nil
}
