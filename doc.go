// SPDX-License-Identifier: MIT

// Package lvpb computes and verifies fair allocations in multi-resource
// participatory budgeting.
//
// Projects cost a vector of amounts, one per independent budget dimension
// (money, staff-hours, ...). Given a per-dimension budget limit and the
// voters' approval ballots, the rules select a feasible set of projects,
// and the checker certifies whether that set satisfies strong EJR+.
//
// Packages:
//
//	election/    projects, instances, ballots, profiles, allocations, voter budgets
//	afford/      rho, rho-epsilon and alpha-rho affordability
//	rules/       Greedy, Method of Equal Shares, Exchange-Rate mechanism
//	reduce/      restriction to one dimension and currency conversion
//	ejr/         strong EJR+ violation checker (direct, restricted, converted)
//	analysis/    exclusion ratio, voter satisfaction, robust means
//	pabulib/     reader for the pabulib exchange format
//	experiment/  concurrent batch evaluation and bucketed summaries
//	cmd/pbvote   command-line front end
//
// Quick example:
//
//	inst, _ := election.NewInstance([]election.Project{
//		election.NewProject("Park", 6, 2),
//		election.NewProject("Pool", 2, 9),
//	}, []float64{10, 10})
//	b, _ := election.NewBallot(inst, "Park", "Pool")
//	prof, _ := election.NewProfile(inst, b, b)
//	alloc, _ := rules.EqualShares(inst, prof)
//	rep, _ := ejr.Converted(inst, prof, alloc)
//
// Every rule works on a private clone of the instance, so inputs can be
// shared between calls and goroutines.
package lvpb
