// SPDX-License-Identifier: MIT

package rules_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvpb/election"
)

// feasTol absorbs floating-point residue in feasibility checks.
const feasTol = 1e-9

// proj is a compact project literal used by fixtures.
type proj struct {
	name string
	cost []float64
}

// build returns an instance and a profile where ballots[i] lists voter i's approvals.
func build(t *testing.T, budget []float64, projects []proj, ballots ...[]string) (*election.Instance, *election.Profile) {
	t.Helper()
	ps := make([]election.Project, len(projects))
	for i, p := range projects {
		ps[i] = election.NewProject(p.name, p.cost...)
	}
	inst, err := election.NewInstance(ps, budget)
	require.NoError(t, err)

	bs := make([]election.Ballot, len(ballots))
	for i, names := range ballots {
		bs[i], err = election.NewBallot(inst, names...)
		require.NoError(t, err)
	}
	prof, err := election.NewProfile(inst, bs...)
	require.NoError(t, err)

	return inst, prof
}

// randomElection builds a seeded random instance with approval probability p.
func randomElection(t *testing.T, seed uint64, projects, voters int, budget []float64, p float64) (*election.Instance, *election.Profile) {
	t.Helper()
	minCost := make([]int, len(budget))
	maxCost := make([]int, len(budget))
	for r, b := range budget {
		minCost[r] = 1
		maxCost[r] = int(b / 2)
	}
	inst, err := election.RandomInstance(projects, minCost, maxCost, budget, seed)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(seed, seed+1))
	ballots := make([]election.Ballot, voters)
	for v := range ballots {
		var ids []election.ProjectID
		for _, id := range inst.IDs() {
			if rng.Float64() < p {
				ids = append(ids, id)
			}
		}
		ballots[v] = election.BallotOf(ids...)
	}
	prof, err := election.NewProfile(inst, ballots...)
	require.NoError(t, err)

	return inst, prof
}

// requireFeasible asserts that alloc fits inst's budget limit elementwise.
func requireFeasible(t *testing.T, inst *election.Instance, alloc election.Allocation) {
	t.Helper()
	total := inst.TotalCost(alloc.Set())
	for r, b := range inst.Budget() {
		require.LessOrEqualf(t, total[r], b+feasTol, "dimension %d over budget", r)
	}
}
