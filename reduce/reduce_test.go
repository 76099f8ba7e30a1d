// SPDX-License-Identifier: MIT

package reduce_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvpb/election"
	"github.com/katalvlaran/lvpb/reduce"
)

func twoDim(t *testing.T) (*election.Instance, *election.Profile) {
	t.Helper()
	inst, err := election.NewInstance([]election.Project{
		election.NewProject("A", 4, 1),
		election.NewProject("B", 2, 3),
		election.NewProject("C", 1, 1),
	}, []float64{10, 5})
	require.NoError(t, err)

	var ballots []election.Ballot
	for _, names := range [][]string{{"A", "B"}, {"B"}, {"A", "C"}} {
		b, err := election.NewBallot(inst, names...)
		require.NoError(t, err)
		ballots = append(ballots, b)
	}
	prof, err := election.NewProfile(inst, ballots...)
	require.NoError(t, err)

	return inst, prof
}

// approvals renders ballots as name lists for comparison across catalogs.
func approvals(inst *election.Instance, prof *election.Profile) [][]string {
	out := make([][]string, prof.Len())
	for v := range out {
		for _, id := range prof.Ballot(v).IDs() {
			out[v] = append(out[v], inst.ProjectName(id))
		}
	}

	return out
}

func TestRestrict(t *testing.T) {
	inst, prof := twoDim(t)
	r1, p1, err := reduce.Restrict(inst, prof, 1)
	require.NoError(t, err)
	require.Equal(t, []float64{5}, r1.Budget())

	a, _ := r1.Lookup("A")
	require.Equal(t, []float64{1}, r1.Cost(a))
	if diff := cmp.Diff(approvals(inst, prof), approvals(r1, p1)); diff != "" {
		t.Fatalf("ballots changed (-want +got):\n%s", diff)
	}

	_, _, err = reduce.Restrict(inst, prof, 2)
	require.ErrorIs(t, err, reduce.ErrDimensionOutOfRange)
}

func TestConvert_RoundTripPreservesCostAndApprovals(t *testing.T) {
	inst, prof := twoDim(t)
	rates, err := reduce.ExchangeRates(inst.Budget())
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, rates)

	conv, cprof, err := reduce.Convert(inst, prof)
	require.NoError(t, err)
	require.Equal(t, []float64{20}, conv.Budget())

	// Mapping back by name recovers every project with its total reference cost.
	for _, id := range inst.IDs() {
		name := inst.ProjectName(id)
		cid, ok := conv.Lookup(name)
		require.True(t, ok, name)

		var want float64
		for d, c := range inst.Cost(id) {
			want += c * rates[d]
		}
		require.InDelta(t, want, conv.Cost(cid)[0], 1e-12, name)
	}
	if diff := cmp.Diff(approvals(inst, prof), approvals(conv, cprof)); diff != "" {
		t.Fatalf("ballots changed (-want +got):\n%s", diff)
	}
}

func TestConvert_ZeroBudget(t *testing.T) {
	inst, err := election.NewInstance(nil, []float64{3, 0})
	require.NoError(t, err)
	prof, err := election.NewProfile(inst)
	require.NoError(t, err)
	_, _, err = reduce.Convert(inst, prof)
	require.ErrorIs(t, err, reduce.ErrZeroBudget)
}

func TestMapAllocation(t *testing.T) {
	inst, prof := twoDim(t)
	alloc, err := election.AllocationOf(inst, "A", "C")
	require.NoError(t, err)

	r0, _, err := reduce.Restrict(inst, prof, 0)
	require.NoError(t, err)
	mapped, err := reduce.MapAllocation(alloc, inst, r0)
	require.NoError(t, err)
	require.True(t, mapped.BoundTo(r0))
	require.Equal(t, []string{"A", "C"}, mapped.Names())

	_, err = reduce.MapAllocation(alloc, r0, inst)
	require.ErrorIs(t, err, election.ErrCatalogMismatch)

	_, otherProf := twoDim(t)
	_, _, err = reduce.Restrict(inst, otherProf, 0)
	require.ErrorIs(t, err, reduce.ErrMismatch)
}

func TestReductions_NilInputs(t *testing.T) {
	inst, prof := twoDim(t)

	_, _, err := reduce.Restrict(inst, nil, 0)
	require.ErrorIs(t, err, reduce.ErrNilProfile)
	_, _, err = reduce.Restrict(nil, prof, 0)
	require.ErrorIs(t, err, reduce.ErrNilInstance)

	_, _, err = reduce.Convert(inst, nil)
	require.ErrorIs(t, err, reduce.ErrNilProfile)
	_, _, err = reduce.Convert(nil, prof)
	require.ErrorIs(t, err, reduce.ErrNilInstance)
}
