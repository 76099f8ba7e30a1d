// SPDX-License-Identifier: MIT

package experiment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvpb/afford"
	"github.com/katalvlaran/lvpb/election"
	"github.com/katalvlaran/lvpb/experiment"
	"github.com/katalvlaran/lvpb/rules"
)

func TestResourceSweep(t *testing.T) {
	var loaded []int
	load := func(n int) ([]experiment.Election, error) {
		loaded = append(loaded, n)
		return elections(t, 3, n), nil
	}
	rs := map[string]rules.Func{"greedy": rules.Greedy, "mes": rules.EqualShares}
	cfg := experiment.DefaultConfig()
	cfg.Measures = []experiment.Measure{experiment.Exclusion}

	results, err := experiment.ResourceSweep(context.Background(), load, 3, rs, cfg)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, loaded)
	require.Len(t, results, 3*3*2)
	for i, r := range results {
		assert.Equal(t, i/6+1, r.Resources)
		require.NoError(t, r.Err)
	}

	summary := experiment.SummarizeByResources(results, experiment.Exclusion)
	require.Len(t, summary, 2)
	for _, rule := range []string{"greedy", "mes"} {
		assert.Len(t, summary[rule], 3, rule)
	}
}

func TestResourceSweep_Errors(t *testing.T) {
	rs := map[string]rules.Func{"greedy": rules.Greedy}
	cfg := experiment.DefaultConfig()

	_, err := experiment.ResourceSweep(context.Background(), nil, 0, rs, cfg)
	require.ErrorIs(t, err, experiment.ErrBadResources)

	errLoad := errors.New("disk on fire")
	_, err = experiment.ResourceSweep(context.Background(), func(int) ([]experiment.Election, error) {
		return nil, errLoad
	}, 2, rs, cfg)
	require.ErrorIs(t, err, errLoad)
}

func TestSummarizeByResources_SkipsFailures(t *testing.T) {
	results := []experiment.Result{
		{Rule: "mes", Resources: 1, Values: map[experiment.Measure]float64{experiment.Exclusion: 0.2}},
		{Rule: "mes", Resources: 1, Values: map[experiment.Measure]float64{experiment.Exclusion: 0.6}},
		{Rule: "mes", Resources: 2, Err: rules.ErrNoVoters},
	}
	got := experiment.SummarizeByResources(results, experiment.Exclusion)
	assert.InDelta(t, 0.4, got["mes"][1], 1e-12)
	assert.NotContains(t, got["mes"], 2)
}

// aggregatorElections returns one election on which Max disagrees with the
// other aggregators and one on which all agree.
func aggregatorElections(t *testing.T) []experiment.Election {
	t.Helper()
	// X costs nothing in dimension 1, so Min ranks it first; its single
	// supporter makes its rho in dimension 0 high, so Max prefers Y.
	split, err := election.NewInstance([]election.Project{
		election.NewProject("X", 4, 0),
		election.NewProject("Y", 3, 3),
	}, []float64{10, 10})
	require.NoError(t, err)
	b0, err := election.NewBallot(split, "X", "Y")
	require.NoError(t, err)
	b1, err := election.NewBallot(split, "Y")
	require.NoError(t, err)
	splitProf, err := election.NewProfile(split, b0, b1)
	require.NoError(t, err)

	agree, err := election.NewInstance([]election.Project{election.NewProject("P", 2, 2)}, []float64{10, 10})
	require.NoError(t, err)
	bp, err := election.NewBallot(agree, "P")
	require.NoError(t, err)
	agreeProf, err := election.NewProfile(agree, bp, bp)
	require.NoError(t, err)

	return []experiment.Election{
		{Name: "split", Instance: split, Profile: splitProf},
		{Name: "agree", Instance: agree, Profile: agreeProf},
	}
}

func TestCompareAggregators(t *testing.T) {
	cfg := experiment.DefaultConfig()
	cfg.Workers = 2

	diffs, err := experiment.CompareAggregators(context.Background(), aggregatorElections(t), experiment.DefaultAggregators(), cfg)
	require.NoError(t, err)
	require.Len(t, diffs, 6)

	want := map[[2]string]int{
		{"max", "mean"}: 1, {"max", "min"}: 1, {"max", "sum"}: 1,
		{"mean", "min"}: 0, {"mean", "sum"}: 0, {"min", "sum"}: 0,
	}
	for _, d := range diffs {
		assert.Less(t, d.A, d.B)
		assert.Equal(t, 2, d.Total, "%s/%s", d.A, d.B)
		assert.Equal(t, want[[2]string{d.A, d.B}], d.Differing, "%s/%s", d.A, d.B)
		assert.InDelta(t, float64(d.Differing)/2, d.Share, 1e-12)
	}
}

func TestCompareAggregators_Errors(t *testing.T) {
	_, err := experiment.CompareAggregators(context.Background(), nil,
		map[string]afford.Aggregator{"max": afford.Max}, experiment.DefaultConfig())
	require.ErrorIs(t, err, experiment.ErrTooFewAggregators)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = experiment.CompareAggregators(ctx, aggregatorElections(t), experiment.DefaultAggregators(), experiment.DefaultConfig())
	require.ErrorIs(t, err, context.Canceled)
}
