// SPDX-License-Identifier: MIT

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvpb/afford"
	"github.com/katalvlaran/lvpb/rules"
)

func TestEqualShares_WorkedExample(t *testing.T) {
	inst, prof := build(t, []float64{9},
		[]proj{{"P", []float64{9}}},
		[]string{"P"}, []string{"P"}, []string{"P"})

	var steps []rules.Step
	alloc, err := rules.EqualShares(inst, prof, rules.WithOnFund(func(s rules.Step) { steps = append(steps, s) }))
	require.NoError(t, err)
	require.Equal(t, []string{"P"}, alloc.Names())
	require.Len(t, steps, 1)
	assert.InDelta(t, 1.0/3, steps[0].Score, 1e-12)
	assert.Equal(t, rules.Primary, steps[0].Phase)
}

func TestEqualShares_CompletionSpendsLeftover(t *testing.T) {
	// Voter 0 alone cannot justify Big (8 > 5) but Greedy completion can.
	inst, prof := build(t, []float64{10},
		[]proj{{"Big", []float64{8}}, {"Small", []float64{2}}},
		[]string{"Big"}, []string{"Small"})

	alloc, err := rules.EqualShares(inst, prof, rules.WithCompletion(false))
	require.NoError(t, err)
	require.Equal(t, []string{"Small"}, alloc.Names())

	var phases []rules.Phase
	alloc, err = rules.EqualShares(inst, prof, rules.WithOnFund(func(s rules.Step) { phases = append(phases, s.Phase) }))
	require.NoError(t, err)
	require.Equal(t, []string{"Big", "Small"}, alloc.Names())
	require.Equal(t, []rules.Phase{rules.Primary, rules.Completion}, phases)
}

func TestEqualShares_TwoResources(t *testing.T) {
	// Both voters hold (5, 5). X needs (6, 2): affordable in both dimensions.
	// Y needs (2, 9) but its single supporter only holds 5 in dimension 1.
	inst, prof := build(t, []float64{10, 10},
		[]proj{{"X", []float64{6, 2}}, {"Y", []float64{2, 9}}},
		[]string{"X"}, []string{"X", "Y"})

	alloc, err := rules.EqualShares(inst, prof, rules.WithCompletion(false))
	require.NoError(t, err)
	require.Equal(t, []string{"X"}, alloc.Names())

	// With Min aggregation Y is still unaffordable: infinity dominates.
	alloc, err = rules.EqualShares(inst, prof, rules.WithCompletion(false), rules.WithAggregator(afford.Min))
	require.NoError(t, err)
	require.Equal(t, []string{"X"}, alloc.Names())
}

func TestEqualShares_FeasibleAndDeterministic(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		inst, prof := randomElection(t, seed, 10, 20, []float64{50, 30, 20}, 0.4)

		first, err := rules.EqualShares(inst, prof)
		require.NoError(t, err)
		requireFeasible(t, inst, first)

		second, err := rules.EqualShares(inst, prof)
		require.NoError(t, err)
		require.Equal(t, first.Names(), second.Names())
	}
}
