// SPDX-License-Identifier: MIT

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvpb/afford"
	"github.com/katalvlaran/lvpb/rules"
)

func TestExchangeRates_RejectsWrongDimensions(t *testing.T) {
	inst, prof := build(t, []float64{10}, []proj{{"A", []float64{1}}}, []string{"A"})
	_, err := rules.ExchangeRates(inst, prof)
	require.ErrorIs(t, err, rules.ErrNotTwoResources)

	inst, prof = build(t, []float64{1, 1, 1}, []proj{{"A", []float64{1, 1, 1}}}, []string{"A"})
	_, err = rules.ExchangeRates(inst, prof)
	require.ErrorIs(t, err, rules.ErrNotTwoResources)
}

func TestExchangeRates_DirectPayment(t *testing.T) {
	// Both voters hold (5, 5); neither project needs a conversion.
	inst, prof := build(t, []float64{10, 10},
		[]proj{{"X", []float64{8, 2}}, {"Y", []float64{2, 8}}},
		[]string{"X", "Y"}, []string{"X", "Y"})

	var order []string
	alloc, err := rules.ExchangeRates(inst, prof, rules.WithCompletion(false),
		rules.WithOnFund(func(s rules.Step) { order = append(order, s.Name) }))
	require.NoError(t, err)
	require.Equal(t, []string{"X", "Y"}, alloc.Names())
	require.Equal(t, []string{"X", "Y"}, order)
}

func TestExchangeRates_ConvertsSurplus(t *testing.T) {
	// Each voter holds (4, 4). P needs (2, 6) from voter 0 alone and Q needs
	// (5, 1) from voter 1 alone: both are only payable by converting.
	inst, prof := build(t, []float64{8, 8},
		[]proj{{"P", []float64{2, 6}}, {"Q", []float64{5, 1}}},
		[]string{"P"}, []string{"Q"})

	// Without conversion Equal Shares funds neither.
	mes, err := rules.EqualShares(inst, prof, rules.WithCompletion(false))
	require.NoError(t, err)
	require.Equal(t, 0, mes.Len())

	var order []string
	alloc, err := rules.ExchangeRates(inst, prof, rules.WithCompletion(false),
		rules.WithOnFund(func(s rules.Step) { order = append(order, s.Name) }))
	require.NoError(t, err)
	require.Equal(t, []string{"P", "Q"}, alloc.Names())
	// Q has the lower relative friction (1/6 against 1/4) so it goes first.
	require.Equal(t, []string{"Q", "P"}, order)
	requireFeasible(t, inst, alloc)
}

func TestExchangeRates_FeasibleAndDeterministic(t *testing.T) {
	modes := []afford.EpsilonMode{afford.Relative, afford.Absolute, afford.Count}
	for seed := uint64(1); seed <= 8; seed++ {
		inst, prof := randomElection(t, seed, 12, 25, []float64{60, 40}, 0.35)
		for _, mode := range modes {
			first, err := rules.ExchangeRates(inst, prof, rules.WithEpsilonMode(mode))
			require.NoError(t, err)
			requireFeasible(t, inst, first)

			second, err := rules.ExchangeRates(inst, prof, rules.WithEpsilonMode(mode))
			require.NoError(t, err)
			require.Equal(t, first.Names(), second.Names(), "seed %d mode %s", seed, mode)
		}
	}
}
