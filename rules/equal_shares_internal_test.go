// SPDX-License-Identifier: MIT

package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqualShares_SupportersPayTheirShare(t *testing.T) {
	// Budget 9 over 3 voters, one project of cost 9: rho = 1/3 and every
	// voter pays exactly its budget of 3.
	r := newTestRunner(t, []float64{9}, []float64{9}, 3)
	for v := 0; v < 3; v++ {
		require.InDelta(t, 3, r.budgets.At(v, 0), 1e-12)
	}

	r.equalShares()

	require.True(t, r.funded.Has(0))
	for v := 0; v < 3; v++ {
		require.InDelta(t, 0, r.budgets.At(v, 0), 1e-12, "voter %d", v)
	}
	require.InDeltaSlice(t, []float64{0}, r.inst.Budget(), 1e-12)
}

func TestEqualShares_PaymentIsCappedByRho(t *testing.T) {
	// Budget 12 gives each voter 4; the project only needs cost·rho = 2 from each.
	r := newTestRunner(t, []float64{12}, []float64{6}, 3)

	r.equalShares()

	require.True(t, r.funded.Has(0))
	for v := 0; v < 3; v++ {
		require.InDelta(t, 2, r.budgets.At(v, 0), 1e-12, "voter %d", v)
	}
	require.InDeltaSlice(t, []float64{6}, r.inst.Budget(), 1e-12)
}
