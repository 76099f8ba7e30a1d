// SPDX-License-Identifier: MIT

package analysis

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/lvpb/ejr"
	"github.com/katalvlaran/lvpb/election"
)

// ExclusionRatio returns the share of voters none of whose approved
// projects is funded by alloc. An empty profile yields 0.
func ExclusionRatio(prof *election.Profile, alloc election.Allocation) float64 {
	if prof.Len() == 0 {
		return 0
	}
	funded := alloc.Set()
	excluded := 0
	for _, b := range prof.Ballots() {
		if b.Set().Intersect(funded).Len() == 0 {
			excluded++
		}
	}

	return float64(excluded) / float64(prof.Len())
}

// VoterSatisfaction returns, per voter, the summed utility of the funded
// projects they approve under sat. A nil sat means ejr.Cost.
func VoterSatisfaction(inst *election.Instance, prof *election.Profile, alloc election.Allocation, sat ejr.Satisfaction) []float64 {
	if sat == nil {
		sat = ejr.Cost
	}
	out := make([]float64, prof.Len())
	for v, b := range prof.Ballots() {
		for _, id := range b.IDs() {
			if alloc.Has(id) {
				out[v] += sat.Utility(inst, id)
			}
		}
	}

	return out
}

// MeanExcludingOutliers returns the mean of the values inside
// [Q1 - 1.5·IQR, Q3 + 1.5·IQR]. Quartiles use linear interpolation of the
// empirical distribution. An empty input yields NaN.
func MeanExcludingOutliers(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)

	q1 := stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	q3 := stat.Quantile(0.75, stat.LinInterp, sorted, nil)
	iqr := q3 - q1
	lo, hi := q1-1.5*iqr, q3+1.5*iqr

	kept := sorted[:0:0]
	for _, x := range sorted {
		if x >= lo && x <= hi {
			kept = append(kept, x)
		}
	}

	return stat.Mean(kept, nil)
}

// Mean returns the arithmetic mean of xs, or NaN for an empty input.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}

	return stat.Mean(xs, nil)
}
