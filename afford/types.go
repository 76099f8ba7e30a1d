// SPDX-License-Identifier: MIT

package afford

import (
	"errors"
	"math"
	"strings"
)

// ErrNotTwoResources is returned by RhoEpsilon for inputs that are not
// exactly two-dimensional.
var ErrNotTwoResources = errors.New("afford: exactly two resources required")

// Aggregator folds a per-dimension rho vector into one value.
type Aggregator interface {
	Aggregate(rho []float64) float64
}

// AggregatorFunc adapts a plain function to Aggregator.
type AggregatorFunc func([]float64) float64

// Aggregate calls f(rho).
func (f AggregatorFunc) Aggregate(rho []float64) float64 { return f(rho) }

// Predefined aggregators. Max is the default everywhere.
var (
	Max Aggregator = AggregatorFunc(func(v []float64) float64 {
		out := math.Inf(-1)
		for _, x := range v {
			out = math.Max(out, x)
		}

		return out
	})

	Min Aggregator = AggregatorFunc(func(v []float64) float64 {
		out := math.Inf(1)
		for _, x := range v {
			out = math.Min(out, x)
		}

		return out
	})

	Sum Aggregator = AggregatorFunc(func(v []float64) float64 {
		var s float64
		for _, x := range v {
			s += x
		}

		return s
	})

	Mean Aggregator = AggregatorFunc(func(v []float64) float64 {
		if len(v) == 0 {
			return 0
		}

		return Sum.Aggregate(v) / float64(len(v))
	})
)

// ParseAggregator maps "max", "min", "sum" and "mean" to an Aggregator.
// Unknown names yield (Max, false).
func ParseAggregator(name string) (Aggregator, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "max", "":
		return Max, true
	case "min":
		return Min, true
	case "sum":
		return Sum, true
	case "mean", "avg":
		return Mean, true
	default:
		return Max, false
	}
}

// EpsilonMode selects how RhoEpsilon measures conversion friction.
type EpsilonMode int

const (
	// Relative is the Absolute friction divided by the converted project cost.
	Relative EpsilonMode = iota

	// Absolute sums, over supporters, the unmet equal share in each native
	// dimension, converted to the reference unit.
	Absolute

	// Count is the number of supporters short in exactly one dimension.
	Count
)

// String returns "rel", "abs" or "count".
func (m EpsilonMode) String() string {
	switch m {
	case Absolute:
		return "abs"
	case Count:
		return "count"
	default:
		return "rel"
	}
}

// ParseEpsilonMode maps "abs", "count" and "rel"; anything else is Relative.
func ParseEpsilonMode(s string) EpsilonMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "abs", "absolute":
		return Absolute
	case "count":
		return Count
	default:
		return Relative
	}
}

// Result is the outcome of Rho for one project.
type Result struct {
	// Aggregate is the folded value, +Inf if any dimension is unaffordable.
	Aggregate float64

	// PerDimension holds rho_r for every dimension.
	PerDimension []float64
}

// Affordable reports whether the aggregate is finite.
func (r Result) Affordable() bool { return !math.IsInf(r.Aggregate, 1) }

// Pair is one (alpha, rho) option produced by AlphaRho.
type Pair struct {
	Alpha float64
	Rho   float64
}
