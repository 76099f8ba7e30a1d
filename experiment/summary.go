// SPDX-License-Identifier: MIT

package experiment

import "github.com/katalvlaran/lvpb/analysis"

// Buckets lists the project-count groups in ascending order.
func Buckets() []string {
	return []string{"1-8", "9-13", "14-21", "22-38", "39+"}
}

// Bucket returns the project-count group of an election with n projects.
func Bucket(n int) string {
	switch {
	case n <= 8:
		return "1-8"
	case n <= 13:
		return "9-13"
	case n <= 21:
		return "14-21"
	case n <= 38:
		return "22-38"
	default:
		return "39+"
	}
}

// Summarize returns, per rule and per bucket, the outlier-robust mean of m.
// Failed results and results without m are skipped; empty groups are absent.
func Summarize(results []Result, m Measure) map[string]map[string]float64 {
	groups := make(map[string]map[string][]float64)
	for _, r := range results {
		v, ok := r.Values[m]
		if r.Err != nil || !ok {
			continue
		}
		if groups[r.Rule] == nil {
			groups[r.Rule] = make(map[string][]float64)
		}
		groups[r.Rule][r.Bucket()] = append(groups[r.Rule][r.Bucket()], v)
	}

	out := make(map[string]map[string]float64, len(groups))
	for rule, buckets := range groups {
		out[rule] = make(map[string]float64, len(buckets))
		for b, xs := range buckets {
			out[rule][b] = analysis.MeanExcludingOutliers(xs)
		}
	}

	return out
}
