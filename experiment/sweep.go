// SPDX-License-Identifier: MIT

package experiment

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvpb/afford"
	"github.com/katalvlaran/lvpb/analysis"
	"github.com/katalvlaran/lvpb/election"
	"github.com/katalvlaran/lvpb/rules"
)

// ErrBadResources indicates a resource sweep bound below one.
var ErrBadResources = errors.New("experiment: resource count must be at least 1")

// ErrTooFewAggregators indicates fewer than two aggregators to compare.
var ErrTooFewAggregators = errors.New("experiment: at least two aggregators are needed")

// Loader builds the batch with every election split into the given number
// of resource dimensions.
type Loader func(resources int) ([]Election, error)

// ResourceSweep rebuilds the batch for every resource count 1..maxResources
// through load and runs every rule on it. Each Result records its resource
// count; results are ordered by resource count, then election, then rule.
//
// Errors: ErrBadResources, ErrNoRules, loader errors, or the context error.
func ResourceSweep(ctx context.Context, load Loader, maxResources int, rs map[string]rules.Func, cfg Config) ([]Result, error) {
	if maxResources < 1 {
		return nil, ErrBadResources
	}
	if len(rs) == 0 {
		return nil, ErrNoRules
	}

	var out []Result
	for n := 1; n <= maxResources; n++ {
		elections, err := load(n)
		if err != nil {
			return nil, fmt.Errorf("experiment: load %d resources: %w", n, err)
		}
		res, err := Run(ctx, elections, rs, cfg)
		if err != nil {
			return nil, err
		}
		cfg.Logger.V(1).Info("resource count done", "resources", n, "elections", len(elections))
		out = append(out, res...)
	}

	return out, nil
}

// SummarizeByResources returns, per rule and per resource count, the mean
// of m. Failed results and results without m are skipped.
func SummarizeByResources(results []Result, m Measure) map[string]map[int]float64 {
	groups := make(map[string]map[int][]float64)
	for _, r := range results {
		v, ok := r.Values[m]
		if r.Err != nil || !ok {
			continue
		}
		if groups[r.Rule] == nil {
			groups[r.Rule] = make(map[int][]float64)
		}
		groups[r.Rule][r.Resources] = append(groups[r.Rule][r.Resources], v)
	}

	out := make(map[string]map[int]float64, len(groups))
	for rule, counts := range groups {
		out[rule] = make(map[int]float64, len(counts))
		for n, xs := range counts {
			out[rule][n] = analysis.Mean(xs)
		}
	}

	return out
}

// DefaultAggregators returns the predefined rho aggregators by name.
func DefaultAggregators() map[string]afford.Aggregator {
	return map[string]afford.Aggregator{
		"max":  afford.Max,
		"min":  afford.Min,
		"sum":  afford.Sum,
		"mean": afford.Mean,
	}
}

// Difference reports how often two aggregators lead EqualShares to
// different outcomes.
//
// Share is Differing/Total, where Total counts the elections on which both
// runs succeeded (0 if there were none).
type Difference struct {
	A, B      string
	Differing int
	Total     int
	Share     float64
}

// CompareAggregators runs EqualShares without completion under every
// aggregator of aggs on every election and counts, for each pair of
// aggregator names in sorted order, the elections where the funded sets
// differ. Elections are processed concurrently with cfg.Workers.
//
// cfg.RuleOptions are applied before the aggregator and the disabled
// completion, so neither can be overridden.
//
// Errors: ErrTooFewAggregators, or the context error.
func CompareAggregators(ctx context.Context, elections []Election, aggs map[string]afford.Aggregator, cfg Config) ([]Difference, error) {
	if len(aggs) < 2 {
		return nil, ErrTooFewAggregators
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	names := make([]string, 0, len(aggs))
	for n := range aggs {
		names = append(names, n)
	}
	sort.Strings(names)

	// outcomes[i][k] is the funded set of election i under names[k]; nil
	// when the run failed.
	outcomes := make([][]*election.ProjectSet, len(elections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, e := range elections {
		g.Go(func() error {
			row := make([]*election.ProjectSet, len(names))
			for k, name := range names {
				if err := gctx.Err(); err != nil {
					return err
				}
				opts := append(append([]rules.Option(nil), cfg.RuleOptions...),
					rules.WithAggregator(aggs[name]), rules.WithCompletion(false))
				alloc, err := rules.EqualShares(e.Instance.Clone(), e.Profile.Clone(), opts...)
				if err != nil {
					cfg.Logger.Info("rule failed", "election", e.Name, "aggregator", name, "error", err.Error())
					continue
				}
				set := alloc.Set()
				row[k] = &set
			}
			outcomes[i] = row

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var diffs []Difference
	for a := 0; a < len(names); a++ {
		for b := a + 1; b < len(names); b++ {
			d := Difference{A: names[a], B: names[b]}
			for _, row := range outcomes {
				if row[a] == nil || row[b] == nil {
					continue
				}
				d.Total++
				if !row[a].Equal(*row[b]) {
					d.Differing++
				}
			}
			if d.Total > 0 {
				d.Share = float64(d.Differing) / float64(d.Total)
			}
			diffs = append(diffs, d)
		}
	}

	return diffs, nil
}
