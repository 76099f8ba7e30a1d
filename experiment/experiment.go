// SPDX-License-Identifier: MIT

package experiment

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvpb/analysis"
	"github.com/katalvlaran/lvpb/ejr"
	"github.com/katalvlaran/lvpb/election"
	"github.com/katalvlaran/lvpb/rules"
)

// Sentinel errors returned by the runner.
var (
	// ErrNoRules indicates an empty rule set.
	ErrNoRules = errors.New("experiment: no rules given")

	// ErrUnknownMeasure indicates an unrecognized measure name.
	ErrUnknownMeasure = errors.New("experiment: unknown measure")
)

// Measure names a quantity recorded per (election, rule) pair.
type Measure int

const (
	// Runtime is the wall-clock time of the rule call in seconds.
	Runtime Measure = iota

	// Exclusion is the share of voters with no funded approved project.
	Exclusion

	// EJRConverted counts strong EJR+ violations on the converted instance.
	EJRConverted

	// EJRRestricted counts projects violating strong EJR+ in some dimension.
	EJRRestricted
)

var measureNames = [...]string{"runtime", "exclusion", "ejr-converted", "ejr-restricted"}

// String returns the measure's flag name.
func (m Measure) String() string {
	if m < 0 || int(m) >= len(measureNames) {
		return fmt.Sprintf("Measure(%d)", int(m))
	}

	return measureNames[m]
}

// ParseMeasure resolves a name produced by Measure.String.
func ParseMeasure(name string) (Measure, error) {
	for i, n := range measureNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Measure(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMeasure, name)
}

// AllMeasures lists every measure in declaration order.
func AllMeasures() []Measure {
	return []Measure{Runtime, Exclusion, EJRConverted, EJRRestricted}
}

// Election is one named input of a batch.
type Election struct {
	Name     string
	Instance *election.Instance
	Profile  *election.Profile
}

// Config controls a batch.
//
//   - Measures:    what to record (default AllMeasures()).
//   - UpToOne:     passed to the EJR+ checks (default true).
//   - Workers:     concurrent elections (default GOMAXPROCS).
//   - RuleOptions: forwarded to every rule call.
//   - Logger:      progress sink (default logr.Discard()).
type Config struct {
	Measures    []Measure
	UpToOne     bool
	Workers     int
	RuleOptions []rules.Option
	Logger      logr.Logger
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Measures: AllMeasures(),
		UpToOne:  true,
		Workers:  runtime.GOMAXPROCS(0),
		Logger:   logr.Discard(),
	}
}

// Result holds the measures of one rule on one election.
type Result struct {
	Election  string
	Rule      string
	Projects  int
	Voters    int
	Resources int
	Funded    []string
	Values    map[Measure]float64
	Err       error
}

// Bucket returns the project-count group of the election.
func (r Result) Bucket() string { return Bucket(r.Projects) }

// Run evaluates every rule on every election. Results are sorted by
// election then rule name.
//
// Errors: ErrNoRules, or the context error if ctx is cancelled.
func Run(ctx context.Context, elections []Election, rs map[string]rules.Func, cfg Config) ([]Result, error) {
	if len(rs) == 0 {
		return nil, ErrNoRules
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	names := make([]string, 0, len(rs))
	for n := range rs {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make([][]Result, len(elections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, e := range elections {
		g.Go(func() error {
			res := make([]Result, 0, len(names))
			for _, name := range names {
				if err := gctx.Err(); err != nil {
					return err
				}
				res = append(res, evaluate(e, name, rs[name], cfg))
			}
			out[i] = res
			cfg.Logger.V(1).Info("election done", "election", e.Name, "rules", len(names))

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	flat := make([]Result, 0, len(elections)*len(names))
	for _, res := range out {
		flat = append(flat, res...)
	}
	sort.SliceStable(flat, func(i, j int) bool {
		if flat[i].Election != flat[j].Election {
			return flat[i].Election < flat[j].Election
		}

		return flat[i].Rule < flat[j].Rule
	})

	return flat, nil
}

func evaluate(e Election, name string, rule rules.Func, cfg Config) Result {
	res := Result{
		Election:  e.Name,
		Rule:      name,
		Projects:  e.Instance.Len(),
		Voters:    e.Profile.Len(),
		Resources: e.Instance.Resources(),
		Values:    make(map[Measure]float64, len(cfg.Measures)),
	}

	start := time.Now()
	alloc, err := rule(e.Instance.Clone(), e.Profile.Clone(), cfg.RuleOptions...)
	elapsed := time.Since(start)
	if err != nil {
		cfg.Logger.Info("rule failed", "election", e.Name, "rule", name, "error", err.Error())
		res.Err = err
		return res
	}
	res.Funded = alloc.Names()

	for _, m := range cfg.Measures {
		switch m {
		case Runtime:
			res.Values[m] = elapsed.Seconds()
		case Exclusion:
			res.Values[m] = analysis.ExclusionRatio(e.Profile, alloc)
		case EJRConverted, EJRRestricted:
			check := ejr.Converted
			if m == EJRRestricted {
				check = ejr.Restricted
			}
			rep, err := check(e.Instance, e.Profile, alloc, ejr.WithUpToOne(cfg.UpToOne))
			if err != nil {
				res.Err = fmt.Errorf("%s: %w", m, err)
				return res
			}
			res.Values[m] = float64(rep.Count)
		}
	}

	return res
}
