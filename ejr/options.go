// SPDX-License-Identifier: MIT

package ejr

import (
	"errors"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/lvpb/election"
)

// Sentinel errors returned by the checker.
var (
	// ErrNilInstance indicates that a nil *election.Instance was passed.
	ErrNilInstance = errors.New("ejr: instance is nil")

	// ErrNilProfile indicates that a nil *election.Profile was passed.
	ErrNilProfile = errors.New("ejr: profile is nil")

	// ErrNoVoters indicates an empty profile; the threshold is undefined.
	ErrNoVoters = errors.New("ejr: profile has no voters")

	// ErrMismatch indicates a profile or outcome bound to another catalog.
	ErrMismatch = errors.New("ejr: profile or outcome does not belong to instance")

	// ErrBadTolerance indicates a negative tolerance (raised via panic).
	ErrBadTolerance = errors.New("ejr: tolerance must be non-negative")
)

// Satisfaction values a single approved project for a voter.
type Satisfaction interface {
	Utility(inst *election.Instance, id election.ProjectID) float64
}

// SatisfactionFunc adapts a plain function to Satisfaction.
type SatisfactionFunc func(inst *election.Instance, id election.ProjectID) float64

// Utility calls f.
func (f SatisfactionFunc) Utility(inst *election.Instance, id election.ProjectID) float64 {
	return f(inst, id)
}

// Predefined satisfaction functions.
var (
	// Cost values a project at the sum of its cost vector.
	Cost Satisfaction = SatisfactionFunc(func(inst *election.Instance, id election.ProjectID) float64 {
		var s float64
		for _, c := range inst.Cost(id) {
			s += c
		}

		return s
	})

	// Cardinality values every project at 1.
	Cardinality Satisfaction = SatisfactionFunc(func(*election.Instance, election.ProjectID) float64 { return 1 })
)

// Options configures the checker.
//
//   - Satisfaction: per-project utility (default Cost).
//   - UpToOne:      leave the candidate's own term out of the credit (default true).
//   - Tolerance:    sat values at or below it count as zero (default 1e-10).
//   - Logger:       diagnostics sink (default logr.Discard()).
type Options struct {
	Satisfaction Satisfaction
	UpToOne      bool
	Tolerance    float64
	Logger       logr.Logger
}

// Option is a functional option for the checker.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Satisfaction: Cost,
		UpToOne:      true,
		Tolerance:    1e-10,
		Logger:       logr.Discard(),
	}
}

// WithSatisfaction sets the utility function; nil keeps the default.
func WithSatisfaction(s Satisfaction) Option {
	return func(o *Options) {
		if s != nil {
			o.Satisfaction = s
		}
	}
}

// WithUpToOne toggles exclusion of the candidate's own term.
func WithUpToOne(enabled bool) Option {
	return func(o *Options) { o.UpToOne = enabled }
}

// WithTolerance sets the residue treated as zero.
// Panics with ErrBadTolerance on negative values.
func WithTolerance(eps float64) Option {
	return func(o *Options) {
		if eps < 0 {
			panic(ErrBadTolerance.Error())
		}
		o.Tolerance = eps
	}
}

// WithLogger routes diagnostics to l.
func WithLogger(l logr.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func gather(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
