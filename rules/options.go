// SPDX-License-Identifier: MIT

package rules

import (
	"errors"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/lvpb/afford"
	"github.com/katalvlaran/lvpb/election"
)

// Sentinel errors returned by the rules.
var (
	// ErrNilInstance indicates that a nil *election.Instance was passed.
	ErrNilInstance = errors.New("rules: instance is nil")

	// ErrNilProfile indicates that a nil *election.Profile was passed.
	ErrNilProfile = errors.New("rules: profile is nil")

	// ErrProfileMismatch indicates that the profile was built for another catalog.
	ErrProfileMismatch = errors.New("rules: profile does not belong to instance")

	// ErrNoVoters indicates that a budget-splitting rule got an empty profile.
	ErrNoVoters = errors.New("rules: profile has no voters")

	// ErrNotTwoResources indicates ExchangeRates on an instance with R != 2.
	ErrNotTwoResources = errors.New("rules: exchange rates need exactly two resources")

	// ErrUnknownRule indicates an unregistered rule name.
	ErrUnknownRule = errors.New("rules: unknown rule")

	// ErrBadTolerance indicates a negative tolerance (raised via panic).
	ErrBadTolerance = errors.New("rules: tolerance must be non-negative")
)

// DefaultTolerance is the residue below which a remaining cost counts as paid.
const DefaultTolerance = 1e-10

// Phase tells which stage of a rule funded a project.
type Phase int

const (
	// Primary is the rule's own selection loop.
	Primary Phase = iota

	// Completion is the Greedy pass over the leftover budget.
	Completion
)

// String returns "primary" or "completion".
func (p Phase) String() string {
	if p == Completion {
		return "completion"
	}

	return "primary"
}

// Step describes one funding decision.
//
// Score is the selection key: the approval count for Greedy, the aggregated
// rho for EqualShares and rho·(1+epsilon) for ExchangeRates.
type Step struct {
	Project election.ProjectID
	Name    string
	Phase   Phase
	Score   float64
}

// Options configures the rules.
//
//   - Aggregator:  folds per-dimension rho in EqualShares (default afford.Max).
//   - EpsilonMode: conversion friction in ExchangeRates (default afford.Relative).
//   - Completion:  run Greedy on the leftover instance (default true).
//   - Tolerance:   residue treated as zero in ExchangeRates (default 1e-10).
//   - Logger:      diagnostics sink (default logr.Discard()).
//   - OnFund:      optional hook per funded project.
type Options struct {
	Aggregator  afford.Aggregator
	EpsilonMode afford.EpsilonMode
	Completion  bool
	Tolerance   float64
	Logger      logr.Logger
	OnFund      func(Step)
}

// Option is a functional option for the rules.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Aggregator:  afford.Max,
		EpsilonMode: afford.Relative,
		Completion:  true,
		Tolerance:   DefaultTolerance,
		Logger:      logr.Discard(),
	}
}

// WithAggregator sets the rho aggregation strategy; nil keeps the default.
func WithAggregator(a afford.Aggregator) Option {
	return func(o *Options) {
		if a != nil {
			o.Aggregator = a
		}
	}
}

// WithEpsilonMode sets the conversion friction measure for ExchangeRates.
func WithEpsilonMode(m afford.EpsilonMode) Option {
	return func(o *Options) { o.EpsilonMode = m }
}

// WithCompletion toggles the Greedy completion pass.
func WithCompletion(enabled bool) Option {
	return func(o *Options) { o.Completion = enabled }
}

// WithTolerance sets the floating-point residue treated as zero.
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

// WithOnFund registers a hook called for every funded project.
func WithOnFund(fn func(Step)) Option {
	return func(o *Options) { o.OnFund = fn }
}

func gather(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
