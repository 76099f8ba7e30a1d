// SPDX-License-Identifier: MIT

// Command pbvote runs participatory budgeting rules on pabulib files and
// checks their outcomes for strong EJR+ violations.
package main

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	verbose    bool
	cfg        Config
	logger     *zap.Logger
}

// log returns the logr view of the zap logger handed to the libraries.
func (a *app) log() logr.Logger {
	if a.logger == nil {
		return logr.Discard()
	}

	return zapr.NewLogger(a.logger)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	flags := defaultConfig()

	root := &cobra.Command{
		Use:   "pbvote",
		Short: "Multi-resource participatory budgeting rules and EJR+ checks",
		Long: `pbvote reads elections in the pabulib format, splits their budget across
one or more resource dimensions and runs Greedy, the Method of Equal Shares
or the two-resource Exchange-Rate mechanism on them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			if a.logger, err = config.Build(); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			if a.cfg, err = loadConfig(a.configPath); err != nil {
				return err
			}
			overlay(cmd, &a.cfg, flags)

			return a.cfg.validate()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&flags.Rule, "rule", flags.Rule, "rule to run: greedy, mes or exchange")
	pf.IntVar(&flags.Resources, "resources", flags.Resources, "number of budget dimensions")
	pf.Uint64Var(&flags.Seed, "seed", flags.Seed, "seed for splitting costs across dimensions")
	pf.StringVar(&flags.Aggregator, "aggregator", flags.Aggregator, "rho aggregation: max, min, sum or mean")
	pf.StringVar(&flags.Epsilon, "epsilon", flags.Epsilon, "exchange friction: rel, abs or count")
	pf.BoolVar(&flags.Completion, "completion", flags.Completion, "spend leftover budget greedily")
	pf.BoolVar(&flags.UpToOne, "up-to-one", flags.UpToOne, "leave the candidate out of its own EJR+ credit")

	root.AddCommand(newRunCmd(a), newCheckCmd(a), newBatchCmd(a, &flags))

	return root
}

// overlay copies every explicitly set flag from flags into cfg.
func overlay(cmd *cobra.Command, cfg *Config, flags Config) {
	set := cmd.Flags().Changed
	if set("rule") {
		cfg.Rule = flags.Rule
	}
	if set("resources") {
		cfg.Resources = flags.Resources
	}
	if set("seed") {
		cfg.Seed = flags.Seed
	}
	if set("aggregator") {
		cfg.Aggregator = flags.Aggregator
	}
	if set("epsilon") {
		cfg.Epsilon = flags.Epsilon
	}
	if set("completion") {
		cfg.Completion = flags.Completion
	}
	if set("up-to-one") {
		cfg.UpToOne = flags.UpToOne
	}
	if set("workers") {
		cfg.Workers = flags.Workers
	}
	if set("rules") {
		cfg.Rules = flags.Rules
	}
	if set("measures") {
		cfg.Measures = flags.Measures
	}
	if set("mode") {
		cfg.Mode = flags.Mode
	}
	if set("max-resources") {
		cfg.MaxResources = flags.MaxResources
	}
	if set("format") {
		cfg.Format = flags.Format
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
