// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvpb/experiment"
	"github.com/katalvlaran/lvpb/rules"
)

// Batch modes.
const (
	modeBuckets     = "buckets"
	modeResources   = "resources"
	modeAggregators = "aggregators"
)

func newBatchCmd(a *app, flags *Config) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "batch <dir|file.pb>...",
		Short: "Evaluate rules over many elections",
		Long: `batch parses every .pb file given (directories are scanned one level
deep) and evaluates the configured rules on every election.

Modes:
  buckets      robust mean of every measure per rule and project-count bucket
  resources    mean of every measure per rule for 1..max-resources dimensions,
               re-splitting each election for every count
  aggregators  share of elections on which Equal Shares without completion
               funds different sets under each pair of rho aggregators`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := collect(args)
			if err != nil {
				return err
			}
			measures, err := a.cfg.measures()
			if err != nil {
				return err
			}
			rs := make(map[string]rules.Func, len(a.cfg.Rules))
			for _, name := range a.cfg.Rules {
				fn, err := rules.ByName(name)
				if err != nil {
					return err
				}
				rs[name] = fn
			}

			cfg := experiment.DefaultConfig()
			cfg.Measures = measures
			cfg.UpToOne = a.cfg.UpToOne
			if a.cfg.Workers > 0 {
				cfg.Workers = a.cfg.Workers
			}
			cfg.RuleOptions = a.cfg.ruleOptions()
			cfg.Logger = a.log()

			w, format := cmd.OutOrStdout(), a.cfg.Format
			switch a.cfg.Mode {
			case modeResources:
				load := func(n int) ([]experiment.Election, error) {
					return a.elections(paths, n), nil
				}
				results, err := experiment.ResourceSweep(cmd.Context(), load, a.cfg.MaxResources, rs, cfg)
				if err != nil {
					return err
				}
				if raw {
					return writeResults(w, format, results, measures)
				}

				return writeSweep(w, format, results, measures, a.cfg.MaxResources)
			case modeAggregators:
				diffs, err := experiment.CompareAggregators(cmd.Context(),
					a.elections(paths, a.cfg.Resources), experiment.DefaultAggregators(), cfg)
				if err != nil {
					return err
				}

				return writeDifferences(w, format, diffs)
			}

			results, err := experiment.Run(cmd.Context(), a.elections(paths, a.cfg.Resources), rs, cfg)
			if err != nil {
				return err
			}
			if raw {
				return writeResults(w, format, results, measures)
			}

			return writeSummary(w, format, results, measures)
		},
	}
	f := cmd.Flags()
	f.IntVar(&flags.Workers, "workers", 0, "elections evaluated concurrently (0 = GOMAXPROCS)")
	f.StringSliceVar(&flags.Rules, "rules", flags.Rules, "rules to evaluate")
	f.StringSliceVar(&flags.Measures, "measures", flags.Measures, "measures to record")
	f.StringVar(&flags.Mode, "mode", flags.Mode, "report: buckets, resources or aggregators")
	f.IntVar(&flags.MaxResources, "max-resources", flags.MaxResources, "largest resource count of the resources mode")
	f.StringVar(&flags.Format, "format", flags.Format, "output format: table or tsv")
	f.BoolVar(&raw, "raw", false, "print one row per election and rule instead of the summary")

	return cmd
}

// elections parses every path into the given number of resource
// dimensions. Files that fail to parse are logged and skipped.
func (a *app) elections(paths []string, resources int) []experiment.Election {
	out := make([]experiment.Election, 0, len(paths))
	for _, p := range paths {
		inst, prof, err := a.loadSplit(p, resources)
		if err != nil {
			a.logger.Warn("skipping election", zap.String("path", p), zap.Error(err))
			continue
		}
		out = append(out, experiment.Election{Name: p, Instance: inst, Profile: prof})
	}

	return out
}

// collect expands directories into their .pb files, sorted.
func collect(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".pb") {
				out = append(out, filepath.Join(arg, e.Name()))
			}
		}
	}
	sort.Strings(out)

	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

func writeSummary(w io.Writer, format string, results []experiment.Result, measures []experiment.Measure) error {
	t := newTable("robust mean by project count", append([]string{"measure", "rule"}, experiment.Buckets()...)...)
	for _, m := range measures {
		summary := experiment.Summarize(results, m)
		for _, rule := range sortedKeys(summary) {
			row := []string{m.String(), rule}
			for _, b := range experiment.Buckets() {
				v, ok := summary[rule][b]
				row = append(row, formatValue(v, ok))
			}
			t.addRow(row...)
		}
	}

	return t.render(w, format)
}

func writeSweep(w io.Writer, format string, results []experiment.Result, measures []experiment.Measure, maxResources int) error {
	headers := []string{"measure", "rule"}
	for n := 1; n <= maxResources; n++ {
		headers = append(headers, strconv.Itoa(n))
	}
	t := newTable("mean by resource count", headers...)
	for _, m := range measures {
		summary := experiment.SummarizeByResources(results, m)
		for _, rule := range sortedKeys(summary) {
			row := []string{m.String(), rule}
			for n := 1; n <= maxResources; n++ {
				v, ok := summary[rule][n]
				row = append(row, formatValue(v, ok))
			}
			t.addRow(row...)
		}
	}

	return t.render(w, format)
}

func writeDifferences(w io.Writer, format string, diffs []experiment.Difference) error {
	t := newTable("elections with differing outcomes", "a", "b", "differing", "total", "share")
	for _, d := range diffs {
		t.addRow(d.A, d.B, strconv.Itoa(d.Differing), strconv.Itoa(d.Total), fmt.Sprintf("%.4g", d.Share))
	}

	return t.render(w, format)
}

func writeResults(w io.Writer, format string, results []experiment.Result, measures []experiment.Measure) error {
	headers := []string{"election", "rule", "resources", "projects", "voters"}
	for _, m := range measures {
		headers = append(headers, m.String())
	}
	t := newTable("", append(headers, "error")...)
	for _, r := range results {
		row := []string{r.Election, r.Rule, strconv.Itoa(r.Resources), strconv.Itoa(r.Projects), strconv.Itoa(r.Voters)}
		for _, m := range measures {
			v, ok := r.Values[m]
			row = append(row, formatValue(v, ok))
		}
		msg := ""
		if r.Err != nil {
			msg = r.Err.Error()
		}
		t.addRow(append(row, msg)...)
	}

	return t.render(w, format)
}
