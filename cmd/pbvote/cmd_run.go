// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvpb/election"
	"github.com/katalvlaran/lvpb/pabulib"
	"github.com/katalvlaran/lvpb/rules"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <file.pb>",
		Short: "Run the configured rule on one election",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, prof, err := a.load(args[0])
			if err != nil {
				return err
			}
			alloc, err := a.allocate(inst, prof)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "election: %s\n", inst.Name())
			fmt.Fprintf(out, "rule:     %s\n", a.cfg.Rule)
			fmt.Fprintf(out, "funded:   %s\n", strings.Join(alloc.Names(), ", "))
			fmt.Fprintf(out, "cost:     %v\n", inst.TotalCost(alloc.Set()))
			fmt.Fprintf(out, "budget:   %v\n", inst.Budget())

			return nil
		},
	}
}

func (a *app) load(path string) (*election.Instance, *election.Profile, error) {
	return a.loadSplit(path, a.cfg.Resources)
}

// loadSplit parses path into the given number of resource dimensions.
func (a *app) loadSplit(path string, resources int) (*election.Instance, *election.Profile, error) {
	opts := append(a.cfg.parseOptions(), pabulib.WithResources(resources), pabulib.WithLogger(a.log()))
	inst, prof, err := pabulib.ParseFile(path, opts...)
	if err != nil {
		return nil, nil, err
	}
	a.logger.Debug("loaded election",
		zap.String("path", path),
		zap.Int("resources", resources),
		zap.Int("projects", inst.Len()),
		zap.Int("voters", prof.Len()))

	return inst, prof, nil
}

func (a *app) allocate(inst *election.Instance, prof *election.Profile) (election.Allocation, error) {
	rule, err := rules.ByName(a.cfg.Rule)
	if err != nil {
		return election.Allocation{}, err
	}
	opts := append(a.cfg.ruleOptions(),
		rules.WithLogger(a.log()),
		rules.WithOnFund(func(s rules.Step) {
			a.logger.Debug("funded",
				zap.String("project", s.Name),
				zap.Stringer("phase", s.Phase),
				zap.Float64("score", s.Score))
		}),
	)

	return rule(inst, prof, opts...)
}
