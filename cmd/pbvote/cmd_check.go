// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvpb/ejr"
	"github.com/katalvlaran/lvpb/election"
)

func newCheckCmd(a *app) *cobra.Command {
	var outcome []string
	cmd := &cobra.Command{
		Use:   "check <file.pb>",
		Short: "Check an outcome for strong EJR+ violations",
		Long: `check reports strong EJR+ violations of an outcome, both on the
currency-converted instance and per resource dimension. The outcome is the
configured rule's allocation unless --outcome lists the funded projects.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, prof, err := a.load(args[0])
			if err != nil {
				return err
			}

			var alloc election.Allocation
			if cmd.Flags().Changed("outcome") {
				alloc, err = election.AllocationOf(inst, outcome...)
			} else {
				alloc, err = a.allocate(inst, prof)
			}
			if err != nil {
				return err
			}

			opts := append(a.cfg.checkOptions(), ejr.WithLogger(a.log()))
			conv, err := ejr.Converted(inst, prof, alloc, opts...)
			if err != nil {
				return err
			}
			restr, err := ejr.Restricted(inst, prof, alloc, opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "outcome:    %s\n", strings.Join(alloc.Names(), ", "))
			fmt.Fprintf(out, "converted:  %d %v\n", conv.Count, conv.Names)
			fmt.Fprintf(out, "restricted: %d %v\n", restr.Count, restr.Names)

			return nil
		},
	}
	cmd.Flags().StringSliceVar(&outcome, "outcome", nil, "funded project ids to check instead of running the rule")

	return cmd
}
