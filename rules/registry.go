// SPDX-License-Identifier: MIT

package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/lvpb/election"
)

// Func is the common signature shared by every rule.
type Func func(*election.Instance, *election.Profile, ...Option) (election.Allocation, error)

var registry = map[string]Func{
	"greedy":   Greedy,
	"mes":      EqualShares,
	"exchange": ExchangeRates,
}

// ByName returns the rule registered under name ("greedy", "mes", "exchange").
func ByName(name string) (Func, error) {
	fn, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}

	return fn, nil
}

// Names lists the registered rule names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
