// SPDX-License-Identifier: MIT

package rules

import (
	"sort"

	"github.com/katalvlaran/lvpb/election"
)

// Greedy funds projects in descending order of approval score.
//
// Ties are broken by the lowest ProjectID. A project that does not fit the
// remaining budget limit when its turn comes is discarded for good. The
// loop never backtracks.
//
// Complexity: O(P·n + P log P) for P projects and n voters.
func Greedy(inst *election.Instance, prof *election.Profile, opts ...Option) (election.Allocation, error) {
	r, err := newRunner(inst, prof, opts)
	if err != nil {
		return election.Allocation{}, err
	}
	r.greedy(Primary)

	return r.funded, nil
}

// greedy is the shared loop used by Greedy and by completion.
func (r *runner) greedy(phase Phase) {
	ids := r.inst.IDs()
	score := make(map[election.ProjectID]int, len(ids))
	for _, id := range ids {
		score[id] = len(r.supporters[id])
	}
	// ids is ascending, so a stable sort keeps lowest ID first on ties.
	sort.SliceStable(ids, func(i, j int) bool { return score[ids[i]] > score[ids[j]] })

	for _, id := range ids {
		if r.inst.Affordable(id) {
			r.fund(id, phase, float64(score[id]))
			continue
		}
		r.inst.Remove(id)
	}
}
