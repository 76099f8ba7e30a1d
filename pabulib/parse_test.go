// SPDX-License-Identifier: MIT

package pabulib_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvpb/election"
	"github.com/katalvlaran/lvpb/pabulib"
)

const sample = `META
key;value
description;Sample district
budget;100
PROJECTS
project_id;cost;category;target
1;40;culture,education;children
2;30;sport;
3;50;culture;seniors
VOTES
voter_id;vote
v1;1,3
v2;2
v3;
`

func TestParse_SingleResource(t *testing.T) {
	inst, prof, err := pabulib.Parse(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, "Sample district", inst.Name())
	assert.Equal(t, []float64{100}, inst.Budget())
	assert.Equal(t, 3, inst.Len())
	assert.Equal(t, []string{"culture", "education", "sport"}, inst.Categories())
	assert.Equal(t, []string{"children", "seniors"}, inst.Targets())

	id, ok := inst.Lookup("3")
	require.True(t, ok)
	assert.Equal(t, []float64{50}, inst.Cost(id))

	require.Equal(t, 3, prof.Len())
	assert.Equal(t, 2, prof.Ballot(0).Len())
	assert.True(t, prof.Ballot(0).Has(id))
	assert.Equal(t, 0, prof.Ballot(2).Len())
}

func TestParse_SplitsResources(t *testing.T) {
	for _, n := range []int{2, 3} {
		inst, _, err := pabulib.Parse(strings.NewReader(sample), pabulib.WithResources(n), pabulib.WithSeed(7))
		require.NoError(t, err)
		require.Equal(t, n, inst.Resources())
		for _, b := range inst.Budget() {
			assert.InDelta(t, 100/float64(n), b, 1e-12)
		}
		for _, p := range inst.Projects() {
			assert.InDelta(t, map[string]float64{"1": 40, "2": 30, "3": 50}[p.Name], p.TotalCost(), 1e-9, p.Name)
		}

		again, _, err := pabulib.Parse(strings.NewReader(sample), pabulib.WithResources(n), pabulib.WithSeed(7))
		require.NoError(t, err)
		assert.Equal(t, inst.Projects(), again.Projects())
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]struct {
		input string
		want  error
	}{
		"no budget":   {"META\nkey;value\nname;x\n", pabulib.ErrMissingBudget},
		"bad budget":  {"META\nkey;value\nbudget;lots\n", pabulib.ErrBadNumber},
		"no cost":     {"META\nkey;value\nbudget;1\nPROJECTS\nproject_id;price\n1;2\n", pabulib.ErrMissingColumn},
		"bad cost":    {"META\nkey;value\nbudget;1\nPROJECTS\nproject_id;cost\n1;x\n", pabulib.ErrBadNumber},
		"no vote":     {"META\nkey;value\nbudget;1\nVOTES\nvoter_id;ballot\nv;1\n", pabulib.ErrMissingColumn},
		"bad project": {"META\nkey;value\nbudget;1\nPROJECTS\nproject_id;cost\n1;1\nVOTES\nvoter_id;vote\nv;9\n", election.ErrUnknownProject},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := pabulib.Parse(strings.NewReader(tc.input))
			require.ErrorIs(t, err, tc.want)
		})
	}

	require.Panics(t, func() { pabulib.WithResources(0)(&pabulib.Options{}) })
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.pb")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	inst, prof, err := pabulib.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, inst.Name())
	assert.Equal(t, 3, prof.Len())

	_, _, err = pabulib.ParseFile(filepath.Join(t.TempDir(), "missing.pb"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
