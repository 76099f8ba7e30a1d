// SPDX-License-Identifier: MIT

package election

import "fmt"

// Ballot is the set of projects one voter approves.
type Ballot struct {
	set ProjectSet
}

// BallotOf returns a ballot over raw IDs. NewProfile validates them.
func BallotOf(ids ...ProjectID) Ballot {
	return Ballot{set: NewProjectSet(ids...)}
}

// NewBallot resolves names against inst's catalog.
//
// Errors: ErrUnknownProject (wrapped with the offending name).
func NewBallot(inst *Instance, names ...string) (Ballot, error) {
	var b Ballot
	for _, n := range names {
		id, ok := inst.Lookup(n)
		if !ok {
			return Ballot{}, fmt.Errorf("%w: %q", ErrUnknownProject, n)
		}
		b.set.Add(id)
	}

	return b, nil
}

// Has reports whether the ballot approves id.
func (b Ballot) Has(id ProjectID) bool { return b.set.Has(id) }

// Len returns the number of approved projects.
func (b Ballot) Len() int { return b.set.Len() }

// IDs returns the approved projects in ascending order.
func (b Ballot) IDs() []ProjectID { return b.set.IDs() }

// Set returns a copy of the approved project set.
func (b Ballot) Set() ProjectSet { return b.set.Clone() }

// Profile is an ordered sequence of ballots bound to one catalog.
// The voter index is the ballot's position.
type Profile struct {
	cat     *catalog
	ballots []Ballot
}

// NewProfile binds ballots to inst's catalog.
//
// Errors: ErrUnknownProject if a ballot names an ID outside the catalog.
func NewProfile(inst *Instance, ballots ...Ballot) (*Profile, error) {
	p := &Profile{cat: inst.cat, ballots: make([]Ballot, 0, len(ballots))}
	for i, b := range ballots {
		for _, id := range b.set.IDs() {
			if !inst.cat.valid(id) {
				return nil, fmt.Errorf("%w: ballot %d references id %d", ErrUnknownProject, i, id)
			}
		}
		p.ballots = append(p.ballots, Ballot{set: b.set.Clone()})
	}

	return p, nil
}

// Len returns the number of voters.
func (p *Profile) Len() int { return len(p.ballots) }

// Ballot returns voter i's ballot.
func (p *Profile) Ballot(i int) Ballot { return p.ballots[i] }

// Ballots returns a copy of the ballot slice.
func (p *Profile) Ballots() []Ballot {
	out := make([]Ballot, len(p.ballots))
	copy(out, p.ballots)

	return out
}

// BoundTo reports whether p was built for inst's catalog.
func (p *Profile) BoundTo(inst *Instance) bool {
	return inst != nil && p.cat == inst.cat
}

// ApprovalScore returns the number of ballots approving id.
func (p *Profile) ApprovalScore(id ProjectID) int {
	var n int
	for _, b := range p.ballots {
		if b.Has(id) {
			n++
		}
	}

	return n
}

// Supporters returns the indices of voters approving id, ascending.
func (p *Profile) Supporters(id ProjectID) []int {
	var out []int
	for i, b := range p.ballots {
		if b.Has(id) {
			out = append(out, i)
		}
	}

	return out
}

// Clone returns an independent copy of the profile.
func (p *Profile) Clone() *Profile {
	out := &Profile{cat: p.cat, ballots: make([]Ballot, len(p.ballots))}
	for i, b := range p.ballots {
		out.ballots[i] = Ballot{set: b.set.Clone()}
	}

	return out
}
