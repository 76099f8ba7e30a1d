// SPDX-License-Identifier: MIT

package election

import "math/bits"

// ProjectSet is a finite set of ProjectIDs backed by a bitset.
//
// The zero value is an empty set ready to use. Operations that take
// another set never alias it; Union/Difference/Intersect return new sets.
type ProjectSet struct {
	words []uint64
}

// NewProjectSet returns a set holding ids.
func NewProjectSet(ids ...ProjectID) ProjectSet {
	var s ProjectSet
	for _, id := range ids {
		s.Add(id)
	}

	return s
}

// Add inserts id. Negative IDs are ignored.
func (s *ProjectSet) Add(id ProjectID) {
	if id < 0 {
		return
	}
	w := int(id) >> 6
	for len(s.words) <= w {
		s.words = append(s.words, 0)
	}
	s.words[w] |= 1 << (uint(id) & 63)
}

// Remove deletes id if present.
func (s *ProjectSet) Remove(id ProjectID) {
	if id < 0 {
		return
	}
	w := int(id) >> 6
	if w < len(s.words) {
		s.words[w] &^= 1 << (uint(id) & 63)
	}
}

// Has reports whether id is in the set.
func (s ProjectSet) Has(id ProjectID) bool {
	if id < 0 {
		return false
	}
	w := int(id) >> 6

	return w < len(s.words) && s.words[w]&(1<<(uint(id)&63)) != 0
}

// Len returns the number of members.
func (s ProjectSet) Len() int {
	var n int
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}

	return n
}

// IDs returns the members in ascending order.
func (s ProjectSet) IDs() []ProjectID {
	out := make([]ProjectID, 0, s.Len())
	for wi, w := range s.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, ProjectID(wi<<6+b))
			w &= w - 1
		}
	}

	return out
}

// Clone returns an independent copy.
func (s ProjectSet) Clone() ProjectSet {
	return ProjectSet{words: append([]uint64(nil), s.words...)}
}

// Union returns s ∪ o.
func (s ProjectSet) Union(o ProjectSet) ProjectSet {
	long, short := s.words, o.words
	if len(short) > len(long) {
		long, short = short, long
	}
	out := append([]uint64(nil), long...)
	for i, w := range short {
		out[i] |= w
	}

	return ProjectSet{words: out}
}

// Difference returns s \ o.
func (s ProjectSet) Difference(o ProjectSet) ProjectSet {
	out := append([]uint64(nil), s.words...)
	for i := 0; i < len(out) && i < len(o.words); i++ {
		out[i] &^= o.words[i]
	}

	return ProjectSet{words: out}
}

// Intersect returns s ∩ o.
func (s ProjectSet) Intersect(o ProjectSet) ProjectSet {
	n := min(len(s.words), len(o.words))
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		out[i] = s.words[i] & o.words[i]
	}

	return ProjectSet{words: out}
}

// Equal reports whether s and o hold the same members.
func (s ProjectSet) Equal(o ProjectSet) bool {
	n := max(len(s.words), len(o.words))
	for i := 0; i < n; i++ {
		var a, b uint64
		if i < len(s.words) {
			a = s.words[i]
		}
		if i < len(o.words) {
			b = o.words[i]
		}
		if a != b {
			return false
		}
	}

	return true
}

// IsSubset reports whether every member of s is in o.
func (s ProjectSet) IsSubset(o ProjectSet) bool {
	return s.Difference(o).Len() == 0
}
