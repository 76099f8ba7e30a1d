// SPDX-License-Identifier: MIT

package election

import (
	"fmt"
	"sort"
)

// Allocation is the set of funded projects produced by a rule.
// It carries its catalog so names can be recovered without the Instance.
type Allocation struct {
	cat *catalog
	set ProjectSet
}

// NewAllocation returns an allocation of ids over inst's catalog.
func NewAllocation(inst *Instance, ids ...ProjectID) Allocation {
	return Allocation{cat: inst.cat, set: NewProjectSet(ids...)}
}

// AllocationOf resolves names against inst's catalog.
//
// Errors: ErrUnknownProject.
func AllocationOf(inst *Instance, names ...string) (Allocation, error) {
	a := Allocation{cat: inst.cat}
	for _, n := range names {
		id, ok := inst.Lookup(n)
		if !ok {
			return Allocation{}, fmt.Errorf("%w: %q", ErrUnknownProject, n)
		}
		a.set.Add(id)
	}

	return a, nil
}

// Add marks id as funded.
func (a *Allocation) Add(id ProjectID) { a.set.Add(id) }

// Has reports whether id is funded.
func (a Allocation) Has(id ProjectID) bool { return a.set.Has(id) }

// Len returns the number of funded projects.
func (a Allocation) Len() int { return a.set.Len() }

// IDs returns the funded projects in ascending order.
func (a Allocation) IDs() []ProjectID { return a.set.IDs() }

// Set returns a copy of the funded set.
func (a Allocation) Set() ProjectSet { return a.set.Clone() }

// BoundTo reports whether a was built for inst's catalog.
func (a Allocation) BoundTo(inst *Instance) bool {
	return inst != nil && a.cat == inst.cat
}

// Names returns the funded project names, sorted.
func (a Allocation) Names() []string {
	if a.cat == nil {
		return nil
	}
	out := make([]string, 0, a.set.Len())
	for _, id := range a.set.IDs() {
		out = append(out, a.cat.projects[id].Name)
	}
	sort.Strings(out)

	return out
}

// Merge returns a ∪ o.
//
// Errors: ErrCatalogMismatch if the allocations belong to different catalogs.
func (a Allocation) Merge(o Allocation) (Allocation, error) {
	if a.cat != o.cat && a.set.Len() > 0 && o.set.Len() > 0 {
		return Allocation{}, ErrCatalogMismatch
	}
	cat := a.cat
	if cat == nil {
		cat = o.cat
	}

	return Allocation{cat: cat, set: a.set.Union(o.set)}, nil
}

// String renders the sorted funded names, e.g. "[A B]".
func (a Allocation) String() string {
	return fmt.Sprintf("%v", a.Names())
}
