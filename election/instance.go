// SPDX-License-Identifier: MIT

package election

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/go-logr/logr"
)

// Instance is a participatory budgeting election: a catalog of projects,
// the subset still active, and the per-dimension budget limit.
//
// Rules mutate an Instance in place (Remove, Spend); use Clone to hand out
// independent working copies. The catalog itself never changes.
type Instance struct {
	cat        *catalog
	active     ProjectSet
	budget     []float64
	name       string
	categories []string
	targets    []string
	log        logr.Logger
}

// InstanceOption configures an Instance at construction.
type InstanceOption func(*Instance)

// WithName sets a human-readable label (usually the source file path).
func WithName(name string) InstanceOption {
	return func(in *Instance) { in.name = name }
}

// WithCategories attaches instance-level category metadata.
func WithCategories(categories ...string) InstanceOption {
	return func(in *Instance) { in.categories = slices.Clone(categories) }
}

// WithTargets attaches instance-level target-audience metadata.
func WithTargets(targets ...string) InstanceOption {
	return func(in *Instance) { in.targets = slices.Clone(targets) }
}

// WithLogger routes construction diagnostics (dropped projects) to l.
func WithLogger(l logr.Logger) InstanceOption {
	return func(in *Instance) { in.log = l }
}

// NewInstance builds an Instance over projects with the given budget limit.
//
// Projects whose cost length differs from len(budget) are dropped and
// logged; so are later projects reusing an earlier name. The kept projects
// are copied and sorted by name, which fixes their ProjectIDs.
//
// Errors:
//   - ErrEmptyBudget if budget has no dimensions.
//   - ErrInvalidAmount if a budget or (kept) cost entry is negative, NaN or ±Inf.
//
// Complexity: O(P log P + P·R).
func NewInstance(projects []Project, budget []float64, opts ...InstanceOption) (*Instance, error) {
	in := &Instance{log: logr.Discard()}
	for _, opt := range opts {
		opt(in)
	}

	if len(budget) == 0 {
		return nil, ErrEmptyBudget
	}
	if err := checkAmounts(budget); err != nil {
		return nil, fmt.Errorf("budget: %w", err)
	}
	in.budget = slices.Clone(budget)

	seen := make(map[string]struct{}, len(projects))
	kept := make([]Project, 0, len(projects))
	for _, p := range projects {
		if len(p.Cost) != len(budget) {
			in.log.Info("dropping project with wrong number of resources",
				"project", p.Name, "resources", len(p.Cost), "want", len(budget))
			continue
		}
		if _, dup := seen[p.Name]; dup {
			in.log.Info("dropping duplicate project", "project", p.Name)
			continue
		}
		if err := checkAmounts(p.Cost); err != nil {
			return nil, fmt.Errorf("project %q cost: %w", p.Name, err)
		}
		seen[p.Name] = struct{}{}
		kept = append(kept, p.Copy())
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Name < kept[j].Name })

	in.cat = &catalog{projects: kept, index: make(map[string]ProjectID, len(kept))}
	for i := range kept {
		in.cat.index[kept[i].Name] = ProjectID(i)
		in.active.Add(ProjectID(i))
	}

	return in, nil
}

// Clone returns an independent working copy sharing the immutable catalog.
func (in *Instance) Clone() *Instance {
	return &Instance{
		cat:        in.cat,
		active:     in.active.Clone(),
		budget:     slices.Clone(in.budget),
		name:       in.name,
		categories: slices.Clone(in.categories),
		targets:    slices.Clone(in.targets),
		log:        in.log,
	}
}

// Name returns the instance label.
func (in *Instance) Name() string { return in.name }

// Categories returns the instance-level categories.
func (in *Instance) Categories() []string { return slices.Clone(in.categories) }

// Targets returns the instance-level targets.
func (in *Instance) Targets() []string { return slices.Clone(in.targets) }

// Logger returns the logger the instance was built with.
func (in *Instance) Logger() logr.Logger { return in.log }

// Resources returns R, the number of budget dimensions.
func (in *Instance) Resources() int { return len(in.budget) }

// Budget returns a copy of the current budget limit.
func (in *Instance) Budget() []float64 { return slices.Clone(in.budget) }

// TotalBudget returns the budget limit summed across dimensions.
func (in *Instance) TotalBudget() float64 {
	var s float64
	for _, b := range in.budget {
		s += b
	}

	return s
}

// Len returns the number of active projects.
func (in *Instance) Len() int { return in.active.Len() }

// CatalogSize returns the number of projects ever held, active or not.
func (in *Instance) CatalogSize() int { return len(in.cat.projects) }

// Active returns a copy of the active project set.
func (in *Instance) Active() ProjectSet { return in.active.Clone() }

// IDs returns the active ProjectIDs in ascending (name) order.
func (in *Instance) IDs() []ProjectID { return in.active.IDs() }

// Contains reports whether id is active.
func (in *Instance) Contains(id ProjectID) bool { return in.active.Has(id) }

// Lookup resolves a project name to its ProjectID, active or not.
func (in *Instance) Lookup(name string) (ProjectID, bool) { return in.cat.lookup(name) }

// Project returns a deep copy of the catalog entry for id.
func (in *Instance) Project(id ProjectID) (Project, bool) {
	if !in.cat.valid(id) {
		return Project{}, false
	}

	return in.cat.projects[id].Copy(), true
}

// Cost returns the cost vector of id without copying, or nil for unknown
// IDs. The returned slice is shared with the catalog and must not be
// modified.
func (in *Instance) Cost(id ProjectID) []float64 {
	if !in.cat.valid(id) {
		return nil
	}

	return in.cat.projects[id].Cost
}

// ProjectName returns the name of id, or "" for unknown IDs.
func (in *Instance) ProjectName(id ProjectID) string {
	if !in.cat.valid(id) {
		return ""
	}

	return in.cat.projects[id].Name
}

// Projects returns deep copies of every catalog entry in ID order.
func (in *Instance) Projects() []Project {
	out := make([]Project, len(in.cat.projects))
	for i, p := range in.cat.projects {
		out[i] = p.Copy()
	}

	return out
}

// SameCatalog reports whether in and other share one catalog, i.e. one is
// a clone of the other or both are clones of a common ancestor.
func (in *Instance) SameCatalog(other *Instance) bool {
	return other != nil && in.cat == other.cat
}

// Remove deactivates id. Removed projects are never re-added.
func (in *Instance) Remove(id ProjectID) { in.active.Remove(id) }

// Spend subtracts cost from the budget limit elementwise.
func (in *Instance) Spend(cost []float64) {
	for r := range in.budget {
		in.budget[r] -= cost[r]
	}
}

// Affordable reports whether budget − cost(id) is elementwise ≥ 0.
func (in *Instance) Affordable(id ProjectID) bool {
	cost := in.Cost(id)
	if cost == nil {
		return false
	}
	for r, c := range cost {
		if in.budget[r]-c < 0 {
			return false
		}
	}

	return true
}

// RemoveUnaffordable deactivates every active project that does not fit
// the current budget limit and returns the removed IDs in ascending order.
func (in *Instance) RemoveUnaffordable() []ProjectID {
	var removed []ProjectID
	for _, id := range in.active.IDs() {
		if !in.Affordable(id) {
			in.active.Remove(id)
			removed = append(removed, id)
		}
	}

	return removed
}

// TotalCost returns the elementwise cost of the projects in set.
func (in *Instance) TotalCost(set ProjectSet) []float64 {
	total := make([]float64, len(in.budget))
	for _, id := range set.IDs() {
		for r, c := range in.Cost(id) {
			total[r] += c
		}
	}

	return total
}

// IsFeasible reports whether set is a subset of the active projects and
// its total cost fits the current budget limit.
func (in *Instance) IsFeasible(set ProjectSet) bool {
	if !set.IsSubset(in.active) {
		return false
	}
	total := in.TotalCost(set)
	for r := range in.budget {
		if in.budget[r]-total[r] < 0 {
			return false
		}
	}

	return true
}

// IsExhaustive reports whether set is a subset of the active projects and
// no further active project fits in the budget it leaves.
func (in *Instance) IsExhaustive(set ProjectSet) bool {
	if !set.IsSubset(in.active) {
		return false
	}
	total := in.TotalCost(set)
	for _, id := range in.active.Difference(set).IDs() {
		fits := true
		for r, c := range in.Cost(id) {
			if in.budget[r]-total[r]-c < 0 {
				fits = false
				break
			}
		}
		if fits {
			return false
		}
	}

	return true
}

// IsTrivial reports whether either every active project can be funded
// together or no single active project can be funded at all.
func (in *Instance) IsTrivial() bool {
	if in.IsFeasible(in.active) {
		return true
	}
	for _, id := range in.active.IDs() {
		if in.Affordable(id) {
			return false
		}
	}

	return true
}

// String renders a multi-line description of the instance.
func (in *Instance) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", in.name)
	fmt.Fprintf(&sb, "Budget: %s\n", formatVector(in.budget))
	fmt.Fprintf(&sb, "Categories: %v\n", in.categories)
	fmt.Fprintf(&sb, "Targets: %v\n\n", in.targets)
	sb.WriteString("Projects:\n")
	for _, id := range in.active.IDs() {
		p := in.cat.projects[id]
		fmt.Fprintf(&sb, "  %s\tcost=%s\n", p.Name, formatVector(p.Cost))
	}

	return sb.String()
}
