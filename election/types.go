// SPDX-License-Identifier: MIT

package election

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Sentinel errors returned by the election package.
var (
	// ErrEmptyBudget indicates that the budget limit vector has no dimensions.
	ErrEmptyBudget = errors.New("election: budget limit is empty")

	// ErrInvalidAmount indicates a negative, NaN or infinite budget or cost entry.
	ErrInvalidAmount = errors.New("election: amount must be finite and non-negative")

	// ErrUnknownProject indicates that a referenced project is not in the catalog.
	ErrUnknownProject = errors.New("election: unknown project")

	// ErrCatalogMismatch indicates that a Profile or Allocation built for a
	// different catalog was combined with this Instance.
	ErrCatalogMismatch = errors.New("election: catalog mismatch")

	// ErrBadDimensions indicates inconsistent vector lengths in a generator call.
	ErrBadDimensions = errors.New("election: dimension mismatch")
)

// ProjectID indexes a Project inside the catalog of its Instance.
type ProjectID int

// Project is a candidate for funding.
//
// Cost holds one amount per resource dimension. Categories and Targets are
// metadata carried through copies and reductions; no algorithm reads them.
type Project struct {
	Name       string
	Cost       []float64
	Categories []string
	Targets    []string
}

// NewProject returns a Project with a private copy of cost.
func NewProject(name string, cost ...float64) Project {
	return Project{Name: name, Cost: slices.Clone(cost)}
}

// Copy returns a deep copy of p.
func (p Project) Copy() Project {
	return Project{
		Name:       p.Name,
		Cost:       slices.Clone(p.Cost),
		Categories: slices.Clone(p.Categories),
		Targets:    slices.Clone(p.Targets),
	}
}

// TotalCost returns the sum of the cost vector across dimensions.
func (p Project) TotalCost() float64 {
	var s float64
	for _, c := range p.Cost {
		s += c
	}

	return s
}

// String returns the project name.
func (p Project) String() string { return p.Name }

// catalog is the immutable, name-sorted project arena shared by clones.
type catalog struct {
	projects []Project
	index    map[string]ProjectID
}

func (c *catalog) lookup(name string) (ProjectID, bool) {
	id, ok := c.index[name]

	return id, ok
}

func (c *catalog) valid(id ProjectID) bool {
	return id >= 0 && int(id) < len(c.projects)
}

// checkAmounts reports ErrInvalidAmount for any NaN, ±Inf or negative entry.
func checkAmounts(v []float64) error {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
			return fmt.Errorf("%w: index %d = %g", ErrInvalidAmount, i, x)
		}
	}

	return nil
}

// formatVector renders v as "[a b c]" with %g formatting.
func formatVector(v []float64) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%g", x)
	}
	sb.WriteByte(']')

	return sb.String()
}
