// SPDX-License-Identifier: MIT

// Package election defines the multi-resource participatory budgeting
// vocabulary shared by every other lvpb package: projects with a cost
// vector, instances with a per-dimension budget limit, approval ballots,
// profiles, allocations and the per-voter budget matrix.
//
// Overview:
//
//   - A Project costs an ordered vector of R amounts, one per resource
//     dimension (money, staff-hours, ...).
//   - An Instance owns a catalog of Projects and a budget limit vector of
//     the same length R. Projects with a mismatched cost length are dropped
//     at construction and reported through the configured logr.Logger.
//   - A Ballot is the set of projects one voter approves; a Profile is the
//     ordered sequence of ballots (voter index = position).
//   - An Allocation is the set of funded projects returned by a rule.
//
// Identity:
//
//   - Projects are stored in an immutable catalog sorted by name. A
//     ProjectID is the index into that catalog, so "lowest ProjectID" and
//     "lexicographically smallest name" are the same order. Every rule in
//     lvpb/rules uses this order to break ties.
//   - Clones of an Instance share the catalog and copy only the mutable
//     parts (active set and budget limit). A Profile is bound to a catalog,
//     not to a particular clone, so the same Profile serves every clone.
//
// Mutation:
//
//   - Instance.Remove and Instance.Spend mutate in place. Callers that run
//     several rules against one election must hand each rule its own Clone;
//     the rules in lvpb/rules do this for you.
//
// Errors (sentinel):
//
//   - ErrEmptyBudget      budget limit vector has no dimensions.
//   - ErrInvalidAmount    negative, NaN or infinite budget or cost component.
//   - ErrUnknownProject   a name or ID does not belong to the catalog.
//   - ErrCatalogMismatch  a Profile or Allocation from another catalog was used.
//   - ErrBadDimensions    random-instance bounds disagree with the budget length.
//
// Thread safety:
//
//   - Values are not synchronized. Share read-only, or clone per goroutine.
package election
