// SPDX-License-Identifier: MIT

// Package ejr checks allocations for strong EJR+ violations.
//
// A project c left out of an outcome W is a violation when the voters
// approving c contain a group that stays under-satisfied after an idealized
// cost-sharing credit. The check runs per candidate:
//
//  1. Extend W with c and compute sat[p] = Σ utility over the approvers of
//     every p in W ∪ {c}.
//  2. The entitlement threshold is the total budget divided by the number
//     of voters.
//  3. Repeatedly credit every active voter with
//     Σ utility(p)·min(cost(p)/sat[p], cost(c)/sat[c]) over their approved
//     projects in W ∪ {c}. Voters above the threshold leave the coalition and
//     their utility is withdrawn from sat. A sweep that removes nobody while
//     sat[c] > 0 makes c a violation.
//
// With up-to-one enabled (the default) c's own term is left out of the
// credit.
//
// Satisfaction:
//
//   - Cost (default) values an approved project at the sum of its cost
//     vector.
//   - Cardinality values every approved project at 1.
//
// Multi-resource instances are checked through lvpb/reduce:
//
//   - Restricted runs the check once per dimension and unions the
//     violating projects.
//   - Converted runs it once on the currency-converted instance.
package ejr
