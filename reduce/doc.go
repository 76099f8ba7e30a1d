// SPDX-License-Identifier: MIT

// Package reduce turns a multi-resource election into a single-resource one
// so that single-dimension fairness checks can be applied.
//
//   - Restrict keeps one dimension of every cost and of the budget limit.
//   - Convert expresses every dimension in units of dimension 0 using the
//     rates rate_i = budget[0]/budget[i] and sums the converted components.
//
// Both rebuild a fresh Instance and Profile; project identities and
// ballots are carried over by name. MapAllocation re-binds an allocation
// computed on the original instance to the reduced one.
package reduce
