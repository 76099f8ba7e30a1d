// SPDX-License-Identifier: MIT

// Package afford computes how much of a project's cost its supporters can
// currently justify from their remaining budgets.
//
// Three measures are provided:
//
//   - Rho: per-dimension water-filling. In each dimension the supporters are
//     sorted by remaining budget; anyone who cannot pay the current equal
//     share pays everything they have and drops out, until the rest can each
//     pay the same share. rho_r = remaining price / (remaining payers × cost_r).
//     A dimension whose price cannot be covered has rho_r = +Inf, and then the
//     aggregate is +Inf whatever the Aggregator.
//   - RhoEpsilon: two-resource variant that converts every amount into the
//     unit of dimension 0 at rate budget[0]/budget[1], water-fills once, and
//     reports epsilon, the friction of needing conversion (EpsilonMode).
//   - AlphaRho: analysis primitive pairing each achievable funded fraction
//     alpha with the rho needed to reach it.
//
// Conventions:
//
//   - A dimension with zero cost has rho_r = 0.
//   - A project with no supporters has rho = +Inf in every dimension.
//
// All functions are pure: the BudgetMatrix is read, never written.
package afford
