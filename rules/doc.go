// SPDX-License-Identifier: MIT

// Package rules implements allocation rules for multi-resource
// participatory budgeting.
//
// Rules:
//
//   - Greedy: fund projects by descending approval score, skipping (and
//     permanently discarding) any that no longer fit the budget limit.
//   - EqualShares: the Method of Equal Shares generalized to R resources.
//     Every voter starts with budget[r]/n in each dimension; the project with
//     the smallest aggregated rho-affordability (see lvpb/afford) is funded by
//     its supporters until no project is affordable.
//   - ExchangeRates: a two-resource mechanism where supporters may convert
//     surplus in one dimension into the other at the current exchange rate
//     budget[B]/budget[A] while paying for the selected project.
//
// EqualShares and ExchangeRates run Greedy over the leftover instance as a
// completion step unless WithCompletion(false) is given.
//
// Ownership:
//
//   - Every rule clones the Instance it is given and works on the clone, so
//     one Instance and Profile can be reused across calls.
//
// Tie-breaking:
//
//   - All selections break ties by the lowest ProjectID, which is the
//     lexicographically smallest project name (catalogs are name-sorted).
//
// Errors (sentinel):
//
//   - ErrNilInstance, ErrNilProfile   missing inputs.
//   - ErrProfileMismatch              the profile belongs to another catalog.
//   - ErrNoVoters                     EqualShares/ExchangeRates on an empty profile.
//   - ErrNotTwoResources              ExchangeRates on an instance with R != 2.
//   - ErrUnknownRule                  ByName with an unregistered name.
//
// Hooks:
//
//   - WithOnFund registers a callback invoked for every funded project in
//     selection order, carrying the selection score.
package rules
