// SPDX-License-Identifier: MIT

// Package experiment evaluates allocation rules over batches of elections.
//
// Run applies every rule to every election and records the requested
// measures:
//
//   - Runtime        wall-clock seconds spent in the rule.
//   - Exclusion      share of voters with no funded approved project.
//   - EJRConverted   strong EJR+ violations on the currency-converted instance.
//   - EJRRestricted  projects violating strong EJR+ in at least one dimension.
//
// Elections are processed concurrently by a bounded worker group; each
// worker clones the instance and profile it is given. A rule error is
// recorded on its Result and does not stop the batch; a cancelled context
// does.
//
// Summarize groups results by rule and by project-count Bucket and reduces
// each group with analysis.MeanExcludingOutliers.
package experiment
