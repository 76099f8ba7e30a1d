// SPDX-License-Identifier: MIT

// Package analysis provides summary measures over allocations and batch
// results.
//
//   - ExclusionRatio: share of voters none of whose approved projects is funded.
//   - VoterSatisfaction: per-voter utility of the funded approved projects.
//   - MeanExcludingOutliers: mean of the values inside the 1.5·IQR fences.
//   - Mean: plain arithmetic mean.
package analysis
