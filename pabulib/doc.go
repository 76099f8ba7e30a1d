// SPDX-License-Identifier: MIT

// Package pabulib reads elections in the pabulib exchange format.
//
// A file is a sequence of ';'-separated sections, each introduced by a row
// whose first field is META, PROJECTS or VOTES (any case) and followed by a
// header row:
//
//	META
//	key;value
//	budget;100000
//	PROJECTS
//	project_id;cost;category;target
//	1;25000;culture;children
//	VOTES
//	voter_id;vote
//	v1;1,3
//
// The budget meta key, the project cost column and the vote column are
// required. Optional category and target columns hold comma-separated
// labels.
//
// Resources:
//
//   - WithResources(1) (default) keeps the single budget dimension.
//   - WithResources(n), n >= 2, splits the budget evenly (b/n per
//     dimension) and splits each project cost by random weights summing to
//     one: (c·u, c·(1-u)) for two resources, normalized uniforms beyond.
//     WithSeed fixes the weights so a file always parses the same way.
package pabulib
