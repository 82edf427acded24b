// Package planner computes minimum-cost construction plans for a target DNA
// sequence.
//
// A plan partitions the target into contiguous blocks of at most W bases.
// Each block is either reused (PCR-amplified from a source genome, at a fixed
// cost) or synthesized de novo (at a cost polynomial in the block length), and
// every junction between adjacent blocks adds a fixed cost.
//
// # Reading Guide
//
//   - cost.go: CostModel and the per-block cost functions
//   - oracle.go: the substring-membership interfaces the planners consume
//   - dp.go: the optimal planner (incremental O(N*W) sweep and union fallback)
//   - greedy.go: the longest-reusable-block heuristic
//   - result.go: partitions, statistics and reconstruction
//
// # Sub-packages
//
//   - planner/fmindex: FM-index oracle over a source genome, with persistence
//   - planner/fasta: FASTA loading and sequence cleaning
//   - planner/batch: parallel planning across sequences
//   - planner/report: CSV rows and run totals
//   - planner/runspec: YAML run specifications
//   - planner/trace: block-level decision traces
package planner
