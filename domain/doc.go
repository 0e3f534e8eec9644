// Package domain partitions a grid by the set of level sets active at
// each node, so the evolution engine can walk homogeneous boxes instead of
// looking the active set up pixel by pixel.
//
// What:
//
//   - Build compresses an id-list image (one []int of level-set ids per
//     node) into axis-aligned boxes whose nodes all share the same
//     normalized (sorted, de-duplicated) id list.
//   - Every node belongs to exactly one Domain; nodes with an empty list
//     still get a Domain so the caller can detect and reject them.
//   - ListImageFromRegions builds the id-list image from one bounding
//     region per level set.
//
// Why:
//
//   - Several level sets co-evolve on one grid. Region-fitting terms need
//     to know which other level sets are active at a node, and the engine
//     must not visit a node for a level set whose band does not cover it.
//
// Complexity:
//
//   - Build: O(N·D) time for N nodes, O(N) memory for the owner map.
//   - IDsAt / DomainAt: O(1).
//
// Errors:
//
//   - ErrEmptyImage: Build was given a nil image.
//   - ErrUnknownNode: a flat offset lies outside the partition.
//   - ErrUnknownLevelSet: ListImageFromRegions was given a negative id.
package domain
