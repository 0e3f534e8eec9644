// Package grid provides the N-dimensional image primitives the level-set
// engine is built on: a row-major Geometry, axis-aligned Regions and a
// generic dense Image.
//
// What:
//
//   - Geometry maps coordinate tuples (Index) to flat row-major offsets and
//     back. Dimension 0 varies fastest, so a 2D index {x, y} lands at y*W + x.
//   - Shift reads neighbors under a zero-flux Neumann policy: a step that
//     leaves the grid is clamped to the nearest in-bounds node.
//   - FaceNeighbors lists the 2·D in-bounds face neighbors of a node.
//   - Image[T] stores one T per node with checked (Get/Set) and unchecked
//     (At/SetAt) accessors.
//
// Why:
//
//   - Level-set layers key nodes by flat offset: exact integer equality,
//     cheap hashing and O(1) random access into backing images.
//
// Complexity:
//
//   - Flat/Unflat: O(D). Shift/Step: O(1). FaceNeighbors: O(D).
//   - Region.Each: O(|region|).
//
// Errors:
//
//   - ErrBadShape: a size is non-positive or no dimensions were given.
//   - ErrBadSpacing: spacing is non-finite or non-positive.
//   - ErrDimension: an index or region has the wrong number of components.
//   - ErrOutOfRange: an index lies outside the geometry.
package grid
