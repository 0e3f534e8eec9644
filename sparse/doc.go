// Package sparse implements the narrow-band representation of a level set
// and the three layer-maintenance schemes that keep the band valid while
// the surface moves.
//
// What:
//
//   - Field: named layers (one per live status) of flat grid offsets, plus
//     a dense backing image of Attribute{Status, Value} for O(1) lookups.
//     Nodes outside every layer carry a "far" status in the backing image.
//
//   - LevelSet: a Field together with a Kind that selects the layer set,
//     the far sentinels and the updater:
//
//     Whitaker  live layers -2..2, far ±3, Value ≈ signed distance.
//     Shi       live layers -1, +1, far ±3, Value == Status.
//     Malcolm   live layer 0, background ±1, Value == Status.
//
//   - FromBinary builds any Kind from a binary mask; Mask goes back.
//
//   - Apply consumes an Updates buffer (one speed per band node, in Band
//     order) and a time step, and moves nodes between layers.
//
//   - CheckConsistency verifies that the backing image and the layers
//     agree, that Whitaker values stay within ±0.5 of their layer and that
//     no two face neighbors skip a layer.
//
// The interior of a level set is where Value < 0; foreground mask pixels
// map to the interior.
//
// Complexity:
//
//   - Layer push/pop/remove/contains: O(1).
//   - Apply: O(B·D) for a band of B nodes.
//   - FromBinary: O(N·D).
//
// Errors:
//
//   - ErrBadKind, ErrNilMask, ErrUnknownLayer, ErrBufferMismatch,
//     ErrGeometryMismatch, ErrInconsistent.
package sparse
