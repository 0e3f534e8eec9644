// Package levelset defines the level-set abstraction shared by terms and
// the evolution engine, the Container that owns every co-evolved level
// set, and Data, a per-node bundle of lazily computed derivatives.
//
// What:
//
//   - LevelSet: read access to φ at a flat grid offset, plus the
//     inside test (φ < 0).
//   - Dense: a LevelSet backed by a full grid.Image[float64].
//   - Container: id → LevelSet, the shared domain partition and the
//     shared Heaviside function.
//   - Data: value, central/forward/backward gradients, Hessian
//     (gonum mat.SymDense), gradient norm and mean curvature at one node,
//     each computed on first access.
//
// Finite differences read neighbors through grid.Geometry.Shift, i.e.
// with a zero-flux Neumann boundary, and are scaled by the grid spacing.
//
// Errors:
//
//   - ErrNilLevelSet, ErrDuplicateID, ErrUnknownLevelSet, ErrGeometryMismatch.
package levelset
