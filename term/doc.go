// Package term implements the additive speed terms of a level-set
// evolution equation and the containers that combine them.
//
// What:
//
//   - Term: one weighted contribution. Evaluate(i) = coefficient·Value(i).
//   - Curvature: mean curvature of the current level set.
//   - Propagation: upwind |∇φ| scaled by a speed image.
//   - ChanVeseInternal / ChanVeseExternal: region fitting against the
//     Heaviside-weighted mean inside the current level set, or outside
//     every level set active at a node.
//   - Container: the terms of one level set's equation, with CFL tracking.
//   - Equations: one Container per level-set id.
//
// Protocol, once per outer iteration:
//
//  1. Initialize(i) for every node the level set is active on
//     (accumulates region statistics);
//  2. Update() (finalizes the statistics and clears the accumulators);
//  3. Evaluate(i) any number of times, concurrently if desired;
//  4. UpdatePixel(i, old, new) whenever an updater changes one node.
//
// A region term without a Heaviside function logs one warning per Update
// cycle and contributes zero.
//
// Errors:
//
//   - ErrNilContainer, ErrNilInput, ErrMissingEquation; level-set
//     lookup failures wrap levelset errors.
package term
