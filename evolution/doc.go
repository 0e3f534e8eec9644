// Package evolution drives a set of sparse level sets through a fixed
// number of iterations of their evolution equations.
//
// What:
//
// Each iteration walks a fixed state sequence:
//
//	InitializingIteration  accumulate term statistics over the domain
//	                       partition, then finalize them (Update)
//	ComputingSpeed         evaluate every band node of every level set
//	                       into an update buffer (optionally in parallel)
//	ComputingTimeStep      dt = Alpha / CFL contribution, or a fixed dt
//	ApplyingUpdate         hand each buffer to its representation's updater
//	Reinitializing         optional, every ReinitializeEvery iterations
//
// and the engine ends in Done after Options.Iterations iterations. There
// is no convergence-based exit.
//
// Why:
//
//   - Region statistics must be complete before any speed is evaluated,
//     so accumulation and evaluation are separate phases.
//   - The context is polled once per iteration; an iteration is never
//     interrupted half way.
//
// Errors:
//
// Fatal configuration errors abort Update and are returned; they match
// ErrNilEquations, ErrNilContainer, ErrUnsupportedLevelSet, ErrEmptyIDList,
// ErrAlphaRange, ErrCFLContribution or ErrBadIterations with errors.Is.
// Node-specific failures are *NodeError values. Degraded conditions (a
// region term without a Heaviside function) are logged by the term
// package and do not stop the evolution.
//
// Metrics:
//
// Iterations, time steps, band sizes, iteration latency and fatal errors
// are exported through the default Prometheus registry.
package evolution
