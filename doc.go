// Package lvlset evolves implicit surfaces stored as sparse narrow bands
// on regular N-dimensional grids.
//
// What is lvlset?
//
//	A level-set segmentation engine that keeps only a thin band of layers
//	around each zero crossing and moves it under a sum of speed terms:
//		• Sparse representations: Whitaker (signed distance), Shi (ternary),
//		  Malcolm (binary), all built from binary masks
//		• Speed terms: Chan–Vese internal/external region fitting, mean
//		  curvature, normal propagation
//		• Multi-object evolution: a container of level sets, a spatial
//		  partition telling which of them compete at every node
//		• CFL-limited time steps, parallel speed evaluation
//		• Per-iteration snapshots, Prometheus metrics, structured logging
//
// Interior convention: a node is inside a level set where φ < 0.
//
// Packages, from the bottom up:
//
//	grid/        Geometry (shape, spacing, flat offsets), Region, Image[T]
//	heaviside/   exact and regularized Heaviside steps
//	domain/      id-list image → partition of the grid into boxes
//	levelset/    LevelSet interface, Dense, Container, cached derivatives (Data)
//	sparse/      layers, backing field and the three band updaters
//	term/        speed terms, per-level-set equations, CFL bookkeeping
//	evolution/   the iteration engine (Engine, Options, ComputeDt)
//	snapshot/    zstd-compressed per-iteration frames
//
// Quick ASCII example (Whitaker statuses around a 3×3 square; 3 is far):
//
//	3  3  2  2  2  3  3
//	3  2  1  1  1  2  3
//	2  1  0  0  0  1  2
//	2  1  0 -1  0  1  2
//	2  1  0  0  0  1  2
//	3  2  1  1  1  2  3
//	3  3  2  2  2  3  3
//
//	go get github.com/katalvlaran/lvlset
package lvlset
