package sparse

import (
	"fmt"
	"math"
)

// tolerance absorbs rounding in the Whitaker band test.
const tolerance = 1e-9

// CheckConsistency verifies the band invariants:
//
//   - every node of layer L has backing status L;
//   - every node with a live backing status is in that layer;
//   - non-live statuses are the representation's background statuses;
//   - Whitaker: |Value − Status| ≤ 0.5 on every layer;
//   - Shi and Malcolm: Value == Status everywhere;
//   - face neighbors differ in status by at most one layer (Whitaker,
//     Malcolm) or by the −1/+1 step across the interface (Shi), so no
//     node skips a layer of the band.
//
// Returns an error wrapping ErrInconsistent that names the first offending node.
// Complexity: O(N).
func (ls *LevelSet) CheckConsistency() error {
	f := ls.field
	for _, s := range f.statuses {
		for _, i := range f.layer(s).Indices() {
			if a := f.img.At(i); a.Status != s {
				return fmt.Errorf("CheckConsistency(%s, index=%d, layer=%d, status=%d): %w",
					ls.kind, i, s, a.Status, ErrInconsistent)
			}
		}
	}

	in, out := ls.strat.far()
	g := f.Geometry()
	gap := ls.strat.gap()
	for i, a := range f.img.Data() {
		for d := 0; d < g.Dim(); d++ {
			j, ok := g.Step(i, d, 1)
			if !ok {
				continue
			}
			if b := f.img.At(j); a.Status-b.Status > gap || b.Status-a.Status > gap {
				return fmt.Errorf("CheckConsistency(%s, index=%d, status=%d, neighbor=%d, status=%d): layer skipped: %w",
					ls.kind, i, a.Status, j, b.Status, ErrInconsistent)
			}
		}

		if l := f.layer(a.Status); l != nil {
			if !l.Contains(i) {
				return fmt.Errorf("CheckConsistency(%s, index=%d, status=%d): not in layer: %w",
					ls.kind, i, a.Status, ErrInconsistent)
			}
		} else if a.Status != in && a.Status != out {
			return fmt.Errorf("CheckConsistency(%s, index=%d, status=%d): unknown status: %w",
				ls.kind, i, a.Status, ErrInconsistent)
		}

		if ls.kind == Whitaker {
			if f.layer(a.Status) != nil && math.Abs(a.Value-float64(a.Status)) > 0.5+tolerance {
				return fmt.Errorf("CheckConsistency(%s, index=%d, status=%d, value=%g): outside layer band: %w",
					ls.kind, i, a.Status, a.Value, ErrInconsistent)
			}
		} else if a.Value != float64(a.Status) {
			return fmt.Errorf("CheckConsistency(%s, index=%d, status=%d, value=%g): %w",
				ls.kind, i, a.Status, a.Value, ErrInconsistent)
		}
	}

	return nil
}
