package term

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/lvlset/grid"
	"github.com/katalvlaran/lvlset/heaviside"
	"github.com/katalvlaran/lvlset/levelset"
)

// RegionStatistics returns the Heaviside-weighted means of img inside
// (weight H(−φ)) and outside (weight 1 − H(−φ)) of ls, computed in one
// dense pass. A region with no weight has mean 0.
func RegionStatistics(img *grid.Image[float64], ls levelset.LevelSet, h heaviside.Function) (inside, outside float64, err error) {
	if img == nil {
		return 0, 0, ErrNilInput
	}
	if !img.Geometry().Equal(ls.Geometry()) {
		return 0, 0, fmt.Errorf("RegionStatistics: %w", levelset.ErrGeometryMismatch)
	}
	x := img.Data()
	win := make([]float64, len(x))
	wout := make([]float64, len(x))
	var sin, sout float64
	for i := range x {
		w := h.Evaluate(-ls.Evaluate(i))
		win[i], wout[i] = w, 1-w
		sin += w
		sout += 1 - w
	}
	if sin > epsilon {
		inside = stat.Mean(x, win)
	}
	if sout > epsilon {
		outside = stat.Mean(x, wout)
	}

	return inside, outside, nil
}
