package evolution

import (
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvlset/sparse"
)

// computeSpeed evaluates every band node of every evolved level set.
// Each buffer follows Band order. With several workers the band is split
// into contiguous chunks; every worker writes only its chunk and keeps
// private CFL maxima that are merged once all workers are done.
func (e *Engine) computeSpeed() map[int]sparse.Updates {
	bufs := make(map[int]sparse.Updates, len(e.sets))
	for _, id := range e.eq.IDs() {
		ls := e.sets[id]
		tc, _ := e.eq.Get(id)
		band := ls.Band()
		ups := make(sparse.Updates, len(band))
		instrumentBand(id, ls.Kind(), len(band))

		workers := min(e.opts.Workers, len(band))
		if workers <= 1 {
			cfl := tc.NewCFL()
			for k, i := range band {
				ups[k] = sparse.Update{Index: i, Value: tc.EvaluateCFL(i, cfl)}
			}
			tc.MergeCFL(cfl)
			bufs[id] = ups
			continue
		}

		chunk := (len(band) + workers - 1) / workers
		maxima := make([][]float64, 0, workers)
		var g errgroup.Group
		for lo := 0; lo < len(band); lo += chunk {
			lo := lo
			hi := min(lo+chunk, len(band))
			cfl := tc.NewCFL()
			maxima = append(maxima, cfl)
			g.Go(func() error {
				for k := lo; k < hi; k++ {
					ups[k] = sparse.Update{Index: band[k], Value: tc.EvaluateCFL(band[k], cfl)}
				}
				return nil
			})
		}
		_ = g.Wait() // workers never fail
		for _, cfl := range maxima {
			tc.MergeCFL(cfl)
		}
		bufs[id] = ups
	}

	return bufs
}
