package levelset

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlset/grid"
)

// epsilon is float64 machine epsilon.
const epsilon = 0x1p-52

// lazy memoizes a single value computed on first access.
type lazy[T any] struct {
	v  T
	ok bool
}

func (l *lazy[T]) get(f func() T) T {
	if !l.ok {
		l.v, l.ok = f(), true
	}

	return l.v
}

// Data bundles the derivatives of one level set at one node. Every field
// is computed on first access from the level set alone; Data never writes
// back to it. A Data value must not outlive a change to the level set.
type Data struct {
	ls   LevelSet
	geom *grid.Geometry
	i    int

	value         lazy[float64]
	gradient      lazy[[]float64]
	forward       lazy[[]float64]
	backward      lazy[[]float64]
	hessian       lazy[*mat.SymDense]
	gradientNorm  lazy[float64]
	meanCurvature lazy[float64]
}

// NewData returns an empty derivative cache for node i of ls.
func NewData(ls LevelSet, i int) *Data {
	return &Data{ls: ls, geom: ls.Geometry(), i: i}
}

// Index returns the flat offset the bundle describes.
func (d *Data) Index() int { return d.i }

// Value returns φ(i).
func (d *Data) Value() float64 {
	return d.value.get(func() float64 { return d.ls.Evaluate(d.i) })
}

// Gradient returns the central-difference gradient (φ(+1)−φ(−1)) / 2h.
func (d *Data) Gradient() []float64 {
	return d.gradient.get(func() []float64 {
		out := make([]float64, d.geom.Dim())
		for k := range out {
			fwd := d.ls.Evaluate(d.geom.Shift(d.i, k, 1))
			bwd := d.ls.Evaluate(d.geom.Shift(d.i, k, -1))
			out[k] = (fwd - bwd) / (2 * d.geom.SpacingAt(k))
		}

		return out
	})
}

// ForwardGradient returns (φ(+1)−φ) / h per dimension.
func (d *Data) ForwardGradient() []float64 {
	return d.forward.get(func() []float64 {
		v := d.Value()
		out := make([]float64, d.geom.Dim())
		for k := range out {
			out[k] = (d.ls.Evaluate(d.geom.Shift(d.i, k, 1)) - v) / d.geom.SpacingAt(k)
		}

		return out
	})
}

// BackwardGradient returns (φ−φ(−1)) / h per dimension.
func (d *Data) BackwardGradient() []float64 {
	return d.backward.get(func() []float64 {
		v := d.Value()
		out := make([]float64, d.geom.Dim())
		for k := range out {
			out[k] = (v - d.ls.Evaluate(d.geom.Shift(d.i, k, -1))) / d.geom.SpacingAt(k)
		}

		return out
	})
}

// Hessian returns the symmetric matrix of second derivatives.
// Diagonal: (φ(+1)−2φ+φ(−1)) / h². Off-diagonal: the four-point mixed
// stencil divided by 4·h_k·h_l.
func (d *Data) Hessian() *mat.SymDense {
	return d.hessian.get(func() *mat.SymDense {
		dim := d.geom.Dim()
		h := mat.NewSymDense(dim, nil)
		v := d.Value()
		for k := 0; k < dim; k++ {
			hk := d.geom.SpacingAt(k)
			up := d.geom.Shift(d.i, k, 1)
			dn := d.geom.Shift(d.i, k, -1)
			h.SetSym(k, k, (d.ls.Evaluate(up)-2*v+d.ls.Evaluate(dn))/(hk*hk))
			for l := k + 1; l < dim; l++ {
				hl := d.geom.SpacingAt(l)
				pp := d.ls.Evaluate(d.geom.Shift(up, l, 1))
				pm := d.ls.Evaluate(d.geom.Shift(up, l, -1))
				mp := d.ls.Evaluate(d.geom.Shift(dn, l, 1))
				mm := d.ls.Evaluate(d.geom.Shift(dn, l, -1))
				h.SetSym(k, l, (pp-pm-mp+mm)/(4*hk*hl))
			}
		}

		return h
	})
}

// GradientNorm returns |∇φ| from the central gradient.
func (d *Data) GradientNorm() float64 {
	return d.gradientNorm.get(func() float64 { return floats.Norm(d.Gradient(), 2) })
}

// MeanCurvature returns
//
//	Σ_{k≠l} (−g_k g_l H_kl + H_ll g_k²) / |g|³
//
// and divides by 1+|g|² instead when |g| is below machine epsilon, so flat
// regions yield a finite value.
func (d *Data) MeanCurvature() float64 {
	return d.meanCurvature.get(func() float64 {
		g := d.Gradient()
		h := d.Hessian()
		sum := 0.0
		for k := range g {
			for l := range g {
				if k == l {
					continue
				}
				sum += -g[k]*g[l]*h.At(k, l) + h.At(l, l)*g[k]*g[k]
			}
		}
		n := d.GradientNorm()
		if n > epsilon {
			return sum / (n * n * n)
		}

		return sum / (1 + n*n)
	})
}
