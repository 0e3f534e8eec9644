package term

import "github.com/katalvlaran/lvlset/levelset"

// Curvature contributes the mean curvature of the current level set.
type Curvature struct {
	Base
}

// NewCurvature returns a curvature term with coefficient 1.
func NewCurvature() *Curvature {
	t := &Curvature{}
	t.init("Curvature", false)

	return t
}

// Value implements Term.
func (t *Curvature) Value(d *levelset.Data) float64 { return d.MeanCurvature() }

// Evaluate implements Term.
func (t *Curvature) Evaluate(i int) float64 { return t.coefficient * t.Value(t.data(i)) }
