package term

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlset/grid"
	"github.com/katalvlaran/lvlset/levelset"
)

// Propagation moves the front along its normal with a signed speed read
// from a speed image, or from the input image when no speed image is set.
// The gradient magnitude uses the upwind scheme that matches the sign of
// the local speed.
type Propagation struct {
	Base
	speed *grid.Image[float64]
}

// NewPropagation returns a propagation term with coefficient 1.
func NewPropagation() *Propagation {
	t := &Propagation{}
	t.init("Propagation", false)

	return t
}

// SetSpeedImage sets the image the local speed is read from.
func (t *Propagation) SetSpeedImage(img *grid.Image[float64]) { t.speed = img }

// Bind implements Term; it requires a speed image or an input image.
func (t *Propagation) Bind() error {
	if err := t.Base.Bind(); err != nil {
		return err
	}
	switch {
	case t.speed == nil && t.input == nil:
		return fmt.Errorf("%s.Bind(level_set=%d): %w", t.name, t.id, ErrNilInput)
	case t.speed != nil && !t.speed.Geometry().Equal(t.ls.Geometry()):
		return fmt.Errorf("%s.Bind(level_set=%d): speed: %w", t.name, t.id, levelset.ErrGeometryMismatch)
	}

	return nil
}

func (t *Propagation) speedAt(i int) float64 {
	if t.speed != nil {
		return t.speed.At(i)
	}

	return t.input.At(i)
}

// Value implements Term: s·sqrt(Σ upwind²) where, per dimension,
// s > 0 uses max(backward,0)² + min(forward,0)² and s ≤ 0 uses
// min(backward,0)² + max(forward,0)².
func (t *Propagation) Value(d *levelset.Data) float64 {
	s := t.speedAt(d.Index())
	fwd, bwd := d.ForwardGradient(), d.BackwardGradient()
	sum := 0.0
	for k := range fwd {
		var b, f float64
		if s > 0 {
			b, f = max(bwd[k], 0), min(fwd[k], 0)
		} else {
			b, f = min(bwd[k], 0), max(fwd[k], 0)
		}
		sum += b*b + f*f
	}

	return s * math.Sqrt(sum)
}

// Evaluate implements Term.
func (t *Propagation) Evaluate(i int) float64 { return t.coefficient * t.Value(t.data(i)) }
