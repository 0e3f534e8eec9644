package term

import (
	"github.com/katalvlaran/lvlset/heaviside"
	"github.com/katalvlaran/lvlset/levelset"
)

// epsilon is float64 machine epsilon.
const epsilon = 0x1p-52

// RegionMean is a Heaviside-weighted running mean.
type RegionMean struct {
	Total  float64 // Σ pixel·weight
	Weight float64 // Σ weight
	Mean   float64 // Total/Weight, 0 when Weight ≤ ε
}

func (r *RegionMean) add(pixel, w float64) {
	r.Total += pixel * w
	r.Weight += w
}

func (r *RegionMean) finalize() {
	if r.Weight > epsilon {
		r.Mean = r.Total / r.Weight
	} else {
		r.Mean = 0
	}
}

// chanVese is the shared state of both region terms: acc collects the
// current iteration's sums, stats holds what Update finalized.
type chanVese struct {
	Base
	acc   RegionMean
	stats RegionMean
}

// Update implements Term: stats = acc (finalized), acc = 0.
func (t *chanVese) Update() {
	t.Base.Update()
	t.stats = t.acc
	t.stats.finalize()
	t.acc = RegionMean{}
}

// Mean returns the finalized region mean.
func (t *chanVese) Mean() float64 { return t.stats.Mean }

// Stats returns the finalized region statistics.
func (t *chanVese) Stats() RegionMean { return t.stats }

// ChanVeseInternal fits the image inside the current level set to its
// Heaviside-weighted mean. Value = H'(−φ)·(pixel − mean)².
type ChanVeseInternal struct {
	chanVese
}

// NewChanVeseInternal returns an internal region term with coefficient 1.
func NewChanVeseInternal() *ChanVeseInternal {
	t := &ChanVeseInternal{}
	t.init("Chan-Vese internal", true)

	return t
}

// Initialize accumulates pixel·H(−φ) and H(−φ).
func (t *ChanVeseInternal) Initialize(i int) {
	h := t.heavisideOrWarn()
	if h == nil {
		return
	}
	t.acc.add(t.input.At(i), h.Evaluate(-t.ls.Evaluate(i)))
}

// Value implements Term.
func (t *ChanVeseInternal) Value(d *levelset.Data) float64 {
	h := t.heavisideOrWarn()
	if h == nil {
		return 0
	}
	diff := t.input.At(d.Index()) - t.stats.Mean

	return h.EvaluateDerivative(-d.Value()) * diff * diff
}

// Evaluate implements Term.
func (t *ChanVeseInternal) Evaluate(i int) float64 { return t.coefficient * t.Value(t.data(i)) }

// UpdatePixel moves node i's contribution from H(−old) to H(−new).
func (t *ChanVeseInternal) UpdatePixel(i int, oldValue, newValue float64) {
	h := t.heavisideOrWarn()
	if h == nil {
		return
	}
	t.stats.add(t.input.At(i), h.Evaluate(-newValue)-h.Evaluate(-oldValue))
	t.stats.finalize()
}

// ChanVeseExternal fits the image outside every level set active at a
// node to its mean. The outside indicator is
//
//	(1 − H(−φ)) · Π_{j active, j ≠ current} (1 − H(−φ_j))
//
// and Value = −H'(−φ)·Π_j(1 − H(−φ_j))·(pixel − mean)².
type ChanVeseExternal struct {
	chanVese
}

// NewChanVeseExternal returns an external region term with coefficient 1.
func NewChanVeseExternal() *ChanVeseExternal {
	t := &ChanVeseExternal{}
	t.init("Chan-Vese external", true)

	return t
}

// others returns Π (1 − H(−φ_j)) over the other level sets active at i.
func (t *ChanVeseExternal) others(h heaviside.Function, i int) float64 {
	prod := 1.0
	for _, id := range t.container.ActiveIDs(i) {
		if id == t.id {
			continue
		}
		ls, err := t.container.Get(id)
		if err != nil {
			continue
		}
		prod *= 1 - h.Evaluate(-ls.Evaluate(i))
	}

	return prod
}

// Initialize accumulates pixel·w and w for the exclusive-outside weight w.
func (t *ChanVeseExternal) Initialize(i int) {
	h := t.heavisideOrWarn()
	if h == nil {
		return
	}
	w := (1 - h.Evaluate(-t.ls.Evaluate(i))) * t.others(h, i)
	t.acc.add(t.input.At(i), w)
}

// Value implements Term.
func (t *ChanVeseExternal) Value(d *levelset.Data) float64 {
	h := t.heavisideOrWarn()
	if h == nil {
		return 0
	}
	i := d.Index()
	diff := t.input.At(i) - t.stats.Mean

	return -h.EvaluateDerivative(-d.Value()) * t.others(h, i) * diff * diff
}

// Evaluate implements Term.
func (t *ChanVeseExternal) Evaluate(i int) float64 { return t.coefficient * t.Value(t.data(i)) }

// UpdatePixel moves node i's outside weight from its old to its new value.
func (t *ChanVeseExternal) UpdatePixel(i int, oldValue, newValue float64) {
	h := t.heavisideOrWarn()
	if h == nil {
		return
	}
	dw := (h.Evaluate(-oldValue) - h.Evaluate(-newValue)) * t.others(h, i)
	t.stats.add(t.input.At(i), dw)
	t.stats.finalize()
}
