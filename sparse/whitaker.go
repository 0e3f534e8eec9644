package sparse

import (
	"math"

	"github.com/katalvlaran/lvlset/grid"
)

// whitaker keeps five layers around the interface with Value approximating
// signed distance: layer k holds nodes with |Value−k| ≤ 0.5.
type whitaker struct{}

const whitakerFar int8 = 3

func (whitaker) statuses() []int8    { return []int8{-2, -1, 0, 1, 2} }
func (whitaker) far() (in, out int8) { return -whitakerFar, whitakerFar }
func (whitaker) band(f *Field) []int { return f.layer(0).Indices() }
func (whitaker) gap() int8           { return 1 }

func (w whitaker) build(f *Field, fg []bool) {
	g := f.Geometry()
	nb := make([]int, 0, 2*g.Dim())
	for i, in := range fg {
		if in {
			f.img.SetAt(i, Attribute{Status: -whitakerFar, Value: -float64(whitakerFar)})
		}
	}
	for i := range fg {
		if boundary(g, fg, i, nb) {
			f.move(i, Attribute{})
		}
	}
	w.cascade(f)
}

// cascade restores the layer structure around layers 0 and ±1: a face
// neighbor whose status lies more than one layer further out on its side
// is pulled into the adjacent layer with value one unit further from the
// interface. Pulled nodes are revisited, so the pull runs out to layer ±2
// and afterwards no two face neighbors on the same side of the interface
// are more than one status apart.
func (whitaker) cascade(f *Field) {
	g := f.Geometry()
	nb := make([]int, 0, 2*g.Dim())
	queue := f.layer(0).Indices()
	queue = append(queue, f.layer(-1).Indices()...)
	queue = append(queue, f.layer(1).Indices()...)
	for head := 0; head < len(queue); head++ {
		i := queue[head]
		a := f.img.At(i)
		if a.Status < -1 || a.Status > 1 {
			continue
		}
		for _, j := range g.FaceNeighbors(i, nb) {
			t := f.img.At(j).Status
			side := sign(t)
			if side == 0 || (a.Status != 0 && side != sign(a.Status)) {
				continue
			}
			if side*t <= side*a.Status+1 {
				continue
			}
			f.move(j, Attribute{Status: a.Status + side, Value: a.Value + float64(side)})
			queue = append(queue, j)
		}
	}
}

// update runs one Whitaker step:
//
//  1. integrate layer 0 with the change clamped to ±0.5 and mark nodes
//     leaving [−0.5, 0.5] for layer ±1;
//  2. re-derive layers ±1 from their layer-0 neighbors;
//  3. re-derive layers ±2 from their layer-±1 neighbors;
//  4. relabel every planned node at once;
//  5. cascade: pull nodes left more than one layer away from a node of
//     layer 0 or ±1 into the adjacent layer, refilling ±1 and ±2.
//
// Steps 1–3 decide against the labels from before the step and read the
// values already written by the previous step.
func (w whitaker) update(ls *LevelSet, ups Updates, dt float64, _ Hooks) float64 {
	f := ls.field
	g := f.Geometry()
	nb := make([]int, 0, 2*g.Dim())

	next := make(map[int]float64, len(ups))
	for _, u := range ups {
		next[u.Index] = f.img.At(u.Index).Value + clamp(dt*u.Value, 0.5)
	}

	var (
		zero  []relocation
		sumSq float64
	)
	for _, u := range ups {
		i := u.Index
		old := f.img.At(i)
		v := next[i]
		// two interface nodes may not cross each other in one step
		if v > 0.5 && w.zeroNeighbor(g, next, i, nb, func(x float64) bool { return x < -0.5 }) {
			v = 0.5
		} else if v < -0.5 && w.zeroNeighbor(g, next, i, nb, func(x float64) bool { return x > 0.5 }) {
			v = -0.5
		}
		d := v - old.Value
		sumSq += d * d

		to := Attribute{Value: v}
		switch {
		case v > 0.5:
			to.Status = 1
		case v < -0.5:
			to.Status = -1
		}
		zero = append(zero, relocation{index: i, from: old, to: to})
	}
	f.stage(zero)

	inner := append(
		f.plan(-1, func(i int, _ Attribute) (Attribute, bool) { return w.relabel(f, nb, i, -1) }),
		f.plan(1, func(i int, _ Attribute) (Attribute, bool) { return w.relabel(f, nb, i, 1) })...,
	)
	f.stage(inner)

	outer := append(
		f.plan(-2, func(i int, _ Attribute) (Attribute, bool) { return w.relabel(f, nb, i, -2) }),
		f.plan(2, func(i int, _ Attribute) (Attribute, bool) { return w.relabel(f, nb, i, 2) })...,
	)

	f.commit(zero)
	f.commit(inner)
	f.commit(outer)
	w.cascade(f)

	if len(ups) == 0 {
		return 0
	}

	return math.Sqrt(sumSq / float64(len(ups)))
}

// zeroNeighbor reports whether a layer-0 neighbor of i has a new value
// matching pred. next holds the new values of exactly the layer-0 nodes.
func (whitaker) zeroNeighbor(g *grid.Geometry, next map[int]float64, i int, nb []int, pred func(float64) bool) bool {
	for _, j := range g.FaceNeighbors(i, nb) {
		if v, ok := next[j]; ok && pred(v) {
			return true
		}
	}

	return false
}

// relabel derives the new attribute of a node of layer s (s ≠ 0) from its
// neighbors in the layer one step closer to the interface. On the negative
// side the closest neighbor is the one with the largest value, on the
// positive side the one with the smallest; the candidate value is that
// neighbor's value moved one unit away from the interface.
func (whitaker) relabel(f *Field, nb []int, i int, s int8) (Attribute, bool) {
	side := sign(s)
	inward := s - side
	found := false
	m := 0.0
	for _, j := range f.Geometry().FaceNeighbors(i, nb) {
		a := f.img.At(j)
		if a.Status != inward {
			continue
		}
		if !found || (side < 0 && a.Value > m) || (side > 0 && a.Value < m) {
			m = a.Value
			found = true
		}
	}

	if !found {
		if s == -2 || s == 2 {
			return Attribute{Status: side * whitakerFar, Value: float64(side * whitakerFar)}, true
		}
		return Attribute{Status: s + side, Value: float64(s + side)}, true
	}

	v := m + float64(side)
	lo, hi := float64(s)-0.5, float64(s)+0.5
	switch {
	case (side < 0 && v >= hi) || (side > 0 && v <= lo):
		return Attribute{Status: inward, Value: v}, true
	case (side < 0 && v < lo) || (side > 0 && v > hi):
		out := s + side
		if out == side*whitakerFar {
			return Attribute{Status: out, Value: float64(out)}, true
		}
		return Attribute{Status: out, Value: v}, true
	}

	return Attribute{Status: s, Value: v}, true
}

func clamp(x, limit float64) float64 {
	switch {
	case x > limit:
		return limit
	case x < -limit:
		return -limit
	}

	return x
}
