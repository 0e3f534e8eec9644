package sparse

import "math"

// malcolm keeps a single interface layer 0; every other node is −1
// (interior) or +1 (exterior) and Value equals Status.
type malcolm struct{}

func (malcolm) statuses() []int8    { return []int8{0} }
func (malcolm) far() (in, out int8) { return -1, 1 }
func (malcolm) band(f *Field) []int { return f.layer(0).Indices() }
func (malcolm) gap() int8           { return 1 }

func (malcolm) build(f *Field, fg []bool) {
	g := f.Geometry()
	nb := make([]int, 0, 2*g.Dim())
	for i, in := range fg {
		switch {
		case boundary(g, fg, i, nb):
			f.move(i, Attribute{})
		case in:
			f.img.SetAt(i, Attribute{Status: -1, Value: -1})
		}
	}
}

// update flips interface nodes by the sign of their speed. In phased mode
// all contracting nodes (speed > 0) are processed before all dilating
// ones; in both modes one minimal-interface pass follows.
func (m malcolm) update(ls *LevelSet, ups Updates, _ float64, h Hooks) float64 {
	f := ls.field
	var flips int
	if ls.phased {
		flips = m.sweep(f, ups, 1, h) + m.sweep(f, ups, -1, h)
	} else {
		flips = m.sweep(f, ups, 0, h)
	}
	flips += m.minimalInterface(f, h)

	if len(ups) == 0 {
		return 0
	}

	return math.Sqrt(float64(flips) / float64(len(ups)))
}

// sweep moves each layer-0 node with a non-zero speed (of sign dir, or any
// sign when dir is 0) to the side the speed points to. Its neighbors on
// the other side become interface nodes; they join layer 0 after the sweep.
func (malcolm) sweep(f *Field, ups Updates, dir int8, h Hooks) int {
	g := f.Geometry()
	nb := make([]int, 0, 2*g.Dim())
	var fresh []int
	flips := 0
	for _, u := range ups {
		if u.Value == 0 || (dir > 0 && u.Value < 0) || (dir < 0 && u.Value > 0) {
			continue
		}
		i := u.Index
		if f.img.At(i).Status != 0 || !f.layer(0).Contains(i) {
			continue
		}
		to := int8(1)
		if u.Value < 0 {
			to = -1
		}
		f.move(i, Attribute{Status: to, Value: float64(to)})
		h.UpdatePixel(i, 0, float64(to))
		flips++

		for _, j := range g.FaceNeighbors(i, nb) {
			if f.img.At(j).Status == -to {
				f.img.SetAt(j, Attribute{})
				h.UpdatePixel(j, float64(-to), 0)
				fresh = append(fresh, j)
			}
		}
	}
	for _, j := range fresh {
		f.layer(0).PushBack(j)
	}

	return flips
}

// minimalInterface removes layer-0 nodes that no longer separate the two
// phases: a node whose non-zero neighbors are all positive becomes +1,
// all negative becomes −1. Nodes with only interface neighbors stay.
// Nodes are relabeled one at a time, so a node sees the decisions taken
// for the nodes before it and two neighbors never leave to opposite sides.
func (malcolm) minimalInterface(f *Field, h Hooks) int {
	g := f.Geometry()
	nb := make([]int, 0, 2*g.Dim())
	flips := 0
	for _, i := range f.layer(0).Indices() {
		pos, neg := false, false
		for _, j := range g.FaceNeighbors(i, nb) {
			switch s := f.img.At(j).Status; {
			case s > 0:
				pos = true
			case s < 0:
				neg = true
			}
		}
		var to int8
		switch {
		case pos && !neg:
			to = 1
		case neg && !pos:
			to = -1
		default:
			continue
		}
		f.move(i, Attribute{Status: to, Value: float64(to)})
		h.UpdatePixel(i, 0, float64(to))
		flips++
	}

	return flips
}
