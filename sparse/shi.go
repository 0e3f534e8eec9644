package sparse

import "math"

// shi keeps the two layers on either side of the interface; Value always
// equals Status.
type shi struct{}

const shiFar int8 = 3

func (shi) statuses() []int8    { return []int8{-1, 1} }
func (shi) far() (in, out int8) { return -shiFar, shiFar }
func (shi) gap() int8           { return 2 }

func (shi) band(f *Field) []int {
	return append(f.layer(-1).Indices(), f.layer(1).Indices()...)
}

func (shi) build(f *Field, fg []bool) {
	g := f.Geometry()
	nb := make([]int, 0, 2*g.Dim())
	for i, in := range fg {
		if in {
			f.img.SetAt(i, Attribute{Status: -shiFar, Value: -float64(shiFar)})
		}
	}
	for i := range fg {
		if boundary(g, fg, i, nb) {
			f.move(i, Attribute{Status: -1, Value: -1})
		}
	}
	for _, i := range f.layer(-1).Indices() {
		for _, j := range g.FaceNeighbors(i, nb) {
			if f.img.At(j).Status == shiFar {
				f.move(j, Attribute{Status: 1, Value: 1})
			}
		}
	}
}

// update moves outer nodes inward where the speed is negative, drops
// interior nodes that lost contact with the exterior, then does the same
// in the other direction. Nodes that enter the band during the pass have
// no buffered update and are evaluated through h.
func (s shi) update(ls *LevelSet, ups Updates, _ float64, h Hooks) float64 {
	f := ls.field
	buf := make(map[int]float64, len(ups))
	for _, u := range ups {
		buf[u.Index] = u.Value
	}
	speed := func(i int) float64 {
		if v, ok := buf[i]; ok {
			return v
		}
		return h.Speed(i)
	}

	flips := s.sweep(f, 1, speed, h)
	s.shrink(f, -1, h)
	flips += s.sweep(f, -1, speed, h)
	s.shrink(f, 1, h)

	if len(ups) == 0 {
		return 0
	}

	// each flip jumps the value by 2
	return math.Sqrt(4 * float64(flips) / float64(len(ups)))
}

// sweep flips nodes of layer src to the opposite layer when their speed
// points across the interface and con confirms it. The far neighbors on
// the src side of a flipped node join layer src.
func (s shi) sweep(f *Field, src int8, speed func(int) float64, h Hooks) int {
	g := f.Geometry()
	nb := make([]int, 0, 2*g.Dim())
	dst := -src
	flips := 0
	for _, i := range f.layer(src).Indices() {
		if f.img.At(i).Status != src {
			continue
		}
		u := speed(i)
		if u*float64(dst) <= 0 || !s.con(f, i, u, dst, speed, nb) {
			continue
		}
		f.move(i, Attribute{Status: dst, Value: float64(dst)})
		h.UpdatePixel(i, float64(src), float64(dst))
		flips++

		for _, j := range g.FaceNeighbors(i, nb) {
			if f.img.At(j).Status == src*shiFar {
				f.move(j, Attribute{Status: src, Value: float64(src)})
				h.UpdatePixel(j, float64(src*shiFar), float64(src))
			}
		}
	}

	return flips
}

// con reports whether a neighbor of i in layer opposite has a speed of the
// same sign as u, so a flip of i extends an existing front instead of
// creating an isolated island.
func (shi) con(f *Field, i int, u float64, opposite int8, speed func(int) float64, nb []int) bool {
	for _, j := range f.Geometry().FaceNeighbors(i, nb) {
		if f.img.At(j).Status == opposite && speed(j)*u > 0 {
			return true
		}
	}

	return false
}

// shrink sends every node of layer s whose neighbors all lie on the same
// side as s to the far status of that side.
func (shi) shrink(f *Field, s int8, h Hooks) {
	g := f.Geometry()
	nb := make([]int, 0, 2*g.Dim())
	rs := f.transfer(s, func(i int, _ Attribute) (Attribute, bool) {
		for _, j := range g.FaceNeighbors(i, nb) {
			if sign(f.img.At(j).Status) != sign(s) {
				return Attribute{}, false
			}
		}
		return Attribute{Status: s * shiFar, Value: float64(s * shiFar)}, true
	})
	for _, r := range rs {
		h.UpdatePixel(r.index, r.from.Value, r.to.Value)
	}
}
