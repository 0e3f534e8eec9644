package grid

import "fmt"

// Region is an axis-aligned box of nodes: Start is the lowest corner and
// Size the extent along each dimension.
type Region struct {
	Start Index
	Size  []int
}

// Whole returns the region covering every node of g.
func (g *Geometry) Whole() Region {
	return Region{Start: make(Index, len(g.size)), Size: g.Size()}
}

// Len returns the number of nodes inside r.
func (r Region) Len() int {
	if len(r.Size) == 0 {
		return 0
	}
	n := 1
	for _, s := range r.Size {
		if s <= 0 {
			return 0
		}
		n *= s
	}

	return n
}

// Contains reports whether idx lies inside r.
func (r Region) Contains(idx Index) bool {
	if len(idx) != len(r.Start) || len(r.Size) != len(r.Start) {
		return false
	}
	for d, c := range idx {
		if c < r.Start[d] || c >= r.Start[d]+r.Size[d] {
			return false
		}
	}

	return true
}

// String formats r as "[start+size]".
func (r Region) String() string {
	return fmt.Sprintf("[%v+%v]", []int(r.Start), r.Size)
}

// Crop intersects r with the geometry bounds. The result may be empty.
func (g *Geometry) Crop(r Region) (Region, error) {
	if len(r.Start) != len(g.size) || len(r.Size) != len(g.size) {
		return Region{}, fmt.Errorf("Crop(%v): %w", r, ErrDimension)
	}
	out := Region{Start: make(Index, len(g.size)), Size: make([]int, len(g.size))}
	for d := range g.size {
		lo := max(r.Start[d], 0)
		hi := min(r.Start[d]+r.Size[d], g.size[d])
		out.Start[d] = lo
		out.Size[d] = max(hi-lo, 0)
	}

	return out, nil
}

// Each calls fn with the flat offset of every node of r in raster order
// (dimension 0 fastest). r must lie inside g; use Crop first otherwise.
// Complexity: O(|r|).
func (g *Geometry) Each(r Region, fn func(i int)) {
	n := r.Len()
	if n == 0 {
		return
	}
	dim := len(g.size)
	cur := append(Index(nil), r.Start...)
	base := 0
	for d := range cur {
		base += cur[d] * g.stride[d]
	}
	for k := 0; k < n; k++ {
		fn(base)
		// odometer increment
		for d := 0; d < dim; d++ {
			cur[d]++
			base += g.stride[d]
			if cur[d] < r.Start[d]+r.Size[d] {
				break
			}
			base -= r.Size[d] * g.stride[d]
			cur[d] = r.Start[d]
		}
	}
}
