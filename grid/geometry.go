package grid

import (
	"fmt"
	"math"
)

// Index is a coordinate tuple with one component per dimension.
type Index []int

// Geometry describes the shape of an N-dimensional row-major grid.
// It is immutable once built; WithSpacing returns a modified copy.
type Geometry struct {
	size    []int
	spacing []float64
	stride  []int
	n       int
}

// NewGeometry builds a geometry with the given per-dimension sizes and unit spacing.
// Returns ErrBadShape when no sizes are given or any size is ≤ 0.
// Complexity: O(D).
func NewGeometry(size ...int) (*Geometry, error) {
	if len(size) == 0 {
		return nil, ErrBadShape
	}
	g := &Geometry{
		size:    make([]int, len(size)),
		spacing: make([]float64, len(size)),
		stride:  make([]int, len(size)),
		n:       1,
	}
	for d, s := range size {
		if s <= 0 {
			return nil, fmt.Errorf("NewGeometry(dim=%d, size=%d): %w", d, s, ErrBadShape)
		}
		g.size[d] = s
		g.spacing[d] = 1
		g.stride[d] = g.n
		g.n *= s
	}

	return g, nil
}

// WithSpacing returns a copy of g with the given physical spacing.
// Returns ErrDimension on a length mismatch and ErrBadSpacing for values
// that are not finite and positive.
func (g *Geometry) WithSpacing(spacing ...float64) (*Geometry, error) {
	if len(spacing) != len(g.size) {
		return nil, fmt.Errorf("WithSpacing(len=%d, dim=%d): %w", len(spacing), len(g.size), ErrDimension)
	}
	out := &Geometry{
		size:    append([]int(nil), g.size...),
		spacing: make([]float64, len(spacing)),
		stride:  append([]int(nil), g.stride...),
		n:       g.n,
	}
	for d, h := range spacing {
		if math.IsNaN(h) || math.IsInf(h, 0) || h <= 0 {
			return nil, fmt.Errorf("WithSpacing(dim=%d, h=%g): %w", d, h, ErrBadSpacing)
		}
		out.spacing[d] = h
	}

	return out, nil
}

// Dim returns the number of dimensions.
func (g *Geometry) Dim() int { return len(g.size) }

// Len returns the total number of nodes.
func (g *Geometry) Len() int { return g.n }

// Size returns a copy of the per-dimension sizes.
func (g *Geometry) Size() []int { return append([]int(nil), g.size...) }

// SizeAt returns the size along dimension d.
func (g *Geometry) SizeAt(d int) int { return g.size[d] }

// Spacing returns a copy of the per-dimension spacing.
func (g *Geometry) Spacing() []float64 { return append([]float64(nil), g.spacing...) }

// SpacingAt returns the spacing along dimension d.
func (g *Geometry) SpacingAt(d int) float64 { return g.spacing[d] }

// Equal reports whether two geometries have the same sizes and spacing.
func (g *Geometry) Equal(o *Geometry) bool {
	if g == o {
		return true
	}
	if g == nil || o == nil || len(g.size) != len(o.size) {
		return false
	}
	for d := range g.size {
		if g.size[d] != o.size[d] || g.spacing[d] != o.spacing[d] {
			return false
		}
	}

	return true
}

// InBounds reports whether idx has D components that all lie inside the grid.
// Complexity: O(D).
func (g *Geometry) InBounds(idx Index) bool {
	if len(idx) != len(g.size) {
		return false
	}
	for d, c := range idx {
		if c < 0 || c >= g.size[d] {
			return false
		}
	}

	return true
}

// Flat maps idx to its row-major offset.
// Returns ErrDimension or ErrOutOfRange for invalid indices.
// Complexity: O(D).
func (g *Geometry) Flat(idx Index) (int, error) {
	if len(idx) != len(g.size) {
		return 0, fmt.Errorf("Flat(%v): %w", idx, ErrDimension)
	}
	off := 0
	for d, c := range idx {
		if c < 0 || c >= g.size[d] {
			return 0, fmt.Errorf("Flat(%v): %w", idx, ErrOutOfRange)
		}
		off += c * g.stride[d]
	}

	return off, nil
}

// MustFlat is Flat for indices already known to be valid; it panics otherwise.
func (g *Geometry) MustFlat(idx Index) int {
	off, err := g.Flat(idx)
	if err != nil {
		panic(err)
	}

	return off
}

// Unflat converts a row-major offset back to its coordinate tuple.
// Complexity: O(D).
func (g *Geometry) Unflat(i int) Index {
	idx := make(Index, len(g.size))
	for d := range g.size {
		idx[d] = (i / g.stride[d]) % g.size[d]
	}

	return idx
}

// Coord returns the component of offset i along dimension d.
// Complexity: O(1).
func (g *Geometry) Coord(i, d int) int {
	return (i / g.stride[d]) % g.size[d]
}

// Shift moves offset i by delta along dimension d, clamping to the grid
// (zero-flux Neumann boundary): out-of-range steps return the nearest
// in-bounds node along that axis.
// Complexity: O(1).
func (g *Geometry) Shift(i, d, delta int) int {
	c := g.Coord(i, d)
	nc := c + delta
	if nc < 0 {
		nc = 0
	} else if nc >= g.size[d] {
		nc = g.size[d] - 1
	}

	return i + (nc-c)*g.stride[d]
}

// Step moves offset i by delta along dimension d without clamping.
// ok is false when the target lies outside the grid.
// Complexity: O(1).
func (g *Geometry) Step(i, d, delta int) (j int, ok bool) {
	nc := g.Coord(i, d) + delta
	if nc < 0 || nc >= g.size[d] {
		return i, false
	}

	return i + delta*g.stride[d], true
}

// FaceNeighbors appends the in-bounds face neighbors of offset i to buf[:0]
// and returns it. Order: -1 then +1 along dimension 0, then dimension 1, ...
// Complexity: O(D).
func (g *Geometry) FaceNeighbors(i int, buf []int) []int {
	buf = buf[:0]
	for d := range g.size {
		c := g.Coord(i, d)
		if c > 0 {
			buf = append(buf, i-g.stride[d])
		}
		if c < g.size[d]-1 {
			buf = append(buf, i+g.stride[d])
		}
	}

	return buf
}
