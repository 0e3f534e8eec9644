package grid

import "fmt"

// Image stores one value of type T per node of a Geometry in row-major order.
// Get/Set validate their index and return errors; At/SetAt take flat offsets
// and are meant for hot loops that already hold valid offsets.
type Image[T any] struct {
	geom *Geometry
	data []T
}

// NewImage allocates a zero-valued image over g.
// Complexity: O(|g|).
func NewImage[T any](g *Geometry) *Image[T] {
	return &Image[T]{geom: g, data: make([]T, g.Len())}
}

// FromSlice wraps data (no copy) as an image over g.
// Returns ErrDimension when len(data) differs from g.Len().
func FromSlice[T any](g *Geometry, data []T) (*Image[T], error) {
	if len(data) != g.Len() {
		return nil, fmt.Errorf("FromSlice(len=%d, nodes=%d): %w", len(data), g.Len(), ErrDimension)
	}

	return &Image[T]{geom: g, data: data}, nil
}

// Geometry returns the image geometry.
func (im *Image[T]) Geometry() *Geometry { return im.geom }

// Data exposes the backing slice so callers can read/write values directly.
func (im *Image[T]) Data() []T { return im.data }

// Get returns the value at idx.
func (im *Image[T]) Get(idx Index) (T, error) {
	i, err := im.geom.Flat(idx)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("Image.Get: %w", err)
	}

	return im.data[i], nil
}

// Set stores v at idx.
func (im *Image[T]) Set(idx Index, v T) error {
	i, err := im.geom.Flat(idx)
	if err != nil {
		return fmt.Errorf("Image.Set: %w", err)
	}
	im.data[i] = v

	return nil
}

// At returns the value at flat offset i.
func (im *Image[T]) At(i int) T { return im.data[i] }

// SetAt stores v at flat offset i.
func (im *Image[T]) SetAt(i int, v T) { im.data[i] = v }

// Fill sets every node to v.
func (im *Image[T]) Fill(v T) {
	for i := range im.data {
		im.data[i] = v
	}
}

// Clone returns a deep copy sharing the (immutable) geometry.
func (im *Image[T]) Clone() *Image[T] {
	return &Image[T]{geom: im.geom, data: append([]T(nil), im.data...)}
}
