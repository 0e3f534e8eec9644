package grid

import "errors"

var (
	// ErrBadShape indicates a geometry with no dimensions or a non-positive size.
	ErrBadShape = errors.New("grid: size must be positive in every dimension")
	// ErrBadSpacing indicates a non-finite or non-positive spacing component.
	ErrBadSpacing = errors.New("grid: spacing must be finite and positive")
	// ErrDimension indicates an index or region whose length differs from the geometry.
	ErrDimension = errors.New("grid: dimension mismatch")
	// ErrOutOfRange indicates an index outside the geometry bounds.
	ErrOutOfRange = errors.New("grid: index out of range")
)
