package levelset

import (
	"github.com/katalvlaran/lvlset/grid"
)

// LevelSet is an implicit surface sampled on a grid. The interior is the
// set of nodes with φ < 0.
type LevelSet interface {
	// Geometry returns the grid the level set is sampled on.
	Geometry() *grid.Geometry
	// Evaluate returns φ at flat offset i.
	Evaluate(i int) float64
	// IsInside reports whether node i lies in the interior.
	IsInside(i int) bool
}

// Dense is a LevelSet that stores φ for every node.
type Dense struct {
	img *grid.Image[float64]
}

// NewDense wraps img (no copy) as a level set.
func NewDense(img *grid.Image[float64]) *Dense {
	return &Dense{img: img}
}

// Geometry implements LevelSet.
func (d *Dense) Geometry() *grid.Geometry { return d.img.Geometry() }

// Evaluate implements LevelSet.
func (d *Dense) Evaluate(i int) float64 { return d.img.At(i) }

// IsInside implements LevelSet.
func (d *Dense) IsInside(i int) bool { return d.img.At(i) < 0 }

// Image returns the backing image.
func (d *Dense) Image() *grid.Image[float64] { return d.img }
