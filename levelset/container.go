package levelset

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/lvlset/domain"
	"github.com/katalvlaran/lvlset/grid"
	"github.com/katalvlaran/lvlset/heaviside"
)

// Container owns every co-evolved level set of one grid, keyed by a
// non-negative integer id, together with the shared domain partition and
// Heaviside function.
//
// A Container is not safe for concurrent mutation; reads during an
// evolution iteration are safe.
type Container struct {
	geom      *grid.Geometry
	sets      map[int]LevelSet
	ids       []int
	partition *domain.Partition
	heaviside heaviside.Function
}

// NewContainer returns an empty container over g.
func NewContainer(g *grid.Geometry) *Container {
	return &Container{geom: g, sets: make(map[int]LevelSet)}
}

// Geometry returns the shared grid.
func (c *Container) Geometry() *grid.Geometry { return c.geom }

// Add registers ls under id.
// Returns ErrNilLevelSet, ErrUnknownLevelSet (negative id), ErrDuplicateID
// or ErrGeometryMismatch.
func (c *Container) Add(id int, ls LevelSet) error {
	switch {
	case ls == nil:
		return fmt.Errorf("Add(%d): %w", id, ErrNilLevelSet)
	case id < 0:
		return fmt.Errorf("Add(%d): %w", id, ErrUnknownLevelSet)
	case !ls.Geometry().Equal(c.geom):
		return fmt.Errorf("Add(%d): %w", id, ErrGeometryMismatch)
	}
	if _, ok := c.sets[id]; ok {
		return fmt.Errorf("Add(%d): %w", id, ErrDuplicateID)
	}
	c.sets[id] = ls
	i, _ := slices.BinarySearch(c.ids, id)
	c.ids = slices.Insert(c.ids, i, id)

	return nil
}

// Get returns the level set registered under id.
func (c *Container) Get(id int) (LevelSet, error) {
	ls, ok := c.sets[id]
	if !ok {
		return nil, fmt.Errorf("Get(%d): %w", id, ErrUnknownLevelSet)
	}

	return ls, nil
}

// IDs returns the registered ids in ascending order. Do not modify.
func (c *Container) IDs() []int { return c.ids }

// Len returns the number of registered level sets.
func (c *Container) Len() int { return len(c.ids) }

// SetDomain installs the shared partition. A nil partition means every
// registered level set is active everywhere.
func (c *Container) SetDomain(p *domain.Partition) error {
	if p != nil && !p.Geometry().Equal(c.geom) {
		return fmt.Errorf("SetDomain: %w", ErrGeometryMismatch)
	}
	c.partition = p

	return nil
}

// Domain returns the shared partition, or nil.
func (c *Container) Domain() *domain.Partition { return c.partition }

// ActiveIDs returns the ids active at flat offset i: the partition's list
// when one is installed, every registered id otherwise.
func (c *Container) ActiveIDs(i int) []int {
	if c.partition == nil {
		return c.ids
	}

	return c.partition.IDsAt(i)
}

// SetHeaviside installs the Heaviside function shared by region terms.
func (c *Container) SetHeaviside(h heaviside.Function) { c.heaviside = h }

// Heaviside returns the shared Heaviside function, or nil.
func (c *Container) Heaviside() heaviside.Function { return c.heaviside }
