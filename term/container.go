package term

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvlset/grid"
	"github.com/katalvlaran/lvlset/levelset"
)

// Container is the evolution equation of one level set: the sum of its
// terms. It also tracks, per term, the largest |weighted value| seen
// since the last ResetCFL; their sum is the CFL contribution.
type Container struct {
	id     int
	ls     *levelset.Container
	input  *grid.Image[float64]
	terms  []Term
	maxima []float64
	bound  levelset.LevelSet
}

// NewContainer returns an empty equation for level set id in c. input may
// be nil when no term reads pixels.
func NewContainer(id int, c *levelset.Container, input *grid.Image[float64]) *Container {
	return &Container{id: id, ls: c, input: input}
}

// LevelSetID returns the id of the evolved level set.
func (c *Container) LevelSetID() int { return c.id }

// AddTerm appends t and points it at this equation's level set,
// container and (if set) input image.
func (c *Container) AddTerm(t Term) {
	t.SetCurrentLevelSet(c.id)
	t.SetLevelSetContainer(c.ls)
	if c.input != nil {
		t.SetInput(c.input)
	}
	c.terms = append(c.terms, t)
	c.maxima = append(c.maxima, 0)
}

// Terms returns the terms in insertion order. Do not modify.
func (c *Container) Terms() []Term { return c.terms }

// Bind validates the equation and every term.
func (c *Container) Bind() error {
	if c.ls == nil {
		return fmt.Errorf("Container(%d).Bind: %w", c.id, ErrNilContainer)
	}
	ls, err := c.ls.Get(c.id)
	if err != nil {
		return fmt.Errorf("Container(%d).Bind: %w", c.id, err)
	}
	for _, t := range c.terms {
		if err := t.Bind(); err != nil {
			return fmt.Errorf("Container(%d).Bind: %w", c.id, err)
		}
	}
	c.bound = ls

	return nil
}

// Initialize forwards node i to every term.
func (c *Container) Initialize(i int) {
	for _, t := range c.terms {
		t.Initialize(i)
	}
}

// Update finalizes every term.
func (c *Container) Update() {
	for _, t := range c.terms {
		t.Update()
	}
}

// UpdatePixel forwards a node change to every term.
func (c *Container) UpdatePixel(i int, oldValue, newValue float64) {
	for _, t := range c.terms {
		t.UpdatePixel(i, oldValue, newValue)
	}
}

// Evaluate returns Σ coefficient·Value at node i. Safe for concurrent use
// between Update calls.
func (c *Container) Evaluate(i int) float64 {
	return c.EvaluateCFL(i, nil)
}

// EvaluateCFL is Evaluate that also raises cfl[k] to |term k| where
// larger. cfl must be nil or have one slot per term (see NewCFL).
func (c *Container) EvaluateCFL(i int, cfl []float64) float64 {
	d := levelset.NewData(c.bound, i)
	sum := 0.0
	for k, t := range c.terms {
		v := t.Coefficient() * t.Value(d)
		sum += v
		if cfl != nil {
			cfl[k] = max(cfl[k], math.Abs(v))
		}
	}

	return sum
}

// NewCFL returns a zeroed per-term maxima buffer for EvaluateCFL.
func (c *Container) NewCFL() []float64 { return make([]float64, len(c.terms)) }

// MergeCFL folds a worker's per-term maxima into the container.
func (c *Container) MergeCFL(cfl []float64) {
	for k, v := range cfl {
		c.maxima[k] = max(c.maxima[k], v)
	}
}

// ResetCFL clears the per-term maxima.
func (c *Container) ResetCFL() {
	for k := range c.maxima {
		c.maxima[k] = 0
	}
}

// ComputeCFLContribution returns the sum of per-term maxima.
func (c *Container) ComputeCFLContribution() float64 {
	return floats.Sum(c.maxima)
}
