package term

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/lvlset/levelset"
)

// Equations maps every evolved level-set id to its Container.
type Equations struct {
	ls         *levelset.Container
	containers map[int]*Container
	ids        []int
}

// NewEquations returns an empty equation set over c.
func NewEquations(c *levelset.Container) *Equations {
	return &Equations{ls: c, containers: make(map[int]*Container)}
}

// LevelSets returns the shared level-set container.
func (e *Equations) LevelSets() *levelset.Container { return e.ls }

// Add registers tc under its level-set id, replacing any previous one.
func (e *Equations) Add(tc *Container) error {
	if tc == nil {
		return fmt.Errorf("Equations.Add: %w", ErrNilContainer)
	}
	if _, ok := e.containers[tc.id]; !ok {
		i, _ := slices.BinarySearch(e.ids, tc.id)
		e.ids = slices.Insert(e.ids, i, tc.id)
	}
	e.containers[tc.id] = tc

	return nil
}

// Get returns the equation of level set id.
func (e *Equations) Get(id int) (*Container, error) {
	tc, ok := e.containers[id]
	if !ok {
		return nil, fmt.Errorf("Equations.Get(%d): %w", id, ErrMissingEquation)
	}

	return tc, nil
}

// IDs returns the ids with an equation, ascending. Do not modify.
func (e *Equations) IDs() []int { return e.ids }

// Bind validates every equation and checks that each one refers to the
// shared level-set container.
func (e *Equations) Bind() error {
	if e.ls == nil {
		return fmt.Errorf("Equations.Bind: %w", ErrNilContainer)
	}
	for _, id := range e.ids {
		tc := e.containers[id]
		if tc.ls != e.ls {
			return fmt.Errorf("Equations.Bind(%d): foreign container: %w", id, ErrNilContainer)
		}
		if err := tc.Bind(); err != nil {
			return err
		}
	}

	return nil
}

// Update finalizes every equation.
func (e *Equations) Update() {
	for _, id := range e.ids {
		e.containers[id].Update()
	}
}

// ResetCFL clears the per-term maxima of every equation.
func (e *Equations) ResetCFL() {
	for _, id := range e.ids {
		e.containers[id].ResetCFL()
	}
}

// ComputeCFLContribution returns the largest contribution over all equations.
func (e *Equations) ComputeCFLContribution() float64 {
	out := 0.0
	for _, id := range e.ids {
		out = max(out, e.containers[id].ComputeCFLContribution())
	}

	return out
}
