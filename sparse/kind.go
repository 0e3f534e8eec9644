package sparse

import (
	"fmt"

	"github.com/katalvlaran/lvlset/grid"
)

// Kind selects a sparse representation.
type Kind int

const (
	// Whitaker is the signed-distance representation with five layers.
	Whitaker Kind = iota
	// Shi is the ternary representation with two layers around the interface.
	Shi
	// Malcolm is the binary representation with a single interface layer.
	Malcolm
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Whitaker:
		return "whitaker"
	case Shi:
		return "shi"
	case Malcolm:
		return "malcolm"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Hooks lets an updater consult the speed function during a pass.
type Hooks interface {
	// Speed evaluates the update at node i against the current state.
	Speed(i int) float64
	// UpdatePixel reports that node i changed value from oldValue to newValue.
	UpdatePixel(i int, oldValue, newValue float64)
}

type noHooks struct{}

func (noHooks) Speed(int) float64                 { return 0 }
func (noHooks) UpdatePixel(int, float64, float64) {}

// strategy carries everything that differs between representations.
type strategy interface {
	// statuses lists the live layers in ascending order.
	statuses() []int8
	// far returns the interior and exterior background statuses.
	far() (in, out int8)
	// band returns the nodes evaluated by the speed phase, in order.
	band(f *Field) []int
	// build fills f from a foreground predicate.
	build(f *Field, fg []bool)
	// gap is the largest status difference allowed between face neighbors.
	gap() int8
	// update applies one step and returns the RMS change.
	update(ls *LevelSet, ups Updates, dt float64, h Hooks) float64
}

func strategyFor(k Kind) (strategy, error) {
	switch k {
	case Whitaker:
		return whitaker{}, nil
	case Shi:
		return shi{}, nil
	case Malcolm:
		return malcolm{}, nil
	}

	return nil, fmt.Errorf("Kind(%d): %w", int(k), ErrBadKind)
}

// boundary reports whether foreground node i has a background face neighbor.
func boundary(g *grid.Geometry, fg []bool, i int, nb []int) bool {
	if !fg[i] {
		return false
	}
	for _, j := range g.FaceNeighbors(i, nb) {
		if !fg[j] {
			return true
		}
	}

	return false
}

func sign(s int8) int8 {
	switch {
	case s > 0:
		return 1
	case s < 0:
		return -1
	}

	return 0
}
