package evolution

import (
	"errors"
	"fmt"
)

var (
	// ErrNilEquations indicates an engine built without equations.
	ErrNilEquations = errors.New("evolution: nil equations")
	// ErrNilContainer indicates equations without a level-set container.
	ErrNilContainer = errors.New("evolution: nil level-set container")
	// ErrUnsupportedLevelSet indicates an evolved level set that is not sparse.
	ErrUnsupportedLevelSet = errors.New("evolution: level set is not a sparse level set")
	// ErrEmptyIDList indicates a partition node with no active level set.
	ErrEmptyIDList = errors.New("evolution: empty active level-set list")
	// ErrAlphaRange indicates a CFL margin outside (0, 1).
	ErrAlphaRange = errors.New("evolution: alpha must lie in (0, 1)")
	// ErrCFLContribution indicates a CFL contribution too small to divide by.
	ErrCFLContribution = errors.New("evolution: CFL contribution must exceed machine epsilon")
	// ErrBadIterations indicates a negative iteration count.
	ErrBadIterations = errors.New("evolution: iterations must be non-negative")
	// ErrFixedDt indicates a pinned time step that is not finite and positive.
	ErrFixedDt = errors.New("evolution: fixed time step must be finite and positive")
)

// NodeError reports a fatal condition at one grid node.
// LevelSet is -1 when no single level set is involved.
type NodeError struct {
	LevelSet int
	Index    int
	Err      error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("evolution: level set %d, node %d: %v", e.LevelSet, e.Index, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *NodeError) Unwrap() error { return e.Err }

// errorType returns a low-cardinality label for metrics.
func errorType(err error) string {
	switch {
	case errors.Is(err, ErrEmptyIDList):
		return "empty_id_list"
	case errors.Is(err, ErrAlphaRange):
		return "alpha_range"
	case errors.Is(err, ErrCFLContribution):
		return "cfl_contribution"
	case errors.Is(err, ErrUnsupportedLevelSet):
		return "unsupported_level_set"
	case errors.Is(err, ErrNilEquations), errors.Is(err, ErrNilContainer):
		return "nil_collaborator"
	}

	return "other"
}
