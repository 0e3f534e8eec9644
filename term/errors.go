package term

import "errors"

var (
	// ErrNilContainer indicates a term or equation without a level-set container.
	ErrNilContainer = errors.New("term: level-set container not set")
	// ErrNilInput indicates a term that needs an input image but has none.
	ErrNilInput = errors.New("term: input image not set")
	// ErrMissingEquation indicates a level-set id without an equation.
	ErrMissingEquation = errors.New("term: no equation for level set")
)
