package evolution

import (
	"fmt"
	"math"
)

// epsilon is float64 machine epsilon.
const epsilon = 0x1p-52

// ComputeDt returns alpha / contribution.
// Returns ErrAlphaRange when alpha ∉ (0, 1) and ErrCFLContribution when
// contribution ≤ machine epsilon (or is NaN); it never falls back to a
// default step.
func ComputeDt(alpha, contribution float64) (float64, error) {
	if !(alpha > 0 && alpha < 1) {
		return 0, fmt.Errorf("ComputeDt(alpha=%g): %w", alpha, ErrAlphaRange)
	}
	if math.IsNaN(contribution) || contribution <= epsilon {
		return 0, fmt.Errorf("ComputeDt(contribution=%g): %w", contribution, ErrCFLContribution)
	}

	return alpha / contribution, nil
}
