// Package heaviside provides step functions used by region-fitting terms
// as a smoothed inside/outside indicator.
//
// Every Function maps ℝ → [0,1] monotonically; EvaluateDerivative is bounded.
// Region terms call Evaluate(-φ) because the interior of a level set is
// where φ < 0.
//
// Variants:
//
//   - Step:            exact 0/1 step, derivative is a unit spike at 0.
//   - AtanRegularized: 1/2 + atan(x/ε)/π, support on all of ℝ.
//   - SinRegularized:  compact support on [-ε, ε].
package heaviside

import (
	"errors"
	"fmt"
	"math"
)

// ErrBadEpsilon indicates a regularization width that is not finite and positive.
var ErrBadEpsilon = errors.New("heaviside: epsilon must be finite and positive")

// Function is a (possibly regularized) Heaviside step.
type Function interface {
	Evaluate(x float64) float64
	EvaluateDerivative(x float64) float64
}

// Step is the exact Heaviside step: 1 for x ≥ 0, 0 otherwise.
type Step struct{}

// Evaluate returns 1 for x ≥ 0 and 0 otherwise.
func (Step) Evaluate(x float64) float64 {
	if x >= 0 {
		return 1
	}

	return 0
}

// EvaluateDerivative returns 1 at x == 0 and 0 elsewhere.
func (Step) EvaluateDerivative(x float64) float64 {
	if x == 0 {
		return 1
	}

	return 0
}

// AtanRegularized is H(x) = 1/2 + atan(x/ε)/π.
type AtanRegularized struct {
	invEps float64
}

// NewAtanRegularized builds an atan-regularized step of width eps.
func NewAtanRegularized(eps float64) (*AtanRegularized, error) {
	if err := validateEpsilon(eps); err != nil {
		return nil, err
	}

	return &AtanRegularized{invEps: 1 / eps}, nil
}

// Evaluate returns 1/2 + atan(x/ε)/π.
func (h *AtanRegularized) Evaluate(x float64) float64 {
	return 0.5 + math.Atan(x*h.invEps)/math.Pi
}

// EvaluateDerivative returns (1/(πε)) / (1 + (x/ε)²).
func (h *AtanRegularized) EvaluateDerivative(x float64) float64 {
	t := x * h.invEps
	return h.invEps / (math.Pi * (1 + t*t))
}

// SinRegularized is the compactly supported step
// H(x) = 1/2·(1 + x/ε + sin(πx/ε)/π) on [-ε, ε], 0 below and 1 above.
type SinRegularized struct {
	eps, invEps float64
}

// NewSinRegularized builds a sin-regularized step of half-width eps.
func NewSinRegularized(eps float64) (*SinRegularized, error) {
	if err := validateEpsilon(eps); err != nil {
		return nil, err
	}

	return &SinRegularized{eps: eps, invEps: 1 / eps}, nil
}

// Evaluate returns the regularized step value.
func (h *SinRegularized) Evaluate(x float64) float64 {
	switch {
	case x >= h.eps:
		return 1
	case x <= -h.eps:
		return 0
	}
	t := x * h.invEps

	return 0.5 * (1 + t + math.Sin(math.Pi*t)/math.Pi)
}

// EvaluateDerivative returns 1/(2ε)·(1 + cos(πx/ε)) inside the support, 0 outside.
func (h *SinRegularized) EvaluateDerivative(x float64) float64 {
	if math.Abs(x) >= h.eps {
		return 0
	}

	return 0.5 * h.invEps * (1 + math.Cos(math.Pi*x*h.invEps))
}

func validateEpsilon(eps float64) error {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps <= 0 {
		return fmt.Errorf("heaviside(eps=%g): %w", eps, ErrBadEpsilon)
	}

	return nil
}
