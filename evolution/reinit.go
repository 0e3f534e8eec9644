package evolution

import (
	"fmt"

	"github.com/katalvlaran/lvlset/sparse"
)

// Reinitializer rebuilds the band of a level set to correct drift
// accumulated by repeated updates.
type Reinitializer interface {
	Reinitialize(ls *sparse.LevelSet) error
}

// ThresholdReinitializer thresholds φ at zero (φ ≤ 0 is foreground) and
// rebuilds the band from the resulting mask, so every layer k again holds
// the value k. It only applies to Whitaker level sets; others are left
// untouched.
type ThresholdReinitializer struct{}

// Reinitialize implements Reinitializer.
func (ThresholdReinitializer) Reinitialize(ls *sparse.LevelSet) error {
	if ls.Kind() != sparse.Whitaker {
		return nil
	}
	fresh, err := sparse.FromBinary(sparse.Whitaker, ls.Mask())
	if err != nil {
		return fmt.Errorf("ThresholdReinitializer: %w", err)
	}

	return ls.Reset(fresh)
}

// Report describes one finished iteration.
type Report struct {
	Iteration int
	Dt        float64
	RMSChange map[int]float64
	LevelSets map[int]*sparse.LevelSet
}

// Observer is called after every iteration. A non-nil error aborts the
// evolution and is returned from Engine.Update.
type Observer interface {
	Observe(r Report) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(r Report) error

// Observe implements Observer.
func (f ObserverFunc) Observe(r Report) error { return f(r) }
