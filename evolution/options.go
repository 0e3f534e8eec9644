package evolution

import (
	"fmt"
	"math"
)

// Options configures an Engine.
//
// Fields:
//   - Iterations        number of outer iterations run by Update (default 10).
//   - Alpha             CFL safety margin in (0, 1) (default 0.9).
//   - UseFixedDt        skip the CFL computation and step by FixedDt.
//   - FixedDt           the pinned time step, finite and positive.
//   - Workers           goroutines used for speed evaluation (default 1).
//   - ReinitializeEvery rebuild Whitaker bands every N iterations; 0 disables.
//   - Reinitializer     how bands are rebuilt (default ThresholdReinitializer).
//   - Observer          called after every iteration; may be nil.
//   - Paranoid          check every band invariant after each update.
type Options struct {
	Iterations        int
	Alpha             float64
	UseFixedDt        bool
	FixedDt           float64
	Workers           int
	ReinitializeEvery int
	Reinitializer     Reinitializer
	Observer          Observer
	Paranoid          bool
}

// DefaultOptions returns the recommended configuration.
func DefaultOptions() Options {
	return Options{
		Iterations:    10,
		Alpha:         0.9,
		Workers:       1,
		Reinitializer: ThresholdReinitializer{},
	}
}

// validate rejects unusable values and fills zero-valued optional fields.
func (o *Options) validate() error {
	if o.Iterations < 0 {
		return fmt.Errorf("Options(iterations=%d): %w", o.Iterations, ErrBadIterations)
	}
	if !o.UseFixedDt && !(o.Alpha > 0 && o.Alpha < 1) {
		return fmt.Errorf("Options(alpha=%g): %w", o.Alpha, ErrAlphaRange)
	}
	if o.UseFixedDt && (!(o.FixedDt > 0) || math.IsInf(o.FixedDt, 1)) {
		return fmt.Errorf("Options(fixed_dt=%g): %w", o.FixedDt, ErrFixedDt)
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.ReinitializeEvery > 0 && o.Reinitializer == nil {
		o.Reinitializer = ThresholdReinitializer{}
	}

	return nil
}
