package snapshot

import (
	"fmt"
	"io"

	"github.com/aukilabs/go-tooling/pkg/logs"

	"github.com/katalvlaran/lvlset/evolution"
	"github.com/katalvlaran/lvlset/grid"
	"github.com/katalvlaran/lvlset/heaviside"
)

// Recorder is an evolution.Observer that encodes a Frame every Every-th
// iteration. It is not safe for concurrent use.
type Recorder struct {
	w       io.Writer
	input   *grid.Image[float64]
	h       heaviside.Function
	level   int
	every   int
	written int
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithRegionMeans records Heaviside-weighted input means with every frame.
func WithRegionMeans(input *grid.Image[float64], h heaviside.Function) Option {
	return func(r *Recorder) { r.input, r.h = input, h }
}

// WithLevel sets the zstd level. Panics outside [1, 22].
func WithLevel(level int) Option {
	if level < 1 || level > 22 {
		panic(fmt.Sprintf("snapshot: WithLevel(%d): %v", level, ErrBadLevel))
	}
	return func(r *Recorder) { r.level = level }
}

// WithEvery records only iterations that are multiples of n. Panics for n < 1.
func WithEvery(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("snapshot: WithEvery(%d): n must be positive", n))
	}
	return func(r *Recorder) { r.every = n }
}

// NewRecorder returns a Recorder writing to w.
func NewRecorder(w io.Writer, opts ...Option) *Recorder {
	r := &Recorder{w: w, level: DefaultLevel, every: 1}
	for _, o := range opts {
		o(r)
	}

	return r
}

// Observe implements evolution.Observer.
func (r *Recorder) Observe(rep evolution.Report) error {
	if rep.Iteration%r.every != 0 {
		return nil
	}
	f, err := Capture(rep, r.input, r.h)
	if err != nil {
		return err
	}
	if err := Encode(r.w, f, r.level); err != nil {
		return fmt.Errorf("Recorder(iteration=%d): %w", rep.Iteration, err)
	}
	r.written++
	logs.WithTag("iteration", rep.Iteration).
		WithTag("level_sets", len(f.LevelSets)).
		Debug("snapshot recorded")

	return nil
}

// Frames returns the number of frames written so far.
func (r *Recorder) Frames() int { return r.written }

var _ evolution.Observer = (*Recorder)(nil)
