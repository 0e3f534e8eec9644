package snapshot

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/lvlset/evolution"
	"github.com/katalvlaran/lvlset/grid"
	"github.com/katalvlaran/lvlset/heaviside"
	"github.com/katalvlaran/lvlset/term"
)

// Frame is the state of every evolved level set after one iteration.
type Frame struct {
	Iteration int        `json:"iteration"`
	Dt        float64    `json:"dt"`
	Size      []int      `json:"size"`
	LevelSets []LevelSet `json:"level_sets"`
}

// LevelSet is one level set inside a Frame. Statuses and Values hold one
// entry per grid node in row-major order.
type LevelSet struct {
	ID        int     `json:"id"`
	Kind      string  `json:"kind"`
	RMSChange float64 `json:"rms_change"`
	// Inside and Outside are the Heaviside-weighted input means; zero when
	// the frame was captured without an input image.
	Inside  float64 `json:"inside_mean,omitempty"`
	Outside float64 `json:"outside_mean,omitempty"`

	Statuses []int8    `json:"-"`
	Values   []float64 `json:"-"`
}

// Capture copies the level sets of r into a Frame, in ascending id order.
// When input and h are both set it also records region means.
// Complexity: O(N) per level set.
func Capture(r evolution.Report, input *grid.Image[float64], h heaviside.Function) (*Frame, error) {
	f := &Frame{Iteration: r.Iteration, Dt: r.Dt}

	ids := make([]int, 0, len(r.LevelSets))
	for id := range r.LevelSets {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		ls := r.LevelSets[id]
		if f.Size == nil {
			f.Size = ls.Geometry().Size()
		}
		attrs := ls.Field().Image().Data()
		out := LevelSet{
			ID:        id,
			Kind:      ls.Kind().String(),
			RMSChange: r.RMSChange[id],
			Statuses:  make([]int8, len(attrs)),
			Values:    make([]float64, len(attrs)),
		}
		for i, a := range attrs {
			out.Statuses[i], out.Values[i] = a.Status, a.Value
		}
		if input != nil && h != nil {
			in, ext, err := term.RegionStatistics(input, ls, h)
			if err != nil {
				return nil, fmt.Errorf("Capture(level_set=%d): %w", id, err)
			}
			out.Inside, out.Outside = in, ext
		}
		f.LevelSets = append(f.LevelSets, out)
	}

	return f, nil
}

// LevelSet returns the level set with the given id.
func (f *Frame) LevelSet(id int) (*LevelSet, error) {
	for k := range f.LevelSets {
		if f.LevelSets[k].ID == id {
			return &f.LevelSets[k], nil
		}
	}

	return nil, fmt.Errorf("Frame.LevelSet(%d): %w", id, ErrUnknownLevelSet)
}

// Mask thresholds the recorded values of level set id: 1 where φ ≤ 0.
func (f *Frame) Mask(id int) (*grid.Image[uint8], error) {
	ls, err := f.LevelSet(id)
	if err != nil {
		return nil, err
	}
	g, err := grid.NewGeometry(f.Size...)
	if err != nil {
		return nil, fmt.Errorf("Frame.Mask(%d): %w", id, err)
	}
	m := grid.NewImage[uint8](g)
	for i, v := range ls.Values {
		if v <= 0 {
			m.SetAt(i, 1)
		}
	}

	return m, nil
}

// nodes returns the node count of the frame's grid, or -1 when a size is
// non-positive or the count exceeds maxNodes.
func (f *Frame) nodes() int {
	if len(f.Size) == 0 {
		return 0
	}
	n := 1
	for _, s := range f.Size {
		if s <= 0 || s > maxNodes/n {
			return -1
		}
		n *= s
	}

	return n
}
