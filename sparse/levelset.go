package sparse

import (
	"fmt"

	"github.com/katalvlaran/lvlset/grid"
)

// Update is the speed computed for one band node.
type Update struct {
	Index int
	Value float64
}

// Updates is an update buffer in Band order.
type Updates []Update

// LevelSet is a sparse level set: a Field plus the representation rules
// that maintain it. It satisfies levelset.LevelSet.
type LevelSet struct {
	kind   Kind
	strat  strategy
	field  *Field
	phased bool
	rms    float64
}

// New returns a level set of kind k over g with an empty band: every node
// is exterior background.
func New(k Kind, g *grid.Geometry) (*LevelSet, error) {
	s, err := strategyFor(k)
	if err != nil {
		return nil, err
	}
	_, out := s.far()

	return &LevelSet{
		kind:  k,
		strat: s,
		field: newField(g, s.statuses(), Attribute{Status: out, Value: float64(out)}),
	}, nil
}

// Option configures FromBinary.
type Option func(*binaryConfig)

type binaryConfig struct {
	foreground uint8
	exact      bool
}

// WithForeground makes FromBinary treat exactly the pixels equal to v as
// foreground. By default every non-zero pixel is foreground.
func WithForeground(v uint8) Option {
	return func(c *binaryConfig) {
		c.foreground = v
		c.exact = true
	}
}

// FromBinary builds a level set of kind k whose interior is the foreground
// of mask.
//
//   - Whitaker: foreground pixels with a background face neighbor form
//     layer 0 (value 0); layers ±1 and ±2 are grown outward from it with
//     integer values; everything else is far (±3).
//   - Shi: the same foreground boundary is layer −1; background pixels
//     touching it are layer +1; far ±3 elsewhere.
//   - Malcolm: the foreground boundary is layer 0; other foreground −1,
//     background +1.
//
// Complexity: O(N·D).
func FromBinary(k Kind, mask *grid.Image[uint8], opts ...Option) (*LevelSet, error) {
	if mask == nil {
		return nil, ErrNilMask
	}
	ls, err := New(k, mask.Geometry())
	if err != nil {
		return nil, err
	}
	var cfg binaryConfig
	for _, o := range opts {
		o(&cfg)
	}
	fg := make([]bool, mask.Geometry().Len())
	for i, v := range mask.Data() {
		if cfg.exact {
			fg[i] = v == cfg.foreground
		} else {
			fg[i] = v != 0
		}
	}
	ls.strat.build(ls.field, fg)

	return ls, nil
}

// Kind returns the representation.
func (ls *LevelSet) Kind() Kind { return ls.kind }

// Field returns the underlying narrow-band store.
func (ls *LevelSet) Field() *Field { return ls.field }

// Geometry implements levelset.LevelSet.
func (ls *LevelSet) Geometry() *grid.Geometry { return ls.field.Geometry() }

// Evaluate implements levelset.LevelSet: the backing value at i.
func (ls *LevelSet) Evaluate(i int) float64 { return ls.field.img.At(i).Value }

// IsInside implements levelset.LevelSet.
func (ls *LevelSet) IsInside(i int) bool { return ls.field.img.At(i).Value < 0 }

// Status returns the backing status at i.
func (ls *LevelSet) Status(i int) int8 { return ls.field.img.At(i).Status }

// SetPhased switches the Malcolm updater between phased (contraction
// then dilation) and un-phased mode. Other kinds ignore it.
func (ls *LevelSet) SetPhased(on bool) { ls.phased = on }

// Phased reports whether phased mode is on.
func (ls *LevelSet) Phased() bool { return ls.phased }

// Band returns the nodes whose speed the engine must evaluate, in the
// order Apply expects them: layer 0 for Whitaker and Malcolm, layer −1
// followed by layer +1 for Shi.
func (ls *LevelSet) Band() []int { return ls.strat.band(ls.field) }

// Apply advances the level set by one step of size dt. ups must hold one
// entry per Band node, in Band order. h may be nil.
// Returns ErrBufferMismatch when ups does not match the band.
func (ls *LevelSet) Apply(ups Updates, dt float64, h Hooks) error {
	band := ls.Band()
	if len(band) != len(ups) {
		return fmt.Errorf("Apply(%s, len=%d, band=%d): %w", ls.kind, len(ups), len(band), ErrBufferMismatch)
	}
	for k, i := range band {
		if ups[k].Index != i {
			return fmt.Errorf("Apply(%s, pos=%d, index=%d, want=%d): %w", ls.kind, k, ups[k].Index, i, ErrBufferMismatch)
		}
	}
	if h == nil {
		h = noHooks{}
	}
	ls.rms = ls.strat.update(ls, ups, dt, h)

	return nil
}

// RMSChange returns the root-mean-square change of the last Apply.
// For Whitaker it is the RMS of the zero-layer value change; for Shi and
// Malcolm it is the RMS value change over the band, where a sign flip
// counts as its value jump.
func (ls *LevelSet) RMSChange() float64 { return ls.rms }

// Mask returns the binary image with 1 where Value ≤ 0. For every Kind
// Mask(FromBinary(mask)) reproduces a 0/1 mask.
func (ls *LevelSet) Mask() *grid.Image[uint8] {
	out := grid.NewImage[uint8](ls.Geometry())
	for i, a := range ls.field.img.Data() {
		if a.Value <= 0 {
			out.SetAt(i, 1)
		}
	}

	return out
}

// Reset replaces the state of ls with that of src. Both must share kind
// and geometry; src must not be used afterwards.
func (ls *LevelSet) Reset(src *LevelSet) error {
	if src.kind != ls.kind {
		return fmt.Errorf("Reset(%s <- %s): %w", ls.kind, src.kind, ErrBadKind)
	}
	if !src.Geometry().Equal(ls.Geometry()) {
		return fmt.Errorf("Reset(%s): %w", ls.kind, ErrGeometryMismatch)
	}
	ls.field = src.field

	return nil
}
