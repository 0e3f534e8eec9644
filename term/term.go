package term

import (
	"fmt"
	"sync/atomic"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"

	"github.com/katalvlaran/lvlset/grid"
	"github.com/katalvlaran/lvlset/heaviside"
	"github.com/katalvlaran/lvlset/levelset"
)

// Term is one additive contribution to a level set's speed function.
type Term interface {
	Name() string
	Coefficient() float64
	SetCoefficient(c float64)
	SetInput(img *grid.Image[float64])
	SetCurrentLevelSet(id int)
	SetLevelSetContainer(c *levelset.Container)
	SetHeaviside(h heaviside.Function)

	// Bind resolves and validates the collaborators; call before Initialize.
	Bind() error
	// Initialize accumulates the statistics node i contributes.
	Initialize(i int)
	// Update finalizes the accumulated statistics and resets the accumulators.
	Update()
	// Value returns the unweighted contribution at the node described by d.
	Value(d *levelset.Data) float64
	// Evaluate returns Coefficient()·Value at node i.
	Evaluate(i int) float64
	// UpdatePixel adjusts finalized statistics after node i changed value.
	UpdatePixel(i int, oldValue, newValue float64)
}

// Base holds the state every term shares. Concrete terms embed it.
type Base struct {
	name        string
	coefficient float64
	input       *grid.Image[float64]
	id          int
	container   *levelset.Container
	heaviside   heaviside.Function
	ls          levelset.LevelSet
	needsInput  bool
	warned      atomic.Bool
}

func (b *Base) init(name string, needsInput bool) {
	b.name, b.coefficient, b.needsInput = name, 1, needsInput
}

// Name returns the display name.
func (b *Base) Name() string { return b.name }

// SetName overrides the display name.
func (b *Base) SetName(name string) { b.name = name }

// Coefficient returns the weight of the term.
func (b *Base) Coefficient() float64 { return b.coefficient }

// SetCoefficient sets the weight of the term.
func (b *Base) SetCoefficient(c float64) { b.coefficient = c }

// SetInput sets the image the term reads pixels from.
func (b *Base) SetInput(img *grid.Image[float64]) { b.input = img }

// Input returns the input image, or nil.
func (b *Base) Input() *grid.Image[float64] { return b.input }

// SetCurrentLevelSet selects the level set the term evolves.
func (b *Base) SetCurrentLevelSet(id int) { b.id = id }

// CurrentLevelSet returns the id of the evolved level set.
func (b *Base) CurrentLevelSet() int { return b.id }

// SetLevelSetContainer sets the container holding every level set.
func (b *Base) SetLevelSetContainer(c *levelset.Container) { b.container = c }

// SetHeaviside overrides the container's Heaviside function for this term.
func (b *Base) SetHeaviside(h heaviside.Function) { b.heaviside = h }

// Heaviside returns the term's own Heaviside function, falling back to
// the container's; nil when neither is set.
func (b *Base) Heaviside() heaviside.Function {
	if b.heaviside != nil {
		return b.heaviside
	}
	if b.container != nil {
		return b.container.Heaviside()
	}

	return nil
}

// Bind implements Term.
func (b *Base) Bind() error {
	if b.container == nil {
		return fmt.Errorf("%s.Bind(level_set=%d): %w", b.name, b.id, ErrNilContainer)
	}
	ls, err := b.container.Get(b.id)
	if err != nil {
		return fmt.Errorf("%s.Bind: %w", b.name, err)
	}
	if b.input == nil {
		if b.needsInput {
			return fmt.Errorf("%s.Bind(level_set=%d): %w", b.name, b.id, ErrNilInput)
		}
	} else if !b.input.Geometry().Equal(ls.Geometry()) {
		return fmt.Errorf("%s.Bind(level_set=%d): input: %w", b.name, b.id, levelset.ErrGeometryMismatch)
	}
	b.ls = ls

	return nil
}

// Initialize implements Term; terms without statistics accumulate nothing.
func (b *Base) Initialize(int) {}

// Update implements Term.
func (b *Base) Update() { b.warned.Store(false) }

// UpdatePixel implements Term.
func (b *Base) UpdatePixel(int, float64, float64) {}

// data returns a fresh derivative cache for node i of the bound level set.
func (b *Base) data(i int) *levelset.Data { return levelset.NewData(b.ls, i) }

// heavisideOrWarn returns the Heaviside function, logging a warning the
// first time per iteration it is missing.
func (b *Base) heavisideOrWarn() heaviside.Function {
	h := b.Heaviside()
	if h == nil && b.warned.CompareAndSwap(false, true) {
		logs.Warn(errors.New("heaviside function not set, term contributes zero").
			WithTag("term", b.name).
			WithTag("level_set", b.id))
	}

	return h
}
