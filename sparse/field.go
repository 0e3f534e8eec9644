package sparse

import (
	"fmt"

	"github.com/katalvlaran/lvlset/grid"
)

// Attribute is the per-node record of the backing image.
type Attribute struct {
	Status int8
	Value  float64
}

// Node pairs a flat offset with its attribute.
type Node struct {
	Index int
	Attr  Attribute
}

// Field is the narrow-band store: one Layer per live status and a dense
// backing image. For every node of layer L the backing status is L; every
// other node carries a non-live status.
type Field struct {
	img      *grid.Image[Attribute]
	layers   map[int8]*Layer
	statuses []int8
}

// newField allocates a field over g with the given live statuses and every
// node set to fill.
func newField(g *grid.Geometry, statuses []int8, fill Attribute) *Field {
	f := &Field{
		img:      grid.NewImage[Attribute](g),
		layers:   make(map[int8]*Layer, len(statuses)),
		statuses: statuses,
	}
	f.img.Fill(fill)
	for _, s := range statuses {
		f.layers[s] = newLayer(s)
	}

	return f
}

// Geometry returns the grid of the backing image.
func (f *Field) Geometry() *grid.Geometry { return f.img.Geometry() }

// Image returns the backing image. Writing to it bypasses the layers.
func (f *Field) Image() *grid.Image[Attribute] { return f.img }

// Statuses returns the live statuses in ascending order. Do not modify.
func (f *Field) Statuses() []int8 { return f.statuses }

// GetLayer returns the live layer with the given status, or ErrUnknownLayer.
func (f *Field) GetLayer(status int8) (*Layer, error) {
	l, ok := f.layers[status]
	if !ok {
		return nil, fmt.Errorf("GetLayer(%d): %w", status, ErrUnknownLayer)
	}

	return l, nil
}

// LayerNodes returns the (index, attribute) pairs of a live layer in order.
func (f *Field) LayerNodes(status int8) ([]Node, error) {
	l, err := f.GetLayer(status)
	if err != nil {
		return nil, err
	}
	idx := l.Indices()
	out := make([]Node, len(idx))
	for k, i := range idx {
		out[k] = Node{Index: i, Attr: f.img.At(i)}
	}

	return out, nil
}

// SetPixel writes a to the backing image at i. It does not move i between layers.
func (f *Field) SetPixel(i int, a Attribute) { f.img.SetAt(i, a) }

// Pixel returns the backing attribute at i.
func (f *Field) Pixel(i int) Attribute { return f.img.At(i) }

// layer returns the live layer for status, or nil for a non-live status.
func (f *Field) layer(status int8) *Layer { return f.layers[status] }

// move writes a at i and relocates i from its current layer to the layer
// named by a.Status. Non-live statuses take the node out of the band.
func (f *Field) move(i int, a Attribute) {
	old := f.img.At(i)
	if old.Status != a.Status {
		if l := f.layer(old.Status); l != nil {
			l.Remove(i)
		}
	}
	if l := f.layer(a.Status); l != nil && !l.Contains(i) {
		l.PushBack(i)
	}
	f.img.SetAt(i, a)
}

// relocation is one planned move of a layer node.
type relocation struct {
	index int
	from  Attribute
	to    Attribute
}

// plan visits layer src in order and collects a relocation for every node
// where pred reports one. Nothing is written.
func (f *Field) plan(src int8, pred func(i int, a Attribute) (Attribute, bool)) []relocation {
	var out []relocation
	for _, i := range f.layer(src).Indices() {
		a := f.img.At(i)
		if to, ok := pred(i, a); ok {
			out = append(out, relocation{index: i, from: a, to: to})
		}
	}

	return out
}

// stage writes the planned values while keeping the current statuses, so
// later plans see new values under old labels.
func (f *Field) stage(rs []relocation) {
	for _, r := range rs {
		f.img.SetAt(r.index, Attribute{Status: r.from.Status, Value: r.to.Value})
	}
}

// commit applies planned relocations in order.
func (f *Field) commit(rs []relocation) {
	for _, r := range rs {
		f.move(r.index, r.to)
	}
}

// transfer plans and commits in one step: every node of layer src for
// which pred reports a new attribute is moved. It returns the applied
// relocations.
func (f *Field) transfer(src int8, pred func(i int, a Attribute) (Attribute, bool)) []relocation {
	rs := f.plan(src, pred)
	f.commit(rs)

	return rs
}
