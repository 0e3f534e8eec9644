package snapshot_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvlset/evolution"
	"github.com/katalvlaran/lvlset/grid"
	"github.com/katalvlaran/lvlset/heaviside"
	"github.com/katalvlaran/lvlset/levelset"
	"github.com/katalvlaran/lvlset/snapshot"
	"github.com/katalvlaran/lvlset/sparse"
	"github.com/katalvlaran/lvlset/term"
)

// run evolves one Whitaker square on a 12×12 image for n iterations with a
// Chan–Vese equation, recording through rec.
func run(t *testing.T, n int, opts ...snapshot.Option) (*bytes.Buffer, *snapshot.Recorder, *sparse.LevelSet) {
	t.Helper()
	g, err := grid.NewGeometry(12, 12)
	require.NoError(t, err)

	input := grid.NewImage[float64](g)
	mask := grid.NewImage[uint8](g)
	g.Each(grid.Region{Start: grid.Index{3, 3}, Size: []int{6, 6}}, func(i int) { input.SetAt(i, 10) })
	g.Each(grid.Region{Start: grid.Index{4, 4}, Size: []int{3, 3}}, func(i int) { mask.SetAt(i, 1) })

	h, err := heaviside.NewAtanRegularized(1)
	require.NoError(t, err)
	ls, err := sparse.FromBinary(sparse.Whitaker, mask)
	require.NoError(t, err)
	c := levelset.NewContainer(g)
	c.SetHeaviside(h)
	require.NoError(t, c.Add(0, ls))

	tc := term.NewContainer(0, c, input)
	tc.AddTerm(term.NewChanVeseInternal())
	tc.AddTerm(term.NewChanVeseExternal())
	eq := term.NewEquations(c)
	require.NoError(t, eq.Add(tc))

	var buf bytes.Buffer
	rec := snapshot.NewRecorder(&buf, append([]snapshot.Option{snapshot.WithRegionMeans(input, h)}, opts...)...)
	o := evolution.DefaultOptions()
	o.Iterations = n
	o.Observer = rec
	e, err := evolution.New(eq, o)
	require.NoError(t, err)
	require.NoError(t, e.Update(context.Background()))

	return &buf, rec, ls
}

// TestRecorder_RoundTrip decodes every recorded frame and compares the last
// one with the live level set.
func TestRecorder_RoundTrip(t *testing.T) {
	buf, rec, ls := run(t, 3)
	assert.Equal(t, 3, rec.Frames())

	frames, err := snapshot.ReadAll(buf)
	require.NoError(t, err)
	require.Len(t, frames, 3)
	for k, f := range frames {
		assert.Equal(t, k+1, f.Iteration)
		assert.Equal(t, []int{12, 12}, f.Size)
		assert.Greater(t, f.Dt, 0.0)
	}

	last, err := frames[2].LevelSet(0)
	require.NoError(t, err)
	assert.Equal(t, "whitaker", last.Kind)
	assert.Equal(t, ls.RMSChange(), last.RMSChange)
	assert.Greater(t, last.Inside, last.Outside, "the bright square is inside")

	attrs := ls.Field().Image().Data()
	require.Len(t, last.Values, len(attrs))
	for i, a := range attrs {
		assert.Equal(t, a.Status, last.Statuses[i])
		assert.Equal(t, a.Value, last.Values[i])
	}

	m, err := frames[2].Mask(0)
	require.NoError(t, err)
	assert.Equal(t, ls.Mask().Data(), m.Data())

	_, err = frames[2].LevelSet(7)
	assert.ErrorIs(t, err, snapshot.ErrUnknownLevelSet)
}

// TestRecorder_Every keeps every second iteration only.
func TestRecorder_Every(t *testing.T) {
	buf, rec, _ := run(t, 5, snapshot.WithEvery(2), snapshot.WithLevel(1))
	assert.Equal(t, 2, rec.Frames())

	frames, err := snapshot.ReadAll(buf)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, 2, frames[0].Iteration)
	assert.Equal(t, 4, frames[1].Iteration)
}

// TestDecode_Corrupt truncates a valid stream at several offsets.
func TestDecode_Corrupt(t *testing.T) {
	buf, _, _ := run(t, 1)
	data := buf.Bytes()

	_, err := snapshot.Decode(bytes.NewReader(nil))
	assert.ErrorIs(t, err, io.EOF)

	for _, cut := range []int{3, 8, 20, len(data) - 1} {
		_, err := snapshot.Decode(bytes.NewReader(data[:cut]))
		assert.ErrorIs(t, err, snapshot.ErrCorrupt, "cut=%d", cut)
	}

	f, err := snapshot.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	ls, err := f.LevelSet(0)
	require.NoError(t, err)
	// every Whitaker node holds a value in [-3, 3]
	assert.LessOrEqual(t, floats.Max(ls.Values), 3.0)
	assert.GreaterOrEqual(t, floats.Min(ls.Values), -3.0)
}

// TestDecode_OversizedLength rejects length prefixes larger than the header
// cap or the compressed bound of the declared image, without allocating them.
func TestDecode_OversizedLength(t *testing.T) {
	buf, _, _ := run(t, 1)

	data := bytes.Clone(buf.Bytes())
	binary.LittleEndian.PutUint64(data[:8], 1<<40)
	_, err := snapshot.Decode(bytes.NewReader(data))
	assert.ErrorIs(t, err, snapshot.ErrCorrupt, "header length")

	data = bytes.Clone(buf.Bytes())
	header := int(binary.LittleEndian.Uint64(data[:8]))
	binary.LittleEndian.PutUint64(data[8+header:], 1<<32)
	_, err = snapshot.Decode(bytes.NewReader(data))
	assert.ErrorIs(t, err, snapshot.ErrCorrupt, "image length")
}

// TestDecode_BadSize rejects headers declaring empty or oversized grids.
func TestDecode_BadSize(t *testing.T) {
	for _, size := range [][]int{{0, 4}, {-3, 4}, {1 << 20, 1 << 20}, {1 << 62, 1 << 62}} {
		var buf bytes.Buffer
		f := &snapshot.Frame{Size: size}
		require.NoError(t, snapshot.Encode(&buf, f, snapshot.DefaultLevel))
		_, err := snapshot.Decode(&buf)
		assert.ErrorIs(t, err, snapshot.ErrCorrupt, "size=%v", size)
	}
}

// TestEncode_BadLevel rejects levels outside the zstd range.
func TestEncode_BadLevel(t *testing.T) {
	err := snapshot.Encode(io.Discard, &snapshot.Frame{}, 0)
	assert.ErrorIs(t, err, snapshot.ErrBadLevel)
	assert.Panics(t, func() { snapshot.WithLevel(23) })
	assert.Panics(t, func() { snapshot.WithEvery(0) })
}
