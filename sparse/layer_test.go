package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlset/sparse"
)

// TestLayer_QueueOps exercises the push/pop idioms updaters rely on.
func TestLayer_QueueOps(t *testing.T) {
	ls, err := sparse.New(sparse.Whitaker, mustGeometry(t, 4, 4))
	require.NoError(t, err)
	l, err := ls.Field().GetLayer(0)
	require.NoError(t, err)

	l.PushBack(3)
	l.PushBack(5)
	l.PushFront(1)
	assert.Equal(t, []int{1, 3, 5}, l.Indices())

	l.PushBack(1) // already present: moves to the back
	assert.Equal(t, []int{3, 5, 1}, l.Indices())
	assert.Equal(t, 3, l.Len())

	i, ok := l.PopFront()
	require.True(t, ok)
	assert.Equal(t, 3, i)
	i, ok = l.PopBack()
	require.True(t, ok)
	assert.Equal(t, 1, i)

	assert.True(t, l.Remove(5))
	assert.False(t, l.Remove(5))
	assert.False(t, l.Contains(5))
	_, ok = l.PopFront()
	assert.False(t, ok)
}

// TestField_GetLayer verifies only live statuses resolve.
func TestField_GetLayer(t *testing.T) {
	cases := []struct {
		kind sparse.Kind
		live []int8
		dead []int8
	}{
		{sparse.Whitaker, []int8{-2, -1, 0, 1, 2}, []int8{-3, 3}},
		{sparse.Shi, []int8{-1, 1}, []int8{-3, 0, 3}},
		{sparse.Malcolm, []int8{0}, []int8{-1, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			ls, err := sparse.New(tc.kind, mustGeometry(t, 3, 3))
			require.NoError(t, err)
			for _, s := range tc.live {
				_, err := ls.Field().GetLayer(s)
				assert.NoError(t, err, "status %d", s)
			}
			for _, s := range tc.dead {
				_, err := ls.Field().GetLayer(s)
				assert.ErrorIs(t, err, sparse.ErrUnknownLayer, "status %d", s)
			}
			assert.NoError(t, ls.CheckConsistency())
		})
	}

	_, err := sparse.New(sparse.Kind(7), mustGeometry(t, 3, 3))
	assert.ErrorIs(t, err, sparse.ErrBadKind)
	assert.Equal(t, "Kind(7)", sparse.Kind(7).String())
}

// TestField_SetPixelDoesNotMove verifies SetPixel only writes the backing image.
func TestField_SetPixelDoesNotMove(t *testing.T) {
	ls, err := sparse.FromBinary(sparse.Malcolm, block(t, 6, 6, 1, 1, 3))
	require.NoError(t, err)
	f := ls.Field()
	l0, err := f.GetLayer(0)
	require.NoError(t, err)
	before := l0.Len()

	f.SetPixel(0, sparse.Attribute{Status: 0, Value: 0})
	assert.Equal(t, before, l0.Len())
	assert.Equal(t, sparse.Attribute{}, f.Pixel(0))
	assert.ErrorIs(t, ls.CheckConsistency(), sparse.ErrInconsistent)
}

// TestCheckConsistency_LayerSkipped flags face neighbors whose statuses
// differ by more than one layer.
func TestCheckConsistency_LayerSkipped(t *testing.T) {
	ls, err := sparse.FromBinary(sparse.Malcolm, block(t, 6, 6, 1, 1, 3))
	require.NoError(t, err)
	require.NoError(t, ls.CheckConsistency())

	// (5,5) is background far from the object; -1 now touches +1
	ls.Field().SetPixel(35, sparse.Attribute{Status: -1, Value: -1})
	err = ls.CheckConsistency()
	assert.ErrorIs(t, err, sparse.ErrInconsistent)
	assert.ErrorContains(t, err, "layer skipped")
}
