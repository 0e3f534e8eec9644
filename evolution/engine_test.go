package evolution_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlset/domain"
	"github.com/katalvlaran/lvlset/evolution"
	"github.com/katalvlaran/lvlset/grid"
	"github.com/katalvlaran/lvlset/heaviside"
	"github.com/katalvlaran/lvlset/levelset"
	"github.com/katalvlaran/lvlset/sparse"
	"github.com/katalvlaran/lvlset/term"
)

func mustGeometry(t *testing.T, size ...int) *grid.Geometry {
	t.Helper()
	g, err := grid.NewGeometry(size...)
	require.NoError(t, err)

	return g
}

func square(g *grid.Geometry, x0, y0, size int) *grid.Image[uint8] {
	img := grid.NewImage[uint8](g)
	g.Each(grid.Region{Start: grid.Index{x0, y0}, Size: []int{size, size}}, func(i int) { img.SetAt(i, 1) })

	return img
}

func count(mask *grid.Image[uint8]) int {
	n := 0
	for _, v := range mask.Data() {
		if v != 0 {
			n++
		}
	}

	return n
}

// chanVese assembles the two-object Chan–Vese problem on a 10×10 image:
// two bright squares of different intensity on a dark background, two
// Whitaker level sets seeded near them, and a partition whose two halves
// overlap in rows 4 and 5.
type chanVese struct {
	c        *levelset.Container
	eq       *term.Equations
	internal map[int]*term.ChanVeseInternal
	sets     map[int]*sparse.LevelSet
}

func newChanVese(t *testing.T) *chanVese {
	t.Helper()
	g := mustGeometry(t, 10, 10)
	input := grid.NewImage[float64](g)
	g.Each(grid.Region{Start: grid.Index{1, 1}, Size: []int{4, 4}}, func(i int) { input.SetAt(i, 100) })
	g.Each(grid.Region{Start: grid.Index{6, 6}, Size: []int{3, 3}}, func(i int) { input.SetAt(i, 200) })

	h, err := heaviside.NewAtanRegularized(1)
	require.NoError(t, err)
	c := levelset.NewContainer(g)
	c.SetHeaviside(h)

	cv := &chanVese{
		c:        c,
		eq:       term.NewEquations(c),
		internal: map[int]*term.ChanVeseInternal{},
		sets:     map[int]*sparse.LevelSet{},
	}
	seeds := map[int][2]int{0: {2, 2}, 1: {6, 6}}
	for id := 0; id < 2; id++ {
		ls, err := sparse.FromBinary(sparse.Whitaker, square(g, seeds[id][0], seeds[id][1], 2))
		require.NoError(t, err)
		require.NoError(t, c.Add(id, ls))
		cv.sets[id] = ls

		tc := term.NewContainer(id, c, input)
		in := term.NewChanVeseInternal()
		tc.AddTerm(in)
		tc.AddTerm(term.NewChanVeseExternal())
		curv := term.NewCurvature()
		curv.SetCoefficient(0.5)
		tc.AddTerm(curv)
		require.NoError(t, cv.eq.Add(tc))
		cv.internal[id] = in
	}

	ids, err := domain.ListImageFromRegions(g, map[int]grid.Region{
		0: {Start: grid.Index{0, 0}, Size: []int{10, 6}},
		1: {Start: grid.Index{0, 4}, Size: []int{10, 6}},
	})
	require.NoError(t, err)
	p, err := domain.Build(ids)
	require.NoError(t, err)
	require.NoError(t, c.SetDomain(p))

	return cv
}

// TestEngine_TwoLevelSetChanVese runs two iterations of the two-object
// problem and checks the region means stay within the pixel range.
func TestEngine_TwoLevelSetChanVese(t *testing.T) {
	cv := newChanVese(t)
	opts := evolution.DefaultOptions()
	opts.Iterations = 2
	opts.Paranoid = true

	e, err := evolution.New(cv.eq, opts)
	require.NoError(t, err)
	assert.Equal(t, evolution.Idle, e.State())

	require.NoError(t, e.Update(context.Background()))
	assert.Equal(t, evolution.Done, e.State())
	assert.Equal(t, 2, e.Iteration())
	assert.Greater(t, e.Dt(), 0.0)

	for id, in := range cv.internal {
		m := in.Mean()
		assert.False(t, math.IsNaN(m) || math.IsInf(m, 0), "level set %d", id)
		assert.GreaterOrEqual(t, m, 0.0, "level set %d", id)
		assert.LessOrEqual(t, m, 200.0, "level set %d", id)
		assert.NoError(t, cv.sets[id].CheckConsistency())
		assert.GreaterOrEqual(t, e.RMSChange(id), 0.0)
	}
}

// TestEngine_ParallelSpeedIsDeterministic compares one and four workers.
func TestEngine_ParallelSpeedIsDeterministic(t *testing.T) {
	run := func(workers int) (*chanVese, *evolution.Engine) {
		cv := newChanVese(t)
		opts := evolution.DefaultOptions()
		opts.Iterations = 3
		opts.Workers = workers
		e, err := evolution.New(cv.eq, opts)
		require.NoError(t, err)
		require.NoError(t, e.Update(context.Background()))

		return cv, e
	}
	serial, es := run(1)
	parallel, ep := run(4)

	assert.Equal(t, es.Dt(), ep.Dt())
	for id := range serial.sets {
		assert.Equal(t,
			serial.sets[id].Field().Image().Data(),
			parallel.sets[id].Field().Image().Data(),
			"level set %d", id)
		assert.Equal(t, serial.internal[id].Mean(), parallel.internal[id].Mean())
	}
}

// TestEngine_EmptyIDListIsFatal uses a partition that leaves the right
// half of the grid without any level set.
func TestEngine_EmptyIDListIsFatal(t *testing.T) {
	cv := newChanVese(t)
	g := cv.c.Geometry()
	ids, err := domain.ListImageFromRegions(g, map[int]grid.Region{
		0: {Start: grid.Index{0, 0}, Size: []int{5, 10}},
	})
	require.NoError(t, err)
	p, err := domain.Build(ids)
	require.NoError(t, err)
	require.NoError(t, cv.c.SetDomain(p))

	e, err := evolution.New(cv.eq, evolution.DefaultOptions())
	require.NoError(t, err)
	err = e.Update(context.Background())
	require.ErrorIs(t, err, evolution.ErrEmptyIDList)

	var ne *evolution.NodeError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, -1, ne.LevelSet)
	assert.Equal(t, g.MustFlat(grid.Index{5, 0}), ne.Index)
	assert.Equal(t, evolution.InitializingIteration, e.State())
	assert.Equal(t, 0, e.Iteration())
}

// TestEngine_Cancelled stops before the first iteration.
func TestEngine_Cancelled(t *testing.T) {
	cv := newChanVese(t)
	e, err := evolution.New(cv.eq, evolution.DefaultOptions())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, e.Update(ctx), context.Canceled)
	assert.Equal(t, 0, e.Iteration())
}

// TestEngine_Observer sees every iteration and can abort the run.
func TestEngine_Observer(t *testing.T) {
	cv := newChanVese(t)
	var seen []int
	stop := errors.New("stop")
	opts := evolution.DefaultOptions()
	opts.Iterations = 5
	opts.Observer = evolution.ObserverFunc(func(r evolution.Report) error {
		seen = append(seen, r.Iteration)
		assert.Len(t, r.LevelSets, 2)
		assert.Greater(t, r.Dt, 0.0)
		if r.Iteration == 3 {
			return stop
		}
		return nil
	})
	e, err := evolution.New(cv.eq, opts)
	require.NoError(t, err)

	assert.ErrorIs(t, e.Update(context.Background()), stop)
	assert.Equal(t, []int{1, 2, 3}, seen)
}

// propagation returns an engine that moves a single level set of kind k
// with constant speed s.
func propagation(t *testing.T, k sparse.Kind, s float64, opts evolution.Options) (*evolution.Engine, *sparse.LevelSet) {
	t.Helper()
	g := mustGeometry(t, 16, 16)
	ls, err := sparse.FromBinary(k, square(g, 6, 6, 4))
	require.NoError(t, err)
	c := levelset.NewContainer(g)
	require.NoError(t, c.Add(0, ls))

	speed := grid.NewImage[float64](g)
	speed.Fill(s)
	p := term.NewPropagation()
	p.SetSpeedImage(speed)
	tc := term.NewContainer(0, c, nil)
	tc.AddTerm(p)
	eq := term.NewEquations(c)
	require.NoError(t, eq.Add(tc))

	opts.Paranoid = true
	e, err := evolution.New(eq, opts)
	require.NoError(t, err)

	return e, ls
}

// TestEngine_AllKindsExpand checks a negative speed grows every representation.
func TestEngine_AllKindsExpand(t *testing.T) {
	for _, k := range []sparse.Kind{sparse.Whitaker, sparse.Shi, sparse.Malcolm} {
		t.Run(k.String(), func(t *testing.T) {
			opts := evolution.DefaultOptions()
			opts.Iterations = 3
			e, ls := propagation(t, k, -1, opts)
			before := count(ls.Mask())

			require.NoError(t, e.Update(context.Background()))
			assert.Greater(t, count(ls.Mask()), before)
			assert.Greater(t, e.Dt(), 0.0)
			assert.LessOrEqual(t, e.Dt(), 0.9)
		})
	}
}

// TestEngine_ZeroSpeed fails the CFL step unless dt is pinned.
func TestEngine_ZeroSpeed(t *testing.T) {
	e, _ := propagation(t, sparse.Whitaker, 0, evolution.DefaultOptions())
	assert.ErrorIs(t, e.Update(context.Background()), evolution.ErrCFLContribution)
	assert.Equal(t, evolution.ComputingTimeStep, e.State())

	opts := evolution.DefaultOptions()
	opts.UseFixedDt = true
	opts.FixedDt = 0.25
	e, ls := propagation(t, sparse.Whitaker, 0, opts)
	before := ls.Mask()
	require.NoError(t, e.Update(context.Background()))
	assert.Equal(t, 0.25, e.Dt())
	assert.Equal(t, before.Data(), ls.Mask().Data())
}

// TestEngine_Reinitialize rebuilds the Whitaker band every iteration.
func TestEngine_Reinitialize(t *testing.T) {
	opts := evolution.DefaultOptions()
	opts.Iterations = 2
	opts.ReinitializeEvery = 1
	e, ls := propagation(t, sparse.Whitaker, -1, opts)
	require.NoError(t, e.Update(context.Background()))

	for _, s := range ls.Field().Statuses() {
		nodes, err := ls.Field().LayerNodes(s)
		require.NoError(t, err)
		for _, n := range nodes {
			assert.Equal(t, float64(s), n.Attr.Value)
		}
	}
}

// TestEngine_DenseIsRejected refuses to evolve a dense level set.
func TestEngine_DenseIsRejected(t *testing.T) {
	g := mustGeometry(t, 4, 4)
	c := levelset.NewContainer(g)
	require.NoError(t, c.Add(0, levelset.NewDense(grid.NewImage[float64](g))))
	tc := term.NewContainer(0, c, nil)
	tc.AddTerm(term.NewCurvature())
	eq := term.NewEquations(c)
	require.NoError(t, eq.Add(tc))

	e, err := evolution.New(eq, evolution.DefaultOptions())
	require.NoError(t, err)
	assert.ErrorIs(t, e.Update(context.Background()), evolution.ErrUnsupportedLevelSet)
}

// TestNew_Errors covers option and collaborator validation.
func TestNew_Errors(t *testing.T) {
	_, err := evolution.New(nil, evolution.DefaultOptions())
	assert.ErrorIs(t, err, evolution.ErrNilEquations)
	_, err = evolution.New(term.NewEquations(nil), evolution.DefaultOptions())
	assert.ErrorIs(t, err, evolution.ErrNilContainer)

	eq := term.NewEquations(levelset.NewContainer(mustGeometry(t, 2, 2)))
	opts := evolution.DefaultOptions()
	opts.Alpha = 1
	_, err = evolution.New(eq, opts)
	assert.ErrorIs(t, err, evolution.ErrAlphaRange)
	opts = evolution.DefaultOptions()
	opts.Iterations = -1
	_, err = evolution.New(eq, opts)
	assert.ErrorIs(t, err, evolution.ErrBadIterations)

	for _, dt := range []float64{0, -0.25, math.NaN(), math.Inf(1)} {
		opts = evolution.DefaultOptions()
		opts.UseFixedDt = true
		opts.FixedDt = dt
		_, err = evolution.New(eq, opts)
		assert.ErrorIs(t, err, evolution.ErrFixedDt, "fixed_dt=%g", dt)
	}
	opts.FixedDt = 0.5
	_, err = evolution.New(eq, opts)
	assert.NoError(t, err)
}

// TestComputeDt covers the CFL time-step rule.
func TestComputeDt(t *testing.T) {
	_, err := evolution.ComputeDt(0.9, 0)
	assert.ErrorIs(t, err, evolution.ErrCFLContribution)
	_, err = evolution.ComputeDt(0.9, math.NaN())
	assert.ErrorIs(t, err, evolution.ErrCFLContribution)

	dt, err := evolution.ComputeDt(0.9, 10)
	require.NoError(t, err)
	assert.InDelta(t, 0.09, dt, 1e-15)

	for _, alpha := range []float64{0, 1, -0.5, 1.5, math.NaN()} {
		_, err := evolution.ComputeDt(alpha, 10)
		assert.ErrorIs(t, err, evolution.ErrAlphaRange, "alpha=%g", alpha)
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "computing-speed", evolution.ComputingSpeed.String())
	assert.Equal(t, "done", evolution.Done.String())
	assert.Equal(t, "State(42)", evolution.State(42).String())
}
