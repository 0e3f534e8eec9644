package evolution

import (
	"context"
	"fmt"
	"time"

	"github.com/aukilabs/go-tooling/pkg/logs"

	"github.com/katalvlaran/lvlset/levelset"
	"github.com/katalvlaran/lvlset/sparse"
	"github.com/katalvlaran/lvlset/term"
)

// Engine evolves every level set that has an equation in eq.
// An Engine is not safe for concurrent use; the level sets it evolves
// must not be modified by anyone else while Update runs.
type Engine struct {
	eq   *term.Equations
	opts Options

	state     State
	iteration int
	dt        float64
	sets      map[int]*sparse.LevelSet
}

// New validates the collaborators and options and returns an idle engine.
func New(eq *term.Equations, opts Options) (*Engine, error) {
	if eq == nil {
		return nil, ErrNilEquations
	}
	if eq.LevelSets() == nil {
		return nil, ErrNilContainer
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	return &Engine{eq: eq, opts: opts}, nil
}

// State returns the current phase.
func (e *Engine) State() State { return e.state }

// Iteration returns the number of iterations completed by the last Update.
func (e *Engine) Iteration() int { return e.iteration }

// Dt returns the time step of the last iteration.
func (e *Engine) Dt() float64 { return e.dt }

// RMSChange returns the RMS change of level set id in the last iteration.
func (e *Engine) RMSChange(id int) float64 {
	if ls, ok := e.sets[id]; ok {
		return ls.RMSChange()
	}

	return 0
}

// Update runs Options.Iterations iterations. It returns ctx.Err() when the
// context is done at the start of an iteration, and the first fatal error
// otherwise. On error the engine stays in the state that failed.
func (e *Engine) Update(ctx context.Context) error {
	if err := e.update(ctx); err != nil {
		instrumentError(err)
		return err
	}

	return nil
}

func (e *Engine) update(ctx context.Context) error {
	e.state, e.iteration = Idle, 0
	if err := e.bind(); err != nil {
		return err
	}

	for it := 0; it < e.opts.Iterations; it++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()

		e.state = InitializingIteration
		if err := e.initialize(); err != nil {
			return err
		}

		e.state = ComputingSpeed
		bufs := e.computeSpeed()

		e.state = ComputingTimeStep
		dt, err := e.computeDt()
		if err != nil {
			return err
		}
		e.dt = dt

		e.state = ApplyingUpdate
		if err := e.apply(bufs); err != nil {
			return err
		}

		if n := e.opts.ReinitializeEvery; n > 0 && (it+1)%n == 0 {
			e.state = Reinitializing
			if err := e.reinitialize(); err != nil {
				return err
			}
		}

		e.iteration = it + 1
		instrumentIteration(start, dt)
		logs.WithTag("iteration", e.iteration).
			WithTag("dt", dt).
			Debug("evolution iteration done")

		if o := e.opts.Observer; o != nil {
			if err := o.Observe(e.report()); err != nil {
				return fmt.Errorf("Observer(iteration=%d): %w", e.iteration, err)
			}
		}
	}

	e.state = Done
	logs.WithTag("iterations", e.iteration).
		WithTag("level_sets", len(e.sets)).
		Info("evolution done")

	return nil
}

// bind validates the equations and resolves the evolved level sets.
func (e *Engine) bind() error {
	if err := e.eq.Bind(); err != nil {
		return err
	}
	c := e.eq.LevelSets()
	e.sets = make(map[int]*sparse.LevelSet, len(e.eq.IDs()))
	for _, id := range e.eq.IDs() {
		ls, err := c.Get(id)
		if err != nil {
			return err
		}
		sls, ok := ls.(*sparse.LevelSet)
		if !ok {
			return fmt.Errorf("level set %d (%T): %w", id, ls, ErrUnsupportedLevelSet)
		}
		e.sets[id] = sls
	}

	return nil
}

// initialize runs the accumulate-then-finalize protocol over the domain
// partition. Without a partition every equation sees every node.
func (e *Engine) initialize() error {
	e.eq.ResetCFL()
	c := e.eq.LevelSets()
	g := c.Geometry()

	if p := c.Domain(); p != nil {
		for _, d := range p.Domains() {
			if len(d.IDs) == 0 {
				return &NodeError{LevelSet: -1, Index: g.MustFlat(d.Region.Start), Err: ErrEmptyIDList}
			}
			eqs := e.equationsFor(d.IDs)
			g.Each(d.Region, func(i int) {
				for _, tc := range eqs {
					tc.Initialize(i)
				}
			})
		}
	} else {
		eqs := e.equationsFor(e.eq.IDs())
		for i := 0; i < g.Len(); i++ {
			for _, tc := range eqs {
				tc.Initialize(i)
			}
		}
	}
	e.eq.Update()

	return nil
}

// equationsFor returns the equations of ids that have one; ids of static
// level sets are skipped.
func (e *Engine) equationsFor(ids []int) []*term.Container {
	out := make([]*term.Container, 0, len(ids))
	for _, id := range ids {
		if tc, err := e.eq.Get(id); err == nil {
			out = append(out, tc)
		}
	}

	return out
}

func (e *Engine) computeDt() (float64, error) {
	if e.opts.UseFixedDt {
		return e.opts.FixedDt, nil
	}

	return ComputeDt(e.opts.Alpha, e.eq.ComputeCFLContribution())
}

func (e *Engine) apply(bufs map[int]sparse.Updates) error {
	for _, id := range e.eq.IDs() {
		ls := e.sets[id]
		tc, _ := e.eq.Get(id)
		if err := ls.Apply(bufs[id], e.dt, hooks{tc}); err != nil {
			return fmt.Errorf("level set %d: %w", id, err)
		}
		if e.opts.Paranoid {
			if err := ls.CheckConsistency(); err != nil {
				return fmt.Errorf("level set %d: %w", id, err)
			}
		}
	}

	return nil
}

func (e *Engine) reinitialize() error {
	for _, id := range e.eq.IDs() {
		if err := e.opts.Reinitializer.Reinitialize(e.sets[id]); err != nil {
			return fmt.Errorf("level set %d: %w", id, err)
		}
	}

	return nil
}

func (e *Engine) report() Report {
	r := Report{
		Iteration: e.iteration,
		Dt:        e.dt,
		RMSChange: make(map[int]float64, len(e.sets)),
		LevelSets: e.sets,
	}
	for id, ls := range e.sets {
		r.RMSChange[id] = ls.RMSChange()
	}

	return r
}

// hooks lets the Shi and Malcolm updaters reach an equation mid-update.
type hooks struct {
	tc *term.Container
}

func (h hooks) Speed(i int) float64 { return h.tc.Evaluate(i) }

func (h hooks) UpdatePixel(i int, oldValue, newValue float64) {
	h.tc.UpdatePixel(i, oldValue, newValue)
}

var _ levelset.LevelSet = (*sparse.LevelSet)(nil)
