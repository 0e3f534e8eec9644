package evolution_test

import (
	"context"
	"fmt"

	"github.com/aukilabs/go-tooling/pkg/logs"

	"github.com/katalvlaran/lvlset/evolution"
	"github.com/katalvlaran/lvlset/grid"
	"github.com/katalvlaran/lvlset/levelset"
	"github.com/katalvlaran/lvlset/sparse"
	"github.com/katalvlaran/lvlset/term"
)

// ExampleComputeDt shows the CFL rule dt = alpha / contribution and its
// refusal to divide by a vanishing contribution.
func ExampleComputeDt() {
	dt, _ := evolution.ComputeDt(0.9, 10)
	fmt.Printf("dt = %.2f\n", dt)

	_, err := evolution.ComputeDt(0.9, 0)
	fmt.Println(err)

	// Output:
	// dt = 0.09
	// ComputeDt(contribution=0): evolution: CFL contribution must exceed machine epsilon
}

// ExampleEngine_Update grows a Malcolm square with a constant inward
// speed for two iterations. Engine progress logs are discarded so only
// the printed result remains.
func ExampleEngine_Update() {
	logs.SetLogger(func(logs.Entry) {})

	g, _ := grid.NewGeometry(11, 11)
	mask := grid.NewImage[uint8](g)
	g.Each(grid.Region{Start: grid.Index{4, 4}, Size: []int{3, 3}}, func(i int) { mask.SetAt(i, 1) })
	ls, _ := sparse.FromBinary(sparse.Malcolm, mask)

	c := levelset.NewContainer(g)
	_ = c.Add(0, ls)
	speed := grid.NewImage[float64](g)
	speed.Fill(-1)
	p := term.NewPropagation()
	p.SetSpeedImage(speed)
	tc := term.NewContainer(0, c, nil)
	tc.AddTerm(p)
	eq := term.NewEquations(c)
	_ = eq.Add(tc)

	opts := evolution.DefaultOptions()
	opts.Iterations = 2
	e, _ := evolution.New(eq, opts)
	if err := e.Update(context.Background()); err != nil {
		fmt.Println(err)
		return
	}

	n := 0
	for _, v := range ls.Mask().Data() {
		n += int(v)
	}
	fmt.Println(e.State(), e.Iteration(), n > 9)

	// Output:
	// done 2 true
}
