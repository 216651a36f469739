package search_test

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/hlidacpes/rcpsp/instance"
	"github.com/hlidacpes/rcpsp/search"
	"github.com/hlidacpes/rcpsp/tabumem"
)

// Example runs the driver over the S2 parallel-capacity-conflict
// instance: two activities could run side by side, but a shared
// resource of capacity 1 forces them serial.
func Example() {
	in, err := instance.New(1,
		[]int{1},
		[]int{0, 4, 3, 0},
		[][]int{{0}, {1}, {1}, {0}},
		[][]int{{1, 2}, {3}, {3}, {}},
	)
	if err != nil {
		panic(err)
	}

	cfg := search.Config{
		SwapRange:          3,
		ShiftRange:         3,
		MaxIterations:      20,
		MaxItersSinceBest:  10,
		SimpleTabuListSize: 8,
		Workers:            2,
	}
	tabu := tabumem.NewSimple(in.NumActivities(), cfg.SimpleTabuListSize, rand.New(rand.NewSource(1)))
	driver := search.NewDriver(in, tabu, cfg, rand.New(rand.NewSource(2)))

	res := driver.Run(context.Background(), in.SeedOrder())
	fmt.Println(res.BestMakespan)
	// Output: 7
}
