package instance_test

import (
	"fmt"

	"github.com/hlidacpes/rcpsp/instance"
)

// Example builds a trivial 0->1->2->3 chain and reads back the derived
// invariants: the topological seed order and the critical-path lower
// bound on makespan.
func Example() {
	in, err := instance.New(1,
		[]int{1},
		[]int{0, 3, 5, 0},
		[][]int{{0}, {1}, {1}, {0}},
		[][]int{{1}, {2}, {3}, {}},
	)
	if err != nil {
		panic(err)
	}

	fmt.Println(in.SeedOrder())
	fmt.Println(in.CriticalPathMakespan())
	// Output:
	// [0 1 2 3]
	// 8
}
