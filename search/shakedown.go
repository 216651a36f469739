package search

import (
	"sort"

	"github.com/hlidacpes/rcpsp/evaluator"
	"github.com/hlidacpes/rcpsp/instance"
)

// Shakedown repeatedly forward/backward double-justifies order in
// place (spec §4.5), using time-resolution evaluation throughout - the
// better empirical fit for the sort-and-pack structure, per
// ScheduleSolver.h's shakingDownEvaluation doc comment. Returns the
// best makespan seen; order holds the corresponding activity sequence
// on return.
func Shakedown(in *instance.Instance, eval *evaluator.TimeResolution, order []int) int {
	n := len(order)
	best := -1

	for {
		forward := eval.Evaluate(order, true)
		if best != -1 && forward.Makespan >= best {
			break
		}
		best = forward.Makespan
		lenF := forward.Makespan

		finish := make([]int, n)
		for _, a := range order {
			finish[a] = forward.Start[a] + in.Duration(a)
		}
		sort.SliceStable(order, func(x, y int) bool {
			return finish[order[x]] < finish[order[y]]
		})

		// backward.Start is already the right-justified "latest start"
		// ls in forward-time coordinates (evaluator.Evaluate's
		// forward=false flip computes exactly makespan-start-duration
		// of the reversed pass).
		backward := eval.Evaluate(order, false)
		lenB := backward.Makespan
		shift := lenF - lenB

		adjusted := make([]int, n)
		for _, a := range order {
			v := backward.Start[a] + shift
			if v < 0 {
				v = 0
			}
			adjusted[a] = v
		}
		sort.SliceStable(order, func(x, y int) bool {
			return adjusted[order[x]] < adjusted[order[y]]
		})
	}

	return best
}
