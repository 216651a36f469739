package search

import "github.com/hlidacpes/rcpsp/instance"

// terminationOffset is the single named constant behind the overhang
// penalty's bound argument, bestCost-1 (spec §4.4 step 2). Keeping it
// as one named constant at the one call site avoids repeating the
// magic literal, the convention AdvancedTabuList.cpp uses for its own
// tuning constants.
const terminationOffset = 1

// overhangPenalty sums, over every activity, how far its tail (start +
// duration + the admissible right-to-left longest path to the sink)
// overruns bound. Added to raw makespan when scoring a candidate move
// so that schedules whose unavoidable tail already exceeds the
// incumbent are discouraged even when their head looks attractive.
func overhangPenalty(in *instance.Instance, bound int, starts []int) int {
	penalty := 0
	for a := 0; a < in.NumActivities(); a++ {
		overrun := starts[a] + in.Duration(a) + in.RightLeftLongestPath(a) - bound
		if overrun > 0 {
			penalty += overrun
		}
	}
	return penalty
}
