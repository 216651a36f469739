package search

import "github.com/hlidacpes/rcpsp/instance"

// PrecedencePenalty is a debug-only diagnostic ported from
// ScheduleSolver.cpp's computePrecedencePenalty: it counts, for a given
// order, how many precedence edges i->j are violated (order^-1(i) >
// order^-1(j)). The driver never adds this to a candidate's cost - the
// neighborhood generator already filters out any move that would
// violate precedence - but it is a useful sanity check in tests and in
// the schedule summary rcpsp-tabu prints.
func PrecedencePenalty(in *instance.Instance, order []int) int {
	position := make([]int, len(order))
	for pos, a := range order {
		position[a] = pos
	}

	violations := 0
	for i := 0; i < in.NumActivities(); i++ {
		for _, j := range in.Successors(i) {
			if position[i] > position[j] {
				violations++
			}
		}
	}
	return violations
}
