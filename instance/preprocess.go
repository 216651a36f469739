package instance

import "sort"

// New validates the raw project description and builds an immutable
// Instance, computing every derived structure described in spec 3-4.1:
// predecessors, successor/disjunctive matrices, transitive closures,
// critical path, right-to-left longest paths, and the topological seed
// order.
//
// Activity 0 must be the source dummy and activity N-1 the sink dummy
// (duration 0, zero demand is the caller's responsibility to establish;
// New does not special-case them beyond the DAG/reachability checks that
// apply to every activity).
func New(numResources int, capacity []int, duration []int, demand [][]int, successors [][]int) (*Instance, error) {
	n := len(duration)
	if n < 2 {
		return nil, ErrTooFewActivities
	}
	if numResources < 1 {
		return nil, ErrNoResources
	}
	if len(capacity) != numResources || len(demand) != n || len(successors) != n {
		return nil, ErrSuccessorOutOfRange
	}
	for r := 0; r < numResources; r++ {
		if capacity[r] <= 0 {
			return nil, ErrBadCapacity
		}
	}
	for a := 0; a < n; a++ {
		if duration[a] < 0 {
			return nil, ErrBadDuration
		}
		if len(demand[a]) != numResources {
			return nil, ErrSuccessorOutOfRange
		}
		for r := 0; r < numResources; r++ {
			if demand[a][r] < 0 || demand[a][r] > capacity[r] {
				return nil, ErrDemandExceedsCapacity
			}
		}
		for _, s := range successors[a] {
			if s < 0 || s >= n {
				return nil, ErrSuccessorOutOfRange
			}
		}
	}

	in := &Instance{
		numActivities: n,
		numResources:  numResources,
		capacity:      append([]int(nil), capacity...),
		duration:      append([]int(nil), duration...),
		demand:        cloneRows(demand),
		successors:    cloneRows(successors),
	}

	in.predecessors = buildPredecessors(n, in.successors)

	in.successorMat = newBitMatrix(n)
	for a := 0; a < n; a++ {
		for _, s := range in.successors[a] {
			in.successorMat.Set(a, s)
		}
	}

	topoOrder, err := kahnTopoOrder(n, in.successors, in.predecessors)
	if err != nil {
		return nil, err
	}

	in.seedOrder = computeSeedOrder(n, topoOrder, in.successors)

	in.allSuccessors, in.allPredecessors = transitiveClosures(n, topoOrder, in.successors, in.predecessors)

	if err = checkReachability(n, in.allSuccessors, in.allPredecessors); err != nil {
		return nil, err
	}

	in.criticalPathMakespan = longestPathForward(n, topoOrder, in.successors, in.duration)
	in.rightLeftLongestPath = longestPathBackward(n, topoOrder, in.successors, in.duration)

	sum := 0
	for _, d := range in.duration {
		sum += d
	}
	in.upperBoundMakespan = sum

	in.disjunctiveMat = buildDisjunctiveMatrix(n, numResources, in.allSuccessors, in.demand, in.capacity)

	return in, nil
}

func cloneRows(rows [][]int) [][]int {
	out := make([][]int, len(rows))
	for i, r := range rows {
		out[i] = append([]int(nil), r...)
	}
	return out
}

// buildPredecessors reverses the successors adjacency into predecessors,
// the Go equivalent of the original's two-pass count-then-fill
// (createInitialSolution's predecessor precompute), minus the manual
// pointer arithmetic.
func buildPredecessors(n int, successors [][]int) [][]int {
	counts := make([]int, n)
	for a := 0; a < n; a++ {
		for _, s := range successors[a] {
			counts[s]++
		}
	}
	preds := make([][]int, n)
	for a := 0; a < n; a++ {
		preds[a] = make([]int, 0, counts[a])
	}
	for a := 0; a < n; a++ {
		for _, s := range successors[a] {
			preds[s] = append(preds[s], a)
		}
	}
	return preds
}

// kahnTopoOrder computes a topological order via Kahn's algorithm,
// breaking ties by ascending activity id for determinism. Returns
// ErrNotDAG if a cycle prevents a full ordering.
func kahnTopoOrder(n int, successors, predecessors [][]int) ([]int, error) {
	inDegree := make([]int, n)
	for a := 0; a < n; a++ {
		inDegree[a] = len(predecessors[a])
	}

	// A simple ascending-id priority queue suffices: ties broken by id is
	// exactly "process the smallest ready id first", so a sorted slice
	// scanned linearly is fine at RCPSP instance sizes (hundreds of
	// activities) and keeps the algorithm allocation-light.
	ready := make([]int, 0, n)
	for a := 0; a < n; a++ {
		if inDegree[a] == 0 {
			ready = append(ready, a)
		}
	}
	sort.Ints(ready)

	order := make([]int, 0, n)
	for len(ready) > 0 {
		a := ready[0]
		ready = ready[1:]
		order = append(order, a)

		for _, s := range successors[a] {
			inDegree[s]--
			if inDegree[s] == 0 {
				pos := sort.SearchInts(ready, s)
				ready = append(ready, 0)
				copy(ready[pos+1:], ready[pos:])
				ready[pos] = s
			}
		}
	}

	if len(order) != n {
		return nil, ErrNotDAG
	}
	return order, nil
}

// computeSeedOrder assigns each activity the level d equal to the longest
// edge-count path from the source to it (spec 4.1), then lists activities
// in ascending level, ties broken by ascending id.
func computeSeedOrder(n int, topoOrder []int, successors [][]int) []int {
	level := make([]int, n)
	for _, a := range topoOrder {
		for _, s := range successors[a] {
			if level[a]+1 > level[s] {
				level[s] = level[a] + 1
			}
		}
	}

	order := make([]int, n)
	for a := 0; a < n; a++ {
		order[a] = a
	}
	sort.SliceStable(order, func(i, j int) bool {
		if level[order[i]] != level[order[j]] {
			return level[order[i]] < level[order[j]]
		}
		return order[i] < order[j]
	})
	return order
}

// longestPathForward computes, for every activity in topological order,
// the longest source-to-activity path weighted by tail duration (a
// Kahn-style relaxation, spec 4.1), and returns the sink's value as the
// critical path makespan.
func longestPathForward(n int, topoOrder []int, successors [][]int, duration []int) int {
	dist := make([]int, n)
	for _, a := range topoOrder {
		for _, s := range successors[a] {
			if v := dist[a] + duration[a]; v > dist[s] {
				dist[s] = v
			}
		}
	}
	return dist[n-1]
}

// longestPathBackward computes the longest path from each activity to the
// sink in the edge-reversed graph, by walking topoOrder from the sink
// backward and relaxing through direct successors (spec 4.1's
// "right-to-left longest paths").
func longestPathBackward(n int, topoOrder []int, successors [][]int, duration []int) []int {
	rl := make([]int, n)
	for i := len(topoOrder) - 1; i >= 0; i-- {
		a := topoOrder[i]
		for _, s := range successors[a] {
			if v := duration[s] + rl[s]; v > rl[a] {
				rl[a] = v
			}
		}
	}
	return rl
}

// transitiveClosures computes allSuccessors/allPredecessors as sorted id
// slices, by accumulating bit-matrix rows from the sink backward (for
// successors) and from the source forward (for predecessors), unioning
// each direct successor's already-complete closure - O(N) activities x
// O(N/64) words per union.
func transitiveClosures(n int, topoOrder []int, successors, predecessors [][]int) (allSucc, allPred [][]int) {
	succMat := newBitMatrix(n)
	for i := len(topoOrder) - 1; i >= 0; i-- {
		a := topoOrder[i]
		for _, s := range successors[a] {
			succMat.Set(a, s)
			succMat.unionRowInto(a, s)
		}
	}
	predMat := newBitMatrix(n)
	for _, a := range topoOrder {
		for _, p := range predecessors[a] {
			predMat.Set(a, p)
			predMat.unionRowInto(a, p)
		}
	}

	allSucc = make([][]int, n)
	allPred = make([][]int, n)
	for a := 0; a < n; a++ {
		allSucc[a] = succMat.setBits(a, nil)
		allPred[a] = predMat.setBits(a, nil)
	}
	return allSucc, allPred
}

// checkReachability enforces spec 3's invariant that source and sink are
// reachable to/from every other activity.
func checkReachability(n int, allSucc, allPred [][]int) error {
	sink := n - 1
	for a := 0; a < n-1; a++ {
		if !containsSorted(allSucc[a], sink) {
			return ErrSinkUnreachable
		}
	}
	for a := 1; a < n; a++ {
		if !containsSorted(allPred[a], 0) {
			return ErrSinkUnreachable
		}
	}
	return nil
}

func containsSorted(sorted []int, x int) bool {
	i := sort.SearchInts(sorted, x)
	return i < len(sorted) && sorted[i] == x
}

// buildDisjunctiveMatrix sets disjunctiveMat[i][j] for every unordered
// pair that is either precedence-ordered (one is a transitive successor
// of the other) or jointly over-demands some resource (spec 3 and 4.1).
func buildDisjunctiveMatrix(n, numResources int, allSucc [][]int, demand [][]int, capacity []int) *bitMatrix {
	m := newBitMatrix(n)
	for i := 0; i < n; i++ {
		for _, j := range allSucc[i] {
			m.Set(i, j)
			m.Set(j, i)
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if m.Get(i, j) {
				continue // already ordered by precedence
			}
			for r := 0; r < numResources; r++ {
				if demand[i][r]+demand[j][r] > capacity[r] {
					m.Set(i, j)
					m.Set(j, i)
					break
				}
			}
		}
	}
	return m
}
