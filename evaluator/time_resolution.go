package evaluator

import "github.com/hlidacpes/rcpsp/instance"

// TimeResolution evaluates schedules by tracking, per resource, the
// remaining capacity at every time unit up to twice the instance's
// upper-bound makespan. Earliest-start search scans forward for the first window of
// `duration` consecutive instants where every resource has enough
// remaining capacity; committing decrements that window. Ported directly
// from SourcesLoadTimeResolution, whose two loops map onto
// earliestStart/commit one-to-one.
type TimeResolution struct {
	in       *instance.Instance
	capacity []int
	horizon  int
	remain   [][]int // remain[r][t]
}

// NewTimeResolution allocates a TimeResolution evaluator whose horizon is
// 2*in.UpperBoundMakespan()+1 time units.
func NewTimeResolution(in *instance.Instance) *TimeResolution {
	horizon := 2*in.UpperBoundMakespan() + 1
	capacity := make([]int, in.NumResources())
	for r := range capacity {
		capacity[r] = in.Capacity(r)
	}
	remain := make([][]int, in.NumResources())
	for r := range remain {
		remain[r] = make([]int, horizon)
	}
	t := &TimeResolution{in: in, capacity: capacity, horizon: horizon, remain: remain}
	t.reset()
	return t
}

// Evaluate computes the resource-feasible serial schedule for order,
// resetting internal state first so the evaluator can be reused across
// calls. forward=false runs the backward (right-justified) pass used by
// shake-down.
func (t *TimeResolution) Evaluate(order []int, forward bool) Schedule {
	t.reset()
	in := t.in
	return serialSchedule(in.NumActivities(), durationSlice(in), in.Predecessors, in.Successors, in.DemandRow, order, t, forward)
}

func (t *TimeResolution) reset() {
	for r, c := range t.capacity {
		row := t.remain[r]
		for i := range row {
			row[i] = c
		}
	}
}

func (t *TimeResolution) earliestStart(demand []int, precedenceReady, duration int) int {
	loadTime, tt := 0, precedenceReady
	for ; tt < t.horizon && loadTime < duration; tt++ {
		available := true
		for r, d := range demand {
			if d > 0 && t.remain[r][tt] < d {
				available = false
				break
			}
		}
		if available {
			loadTime++
		} else {
			loadTime = 0
		}
	}
	return tt - loadTime
}

func (t *TimeResolution) commit(demand []int, start, duration int) {
	stop := start + duration
	for r, d := range demand {
		if d <= 0 {
			continue
		}
		row := t.remain[r]
		for tt := start; tt < stop; tt++ {
			row[tt] -= d
		}
	}
}
