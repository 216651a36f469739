package evaluator

import (
	"sort"

	"github.com/hlidacpes/rcpsp/instance"
)

// CapacityResolution evaluates schedules by tracking, per resource, a
// descending vector of "earliest free time" values - one entry per unit
// of capacity. Looking up the value at index capacity-demand gives the
// earliest instant at which `demand` units are simultaneously free;
// committing an activity raises the `demand` smallest (last, since the
// vector is kept sorted descending) entries to the activity's finish
// time. Grounded on SourcesLoadCapacityResolution's slot-vector idea,
// simplified to a re-sort on commit rather than its incremental
// peak-merging update - both maintain the same descending invariant, the
// incremental version just avoids the O(c log c) re-sort per commit.
type CapacityResolution struct {
	in    *instance.Instance
	slots [][]int
}

// NewCapacityResolution allocates a CapacityResolution evaluator for in,
// with every resource's slots initialized to 0 (every unit free at time 0).
func NewCapacityResolution(in *instance.Instance) *CapacityResolution {
	slots := make([][]int, in.NumResources())
	for r := range slots {
		slots[r] = make([]int, in.Capacity(r))
	}
	return &CapacityResolution{in: in, slots: slots}
}

// Evaluate computes the resource-feasible serial schedule for order,
// resetting internal state first so the evaluator can be reused across
// calls. forward=false runs the backward (right-justified) pass used by
// shake-down.
func (c *CapacityResolution) Evaluate(order []int, forward bool) Schedule {
	c.reset()
	in := c.in
	return serialSchedule(in.NumActivities(), durationSlice(in), in.Predecessors, in.Successors, in.DemandRow, order, c, forward)
}

func (c *CapacityResolution) reset() {
	for r := range c.slots {
		for i := range c.slots[r] {
			c.slots[r][i] = 0
		}
	}
}

func (c *CapacityResolution) earliestStart(demand []int, precedenceReady, duration int) int {
	best := precedenceReady
	for r, d := range demand {
		if d <= 0 {
			continue
		}
		slot := c.slots[r]
		idx := len(slot) - d
		if slot[idx] > best {
			best = slot[idx]
		}
	}
	return best
}

func (c *CapacityResolution) commit(demand []int, start, duration int) {
	stop := start + duration
	for r, d := range demand {
		if d <= 0 {
			continue
		}
		slot := c.slots[r]
		n := len(slot)
		for i := n - d; i < n; i++ {
			slot[i] = stop
		}
		sort.Sort(sort.Reverse(sort.IntSlice(slot)))
	}
}

func durationSlice(in *instance.Instance) []int {
	out := make([]int, in.NumActivities())
	for a := range out {
		out[a] = in.Duration(a)
	}
	return out
}
