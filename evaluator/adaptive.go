package evaluator

import "github.com/hlidacpes/rcpsp/instance"

// MacroCycleLength is the number of driver iterations an adaptive
// choice stays in effect before being re-measured (spec 4.2.3). The
// search driver re-measures at iteration 0 and 1 of every cycle -
// timing a full neighborhood pass with each evaluator under its usual
// worker parallelism, not a single Evaluate call - and reuses the
// faster evaluator for the remaining 98 iterations of the cycle.
const MacroCycleLength = 100

// Adaptive bundles both evaluators behind one selectable front end.
// It holds no cycle-timing state of its own: spec 4.2.3's macro-cycle
// is timed over a full neighborhood pass under the driver's
// parallelism, a quantity only the search driver can observe, so the
// driver owns the cycle counter and which evaluator is active for a
// given iteration; Adaptive only dispatches to the one it's told.
type Adaptive struct {
	capacity *CapacityResolution
	time     *TimeResolution

	useTime bool
}

// NewAdaptive constructs an Adaptive evaluator pair for in.
func NewAdaptive(in *instance.Instance) *Adaptive {
	return &Adaptive{
		capacity: NewCapacityResolution(in),
		time:     NewTimeResolution(in),
	}
}

// SetActive selects which underlying evaluator subsequent Evaluate
// calls use. The driver calls this once per macro-cycle, after timing
// a full neighborhood pass with each evaluator.
func (ad *Adaptive) SetActive(useTime bool) {
	ad.useTime = useTime
}

// Evaluate runs whichever evaluator SetActive last selected (capacity
// resolution by default, before the first measurement).
func (ad *Adaptive) Evaluate(order []int, forward bool) Schedule {
	if ad.useTime {
		return ad.time.Evaluate(order, forward)
	}
	return ad.capacity.Evaluate(order, forward)
}

// EvaluateCapacity and EvaluateTime force one specific evaluator
// regardless of the current selection, for the driver's macro-cycle
// measurement pass, which must run both strategies over the identical
// neighborhood workload to compare their wall time.
func (ad *Adaptive) EvaluateCapacity(order []int, forward bool) Schedule {
	return ad.capacity.Evaluate(order, forward)
}

func (ad *Adaptive) EvaluateTime(order []int, forward bool) Schedule {
	return ad.time.Evaluate(order, forward)
}

// ActiveName reports which underlying evaluator is currently selected
// - "time" or "capacity" - for progress reporting.
func (ad *Adaptive) ActiveName() string {
	if ad.useTime {
		return "time"
	}
	return "capacity"
}
