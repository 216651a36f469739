package search

import (
	"context"
	"math/rand"
	"testing"

	"github.com/hlidacpes/rcpsp/evaluator"
	"github.com/hlidacpes/rcpsp/instance"
	"github.com/hlidacpes/rcpsp/tabumem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainInstance is the S1 trivial chain: 0->1->2->3, one resource.
func chainInstance(t *testing.T) *instance.Instance {
	t.Helper()
	in, err := instance.New(1,
		[]int{1},
		[]int{0, 3, 5, 0},
		[][]int{{0}, {1}, {1}, {0}},
		[][]int{{1}, {2}, {3}, {}},
	)
	require.NoError(t, err)
	return in
}

// parallelConflict is S2/S3: 0 forks to 1,2, both join at 3.
func parallelConflict(t *testing.T, capacity int) *instance.Instance {
	t.Helper()
	in, err := instance.New(1,
		[]int{capacity},
		[]int{0, 4, 3, 0},
		[][]int{{0}, {1}, {1}, {0}},
		[][]int{{1, 2}, {3}, {3}, {}},
	)
	require.NoError(t, err)
	return in
}

// forkInstance is an S4-style chain-with-fork instance: seed order
// forward-evaluates to makespan 12, and shake-down finds 8 (verified by
// hand trace of both passes; see Shakedown's doc comment for the
// algorithm it runs).
func forkInstance(t *testing.T) *instance.Instance {
	t.Helper()
	in, err := instance.New(1,
		[]int{1},
		[]int{0, 2, 2, 1, 7, 0},
		[][]int{{0}, {1}, {1}, {1}, {0}, {0}},
		[][]int{{1, 2, 3}, {5}, {5}, {4}, {5}, {}},
	)
	require.NoError(t, err)
	return in
}

// plateauInstance is a three-way fork fully serialized on one
// resource: every permutation of activities 1,2,3 sums to the same
// makespan (9), so no swap or shift ever strictly improves, while the
// precedence-only critical path (4, via 0->3->4) stays far below what
// is reachable. Used to exercise diversification without the driver
// ever early-stopping via the critical-path shortcut or an empty
// neighborhood.
func plateauInstance(t *testing.T) *instance.Instance {
	t.Helper()
	in, err := instance.New(1,
		[]int{1},
		[]int{0, 3, 2, 4, 0},
		[][]int{{0}, {1}, {1}, {1}, {0}},
		[][]int{{1, 2, 3}, {4}, {4}, {4}, {}},
	)
	require.NoError(t, err)
	return in
}

// aspirationInstance has exactly one neighborhood candidate at
// SwapRange=1/ShiftRange=0: swapping activities 1 and 2 (seed order
// positions 1,2) strictly reduces makespan from 8 to 7 by letting
// activity 2's long downstream chain (2->3, duration 6) start one time
// unit earlier.
func aspirationInstance(t *testing.T) *instance.Instance {
	t.Helper()
	in, err := instance.New(1,
		[]int{1},
		[]int{0, 1, 1, 6, 0},
		[][]int{{0}, {1}, {1}, {0}, {0}},
		[][]int{{1, 2}, {4}, {3}, {4}, {}},
	)
	require.NoError(t, err)
	return in
}

func defaultConfig() Config {
	return Config{
		SwapRange:            3,
		ShiftRange:           3,
		MaxIterations:        50,
		MaxItersSinceBest:    10,
		DiversificationSwaps: 2,
		Workers:              2,
		SimpleTabuListSize:   8,
		SwapLifeFactor:       4,
		ShiftLifeFactor:      4,
		EraseFraction:        0.3,
	}
}

func newSimpleTabu(n int, cfg Config, seed int64) tabumem.Memory {
	return tabumem.NewSimple(n, cfg.SimpleTabuListSize, rand.New(rand.NewSource(seed)))
}

func newAgingTabu(n int, cfg Config, seed int64) tabumem.Memory {
	return tabumem.NewAging(cfg.MaxItersSinceBest, cfg.SwapLifeFactor, cfg.ShiftLifeFactor, cfg.EraseFraction, rand.New(rand.NewSource(seed)))
}

// TestS4_ShakedownRequired exercises the standalone Shakedown function
// (the sub-routine Run calls after every improving move).
func TestS4_ShakedownRequired(t *testing.T) {
	in := forkInstance(t)
	order := in.SeedOrder()

	seedEval := evaluator.NewTimeResolution(in)
	seedSchedule := seedEval.Evaluate(order, true)
	require.Equal(t, 12, seedSchedule.Makespan, "seed order must start at makespan 12")

	shakeEval := evaluator.NewTimeResolution(in)
	best := Shakedown(in, shakeEval, order)

	assert.Equal(t, 8, best, "shake-down must find the improved packing")
	assert.Less(t, best, 12)
}

// TestS5_DiversificationTriggered is the driver-level half of property
// S5: when no strict improvement is reachable, itersSinceBest exceeds
// maxItersSinceBest and the driver diversifies instead of idling.
func TestS5_DiversificationTriggered(t *testing.T) {
	in := plateauInstance(t)
	cfg := defaultConfig()
	cfg.MaxItersSinceBest = 2
	cfg.MaxIterations = 20
	cfg.Workers = 1

	tabu := newAgingTabu(in.NumActivities(), cfg, 7)
	driver := NewDriver(in, tabu, cfg, rand.New(rand.NewSource(7)))

	var diversifiedAt []int
	driver.OnIteration = func(ev IterationEvent) {
		if ev.Diversified {
			diversifiedAt = append(diversifiedAt, ev.Iteration)
		}
	}

	result := driver.Run(context.Background(), in.SeedOrder())

	require.NotEmpty(t, diversifiedAt, "diversification must fire when stuck at a tied cost")
	assert.Equal(t, 9, result.BestMakespan)
	assert.False(t, result.EarlyStop)
}

// TestDiversify_ChangesOrder is the unit-level half of property S5:
// Diversify actually perturbs an order with enough room for
// precedence-feasible swaps.
func TestDiversify_ChangesOrder(t *testing.T) {
	in := forkInstance(t)
	order := in.SeedOrder()
	before := append([]int(nil), order...)

	Diversify(in, order, rand.New(rand.NewSource(3)), 20)

	assert.NotEqual(t, before, order)
	assertTopologicallyValid(t, in, order)
}

// TestS6_AspirationOverride preloads a simple tabu memory so the only
// available candidate (swap positions 1,2) is tabu, then asserts the
// driver still applies it because its cost strictly beats bestCost.
func TestS6_AspirationOverride(t *testing.T) {
	in := aspirationInstance(t)
	cfg := Config{
		SwapRange:         1,
		ShiftRange:        0,
		MaxIterations:     1,
		MaxItersSinceBest: 100,
		Workers:           1,
	}

	tabu := tabumem.NewSimple(in.NumActivities(), 8, rand.New(rand.NewSource(1)))
	tabu.Record(1, 2, tabumem.Swap)
	require.False(t, tabu.IsAllowed(1, 2, tabumem.Swap), "move must be preloaded as tabu")

	driver := NewDriver(in, tabu, cfg, rand.New(rand.NewSource(1)))
	result := driver.Run(context.Background(), in.SeedOrder())

	assert.Equal(t, 7, result.BestMakespan, "aspiration must admit the tabu move since 7 < 8")
}

// TestProperties_FeasibilityTopologyLowerBound covers testable
// properties 1 (feasibility), 2 (topological invariant), and 3 (lower
// bound) over a full driver run.
func TestProperties_FeasibilityTopologyLowerBound(t *testing.T) {
	in := forkInstance(t)
	cfg := defaultConfig()

	tabu := newAgingTabu(in.NumActivities(), cfg, 11)
	driver := NewDriver(in, tabu, cfg, rand.New(rand.NewSource(11)))
	result := driver.Run(context.Background(), in.SeedOrder())

	assertTopologicallyValid(t, in, result.BestOrder)

	// Feasibility: an independent evaluator, re-run on the winning
	// order, must reproduce exactly the reported makespan/start times.
	check := evaluator.NewCapacityResolution(in).Evaluate(result.BestOrder, true)
	assert.Equal(t, result.BestMakespan, check.Makespan)
	assert.Equal(t, result.BestStart, check.Start)

	// Lower bound.
	assert.GreaterOrEqual(t, result.BestMakespan, in.CriticalPathMakespan())
}

// TestProperty8_DeterminismUnderSeed: fixed seed + fixed worker count +
// fixed input yields identical bestOrder/bestCost across runs.
func TestProperty8_DeterminismUnderSeed(t *testing.T) {
	in := forkInstance(t)
	cfg := defaultConfig()
	cfg.Workers = 3

	run := func() Result {
		tabu := newAgingTabu(in.NumActivities(), cfg, 99)
		driver := NewDriver(in, tabu, cfg, rand.New(rand.NewSource(99)))
		return driver.Run(context.Background(), in.SeedOrder())
	}

	a := run()
	b := run()

	assert.Equal(t, a.BestMakespan, b.BestMakespan)
	assert.Equal(t, a.BestOrder, b.BestOrder)
}

// assertTopologicallyValid checks property 2: for every edge i->j,
// order^-1(i) < order^-1(j).
func assertTopologicallyValid(t *testing.T, in *instance.Instance, order []int) {
	t.Helper()
	position := make([]int, len(order))
	for pos, a := range order {
		position[a] = pos
	}
	for i := 0; i < in.NumActivities(); i++ {
		for _, j := range in.Successors(i) {
			assert.Less(t, position[i], position[j], "edge %d->%d must respect order", i, j)
		}
	}
}
