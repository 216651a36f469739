// Package search implements the parallel tabu-search driver: candidate
// neighborhood generation, the per-iteration coarse data-parallel
// fork/join loop, shake-down refinement, and diversification.
//
// Grounded on ScheduleSolver.cpp's solveSchedule: the same swap/shift
// neighborhood, the same admissibility rule
// (tabu-allowed-and-locally-better, or aspiration), the same
// thread-private-order / reduce-at-join shape, translated from
// OpenMP's `#pragma omp parallel for schedule(dynamic)` to
// golang.org/x/sync/errgroup plus a shared atomic cursor standing in
// for dynamic chunking.
package search

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hlidacpes/rcpsp/evaluator"
	"github.com/hlidacpes/rcpsp/instance"
	"github.com/hlidacpes/rcpsp/tabumem"
)

// Result is the outcome of a Run call.
type Result struct {
	BestOrder    []int
	BestStart    []int
	BestMakespan int
	Iterations   int
	EvalCount    int
	EarlyStop    bool
}

// IterationEvent is reported to Driver.OnIteration once per completed
// iteration, for progress printing / CSV makespan-graph rows.
type IterationEvent struct {
	Iteration       int
	IterCost        int
	BestCost        int
	Improved        bool
	Diversified     bool
	ActiveEvaluator string
}

// Driver owns one run of the search loop over a fixed Instance.
type Driver struct {
	in   *instance.Instance
	tabu tabumem.Memory
	cfg  Config
	rng  *rand.Rand

	// OnIteration, if set, is invoked synchronously after every
	// completed iteration (including the final one before an early
	// stop). It must not retain the slices inside Result/IterationEvent
	// beyond the call.
	OnIteration func(IterationEvent)
}

// NewDriver constructs a Driver. rng supplies the diversification
// stream; callers typically derive it from internal/rng so tabu
// pruning and diversification draw from independent streams.
func NewDriver(in *instance.Instance, tabu tabumem.Memory, cfg Config, rng *rand.Rand) *Driver {
	return &Driver{in: in, tabu: tabu, cfg: cfg, rng: rng}
}

// candidateEval is one evaluated-and-reverted candidate: its cost
// under the active evaluator plus the start times that produced it.
type candidateEval struct {
	candidate Candidate
	cost      int
	start     []int
}

// Run executes the search loop starting from seedOrder (left
// untouched; a private copy is mutated) until maxIter iterations
// elapse, bestCost reaches the critical-path lower bound, ctx is
// cancelled, or a neighborhood turns up empty.
func (d *Driver) Run(ctx context.Context, seedOrder []int) Result {
	workers := d.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers < 1 {
		workers = 1
	}

	order := append([]int(nil), seedOrder...)

	mainEval := evaluator.NewAdaptive(d.in)
	shakeEval := evaluator.NewTimeResolution(d.in)
	workerEvals := make([]*evaluator.Adaptive, workers)
	for w := range workerEvals {
		workerEvals[w] = evaluator.NewAdaptive(d.in)
	}

	initial := mainEval.Evaluate(order, true)
	bestCost := initial.Makespan
	bestStart := initial.Start
	bestOrder := append([]int(nil), order...)

	itersSinceBest := 0
	evalCount := 1
	iter := 0

	// useTime/cycleIter are the macro-cycle state spec 4.2.3 describes:
	// re-measured at iteration 0 and 1 of every 100-iteration cycle,
	// keyed to the driver's own outer iteration count rather than to
	// any one evaluator's call count, since the workload being timed is
	// a full neighborhood pass under the driver's parallelism.
	useTime := false
	cycleIter := 0

	for ; iter < d.cfg.MaxIterations; iter++ {
		if ctx.Err() != nil {
			break
		}
		if bestCost <= d.in.CriticalPathMakespan() {
			break
		}

		var chosen *candidateEval
		var scans int
		if cycleIter == 0 || cycleIter == 1 {
			chosen, scans, useTime = d.measureAndScan(ctx, order, bestCost, workerEvals)
			mainEval.SetActive(useTime)
		} else {
			chosen, scans = d.scanIteration(ctx, order, bestCost, workerEvals, useTime)
		}
		cycleIter++
		if cycleIter >= evaluator.MacroCycleLength {
			cycleIter = 0
		}

		evalCount += scans
		if chosen == nil {
			return Result{
				BestOrder:    bestOrder,
				BestStart:    bestStart,
				BestMakespan: bestCost,
				Iterations:   iter,
				EvalCount:    evalCount,
				EarlyStop:    true,
			}
		}

		chosen.candidate.Apply(order)
		ti, tj, tk := chosen.candidate.TabuKey()
		// A move admitted by aspiration is already tabu; it is not
		// recorded a second time.
		if d.tabu.IsAllowed(ti, tj, tk) {
			d.tabu.Record(ti, tj, tk)
		}

		newCost := chosen.cost
		newStart := chosen.start
		improved := newCost < bestCost

		if improved {
			shakeOrder := append([]int(nil), order...)
			shakeCost := Shakedown(d.in, shakeEval, shakeOrder)
			evalCount++
			if shakeCost < newCost {
				order = shakeOrder
				newCost = shakeCost
				resched := mainEval.Evaluate(order, true)
				newStart = resched.Start
				evalCount++
			}

			bestCost = newCost
			bestStart = newStart
			bestOrder = append([]int(nil), order...)
			itersSinceBest = 0
			d.tabu.OnImprovement()
		} else {
			itersSinceBest++
		}

		diversified := false
		if itersSinceBest > d.cfg.MaxItersSinceBest {
			Diversify(d.in, order, d.rng, d.cfg.DiversificationSwaps)
			d.tabu.Prune()
			itersSinceBest = 0
			diversified = true
		}

		d.tabu.OnIterationEnd()

		if d.OnIteration != nil {
			d.OnIteration(IterationEvent{
				Iteration:       iter,
				IterCost:        newCost,
				BestCost:        bestCost,
				Improved:        improved,
				Diversified:     diversified,
				ActiveEvaluator: mainEval.ActiveName(),
			})
		}
	}

	return Result{
		BestOrder:    bestOrder,
		BestStart:    bestStart,
		BestMakespan: bestCost,
		Iterations:   iter,
		EvalCount:    evalCount,
	}
}

// measureAndScan runs the full neighborhood scan once with each
// evaluator strategy, under the same worker parallelism scanIteration
// normally uses, and times both (spec 4.2.3: "measured under the same
// parallelism the driver uses"). It returns the chosen candidate from
// whichever pass was faster, the combined scan count of both passes,
// and that faster strategy's useTime flag for the driver to carry
// into the rest of the macro-cycle.
func (d *Driver) measureAndScan(ctx context.Context, order []int, bestCost int, workerEvals []*evaluator.Adaptive) (*candidateEval, int, bool) {
	start := time.Now()
	capChosen, capScans := d.scanIteration(ctx, order, bestCost, workerEvals, false)
	capDur := time.Since(start)

	start = time.Now()
	timeChosen, timeScans := d.scanIteration(ctx, order, bestCost, workerEvals, true)
	timeDur := time.Since(start)

	totalScans := capScans + timeScans
	if timeDur < capDur {
		return timeChosen, totalScans, true
	}
	return capChosen, totalScans, false
}

// scanIteration fans the i=1..N-2 neighborhood scan across workers
// sharing a dynamic cursor (the errgroup/atomic-cursor stand-in for
// OpenMP's schedule(dynamic)), each with a private order copy and a
// fixed evaluator strategy for this pass, and reduces to the single
// globally best admissible candidate. Returns nil if no candidate was
// admissible anywhere.
func (d *Driver) scanIteration(ctx context.Context, order []int, bestCost int, workerEvals []*evaluator.Adaptive, useTime bool) (*candidateEval, int) {
	n := len(order)
	var cursor int32 = 1 // first fetched index is 1

	var mu sync.Mutex
	var chosen *candidateEval
	var totalScans int64

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < len(workerEvals); w++ {
		eval := workerEvals[w]
		g.Go(func() error {
			localOrder := append([]int(nil), order...)
			var localBest *candidateEval
			localBestCost := math.MaxInt
			var scans int64

			for {
				i := int(atomic.AddInt32(&cursor, 1)) - 1
				if i >= n-1 {
					break
				}
				if gctx.Err() != nil {
					break
				}

				for _, c := range CandidatesForIndex(d.in, order, i, d.cfg.SwapRange, d.cfg.ShiftRange) {
					c.Apply(localOrder)
					var sched evaluator.Schedule
					if useTime {
						sched = eval.EvaluateTime(localOrder, true)
					} else {
						sched = eval.EvaluateCapacity(localOrder, true)
					}
					scans++
					cost := sched.Makespan + overhangPenalty(d.in, bestCost-terminationOffset, sched.Start)
					c.Revert(localOrder)

					ti, tj, tk := c.TabuKey()
					allowed := d.tabu.IsAllowed(ti, tj, tk)
					admissible := (allowed && cost <= localBestCost) || cost < bestCost
					if !admissible {
						continue
					}
					if localBest == nil || lessCandidate(cost, c, localBestCost, localBest.candidate) {
						localBest = &candidateEval{candidate: c, cost: cost, start: append([]int(nil), sched.Start...)}
						localBestCost = cost
					}
				}
			}

			mu.Lock()
			defer mu.Unlock()
			totalScans += scans
			if localBest != nil && (chosen == nil || lessCandidate(localBest.cost, localBest.candidate, chosen.cost, chosen.candidate)) {
				chosen = localBest
			}
			return nil
		})
	}
	_ = g.Wait() // worker goroutines never return a non-nil error

	return chosen, int(totalScans)
}

// lessCandidate implements the documented tie-break (spec §5): lower
// cost wins; ties break lexicographically on (move-kind, i, j or
// shiftTarget).
func lessCandidate(costA int, a Candidate, costB int, b Candidate) bool {
	if costA != costB {
		return costA < costB
	}
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	if a.I != b.I {
		return a.I < b.I
	}
	if a.Kind == tabumem.Swap {
		return a.J < b.J
	}
	return a.ShiftTarget < b.ShiftTarget
}
