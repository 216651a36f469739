package rcpsp

import (
	"context"

	"github.com/hlidacpes/rcpsp/evaluator"
	"github.com/hlidacpes/rcpsp/format"
	"github.com/hlidacpes/rcpsp/instance"
	"github.com/hlidacpes/rcpsp/internal/rng"
	"github.com/hlidacpes/rcpsp/search"
	"github.com/hlidacpes/rcpsp/tabumem"
)

// Result is the outcome of a Solve/SolveFile call: the winning order
// and start times, the makespan achieved, the precedence-penalty
// diagnostic (always 0 for an accepted result; the neighborhood
// generator never admits a precedence-violating move), and the
// bookkeeping spec 6's multi-instance summary line prints.
type Result struct {
	BestOrder    []int
	BestStart    []int
	BestMakespan int

	CriticalPathMakespan int
	PrecedencePenalty    int

	Iterations int
	EvalCount  int
	EarlyStop  bool
}

// Solve runs the parallel tabu search over an already-loaded instance.
// Equivalent to SolveWithMatrix in tsp's dispatcher: validation and
// instance construction already happened upstream (instance.New), so
// this stage wires the evaluator/tabu/search components and runs them.
func Solve(ctx context.Context, in *instance.Instance, opts Options) Result {
	cfg := search.Config{
		SwapRange:            opts.SwapRange,
		ShiftRange:           opts.ShiftRange,
		MaxIterations:        opts.NumberOfIterations,
		MaxItersSinceBest:    opts.MaxIterSinceBest,
		DiversificationSwaps: opts.DiversificationSwaps,
		Workers:              opts.Workers,
		UseAgingTabu:         opts.Tabu == AgingTabuVariant,
		SimpleTabuListSize:   opts.SimpleTabuListSize,
		SwapLifeFactor:       opts.SwapLifeFactor,
		ShiftLifeFactor:      opts.ShiftLifeFactor,
		EraseFraction:        opts.RandomizeEraseAmount,
		Seed:                 opts.Seed,
	}

	tabuRNG, diversifyRNG := rng.Streams(opts.Seed)

	var tabu tabumem.Memory
	if cfg.UseAgingTabu {
		tabu = tabumem.NewAging(cfg.MaxItersSinceBest, cfg.SwapLifeFactor, cfg.ShiftLifeFactor, cfg.EraseFraction, tabuRNG)
	} else {
		tabu = tabumem.NewSimple(in.NumActivities(), cfg.SimpleTabuListSize, tabuRNG)
	}

	driver := search.NewDriver(in, tabu, cfg, diversifyRNG)
	if opts.Progress != nil {
		driver.OnIteration = func(ev search.IterationEvent) {
			opts.Progress(ProgressEvent{
				Iteration:   ev.Iteration,
				IterCost:    ev.IterCost,
				BestCost:    ev.BestCost,
				Improved:    ev.Improved,
				Diversified: ev.Diversified,
			})
		}
	}

	out := driver.Run(ctx, in.SeedOrder())

	return Result{
		BestOrder:            out.BestOrder,
		BestStart:            out.BestStart,
		BestMakespan:         out.BestMakespan,
		CriticalPathMakespan: in.CriticalPathMakespan(),
		PrecedencePenalty:    search.PrecedencePenalty(in, out.BestOrder),
		Iterations:           out.Iterations,
		EvalCount:            out.EvalCount,
		EarlyStop:            out.EarlyStop,
	}
}

// SolveFile loads an instance from path (auto-detecting PSP-SFX vs
// PSPLIB/max by its first line, per format.Load) and delegates to
// Solve. Equivalent to SolveWithGraph: build the domain object, then
// hand off to the matrix/instance-level entry point.
func SolveFile(ctx context.Context, path string, opts Options) (Result, error) {
	in, err := format.Load(path)
	if err != nil {
		return Result{}, err
	}
	return Solve(ctx, in, opts), nil
}

// Evaluate re-runs an independent evaluator over a Result's winning
// order, for callers that want to double-check feasibility (testable
// property 1) without re-running the search.
func Evaluate(in *instance.Instance, order []int) evaluator.Schedule {
	return evaluator.NewCapacityResolution(in).Evaluate(order, true)
}
