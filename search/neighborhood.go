package search

import (
	"github.com/hlidacpes/rcpsp/instance"
	"github.com/hlidacpes/rcpsp/tabumem"
)

// Config collects the neighborhood/driver tuning parameters exposed on
// the CLI (spec 6).
type Config struct {
	SwapRange  int
	ShiftRange int

	MaxIterations     int
	MaxItersSinceBest int

	DiversificationSwaps int

	// Workers is the fixed number of parallel goroutines the driver
	// fans the per-iteration neighborhood scan across. 0 selects
	// runtime.GOMAXPROCS(0). Property 8 (determinism under seed) is
	// documented as holding for a fixed thread count; this field is
	// that count.
	Workers int

	UseAgingTabu bool

	// Simple tabu.
	SimpleTabuListSize int

	// Aging tabu.
	SwapLifeFactor  int
	ShiftLifeFactor int
	EraseFraction   float64

	Seed int64
}

// Candidate is one neighborhood move: either a SWAP of the activities at
// order positions I and J, or a SHIFT of the activity at position I to
// position ShiftTarget.
type Candidate struct {
	Kind        tabumem.MoveKind
	I, J        int // SWAP: order positions swapped
	ShiftTarget int // SHIFT: destination order position
}

// TabuKey returns the (i,j,kind) triple under which this candidate would
// be recorded/queried in a tabu memory. SHIFT moves key on (I,I,Shift) -
// the destination is not part of the key.
func (c Candidate) TabuKey() (i, j int, kind tabumem.MoveKind) {
	if c.Kind == tabumem.Shift {
		return c.I, c.I, tabumem.Shift
	}
	return c.I, c.J, tabumem.Swap
}

// Apply mutates order in place to reflect the candidate move.
func (c Candidate) Apply(order []int) {
	if c.Kind == tabumem.Swap {
		order[c.I], order[c.J] = order[c.J], order[c.I]
		return
	}
	makeShift(order, c.I, c.ShiftTarget)
}

// Revert undoes Apply; for SWAP it is its own inverse, for SHIFT it
// shifts the activity back from ShiftTarget to I.
func (c Candidate) Revert(order []int) {
	if c.Kind == tabumem.Swap {
		order[c.I], order[c.J] = order[c.J], order[c.I]
		return
	}
	makeShift(order, c.ShiftTarget, c.I)
}

// makeShift relocates the activity at position from to position to by a
// sequence of adjacent swaps, the same rotation ScheduleSolver::makeShift
// performs with pointer arithmetic.
func makeShift(order []int, from, to int) {
	if to > from {
		for i := from; i < to; i++ {
			order[i], order[i+1] = order[i+1], order[i]
		}
	} else {
		for i := from; i > to; i-- {
			order[i], order[i-1] = order[i-1], order[i]
		}
	}
}

// CandidatesForIndex generates every SWAP and SHIFT candidate rooted at
// order position i, precedence-filtered per spec 4.4.
func CandidatesForIndex(in *instance.Instance, order []int, i, swapRange, shiftRange int) []Candidate {
	n := len(order)
	var out []Candidate

	// SWAP: j in (i, min(i+1+swapRange, n-1)).
	u := i + 1 + swapRange
	if n-1 < u {
		u = n - 1
	}
	for j := i + 1; j < u; j++ {
		precedenceFree := true
		for k := i; k < j; k++ {
			if in.IsDirectSuccessor(order[k], order[j]) {
				precedenceFree = false
				break
			}
		}
		if !precedenceFree {
			break // higher j are not tried once one is blocked
		}
		out = append(out, Candidate{Kind: tabumem.Swap, I: i, J: j})
	}

	// SHIFT: target s in [max(1,i-shiftRange), min(i+1+shiftRange,n-1)), s not in {i-1,i,i+1}.
	lo := i - shiftRange
	if lo < 1 {
		lo = 1
	}
	hi := i + 1 + shiftRange
	if hi > n-1 {
		hi = n - 1
	}
	activity := order[i]
	for s := lo; s < hi; s++ {
		if s == i-1 || s == i || s == i+1 {
			continue
		}
		vetoed := false
		if s > i+1 {
			for k := i + 1; k <= s; k++ {
				if in.IsDirectSuccessor(activity, order[k]) {
					vetoed = true
					break
				}
			}
		} else if s < i-1 {
			for k := s; k <= i; k++ {
				if in.IsDirectSuccessor(order[k], activity) {
					vetoed = true
					break
				}
			}
		}
		if vetoed {
			continue
		}
		out = append(out, Candidate{Kind: tabumem.Shift, I: i, ShiftTarget: s})
	}

	return out
}
