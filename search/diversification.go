package search

import (
	"math/rand"

	"github.com/hlidacpes/rcpsp/instance"
)

// Diversify performs up to swaps random precedence-feasible swaps on
// order in place (spec §4.5), accepting a swap only when it keeps every
// precedence edge, the same condition the driver's neighborhood
// generator enforces: order[lo] and order[hi] may be exchanged only if
// no activity in between is a direct predecessor of the one at the
// higher position or a direct successor of the one at the lower
// position. Positions 0 and len(order)-1 (source and sink) are never
// touched.
func Diversify(in *instance.Instance, order []int, rng *rand.Rand, swaps int) {
	n := len(order)
	if n <= 3 {
		return
	}
	for s := 0; s < swaps; s++ {
		lo := 1 + rng.Intn(n-2)
		hi := 1 + rng.Intn(n-2)
		if lo == hi {
			continue
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		if !precedenceFreeSwap(in, order, lo, hi) {
			continue
		}
		order[lo], order[hi] = order[hi], order[lo]
	}
}

// precedenceFreeSwap reports whether swapping order[lo] and order[hi]
// (lo < hi) would preserve every precedence edge: no activity at
// positions lo..hi-1 may be a direct predecessor of order[hi], and no
// activity at positions lo+1..hi may be a direct successor of order[lo].
func precedenceFreeSwap(in *instance.Instance, order []int, lo, hi int) bool {
	for k := lo; k < hi; k++ {
		if in.IsDirectSuccessor(order[k], order[hi]) {
			return false
		}
	}
	for k := lo + 1; k <= hi; k++ {
		if in.IsDirectSuccessor(order[lo], order[k]) {
			return false
		}
	}
	return true
}
