// Package tabumem implements the two interchangeable tabu-memory
// variants used by the search driver: a fixed-size FIFO list and an
// aging list with elite-snapshot restart.
package tabumem

import "errors"

// ErrDuplicateEntry is an InvariantViolation: Aging panics with it when
// Record is called for a move already present in the tabu memory
// (Simple does not check). The search driver records a move only when
// the memory allows it, so this never happens in normal driver
// operation; seeing this means a caller is misusing the memory directly.
var ErrDuplicateEntry = errors.New("tabumem: duplicate tabu entry")

// MoveKind distinguishes SWAP from SHIFT moves for tabu bookkeeping and
// per-kind lifetimes.
type MoveKind int

const (
	Swap MoveKind = iota
	Shift
)

// Memory is the contract both tabu-memory variants implement (spec 4.3).
type Memory interface {
	// IsAllowed reports whether the move (i,j,kind) may be applied
	// without penalty.
	IsAllowed(i, j int, kind MoveKind) bool

	// Record registers that (i,j,kind) was just applied.
	Record(i, j int, kind MoveKind)

	// OnImprovement notifies the memory that the driver found a new
	// global best.
	OnImprovement()

	// OnIterationEnd advances internal aging and returns the number of
	// entries aged out this call.
	OnIterationEnd() int

	// Prune forcibly thins the memory.
	Prune()
}

// key identifies a tabu entry. SHIFT moves are keyed (i,i,Shift) rather
// than (i,shiftTarget,Shift): the activity being relocated is the only
// fact worth tabooing, not the specific destination it last moved to.
type key struct {
	i, j int
	kind MoveKind
}
