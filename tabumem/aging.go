package tabumem

import (
	"container/list"
	"math"
)

// entry is one aging-tabu record: the tabooed move and its remaining
// lifetime in aging ticks.
type entry struct {
	k    key
	life int
}

// snapshot is a point-in-time copy of the tabu list's entries, used for
// the best/secondBest elite restore.
type snapshot struct {
	entries []entry
	valid   bool
}

// Aging is the variable-size aging tabu memory with elite-snapshot
// restart (spec 4.3.2). Grounded on AdvancedTabuList.cpp/.h: its
// std::list<TabuItem> + unordered_set for O(1) membership becomes
// container/list.List + map[key]*list.Element here.
type Aging struct {
	swapLife          int
	shiftLife         int
	maxItersSinceBest int
	eraseFraction     float64

	tabu   *list.List
	index  map[key]*list.Element
	cursor *list.Element
	carry  float64 // fractional aging budget carried between calls

	itersSinceBest int
	best           snapshot
	secondBest     snapshot

	rng randSource
}

// NewAging constructs an Aging tabu memory. eraseFraction must be in [0,1].
func NewAging(maxItersSinceBest, swapLife, shiftLife int, eraseFraction float64, rng randSource) *Aging {
	return &Aging{
		swapLife:          swapLife,
		shiftLife:         shiftLife,
		maxItersSinceBest: maxItersSinceBest,
		eraseFraction:     eraseFraction,
		tabu:              list.New(),
		index:             make(map[key]*list.Element),
		rng:               rng,
	}
}

func normalize(i, j int, kind MoveKind) key {
	if kind == Shift {
		return key{i: i, j: i, kind: Shift}
	}
	return key{i: i, j: j, kind: kind}
}

func (a *Aging) lifetime(kind MoveKind) int {
	if kind == Shift {
		return a.shiftLife
	}
	return a.swapLife
}

// IsAllowed reports whether (i,j,kind) is currently absent from the
// tabu list.
func (a *Aging) IsAllowed(i, j int, kind MoveKind) bool {
	_, tabooed := a.index[normalize(i, j, kind)]
	return !tabooed
}

// Record inserts (i,j,kind) just before the aging cursor. Recording an
// already-present move is a protocol error (InvariantViolation).
func (a *Aging) Record(i, j int, kind MoveKind) {
	k := normalize(i, j, kind)
	if _, dup := a.index[k]; dup {
		panic(ErrDuplicateEntry)
	}
	e := &entry{k: k, life: a.lifetime(kind)}
	var elem *list.Element
	if a.cursor != nil {
		elem = a.tabu.InsertBefore(e, a.cursor)
	} else {
		elem = a.tabu.PushBack(e)
	}
	a.index[k] = elem
}

// OnImprovement rolls the elite snapshots and resets the stagnation counter.
func (a *Aging) OnImprovement() {
	a.secondBest = a.best
	a.best = a.snapshotCurrent()
	a.itersSinceBest = 0
}

// OnIterationEnd advances aging by ptl*|tabu|+carryover entries
// (sigmoidally accelerating with stagnation), removing any that reach
// zero lifetime, and returns how many were removed.
func (a *Aging) OnIterationEnd() int {
	a.itersSinceBest++
	if a.tabu.Len() == 0 {
		return 0
	}

	phase := float64(a.itersSinceBest) / float64(a.maxItersSinceBest)
	ptl := 1 / (1 + math.Exp(-8*phase+4))

	budget := a.carry + ptl*float64(a.tabu.Len())
	toProcess := int(budget)
	a.carry = budget - float64(toProcess)

	aged := 0
	for k := 0; k < toProcess && a.tabu.Len() > 0; k++ {
		if a.cursor == nil {
			a.cursor = a.tabu.Front()
		}
		e := a.cursor
		next := e.Next()
		if next == nil {
			next = a.tabu.Front()
		}

		ent := e.Value.(*entry)
		ent.life--
		if ent.life <= 0 {
			a.tabu.Remove(e)
			delete(a.index, ent.k)
			aged++
			if next == e {
				next = nil
			}
		}
		a.cursor = next
	}
	return aged
}

// Prune restores the tabu list from secondBest (falling back to best,
// then to the current list if neither exists), removes
// ceil(eraseFraction*len) random entries from the restored list, and
// resets cursor and counters.
func (a *Aging) Prune() {
	src := a.secondBest
	if !src.valid {
		src = a.best
	}
	if src.valid {
		a.restoreFrom(src)
	}

	toRemove := int(math.Ceil(a.eraseFraction * float64(a.tabu.Len())))
	for i := 0; i < toRemove && a.tabu.Len() > 0; i++ {
		e := a.nth(a.rng.Intn(a.tabu.Len()))
		ent := e.Value.(*entry)
		a.tabu.Remove(e)
		delete(a.index, ent.k)
	}

	a.cursor = nil
	a.carry = 0
	a.itersSinceBest = 0
}

func (a *Aging) snapshotCurrent() snapshot {
	entries := make([]entry, 0, a.tabu.Len())
	for e := a.tabu.Front(); e != nil; e = e.Next() {
		entries = append(entries, *e.Value.(*entry))
	}
	return snapshot{entries: entries, valid: true}
}

func (a *Aging) restoreFrom(s snapshot) {
	a.tabu = list.New()
	a.index = make(map[key]*list.Element)
	for i := range s.entries {
		ent := s.entries[i]
		elem := a.tabu.PushBack(&ent)
		a.index[ent.k] = elem
	}
}

func (a *Aging) nth(idx int) *list.Element {
	e := a.tabu.Front()
	for i := 0; i < idx; i++ {
		e = e.Next()
	}
	return e
}
