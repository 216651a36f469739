// Package instance defines the immutable project-instance model for the
// Resource-Constrained Project Scheduling Problem: activities, renewable
// resources, the precedence DAG, and every structure derived from them
// once at construction time (predecessors, transitive closures, critical
// path, right-to-left longest paths, the disjunctive matrix).
//
// Activity 0 is always the source dummy and activity N-1 the sink dummy;
// both carry zero duration and zero demand. All derived fields are
// computed in New and never mutated afterward, so a *Instance may be
// shared read-only across goroutines without synchronization.
package instance

import "errors"

// Sentinel errors for instance construction. See ConstantsRCPSP-style
// validation in the original RCPSPCpu InputReader: these are the Go
// equivalents of its fatal configuration/consistency checks.
var (
	// ErrTooFewActivities indicates fewer than 2 activities were supplied;
	// a project needs at least a source and a sink dummy.
	ErrTooFewActivities = errors.New("instance: numActivities must be >= 2")

	// ErrNoResources indicates zero resources were declared.
	ErrNoResources = errors.New("instance: numResources must be >= 1")

	// ErrBadCapacity indicates a non-positive resource capacity.
	ErrBadCapacity = errors.New("instance: resource capacity must be > 0")

	// ErrBadDuration indicates a negative activity duration.
	ErrBadDuration = errors.New("instance: activity duration must be >= 0")

	// ErrDemandExceedsCapacity indicates demand[a][r] > capacity[r].
	ErrDemandExceedsCapacity = errors.New("instance: activity demand exceeds resource capacity")

	// ErrSuccessorOutOfRange indicates a successor id outside [0, N).
	ErrSuccessorOutOfRange = errors.New("instance: successor id out of range")

	// ErrNotDAG indicates the successor graph contains a cycle.
	ErrNotDAG = errors.New("instance: successor graph is not a DAG")

	// ErrSinkUnreachable indicates some activity cannot reach the sink, or
	// the source cannot reach some activity - the graph is not a single
	// connected project network.
	ErrSinkUnreachable = errors.New("instance: sink unreachable from some activity")
)

// Instance is the immutable, derived-and-frozen project description that
// every evaluator and the search driver read concurrently without locks.
type Instance struct {
	// --- Raw, caller-supplied data -----------------------------------

	numActivities int
	numResources  int

	capacity []int   // capacity[r], length numResources
	duration []int   // duration[a], length numActivities
	demand   [][]int // demand[a][r], length numActivities x numResources

	successors [][]int // successors[a], ordered, distinct activity ids

	// --- Derived on construction, frozen -------------------------------

	predecessors [][]int // reverse edges of successors

	successorMat  *bitMatrix // successorMat.Get(i,j) iff j is a direct successor of i
	disjunctiveMat *bitMatrix // disjunctiveMat.Get(i,j) iff i,j cannot run concurrently

	allSuccessors   [][]int // sorted transitive closure (successors) per activity
	allPredecessors [][]int // sorted transitive closure (predecessors) per activity

	criticalPathMakespan int   // longest source->sink path, edges weighted by tail duration
	rightLeftLongestPath []int // longest path from a to sink in the edge-reversed graph
	upperBoundMakespan   int   // sum of all durations

	seedOrder []int // topological seed order (ascending level, ties by ascending id)
}

// NumActivities returns N (source 0 .. sink N-1).
func (in *Instance) NumActivities() int { return in.numActivities }

// NumResources returns R.
func (in *Instance) NumResources() int { return in.numResources }

// Capacity returns the capacity of resource r.
func (in *Instance) Capacity(r int) int { return in.capacity[r] }

// Duration returns the duration of activity a.
func (in *Instance) Duration(a int) int { return in.duration[a] }

// Demand returns activity a's demand on resource r.
func (in *Instance) Demand(a, r int) int { return in.demand[a][r] }

// DemandRow returns activity a's full per-resource demand row. The
// returned slice is the instance's own backing array and must not be
// mutated by callers.
func (in *Instance) DemandRow(a int) []int { return in.demand[a] }

// Successors returns the direct successors of activity a. The returned
// slice must not be mutated.
func (in *Instance) Successors(a int) []int { return in.successors[a] }

// Predecessors returns the direct predecessors of activity a. The
// returned slice must not be mutated.
func (in *Instance) Predecessors(a int) []int { return in.predecessors[a] }

// AllSuccessors returns the sorted transitive closure of successors of a.
func (in *Instance) AllSuccessors(a int) []int { return in.allSuccessors[a] }

// AllPredecessors returns the sorted transitive closure of predecessors of a.
func (in *Instance) AllPredecessors(a int) []int { return in.allPredecessors[a] }

// IsDirectSuccessor reports whether j is a direct successor of i.
func (in *Instance) IsDirectSuccessor(i, j int) bool { return in.successorMat.Get(i, j) }

// Disjunctive reports whether i and j can never run concurrently, either
// because one is a transitive successor of the other or because they
// jointly over-demand some resource.
func (in *Instance) Disjunctive(i, j int) bool { return in.disjunctiveMat.Get(i, j) }

// CriticalPathMakespan is the lower bound on makespan from precedence
// alone (longest source->sink path weighted by tail duration).
func (in *Instance) CriticalPathMakespan() int { return in.criticalPathMakespan }

// RightLeftLongestPath returns the longest path from a to the sink in the
// edge-reversed graph - the admissible tail bound used by the overhang
// penalty (spec 4.5).
func (in *Instance) RightLeftLongestPath(a int) int { return in.rightLeftLongestPath[a] }

// UpperBoundMakespan is the sum of all activity durations, used to size
// time-indexed resource profiles in the time-resolution evaluator.
func (in *Instance) UpperBoundMakespan() int { return in.upperBoundMakespan }

// SeedOrder returns a fresh copy of the topological seed order: activities
// listed in ascending BFS level, ties broken by ascending id. Used only
// as the search driver's starting feasible order.
func (in *Instance) SeedOrder() []int {
	out := make([]int, len(in.seedOrder))
	copy(out, in.seedOrder)
	return out
}

// Source returns the id of the source dummy activity (always 0).
func (in *Instance) Source() int { return 0 }

// Sink returns the id of the sink dummy activity (always N-1).
func (in *Instance) Sink() int { return in.numActivities - 1 }
