package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildChain constructs the S1 trivial chain: 0->1->2->3, one resource.
func buildChain(t *testing.T) *Instance {
	t.Helper()
	in, err := New(1,
		[]int{1},
		[]int{0, 3, 5, 0},
		[][]int{{0}, {1}, {1}, {0}},
		[][]int{{1}, {2}, {3}, {}},
	)
	require.NoError(t, err)
	return in
}

func TestNew_TrivialChain(t *testing.T) {
	in := buildChain(t)
	assert.Equal(t, 4, in.NumActivities())
	assert.Equal(t, 1, in.NumResources())
	assert.Equal(t, 8, in.CriticalPathMakespan())
	assert.Equal(t, []int{0, 1, 2, 3}, in.SeedOrder())
	assert.True(t, in.IsDirectSuccessor(0, 1))
	assert.False(t, in.IsDirectSuccessor(0, 2))
	assert.Equal(t, []int{1, 2, 3}, in.AllSuccessors(0))
	assert.Equal(t, []int{0, 1, 2}, in.AllPredecessors(3))
}

func TestNew_ParallelWithCapacityConflict(t *testing.T) {
	// S2: 0->1, 0->2, 1->3, 2->3; durations [0,4,3,0]; capacity 1, demand [0,1,1,0].
	in, err := New(1,
		[]int{1},
		[]int{0, 4, 3, 0},
		[][]int{{0}, {1}, {1}, {0}},
		[][]int{{1, 2}, {3}, {3}, {}},
	)
	require.NoError(t, err)
	assert.Equal(t, 4, in.CriticalPathMakespan()) // precedence alone allows 1 and 2 in parallel
	assert.True(t, in.Disjunctive(1, 2))          // resource conflict, not precedence-ordered
	assert.False(t, in.IsDirectSuccessor(1, 2))
}

func TestNew_ParallelFitsCapacity(t *testing.T) {
	// S3: same as S2 but capacity 2 - no resource conflict.
	in, err := New(1,
		[]int{2},
		[]int{0, 4, 3, 0},
		[][]int{{0}, {1}, {1}, {0}},
		[][]int{{1, 2}, {3}, {3}, {}},
	)
	require.NoError(t, err)
	assert.False(t, in.Disjunctive(1, 2))
}

func TestNew_RejectsCycle(t *testing.T) {
	_, err := New(1,
		[]int{1},
		[]int{0, 1, 1, 0},
		[][]int{{0}, {1}, {1}, {0}},
		[][]int{{1}, {2}, {1}, {}}, // 1->2->1 cycle
	)
	assert.ErrorIs(t, err, ErrNotDAG)
}

func TestNew_RejectsDemandExceedsCapacity(t *testing.T) {
	_, err := New(1,
		[]int{1},
		[]int{0, 1, 0},
		[][]int{{0}, {5}, {0}},
		[][]int{{1}, {2}, {}},
	)
	assert.ErrorIs(t, err, ErrDemandExceedsCapacity)
}

func TestNew_RejectsUnreachableSink(t *testing.T) {
	// activity 1 has no path to the sink (activity 2 is isolated from it).
	_, err := New(1,
		[]int{1},
		[]int{0, 1, 1, 0},
		[][]int{{0}, {0}, {0}, {0}},
		[][]int{{1}, {}, {3}, {}},
	)
	assert.ErrorIs(t, err, ErrSinkUnreachable)
}

func TestRightLeftLongestPath(t *testing.T) {
	in := buildChain(t)
	assert.Equal(t, 0, in.RightLeftLongestPath(3))
	assert.Equal(t, 0, in.RightLeftLongestPath(2))
	assert.Equal(t, 5, in.RightLeftLongestPath(1))
	assert.Equal(t, 8, in.RightLeftLongestPath(0))
}

func TestUpperBoundMakespan(t *testing.T) {
	in := buildChain(t)
	assert.Equal(t, 8, in.UpperBoundMakespan())
}
