package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pspsfxChain = `************************************************************************
file with basedata            : test.bas
initial value random generator: 1
projects                      :  1
jobs (incl. supersource/sink ):  4
horizon                       :  8
RELDATE                       :  0
PROGRAM                       :  rcpsp
- renewable                 :  1   R
- nonrenewable               :  0   N
- doubly constrained         :  0   D
************************************************************************
PROJECT INFORMATION:
pronr.  #jobs rel.date duedate tardcost  MPM-Time
   1      2      0       8       0       8
************************************************************************
PRECEDENCE RELATIONS:
jobnr.    #modes  #successors   successors
   1        1          1           2
   2        1          1           3
   3        1          1           4
   4        1          0

************************************************************************
REQUESTS/DURATIONS:
jobnr. mode duration  R 1
------------------------------------------------------------------------
  1      1     0       0
  2      1     3       1
  3      1     5       1
  4      1     0       0

************************************************************************
RESOURCEAVAILABILITIES:
  R 1
    1
************************************************************************
`

const psplibChain = `2 1 0 0
0 1 1
1 1 2
2 1 3
3 0
0 0 0
1 3 1
2 5 1
3 0 0
1
`

func TestParsePSPSFX_Chain(t *testing.T) {
	in, err := ParsePSPSFX(pspsfxChain)
	require.NoError(t, err)
	assert.Equal(t, 4, in.NumActivities())
	assert.Equal(t, 1, in.NumResources())
	assert.Equal(t, 8, in.CriticalPathMakespan())
	assert.Equal(t, []int{1, 2, 3}, in.AllSuccessors(0))
}

func TestParsePSPLIB_Chain(t *testing.T) {
	in, err := ParsePSPLIB(psplibChain)
	require.NoError(t, err)
	assert.Equal(t, 4, in.NumActivities())
	assert.Equal(t, 1, in.NumResources())
	assert.Equal(t, 8, in.CriticalPathMakespan())
}

func TestParse_DispatchesOnLeadingStar(t *testing.T) {
	in, err := Parse(pspsfxChain)
	require.NoError(t, err)
	assert.Equal(t, 4, in.NumActivities())

	in, err = Parse(psplibChain)
	require.NoError(t, err)
	assert.Equal(t, 4, in.NumActivities())
}

func TestParse_RejectsEmptyInput(t *testing.T) {
	_, err := Parse("")
	assert.ErrorIs(t, err, ErrEmptyInput)
}
