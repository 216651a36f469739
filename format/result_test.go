package format

import (
	"bytes"
	"testing"

	"github.com/hlidacpes/rcpsp/instance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultFile_RoundTrip(t *testing.T) {
	in, err := instance.New(1, []int{1}, []int{0, 3, 5, 0},
		[][]int{{0}, {1}, {1}, {0}}, [][]int{{1}, {2}, {3}, {}})
	require.NoError(t, err)

	order := []int{0, 1, 2, 3}
	start := []int{0, 0, 3, 8}

	var buf bytes.Buffer
	require.NoError(t, WriteResultFile(&buf, in, order, start, 8))

	gotOrder, gotStart, gotMakespan, err := ReadResultFile(&buf)
	require.NoError(t, err)

	assert.Equal(t, order, gotOrder)
	assert.Equal(t, start, gotStart)
	assert.Equal(t, 8, gotMakespan)
}
