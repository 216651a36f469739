package format

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hlidacpes/rcpsp/instance"
)

// WriteResultFile writes the binary .res layout spec 6 documents:
// numActivities, numResources (each u32 little-endian), then
// duration[], capacity[], demand[a][] per activity, numSuccessors[],
// successors[a][], numPredecessors[], predecessors[a][], then
// bestMakespan (u32), bestOrder[], startTimeById[] — every integer
// field u32 little-endian, matching the original's
// writeBestScheduleToFile.
func WriteResultFile(w io.Writer, in *instance.Instance, bestOrder, startTimeById []int, bestMakespan int) error {
	n := in.NumActivities()
	r := in.NumResources()

	u32 := func(v int) error {
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(v))
		_, err := w.Write(buf[:])
		return err
	}
	u32Slice := func(vals []int) error {
		for _, v := range vals {
			if err := u32(v); err != nil {
				return err
			}
		}
		return nil
	}

	if err := u32(n); err != nil {
		return err
	}
	if err := u32(r); err != nil {
		return err
	}

	for a := 0; a < n; a++ {
		if err := u32(in.Duration(a)); err != nil {
			return err
		}
	}
	for res := 0; res < r; res++ {
		if err := u32(in.Capacity(res)); err != nil {
			return err
		}
	}
	for a := 0; a < n; a++ {
		if err := u32Slice(in.DemandRow(a)); err != nil {
			return err
		}
	}

	for a := 0; a < n; a++ {
		succ := in.Successors(a)
		if err := u32(len(succ)); err != nil {
			return err
		}
	}
	for a := 0; a < n; a++ {
		if err := u32Slice(in.Successors(a)); err != nil {
			return err
		}
	}
	for a := 0; a < n; a++ {
		pred := in.Predecessors(a)
		if err := u32(len(pred)); err != nil {
			return err
		}
	}
	for a := 0; a < n; a++ {
		if err := u32Slice(in.Predecessors(a)); err != nil {
			return err
		}
	}

	if err := u32(bestMakespan); err != nil {
		return err
	}
	if err := u32Slice(bestOrder); err != nil {
		return err
	}
	if err := u32Slice(startTimeById); err != nil {
		return err
	}

	return nil
}

// ReadResultFile reads the layout WriteResultFile produces back into
// plain slices, for tests and for tooling that inspects a prior run's
// .res file without re-solving.
func ReadResultFile(r io.Reader) (bestOrder, startTimeById []int, bestMakespan int, err error) {
	readU32 := func() (int, error) {
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		return int(binary.LittleEndian.Uint32(buf[:])), nil
	}
	readU32Slice := func(count int) ([]int, error) {
		out := make([]int, count)
		for i := range out {
			v, err := readU32()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	n, err := readU32()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("format: reading numActivities: %w", err)
	}
	numResources, err := readU32()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("format: reading numResources: %w", err)
	}

	if _, err := readU32Slice(n); err != nil { // duration[]
		return nil, nil, 0, err
	}
	if _, err := readU32Slice(numResources); err != nil { // capacity[]
		return nil, nil, 0, err
	}
	for a := 0; a < n; a++ { // demand[a][]
		if _, err := readU32Slice(numResources); err != nil {
			return nil, nil, 0, err
		}
	}

	numSuccessors := make([]int, n)
	for a := 0; a < n; a++ {
		numSuccessors[a], err = readU32()
		if err != nil {
			return nil, nil, 0, err
		}
	}
	for a := 0; a < n; a++ {
		if _, err := readU32Slice(numSuccessors[a]); err != nil {
			return nil, nil, 0, err
		}
	}

	numPredecessors := make([]int, n)
	for a := 0; a < n; a++ {
		numPredecessors[a], err = readU32()
		if err != nil {
			return nil, nil, 0, err
		}
	}
	for a := 0; a < n; a++ {
		if _, err := readU32Slice(numPredecessors[a]); err != nil {
			return nil, nil, 0, err
		}
	}

	bestMakespan, err = readU32()
	if err != nil {
		return nil, nil, 0, err
	}
	bestOrder, err = readU32Slice(n)
	if err != nil {
		return nil, nil, 0, err
	}
	startTimeById, err = readU32Slice(n)
	if err != nil {
		return nil, nil, 0, err
	}

	return bestOrder, startTimeById, bestMakespan, nil
}
