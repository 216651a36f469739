package instance

import (
	"fmt"
	"io"
)

// ParsePSPLIB parses the ProGen/max 1.0 text format: a first line
// "numActivities numResources _ _", then a 0-based successors table in
// id order, then a resource-requirements table, then the resource
// capacities. Unlike PSP-SFX, activity ids here are already 0-based.
func ParsePSPLIB(text string) (*Instance, error) {
	s := newLineScanner(text)

	numActivitiesRaw, ok1 := s.nextInt()
	numResources, ok2 := s.nextInt()
	_, ok3 := s.nextInt() // ignored field
	_, ok4 := s.nextInt() // ignored field
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, fmt.Errorf("%w: cannot read activity/resource counts", ErrMalformedFormat)
	}
	if numActivitiesRaw == 0 || numResources == 0 {
		return nil, fmt.Errorf("%w: activity and resource counts must be positive", ErrMalformedFormat)
	}
	numActivities := numActivitiesRaw + 2

	successors := make([][]int, numActivities)
	for a := 0; a < numActivities; a++ {
		testID, ok1 := s.nextInt()
		numSucc, ok2 := s.nextInt()
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: cannot read number of successors of activity %d", ErrMalformedFormat, a)
		}
		if testID != a {
			return nil, fmt.Errorf("%w: activity id mismatch (want %d, got %d)", ErrMalformedFormat, a, testID)
		}
		row := make([]int, numSucc)
		for i := 0; i < numSucc; i++ {
			succ, ok := s.nextInt()
			if !ok || succ < 0 || succ >= numActivities {
				return nil, fmt.Errorf("%w: invalid successor id of activity %d", ErrMalformedFormat, a)
			}
			row[i] = succ
		}
		successors[a] = row
	}

	duration := make([]int, numActivities)
	demand := make([][]int, numActivities)
	for a := 0; a < numActivities; a++ {
		testID, ok1 := s.nextInt()
		dur, ok2 := s.nextInt()
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: cannot read duration of activity %d", ErrMalformedFormat, a)
		}
		if testID != a {
			return nil, fmt.Errorf("%w: activity id mismatch (want %d, got %d)", ErrMalformedFormat, a, testID)
		}
		duration[a] = dur

		row := make([]int, numResources)
		for r := 0; r < numResources; r++ {
			req, ok := s.nextInt()
			if !ok {
				return nil, fmt.Errorf("%w: cannot read requirement %d of activity %d", ErrMalformedFormat, r, a)
			}
			row[r] = req
		}
		demand[a] = row
	}

	capacity := make([]int, numResources)
	for r := 0; r < numResources; r++ {
		c, ok := s.nextInt()
		if !ok {
			return nil, fmt.Errorf("%w: cannot read capacity of resource %d", ErrMalformedFormat, r)
		}
		capacity[r] = c
	}

	return New(numResources, capacity, duration, demand, successors)
}

// LoadPSPLIB reads and parses a PSPLIB/max instance file from r.
func LoadPSPLIB(r io.Reader) (*Instance, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParsePSPLIB(string(data))
}
