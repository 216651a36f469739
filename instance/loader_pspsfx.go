package instance

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformedFormat indicates the input did not match the expected
// PSP-SFX or PSPLIB/max layout (missing header markers, wrong token
// counts, inconsistent activity ids). Mapped to a configuration failure
// (exit 1) by the command line.
var ErrMalformedFormat = errors.New("instance: malformed instance file")

// ErrEmptyInput indicates the instance file had no content at all.
var ErrEmptyInput = errors.New("instance: empty instance file")

// ParsePSPSFX parses the ProGen/PSP-SFX text format: header lines
// identified by the substrings "- renewable", "MPM-Time" and
// "#successors", followed by a 1-based successors table and a
// resource-requirements table, and finally the resource capacities.
// Activity ids in the file are 1-based; New receives 0-based ids.
func ParsePSPSFX(text string) (*Instance, error) {
	s := newLineScanner(text)

	first, ok := s.nextLine()
	if !ok {
		return nil, ErrEmptyInput
	}
	if len(first) == 0 || first[0] != '*' {
		return nil, fmt.Errorf("%w: PSP-SFX files must start with '*'", ErrMalformedFormat)
	}

	numResources := 0
	numActivities := 0
	for {
		line, ok := s.nextLine()
		if !ok {
			return nil, fmt.Errorf("%w: reached end of file before #successors header", ErrMalformedFormat)
		}
		if strings.Contains(line, "- renewable") {
			n, ok := digitsIn(line)
			if !ok || n == 0 {
				return nil, fmt.Errorf("%w: cannot read number of resources", ErrMalformedFormat)
			}
			numResources = n
		}
		if strings.Contains(line, "MPM-Time") {
			if _, ok := s.nextInt(); !ok { // shred
				return nil, fmt.Errorf("%w: cannot read number of activities", ErrMalformedFormat)
			}
			n, ok := s.nextInt()
			if !ok || n == 0 {
				return nil, fmt.Errorf("%w: cannot read number of activities", ErrMalformedFormat)
			}
			numActivities = n + 2
		}
		if strings.Contains(line, "#successors") {
			break
		}
	}
	if numActivities == 0 || numResources == 0 {
		return nil, fmt.Errorf("%w: missing resource or activity header", ErrMalformedFormat)
	}

	successors := make([][]int, numActivities)
	for a := 0; a < numActivities; a++ {
		testID, ok1 := s.nextInt()
		_, ok2 := s.nextInt() // shred (mode count, unused)
		numSucc, ok3 := s.nextInt()
		if !ok1 || !ok2 || !ok3 {
			return nil, fmt.Errorf("%w: cannot read successors of activity %d", ErrMalformedFormat, a+1)
		}
		if testID != a+1 {
			return nil, fmt.Errorf("%w: activity id mismatch (want %d, got %d)", ErrMalformedFormat, a+1, testID)
		}
		row := make([]int, numSucc)
		for i := 0; i < numSucc; i++ {
			succ, ok := s.nextInt()
			if !ok || succ < 1 || succ > numActivities {
				return nil, fmt.Errorf("%w: invalid successor id of activity %d", ErrMalformedFormat, a+1)
			}
			row[i] = succ - 1
		}
		successors[a] = row
	}

	for i := 0; i < 5; i++ {
		if _, ok := s.nextLine(); !ok {
			return nil, fmt.Errorf("%w: truncated before resource requirements table", ErrMalformedFormat)
		}
	}

	duration := make([]int, numActivities)
	demand := make([][]int, numActivities)
	for a := 0; a < numActivities; a++ {
		testID, ok1 := s.nextInt()
		_, ok2 := s.nextInt() // shred
		dur, ok3 := s.nextInt()
		if !ok1 || !ok2 || !ok3 {
			return nil, fmt.Errorf("%w: cannot read duration of activity %d", ErrMalformedFormat, a+1)
		}
		if testID != a+1 {
			return nil, fmt.Errorf("%w: activity id mismatch (want %d, got %d)", ErrMalformedFormat, a+1, testID)
		}
		duration[a] = dur

		row := make([]int, numResources)
		for r := 0; r < numResources; r++ {
			req, ok := s.nextInt()
			if !ok {
				return nil, fmt.Errorf("%w: cannot read requirement %d of activity %d", ErrMalformedFormat, r+1, a+1)
			}
			row[r] = req
		}
		demand[a] = row
	}

	for i := 0; i < 4; i++ {
		if _, ok := s.nextLine(); !ok {
			return nil, fmt.Errorf("%w: truncated before resource capacities", ErrMalformedFormat)
		}
	}

	capacity := make([]int, numResources)
	for r := 0; r < numResources; r++ {
		c, ok := s.nextInt()
		if !ok {
			return nil, fmt.Errorf("%w: cannot read capacity of resource %d", ErrMalformedFormat, r+1)
		}
		capacity[r] = c
	}

	return New(numResources, capacity, duration, demand, successors)
}

// LoadPSPSFX reads and parses a PSP-SFX instance file from r.
func LoadPSPSFX(r io.Reader) (*Instance, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParsePSPSFX(string(data))
}
