package format

import (
	"fmt"
	"io"
	"time"
)

// Schedule is the minimal view PrintSchedule needs of a solved
// instance — deliberately independent of package rcpsp's Result type
// so format has no import-cycle back onto the dispatcher package that
// already imports format for instance loading.
type Schedule struct {
	BestOrder            []int
	BestStart            []int
	BestMakespan         int
	CriticalPathMakespan int
	PrecedencePenalty    int
	EvalCount            int
}

// PrintSchedule writes either the verbose single-instance schedule
// (activities grouped by shared start time, plus a summary block) or
// the one-line multi-instance summary spec 6 documents, grounded on
// ScheduleSolver::printSchedule/printBestSchedule.
//
// Activity ids are printed 1-based within the grouping, matching the
// original's scheduleOrder[i]+1 convention.
func PrintSchedule(w io.Writer, sched Schedule, elapsed time.Duration, verbose bool) {
	if verbose {
		printVerbose(w, sched, elapsed)
		return
	}
	// Multi-instance summary line (spec 6):
	// <len>+<precPenalty> <cpLB> [<sec> s] <evalCount>
	fmt.Fprintf(w, "%d+%d %d [%s s] %d\n",
		sched.BestMakespan, sched.PrecedencePenalty, sched.CriticalPathMakespan,
		formatSeconds(elapsed), sched.EvalCount)
}

func printVerbose(w io.Writer, sched Schedule, elapsed time.Duration) {
	fmt.Fprintln(w, "start\tactivities")

	lastStart := -1
	for _, a := range sched.BestOrder {
		st := sched.BestStart[a]
		if st != lastStart {
			if lastStart != -1 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%d:\t%d", st, a+1)
			lastStart = st
		} else {
			fmt.Fprintf(w, " %d", a+1)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Schedule length: %d\n", sched.BestMakespan)
	fmt.Fprintf(w, "Precedence penalty: %d\n", sched.PrecedencePenalty)
	fmt.Fprintf(w, "Schedule solve time: %s s\n", formatSeconds(elapsed))
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
