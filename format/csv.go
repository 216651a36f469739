package format

import (
	"bufio"
	"fmt"
	"io"
)

// CSVProgressWriter appends the makespan-graph rows spec 6 documents
// for --write-makespan-graph: "iter; iterCost; bestCost;" per row,
// including row 0 with the initial best (iterCost == bestCost at that
// point). Grounded on the original's -wmg graph option.
//
// The row format is a fixed, semicolon-terminated literal, not
// comma-separated/quoted CSV, so this writes through bufio+fmt rather
// than encoding/csv: csv.Writer would quote/escape fields and could not
// reproduce the literal trailing-semicolon shape the original's graph
// file uses.
type CSVProgressWriter struct {
	w   *bufio.Writer
	row int
}

// NewCSVProgressWriter wraps w and writes the header-less initial row
// (iter 0, iterCost == bestCost == initialMakespan) immediately.
func NewCSVProgressWriter(w io.Writer, initialMakespan int) *CSVProgressWriter {
	c := &CSVProgressWriter{w: bufio.NewWriter(w)}
	c.writeRow(0, initialMakespan, initialMakespan)
	return c
}

// WriteIteration appends one row for a completed search iteration.
func (c *CSVProgressWriter) WriteIteration(iter, iterCost, bestCost int) {
	c.row++
	c.writeRow(iter+1, iterCost, bestCost)
}

func (c *CSVProgressWriter) writeRow(iter, iterCost, bestCost int) {
	fmt.Fprintf(c.w, "%d; %d; %d;\n", iter, iterCost, bestCost)
}

// Flush must be called once the run completes.
func (c *CSVProgressWriter) Flush() error {
	return c.w.Flush()
}
