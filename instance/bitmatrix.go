package instance

import "math/bits"

// bitMatrix is a square, bit-packed boolean matrix used for the successor
// and disjunctive relations. Rows are stored as flat []uint64 words in a
// single backing slice, the same row-major-flat-buffer idiom as
// matrix.Dense, but one bit per cell instead of one float64, since both
// relations here are pure yes/no predicates over up to a few thousand
// activities.
type bitMatrix struct {
	n            int
	wordsPerRow  int
	data         []uint64
}

// newBitMatrix returns an n x n bit matrix with every cell cleared.
func newBitMatrix(n int) *bitMatrix {
	words := (n + 63) / 64
	if words == 0 {
		words = 1
	}
	return &bitMatrix{
		n:           n,
		wordsPerRow: words,
		data:        make([]uint64, n*words),
	}
}

// Set marks cell (i,j) true.
func (m *bitMatrix) Set(i, j int) {
	idx := i*m.wordsPerRow + j/64
	m.data[idx] |= 1 << uint(j%64)
}

// Get reports whether cell (i,j) is set.
func (m *bitMatrix) Get(i, j int) bool {
	idx := i*m.wordsPerRow + j/64
	return m.data[idx]&(1<<uint(j%64)) != 0
}

// row returns the raw backing words for row i, for callers that want to
// scan or union whole rows without per-bit calls (used by transitive
// closure construction).
func (m *bitMatrix) row(i int) []uint64 {
	start := i * m.wordsPerRow
	return m.data[start : start+m.wordsPerRow]
}

// unionRowInto ORs row src into row dst (dst |= src), both identified by
// activity index. Used while accumulating transitive closures.
func (m *bitMatrix) unionRowInto(dst, src int) {
	d := m.row(dst)
	s := m.row(src)
	for w := range d {
		d[w] |= s[w]
	}
}

// setBits appends the set bit positions of row i, in ascending order, to
// out and returns the extended slice.
func (m *bitMatrix) setBits(i int, out []int) []int {
	row := m.row(i)
	for w, word := range row {
		base := w * 64
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			out = append(out, base+bit)
			word &= word - 1
		}
	}
	return out
}
