package instance

import "strings"

// lineScanner replays the mixed getline/operator>> reading style of the
// original ProGen readers: header search scans whole lines, while numeric
// fields are pulled as whitespace-delimited tokens that may span several
// lines. Both loaders share it.
type lineScanner struct {
	lines []string
	li    int
	queue []string
}

func newLineScanner(text string) *lineScanner {
	return &lineScanner{lines: strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")}
}

// nextLine returns the next raw line, or ok=false at end of input. Any
// tokens still queued from a partially consumed line are discarded, the
// same way a fresh getline would jump past whatever operator>> left behind.
func (s *lineScanner) nextLine() (string, bool) {
	s.queue = nil
	if s.li >= len(s.lines) {
		return "", false
	}
	line := s.lines[s.li]
	s.li++
	return line, true
}

// nextToken returns the next whitespace-delimited token, pulling and
// splitting further lines as needed.
func (s *lineScanner) nextToken() (string, bool) {
	for len(s.queue) == 0 {
		line, ok := s.nextLine()
		if !ok {
			return "", false
		}
		s.queue = strings.Fields(line)
	}
	tok := s.queue[0]
	s.queue = s.queue[1:]
	return tok, true
}

func (s *lineScanner) nextInt() (int, bool) {
	tok, ok := s.nextToken()
	if !ok {
		return 0, false
	}
	n := 0
	neg := false
	started := false
	for i, r := range tok {
		if i == 0 && r == '-' {
			neg = true
			continue
		}
		if r < '0' || r > '9' {
			return 0, false
		}
		started = true
		n = n*10 + int(r-'0')
	}
	if !started {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// digitsIn extracts every decimal digit in s, in order, and returns the
// number they spell out (used to pull the resource count out of a line
// like "- renewable                      :  3   R").
func digitsIn(s string) (int, bool) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n := 0
	for _, r := range b.String() {
		n = n*10 + int(r-'0')
	}
	return n, true
}
