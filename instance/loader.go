package instance

import (
	"io"
	"os"
	"strings"
)

// LoadFile reads path and parses it as whichever of the two supported
// formats its first line identifies: a leading '*' selects PSP-SFX,
// anything else non-empty selects PSPLIB/max.
func LoadFile(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// Parse dispatches text to ParsePSPSFX or ParsePSPLIB based on its first
// line, the same sniff the original reader performs.
func Parse(text string) (*Instance, error) {
	firstLine, _, _ := strings.Cut(text, "\n")
	firstLine = strings.TrimRight(firstLine, "\r")
	if firstLine == "" {
		return nil, ErrEmptyInput
	}
	if firstLine[0] == '*' {
		return ParsePSPSFX(text)
	}
	return ParsePSPLIB(text)
}

// Load reads and dispatches from an io.Reader.
func Load(r io.Reader) (*Instance, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}
