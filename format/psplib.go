package format

import "github.com/hlidacpes/rcpsp/instance"

// LoadPSPLIB parses the ProGen/max 1.0 text format. Delegates entirely
// to instance.ParsePSPLIB.
func LoadPSPLIB(text string) (*instance.Instance, error) {
	return instance.ParsePSPLIB(text)
}
