// Package format covers every on-disk representation rcpsp-tabu reads
// or writes: the two instance-file grammars (thin wrappers over
// instance's own parsers), the binary .res result file, the .csv
// makespan-graph progress sink, and the verbose/summary schedule
// printer (spec 6).
package format

import "github.com/hlidacpes/rcpsp/instance"

// LoadPSPSFX parses the ProGen/PSP-SFX text format. Delegates entirely
// to instance.ParsePSPSFX; kept as its own entry point so callers that
// already know the format (rather than sniffing it) can skip Load's
// first-line dispatch.
func LoadPSPSFX(text string) (*instance.Instance, error) {
	return instance.ParsePSPSFX(text)
}

// Load reads path and parses it with whichever grammar its first line
// identifies (instance.LoadFile's sniff: a leading '*' selects
// PSP-SFX, anything else selects PSPLIB/max).
func Load(path string) (*instance.Instance, error) {
	return instance.LoadFile(path)
}
