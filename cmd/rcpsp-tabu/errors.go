package main

import (
	"errors"

	"github.com/hlidacpes/rcpsp/instance"
)

// errConfig is the ConfigError sentinel: malformed flags, unreadable
// instance files, bad file syntax. Wrapped errors surface through
// Execute as exit code 1.
var errConfig = errors.New("rcpsp-tabu: configuration error")

// errInstance is the InstanceError sentinel: the file parsed fine but
// describes a structurally invalid project (a cycle, over-demanded
// resource, dangling successor id, ...). Wrapped errors surface through
// Execute as exit code 2, distinct from errConfig's exit code 1.
var errInstance = errors.New("rcpsp-tabu: invalid instance")

// instanceSentinels lists every error instance.New can return for a
// structurally invalid project, so isInstanceError can tell "malformed
// file" (ConfigError, exit 1) apart from "well-formed file, invalid
// project" (InstanceError, exit 2).
var instanceSentinels = []error{
	instance.ErrTooFewActivities,
	instance.ErrNoResources,
	instance.ErrBadCapacity,
	instance.ErrBadDuration,
	instance.ErrDemandExceedsCapacity,
	instance.ErrSuccessorOutOfRange,
	instance.ErrNotDAG,
	instance.ErrSinkUnreachable,
}

// isInstanceError reports whether err wraps one of instance.New's
// validation sentinels, as opposed to a parse/IO failure.
func isInstanceError(err error) bool {
	for _, sentinel := range instanceSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
