package build

import "errors"

// Error kinds returned by the resolver, planner and executor.
// Callers match them with errors.Is.
var (
	// ErrConfiguration reports an invalid or incomplete build request.
	ErrConfiguration = errors.New("configuration error")
	// ErrPrecondition reports a package root that cannot be built.
	ErrPrecondition = errors.New("precondition failed")
	// ErrBuildScript reports a failed pre-build script.
	ErrBuildScript = errors.New("build script failed")
	// ErrPackaging reports a packaging invocation that exhausted its attempts.
	ErrPackaging = errors.New("packaging failed")
)
