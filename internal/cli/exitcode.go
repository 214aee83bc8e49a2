package cli

import (
	"errors"

	"github.com/appbuild/appbuildctl/internal/build"
)

// Exit codes returned by the appbuildctl binary.
const (
	ExitSuccess = 0
	// ExitFailure indicates a failed build script or packaging run.
	ExitFailure = 1
	// ExitConfigError indicates an invalid request or a missing package.json.
	ExitConfigError = 2
)

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, build.ErrConfiguration), errors.Is(err, build.ErrPrecondition):
		return ExitConfigError
	default:
		return ExitFailure
	}
}
