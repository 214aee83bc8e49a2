package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/appbuild/appbuildctl/internal/build"
	"github.com/appbuild/appbuildctl/internal/config"
	"github.com/appbuild/appbuildctl/internal/env"
)

// hostOS is swapped in tests.
var hostOS = runtime.GOOS

// resolveRequestFromCmd loads inputs, applies flag overrides and resolves them into a request.
func resolveRequestFromCmd(opts *Options, cmd *cobra.Command, flags *requestFlags) (build.Request, error) {
	in, err := config.Load(opts.RequestPath)
	if err != nil {
		return build.Request{}, fmt.Errorf("%w: %w", build.ErrConfiguration, err)
	}
	flags.apply(cmd, in)

	inlineEnv, err := env.ParseInlineVars(flags.inlineEnv)
	if err != nil {
		return build.Request{}, fmt.Errorf("%w: --env: %w", build.ErrConfiguration, err)
	}

	req, err := build.Resolve(*in, hostOS)
	if err != nil {
		return build.Request{}, err
	}
	req.ExtraEnv = env.Merge(req.ExtraEnv, inlineEnv)
	return req, nil
}
