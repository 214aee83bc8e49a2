package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/appbuild/appbuildctl/internal/build"
	"github.com/appbuild/appbuildctl/internal/ghoutput"
	"github.com/appbuild/appbuildctl/internal/runner"
)

// newBuildCommand creates the "build" subcommand that runs the packaging plan.
func newBuildCommand(opts *Options) *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run the pre-build script and electron-builder for the requested platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			req, err := resolveRequestFromCmd(opts, cmd, &flags)
			if err != nil {
				return err
			}
			plan, err := build.Plan(req)
			if err != nil {
				return err
			}
			logger.Info("build planned",
				"packageManager", req.PackageManager,
				"platform", req.Platform,
				"invocations", len(plan),
				"maxAttempts", req.MaxAttempts,
			)

			executor := build.NewExecutor(runner.New(), logger,
				build.WithMaxAttempts(req.MaxAttempts),
				build.WithSecrets(req.Credentials.Secrets()...),
			)
			report, err := executor.Execute(cmd.Context(), plan)
			if err != nil {
				return err
			}
			logger.Info("build finished", "invocations", len(report.Steps), "attempts", report.Attempts())

			return ghoutput.Write(map[string]string{
				"platform":      string(req.Platform),
				"architectures": strings.Join(req.ActiveArchitectures(), "\n"),
				"invocations":   strconv.Itoa(len(report.Steps)),
				"attempts":      strconv.Itoa(report.Attempts()),
			})
		},
	}

	addRequestFlags(cmd, &flags)
	return cmd
}
