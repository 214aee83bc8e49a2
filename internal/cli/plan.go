package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/appbuild/appbuildctl/internal/build"
)

// planOutput is the YAML document printed by "plan".
type planOutput struct {
	Platform    build.Platform     `yaml:"platform"`
	MaxAttempts int                `yaml:"maxAttempts"`
	Commands    []build.Invocation `yaml:"invocations"`
}

// newPlanCommand creates the "plan" subcommand that prints the invocations without running them.
func newPlanCommand(opts *Options) *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Resolve the build request and print the planned invocations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := resolveRequestFromCmd(opts, cmd, &flags)
			if err != nil {
				return err
			}
			plan, err := build.Plan(req)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(planOutput{
				Platform:    req.Platform,
				MaxAttempts: req.MaxAttempts,
				Commands:    plan,
			}); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	addRequestFlags(cmd, &flags)
	return cmd
}
