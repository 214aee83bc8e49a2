package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/appbuild/appbuildctl/internal/config"
)

// requestFlags holds the request overrides accepted on the command line.
type requestFlags struct {
	packageRoot    string
	packageManager string
	platform       string
	maxAttempts    int
	inlineEnv      string
}

func addRequestFlags(cmd *cobra.Command, f *requestFlags) {
	cmd.Flags().StringVar(&f.packageRoot, "package-root", ".", "Directory containing package.json")
	cmd.Flags().StringVar(&f.packageManager, "package-manager", "npm", "Package manager (npm, pnpm, yarn)")
	cmd.Flags().StringVar(&f.platform, "platform", "", "Target platform (linux, mac, windows); defaults to the host")
	cmd.Flags().IntVar(&f.maxAttempts, "max-attempts", 1, "Attempts per packaging invocation")
	cmd.Flags().StringVar(&f.inlineEnv, "env", "", "Additional environment for every invocation in k=v,k2=v2 format")
}

// apply overwrites inputs with the flags that were explicitly set.
func (f *requestFlags) apply(cmd *cobra.Command, in *config.Inputs) {
	if cmd.Flags().Changed("package-root") {
		in.PackageRoot = f.packageRoot
	}
	if cmd.Flags().Changed("package-manager") {
		in.PackageManager = f.packageManager
	}
	if cmd.Flags().Changed("platform") {
		in.Platform = f.platform
	}
	if cmd.Flags().Changed("max-attempts") {
		in.MaxAttempts = strconv.Itoa(f.maxAttempts)
	}
}
