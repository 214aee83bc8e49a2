// Package build resolves a declarative packaging request, plans the packager
// invocations it implies and executes them with a bounded retry policy.
package build

import (
	"fmt"
	"strings"
)

// PackagerBinary is the packager executable invoked through the package manager.
const PackagerBinary = "electron-builder"

// PackageManager identifies the JavaScript package manager used by the project.
type PackageManager string

const (
	// PackageManagerNPM selects npm.
	PackageManagerNPM PackageManager = "NPM"
	// PackageManagerPNPM selects pnpm.
	PackageManagerPNPM PackageManager = "PNPM"
	// PackageManagerYarn selects yarn.
	PackageManagerYarn PackageManager = "YARN"
)

// Commands holds the command prefixes a package manager needs.
type Commands struct {
	// RunScript runs a named script from the project manifest.
	RunScript string
	// RunPackager executes the packager binary without a global install.
	RunPackager string
}

var commandTable = map[PackageManager]Commands{
	PackageManagerNPM: {
		RunScript:   "npm run",
		RunPackager: "npx --no-install",
	},
	PackageManagerPNPM: {
		RunScript:   "pnpm run",
		RunPackager: "pnpm",
	},
	PackageManagerYarn: {
		RunScript:   "yarn run",
		RunPackager: "yarn",
	},
}

// ParsePackageManager converts a user supplied name into a PackageManager.
// Names are case-insensitive; a blank name selects npm.
func ParsePackageManager(name string) (PackageManager, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return PackageManagerNPM, nil
	}
	pm := PackageManager(strings.ToUpper(name))
	if _, ok := commandTable[pm]; !ok {
		return "", fmt.Errorf("%w: package manager %q is not supported", ErrConfiguration, name)
	}
	return pm, nil
}

// LookupCommands returns the command prefixes for the given package manager.
func LookupCommands(pm PackageManager) (Commands, error) {
	cmds, ok := commandTable[PackageManager(strings.ToUpper(string(pm)))]
	if !ok {
		return Commands{}, fmt.Errorf("%w: package manager %q is not supported", ErrConfiguration, pm)
	}
	return cmds, nil
}

// PackageManagers lists the supported package managers in a stable order.
func PackageManagers() []PackageManager {
	return []PackageManager{PackageManagerNPM, PackageManagerPNPM, PackageManagerYarn}
}
