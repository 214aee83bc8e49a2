package main

import (
	"os"

	"github.com/appbuild/appbuildctl/internal/cli"
	"github.com/appbuild/appbuildctl/internal/logging"
)

// main is the entry point for the appbuildctl CLI binary.
func main() {
	logger := logging.NewLogger(os.Stderr, logging.LevelInfo)
	if err := cli.Execute(os.Args[1:], logger); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(cli.ExitCode(err))
	}
}
