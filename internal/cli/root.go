// Package cli defines the command-line interface for appbuildctl.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/appbuild/appbuildctl/internal/logging"
)

// Options stores global CLI options shared between commands.
type Options struct {
	// RequestPath is an optional YAML build request file.
	RequestPath string
	LogLevel    logging.Level
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootCmd := newRootCommand(&Options{LogLevel: logging.LevelInfo}, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appbuildctl",
		Short: "appbuildctl packages Electron applications in CI",
		Long: "appbuildctl turns a declarative build request (GitHub Actions inputs, a YAML request file or flags) " +
			"into electron-builder invocations, one per requested architecture, and retries failed packaging runs.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			base := baseEnv{}
			if err := parseEnv(&base); err != nil {
				return err
			}
			if !cmd.Flags().Changed("file") && envPresent("APPBUILDCTL_FILE") {
				opts.RequestPath = base.RequestPath
			}

			levelName := cmd.Flag("log-level").Value.String()
			if !cmd.Flags().Changed("log-level") {
				switch {
				case base.RunnerDebug:
					levelName = "debug"
				case envPresent("APPBUILDCTL_LOG_LEVEL"):
					levelName = base.LogLevel
				case envPresent("INPUT_LOG_LEVEL"):
					levelName = base.InputLogLevel
				}
			}
			level := logging.ParseLevel(levelName)
			opts.LogLevel = level
			logger = logging.NewLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.RequestPath, "file", "f", "", "Path to a YAML build request (INPUT_* variables override it)")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newBuildCommand(opts),
		newPlanCommand(opts),
	)

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
