package cli

import (
	"os"
	"strings"

	envparse "github.com/caarlos0/env/v11"
)

// baseEnv defines root CLI defaults sourced from the environment.
type baseEnv struct {
	// RequestPath is the request file from APPBUILDCTL_FILE.
	RequestPath string `env:"APPBUILDCTL_FILE"`
	// LogLevel is the logging level from APPBUILDCTL_LOG_LEVEL.
	LogLevel string `env:"APPBUILDCTL_LOG_LEVEL"`
	// InputLogLevel is the log_level action input.
	InputLogLevel string `env:"INPUT_LOG_LEVEL"`
	// RunnerDebug is set by GitHub Actions when debug logging is enabled.
	RunnerDebug bool `env:"RUNNER_DEBUG"`
}

// parseEnv fills target from environment variables via caarlos0/env.
func parseEnv(target any) error {
	return envparse.Parse(target)
}

// envPresent reports whether a non-empty env var exists.
func envPresent(key string) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	return strings.TrimSpace(val) != ""
}
