// Package ghoutput records GitHub Actions step outputs.
package ghoutput

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// FileEnv names the variable holding the step output file path.
const FileEnv = "GITHUB_OUTPUT"

// Write appends outputs to the file named by GITHUB_OUTPUT. Outside of
// GitHub Actions, where the variable is unset, it does nothing.
func Write(values map[string]string) error {
	path := strings.TrimSpace(os.Getenv(FileEnv))
	if path == "" || len(values) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open %s: %w", FileEnv, err)
	}
	defer func() { _ = f.Close() }()

	return Encode(f, values)
}

// Encode writes outputs sorted by key. Multi-line values use the heredoc form.
func Encode(w io.Writer, values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		if strings.TrimSpace(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := values[key]
		var err error
		if strings.ContainsAny(value, "\r\n") {
			delim := delimiter(value)
			_, err = fmt.Fprintf(w, "%s<<%s\n%s\n%s\n", key, delim, value, delim)
		} else {
			_, err = fmt.Fprintf(w, "%s=%s\n", key, value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// delimiter picks a heredoc delimiter that does not occur in value.
func delimiter(value string) string {
	delim := "APPBUILDCTL_EOF"
	for i := 1; strings.Contains(value, delim); i++ {
		delim = fmt.Sprintf("APPBUILDCTL_EOF_%d", i)
	}
	return delim
}
