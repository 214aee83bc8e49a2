// Package env builds the environments handed to child processes.
package env

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// Vars maps variable names to values.
type Vars map[string]string

// FromOS snapshots the current process environment.
func FromOS() Vars {
	return FromList(os.Environ())
}

// FromList parses KEY=VALUE entries. Entries without '=' are skipped.
func FromList(list []string) Vars {
	out := make(Vars, len(list))
	for _, kv := range list {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		out[key] = value
	}
	return out
}

// SetNonBlank stores value under key unless the trimmed value is empty.
// It reports whether the variable was set.
func (v Vars) SetNonBlank(key, value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	v[key] = value
	return true
}

// Keys returns the variable names in sorted order.
func (v Vars) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Environ renders the variables as sorted KEY=VALUE entries for exec.Cmd.Env.
func (v Vars) Environ() []string {
	out := make([]string, 0, len(v))
	for _, k := range v.Keys() {
		out = append(out, k+"="+v[k])
	}
	return out
}

// Merge merges several Vars maps into one, later maps overriding earlier keys.
func Merge(sets ...Vars) Vars {
	out := make(Vars)
	for _, s := range sets {
		for k, val := range s {
			out[k] = val
		}
	}
	return out
}

// LoadEnvFile parses a single .env file.
func LoadEnvFile(path string) (Vars, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	parsed, err := godotenv.Parse(f)
	if err != nil {
		return nil, err
	}
	return Vars(parsed), nil
}

// LoadEnvFiles loads .env files in order, resolving relative paths against
// baseDir. Later files override earlier ones. No files yields an empty map.
func LoadEnvFiles(baseDir string, files []string) (Vars, error) {
	result := make(Vars)
	for _, name := range files {
		if name == "" {
			continue
		}
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, name)
		}
		vars, err := LoadEnvFile(path)
		if err != nil {
			return nil, fmt.Errorf("load env file %q: %w", path, err)
		}
		result = Merge(result, vars)
	}
	return result, nil
}

// ParseInlineVars parses a comma-separated k=v list (e.g. "A=1,B=2").
func ParseInlineVars(s string) (Vars, error) {
	out := make(Vars)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid inline var %q, expected key=value", part)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("empty key in inline var %q", part)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}
