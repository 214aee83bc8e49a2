// Package config loads the raw build request from a YAML request file and the
// GitHub Actions INPUT_* environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	envparse "github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// InputPrefix is the prefix GitHub Actions uses for step inputs.
const InputPrefix = "INPUT_"

// Inputs is the raw, string-valued build request. Nothing here is validated;
// see build.Resolve.
type Inputs struct {
	// GitHubToken authenticates publishing.
	GitHubToken string `yaml:"github_token" env:"GITHUB_TOKEN"`
	// PackageManager is one of npm, pnpm or yarn.
	PackageManager string `yaml:"package_manager" env:"PACKAGE_MANAGER"`
	// PackageRoot is the directory containing package.json.
	PackageRoot string `yaml:"package_root" env:"PACKAGE_ROOT"`
	// BuildScriptName names a project script run before packaging.
	BuildScriptName string `yaml:"build_script_name" env:"BUILD_SCRIPT_NAME"`
	// ScriptBeforeBuild is an alias of BuildScriptName.
	ScriptBeforeBuild string `yaml:"script_before_build" env:"SCRIPT_BEFORE_BUILD"`
	// Args is appended verbatim to every packaging invocation.
	Args string `yaml:"args" env:"ARGS"`
	// Release is the legacy boolean publish switch.
	Release string `yaml:"release" env:"RELEASE"`
	// Publish is the tri-state publish intent.
	Publish string `yaml:"publish" env:"PUBLISH"`
	// ConfigPath points to a packager configuration file.
	ConfigPath string `yaml:"config_path" env:"CONFIG_PATH"`

	MacCerts             string `yaml:"mac_certs" env:"MAC_CERTS"`
	MacCertsPassword     string `yaml:"mac_certs_password" env:"MAC_CERTS_PASSWORD"`
	WindowsCerts         string `yaml:"windows_certs" env:"WINDOWS_CERTS"`
	WindowsCertsPassword string `yaml:"windows_certs_password" env:"WINDOWS_CERTS_PASSWORD"`

	LinuxArch   Lines `yaml:"linux_arch" env:"LINUX_ARCH"`
	MacArch     Lines `yaml:"mac_arch" env:"MAC_ARCH"`
	WindowsArch Lines `yaml:"windows_arch" env:"WINDOWS_ARCH"`

	// MaxAttempts bounds packaging retries.
	MaxAttempts string `yaml:"max_attempts" env:"MAX_ATTEMPTS"`
	// Platform overrides host platform detection.
	Platform string `yaml:"platform" env:"PLATFORM"`
	// EnvFiles lists .env files whose variables are passed to every invocation.
	EnvFiles Lines `yaml:"env_files" env:"ENV_FILES"`
	// LogLevel sets the log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
}

// Lines is a newline-separated list. In YAML it may also be written as a sequence.
type Lines string

// UnmarshalYAML accepts either a scalar or a sequence of scalars.
func (l *Lines) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = Lines(node.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = Lines(strings.Join(items, "\n"))
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", node.Line)
	}
}

// Load reads the optional request file at path and overlays the INPUT_*
// variables of the current process environment. Environment values win.
func Load(path string) (*Inputs, error) {
	return load(path, nil)
}

func load(path string, environ map[string]string) (*Inputs, error) {
	in := &Inputs{}
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read request file %q: %w", path, err)
		}
		if err := decode(data, in); err != nil {
			return nil, fmt.Errorf("parse request file %q: %w", path, err)
		}
	}

	opts := envparse.Options{Prefix: InputPrefix, Environment: environ}
	if err := envparse.ParseWithOptions(in, opts); err != nil {
		return nil, fmt.Errorf("parse %s* inputs: %w", InputPrefix, err)
	}
	return in, nil
}

func decode(data []byte, in *Inputs) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(in); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ScriptName returns the pre-build script, preferring build_script_name.
func (in *Inputs) ScriptName() string {
	if v := strings.TrimSpace(in.BuildScriptName); v != "" {
		return v
	}
	return strings.TrimSpace(in.ScriptBeforeBuild)
}
