package build

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/appbuild/appbuildctl/internal/config"
	"github.com/appbuild/appbuildctl/internal/env"
)

// ManifestFile is the project descriptor that must exist in the package root.
const ManifestFile = "package.json"

// Platform is a packager target platform.
type Platform string

const (
	PlatformLinux   Platform = "linux"
	PlatformMac     Platform = "mac"
	PlatformWindows Platform = "windows"
)

// PublishMode is the publish intent rendered into packaging invocations.
type PublishMode int

const (
	// PublishNever renders "--publish never".
	PublishNever PublishMode = iota
	// PublishAlways renders "--publish always".
	PublishAlways
	// PublishOmitted renders nothing; it is what a legacy release=false resolves to.
	PublishOmitted
)

// String returns the packager's name for the mode.
func (m PublishMode) String() string {
	switch m {
	case PublishAlways:
		return "always"
	case PublishNever:
		return "never"
	default:
		return ""
	}
}

// Certificate is a code-signing certificate reference and its password.
type Certificate struct {
	Link     string
	Password string
}

// Credentials holds the secrets handed to the packager.
type Credentials struct {
	GitHubToken string
	Mac         Certificate
	Windows     Certificate
}

// Secrets lists the non-blank secret values, for masking in logs.
func (c Credentials) Secrets() []string {
	var out []string
	for _, s := range []string{c.GitHubToken, c.Mac.Link, c.Mac.Password, c.Windows.Link, c.Windows.Password} {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// Request is a validated build request. It is built once per run and not modified.
type Request struct {
	PackageManager PackageManager
	PackageRoot    string
	Platform       Platform
	// Architectures holds the per-platform architecture lists in declared order.
	Architectures     map[Platform][]string
	Credentials       Credentials
	ScriptBeforeBuild string
	Publish           PublishMode
	ExtraArgs         string
	ConfigPath        string
	MaxAttempts       int
	// ExtraEnv is passed to every invocation.
	ExtraEnv env.Vars
}

// ActiveArchitectures returns the architectures requested for the platform being built.
func (r Request) ActiveArchitectures() []string {
	return r.Architectures[r.Platform]
}

// Resolve validates raw inputs and produces a Request. hostOS is a GOOS value;
// pass runtime.GOOS outside of tests. No subprocess is started.
func Resolve(in config.Inputs, hostOS string) (Request, error) {
	pm, err := ParsePackageManager(in.PackageManager)
	if err != nil {
		return Request{}, err
	}

	token := strings.TrimSpace(in.GitHubToken)
	if token == "" {
		return Request{}, fmt.Errorf("%w: github_token is required", ErrConfiguration)
	}

	platform, err := resolvePlatform(in.Platform, hostOS)
	if err != nil {
		return Request{}, err
	}

	attempts, err := parseMaxAttempts(in.MaxAttempts)
	if err != nil {
		return Request{}, err
	}

	publish, err := resolvePublish(in.Publish, in.Release)
	if err != nil {
		return Request{}, err
	}

	root := strings.TrimSpace(in.PackageRoot)
	if root == "" {
		root = "."
	}
	if err := checkManifest(root); err != nil {
		return Request{}, err
	}

	extraEnv, err := env.LoadEnvFiles(root, SplitLines(string(in.EnvFiles)))
	if err != nil {
		return Request{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return Request{
		PackageManager: pm,
		PackageRoot:    root,
		Platform:       platform,
		Architectures: map[Platform][]string{
			PlatformLinux:   SplitLines(string(in.LinuxArch)),
			PlatformMac:     SplitLines(string(in.MacArch)),
			PlatformWindows: SplitLines(string(in.WindowsArch)),
		},
		Credentials: Credentials{
			GitHubToken: token,
			Mac:         Certificate{Link: in.MacCerts, Password: in.MacCertsPassword},
			Windows:     Certificate{Link: in.WindowsCerts, Password: in.WindowsCertsPassword},
		},
		ScriptBeforeBuild: in.ScriptName(),
		Publish:           publish,
		ExtraArgs:         strings.TrimSpace(in.Args),
		ConfigPath:        strings.TrimSpace(in.ConfigPath),
		MaxAttempts:       attempts,
		ExtraEnv:          extraEnv,
	}, nil
}

// DetectPlatform maps a GOOS value to a Platform. Operating systems other than
// darwin, windows and linux are rejected.
func DetectPlatform(goos string) (Platform, error) {
	switch goos {
	case "darwin":
		return PlatformMac, nil
	case "windows":
		return PlatformWindows, nil
	case "linux":
		return PlatformLinux, nil
	default:
		return "", fmt.Errorf("%w: unsupported host operating system %q", ErrConfiguration, goos)
	}
}

// ParsePlatform parses an explicit platform name.
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linux":
		return PlatformLinux, nil
	case "mac", "macos", "darwin":
		return PlatformMac, nil
	case "windows", "win", "win32":
		return PlatformWindows, nil
	default:
		return "", fmt.Errorf("%w: unsupported platform %q", ErrConfiguration, name)
	}
}

func resolvePlatform(explicit, hostOS string) (Platform, error) {
	if strings.TrimSpace(explicit) != "" {
		return ParsePlatform(explicit)
	}
	return DetectPlatform(hostOS)
}

func parseMaxAttempts(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: max_attempts must be a positive integer, got %q", ErrConfiguration, raw)
	}
	return n, nil
}

// resolvePublish picks the publish model. publish (tri-state) and release
// (legacy boolean) are mutually exclusive; with neither set the result is never.
func resolvePublish(publish, release string) (PublishMode, error) {
	publish = strings.ToLower(strings.TrimSpace(publish))
	release = strings.ToLower(strings.TrimSpace(release))

	if publish != "" && release != "" {
		return 0, fmt.Errorf("%w: publish and release cannot both be set", ErrConfiguration)
	}

	if publish != "" {
		switch publish {
		case "always":
			return PublishAlways, nil
		case "never":
			return PublishNever, nil
		}
		on, err := strconv.ParseBool(publish)
		if err != nil {
			return 0, fmt.Errorf("%w: publish must be always, never, true or false, got %q", ErrConfiguration, publish)
		}
		if on {
			return PublishAlways, nil
		}
		return PublishNever, nil
	}

	if release != "" {
		on, err := strconv.ParseBool(release)
		if err != nil {
			return 0, fmt.Errorf("%w: release must be true or false, got %q", ErrConfiguration, release)
		}
		if on {
			return PublishAlways, nil
		}
		return PublishOmitted, nil
	}

	return PublishNever, nil
}

func checkManifest(root string) error {
	path := filepath.Join(root, ManifestFile)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s not found in %q", ErrPrecondition, ManifestFile, root)
		}
		return fmt.Errorf("%w: stat %s: %w", ErrPrecondition, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrPrecondition, path)
	}
	return nil
}

// SplitLines splits a multi-line value into trimmed, non-empty lines.
// Order and duplicates are preserved.
func SplitLines(value string) []string {
	var out []string
	for _, line := range strings.Split(value, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
