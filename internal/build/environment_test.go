package build

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appbuild/appbuildctl/internal/env"
)

func testCredentials() Credentials {
	return Credentials{
		GitHubToken: "gh-token",
		Mac:         Certificate{Link: "mac.p12", Password: "mac-pass"},
		Windows:     Certificate{Link: "win.pfx", Password: "win-pass"},
	}
}

// TestCredentialEnvironment_PlatformScoped ensures signing variables follow the active platform only.
func TestCredentialEnvironment_PlatformScoped(t *testing.T) {
	t.Parallel()

	creds := testCredentials()

	require.Equal(t, env.Vars{
		EnvGitHubToken:            "gh-token",
		EnvMacCertificate:         "mac.p12",
		EnvMacCertificatePassword: "mac-pass",
	}, CredentialEnvironment(creds, PlatformMac))

	require.Equal(t, env.Vars{
		EnvGitHubToken:            "gh-token",
		EnvWinCertificate:         "win.pfx",
		EnvWinCertificatePassword: "win-pass",
	}, CredentialEnvironment(creds, PlatformWindows))

	require.Equal(t, env.Vars{EnvGitHubToken: "gh-token"}, CredentialEnvironment(creds, PlatformLinux))
}

// TestCredentialEnvironment_SkipsBlank verifies blank values never reach the environment.
func TestCredentialEnvironment_SkipsBlank(t *testing.T) {
	t.Parallel()

	creds := Credentials{
		GitHubToken: "  ",
		Mac:         Certificate{Link: "mac.p12", Password: "\t"},
	}

	vars := CredentialEnvironment(creds, PlatformMac)
	require.Equal(t, env.Vars{EnvMacCertificate: "mac.p12"}, vars)
	require.Empty(t, CredentialEnvironment(Credentials{}, PlatformWindows))
}
