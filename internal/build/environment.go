package build

import "github.com/appbuild/appbuildctl/internal/env"

// Variables read by electron-builder.
const (
	EnvGitHubToken            = "GH_TOKEN"
	EnvMacCertificate         = "CSC_LINK"
	EnvMacCertificatePassword = "CSC_KEY_PASSWORD"
	EnvWinCertificate         = "WIN_CSC_LINK"
	EnvWinCertificatePassword = "WIN_CSC_KEY_PASSWORD"
)

// CredentialEnvironment returns the variables the packager needs for platform.
// Signing variables are only produced for the platform being built, and blank
// values are never included.
func CredentialEnvironment(creds Credentials, platform Platform) env.Vars {
	vars := make(env.Vars)
	vars.SetNonBlank(EnvGitHubToken, creds.GitHubToken)

	switch platform {
	case PlatformMac:
		vars.SetNonBlank(EnvMacCertificate, creds.Mac.Link)
		vars.SetNonBlank(EnvMacCertificatePassword, creds.Mac.Password)
	case PlatformWindows:
		vars.SetNonBlank(EnvWinCertificate, creds.Windows.Link)
		vars.SetNonBlank(EnvWinCertificatePassword, creds.Windows.Password)
	}
	return vars
}
