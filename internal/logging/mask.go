package logging

import (
	"sort"
	"strings"

	"github.com/fluxcd/pkg/masktoken"
)

// MaskSecrets replaces every occurrence of the given secrets in msg with "*****".
// Longer secrets are masked first so that a secret containing another is fully hidden.
func MaskSecrets(msg string, secrets ...string) string {
	ordered := make([]string, 0, len(secrets))
	for _, s := range secrets {
		if strings.TrimSpace(s) != "" {
			ordered = append(ordered, s)
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return len(ordered[i]) > len(ordered[j]) })

	for _, secret := range ordered {
		masked, err := masktoken.MaskTokenFromString(msg, secret)
		if err != nil {
			continue
		}
		msg = masked
	}
	return msg
}
