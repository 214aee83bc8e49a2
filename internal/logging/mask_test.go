package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMaskSecrets redacts every secret and ignores blanks.
func TestMaskSecrets(t *testing.T) {
	t.Parallel()

	msg := "GH_TOKEN=ghp_abc123 CSC_KEY_PASSWORD=hunter2"
	require.Equal(t, "GH_TOKEN=***** CSC_KEY_PASSWORD=*****", MaskSecrets(msg, "ghp_abc123", "", "  ", "hunter2"))
	require.Equal(t, msg, MaskSecrets(msg))
}

// TestParseLevel maps names and falls back to info.
func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, LevelDebug, ParseLevel(" DEBUG "))
	require.Equal(t, LevelWarn, ParseLevel("warning"))
	require.Equal(t, LevelError, ParseLevel("error"))
	require.Equal(t, LevelInfo, ParseLevel("verbose"))
	require.Equal(t, "warn", LevelWarn.String())
}
