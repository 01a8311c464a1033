package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnvOverrides(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"JXCTL_ORIGIN", "JXCTL_CLIENT_ID", "JXCTL_CONSENT_CLIENT_ID",
		"JXCTL_REDIRECT_URI", "JXCTL_SESSIONS_URL", "JXCTL_ACCOUNTS_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnvOverrides(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultOrigin, cfg.Origin)
	assert.Equal(t, DefaultClientID, cfg.ClientID)
	assert.Equal(t, DefaultConsentClientID, cfg.ConsentClientID)
	assert.Equal(t, DefaultRedirectURI, cfg.RedirectURI)
}

func TestLoadFileOverrides(t *testing.T) {
	clearEnvOverrides(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("origin: https://idp.example.com\nclient-id: my-client\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://idp.example.com", cfg.Origin)
	assert.Equal(t, "my-client", cfg.ClientID)
	// Unset fields keep their defaults.
	assert.Equal(t, DefaultRedirectURI, cfg.RedirectURI)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnvOverrides(t)
	t.Setenv("JXCTL_ORIGIN", "https://env.example.com")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("origin: https://file.example.com\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Origin)
}

func TestLoadRejectsInvalid(t *testing.T) {
	clearEnvOverrides(t)

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(":\tnot yaml"), 0o600))
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("invalid origin", func(t *testing.T) {
		t.Setenv("JXCTL_ORIGIN", "not-a-url")
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnvOverrides(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	saved := Default()
	saved.Origin = "https://idp.example.com"
	require.NoError(t, Save(path, &saved))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://idp.example.com", cfg.Origin)
}
