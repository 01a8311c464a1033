package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/runelauncher/jxctl/pkg/jxctl/client"
	"github.com/runelauncher/jxctl/pkg/jxctl/config"
	"github.com/runelauncher/jxctl/pkg/jxctl/store"
)

func newTestRoot(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	for _, key := range []string{
		"JXCTL_ORIGIN", "JXCTL_CLIENT_ID", "JXCTL_CONSENT_CLIENT_ID",
		"JXCTL_REDIRECT_URI", "JXCTL_SESSIONS_URL", "JXCTL_ACCOUNTS_URL",
		"JXCTL_VERBOSE",
	} {
		t.Setenv(key, "")
	}
	var buf bytes.Buffer
	root := NewRootCommand(Config{
		ConfigPath:   filepath.Join(t.TempDir(), "config.yaml"),
		OutputWriter: &buf,
	})
	root.SetArgs(args)
	root.SetOut(&buf)
	root.SetErr(&buf)
	return &buf, root.Execute()
}

func TestVersionCommand(t *testing.T) {
	t.Run("default output", func(t *testing.T) {
		buf, err := newTestRoot(t, "version")
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "jxctl dev")
	})

	t.Run("json output", func(t *testing.T) {
		buf, err := newTestRoot(t, "version", "-o", "json")
		require.NoError(t, err)
		var info map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
		assert.Equal(t, "dev", info["version"])
	})
}

func TestLogoutCommand(t *testing.T) {
	keyring.MockInit()
	buf, err := newTestRoot(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Logged out")
}

func TestCharactersCommandRequiresSession(t *testing.T) {
	keyring.MockInit()
	_, err := newTestRoot(t, "ls")
	require.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestCharactersCommandOffline(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("cache dir override relies on XDG_CACHE_HOME")
	}
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	t.Run("missing cache lists nothing", func(t *testing.T) {
		buf, err := newTestRoot(t, "ls", "--offline")
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "No characters found")
	})

	t.Run("populated cache is listed without a session", func(t *testing.T) {
		dir := filepath.Join(cacheHome, "jxctl", "session")
		require.NoError(t, os.MkdirAll(dir, 0o700))
		accounts := []client.Account{{AccountID: "1", DisplayName: "Alpha", UserHash: "h1"}}
		payload, err := json.Marshal(accounts)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "accounts.json"), payload, 0o600))

		buf, err := newTestRoot(t, "ls", "--offline")
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Alpha")
	})

	t.Run("json output", func(t *testing.T) {
		buf, err := newTestRoot(t, "ls", "--offline", "-o", "json")
		require.NoError(t, err)
		var decoded []client.Account
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, "Alpha", decoded[0].DisplayName)
	})
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	t.Run("init writes defaults", func(t *testing.T) {
		buf, err := newTestRoot(t, "config", "init", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Initialized config at "+path)

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultOrigin, cfg.Origin)
	})

	t.Run("init refuses to overwrite", func(t *testing.T) {
		_, err := newTestRoot(t, "config", "init", "--config", path)
		require.ErrorContains(t, err, "already exists")
	})

	t.Run("init with force overwrites", func(t *testing.T) {
		_, err := newTestRoot(t, "config", "init", "--config", path, "--force")
		require.NoError(t, err)
	})

	t.Run("view prints the effective config", func(t *testing.T) {
		buf, err := newTestRoot(t, "config", "view", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "client-id: "+config.DefaultClientID)
	})
}

func TestExecCommandRequiresCharacterID(t *testing.T) {
	_, err := newTestRoot(t, "exec", "runelite")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "character-id")
}

func TestCreateDesktopEntryCommand(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	buf, err := newTestRoot(t, "create-desktop-entry", "--name", "osrs", "--character-id", "7", "runelite")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Desktop entry created:")
	assert.Contains(t, buf.String(), "osrs.desktop")
}
