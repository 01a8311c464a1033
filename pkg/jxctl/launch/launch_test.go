package launch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runelauncher/jxctl/pkg/jxctl/client"
)

var testAccounts = []client.Account{
	{AccountID: "1", DisplayName: "Alpha", UserHash: "h1"},
	{AccountID: "2", DisplayName: "Beta", UserHash: "h2"},
}

func TestFindAccount(t *testing.T) {
	t.Run("resolves a known character", func(t *testing.T) {
		account, err := FindAccount(testAccounts, "2")
		require.NoError(t, err)
		assert.Equal(t, "Beta", account.DisplayName)
	})

	t.Run("unknown character lists the alternatives", func(t *testing.T) {
		_, err := FindAccount(testAccounts, "99")
		var notFound *CharacterNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "99", notFound.CharacterID)
		assert.Contains(t, err.Error(), "Alpha (ID: 1)")
		assert.Contains(t, err.Error(), "--character-id")
	})

	t.Run("empty account list", func(t *testing.T) {
		_, err := FindAccount(nil, "1")
		var notFound *CharacterNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.NotContains(t, err.Error(), "available characters")
	})
}

func TestSessionEnv(t *testing.T) {
	env := sessionEnv([]string{"PATH=/bin"},
		&client.Session{SessionID: "session-123"},
		&client.Account{AccountID: "1", DisplayName: "Alpha"},
	)
	assert.Contains(t, env, "PATH=/bin")
	assert.Contains(t, env, "JX_SESSION_ID=session-123")
	assert.Contains(t, env, "JX_CHARACTER_ID=1")
	assert.Contains(t, env, "JX_DISPLAY_NAME=Alpha")
}
