// Package launch starts a game client with the stored session exported
// in its environment.
package launch

import (
	"fmt"
	"strings"

	"github.com/runelauncher/jxctl/pkg/jxctl/client"
)

// Environment variables the game clients read.
const (
	EnvSessionID   = "JX_SESSION_ID"
	EnvCharacterID = "JX_CHARACTER_ID"
	EnvDisplayName = "JX_DISPLAY_NAME"
)

// CharacterNotFoundError means the requested character id is not among
// the accounts of the session.
type CharacterNotFoundError struct {
	CharacterID string
	Available   []client.Account
}

func (e *CharacterNotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "character %q not found", e.CharacterID)
	if len(e.Available) > 0 {
		b.WriteString("; available characters:")
		for _, account := range e.Available {
			fmt.Fprintf(&b, "\n  %s (ID: %s)", account.DisplayName, account.AccountID)
		}
		b.WriteString("\nuse one of the account IDs above with --character-id")
	}
	return b.String()
}

// ExecError means the game client could not be started.
type ExecError struct {
	Program string
	Err     error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("failed to launch %q: %v; make sure it is installed and on your PATH", e.Program, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// FindAccount resolves a character id against the listed accounts.
func FindAccount(accounts []client.Account, characterID string) (*client.Account, error) {
	for i := range accounts {
		if accounts[i].AccountID == characterID {
			return &accounts[i], nil
		}
	}
	return nil, &CharacterNotFoundError{CharacterID: characterID, Available: accounts}
}

func sessionEnv(environ []string, session *client.Session, account *client.Account) []string {
	env := append([]string{}, environ...)
	return append(env,
		EnvSessionID+"="+session.SessionID,
		EnvCharacterID+"="+account.AccountID,
		EnvDisplayName+"="+account.DisplayName,
	)
}
