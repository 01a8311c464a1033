package store

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// ErrNoCacheDir means the platform exposes no user cache directory, so
// explicit accounts-cache reads and writes cannot proceed.
var ErrNoCacheDir = errors.New("no user cache directory available")

// ErrSessionNotFound is returned by callers that require a persisted
// session when none exists for the requested key.
var ErrSessionNotFound = errors.New("not authenticated: run 'jxctl authorize' to log in")

// KeyringError is a secret-store failure other than a missing entry.
type KeyringError struct {
	Op  string
	Err error
}

func (e *KeyringError) Error() string {
	return fmt.Sprintf("credential store failure during %s: %v", e.Op, e.Err)
}

func (e *KeyringError) Unwrap() error { return e.Err }

func wrapKeyringErr(op string, err error) error {
	if errors.Is(err, keyring.ErrUnsupportedPlatform) {
		return &KeyringError{Op: op, Err: fmt.Errorf("credential store unavailable on this platform: %w", err)}
	}
	return &KeyringError{Op: op, Err: err}
}
