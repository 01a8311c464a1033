package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
	"go.uber.org/zap"

	"github.com/runelauncher/jxctl/pkg/jxctl/client"
)

const (
	service        = "jxctl"
	defaultKey     = "session"
	namedKeyPrefix = "named-session-"
	cacheDirName   = "jxctl"
	accountsFile   = "accounts.json"
)

// SessionKey maps an optional session name to the credential-store key
// it is stored under. The empty name is the default session.
func SessionKey(name string) string {
	if name == "" {
		return defaultKey
	}
	return namedKeyPrefix + name
}

// Store persists the game session in the OS secret store and keeps a
// per-session accounts cache on disk. An unavailable platform cache
// directory disables the cache rather than failing session operations;
// explicit cache reads and writes do fail without it.
type Store struct {
	cacheBase string
	log       *zap.Logger
}

type Option func(*Store)

func New(opts ...Option) *Store {
	s := &Store{log: zap.NewNop()}
	if base, err := os.UserCacheDir(); err == nil {
		s.cacheBase = filepath.Join(base, cacheDirName)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// WithCacheBase overrides the accounts-cache directory. An empty string
// disables the cache.
func WithCacheBase(dir string) Option {
	return func(s *Store) {
		s.cacheBase = dir
	}
}

// StoreSession writes the session secret under sessionKey and drops any
// accounts cached for a previous session under the same key.
func (s *Store) StoreSession(sessionKey string, session *client.Session) error {
	if session == nil {
		return errors.New("session is nil")
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := keyring.Set(service, sessionKey, string(payload)); err != nil {
		return wrapKeyringErr("store session", err)
	}
	if err := s.InvalidateAccounts(sessionKey); err != nil {
		return err
	}
	s.log.Debug("stored session", zap.String("key", sessionKey))
	return nil
}

// LoadSession returns the stored session for sessionKey, or nil when no
// entry exists. Absence is not an error.
func (s *Store) LoadSession(sessionKey string) (*client.Session, error) {
	payload, err := keyring.Get(service, sessionKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapKeyringErr("load session", err)
	}
	var session client.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("corrupt session entry for %s: %w", sessionKey, err)
	}
	return &session, nil
}

// ClearSession removes the session secret and its accounts cache. A
// missing entry is a no-op.
func (s *Store) ClearSession(sessionKey string) error {
	err := keyring.Delete(service, sessionKey)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return wrapKeyringErr("clear session", err)
	}
	if err := s.InvalidateAccounts(sessionKey); err != nil {
		return err
	}
	s.log.Debug("cleared session", zap.String("key", sessionKey))
	return nil
}

// StoreAccounts overwrites the accounts cache for sessionKey.
func (s *Store) StoreAccounts(sessionKey string, accounts []client.Account) error {
	if s.cacheBase == "" {
		return ErrNoCacheDir
	}
	dir := filepath.Join(s.cacheBase, sessionKey)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	if accounts == nil {
		accounts = []client.Account{}
	}
	payload, err := json.Marshal(accounts)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, accountsFile), payload, 0o600)
}

// LoadAccounts reads the accounts cache for sessionKey. A missing cache
// file yields an empty list, never an error.
func (s *Store) LoadAccounts(sessionKey string) ([]client.Account, error) {
	if s.cacheBase == "" {
		return nil, ErrNoCacheDir
	}
	payload, err := os.ReadFile(filepath.Join(s.cacheBase, sessionKey, accountsFile))
	if os.IsNotExist(err) {
		return []client.Account{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts cache: %w", err)
	}
	var accounts []client.Account
	if err := json.Unmarshal(payload, &accounts); err != nil {
		return nil, fmt.Errorf("corrupt accounts cache: %w", err)
	}
	return accounts, nil
}

// InvalidateAccounts removes the cache directory for sessionKey. With no
// platform cache directory there is nothing to invalidate.
func (s *Store) InvalidateAccounts(sessionKey string) error {
	if s.cacheBase == "" {
		return nil
	}
	if err := os.RemoveAll(filepath.Join(s.cacheBase, sessionKey)); err != nil {
		return fmt.Errorf("failed to invalidate accounts cache: %w", err)
	}
	return nil
}
