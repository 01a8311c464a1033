package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Defaults point at the production Jagex account infrastructure. The
// consent-stage client id is a separate literal from the launcher client
// id; the two are not interchangeable.
const (
	DefaultOrigin          = "https://account.jagex.com"
	DefaultClientID        = "com_jagex_auth_desktop_launcher"
	DefaultConsentClientID = "1fddee4e-b100-4f4e-b2b0-097f9088f9d2"
	DefaultRedirectURI     = "https://secure.runescape.com/m=weblogin/launcher-redirect"
	DefaultSessionsURL     = "https://auth.jagex.com/game-session/v1/sessions"
	DefaultAccountsURL     = "https://auth.jagex.com/game-session/v1/accounts"
)

type Config struct {
	Origin          string `yaml:"origin,omitempty"`
	ClientID        string `yaml:"client-id,omitempty"`
	ConsentClientID string `yaml:"consent-client-id,omitempty"`
	RedirectURI     string `yaml:"redirect-uri,omitempty"`
	SessionsURL     string `yaml:"sessions-url,omitempty"`
	AccountsURL     string `yaml:"accounts-url,omitempty"`
}

func Default() Config {
	return Config{
		Origin:          DefaultOrigin,
		ClientID:        DefaultClientID,
		ConsentClientID: DefaultConsentClientID,
		RedirectURI:     DefaultRedirectURI,
		SessionsURL:     DefaultSessionsURL,
		AccountsURL:     DefaultAccountsURL,
	}
}

// Load reads the config file at path, fills unset fields with defaults
// and applies environment overrides. A missing file is not an error; the
// defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			var fileCfg Config
			if err := yaml.Unmarshal(content, &fileCfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
			cfg.merge(fileCfg)
		}
	}
	cfg.merge(Config{
		Origin:          os.Getenv("JXCTL_ORIGIN"),
		ClientID:        os.Getenv("JXCTL_CLIENT_ID"),
		ConsentClientID: os.Getenv("JXCTL_CONSENT_CLIENT_ID"),
		RedirectURI:     os.Getenv("JXCTL_REDIRECT_URI"),
		SessionsURL:     os.Getenv("JXCTL_SESSIONS_URL"),
		AccountsURL:     os.Getenv("JXCTL_ACCOUNTS_URL"),
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, content, 0o600)
}

// merge overwrites c's fields with any non-empty fields of other.
func (c *Config) merge(other Config) {
	if other.Origin != "" {
		c.Origin = other.Origin
	}
	if other.ClientID != "" {
		c.ClientID = other.ClientID
	}
	if other.ConsentClientID != "" {
		c.ConsentClientID = other.ConsentClientID
	}
	if other.RedirectURI != "" {
		c.RedirectURI = other.RedirectURI
	}
	if other.SessionsURL != "" {
		c.SessionsURL = other.SessionsURL
	}
	if other.AccountsURL != "" {
		c.AccountsURL = other.AccountsURL
	}
}

func (c *Config) Validate() error {
	for name, value := range map[string]string{
		"origin":       c.Origin,
		"redirect-uri": c.RedirectURI,
		"sessions-url": c.SessionsURL,
		"accounts-url": c.AccountsURL,
	} {
		parsed, err := url.Parse(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("invalid %s: %s", name, value)
		}
	}
	if c.ClientID == "" {
		return errors.New("client-id is required")
	}
	if c.ConsentClientID == "" {
		return errors.New("consent-client-id is required")
	}
	return nil
}
