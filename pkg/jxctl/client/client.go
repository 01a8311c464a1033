package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/runelauncher/jxctl/pkg/jxctl/config"
)

// Client talks to the identity provider's token, session and accounts
// endpoints. It performs no retries; every failure is surfaced to the
// caller and aborts the attempt it belongs to.
type Client struct {
	cfg       config.Config
	http      *http.Client
	userAgent string
	log       *zap.Logger
}

type Option func(*Client)

func New(cfg config.Config, opts ...Option) *Client {
	c := &Client{
		cfg:       cfg,
		http:      &http.Client{},
		userAgent: "jxctl",
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// ExchangeCode redeems an authorization code plus its PKCE verifier at
// the token endpoint.
func (c *Client) ExchangeCode(ctx context.Context, code, verifier string) (*TokenResponse, error) {
	const op = "token exchange"
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("code", code)
	form.Set("code_verifier", verifier)
	form.Set("redirect_uri", c.cfg.RedirectURI)

	endpoint := strings.TrimSuffix(c.cfg.Origin, "/") + "/oauth2/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	receivedAt := time.Now()
	var tokens TokenResponse
	if err := c.do(req, op, &tokens); err != nil {
		return nil, err
	}
	tokens.ReceivedAt = receivedAt
	c.log.Debug("exchanged authorization code",
		zap.String("scope", tokens.Scope),
		zap.Int("expires_in", tokens.ExpiresIn),
		zap.String("subject", unverifiedSubject(tokens.IDToken)))
	return &tokens, nil
}

// CreateSession trades a consent-stage id token for a durable game
// session.
func (c *Client) CreateSession(ctx context.Context, idToken string) (*Session, error) {
	const op = "session creation"
	payload, err := json.Marshal(map[string]string{"idToken": idToken})
	if err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.SessionsURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var session Session
	if err := c.do(req, op, &session); err != nil {
		return nil, err
	}
	if session.SessionID == "" {
		return nil, &DecodeError{Op: op, Err: errors.New("response carried no session id")}
	}
	c.log.Debug("created game session")
	return &session, nil
}

// ListAccounts fetches the characters associated with a session.
func (c *Client) ListAccounts(ctx context.Context, sessionID string) ([]Account, error) {
	const op = "account listing"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.AccountsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+sessionID)

	var accounts []Account
	if err := c.do(req, op, &accounts); err != nil {
		return nil, err
	}
	c.log.Debug("listed accounts", zap.Int("count", len(accounts)))
	return accounts, nil
}

func (c *Client) do(req *http.Request, op string, out any) error {
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &HTTPError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(body, resp.Status)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

func errorMessage(body []byte, status string) string {
	var apiErr struct {
		Error string `json:"error"`
	}
	if len(body) > 0 {
		_ = json.Unmarshal(body, &apiErr)
	}
	msg := strings.TrimSpace(apiErr.Error)
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = status
	}
	return msg
}

// unverifiedSubject extracts the sub claim for debug logging only. The
// token is consumed opaquely by the provider; no local verification
// happens anywhere in the flow.
func unverifiedSubject(idToken string) string {
	if idToken == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(idToken, claims); err != nil {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}
