package client

import "time"

// TokenResponse is the raw result of the authorization-code exchange,
// plus the time it was captured. It is transient: only the id token is
// used afterwards, to derive the consent hop. No refresh flow exists.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
	Scope        string `json:"scope"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`

	ReceivedAt time.Time `json:"-"`
}

// Session is the durable game-session credential.
type Session struct {
	SessionID string `json:"sessionId"`
}

// Account is one game character associated with a session.
type Account struct {
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
	UserHash    string `json:"userHash"`
}
