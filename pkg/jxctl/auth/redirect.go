package auth

import (
	"fmt"
	"net/url"
	"strings"
)

// Redirect is one of the two provider-issued browser navigations the
// flow recognizes. Every other URL is not a redirect and the browser
// surface keeps navigating normally.
type Redirect interface {
	redirect()
}

// AuthRedirect is the first hop: the launcher redirect carrying the
// authorization code in the query string.
type AuthRedirect struct {
	Code  string
	State string
}

// ConsentRedirect is the second hop: the localhost redirect carrying the
// id token in the URL fragment.
type ConsentRedirect struct {
	IDToken string
	State   string
}

func (*AuthRedirect) redirect()    {}
func (*ConsentRedirect) redirect() {}

const consentHost = "localhost"

// RedirectParser classifies navigated URLs. The auth matcher is bound to
// the exact scheme, host and path of the configured redirect URI; both
// matchers check their location before reading any parameter, so a page
// that merely mimics the parameter shape on the wrong host never
// produces a match.
type RedirectParser struct {
	authHost string
	authPath string
}

func NewRedirectParser(redirectURI string) (*RedirectParser, error) {
	parsed, err := url.Parse(redirectURI)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect URI: %w", err)
	}
	if parsed.Scheme != "https" || parsed.Host == "" {
		return nil, fmt.Errorf("redirect URI must be https: %s", redirectURI)
	}
	return &RedirectParser{authHost: parsed.Host, authPath: parsed.Path}, nil
}

// Parse returns the classified redirect, or nil for anything the flow
// does not recognize. Malformed input classifies as nil, never an error.
func (p *RedirectParser) Parse(raw string) Redirect {
	if redirect := p.parseAuthRedirect(raw); redirect != nil {
		return redirect
	}
	if redirect := p.parseConsentRedirect(raw); redirect != nil {
		return redirect
	}
	return nil
}

func (p *RedirectParser) parseAuthRedirect(raw string) Redirect {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	if parsed.Scheme != "https" || parsed.Host != p.authHost || parsed.Path != p.authPath {
		return nil
	}
	query := parsed.Query()
	code := query.Get("code")
	state := query.Get("state")
	if code == "" || state == "" {
		return nil
	}
	return &AuthRedirect{Code: code, State: state}
}

// parseConsentRedirect handles the second hop, where the provider puts
// the parameters in the fragment. Rewriting the fragment delimiter to a
// query delimiter makes them visible to the query parser.
func (p *RedirectParser) parseConsentRedirect(raw string) Redirect {
	parsed, err := url.Parse(strings.ReplaceAll(raw, "#", "?"))
	if err != nil {
		return nil
	}
	if parsed.Hostname() != consentHost {
		return nil
	}
	query := parsed.Query()
	state := query.Get("state")
	idToken := query.Get("id_token")
	if state == "" || idToken == "" {
		return nil
	}
	return &ConsentRedirect{IDToken: idToken, State: state}
}
