package auth

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/runelauncher/jxctl/pkg/jxctl/config"
)

const (
	authPath           = "/oauth2/auth"
	consentRedirectURI = "http://localhost"
)

var launcherScopes = []string{"openid", "offline", "gamesso.token.create", "user.profile.read"}

func authEndpoint(cfg config.Config) oauth2.Endpoint {
	return oauth2.Endpoint{AuthURL: strings.TrimSuffix(cfg.Origin, "/") + authPath}
}

// BuildAuthURL constructs the first-hop authorization URL for the given
// attempt's flow state.
func BuildAuthURL(cfg config.Config, flow *FlowState) string {
	oauthCfg := oauth2.Config{
		ClientID:    cfg.ClientID,
		RedirectURL: cfg.RedirectURI,
		Endpoint:    authEndpoint(cfg),
		Scopes:      launcherScopes,
	}
	return oauthCfg.AuthCodeURL(flow.State,
		oauth2.SetAuthURLParam("flow", "launcher"),
		oauth2.SetAuthURLParam("code_challenge", flow.Challenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
		oauth2.SetAuthURLParam("prompt", "login"),
	)
}

// BuildConsentURL constructs the second-hop authorization URL from the
// id token obtained in the first exchange. It returns the URL together
// with the fresh state value the consent redirect must echo back.
func BuildConsentURL(cfg config.Config, idToken string) (string, string) {
	state := uuid.NewString()
	oauthCfg := oauth2.Config{
		ClientID:    cfg.ConsentClientID,
		RedirectURL: consentRedirectURI,
		Endpoint:    authEndpoint(cfg),
		Scopes:      []string{"openid", "offline"},
	}
	consentURL := oauthCfg.AuthCodeURL(state,
		oauth2.SetAuthURLParam("id_token_hint", idToken),
		oauth2.SetAuthURLParam("nonce", uuid.NewString()),
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("response_type", "id_token code"),
	)
	return consentURL, state
}
