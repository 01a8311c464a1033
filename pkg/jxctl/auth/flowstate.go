package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const verifierLength = 43

// RFC 7636 unreserved characters.
const verifierCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-._~"

// FlowState is the per-attempt CSRF state plus PKCE pair. It lives only
// for the duration of one browser session and is never persisted. The
// verifier stays on this machine; only the derived challenge travels in
// the authorization URL.
type FlowState struct {
	State     string
	Challenge string
	Verifier  string
}

func NewFlowState() (*FlowState, error) {
	verifier, err := codeVerifier(verifierLength)
	if err != nil {
		return nil, err
	}
	return &FlowState{
		State:     uuid.NewString(),
		Challenge: codeChallenge(verifier),
		Verifier:  verifier,
	}, nil
}

func codeVerifier(length int) (string, error) {
	charsetLen := big.NewInt(int64(len(verifierCharset)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate code verifier: %w", err)
		}
		out[i] = verifierCharset[n.Int64()]
	}
	return string(out), nil
}

func codeChallenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
