package auth

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/runelauncher/jxctl/pkg/jxctl/browser"
	"github.com/runelauncher/jxctl/pkg/jxctl/client"
	"github.com/runelauncher/jxctl/pkg/jxctl/config"
	"github.com/runelauncher/jxctl/pkg/jxctl/store"
)

// ErrCanceled is returned when the user closes the window before the
// flow completes.
var ErrCanceled = errors.New("authorization window closed before login completed")

// InvalidStateError is a CSRF state mismatch at either redirect hop. It
// always aborts the whole attempt; there is no degraded continuation.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return "unexpected response from authentication server: " + e.Reason
}

// TokenExchanger performs the two remote exchanges of the flow.
type TokenExchanger interface {
	ExchangeCode(ctx context.Context, code, verifier string) (*client.TokenResponse, error)
	CreateSession(ctx context.Context, idToken string) (*client.Session, error)
}

// SessionStore persists the credential the flow produces.
type SessionStore interface {
	StoreSession(sessionKey string, session *client.Session) error
}

// SurfaceFactory constructs the browser surface an attempt runs in.
type SurfaceFactory func(browser.Options) (browser.Surface, error)

// Coordinator drives the two-stage redirect flow through an embedded
// browser surface. The surface's navigation hook classifies every URL
// and hands recognized redirects to a single background worker over a
// channel; the worker performs the exchanges and posts its next
// instruction back onto the UI loop through the surface's dispatcher.
// A Coordinator runs one attempt at a time.
type Coordinator struct {
	cfg        config.Config
	exchanger  TokenExchanger
	sessions   SessionStore
	parser     *RedirectParser
	newSurface SurfaceFactory
	log        *zap.Logger

	// Consent state is written by the worker after the first exchange
	// and read by it at the second hop, against a value that originated
	// on the UI side. Single slot, guarded, never held across a call.
	consentMu    sync.Mutex
	consentState string
	consentSet   bool

	resultMu  sync.Mutex
	resultErr error
	completed bool
}

type CoordinatorOption func(*Coordinator)

func WithLogger(log *zap.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.log = log
	}
}

// WithSurfaceFactory replaces how the browser surface is constructed.
func WithSurfaceFactory(factory SurfaceFactory) CoordinatorOption {
	return func(c *Coordinator) {
		c.newSurface = factory
	}
}

func NewCoordinator(cfg config.Config, exchanger TokenExchanger, sessions SessionStore, opts ...CoordinatorOption) (*Coordinator, error) {
	parser, err := NewRedirectParser(cfg.RedirectURI)
	if err != nil {
		return nil, err
	}
	c := &Coordinator{
		cfg:        cfg,
		exchanger:  exchanger,
		sessions:   sessions,
		parser:     parser,
		newSurface: browser.New,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// message carries a classified redirect plus a snapshot of the attempt's
// flow state from the navigation hook to the worker.
type message struct {
	redirect Redirect
	flow     FlowState
}

// Authorize runs one interactive login attempt and persists the
// resulting session under the key for sessionName. It blocks until the
// window closes. Any exchange failure or state mismatch is fatal to the
// attempt; closing the window early yields ErrCanceled, even when an
// exchange is still in flight at that moment.
func (c *Coordinator) Authorize(ctx context.Context, sessionName string) error {
	flow, err := NewFlowState()
	if err != nil {
		return err
	}
	c.reset()

	sessionKey := store.SessionKey(sessionName)
	msgs := make(chan message, 4)

	surface, err := c.newSurface(browser.Options{
		Title:  "Authorize",
		Width:  400,
		Height: 700,
		OnNavigate: func(raw string) bool {
			redirect := c.parser.Parse(raw)
			if redirect == nil {
				return true
			}
			// Enqueue and return; the UI loop must not wait on network
			// work. The worker handles at most two redirects, so a full
			// buffer means duplicates that are safe to drop.
			select {
			case msgs <- message{redirect: redirect, flow: *flow}:
			default:
				c.log.Warn("redirect queue full, dropping navigation event")
			}
			return false
		},
	})
	if err != nil {
		return err
	}

	// The worker's exchanges must not outlive the window: once the UI
	// loop returns there is nothing left to drive the flow, so any
	// in-flight request is aborted through this context.
	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.runWorker(workerCtx, msgs, surface, sessionKey)
	}()

	runErr := surface.Run(BuildAuthURL(c.cfg, flow))
	cancelWorker()
	close(msgs)
	wg.Wait()
	if runErr != nil {
		return runErr
	}

	c.resultMu.Lock()
	defer c.resultMu.Unlock()
	if c.resultErr != nil {
		// An exchange that died because the window went away is a
		// cancellation, not a transport failure.
		if errors.Is(c.resultErr, context.Canceled) {
			return ErrCanceled
		}
		return c.resultErr
	}
	if !c.completed {
		return ErrCanceled
	}
	return nil
}

func (c *Coordinator) reset() {
	c.consentMu.Lock()
	c.consentState = ""
	c.consentSet = false
	c.consentMu.Unlock()
	c.resultMu.Lock()
	c.resultErr = nil
	c.completed = false
	c.resultMu.Unlock()
}

// runWorker consumes redirects strictly in send order, one exchange at a
// time. It exits on the first terminal outcome or when the channel
// closes with the window.
func (c *Coordinator) runWorker(ctx context.Context, msgs <-chan message, surface browser.Surface, sessionKey string) {
	for msg := range msgs {
		switch redirect := msg.redirect.(type) {
		case *AuthRedirect:
			consentURL, err := c.handleAuthRedirect(ctx, redirect, msg.flow)
			if err != nil {
				c.finish(err, surface)
				return
			}
			surface.Dispatch(func() {
				surface.LoadURL(consentURL)
			})
		case *ConsentRedirect:
			c.finish(c.handleConsentRedirect(ctx, redirect, sessionKey), surface)
			return
		}
	}
}

func (c *Coordinator) finish(err error, surface browser.Surface) {
	c.resultMu.Lock()
	c.resultErr = err
	c.completed = err == nil
	c.resultMu.Unlock()
	if err != nil {
		c.log.Error("authorization failed", zap.Error(err))
	}
	surface.Dispatch(surface.Close)
}

func (c *Coordinator) handleAuthRedirect(ctx context.Context, redirect *AuthRedirect, flow FlowState) (string, error) {
	if redirect.State != flow.State {
		return "", &InvalidStateError{Reason: "auth state parameter mismatch, possible CSRF attack"}
	}
	tokens, err := c.exchanger.ExchangeCode(ctx, redirect.Code, flow.Verifier)
	if err != nil {
		return "", err
	}
	consentURL, consentState := BuildConsentURL(c.cfg, tokens.IDToken)

	c.consentMu.Lock()
	c.consentState = consentState
	c.consentSet = true
	c.consentMu.Unlock()

	c.log.Debug("token exchange complete, continuing to consent")
	return consentURL, nil
}

func (c *Coordinator) handleConsentRedirect(ctx context.Context, redirect *ConsentRedirect, sessionKey string) error {
	c.consentMu.Lock()
	expected, set := c.consentState, c.consentSet
	c.consentMu.Unlock()

	if !set {
		return &InvalidStateError{Reason: "no consent state found, possible CSRF attack"}
	}
	if expected != redirect.State {
		return &InvalidStateError{Reason: "consent state parameter mismatch, possible CSRF attack"}
	}

	session, err := c.exchanger.CreateSession(ctx, redirect.IDToken)
	if err != nil {
		return err
	}
	if err := c.sessions.StoreSession(sessionKey, session); err != nil {
		return err
	}
	c.log.Info("authorization complete", zap.String("session", sessionKey))
	return nil
}
