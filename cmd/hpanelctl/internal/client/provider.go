package client

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/hellopaaitech-arch/hellopaai-go/pkg/credstore"
	"github.com/hellopaaitech-arch/hellopaai-go/pkg/sdk"
)

// Provider lazily yields the credential store, session and clients the
// commands share. Everything is built at most once per invocation.
type Provider struct {
	serverURL    string
	storeBackend string
	storeDSN     string
	bearerToken  string // ephemeral token that bypasses the credential store
	logger       zerolog.Logger

	storeOnce sync.Once
	store     sdk.CredentialStore
	storeErr  error

	sessionOnce sync.Once
	session     *sdk.Session
	sessionErr  error
}

// NewProvider constructs a provider bound to the given server URL and
// credential store configuration.
func NewProvider(serverURL, storeBackend, storeDSN string, logger zerolog.Logger) *Provider {
	return &Provider{
		serverURL:    serverURL,
		storeBackend: storeBackend,
		storeDSN:     storeDSN,
		logger:       logger,
	}
}

// SetBearerToken injects an ephemeral bearer token (for CI and testing);
// it bypasses the credential store entirely.
func (p *Provider) SetBearerToken(token string) {
	p.bearerToken = token
}

// Store returns the configured credential store.
func (p *Provider) Store(ctx context.Context) (sdk.CredentialStore, error) {
	p.storeOnce.Do(func() {
		p.store, p.storeErr = credstore.Open(ctx, p.storeBackend, p.storeDSN)
	})
	return p.store, p.storeErr
}

// Session returns the shared session wired to the store.
func (p *Provider) Session(ctx context.Context) (*sdk.Session, error) {
	p.sessionOnce.Do(func() {
		store, err := p.Store(ctx)
		if err != nil {
			p.sessionErr = err
			return
		}
		p.session, p.sessionErr = sdk.NewSession(p.serverURL, store, sdk.WithLogger(p.logger))
	})
	return p.session, p.sessionErr
}

// Client returns a typed API client. With an ephemeral bearer token set,
// the client authenticates with a static oauth2 source instead of the
// session pipeline.
func (p *Provider) Client(ctx context.Context) (*sdk.Client, error) {
	if p.bearerToken != "" {
		source := oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: p.bearerToken,
			TokenType:   "Bearer",
		})
		return sdk.NewClient(p.serverURL, sdk.WithHTTPClient(oauth2.NewClient(ctx, source))), nil
	}
	session, err := p.Session(ctx)
	if err != nil {
		return nil, err
	}
	return session.Client(), nil
}

// HTTPClient returns a raw authenticated http.Client for callers that
// need one.
func (p *Provider) HTTPClient(ctx context.Context) (*http.Client, error) {
	if p.bearerToken != "" {
		source := oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: p.bearerToken,
			TokenType:   "Bearer",
		})
		return oauth2.NewClient(ctx, source), nil
	}
	session, err := p.Session(ctx)
	if err != nil {
		return nil, err
	}
	return session.HTTPClient(), nil
}
