package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// Phase is the coarse lifecycle state of a session.
type Phase string

const (
	PhaseBootstrapping   Phase = "bootstrapping"
	PhaseUnauthenticated Phase = "unauthenticated"
	PhaseAuthenticated   Phase = "authenticated"
)

// SessionState is a point-in-time snapshot of the session. ActiveRole is
// the explicit override (set by login, impersonation or bootstrap) and
// wins over anything derivable from Identity until the next identity
// refresh reconciles them.
type SessionState struct {
	ActiveRole Role
	Identity   *Identity
	Credential *Credential
	Loading    bool
}

// Phase reduces the snapshot to the session lifecycle state.
func (st SessionState) Phase() Phase {
	if st.Loading {
		return PhaseBootstrapping
	}
	if st.Identity != nil {
		return PhaseAuthenticated
	}
	return PhaseUnauthenticated
}

// Session keeps several independent role credentials valid at once and
// keeps the active one fresh. It owns the HTTP middleware pipeline that
// attaches credentials to outgoing requests and transparently refreshes
// on authorization failure, and it is safe for concurrent use.
type Session struct {
	store       CredentialStore
	api         *Client
	httpClient  *http.Client
	transport   *Pipeline
	pathFn      func() string
	logger      zerolog.Logger
	coordinator refreshCoordinator

	mu         sync.Mutex
	activeRole Role
	identity   *Identity
	credential *Credential
	loading    bool
	// gen increments whenever the session is torn down, so responses
	// from calls started before a logout are discarded instead of
	// reinstating cleared state.
	gen uint64
}

// SessionOptions configures session construction.
type SessionOptions struct {
	// HTTPClient is the base client for all traffic. Its transport
	// becomes the bottom of the pipeline; its cookie jar carries the
	// server's long-lived refresh cookie. A jar-equipped default is
	// created when nil.
	HTTPClient *http.Client

	// PathFunc reports the current navigation path. It exists so role
	// inference never reads ambient process state; embedders supply the
	// real location, tests supply fabricated ones. Defaults to "/".
	PathFunc func() string

	Logger zerolog.Logger

	// Extra pipeline stages, run after the session's own.
	RequestHooks  []RequestHook
	ResponseHooks []ResponseHook
}

// SessionOption mutates SessionOptions.
type SessionOption func(*SessionOptions)

// WithBaseClient overrides the base HTTP client.
func WithBaseClient(client *http.Client) SessionOption {
	return func(o *SessionOptions) { o.HTTPClient = client }
}

// WithPathFunc injects the current-path capability.
func WithPathFunc(fn func() string) SessionOption {
	return func(o *SessionOptions) { o.PathFunc = fn }
}

// WithLogger enables debug logging of credential resolution and refresh.
func WithLogger(logger zerolog.Logger) SessionOption {
	return func(o *SessionOptions) { o.Logger = logger }
}

// WithRequestHook appends a request stage to the pipeline.
func WithRequestHook(h RequestHook) SessionOption {
	return func(o *SessionOptions) { o.RequestHooks = append(o.RequestHooks, h) }
}

// WithResponseHook appends a response stage to the pipeline.
func WithResponseHook(h ResponseHook) SessionOption {
	return func(o *SessionOptions) { o.ResponseHooks = append(o.ResponseHooks, h) }
}

// NewSession builds a session against the backend at baseURL, persisting
// credentials in store. The session starts in the bootstrapping phase;
// call Bootstrap to resolve the initial identity.
func NewSession(baseURL string, store CredentialStore, optFns ...SessionOption) (*Session, error) {
	if store == nil {
		return nil, fmt.Errorf("credential store is required")
	}
	opts := SessionOptions{
		Logger:   zerolog.Nop(),
		PathFunc: func() string { return "/" },
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	base := opts.HTTPClient
	if base == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		base = &http.Client{Timeout: 30 * time.Second, Jar: jar}
	}

	s := &Session{
		store:   store,
		pathFn:  opts.PathFunc,
		logger:  opts.Logger,
		loading: true,
	}

	pipeline := &Pipeline{Base: base.Transport}
	pipeline.Use(RequestIDHook(), s.attachCredential)
	pipeline.Use(opts.RequestHooks...)
	pipeline.OnResponse(s.refreshAndRetry)
	pipeline.OnResponse(opts.ResponseHooks...)
	s.transport = pipeline

	s.httpClient = &http.Client{
		Transport:     pipeline,
		Jar:           base.Jar,
		Timeout:       base.Timeout,
		CheckRedirect: base.CheckRedirect,
	}
	s.api = NewClient(baseURL, WithHTTPClient(s.httpClient))
	s.coordinator.run = func(ctx context.Context) (string, error) {
		return s.api.RefreshCredential(ctx)
	}
	return s, nil
}

// Client returns the typed API client whose calls flow through the
// session's pipeline.
func (s *Session) Client() *Client { return s.api }

// HTTPClient returns the pipeline-backed http.Client for callers that
// need raw HTTP with session authentication.
func (s *Session) HTTPClient() *http.Client { return s.httpClient }

// Snapshot returns the current session state.
func (s *Session) Snapshot() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{
		ActiveRole: s.activeRole,
		Identity:   s.identity,
		Credential: s.credential,
		Loading:    s.loading,
	}
}

func (s *Session) currentRole() Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeRole
}

func (s *Session) currentIdentity() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

func (s *Session) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Bootstrap resolves the initial identity after construction. The
// navigation path is the only signal available on a cold start, so it
// seeds the role hint; with no stored credential at all the session goes
// straight to unauthenticated without a network call.
func (s *Session) Bootstrap(ctx context.Context) (*Identity, error) {
	return s.loadIdentity(ctx, RoleFromPath(s.pathFn()))
}

// Refresh re-runs the identity lookup, validating the stored credential
// and picking up profile changes. forceRole pins which slot to validate;
// pass "" to use ambient resolution.
func (s *Session) Refresh(ctx context.Context, forceRole Role) (*Identity, error) {
	return s.loadIdentity(ctx, forceRole)
}

func (s *Session) loadIdentity(ctx context.Context, force Role) (*Identity, error) {
	role := ResolveRole(force, s.currentRole(), s.currentIdentity())

	var cred *Credential
	var err error
	if role != "" {
		cred, err = s.store.Load(ctx, role)
		if err != nil {
			return nil, err
		}
	}
	if cred == nil {
		cred, err = LookupCredential(ctx, s.store, s.pathFn())
		if err != nil {
			return nil, err
		}
	}
	if cred == nil {
		// A valid logged-out condition, not a fault.
		s.mu.Lock()
		s.identity = nil
		s.activeRole = ""
		s.credential = nil
		s.loading = false
		s.mu.Unlock()
		return nil, nil
	}

	gen := s.generation()
	lookupCtx := ctx
	if role != "" {
		lookupCtx = WithRoleHint(ctx, role)
	}
	me, err := s.api.WhoAmI(lookupCtx)
	if err != nil {
		s.mu.Lock()
		stale := s.gen != gen
		s.mu.Unlock()
		if stale {
			return nil, nil
		}
		s.logger.Debug().Err(err).Str("role", role.String()).Msg("identity lookup failed")
		if clearErr := s.clearAll(ctx); clearErr != nil {
			s.logger.Debug().Err(clearErr).Msg("failed to clear credentials")
		}
		return nil, fmt.Errorf("%w: %v", ErrIdentityLookup, err)
	}

	newRole := me.EffectiveRole()

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		// The session was torn down while the lookup was in flight;
		// do not reinstate it.
		return nil, nil
	}
	s.identity = me
	s.activeRole = newRole
	s.credential = cred
	s.loading = false
	s.mu.Unlock()

	// Reload repair: the credential that answered may have lived under a
	// different slot (path fallback). Copy it to the resolved role's
	// slot so the ambiguity does not survive.
	if newRole != "" {
		existing, err := s.store.Load(ctx, newRole)
		if err == nil && (existing == nil || existing.Token != cred.Token) {
			if err := s.store.Save(ctx, &Credential{Token: cred.Token, Role: newRole}); err != nil {
				s.logger.Debug().Err(err).Str("role", newRole.String()).Msg("failed to reconcile credential slot")
			}
		}
	}
	return me, nil
}

// SetCredential stores token under role's slot and makes that role
// active. With role == "" the role is inferred from the current identity
// (the post-login case, before the server has been asked who the token
// belongs to). An empty token with an empty role clears every slot —
// full logout, never an implicit single-slot clear.
func (s *Session) SetCredential(ctx context.Context, token string, role Role) error {
	if token == "" {
		return s.clearAll(ctx)
	}
	if role == "" {
		role = s.currentIdentity().EffectiveRole()
		if role == "" {
			return fmt.Errorf("cannot infer a role for the credential: %w", ErrNoCredential)
		}
	}
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", role)
	}
	cred := &Credential{Token: token, Role: role}
	if err := s.store.Save(ctx, cred); err != nil {
		return err
	}
	s.mu.Lock()
	s.activeRole = role
	s.credential = cred
	s.mu.Unlock()
	s.logger.Debug().Str("role", role.String()).Msg("credential stored")
	return nil
}

// Login performs a password login for the given role, stores the minted
// credential and resolves the identity. When the server grants a
// different role than the caller required, the credential is discarded,
// no state changes, and ErrRoleMismatch is returned.
func (s *Session) Login(ctx context.Context, role Role, in LoginInput) (*Identity, error) {
	result, err := s.api.Login(ctx, role, in)
	if err != nil {
		return nil, err
	}
	if result.Role != role {
		return nil, fmt.Errorf("%w: wanted %s, got %s", ErrRoleMismatch, role, result.Role)
	}
	if err := s.SetCredential(ctx, result.Token, result.Role); err != nil {
		return nil, err
	}
	return s.Refresh(ctx, result.Role)
}

// Impersonate mints a credential for another identity and stores it
// under the target role's slot. The issuer's own slot is never touched,
// which is what lets an operator keep an admin context open while a
// second context runs as the target.
func (s *Session) Impersonate(ctx context.Context, targetRole Role, targetID string) (*Credential, error) {
	if !targetRole.Valid() {
		return nil, fmt.Errorf("unknown role %q", targetRole)
	}
	token, err := s.api.Impersonate(ctx, ImpersonateInput{TargetType: targetRole, TargetID: targetID})
	if err != nil {
		return nil, err
	}
	if err := s.SetCredential(ctx, token, targetRole); err != nil {
		return nil, err
	}
	s.logger.Debug().Str("role", targetRole.String()).Str("target", targetID).Msg("impersonation credential stored")
	return &Credential{Token: token, Role: targetRole}, nil
}

// Logout ends the session for the currently active role only: that
// role's slot is cleared and the in-memory state resets. Credentials
// held for other roles stay valid, so other browsing contexts survive.
// Only when no role is resolvable at all does logout clear everything.
func (s *Session) Logout(ctx context.Context) error {
	role := ResolveRole("", s.currentRole(), s.currentIdentity())
	if role == "" {
		role = RoleFromPath(s.pathFn())
	}

	var err error
	if role != "" {
		err = s.store.Delete(ctx, role)
	} else {
		err = s.store.Clear(ctx)
	}

	s.mu.Lock()
	s.identity = nil
	s.activeRole = ""
	s.credential = nil
	s.loading = false
	s.gen++
	s.mu.Unlock()

	s.logger.Debug().Str("role", role.String()).Msg("logged out")
	return err
}

// clearAll wipes every slot and the in-memory state. Reserved for full
// logout and for terminal auth failures.
func (s *Session) clearAll(ctx context.Context) error {
	err := s.store.Clear(ctx)
	s.mu.Lock()
	s.identity = nil
	s.activeRole = ""
	s.credential = nil
	s.loading = false
	s.gen++
	s.mu.Unlock()
	return err
}

// TokenSource adapts one role's stored credential to an oauth2 token
// source for interop with oauth2-aware clients. The source is static; it
// does not participate in the session's refresh cycle.
func (s *Session) TokenSource(ctx context.Context, role Role) (oauth2.TokenSource, error) {
	cred, err := s.store.Load(ctx, role)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, fmt.Errorf("role %s: %w", role, ErrNoCredential)
	}
	token := &oauth2.Token{AccessToken: cred.Token, TokenType: "Bearer"}
	if exp, ok := cred.ExpiresAt(); ok {
		token.Expiry = exp
	}
	return oauth2.StaticTokenSource(token), nil
}

// attachCredential is the pipeline stage that picks and attaches a
// credential: per-call role hint, then active role, then identity, then
// the path-based store lookup. Requests that already carry an
// Authorization header pass through untouched, which is what keeps a
// refresh-retry from re-attaching the very token that just failed. No
// credential is not an error here; the request proceeds unauthenticated
// and the server decides.
func (s *Session) attachCredential(req *http.Request) (*http.Request, error) {
	if req.Header.Get("Authorization") != "" {
		return req, nil
	}
	ctx := req.Context()
	role := ResolveRole(RoleHintFrom(ctx), s.currentRole(), s.currentIdentity())

	var cred *Credential
	var err error
	if role != "" {
		cred, err = s.store.Load(ctx, role)
		if err != nil {
			return nil, err
		}
	}
	if cred == nil {
		cred, err = LookupCredential(ctx, s.store, s.pathFn())
		if err != nil {
			return nil, err
		}
	}
	if cred != nil {
		req.Header.Set("Authorization", "Bearer "+cred.Token)
	}
	return req, nil
}

// refreshAndRetry is the pipeline stage that turns one authorization
// failure into one refresh and one replay. A request that already
// carries the retried mark fails hard instead of looping.
func (s *Session) refreshAndRetry(req *http.Request, resp *http.Response, err error) (*http.Response, error) {
	if err != nil || resp == nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	// A 401 from the refresh endpoint means the refresh artifact itself
	// is dead; re-entering would loop.
	if strings.HasSuffix(req.URL.Path, refreshPath) {
		return resp, nil
	}

	ctx := req.Context()
	if wasRetried(ctx) {
		resp.Body.Close()
		if logoutErr := s.Logout(ctx); logoutErr != nil {
			s.logger.Debug().Err(logoutErr).Msg("logout after retry failure")
		}
		return nil, ErrSessionExpired
	}

	retryReq, ok := rewindRequest(req)
	if !ok {
		// The body was consumed and cannot be replayed; surface the 401.
		return resp, nil
	}

	role := ResolveRole(RoleHintFrom(ctx), s.currentRole(), s.currentIdentity())
	if role == "" {
		role = RoleFromPath(s.pathFn())
	}
	s.logger.Debug().Str("role", role.String()).Str("path", req.URL.Path).Msg("authorization expired, refreshing")

	cred, refreshErr := s.coordinator.refresh(ctx, role)
	if refreshErr != nil {
		resp.Body.Close()
		if clearErr := s.clearAll(ctx); clearErr != nil {
			s.logger.Debug().Err(clearErr).Msg("failed to clear credentials")
		}
		return nil, refreshErr
	}
	s.adoptCredential(ctx, cred)

	resp.Body.Close()
	retryReq = retryReq.WithContext(markRetried(ctx))
	retryReq.Header.Set("Authorization", "Bearer "+cred.Token)
	return s.transport.RoundTrip(retryReq)
}

// adoptCredential records a refreshed credential in the store and the
// session snapshot. A credential with no resolvable role is still used
// for the in-flight retry but cannot be persisted to a slot.
func (s *Session) adoptCredential(ctx context.Context, cred *Credential) {
	role := cred.Role
	if role == "" {
		role = s.currentIdentity().EffectiveRole()
	}
	if role == "" {
		s.logger.Debug().Msg("refreshed credential has no role; not persisted")
		return
	}
	stored := &Credential{Token: cred.Token, Role: role}
	if err := s.store.Save(ctx, stored); err != nil {
		s.logger.Debug().Err(err).Str("role", role.String()).Msg("failed to persist refreshed credential")
	}
	s.mu.Lock()
	s.activeRole = role
	s.credential = stored
	s.mu.Unlock()
}

// rewindRequest clones req with a replayable body. ok is false when the
// original body cannot be reproduced.
func rewindRequest(req *http.Request) (*http.Request, bool) {
	clone := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return clone, true
	}
	if req.GetBody == nil {
		return nil, false
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, false
	}
	clone.Body = body
	return clone, true
}
