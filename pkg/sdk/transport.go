package sdk

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestHook inspects or rewrites an outgoing request. Hooks run in
// registration order; returning an error aborts the round trip.
type RequestHook func(*http.Request) (*http.Request, error)

// ResponseHook observes a completed round trip and may replace the
// response or error. Hooks run in registration order and see the request
// that produced the response.
type ResponseHook func(*http.Request, *http.Response, error) (*http.Response, error)

// Pipeline is an http.RoundTripper that threads requests through an
// explicit middleware chain. The session composes its auth-attach and
// refresh-retry stages onto one of these at construction time; nothing
// mutates a shared client behind the caller's back.
type Pipeline struct {
	Base          http.RoundTripper
	requestHooks  []RequestHook
	responseHooks []ResponseHook
}

// Use appends request hooks to the chain.
func (p *Pipeline) Use(hooks ...RequestHook) {
	p.requestHooks = append(p.requestHooks, hooks...)
}

// OnResponse appends response hooks to the chain.
func (p *Pipeline) OnResponse(hooks ...ResponseHook) {
	p.responseHooks = append(p.responseHooks, hooks...)
}

func (p *Pipeline) base() http.RoundTripper {
	if p.Base != nil {
		return p.Base
	}
	return http.DefaultTransport
}

// RoundTrip implements http.RoundTripper.
func (p *Pipeline) RoundTrip(req *http.Request) (*http.Response, error) {
	var err error
	for _, hook := range p.requestHooks {
		req, err = hook(req)
		if err != nil {
			return nil, err
		}
	}
	resp, err := p.base().RoundTrip(req)
	for _, hook := range p.responseHooks {
		resp, err = hook(req, resp, err)
	}
	return resp, err
}

// RequestIDHook stamps outgoing requests with an X-Request-ID so calls
// can be correlated with server logs. Existing IDs are preserved.
func RequestIDHook() RequestHook {
	return func(req *http.Request) (*http.Request, error) {
		if req.Header.Get("X-Request-ID") == "" {
			req.Header.Set("X-Request-ID", uuid.NewString())
		}
		return req, nil
	}
}

type contextKey int

const (
	roleHintKey contextKey = iota
	retriedKey
)

// WithRoleHint pins the role whose credential must authenticate requests
// made with ctx, overriding the session's ambient role resolution. Login
// pages use this to ask "am I already signed in as X" without disturbing
// other roles.
func WithRoleHint(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, roleHintKey, role)
}

// RoleHintFrom returns the role pinned on ctx, if any.
func RoleHintFrom(ctx context.Context) Role {
	role, _ := ctx.Value(roleHintKey).(Role)
	return role
}

func markRetried(ctx context.Context) context.Context {
	return context.WithValue(ctx, retriedKey, true)
}

func wasRetried(ctx context.Context) bool {
	retried, _ := ctx.Value(retriedKey).(bool)
	return retried
}
