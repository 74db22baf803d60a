package sdk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestPipelineHookOrder(t *testing.T) {
	var order []string

	base := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		order = append(order, "base")
		rec := httptest.NewRecorder()
		rec.WriteHeader(http.StatusOK)
		resp := rec.Result()
		resp.Request = req
		return resp, nil
	})

	p := &Pipeline{Base: base}
	p.Use(func(req *http.Request) (*http.Request, error) {
		order = append(order, "req-1")
		return req, nil
	})
	p.Use(func(req *http.Request) (*http.Request, error) {
		order = append(order, "req-2")
		return req, nil
	})
	p.OnResponse(func(req *http.Request, resp *http.Response, err error) (*http.Response, error) {
		order = append(order, "resp-1")
		return resp, err
	})
	p.OnResponse(func(req *http.Request, resp *http.Response, err error) (*http.Response, error) {
		order = append(order, "resp-2")
		return resp, err
	})

	req := httptest.NewRequest(http.MethodGet, "http://example.test/", nil)
	resp, err := p.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip() error: %v", err)
	}
	resp.Body.Close()

	want := []string{"req-1", "req-2", "base", "resp-1", "resp-2"}
	if len(order) != len(want) {
		t.Fatalf("hook order %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("hook order %v, want %v", order, want)
		}
	}
}

func TestRequestIDHook(t *testing.T) {
	hook := RequestIDHook()

	req := httptest.NewRequest(http.MethodGet, "http://example.test/", nil)
	req, err := hook(req)
	if err != nil {
		t.Fatalf("hook error: %v", err)
	}
	if req.Header.Get("X-Request-ID") == "" {
		t.Fatal("hook did not stamp a request ID")
	}

	req.Header.Set("X-Request-ID", "caller-supplied")
	req, err = hook(req)
	if err != nil {
		t.Fatalf("hook error: %v", err)
	}
	if got := req.Header.Get("X-Request-ID"); got != "caller-supplied" {
		t.Fatalf("hook replaced an existing request ID: %q", got)
	}
}

func TestRoleHintContext(t *testing.T) {
	ctx := context.Background()
	if got := RoleHintFrom(ctx); got != "" {
		t.Fatalf("empty context carried role hint %q", got)
	}
	ctx = WithRoleHint(ctx, RoleClient)
	if got := RoleHintFrom(ctx); got != RoleClient {
		t.Fatalf("RoleHintFrom() = %q, want %q", got, RoleClient)
	}
}
