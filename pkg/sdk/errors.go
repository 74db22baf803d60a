package sdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrNoCredential means no slot could be resolved for an operation
	// that needs one. It describes a valid logged-out condition, not a
	// fault.
	ErrNoCredential = errors.New("no credential available")

	// ErrRoleMismatch means a login succeeded but the server resolved a
	// different role than the caller required. The credential is
	// discarded and no session state changes.
	ErrRoleMismatch = errors.New("login resolved a different role")

	// ErrRefreshFailed means the credential refresh round trip failed.
	// Terminal for the current role: the session logs that role out.
	ErrRefreshFailed = errors.New("credential refresh failed")

	// ErrSessionExpired means a request failed authorization again after
	// one refresh-and-retry cycle. The session is over; re-login.
	ErrSessionExpired = errors.New("session expired")

	// ErrIdentityLookup means the identity endpoint could not confirm
	// who the credential belongs to. Treated like a failed refresh.
	ErrIdentityLookup = errors.New("identity lookup failed")
)

// APIError is a non-2xx response decoded from the backend's error
// envelope. Message may be empty when the body was not the standard
// {"message": ...} shape.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// apiErrorFromResponse drains resp.Body and builds an APIError.
func apiErrorFromResponse(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}
	var envelope struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		apiErr.Message = envelope.Message
	}
	return apiErr
}

// IsAuthFailure reports whether err is an authorization failure from the
// backend (HTTP 401).
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
