package credstore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hellopaaitech-arch/hellopaai-go/pkg/sdk"
)

// cookieTTL matches the web client's cookie lifetime.
const cookieTTL = 7 * 24 * time.Hour

// Jar stores each role's credential as a "<role>_token" cookie in an
// http.CookieJar against the API origin — byte-compatible with the
// browser app's cookie layout, so a jar shared with the SDK's HTTP
// client holds role tokens and the server's refresh cookie side by side.
type Jar struct {
	jar    http.CookieJar
	origin *url.URL
}

var _ sdk.CredentialStore = (*Jar)(nil)

// NewJar wraps jar as a credential store scoped to the given origin.
func NewJar(jar http.CookieJar, origin string) (*Jar, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("invalid origin %q: %w", origin, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("origin %q must include scheme and host", origin)
	}
	return &Jar{jar: jar, origin: u}, nil
}

func cookieName(role sdk.Role) string {
	return string(role) + "_token"
}

func (j *Jar) Load(_ context.Context, role sdk.Role) (*sdk.Credential, error) {
	name := cookieName(role)
	for _, c := range j.jar.Cookies(j.origin) {
		if c.Name == name && c.Value != "" {
			return &sdk.Credential{Token: c.Value, Role: role}, nil
		}
	}
	return nil, nil
}

func (j *Jar) Save(_ context.Context, cred *sdk.Credential) error {
	if err := checkCredential(cred); err != nil {
		return err
	}
	j.jar.SetCookies(j.origin, []*http.Cookie{{
		Name:     cookieName(cred.Role),
		Value:    cred.Token,
		Path:     "/",
		Expires:  time.Now().Add(cookieTTL),
		SameSite: http.SameSiteLaxMode,
	}})
	return nil
}

func (j *Jar) Delete(_ context.Context, role sdk.Role) error {
	j.jar.SetCookies(j.origin, []*http.Cookie{{
		Name:    cookieName(role),
		Value:   "",
		Path:    "/",
		MaxAge:  -1,
		Expires: time.Unix(1, 0),
	}})
	return nil
}

func (j *Jar) Clear(ctx context.Context) error {
	for _, role := range sdk.Roles() {
		if err := j.Delete(ctx, role); err != nil {
			return err
		}
	}
	return nil
}
