package sdk

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Credential is an opaque short-lived access token bound to exactly one
// role. Credentials for different roles are independent slots; this layer
// never compares or merges them.
type Credential struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

// claims decodes the token's JWT claims without verifying the signature.
// Verification belongs to the server; the client only peeks at expiry and
// subject for display and TTL purposes.
func (c *Credential) claims() (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(c.Token, claims)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ExpiresAt returns the token's exp claim. ok is false for non-JWT tokens
// or tokens without an expiry.
func (c *Credential) ExpiresAt() (time.Time, bool) {
	claims, err := c.claims()
	if err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// IsExpired reports whether the token's expiry has passed. Tokens without
// a readable expiry are treated as live; the server remains the authority.
func (c *Credential) IsExpired() bool {
	exp, ok := c.ExpiresAt()
	if !ok {
		return false
	}
	return time.Now().After(exp)
}

// Subject returns the token's sub claim when readable.
func (c *Credential) Subject() string {
	claims, err := c.claims()
	if err != nil {
		return ""
	}
	sub, _ := claims.GetSubject()
	return sub
}
