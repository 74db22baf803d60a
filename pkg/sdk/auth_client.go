package sdk

import (
	"context"
	"fmt"
	"net/http"
)

// refreshPath is the one endpoint the refresh-retry stage must never
// re-enter; a 401 from it means the refresh artifact itself is dead.
const refreshPath = "/auth/refresh"

// LoginInput are the form credentials for a password login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is a resolved login: the minted token plus the role the
// server actually granted, which for the admin family may differ from
// the form that was used.
type LoginResult struct {
	Token   string
	Role    Role
	Subject *Subject
}

type loginResponse struct {
	AccessToken string   `json:"accessToken"`
	Admin       *Subject `json:"admin,omitempty"`
	Client      *Subject `json:"client,omitempty"`
	User        *Subject `json:"user,omitempty"`
}

// loginFamily maps a role to the login endpoint serving it. Super-admins
// and admins share one form; the server reports the resolved role.
func loginFamily(role Role) (string, error) {
	switch role {
	case RoleSuperAdmin, RoleAdmin:
		return "/auth/admin/login", nil
	case RoleClient:
		return "/auth/client/login", nil
	case RoleUser:
		return "/auth/user/login", nil
	}
	return "", fmt.Errorf("unknown role %q", role)
}

// Login exchanges form credentials for an access token. The role decides
// which login family is used; the result carries the server-resolved role.
func (c *Client) Login(ctx context.Context, role Role, in LoginInput) (*LoginResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	path, err := loginFamily(role)
	if err != nil {
		return nil, err
	}

	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, path, in, &resp); err != nil {
		return nil, err
	}
	return resolveLogin(role, resp)
}

func resolveLogin(family Role, resp loginResponse) (*LoginResult, error) {
	result := &LoginResult{Token: resp.AccessToken}
	switch family {
	case RoleSuperAdmin, RoleAdmin:
		result.Role = RoleAdmin
		if resp.Admin != nil {
			result.Subject = resp.Admin
			if resp.Admin.Role != "" {
				result.Role = resp.Admin.Role
			}
		}
	case RoleClient:
		result.Role = RoleClient
		result.Subject = resp.Client
	case RoleUser:
		result.Role = RoleUser
		result.Subject = resp.User
	}
	return result, nil
}

// WhoAmI asks the identity endpoint which subject the attached credential
// belongs to. Pin a role with WithRoleHint to validate a specific slot.
func (c *Client) WhoAmI(ctx context.Context) (*Identity, error) {
	var identity Identity
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// RefreshCredential mints a new access token from the ambient refresh
// artifact (an HTTP cookie carried by the client's jar). The server
// decides which role the artifact belongs to.
func (c *Client) RefreshCredential(ctx context.Context) (string, error) {
	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := c.do(ctx, http.MethodPost, refreshPath, nil, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// ImpersonateInput names the identity a new credential is minted for.
type ImpersonateInput struct {
	TargetType Role   `json:"targetType" validate:"required"`
	TargetID   string `json:"targetId" validate:"required"`
}

// Impersonate asks the backend to issue a credential for another
// identity. The issuer's own credential authenticates the call and is
// left untouched.
func (c *Client) Impersonate(ctx context.Context, in ImpersonateInput) (string, error) {
	if err := validateInput(in); err != nil {
		return "", err
	}
	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := c.do(ctx, http.MethodPost, "/impersonate", in, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// ProfileUpdate is a partial update of the caller's own profile. Zero
// fields are omitted from the request.
type ProfileUpdate struct {
	Email         string `json:"email,omitempty"`
	FullName      string `json:"fullName,omitempty"`
	BusinessName  string `json:"businessName,omitempty"`
	BusinessType  string `json:"businessType,omitempty"`
	MobileNumber  string `json:"mobileNumber,omitempty"`
	ContactNumber string `json:"contactNumber,omitempty"`
	WebsiteURL    string `json:"websiteUrl,omitempty"`
	GSTNumber     string `json:"gstNumber,omitempty"`
	PANNumber     string `json:"panNumber,omitempty"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	Pincode       string `json:"pincode,omitempty"`
	LogoURL       string `json:"logoUrl,omitempty"`
}

// UpdateProfile patches the authenticated subject's profile.
func (c *Client) UpdateProfile(ctx context.Context, in ProfileUpdate) error {
	return c.do(ctx, http.MethodPatch, "/auth/me", in, nil)
}

// OTPRequest asks the backend to send a one-time password.
type OTPRequest struct {
	Type   string `json:"type" validate:"required,oneof=email mobile"`
	Email  string `json:"email,omitempty" validate:"required_if=Type email,omitempty,email"`
	Mobile string `json:"mobile,omitempty" validate:"required_if=Type mobile"`
}

// RequestOTP triggers OTP delivery. Development servers echo the OTP back
// in devOtp; production returns an empty string.
func (c *Client) RequestOTP(ctx context.Context, in OTPRequest) (string, error) {
	if err := validateInput(in); err != nil {
		return "", err
	}
	var resp struct {
		DevOTP string `json:"devOtp"`
	}
	if err := c.do(ctx, http.MethodPost, "/otp/request", in, &resp); err != nil {
		return "", err
	}
	return resp.DevOTP, nil
}

// OTPVerify confirms a delivered one-time password.
type OTPVerify struct {
	Type   string `json:"type" validate:"required,oneof=email mobile"`
	Email  string `json:"email,omitempty"`
	Mobile string `json:"mobile,omitempty"`
	OTP    string `json:"otp" validate:"required,min=4"`
}

// VerifyOTP exchanges a correct OTP for a verification token consumed by
// the registration endpoints.
func (c *Client) VerifyOTP(ctx context.Context, in OTPVerify) (string, error) {
	if err := validateInput(in); err != nil {
		return "", err
	}
	var resp struct {
		VerifiedToken string `json:"verifiedToken"`
	}
	if err := c.do(ctx, http.MethodPost, "/otp/verify", in, &resp); err != nil {
		return "", err
	}
	return resp.VerifiedToken, nil
}

// RegisterInput is a self-service registration. Admin accounts await
// super-admin approval before they can log in.
type RegisterInput struct {
	Email               string `json:"email" validate:"required,email"`
	Password            string `json:"password" validate:"required,min=8"`
	FullName            string `json:"fullName,omitempty"`
	BusinessName        string `json:"businessName,omitempty"`
	MobileNumber        string `json:"mobileNumber,omitempty"`
	EmailVerifiedToken  string `json:"emailVerifiedToken" validate:"required"`
	MobileVerifiedToken string `json:"mobileVerifiedToken,omitempty"`
}

func registerFamily(role Role) (string, error) {
	switch role {
	case RoleAdmin:
		return "/auth/admin/register", nil
	case RoleClient:
		return "/auth/client/register", nil
	case RoleUser:
		return "/auth/user/register", nil
	}
	return "", fmt.Errorf("role %q has no self-service registration", role)
}

// Register creates a new account of the given role.
func (c *Client) Register(ctx context.Context, role Role, in RegisterInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	path, err := registerFamily(role)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, in, nil)
}

// EmailSignIn completes a passwordless user sign-in with a verified OTP.
func (c *Client) EmailSignIn(ctx context.Context, email, otp string) (*LoginResult, error) {
	in := struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}{Email: email, OTP: otp}

	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/user/email-signin/verify", in, &resp); err != nil {
		return nil, err
	}
	return resolveLogin(RoleUser, resp)
}
