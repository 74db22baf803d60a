package sdk_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellopaaitech-arch/hellopaai-go/pkg/sdk"
)

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestLoginFamilies(t *testing.T) {
	tests := []struct {
		role     sdk.Role
		wantPath string
		payload  map[string]interface{}
		wantRole sdk.Role
	}{
		{
			role:     sdk.RoleAdmin,
			wantPath: "/auth/admin/login",
			payload: map[string]interface{}{
				"accessToken": "admin-token",
				"admin":       map[string]interface{}{"email": "a@example.com", "role": "admin"},
			},
			wantRole: sdk.RoleAdmin,
		},
		{
			role:     sdk.RoleSuperAdmin,
			wantPath: "/auth/admin/login",
			payload: map[string]interface{}{
				"accessToken": "sa-token",
				"admin":       map[string]interface{}{"email": "sa@example.com", "role": "super_admin"},
			},
			wantRole: sdk.RoleSuperAdmin,
		},
		{
			role:     sdk.RoleClient,
			wantPath: "/auth/client/login",
			payload: map[string]interface{}{
				"accessToken": "client-token",
				"client":      map[string]interface{}{"email": "c@example.com"},
			},
			wantRole: sdk.RoleClient,
		},
		{
			role:     sdk.RoleUser,
			wantPath: "/auth/user/login",
			payload: map[string]interface{}{
				"accessToken": "user-token",
				"user":        map[string]interface{}{"email": "u@example.com"},
			},
			wantRole: sdk.RoleUser,
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			var gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				var in sdk.LoginInput
				require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
				assert.Equal(t, "someone@example.com", in.Email)
				writeJSON(t, w, http.StatusOK, tt.payload)
			}))
			defer server.Close()

			client := sdk.NewClient(server.URL)
			result, err := client.Login(context.Background(), tt.role, sdk.LoginInput{
				Email:    "someone@example.com",
				Password: "hunter22",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, gotPath)
			assert.Equal(t, tt.wantRole, result.Role)
			assert.NotEmpty(t, result.Token)
		})
	}
}

func TestLoginValidationStopsBeforeTheWire(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client := sdk.NewClient(server.URL)
	_, err := client.Login(context.Background(), sdk.RoleAdmin, sdk.LoginInput{
		Email:    "not-an-email",
		Password: "x",
	})
	require.Error(t, err)
	assert.Equal(t, 0, calls, "invalid input must not reach the server")
}

func TestWhoAmI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/auth/me", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"subjectType": "admin",
			"subject": map[string]interface{}{
				"_id":   "66aa01",
				"email": "ops@example.com",
				"role":  "super_admin",
			},
		})
	}))
	defer server.Close()

	client := sdk.NewClient(server.URL)
	me, err := client.WhoAmI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sdk.SubjectAdmin, me.SubjectType)
	assert.Equal(t, "66aa01", me.Subject.ID)
	assert.Equal(t, sdk.RoleSuperAdmin, me.EffectiveRole())
}

func TestWhoAmIUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"message": "token expired"})
	}))
	defer server.Close()

	client := sdk.NewClient(server.URL)
	_, err := client.WhoAmI(context.Background())
	require.Error(t, err)
	assert.True(t, sdk.IsAuthFailure(err))

	var apiErr *sdk.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "token expired", apiErr.Message)
}

func TestRefreshCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/refresh", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]string{"accessToken": "minted"})
	}))
	defer server.Close()

	client := sdk.NewClient(server.URL)
	token, err := client.RefreshCredential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "minted", token)
}

func TestRequestAndVerifyOTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/otp/request":
			writeJSON(t, w, http.StatusOK, map[string]string{"devOtp": "4242"})
		case "/otp/verify":
			var in sdk.OTPVerify
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "4242", in.OTP)
			writeJSON(t, w, http.StatusOK, map[string]string{"verifiedToken": "otp-proof"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := sdk.NewClient(server.URL)
	ctx := context.Background()

	devOTP, err := client.RequestOTP(ctx, sdk.OTPRequest{Type: "email", Email: "u@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "4242", devOTP)

	proof, err := client.VerifyOTP(ctx, sdk.OTPVerify{Type: "email", Email: "u@example.com", OTP: "4242"})
	require.NoError(t, err)
	assert.Equal(t, "otp-proof", proof)
}

func TestRegisterRequiresVerifiedEmail(t *testing.T) {
	client := sdk.NewClient("http://unused.test")
	err := client.Register(context.Background(), sdk.RoleClient, sdk.RegisterInput{
		Email:    "c@example.com",
		Password: "longenough",
	})
	require.Error(t, err, "registration without an email verification token must fail locally")
}

func TestRegisterFamilies(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeJSON(t, w, http.StatusCreated, map[string]string{"message": "created"})
	}))
	defer server.Close()

	client := sdk.NewClient(server.URL)
	in := sdk.RegisterInput{
		Email:              "new@example.com",
		Password:           "longenough",
		EmailVerifiedToken: "otp-proof",
	}

	require.NoError(t, client.Register(context.Background(), sdk.RoleUser, in))
	assert.Equal(t, "/auth/user/register", gotPath)

	require.NoError(t, client.Register(context.Background(), sdk.RoleAdmin, in))
	assert.Equal(t, "/auth/admin/register", gotPath)

	err := client.Register(context.Background(), sdk.RoleSuperAdmin, in)
	require.Error(t, err, "super admins are provisioned, never self-registered")
}

func TestEmailSignIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/user/email-signin/verify", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"accessToken": "user-token",
			"user":        map[string]interface{}{"email": "u@example.com"},
		})
	}))
	defer server.Close()

	client := sdk.NewClient(server.URL)
	result, err := client.EmailSignIn(context.Background(), "u@example.com", "4242")
	require.NoError(t, err)
	assert.Equal(t, sdk.RoleUser, result.Role)
	assert.Equal(t, "user-token", result.Token)
}

func TestImpersonateValidatesInput(t *testing.T) {
	client := sdk.NewClient("http://unused.test")
	_, err := client.Impersonate(context.Background(), sdk.ImpersonateInput{TargetType: sdk.RoleUser})
	require.Error(t, err, "a target id is required")
}

func TestUpdateProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/auth/me", r.URL.Path)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Pune", body["city"])
		_, hasEmail := body["email"]
		assert.False(t, hasEmail, "zero fields must be omitted")
		writeJSON(t, w, http.StatusOK, map[string]string{"message": "updated"})
	}))
	defer server.Close()

	client := sdk.NewClient(server.URL)
	require.NoError(t, client.UpdateProfile(context.Background(), sdk.ProfileUpdate{City: "Pune"}))
}
