package sdk_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellopaaitech-arch/hellopaai-go/pkg/sdk"
)

func TestListEndpoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		switch r.URL.Path {
		case "/admin/users":
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"users": []map[string]interface{}{{"_id": "u1", "email": "u1@example.com"}},
			})
		case "/admin/clients":
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"clients": []map[string]interface{}{{"_id": "c1", "businessName": "Acme", "approved": true}},
			})
		case "/super-admin/admins":
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"admins": []map[string]interface{}{{"_id": "a1", "role": "admin"}},
			})
		case "/client/users":
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"users": []map[string]interface{}{{"_id": "u2"}, {"_id": "u3"}},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := sdk.NewClient(server.URL)
	ctx := context.Background()

	users, err := client.ListAdminUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].ID)

	clients, err := client.ListAdminClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.True(t, clients[0].Approved)

	admins, err := client.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, sdk.RoleAdmin, admins[0].Role)

	clientUsers, err := client.ListClientUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, clientUsers, 2)
}

func TestApprovePaths(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		writeJSON(t, w, http.StatusOK, map[string]string{"message": "approved"})
	}))
	defer server.Close()

	client := sdk.NewClient(server.URL)
	ctx := context.Background()

	require.NoError(t, client.ApproveClient(ctx, "c42"))
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/admin/clients/c42/approve", gotPath)

	require.NoError(t, client.ApproveSuperResource(ctx, "admins", "a7"))
	assert.Equal(t, "/super-admin/admins/a7/approve", gotPath)
}

func TestSuperResourceRejectsUnknownKind(t *testing.T) {
	client := sdk.NewClient("http://unused.test")
	ctx := context.Background()

	err := client.ApproveSuperResource(ctx, "tokens", "x")
	require.Error(t, err)

	err = client.UpdateSuperResource(ctx, "../../etc", "x", sdk.ProfileUpdate{})
	require.Error(t, err)
}

func TestCreateAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/client/create":
			writeJSON(t, w, http.StatusCreated, map[string]interface{}{
				"client": map[string]interface{}{"_id": "c9", "email": "fresh@example.com"},
			})
		case "/auth/user/create":
			writeJSON(t, w, http.StatusCreated, map[string]interface{}{
				"user": map[string]interface{}{"_id": "u9"},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := sdk.NewClient(server.URL)
	ctx := context.Background()
	in := sdk.CreateAccountInput{Email: "fresh@example.com", Password: "longenough"}

	created, err := client.CreateAccount(ctx, sdk.RoleClient, in)
	require.NoError(t, err)
	assert.Equal(t, "c9", created.ID)

	created, err = client.CreateAccount(ctx, sdk.RoleUser, in)
	require.NoError(t, err)
	assert.Equal(t, "u9", created.ID)

	_, err = client.CreateAccount(ctx, sdk.RoleSuperAdmin, in)
	require.Error(t, err, "super admin accounts are never provisioned over the API")
}
