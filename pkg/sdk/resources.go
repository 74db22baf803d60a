package sdk

import (
	"context"
	"fmt"
	"net/http"
)

// Resource listing and maintenance endpoints. Which of these a caller may
// reach depends entirely on the role of the credential the session
// attaches; the client itself performs no policy checks.

type usersEnvelope struct {
	Users []Subject `json:"users"`
}

type clientsEnvelope struct {
	Clients []Subject `json:"clients"`
}

type adminsEnvelope struct {
	Admins []Subject `json:"admins"`
}

// ListAdminUsers returns all users visible to an admin.
func (c *Client) ListAdminUsers(ctx context.Context) ([]Subject, error) {
	var resp usersEnvelope
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// ListAdminClients returns all clients visible to an admin.
func (c *Client) ListAdminClients(ctx context.Context) ([]Subject, error) {
	var resp clientsEnvelope
	if err := c.do(ctx, http.MethodGet, "/admin/clients", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Clients, nil
}

// UpdateAdminUser patches a user record as an admin.
func (c *Client) UpdateAdminUser(ctx context.Context, id string, in ProfileUpdate) error {
	return c.do(ctx, http.MethodPatch, "/admin/users/"+id, in, nil)
}

// UpdateAdminClient patches a client record as an admin.
func (c *Client) UpdateAdminClient(ctx context.Context, id string, in ProfileUpdate) error {
	return c.do(ctx, http.MethodPatch, "/admin/clients/"+id, in, nil)
}

// ApproveClient marks a pending client as approved (admin scope).
func (c *Client) ApproveClient(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/admin/clients/"+id+"/approve", nil, nil)
}

// ListAdmins returns all admin accounts (super-admin scope).
func (c *Client) ListAdmins(ctx context.Context) ([]Subject, error) {
	var resp adminsEnvelope
	if err := c.do(ctx, http.MethodGet, "/super-admin/admins", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Admins, nil
}

// ListSuperClients returns all clients (super-admin scope).
func (c *Client) ListSuperClients(ctx context.Context) ([]Subject, error) {
	var resp clientsEnvelope
	if err := c.do(ctx, http.MethodGet, "/super-admin/clients", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Clients, nil
}

// ListSuperUsers returns all users (super-admin scope).
func (c *Client) ListSuperUsers(ctx context.Context) ([]Subject, error) {
	var resp usersEnvelope
	if err := c.do(ctx, http.MethodGet, "/super-admin/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// superResource guards against path traversal through crafted kinds.
func superResource(kind, id, suffix string) (string, error) {
	switch kind {
	case "admins", "clients", "users":
	default:
		return "", fmt.Errorf("unknown super-admin resource %q", kind)
	}
	return "/super-admin/" + kind + "/" + id + suffix, nil
}

// UpdateSuperResource patches an admin, client or user record with
// super-admin scope. kind is one of "admins", "clients" or "users".
func (c *Client) UpdateSuperResource(ctx context.Context, kind, id string, in ProfileUpdate) error {
	path, err := superResource(kind, id, "")
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, path, in, nil)
}

// ApproveSuperResource approves a pending admin or client with
// super-admin scope.
func (c *Client) ApproveSuperResource(ctx context.Context, kind, id string) error {
	path, err := superResource(kind, id, "/approve")
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, path, nil, nil)
}

// ListClientUsers returns the users belonging to the calling client.
func (c *Client) ListClientUsers(ctx context.Context) ([]Subject, error) {
	var resp usersEnvelope
	if err := c.do(ctx, http.MethodGet, "/client/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// UpdateClientUser patches one of the calling client's users.
func (c *Client) UpdateClientUser(ctx context.Context, id string, in ProfileUpdate) error {
	return c.do(ctx, http.MethodPatch, "/client/users/"+id, in, nil)
}

// CreateAccountInput provisions an account on someone's behalf
// (super-admin creating admins, admins creating clients, and so on).
type CreateAccountInput struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	FullName     string `json:"fullName,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
	MobileNumber string `json:"mobileNumber,omitempty"`
}

func createFamily(role Role) (string, error) {
	switch role {
	case RoleAdmin:
		return "/auth/admin/create", nil
	case RoleClient:
		return "/auth/client/create", nil
	case RoleUser:
		return "/auth/user/create", nil
	}
	return "", fmt.Errorf("role %q cannot be provisioned", role)
}

// CreateAccount provisions a new account of the given role using the
// caller's privileges.
func (c *Client) CreateAccount(ctx context.Context, role Role, in CreateAccountInput) (*Subject, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	path, err := createFamily(role)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Admin  *Subject `json:"admin,omitempty"`
		Client *Subject `json:"client,omitempty"`
		User   *Subject `json:"user,omitempty"`
	}
	if err := c.do(ctx, http.MethodPost, path, in, &resp); err != nil {
		return nil, err
	}
	switch role {
	case RoleAdmin:
		return resp.Admin, nil
	case RoleClient:
		return resp.Client, nil
	default:
		return resp.User, nil
	}
}
