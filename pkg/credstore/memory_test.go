package credstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellopaaitech-arch/hellopaai-go/pkg/sdk"
)

func TestMemorySlotIsolation(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &sdk.Credential{Token: "admin-token", Role: sdk.RoleAdmin}))
	require.NoError(t, store.Save(ctx, &sdk.Credential{Token: "user-token", Role: sdk.RoleUser}))

	// Overwriting one slot must not touch the other.
	require.NoError(t, store.Save(ctx, &sdk.Credential{Token: "admin-token-2", Role: sdk.RoleAdmin}))

	cred, err := store.Load(ctx, sdk.RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, "admin-token-2", cred.Token)

	cred, err = store.Load(ctx, sdk.RoleUser)
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, "user-token", cred.Token)

	cred, err = store.Load(ctx, sdk.RoleClient)
	require.NoError(t, err)
	assert.Nil(t, cred, "an empty slot loads as nil, not as an error")
}

func TestMemoryDeleteVersusClear(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &sdk.Credential{Token: "a", Role: sdk.RoleAdmin}))
	require.NoError(t, store.Save(ctx, &sdk.Credential{Token: "u", Role: sdk.RoleUser}))

	require.NoError(t, store.Delete(ctx, sdk.RoleAdmin))
	cred, err := store.Load(ctx, sdk.RoleUser)
	require.NoError(t, err)
	require.NotNil(t, cred, "delete is single-slot")

	require.NoError(t, store.Clear(ctx))
	for _, role := range sdk.Roles() {
		cred, err := store.Load(ctx, role)
		require.NoError(t, err)
		assert.Nil(t, cred, "role %s", role)
	}
}

func TestMemoryRejectsCorruptWrites(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.Error(t, store.Save(ctx, nil))
	require.Error(t, store.Save(ctx, &sdk.Credential{Role: sdk.RoleAdmin}))
	require.Error(t, store.Save(ctx, &sdk.Credential{Token: "tok", Role: "moderator"}))
}

func TestMemoryLoadReturnsCopy(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &sdk.Credential{Token: "tok", Role: sdk.RoleClient}))
	first, err := store.Load(ctx, sdk.RoleClient)
	require.NoError(t, err)
	first.Token = "mutated"

	second, err := store.Load(ctx, sdk.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, "tok", second.Token, "callers must not share the stored value")
}
