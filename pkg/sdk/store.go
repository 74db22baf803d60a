package sdk

import "context"

// CredentialStore is the persistence port for role-keyed credentials.
// Implementations live outside this package (see pkg/credstore) so the
// session core stays storage-agnostic: cookies in a jar, a JSON file, an
// in-memory map or Redis all behave the same.
//
// Contract: Save writes only the credential's own slot and must never
// read or mutate another role's entry. Load returns (nil, nil) for an
// empty slot. Clear removes every slot and is reserved for full logout;
// single-slot removal is Delete.
type CredentialStore interface {
	Load(ctx context.Context, role Role) (*Credential, error)
	Save(ctx context.Context, cred *Credential) error
	Delete(ctx context.Context, role Role) error
	Clear(ctx context.Context) error
}

// LookupCredential finds a credential when the caller has no role in
// hand. The current navigation path is tried first (a page under /admin/
// prefers the admin slot); when the path matches nothing or the slot is
// empty, the slots are scanned in fixed priority order and the first
// non-empty one wins.
//
// The priority scan can pick the "wrong" role on a machine with several
// simultaneous logins; that is deliberate and documented behavior — a
// freshly reloaded page needs some credential before the session has
// resolved its active role, and the server rejects a mismatched one.
func LookupCredential(ctx context.Context, store CredentialStore, path string) (*Credential, error) {
	if role := RoleFromPath(path); role != "" {
		cred, err := store.Load(ctx, role)
		if err != nil {
			return nil, err
		}
		if cred != nil {
			return cred, nil
		}
	}
	for _, role := range rolePriority {
		cred, err := store.Load(ctx, role)
		if err != nil {
			return nil, err
		}
		if cred != nil {
			return cred, nil
		}
	}
	return nil, nil
}
