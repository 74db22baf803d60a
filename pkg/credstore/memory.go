package credstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/hellopaaitech-arch/hellopaai-go/pkg/sdk"
)

// Memory is a mutex-guarded in-process store. It is the default for
// tests and for short-lived embedders that do not need persistence.
type Memory struct {
	mu    sync.RWMutex
	slots map[sdk.Role]sdk.Credential
}

var _ sdk.CredentialStore = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{slots: make(map[sdk.Role]sdk.Credential)}
}

func (m *Memory) Load(_ context.Context, role sdk.Role) (*sdk.Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cred, ok := m.slots[role]
	if !ok {
		return nil, nil
	}
	out := cred
	return &out, nil
}

func (m *Memory) Save(_ context.Context, cred *sdk.Credential) error {
	if err := checkCredential(cred); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[cred.Role] = *cred
	return nil
}

func (m *Memory) Delete(_ context.Context, role sdk.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, role)
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots = make(map[sdk.Role]sdk.Credential)
	return nil
}

// checkCredential rejects writes that would corrupt a slot.
func checkCredential(cred *sdk.Credential) error {
	if cred == nil || cred.Token == "" {
		return fmt.Errorf("credential token is required")
	}
	if !cred.Role.Valid() {
		return fmt.Errorf("credential role %q is not valid", cred.Role)
	}
	return nil
}
