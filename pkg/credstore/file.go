package credstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hellopaaitech-arch/hellopaai-go/pkg/sdk"
)

const credentialsFile = "credentials.json"

// File persists credentials as a role-keyed JSON document, by default at
// ~/.hpanel/credentials.json with 0600 permissions. Each operation reads
// and rewrites the whole document; the mutex keeps a single process from
// interleaving partial writes.
type File struct {
	mu   sync.Mutex
	path string
}

var _ sdk.CredentialStore = (*File)(nil)

// NewFile creates a file store at the default location, creating the
// parent directory when needed.
func NewFile() (*File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	dir := filepath.Join(home, ".hpanel")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return &File{path: filepath.Join(dir, credentialsFile)}, nil
}

// NewFileAt creates a file store at an explicit path.
func NewFileAt(path string) *File {
	return &File{path: path}
}

// Path returns the backing file's location.
func (f *File) Path() string { return f.path }

func (f *File) read() (map[sdk.Role]sdk.Credential, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[sdk.Role]sdk.Credential{}, nil
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	slots := map[sdk.Role]sdk.Credential{}
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	return slots, nil
}

func (f *File) write(slots map[sdk.Role]sdk.Credential) error {
	data, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	return os.WriteFile(f.path, data, 0600)
}

func (f *File) Load(_ context.Context, role sdk.Role) (*sdk.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slots, err := f.read()
	if err != nil {
		return nil, err
	}
	cred, ok := slots[role]
	if !ok {
		return nil, nil
	}
	return &cred, nil
}

func (f *File) Save(_ context.Context, cred *sdk.Credential) error {
	if err := checkCredential(cred); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	slots, err := f.read()
	if err != nil {
		return err
	}
	slots[cred.Role] = *cred
	return f.write(slots)
}

func (f *File) Delete(_ context.Context, role sdk.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	slots, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := slots[role]; !ok {
		return nil
	}
	delete(slots, role)
	return f.write(slots)
}

func (f *File) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := os.Stat(f.path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(f.path)
}
