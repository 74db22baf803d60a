// Package credstore provides pluggable backends for sdk.CredentialStore:
// an in-memory map, a JSON file under the user's home directory, a
// cookie jar compatible with the web app's cookie layout, and Redis for
// deployments that share credentials between processes.
//
// Every backend keeps one slot per role and guarantees that writing a
// role's slot never touches another role's.
package credstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hellopaaitech-arch/hellopaai-go/pkg/sdk"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Open creates a store from configuration. dsn is backend-specific: a
// file path for the file backend (empty for the default location), a
// redis URL for the redis backend, and ignored for memory.
func Open(ctx context.Context, backend, dsn string) (sdk.CredentialStore, error) {
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile, "":
		if dsn != "" {
			return NewFileAt(dsn), nil
		}
		return NewFile()
	case BackendRedis:
		opts, err := redis.ParseURL(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis unreachable: %w", err)
		}
		return NewRedis(client), nil
	}
	return nil, fmt.Errorf("unknown credential store backend %q", backend)
}
