package credstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hellopaaitech-arch/hellopaai-go/pkg/sdk"
)

// Redis stores credentials under one key per role, for headless agents
// that share a session across processes. Entries expire with the token
// when its expiry is readable.
type Redis struct {
	client *redis.Client
	prefix string
}

var _ sdk.CredentialStore = (*Redis)(nil)

// NewRedis creates a Redis-backed store.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client, prefix: "hpanel:credential:"}
}

func (r *Redis) key(role sdk.Role) string {
	return r.prefix + string(role)
}

func (r *Redis) Load(ctx context.Context, role sdk.Role) (*sdk.Credential, error) {
	val, err := r.client.Get(ctx, r.key(role)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cred sdk.Credential
	if err := json.Unmarshal([]byte(val), &cred); err != nil {
		return nil, fmt.Errorf("credstore: failed to unmarshal credential: %w", err)
	}
	return &cred, nil
}

func (r *Redis) Save(ctx context.Context, cred *sdk.Credential) error {
	if err := checkCredential(cred); err != nil {
		return err
	}
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("credstore: failed to marshal credential: %w", err)
	}
	var ttl time.Duration
	if exp, ok := cred.ExpiresAt(); ok {
		ttl = time.Until(exp)
		if ttl <= 0 {
			return fmt.Errorf("credstore: credential is already expired")
		}
	}
	return r.client.Set(ctx, r.key(cred.Role), data, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, role sdk.Role) error {
	return r.client.Del(ctx, r.key(role)).Err()
}

func (r *Redis) Clear(ctx context.Context) error {
	keys := make([]string, 0, len(sdk.Roles()))
	for _, role := range sdk.Roles() {
		keys = append(keys, r.key(role))
	}
	return r.client.Del(ctx, keys...).Err()
}
