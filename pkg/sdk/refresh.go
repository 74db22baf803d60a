package sdk

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
)

// refreshCoordinator collapses concurrent refresh attempts into a single
// network round trip. The in-flight call is owned state of the
// coordinator (not a package global), so lifetime and test resets are
// explicit.
type refreshCoordinator struct {
	group singleflight.Group

	// run performs the actual refresh round trip and returns the newly
	// minted access token.
	run func(ctx context.Context) (string, error)
}

// refresh returns a fresh credential tagged with roleHint, the role that
// was active when the expiry was detected. While one refresh is in
// flight, every additional caller waits for the same result instead of
// issuing its own round trip; once it settles — either way — the next
// expiry may start a new one. Failures propagate to every waiter
// unchanged; retry policy belongs to the callers.
func (rc *refreshCoordinator) refresh(ctx context.Context, roleHint Role) (*Credential, error) {
	v, err, _ := rc.group.Do("refresh", func() (interface{}, error) {
		token, err := rc.run(ctx)
		if err != nil {
			return nil, err
		}
		return &Credential{Token: token, Role: roleHint}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	return v.(*Credential), nil
}
